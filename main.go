package main

import (
	"os"

	"github.com/fenghaojiang/BRC20S/cmd/api"
	"github.com/fenghaojiang/BRC20S/cmd/index"

	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brc20s",
		Short: "brc20s",
	}

	cmd.AddCommand(index.NewCommand())
	cmd.AddCommand(api.NewCommand())
	return cmd
}

func main() {
	cmd := newCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

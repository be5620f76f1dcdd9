package index

import (
	"github.com/fenghaojiang/BRC20S/pkg/database"
	"github.com/fenghaojiang/BRC20S/pkg/log"
	"github.com/fenghaojiang/BRC20S/service"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "index",
		Run: func(cmd *cobra.Command, args []string) {
			setup()
		},
	}
}

func setup() {
	log.Init("index.log")
	database.NewMysql()

	scan := service.NewScanService()

	if err := scan.Scan(); err != nil {
		panic(err)
	}
}

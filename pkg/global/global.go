package global

import (
	"sync"

	"github.com/fenghaojiang/BRC20S/config"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	chainClient *ethclient.Client
	dialOnce    sync.Once
)

// ChainClient dials the configured RPC endpoint on first use.
func ChainClient() *ethclient.Client {
	dialOnce.Do(func() {
		client, err := ethclient.Dial(config.GetConfig().Chain.Rpc)
		if err != nil {
			panic(err)
		}
		chainClient = client
	})

	return chainClient
}

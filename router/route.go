package router

import (
	"github.com/fenghaojiang/BRC20S/config"
	"github.com/fenghaojiang/BRC20S/controler"
	"github.com/fenghaojiang/BRC20S/router/cache"

	"github.com/gin-gonic/gin"
)

func NewApiRoute() *gin.Engine {
	r := gin.Default()
	conf := config.GetConfig()
	brc20s := r.Group(conf.App.RoutePrefix)

	tickC := controler.NewTickController()
	balanceC := controler.NewBalanceController()
	receiptC := controler.NewReceiptController()

	v1 := brc20s.Group("/v1", cache.Middleware())
	v1.GET("/tx/:txhash/events", receiptC.TxEvents)
	v1.GET("/block/:blockhash/events", receiptC.BlockEvents)
	v1.POST("/balance/list", balanceC.List)
	v1.POST("/tick/list", tickC.List)

	return r
}

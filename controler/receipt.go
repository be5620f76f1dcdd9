package controler

import (
	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"github.com/fenghaojiang/BRC20S/service"

	"github.com/gin-gonic/gin"
)

type ReceiptController struct {
	receiptS *service.ReceiptService
}

func NewReceiptController() *ReceiptController {
	return &ReceiptController{
		receiptS: service.NewReceiptService(),
	}
}

func (c *ReceiptController) TxEvents(ctx *gin.Context) {
	txHash := ctx.Param("txhash")
	if txHash == "" {
		utils.FailResponse(ctx, "txhash is required")
		return
	}

	res, err := c.receiptS.TxEvents(txHash)
	if err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	utils.SuccessResponse(ctx, res)
}

func (c *ReceiptController) BlockEvents(ctx *gin.Context) {
	blockHash := ctx.Param("blockhash")
	if blockHash == "" {
		utils.FailResponse(ctx, "blockhash is required")
		return
	}

	res, err := c.receiptS.BlockEvents(blockHash)
	if err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	utils.SuccessResponse(ctx, res)
}

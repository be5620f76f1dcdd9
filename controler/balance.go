package controler

import (
	brc20stypes "github.com/fenghaojiang/BRC20S/pkg/types"
	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"github.com/fenghaojiang/BRC20S/service"

	"github.com/gin-gonic/gin"
)

type BalanceController struct {
	balanceS *service.BalanceService
}

func NewBalanceController() *BalanceController {
	return &BalanceController{
		balanceS: service.NewBalanceService(),
	}
}

func (c *BalanceController) List(ctx *gin.Context) {
	var req brc20stypes.ListBalanceReq
	if err := ctx.ShouldBind(&req); err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	res, err := c.balanceS.List(&req)
	if err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	utils.SuccessResponse(ctx, res)
}

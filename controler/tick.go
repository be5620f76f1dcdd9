package controler

import (
	brc20stypes "github.com/fenghaojiang/BRC20S/pkg/types"
	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"github.com/fenghaojiang/BRC20S/service"

	"github.com/gin-gonic/gin"
)

type TickController struct {
	tickS *service.TickService
}

func NewTickController() *TickController {
	return &TickController{
		tickS: service.NewTickService(),
	}
}

func (c *TickController) List(ctx *gin.Context) {
	var req brc20stypes.ListTickReq
	if err := ctx.ShouldBind(&req); err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	res, err := c.tickS.List(&req)
	if err != nil {
		utils.FailResponse(ctx, err.Error())
		return
	}

	utils.SuccessResponse(ctx, res)
}

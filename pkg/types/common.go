package types

import "github.com/fenghaojiang/BRC20S/dao"

type CommonListCond struct {
	Page     int64 `json:"page"`
	PageSize int8  `json:"page_size" binding:"required"`
}

type CommonListRsp struct {
	Count    int64  `json:"count"`
	Page     uint64 `json:"page"`
	PageSize uint8  `json:"page_size"`
}

type ListTickReq struct {
	CommonListCond
}

type ListTickRsp struct {
	CommonListRsp
	List []*dao.TickModel `json:"list"`
}

type ListBalanceReq struct {
	CommonListCond
	Address string `json:"address" binding:"required"`
	Tick    string `json:"tick"`
}

type ListBalanceRsp struct {
	CommonListRsp
	List []*dao.BalanceModel `json:"list"`
}

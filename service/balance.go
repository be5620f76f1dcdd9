package service

import (
	"errors"

	"github.com/fenghaojiang/BRC20S/dao"
	"github.com/fenghaojiang/BRC20S/pkg/database"
	brc20stypes "github.com/fenghaojiang/BRC20S/pkg/types"
	"github.com/fenghaojiang/BRC20S/pkg/utils"

	"gorm.io/gorm"
)

type BalanceService struct {
	balanceDao dao.IBalance
}

func NewBalanceService() *BalanceService {
	return &BalanceService{
		balanceDao: &dao.BalanceHandler{},
	}
}

func (s *BalanceService) List(req *brc20stypes.ListBalanceReq) (*brc20stypes.ListBalanceRsp, error) {
	address, ok := utils.IsValidERCAddress(req.Address)
	if !ok {
		return nil, errors.New("invalid address")
	}

	db := database.Mysql()
	var res []*dao.BalanceModel
	var count int64
	if err := db.Transaction(func(tx *gorm.DB) error {
		countTx := tx.Session(&gorm.Session{Context: tx.Statement.Context})
		tx = tx.Where("address = ?", address)
		countTx = countTx.Where("address = ?", address)
		if req.Tick != "" {
			tx = tx.Where("tick = ?", req.Tick)
			countTx = countTx.Where("tick = ?", req.Tick)
		}
		if req.PageSize > 0 {
			tx = tx.Limit(int(req.PageSize))
		}
		tx = tx.Offset(int(req.Page) * int(req.PageSize))
		var err error
		res, err = s.balanceDao.Find(tx)
		if err != nil {
			return err
		}
		count, err = s.balanceDao.Count(countTx)
		if err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	resp := &brc20stypes.ListBalanceRsp{
		CommonListRsp: brc20stypes.CommonListRsp{
			Count:    count,
			Page:     uint64(req.Page),
			PageSize: uint8(req.PageSize),
		},
		List: res,
	}
	return resp, nil
}

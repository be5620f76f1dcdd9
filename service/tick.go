package service

import (
	"github.com/fenghaojiang/BRC20S/dao"
	"github.com/fenghaojiang/BRC20S/pkg/database"
	brc20stypes "github.com/fenghaojiang/BRC20S/pkg/types"

	"gorm.io/gorm"
)

type TickService struct {
	tickDao dao.ITick
}

func NewTickService() *TickService {
	return &TickService{
		tickDao: &dao.TickHandler{},
	}
}

func (s *TickService) List(req *brc20stypes.ListTickReq) (*brc20stypes.ListTickRsp, error) {
	db := database.Mysql()
	var res []*dao.TickModel
	var count int64
	if err := db.Transaction(func(tx *gorm.DB) error {
		countTx := tx.Session(&gorm.Session{Context: tx.Statement.Context})
		if req.PageSize > 0 {
			tx = tx.Limit(int(req.PageSize))
		}
		tx = tx.Offset(int(req.Page) * int(req.PageSize))
		var err error
		res, err = s.tickDao.Find(tx)
		if err != nil {
			return err
		}
		count, err = s.tickDao.Count(countTx)
		if err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	resp := &brc20stypes.ListTickRsp{
		CommonListRsp: brc20stypes.CommonListRsp{
			Count:    count,
			Page:     uint64(req.Page),
			PageSize: uint8(req.PageSize),
		},
		List: res,
	}
	return resp, nil
}

package dao

import (
	"time"

	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"gorm.io/gorm"
)

type IBalance interface {
	TableName() string
	Create(db *gorm.DB, model *BalanceModel) error
	Find(db *gorm.DB) ([]*BalanceModel, error)
	SelectByTickAddress(db *gorm.DB, tick, address string) (*BalanceModel, error)
	SelectByAddress(db *gorm.DB, address string) ([]*BalanceModel, error)
	Count(db *gorm.DB) (int64, error)
	UpdateAmounts(db *gorm.DB, id uint64, data map[string]interface{}) error
}

type BalanceModel struct {
	Id           uint64 `json:"id,string" gorm:"primaryKey"`
	Tick         string `json:"tick"`
	Address      string `json:"address"`
	Available    string `json:"available"`
	Transferable string `json:"transferable"`
	CreateAt     int64  `json:"create_at"`
	UpdateAt     int64  `json:"update_at"`
	DeleteAt     int64  `json:"delete_at"`
}

type BalanceHandler struct{}

func (h *BalanceHandler) TableName() string {
	return "balance"
}

func (h *BalanceHandler) Find(db *gorm.DB) ([]*BalanceModel, error) {
	var (
		datas []*BalanceModel
		err   error
	)

	db = db.Where("delete_at = ?", 0)

	if err = db.Table(h.TableName()).Find(&datas).Error; err != nil {
		return nil, err
	}

	return datas, nil
}

func (h *BalanceHandler) SelectByTickAddress(db *gorm.DB, tick, address string) (*BalanceModel, error) {
	var (
		model BalanceModel
		err   error
	)

	if err = db.Table(h.TableName()).Where("tick = ? and address = ?", tick, address).First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func (h *BalanceHandler) SelectByAddress(db *gorm.DB, address string) ([]*BalanceModel, error) {
	var (
		model []*BalanceModel
		err   error
	)

	if err = db.Table(h.TableName()).Where("address = ?", address).Find(&model).Error; err != nil {
		return nil, err
	}

	return model, nil
}

func (h *BalanceHandler) Count(db *gorm.DB) (int64, error) {
	var (
		res int64
		err error
	)

	db = db.Where("delete_at = 0")

	if err = db.Table(h.TableName()).Count(&res).Error; err != nil {
		return 0, err
	}

	return res, nil
}

func (h *BalanceHandler) Create(db *gorm.DB, model *BalanceModel) error {
	var err error

	// init
	if model.Id == 0 {
		if model.Id, err = utils.GenSnowflakeID(); err != nil {
			return err
		}
	}

	model.CreateAt = time.Now().Unix()
	model.UpdateAt = model.CreateAt

	return db.Table(h.TableName()).Create(model).Error
}

func (h *BalanceHandler) UpdateAmounts(db *gorm.DB, id uint64, data map[string]interface{}) error {
	var err error

	data["update_at"] = time.Now().Unix()
	if err = db.Table(h.TableName()).Where("id = ?", id).UpdateColumns(data).Error; err != nil {
		return err
	}

	return nil
}

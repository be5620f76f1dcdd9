package dao

import (
	"time"

	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"gorm.io/gorm"
)

type ITick interface {
	TableName() string
	Create(db *gorm.DB, model *TickModel) error
	Find(db *gorm.DB) ([]*TickModel, error)
	SelectByTick(db *gorm.DB, tick string) (*TickModel, error)
	Count(db *gorm.DB) (int64, error)
	Update(db *gorm.DB, id uint64, data map[string]interface{}) error
}

type TickModel struct {
	Id            uint64 `json:"id,string" gorm:"primaryKey"`
	Tick          string `json:"tick"`
	InscriptionId string `json:"inscription_id"`
	Block         uint64 `json:"block"`
	BlockAt       uint64 `json:"block_at"`
	TxHash        string `json:"tx_hash"`
	TxIndex       uint64 `json:"tx_index"`
	Decimals      uint8  `json:"decimals"`
	Max           string `json:"max"`
	Lim           string `json:"lim"`
	Minted        string `json:"minted"`
	DeployBy      string `json:"deploy_by"`
	CreateAt      int64  `json:"create_at"`
	UpdateAt      int64  `json:"update_at"`
	DeleteAt      int64  `json:"delete_at"`
}

type TickHandler struct {
}

func (h *TickHandler) TableName() string {
	return "tick"
}

func (h *TickHandler) Find(db *gorm.DB) ([]*TickModel, error) {
	var (
		datas []*TickModel
		err   error
	)

	db = db.Where("delete_at = ?", 0)

	if err = db.Table(h.TableName()).Find(&datas).Error; err != nil {
		return nil, err
	}

	return datas, nil
}

func (h *TickHandler) SelectByTick(db *gorm.DB, tick string) (*TickModel, error) {
	var (
		model TickModel
		err   error
	)

	if err = db.Table(h.TableName()).Where("delete_at = 0 and tick = ?", tick).First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func (h *TickHandler) Count(db *gorm.DB) (int64, error) {
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

func (h *TickHandler) Create(db *gorm.DB, model *TickModel) error {
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

func (h *TickHandler) Update(db *gorm.DB, id uint64, data map[string]interface{}) error {
	var err error

	data["update_at"] = time.Now().Unix()
	if err = db.Table(h.TableName()).Where("id = ?", id).UpdateColumns(data).Error; err != nil {
		return err
	}

	return nil
}

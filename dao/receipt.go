package dao

import (
	"time"

	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"gorm.io/gorm"
)

type IReceipt interface {
	TableName() string
	Create(db *gorm.DB, model *ReceiptModel) error
	FindByTxHash(db *gorm.DB, txHash string) ([]*ReceiptModel, error)
	FindByBlockHash(db *gorm.DB, blockHash string) ([]*ReceiptModel, error)
	Count(db *gorm.DB) (int64, error)
}

// ReceiptModel is the append-only outcome log, one row per processed
// inscription. Rows are written once and never updated.
type ReceiptModel struct {
	Id            uint64 `json:"id,string" gorm:"primaryKey"`
	Block         uint64 `json:"block"`
	BlockHash     string `json:"block_hash"`
	BlockAt       uint64 `json:"block_at"`
	TxHash        string `json:"tx_hash"`
	TxIndex       uint64 `json:"tx_index"`
	OpIndex       uint64 `json:"op_index"`
	InscriptionId string `json:"inscription_id"`
	OldSatpoint   string `json:"old_satpoint"`
	NewSatpoint   string `json:"new_satpoint"`
	From          string `json:"from"`
	To            string `json:"to"`
	Op            string `json:"op"`
	Tick          string `json:"tick"`
	Amt           string `json:"amt"`
	Max           string `json:"max"`
	Lim           string `json:"lim"`
	Decimals      uint8  `json:"decimals"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
	CreateAt      int64  `json:"create_at"`
	UpdateAt      int64  `json:"update_at"`
	DeleteAt      int64  `json:"delete_at"`
}

type ReceiptHandler struct{}

func (h *ReceiptHandler) TableName() string {
	return "receipt"
}

func (h *ReceiptHandler) FindByTxHash(db *gorm.DB, txHash string) ([]*ReceiptModel, error) {
	var (
		datas []*ReceiptModel
		err   error
	)

	db = db.Where("delete_at = 0 and tx_hash = ?", txHash)

	if err = db.Table(h.TableName()).Order("op_index asc").Find(&datas).Error; err != nil {
		return nil, err
	}

	return datas, nil
}

func (h *ReceiptHandler) FindByBlockHash(db *gorm.DB, blockHash string) ([]*ReceiptModel, error) {
	var (
		datas []*ReceiptModel
		err   error
	)

	db = db.Where("delete_at = 0 and block_hash = ?", blockHash)

	if err = db.Table(h.TableName()).Order("tx_index asc, op_index asc").Find(&datas).Error; err != nil {
		return nil, err
	}

	return datas, nil
}

func (h *ReceiptHandler) Count(db *gorm.DB) (int64, error) {
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

func (h *ReceiptHandler) Create(db *gorm.DB, model *ReceiptModel) error {
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

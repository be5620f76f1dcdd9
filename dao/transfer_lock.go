package dao

import (
	"time"

	"github.com/fenghaojiang/BRC20S/pkg/utils"
	"gorm.io/gorm"
)

type ITransferLock interface {
	TableName() string
	Create(db *gorm.DB, model *TransferLockModel) error
	FindActive(db *gorm.DB) ([]*TransferLockModel, error)
	SelectByInscriptionId(db *gorm.DB, inscriptionId string) (*TransferLockModel, error)
	Consume(db *gorm.DB, id uint64) error
}

// TransferLockModel rows are never deleted; a consumed lock gets its
// delete_at stamped so history stays queryable.
type TransferLockModel struct {
	Id            uint64 `json:"id,string" gorm:"primaryKey"`
	InscriptionId string `json:"inscription_id"`
	Tick          string `json:"tick"`
	Address       string `json:"address"`
	Amount        string `json:"amount"`
	Satpoint      string `json:"satpoint"`
	Block         uint64 `json:"block"`
	CreateAt      int64  `json:"create_at"`
	UpdateAt      int64  `json:"update_at"`
	DeleteAt      int64  `json:"delete_at"`
}

type TransferLockHandler struct{}

func (h *TransferLockHandler) TableName() string {
	return "transfer_lock"
}

func (h *TransferLockHandler) FindActive(db *gorm.DB) ([]*TransferLockModel, error) {
	var (
		datas []*TransferLockModel
		err   error
	)

	db = db.Where("delete_at = ?", 0)

	if err = db.Table(h.TableName()).Find(&datas).Error; err != nil {
		return nil, err
	}

	return datas, nil
}

func (h *TransferLockHandler) SelectByInscriptionId(db *gorm.DB, inscriptionId string) (*TransferLockModel, error) {
	var (
		model TransferLockModel
		err   error
	)

	if err = db.Table(h.TableName()).Where("delete_at = 0 and inscription_id = ?", inscriptionId).First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func (h *TransferLockHandler) Create(db *gorm.DB, model *TransferLockModel) error {
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

func (h *TransferLockHandler) Consume(db *gorm.DB, id uint64) error {
	now := time.Now().Unix()
	data := map[string]interface{}{
		"update_at": now,
		"delete_at": now,
	}

	return db.Table(h.TableName()).Where("id = ?", id).UpdateColumns(data).Error
}

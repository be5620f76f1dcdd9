package service

import (
	"github.com/fenghaojiang/BRC20S/dao"
	"github.com/fenghaojiang/BRC20S/pkg/database"
	brc20stypes "github.com/fenghaojiang/BRC20S/pkg/types"
)

type ReceiptService struct {
	receiptDao dao.IReceipt
}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{
		receiptDao: &dao.ReceiptHandler{},
	}
}

func (s *ReceiptService) TxEvents(txHash string) (*brc20stypes.TxEvents, error) {
	receipts, err := s.receiptDao.FindByTxHash(database.Mysql(), txHash)
	if err != nil {
		return nil, err
	}

	res := &brc20stypes.TxEvents{
		Txid:   txHash,
		Events: make([]interface{}, 0, len(receipts)),
	}
	for _, ele := range receipts {
		res.Events = append(res.Events, brc20stypes.EventFromReceipt(ele))
	}
	return res, nil
}

// BlockEvents groups a block's receipts by transaction, preserving the
// tx_index then op_index order the rows were written in.
func (s *ReceiptService) BlockEvents(blockHash string) (*brc20stypes.BlockEvents, error) {
	receipts, err := s.receiptDao.FindByBlockHash(database.Mysql(), blockHash)
	if err != nil {
		return nil, err
	}

	res := &brc20stypes.BlockEvents{Block: make([]*brc20stypes.TxEvents, 0)}
	var current *brc20stypes.TxEvents
	for _, ele := range receipts {
		if current == nil || current.Txid != ele.TxHash {
			current = &brc20stypes.TxEvents{
				Txid:   ele.TxHash,
				Events: make([]interface{}, 0, 1),
			}
			res.Block = append(res.Block, current)
		}
		current.Events = append(current.Events, brc20stypes.EventFromReceipt(ele))
	}
	return res, nil
}

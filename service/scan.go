package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/fenghaojiang/BRC20S/config"
	"github.com/fenghaojiang/BRC20S/dao"
	"github.com/fenghaojiang/BRC20S/pkg/database"
	"github.com/fenghaojiang/BRC20S/pkg/global"
	"github.com/fenghaojiang/BRC20S/pkg/log"
	"github.com/fenghaojiang/BRC20S/pkg/num"
	"github.com/fenghaojiang/BRC20S/pkg/protocol"
	"github.com/fenghaojiang/BRC20S/pkg/utils"

	"github.com/ethereum/go-ethereum"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"gorm.io/gorm"
)

// ScanService replays the chain in canonical order and drives every decoded
// inscription through the protocol state machine. Receipts and the mutated
// ledger rows are written inside one transaction per block, so the query
// surface never observes a half-applied block.
type ScanService struct {
	tickDao    dao.ITick
	balanceDao dao.IBalance
	lockDao    dao.ITransferLock
	receiptDao dao.IReceipt
	state      *protocol.State
	conf       config.Config
}

func NewScanService() *ScanService {
	return &ScanService{
		tickDao:    &dao.TickHandler{},
		balanceDao: &dao.BalanceHandler{},
		lockDao:    &dao.TransferLockHandler{},
		receiptDao: &dao.ReceiptHandler{},
		state:      protocol.NewState(),
		conf:       config.GetConfig(),
	}
}

// envelopePeek reads the indexer-level fields of a payload: the protocol
// discriminant and, for a moving transfer inscription, the `ins` reference
// naming the inscription being moved. The state machine never sees `ins`.
type envelopePeek struct {
	P   string `json:"p"`
	Op  string `json:"op"`
	Ins string `json:"ins"`
}

// init warms the in-memory ledger from mysql so a restart resumes with the
// exact state the last committed block produced.
func (s *ScanService) init() error {
	db := database.Mysql()

	ticks, err := s.tickDao.Find(db)
	if err != nil {
		return err
	}
	for _, ele := range ticks {
		supply, err := num.NewFromString(ele.Max)
		if err != nil {
			return err
		}
		limit, err := num.NewFromString(ele.Lim)
		if err != nil {
			return err
		}
		minted, err := num.NewFromString(ele.Minted)
		if err != nil {
			return err
		}
		s.state.RestoreTicker(&protocol.Ticker{
			Tick:          ele.Tick,
			Supply:        supply,
			LimitPerMint:  limit,
			Decimals:      ele.Decimals,
			Minted:        minted,
			DeployBy:      ele.DeployBy,
			InscriptionID: ele.InscriptionId,
			DeployHeight:  ele.Block,
		})
	}

	balances, err := s.balanceDao.Find(db)
	if err != nil {
		return err
	}
	for _, ele := range balances {
		available, err := num.NewFromString(ele.Available)
		if err != nil {
			return err
		}
		transferable, err := num.NewFromString(ele.Transferable)
		if err != nil {
			return err
		}
		s.state.RestoreBalance(ele.Tick, ele.Address, available, transferable)
	}

	locks, err := s.lockDao.FindActive(db)
	if err != nil {
		return err
	}
	for _, ele := range locks {
		amount, err := num.NewFromString(ele.Amount)
		if err != nil {
			return err
		}
		s.state.RestoreLock(&protocol.TransferLock{
			InscriptionID: ele.InscriptionId,
			Tick:          ele.Tick,
			Owner:         ele.Address,
			Amount:        amount,
			Satpoint:      ele.Satpoint,
		})
	}

	return nil
}

func (s *ScanService) Scan() error {
	var err error
	if err = s.init(); err != nil {
		return err
	}

	block := s.conf.Chain.ScanBlock

	for {
		targetBN := new(big.Int).SetUint64(block)
		targetBlock, err := global.ChainClient().BlockByNumber(context.Background(), targetBN)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				time.Sleep(time.Second)
				continue
			}
			return err
		}

		if err = s.work(targetBlock); err != nil {
			return err
		}

		log.Sugar.Infof("currentScanBlock: %d", block)
		block++

		if err = config.SaveChainConfig(block); err != nil {
			return err
		}
	}
}

func (s *ScanService) work(block *ethtypes.Block) error {
	db := database.Mysql().Begin()
	defer db.Rollback()

	for index, tx := range block.Transactions() {
		if err := s.processTx(db, block, tx, index); err != nil {
			return err
		}
	}

	return db.Commit().Error
}

func (s *ScanService) processTx(db *gorm.DB, block *ethtypes.Block, tx *ethtypes.Transaction, index int) error {
	if tx.To() == nil {
		// contract creation carries no inscription receiver
		return nil
	}

	payloads, err := utils.ExtractInscriptions(tx.Data())
	if err != nil {
		log.Sugar.Debugf("tx: %s, error: %s", tx.Hash().Hex(), err)
		return nil
	}

	for opIndex, raw := range payloads {
		var peek envelopePeek
		if err := json.Unmarshal(raw, &peek); err != nil {
			log.Sugar.Debugf("tx: %s, error: %s", tx.Hash().Hex(), err)
			continue
		}
		if peek.P != protocol.Protocol {
			continue
		}

		txHash := tx.Hash().Hex()
		ctx := &protocol.Context{
			BlockHeight:   block.NumberU64(),
			BlockHash:     block.Hash().Hex(),
			BlockTime:     block.Time(),
			TxHash:        txHash,
			TxIndex:       uint64(index),
			OpIndex:       uint64(opIndex),
			InscriptionID: fmt.Sprintf("%s#%d", txHash, opIndex),
			NewSatpoint:   fmt.Sprintf("%s:%d:%d", txHash, index, opIndex),
			From:          strings.ToLower(utils.GetTxFrom(tx).Hex()),
			To:            strings.ToLower(tx.To().Hex()),
		}
		if peek.Op == protocol.OpTransfer && peek.Ins != "" {
			ctx.InscriptionID = peek.Ins
		}

		receipt, err := s.state.Apply(ctx, raw)
		if err != nil {
			if protocol.IsDecodeError(err) {
				log.Sugar.Debugf("tx: %s, error: %s", txHash, err)
				continue
			}
			return err
		}

		if err := s.persist(db, ctx, receipt); err != nil {
			return err
		}
	}

	return nil
}

// persist writes the receipt row and, for valid receipts, the ledger rows
// the operation touched. It mirrors exactly what the state machine mutated.
func (s *ScanService) persist(db *gorm.DB, ctx *protocol.Context, receipt *protocol.Receipt) error {
	if err := s.receiptDao.Create(db, receiptModel(ctx, receipt)); err != nil {
		return err
	}
	if !receipt.Valid() {
		return nil
	}

	switch event := receipt.Event.(type) {
	case *protocol.DeployEvent:
		return s.tickDao.Create(db, &dao.TickModel{
			Tick:          event.Tick,
			InscriptionId: ctx.InscriptionID,
			Block:         ctx.BlockHeight,
			BlockAt:       ctx.BlockTime,
			TxHash:        ctx.TxHash,
			TxIndex:       ctx.TxIndex,
			Decimals:      event.Decimals,
			Max:           event.Supply.String(),
			Lim:           event.LimitPerMint.String(),
			Minted:        "0",
			DeployBy:      receipt.From,
		})

	case *protocol.MintEvent:
		if err := s.upsertBalance(db, event.Tick, receipt.To); err != nil {
			return err
		}
		return s.updateMinted(db, event.Tick)

	case *protocol.InscribeTransferEvent:
		if err := s.upsertBalance(db, event.Tick, receipt.From); err != nil {
			return err
		}
		return s.lockDao.Create(db, &dao.TransferLockModel{
			InscriptionId: ctx.InscriptionID,
			Tick:          event.Tick,
			Address:       receipt.From,
			Amount:        event.Amount.String(),
			Satpoint:      ctx.NewSatpoint,
			Block:         ctx.BlockHeight,
		})

	case *protocol.TransferEvent:
		if err := s.upsertBalance(db, event.Tick, receipt.From); err != nil {
			return err
		}
		if err := s.upsertBalance(db, event.Tick, receipt.To); err != nil {
			return err
		}
		lock, err := s.lockDao.SelectByInscriptionId(db, ctx.InscriptionID)
		if err != nil {
			return err
		}
		return s.lockDao.Consume(db, lock.Id)
	}

	return nil
}

func (s *ScanService) upsertBalance(db *gorm.DB, tick, address string) error {
	balance := s.state.BalanceOf(tick, address)

	model, err := s.balanceDao.SelectByTickAddress(db, tick, address)
	if err != nil {
		if e := utils.Error(err, gorm.ErrRecordNotFound, tick, "first balance row for "+address); e != nil {
			return e
		}
		return s.balanceDao.Create(db, &dao.BalanceModel{
			Tick:         tick,
			Address:      address,
			Available:    balance.Available.String(),
			Transferable: balance.Transferable.String(),
		})
	}

	updates := map[string]interface{}{
		"available":    balance.Available.String(),
		"transferable": balance.Transferable.String(),
	}
	return s.balanceDao.UpdateAmounts(db, model.Id, updates)
}

func (s *ScanService) updateMinted(db *gorm.DB, tick string) error {
	ticker, ok := s.state.Ticker(tick)
	if !ok {
		return fmt.Errorf("tick %s minted but not registered", tick)
	}

	model, err := s.tickDao.SelectByTick(db, tick)
	if err != nil {
		return err
	}

	return s.tickDao.Update(db, model.Id, map[string]interface{}{
		"minted": ticker.Minted.String(),
	})
}

func receiptModel(ctx *protocol.Context, receipt *protocol.Receipt) *dao.ReceiptModel {
	model := &dao.ReceiptModel{
		Block:         ctx.BlockHeight,
		BlockHash:     ctx.BlockHash,
		BlockAt:       ctx.BlockTime,
		TxHash:        ctx.TxHash,
		TxIndex:       ctx.TxIndex,
		OpIndex:       ctx.OpIndex,
		InscriptionId: receipt.InscriptionID,
		OldSatpoint:   receipt.OldSatpoint,
		NewSatpoint:   receipt.NewSatpoint,
		From:          receipt.From,
		To:            receipt.To,
		Op:            receipt.Op,
		Valid:         receipt.Valid(),
		Msg:           receipt.Msg(),
	}

	switch event := receipt.Event.(type) {
	case *protocol.DeployEvent:
		model.Tick = event.Tick
		model.Max = event.Supply.String()
		model.Lim = event.LimitPerMint.String()
		model.Decimals = event.Decimals
	case *protocol.MintEvent:
		model.Tick = event.Tick
		model.Amt = event.Amount.String()
	case *protocol.InscribeTransferEvent:
		model.Tick = event.Tick
		model.Amt = event.Amount.String()
	case *protocol.TransferEvent:
		model.Tick = event.Tick
		model.Amt = event.Amount.String()
	}

	return model
}

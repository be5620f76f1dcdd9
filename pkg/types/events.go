package types

import "github.com/fenghaojiang/BRC20S/dao"

// Client-facing event payloads, one shape per operation kind plus the error
// shape. Amounts stay decimal strings end to end.

type ErrorEvent struct {
	Event         string `json:"type"`
	InscriptionId string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	From          string `json:"from"`
	To            string `json:"to"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

type DeployEvent struct {
	Event         string `json:"type"`
	Tick          string `json:"tick"`
	InscriptionId string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	Supply        string `json:"supply"`
	LimitPerMint  string `json:"limitPerMint"`
	Decimals      uint8  `json:"decimals"`
	From          string `json:"from"`
	To            string `json:"to"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

type MintEvent struct {
	Event         string `json:"type"`
	Tick          string `json:"tick"`
	InscriptionId string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	Amount        string `json:"amount"`
	From          string `json:"from"`
	To            string `json:"to"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

type InscribeTransferEvent struct {
	Event         string `json:"type"`
	Tick          string `json:"tick"`
	InscriptionId string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	Amount        string `json:"amount"`
	From          string `json:"from"`
	To            string `json:"to"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

type TransferEvent struct {
	Event         string `json:"type"`
	Tick          string `json:"tick"`
	InscriptionId string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	Amount        string `json:"amount"`
	From          string `json:"from"`
	To            string `json:"to"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

type TxEvents struct {
	Txid   string        `json:"txid"`
	Events []interface{} `json:"events"`
}

type BlockEvents struct {
	Block []*TxEvents `json:"block"`
}

// EventFromReceipt reshapes a stored receipt row into the client payload for
// its operation kind. Invalid receipts always take the error shape.
func EventFromReceipt(r *dao.ReceiptModel) interface{} {
	if !r.Valid {
		return &ErrorEvent{
			Event:         r.Op,
			InscriptionId: r.InscriptionId,
			OldSatpoint:   r.OldSatpoint,
			NewSatpoint:   r.NewSatpoint,
			From:          r.From,
			To:            r.To,
			Valid:         false,
			Msg:           r.Msg,
		}
	}

	switch r.Op {
	case "deploy":
		return &DeployEvent{
			Event:         r.Op,
			Tick:          r.Tick,
			InscriptionId: r.InscriptionId,
			OldSatpoint:   r.OldSatpoint,
			NewSatpoint:   r.NewSatpoint,
			Supply:        r.Max,
			LimitPerMint:  r.Lim,
			Decimals:      r.Decimals,
			From:          r.From,
			To:            r.To,
			Valid:         true,
			Msg:           r.Msg,
		}
	case "mint":
		return &MintEvent{
			Event:         r.Op,
			Tick:          r.Tick,
			InscriptionId: r.InscriptionId,
			OldSatpoint:   r.OldSatpoint,
			NewSatpoint:   r.NewSatpoint,
			Amount:        r.Amt,
			From:          r.From,
			To:            r.To,
			Valid:         true,
			Msg:           r.Msg,
		}
	case "inscribeTransfer":
		return &InscribeTransferEvent{
			Event:         r.Op,
			Tick:          r.Tick,
			InscriptionId: r.InscriptionId,
			OldSatpoint:   r.OldSatpoint,
			NewSatpoint:   r.NewSatpoint,
			Amount:        r.Amt,
			From:          r.From,
			To:            r.To,
			Valid:         true,
			Msg:           r.Msg,
		}
	default:
		return &TransferEvent{
			Event:         r.Op,
			Tick:          r.Tick,
			InscriptionId: r.InscriptionId,
			OldSatpoint:   r.OldSatpoint,
			NewSatpoint:   r.NewSatpoint,
			Amount:        r.Amt,
			From:          r.From,
			To:            r.To,
			Valid:         true,
			Msg:           r.Msg,
		}
	}
}

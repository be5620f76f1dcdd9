package protocol

import (
	"encoding/json"

	"github.com/fenghaojiang/BRC20S/pkg/num"
)

// Context carries everything about an inscription's position that the state
// machine cannot derive itself: where it sits in the chain, who sent it and
// who receives it.
type Context struct {
	BlockHeight   uint64
	BlockHash     string
	BlockTime     uint64
	TxHash        string
	TxIndex       uint64
	OpIndex       uint64
	InscriptionID string
	OldSatpoint   string
	NewSatpoint   string
	From          string
	To            string
}

// Event is the success payload of a receipt, one concrete type per variant.
type Event interface {
	eventKind() string
}

type DeployEvent struct {
	Tick         string
	Supply       num.Num
	LimitPerMint num.Num
	Decimals     uint8
}

func (DeployEvent) eventKind() string { return OpDeploy }

type MintEvent struct {
	Tick   string
	Amount num.Num
	// Msg notes the partial-mint cutoff when the requested amount exceeded
	// the remaining supply.
	Msg string
}

func (MintEvent) eventKind() string { return OpMint }

type InscribeTransferEvent struct {
	Tick   string
	Amount num.Num
}

func (InscribeTransferEvent) eventKind() string { return OpInscribeTransfer }

type TransferEvent struct {
	Tick   string
	Amount num.Num
}

func (TransferEvent) eventKind() string { return OpTransfer }

// Receipt is the immutable record of one processed inscription. Exactly one
// of Event and Err is set; the receipt log is append-only and never revised.
type Receipt struct {
	Op            string
	InscriptionID string
	OldSatpoint   string
	NewSatpoint   string
	From          string
	To            string
	Event         Event
	Err           error
}

func (r *Receipt) Valid() bool {
	return r.Err == nil
}

func (r *Receipt) Msg() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if e, ok := r.Event.(*MintEvent); ok && e.Msg != "" {
		return e.Msg
	}
	return "ok"
}

// receiptJSON is the canonical wire shape of a receipt. Replaying the same
// operation sequence must reproduce these bytes exactly.
type receiptJSON struct {
	Type          string `json:"type"`
	Tick          string `json:"tick,omitempty"`
	InscriptionID string `json:"inscriptionId"`
	OldSatpoint   string `json:"oldSatpoint"`
	NewSatpoint   string `json:"newSatpoint"`
	From          string `json:"from"`
	To            string `json:"to"`
	Supply        string `json:"supply,omitempty"`
	LimitPerMint  string `json:"limitPerMint,omitempty"`
	Decimals      *uint8 `json:"decimals,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Valid         bool   `json:"valid"`
	Msg           string `json:"msg"`
}

func (r *Receipt) MarshalJSON() ([]byte, error) {
	out := receiptJSON{
		Type:          r.Op,
		InscriptionID: r.InscriptionID,
		OldSatpoint:   r.OldSatpoint,
		NewSatpoint:   r.NewSatpoint,
		From:          r.From,
		To:            r.To,
		Valid:         r.Valid(),
		Msg:           r.Msg(),
	}

	switch e := r.Event.(type) {
	case *DeployEvent:
		out.Tick = e.Tick
		out.Supply = e.Supply.String()
		out.LimitPerMint = e.LimitPerMint.String()
		dec := e.Decimals
		out.Decimals = &dec
	case *MintEvent:
		out.Tick = e.Tick
		out.Amount = e.Amount.String()
	case *InscribeTransferEvent:
		out.Tick = e.Tick
		out.Amount = e.Amount.String()
	case *TransferEvent:
		out.Tick = e.Tick
		out.Amount = e.Amount.String()
	}

	return json.Marshal(out)
}

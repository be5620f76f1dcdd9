package protocol

import (
	"encoding/json"

	mapset "github.com/deckarep/golang-set/v2"
)

// Operation is one of the four protocol variants. The type switch over it in
// State.Apply is the single dispatch point; adding a variant without handling
// it there surfaces as an unknown-operation receipt, never silent acceptance.
type Operation interface {
	Kind() string
}

// Deploy registers a ticker. All numeric fields stay raw text here; the state
// machine converts them so that malformed numbers fail validation with a
// precise reason instead of failing the parse.
type Deploy struct {
	Tick string `json:"tick"`
	Max  string `json:"max"`
	Lim  string `json:"lim"`
	Dec  string `json:"dec"`
}

func (Deploy) Kind() string { return OpDeploy }

type Mint struct {
	Tick string `json:"tick"`
	// TickID optionally pins the mint to the deploy inscription of the pool
	// variant.
	TickID string `json:"tid,omitempty"`
	Amt    string `json:"amt"`
}

func (Mint) Kind() string { return OpMint }

type InscribeTransfer struct {
	Tick string `json:"tick"`
	Amt  string `json:"amt"`
}

func (InscribeTransfer) Kind() string { return OpInscribeTransfer }

type Transfer struct {
	Tick   string `json:"tick"`
	TickID string `json:"tid,omitempty"`
	Amt    string `json:"amt"`
}

func (Transfer) Kind() string { return OpTransfer }

var knownOps = mapset.NewSet(OpDeploy, OpMint, OpInscribeTransfer, OpTransfer)

// rawOperation covers the field superset of all variants. Pointer fields let
// required-field checks distinguish absent from empty; encoding/json applies
// last-write-wins to duplicate keys, which is the protocol rule.
type rawOperation struct {
	P      *string `json:"p"`
	Op     *string `json:"op"`
	Tick   *string `json:"tick"`
	TickID *string `json:"tid"`
	Max    *string `json:"max"`
	Lim    *string `json:"lim"`
	Dec    *string `json:"dec"`
	Amt    *string `json:"amt"`
}

// DecodeOperation interprets a payload as one of the four variants selected
// by the `op` discriminant. It never touches ledger state and never fails on
// semantically invalid but well-formed input.
func DecodeOperation(payload []byte) (Operation, error) {
	var raw rawOperation
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, ErrInvalidJson
	}

	if raw.Op == nil || !knownOps.ContainsOne(*raw.Op) {
		return nil, ErrUnknownOperation
	}
	if raw.Tick == nil {
		return nil, &ParseOperationJsonError{Field: "tick"}
	}

	switch *raw.Op {
	case OpDeploy:
		if raw.Max == nil {
			return nil, &ParseOperationJsonError{Field: "max"}
		}
		op := Deploy{Tick: *raw.Tick, Max: *raw.Max, Dec: DefaultDecimals}
		// lim defaults to the full supply, dec to the protocol maximum
		op.Lim = *raw.Max
		if raw.Lim != nil {
			op.Lim = *raw.Lim
		}
		if raw.Dec != nil {
			op.Dec = *raw.Dec
		}
		return op, nil

	case OpMint:
		if raw.Amt == nil {
			return nil, &ParseOperationJsonError{Field: "amt"}
		}
		op := Mint{Tick: *raw.Tick, Amt: *raw.Amt}
		if raw.TickID != nil {
			op.TickID = *raw.TickID
		}
		return op, nil

	case OpInscribeTransfer:
		if raw.Amt == nil {
			return nil, &ParseOperationJsonError{Field: "amt"}
		}
		return InscribeTransfer{Tick: *raw.Tick, Amt: *raw.Amt}, nil

	case OpTransfer:
		if raw.Amt == nil {
			return nil, &ParseOperationJsonError{Field: "amt"}
		}
		op := Transfer{Tick: *raw.Tick, Amt: *raw.Amt}
		if raw.TickID != nil {
			op.TickID = *raw.TickID
		}
		return op, nil
	}

	return nil, ErrUnknownOperation
}

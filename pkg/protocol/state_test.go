package protocol

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0x72b61c6014342d914470ec7ac2975be345796c2b"
	addrB = "0x3a72b18f943835de26b975f087c27ffa5ba5e50c"
)

type step struct {
	payload string
	ctx     *Context
}

func testCtx(txHash string, opIndex uint64, from, to string) *Context {
	return &Context{
		BlockHeight:   100,
		BlockHash:     "0xb10c",
		TxHash:        txHash,
		TxIndex:       0,
		OpIndex:       opIndex,
		InscriptionID: fmt.Sprintf("%s#%d", txHash, opIndex),
		NewSatpoint:   fmt.Sprintf("%s:0:%d", txHash, opIndex),
		From:          from,
		To:            to,
	}
}

func applyAll(t *testing.T, s *State, steps []step) []*Receipt {
	t.Helper()
	var receipts []*Receipt
	for _, st := range steps {
		r, err := s.Apply(st.ctx, []byte(st.payload))
		require.NoError(t, err)
		receipts = append(receipts, r)
	}
	return receipts
}

func TestDeploy(t *testing.T) {
	s := NewState()

	r, err := s.Apply(testCtx("0x01", 0, addrA, addrA),
		[]byte(`{"p":"brc-20s","op":"deploy","tick":"ORDI","max":"21000000","lim":"1000","dec":"8"}`))
	require.NoError(t, err)
	assert.True(t, r.Valid())

	event, ok := r.Event.(*DeployEvent)
	require.True(t, ok)
	assert.Equal(t, "ordi", event.Tick)
	assert.Equal(t, "21000000", event.Supply.String())
	assert.Equal(t, "1000", event.LimitPerMint.String())
	assert.Equal(t, uint8(8), event.Decimals)

	ticker, ok := s.Ticker("ordi")
	require.True(t, ok)
	assert.Equal(t, addrA, ticker.DeployBy)
	assert.Equal(t, "0x01#0", ticker.InscriptionID)
	assert.True(t, ticker.Minted.IsZero())
}

func TestDeployDuplicateTick(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"1000"}`, testCtx("0x01", 0, addrA, addrA)},
	})

	r, err := s.Apply(testCtx("0x02", 0, addrB, addrB),
		[]byte(`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"5000"}`))
	require.NoError(t, err)
	assert.False(t, r.Valid())

	var dup *DuplicateTickError
	assert.ErrorAs(t, r.Err, &dup)

	// first deploy untouched by the rejected attempt
	ticker, ok := s.Ticker("ordi")
	require.True(t, ok)
	assert.Equal(t, "1000", ticker.Supply.String())
	assert.Equal(t, addrA, ticker.DeployBy)
}

func TestDeployValidation(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantType string
	}{
		{
			"zero supply",
			`{"p":"brc-20s","op":"deploy","tick":"aaaa","max":"0"}`,
			"*protocol.InvalidSupplyError",
		},
		{
			"supply beyond u64 integer part",
			`{"p":"brc-20s","op":"deploy","tick":"aaaa","max":"18446744073709551616"}`,
			"*protocol.InvalidSupplyError",
		},
		{
			"malformed supply",
			`{"p":"brc-20s","op":"deploy","tick":"aaaa","max":"12x"}`,
			"*num.InvalidNumError",
		},
		{
			"decimals too large",
			`{"p":"brc-20s","op":"deploy","tick":"aaaa","max":"1000","dec":"19"}`,
			"*protocol.DecimalsTooLargeError",
		},
		{
			"limit above supply",
			`{"p":"brc-20s","op":"deploy","tick":"aaaa","max":"1000","lim":"2000"}`,
			"*protocol.InvalidAmountError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			r, err := s.Apply(testCtx("0x01", 0, addrA, addrA), []byte(tt.payload))
			require.NoError(t, err)
			assert.False(t, r.Valid())
			assert.Equal(t, tt.wantType, fmt.Sprintf("%T", r.Err))

			_, ok := s.Ticker("aaaa")
			assert.False(t, ok)
		})
	}
}

func TestMint(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"21000000","lim":"1000","dec":"8"}`, testCtx("0x01", 0, addrA, addrA)},
	})

	r, err := s.Apply(testCtx("0x02", 0, addrA, addrA),
		[]byte(`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"1000"}`))
	require.NoError(t, err)
	require.True(t, r.Valid())

	event := r.Event.(*MintEvent)
	assert.Equal(t, "1000", event.Amount.String())
	assert.Empty(t, event.Msg)

	balance := s.BalanceOf("ordi", addrA)
	assert.Equal(t, "1000", balance.Available.String())
	assert.True(t, balance.Transferable.IsZero())

	ticker, _ := s.Ticker("ordi")
	assert.Equal(t, "1000", ticker.Minted.String())
}

func TestMintValidation(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"21000000","lim":"1000","dec":"8"}`, testCtx("0x01", 0, addrA, addrA)},
	})

	tests := []struct {
		name     string
		payload  string
		wantType string
	}{
		{
			"unknown tick",
			`{"p":"brc-20s","op":"mint","tick":"sats","amt":"1"}`,
			"*protocol.TickNotFoundError",
		},
		{
			"mismatched tick id",
			`{"p":"brc-20s","op":"mint","tick":"ordi","tid":"0xff#0","amt":"1"}`,
			"*protocol.TickNotFoundError",
		},
		{
			"malformed amount",
			`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"-5"}`,
			"*num.InvalidNumError",
		},
		{
			"zero amount",
			`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"0"}`,
			"*protocol.InvalidAmountError",
		},
		{
			"scale above tick decimals",
			`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"0.000000001"}`,
			"*protocol.InvalidAmountError",
		},
		{
			"amount above per mint limit",
			`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"1001"}`,
			"*protocol.AmountExceedsLimitError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Apply(testCtx("0x02", 0, addrA, addrA), []byte(tt.payload))
			require.NoError(t, err)
			assert.False(t, r.Valid())
			assert.Equal(t, tt.wantType, fmt.Sprintf("%T", r.Err))
			assert.True(t, s.BalanceOf("ordi", addrA).Available.IsZero())
		})
	}
}

func TestMintPartialCutoff(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"1000","lim":"1000","dec":"0"}`, testCtx("0x01", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"900"}`, testCtx("0x02", 0, addrA, addrA)},
	})

	// 100 remaining; a request for 200 mints the remainder and still succeeds
	r, err := s.Apply(testCtx("0x03", 0, addrA, addrA),
		[]byte(`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"200"}`))
	require.NoError(t, err)
	require.True(t, r.Valid())

	event := r.Event.(*MintEvent)
	assert.Equal(t, "100", event.Amount.String())
	assert.Contains(t, event.Msg, "cut off")

	ticker, _ := s.Ticker("ordi")
	assert.Equal(t, "1000", ticker.Minted.String())
	assert.Equal(t, "1000", s.BalanceOf("ordi", addrA).Available.String())

	// supply now exhausted
	r, err = s.Apply(testCtx("0x04", 0, addrA, addrA),
		[]byte(`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"1"}`))
	require.NoError(t, err)
	assert.False(t, r.Valid())
	var exhausted *SupplyExhaustedError
	assert.ErrorAs(t, r.Err, &exhausted)
}

func TestInscribeTransferInsufficientBalance(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"ordi","max":"1000","lim":"1000","dec":"0"}`, testCtx("0x01", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"100"}`, testCtx("0x02", 0, addrA, addrA)},
	})

	r, err := s.Apply(testCtx("0x03", 0, addrA, addrA),
		[]byte(`{"p":"brc-20s","op":"inscribeTransfer","tick":"ordi","amt":"200"}`))
	require.NoError(t, err)
	assert.False(t, r.Valid())

	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, r.Err, &insufficient)
	assert.Equal(t, "100", insufficient.Have.String())
	assert.Equal(t, "200", insufficient.Need.String())

	// no partial mutation
	balance := s.BalanceOf("ordi", addrA)
	assert.Equal(t, "100", balance.Available.String())
	assert.True(t, balance.Transferable.IsZero())
	_, ok := s.Lock("0x03#0")
	assert.False(t, ok)
}

func TestTransferLifecycle(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"x","max":"1000","lim":"1000","dec":"0"}`, testCtx("0x01", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"mint","tick":"x","amt":"500"}`, testCtx("0x02", 0, addrA, addrA)},
	})

	inscribeCtx := testCtx("0x03", 0, addrA, addrA)
	r, err := s.Apply(inscribeCtx, []byte(`{"p":"brc-20s","op":"inscribeTransfer","tick":"x","amt":"200"}`))
	require.NoError(t, err)
	require.True(t, r.Valid())

	balance := s.BalanceOf("x", addrA)
	assert.Equal(t, "300", balance.Available.String())
	assert.Equal(t, "200", balance.Transferable.String())

	lock, ok := s.Lock("0x03#0")
	require.True(t, ok)
	assert.Equal(t, addrA, lock.Owner)
	assert.Equal(t, "200", lock.Amount.String())

	// the inscription moves A -> B
	moveCtx := testCtx("0x04", 0, addrA, addrB)
	moveCtx.InscriptionID = "0x03#0"
	r, err = s.Apply(moveCtx, []byte(`{"p":"brc-20s","op":"transfer","tick":"x","amt":"200"}`))
	require.NoError(t, err)
	require.True(t, r.Valid())
	// old satpoint resolves to the inscribe location
	assert.Equal(t, "0x03:0:0", r.OldSatpoint)

	balance = s.BalanceOf("x", addrA)
	assert.Equal(t, "300", balance.Available.String())
	assert.True(t, balance.Transferable.IsZero())
	assert.Equal(t, "200", s.BalanceOf("x", addrB).Available.String())

	// the lock is consumed exactly once
	_, ok = s.Lock("0x03#0")
	assert.False(t, ok)

	again := testCtx("0x05", 0, addrB, addrA)
	again.InscriptionID = "0x03#0"
	r, err = s.Apply(again, []byte(`{"p":"brc-20s","op":"transfer","tick":"x","amt":"200"}`))
	require.NoError(t, err)
	assert.False(t, r.Valid())
	var notFound *LockNotFoundError
	assert.ErrorAs(t, r.Err, &notFound)
}

func TestTransferLockNotFound(t *testing.T) {
	s := NewState()
	applyAll(t, s, []step{
		{`{"p":"brc-20s","op":"deploy","tick":"x","max":"1000"}`, testCtx("0x01", 0, addrA, addrA)},
	})

	ctx := testCtx("0x02", 0, addrA, addrB)
	ctx.InscriptionID = "0xdead#0"
	r, err := s.Apply(ctx, []byte(`{"p":"brc-20s","op":"transfer","tick":"x","amt":"1"}`))
	require.NoError(t, err)
	assert.False(t, r.Valid())

	var notFound *LockNotFoundError
	require.ErrorAs(t, r.Err, &notFound)
	assert.Equal(t, "0xdead#0", notFound.InscriptionID)
}

func TestReplayDeterminism(t *testing.T) {
	steps := []step{
		{`{"p":"brc-20s","op":"deploy","tick":"x","max":"1000","lim":"1000","dec":"0"}`, testCtx("0x01", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"mint","tick":"x","amt":"500"}`, testCtx("0x02", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"inscribeTransfer","tick":"x","amt":"200"}`, testCtx("0x03", 0, addrA, addrA)},
		{`{"p":"brc-20s","op":"mint","tick":"x","amt":"600"}`, testCtx("0x04", 0, addrB, addrB)},
		{`{"p":"brc-20s","op":"inscribeTransfer","tick":"x","amt":"9999"}`, testCtx("0x05", 0, addrB, addrB)},
	}
	move := testCtx("0x06", 0, addrA, addrB)
	move.InscriptionID = "0x03#0"
	steps = append(steps, step{`{"p":"brc-20s","op":"transfer","tick":"x","amt":"200"}`, move})

	run := func() []byte {
		s := NewState()
		receipts := applyAll(t, s, steps)
		b, err := json.Marshal(receipts)
		require.NoError(t, err)
		return b
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)

	// spot check the serialized shape
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, "deploy", decoded[0]["type"])
	assert.Equal(t, true, decoded[0]["valid"])
	assert.Equal(t, false, decoded[4]["valid"])
	assert.Equal(t, "transfer", decoded[5]["type"])
}

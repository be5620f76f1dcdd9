package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDeploy(t *testing.T) {
	payload := `{"p":"brc-20s","op":"deploy","tick":"ordi","max":"21000000","lim":"1000","dec":"8"}`

	op, err := DecodeOperation([]byte(payload))
	assert.NoError(t, err)
	assert.Equal(t, Deploy{Tick: "ordi", Max: "21000000", Lim: "1000", Dec: "8"}, op)
	assert.Equal(t, OpDeploy, op.Kind())
}

func TestDecodeDeployDefaults(t *testing.T) {
	payload := `{"p":"brc-20s","op":"deploy","tick":"ordi","max":"21000000"}`

	op, err := DecodeOperation([]byte(payload))
	assert.NoError(t, err)
	// lim defaults to the supply, dec to 18
	assert.Equal(t, Deploy{Tick: "ordi", Max: "21000000", Lim: "21000000", Dec: "18"}, op)
}

func TestDecodeMint(t *testing.T) {
	op, err := DecodeOperation([]byte(`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"1000"}`))
	assert.NoError(t, err)
	assert.Equal(t, Mint{Tick: "ordi", Amt: "1000"}, op)

	op, err = DecodeOperation([]byte(`{"p":"brc-20s","op":"mint","tid":"abc#0","tick":"ordi","amt":"1000"}`))
	assert.NoError(t, err)
	assert.Equal(t, Mint{Tick: "ordi", TickID: "abc#0", Amt: "1000"}, op)
}

func TestDecodeTransferVariants(t *testing.T) {
	op, err := DecodeOperation([]byte(`{"p":"brc-20s","op":"inscribeTransfer","tick":"ordi","amt":"12.5"}`))
	assert.NoError(t, err)
	assert.Equal(t, InscribeTransfer{Tick: "ordi", Amt: "12.5"}, op)

	op, err = DecodeOperation([]byte(`{"p":"brc-20s","op":"transfer","tid":"tid","tick":"tick","amt":"amt"}`))
	assert.NoError(t, err)
	assert.Equal(t, Transfer{Tick: "tick", TickID: "tid", Amt: "amt"}, op)
}

func TestDecodeUnknownOperation(t *testing.T) {
	_, err := DecodeOperation([]byte(`{"p":"brc-20s","op":"burn","tick":"ordi","amt":"1"}`))
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.True(t, IsDecodeError(err))

	_, err = DecodeOperation([]byte(`{"p":"brc-20s","tick":"ordi","amt":"1"}`))
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestDecodeMissingRequiredField(t *testing.T) {
	_, err := DecodeOperation([]byte(`{"p":"brc-20s","op":"transfer","tick":"tick"}`))
	var parseErr *ParseOperationJsonError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "missing field `amt`", parseErr.Error())
	assert.True(t, IsDecodeError(err))

	_, err = DecodeOperation([]byte(`{"p":"brc-20s","op":"deploy","max":"100"}`))
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "missing field `tick`", parseErr.Error())

	_, err = DecodeOperation([]byte(`{"p":"brc-20s","op":"deploy","tick":"ordi"}`))
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "missing field `max`", parseErr.Error())
}

func TestDecodeDuplicateKeyLastWins(t *testing.T) {
	payload := `{
		"p": "brc-20s",
		"op": "transfer",
		"tid": "tid",
		"tick": "tick-1",
		"tick": "tick-2",
		"amt": "amt"
	}`

	op, err := DecodeOperation([]byte(payload))
	assert.NoError(t, err)
	assert.Equal(t, Transfer{Tick: "tick-2", TickID: "tid", Amt: "amt"}, op)
}

func TestDecodeMalformedJson(t *testing.T) {
	_, err := DecodeOperation([]byte(`{"p":"brc-20s","op":`))
	assert.ErrorIs(t, err, ErrInvalidJson)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeNeverValidatesSemantics(t *testing.T) {
	// zero amounts are well-formed here; the state machine rejects them
	op, err := DecodeOperation([]byte(`{"p":"brc-20s","op":"mint","tick":"ordi","amt":"0"}`))
	assert.NoError(t, err)
	assert.Equal(t, Mint{Tick: "ordi", Amt: "0"}, op)
}

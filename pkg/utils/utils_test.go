package utils

import (
	"testing"

	"github.com/status-im/keycard-go/hexutils"
	"github.com/stretchr/testify/assert"
)

func TestExtractInscriptionsSingle(t *testing.T) {
	payload := `data:,{"p":"brc-20s","op":"deploy","tick":"fans","max":"3388230","lim":"1"}`
	input := "0x" + hexutils.BytesToHex([]byte(payload))

	msgs, err := ExtractInscriptions(input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(msgs))
	assert.JSONEq(t, `{"p":"brc-20s","op":"deploy","tick":"fans","max":"3388230","lim":"1"}`, string(msgs[0]))
}

func TestExtractInscriptionsBulk(t *testing.T) {
	payload := `data:application/json,[` +
		`{"p":"brc-20s","op":"mint","tick":"fans","amt":"1"},` +
		`{"p":"brc-20s","op":"mint","tick":"fans","amt":"2"}]`

	msgs, err := ExtractInscriptions([]byte(payload))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(msgs))
	assert.JSONEq(t, `{"p":"brc-20s","op":"mint","tick":"fans","amt":"2"}`, string(msgs[1]))
}

func TestExtractInscriptionsNotAnEnvelope(t *testing.T) {
	msgs, err := ExtractInscriptions([]byte("a9059cbb000000"))
	assert.NoError(t, err)
	assert.Nil(t, msgs)

	// unsupported media type
	msgs, err = ExtractInscriptions([]byte("data:text/plain,hello"))
	assert.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestExtractInscriptionsBrokenBulk(t *testing.T) {
	_, err := ExtractInscriptions([]byte(`data:,[{"p":"brc-20s"`))
	assert.Error(t, err)
}

func TestIsValidERCAddress(t *testing.T) {
	addr, ok := IsValidERCAddress("0x72b61c6014342d914470eC7aC2975bE345796c2b")
	assert.True(t, ok)
	assert.Equal(t, "0x72b61c6014342d914470ec7ac2975be345796c2b", addr)

	_, ok = IsValidERCAddress("0x72b61c6014342d914470eC7aC2975bE345796c2b+")
	assert.False(t, ok)

	_, ok = IsValidERCAddress("")
	assert.False(t, ok)
}

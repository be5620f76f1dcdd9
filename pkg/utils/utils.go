package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/fenghaojiang/BRC20S/pkg/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	bscChainID   = big.NewInt(56)
	londonSigner = types.NewLondonSigner(bscChainID)
	eIP155Signer = types.NewEIP155Signer(bscChainID)
	dataRe, _    = regexp.Compile("data:([^\"]*),(.*)")
)

// GetTxFrom recovers the sender of a transaction from its signature.
func GetTxFrom(tx *types.Transaction) common.Address {
	var from common.Address
	switch tx.Type() {
	case types.LegacyTxType:
		from, _ = types.Sender(eIP155Signer, tx)
	case types.DynamicFeeTxType:
		from, _ = types.Sender(londonSigner, tx)
	}

	return from
}

// Error logs and swallows ignoreErr, anything else propagates.
func Error(err, ignoreErr error, tx, msg string) error {
	if errors.Is(err, ignoreErr) {
		log.Sugar.Debugf("tx: %s, error: %s", tx, msg)
		return nil
	}

	return err
}

// IsValidERCAddress reports whether s is a hex address and returns its
// lowercased form.
func IsValidERCAddress(s string) (string, bool) {
	if !common.IsHexAddress(s) {
		return s, false
	}

	return strings.ToLower(s), true
}

// ExtractInscriptions splits an inscription envelope out of transaction
// calldata. The envelope is utf8 `data:,{...}` or `data:application/json,`
// followed by a single operation object or a bulk array of them. Calldata
// that is no envelope at all yields (nil, nil); a broken envelope yields an
// error so the caller can log it.
func ExtractInscriptions(i interface{}) ([]json.RawMessage, error) {
	var utfStr string
	switch v := i.(type) {
	case string:
		b, e := hexutil.Decode(v)
		if e != nil {
			return nil, e
		}
		utfStr = string(b)
	case []byte:
		utfStr = string(v)
	default:
		return nil, fmt.Errorf("unsupported type: %T", i)
	}

	rs := dataRe.FindStringSubmatch(utfStr)
	if len(rs) != 3 {
		return nil, nil
	}
	if rs[1] != "" && rs[1] != "application/json" {
		return nil, nil
	}

	s := strings.TrimSpace(rs[2])
	if s == "" {
		return nil, nil
	}

	switch s[0] {
	case '{':
		return []json.RawMessage{json.RawMessage(s)}, nil
	case '[':
		var msgs []json.RawMessage
		if err := json.Unmarshal([]byte(s), &msgs); err != nil {
			return nil, err
		}
		return msgs, nil
	}

	return nil, nil
}

package num

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDecimalWidth is the protocol limit on fractional digits.
const MaxDecimalWidth = 18

var (
	maxUint8  = decimal.NewFromInt(255)
	maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)
	maxUint128 = decimal.NewFromBigInt(new(big.Int).Sub(
		new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)), 0)
)

// Num is a non-negative decimal with protocol-bounded fractional width.
// Construct it through NewFromString or the checked arithmetic; never mutate it.
type Num struct {
	dec decimal.Decimal
}

func Zero() Num {
	return Num{decimal.Zero}
}

func FromUint64(n uint64) Num {
	return Num{decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)}
}

// NewFromString parses a protocol amount. A leading bare decimal point, any
// sign and more than MaxDecimalWidth fractional digits are rejected.
func NewFromString(s string) (Num, error) {
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Num{}, &InvalidNumError{Value: s}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Num{}, &InvalidNumError{Value: s}
	}
	if d.IsNegative() {
		return Num{}, &InvalidNumError{Value: s}
	}
	if d.Exponent() < -MaxDecimalWidth {
		return Num{}, &InvalidNumError{Value: s}
	}

	return Num{d}, nil
}

func (n Num) CheckedAdd(other Num) (Num, error) {
	return Num{n.dec.Add(other.dec)}, nil
}

// CheckedSub is the primary double-spend guard: it fails whenever n < other.
func (n Num) CheckedSub(other Num) (Num, error) {
	if n.dec.Cmp(other.dec) < 0 {
		return Num{}, &UnderflowError{A: n, B: other}
	}

	return Num{n.dec.Sub(other.dec)}, nil
}

func (n Num) CheckedMul(other Num) (Num, error) {
	return Num{n.dec.Mul(other.dec)}, nil
}

// CheckedPowU raises n to an unsigned power by exact repeated multiplication.
// powu(0) == 0 is a protocol quirk, not the mathematical identity; keep it.
func (n Num) CheckedPowU(exp uint64) (Num, error) {
	switch exp {
	case 0:
		return Zero(), nil
	case 1:
		return n, nil
	default:
		result := n.dec
		for i := uint64(1); i < exp; i++ {
			result = result.Mul(n.dec)
		}
		return Num{result}, nil
	}
}

func (n Num) CheckedToUint8() (uint8, error) {
	i := n.dec.BigInt()
	if i.Sign() < 0 || i.Cmp(maxUint8.BigInt()) > 0 {
		return 0, &OverflowError{Op: "to_u8", Org: n, Limit: Num{maxUint8}}
	}

	return uint8(i.Uint64()), nil
}

func (n Num) CheckedToUint64() (uint64, error) {
	i := n.dec.BigInt()
	if i.Sign() < 0 || i.Cmp(maxUint64.BigInt()) > 0 {
		return 0, &OverflowError{Op: "to_u64", Org: n, Limit: Num{maxUint64}}
	}

	return i.Uint64(), nil
}

// CheckedToUint128 truncates the fractional part and fails when the integer
// part does not fit 128 bits.
func (n Num) CheckedToUint128() (*big.Int, error) {
	i := n.dec.BigInt()
	if i.Sign() < 0 || i.Cmp(maxUint128.BigInt()) > 0 {
		return nil, &OverflowError{Op: "to_u128", Org: n, Limit: Num{maxUint128}}
	}

	return i, nil
}

func (n Num) Sign() int {
	return n.dec.Sign()
}

func (n Num) IsZero() bool {
	return n.dec.IsZero()
}

// Scale is the count of fractional digits as parsed.
func (n Num) Scale() int32 {
	if n.dec.Exponent() >= 0 {
		return 0
	}
	return -n.dec.Exponent()
}

func (n Num) Cmp(other Num) int {
	return n.dec.Cmp(other.dec)
}

func (n Num) Equal(other Num) bool {
	return n.dec.Equal(other.dec)
}

// String renders the numerically normalized form, trailing zeros stripped.
func (n Num) String() string {
	return n.dec.String()
}

func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", n.String())), nil
}

func (n *Num) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InvalidNumError{Value: string(data)}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return &InvalidNumError{Value: s}
	}
	n.dec = d

	return nil
}

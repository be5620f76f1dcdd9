package protocol

import (
	"math"

	"github.com/fenghaojiang/BRC20S/pkg/num"
)

// Protocol is the discriminant every inscription payload must carry in `p`.
const Protocol = "brc-20s"

const (
	OpDeploy           = "deploy"
	OpMint             = "mint"
	OpInscribeTransfer = "inscribeTransfer"
	OpTransfer         = "transfer"
)

// MaxDecimals bounds the `dec` field of a deploy; DefaultDecimals applies
// when a deploy omits it.
const (
	MaxDecimals     = uint8(num.MaxDecimalWidth)
	DefaultDecimals = "18"
)

// maxSupply is the protocol cap on a ticker's total supply: a 64 bit integer
// part.
var maxSupply = num.FromUint64(math.MaxUint64)

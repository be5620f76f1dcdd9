package protocol

import (
	"errors"
	"fmt"

	"github.com/fenghaojiang/BRC20S/pkg/num"
)

// ErrUnknownOperation reports a payload whose `op` discriminant is missing or
// names no known variant.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrInvalidJson reports a payload that is not a well-formed JSON object.
var ErrInvalidJson = errors.New("invalid json")

// ParseOperationJsonError reports a well-formed payload missing a field the
// selected variant requires.
type ParseOperationJsonError struct {
	Field string
}

func (e *ParseOperationJsonError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// IsDecodeError distinguishes decode failures, which never produce a receipt
// with a resolved operation type, from validation failures, which always do.
func IsDecodeError(err error) bool {
	var parseErr *ParseOperationJsonError
	return errors.Is(err, ErrUnknownOperation) || errors.Is(err, ErrInvalidJson) || errors.As(err, &parseErr)
}

type DuplicateTickError struct {
	Tick string
}

func (e *DuplicateTickError) Error() string {
	return fmt.Sprintf("tick %s has been existed", e.Tick)
}

type TickNotFoundError struct {
	Tick string
}

func (e *TickNotFoundError) Error() string {
	return fmt.Sprintf("tick %s not found", e.Tick)
}

type InvalidSupplyError struct {
	Supply num.Num
}

func (e *InvalidSupplyError) Error() string {
	return fmt.Sprintf("invalid supply: %s", e.Supply)
}

type DecimalsTooLargeError struct {
	Decimals uint8
}

func (e *DecimalsTooLargeError) Error() string {
	return fmt.Sprintf("decimals %d too large", e.Decimals)
}

type InvalidAmountError struct {
	Amount string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Amount)
}

type AmountExceedsLimitError struct {
	Amount num.Num
	Limit  num.Num
}

func (e *AmountExceedsLimitError) Error() string {
	return fmt.Sprintf("amount %s exceeds per mint limit %s", e.Amount, e.Limit)
}

type SupplyExhaustedError struct {
	Tick string
}

func (e *SupplyExhaustedError) Error() string {
	return fmt.Sprintf("supply of %s has been exhausted", e.Tick)
}

type InsufficientBalanceError struct {
	Have num.Num
	Need num.Num
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, need %s", e.Have, e.Need)
}

type LockNotFoundError struct {
	InscriptionID string
}

func (e *LockNotFoundError) Error() string {
	return fmt.Sprintf("transferable inscription %s not found", e.InscriptionID)
}

package num

import "fmt"

// InvalidNumError reports text that does not satisfy the protocol's numeric
// contract: non-numeric content, a sign, a leading bare decimal point or a
// fractional width beyond MaxDecimalWidth.
type InvalidNumError struct {
	Value string
}

func (e *InvalidNumError) Error() string {
	return fmt.Sprintf("invalid number: %s", e.Value)
}

// UnderflowError is returned by CheckedSub when the subtrahend exceeds the
// minuend.
type UnderflowError struct {
	A Num
	B Num
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("numeric underflow: %s - %s", e.A, e.B)
}

// OverflowError is returned by the narrowing conversions; it carries the
// operation name, the original value and the limit that was exceeded so the
// caller can log it without re-deriving anything.
type OverflowError struct {
	Op    string
	Org   Num
	Limit Num
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("numeric overflow: %s(%s) exceeds %s", e.Op, e.Org, e.Limit)
}

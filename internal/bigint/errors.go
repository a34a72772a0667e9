package bigint

import "errors"

// Error kinds reported by the engine. Every failing operation returns one of
// these wrapped in an *OpError, so callers match with errors.Is.
var (
	ErrOverflow            = errors.New("overflow")
	ErrUnderflow           = errors.New("underflow")
	ErrInvalidDigit        = errors.New("invalid digit")
	ErrInvalidRadix        = errors.New("invalid radix")
	ErrDivideByZero        = errors.New("division by zero")
	ErrNoInverse           = errors.New("no modular inverse")
	ErrNonPositiveExponent = errors.New("negative exponent")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
)

// OpError records the operation that failed and the error kind it failed with.
type OpError struct {
	Op     string
	Err    error
	Detail string
}

func (e *OpError) Error() string {
	msg := "bigint: " + e.Op + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, kind error) error {
	return &OpError{Op: op, Err: kind}
}

func opErrDetail(op string, kind error, detail string) error {
	return &OpError{Op: op, Err: kind, Detail: detail}
}

// rangeErr picks the overflow kind from the sign the true result should have.
func rangeErr(op string, neg bool) error {
	if neg {
		return opErr(op, ErrUnderflow)
	}
	return opErr(op, ErrOverflow)
}

// withOp re-labels an engine error raised by a nested operation.
func withOp(op string, err error) error {
	var oe *OpError
	if errors.As(err, &oe) {
		return &OpError{Op: op, Err: oe.Err, Detail: oe.Detail}
	}
	return err
}

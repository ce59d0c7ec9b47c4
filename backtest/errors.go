package backtest

import (
	"errors"
	"fmt"
)

// Whole-request failures. Match with errors.Is.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error is a structured backtest failure: a sentinel kind plus a message
// fit for the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Code is the stable machine-readable name of the failure kind.
func (e *Error) Code() string {
	switch e.Kind {
	case ErrInsufficientData:
		return "insufficient_data"
	case ErrUnknownStrategy:
		return "unknown_strategy"
	case ErrInvalidInput:
		return "invalid_input"
	}
	return "internal"
}

func failf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the failure code from any error, "internal" when err
// is not a backtest failure.
func ErrorCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code()
	}
	return "internal"
}

package model

import (
	"errors"
	"fmt"
)

// Error kinds returned by the data access layer. Callers match them with
// errors.Is; the wrapped cause stays reachable through errors.As.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrConnectivity     = errors.New("store unavailable")
	ErrQuery            = errors.New("query failed")
	ErrDataIntegrity    = errors.New("data integrity violation")
)

// Error carries the failing operation, its kind and the underlying cause.
type Error struct {
	Op   string // operation name, e.g. "reserveSeat"
	Kind error  // one of the Err* kinds above
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrap builds an *Error of the given kind.
func Wrap(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Invalid reports a rejected input.
func Invalid(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound reports a missing referenced entity.
func NotFound(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrNotFound, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or nil when err carries none.
func KindOf(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrCapacityExceeded, ErrConnectivity, ErrDataIntegrity, ErrQuery} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

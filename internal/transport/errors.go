package transport

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoReply indicates a call returned neither a reply nor an error.
var ErrNoReply = errors.New("no reply received")

// Error is a failure below HTTP semantics: the exchange did not complete, or
// its payload could not be decoded.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err as a transport failure. It returns nil for a nil err.
func NewError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool {
	var te *Error
	return errors.As(err, &te)
}

// IsTimeout reports whether err wraps a network timeout.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Package procerr defines the errors shared across the processed module.
//
// ErrCancelled and ErrReset are control-flow signals that an operation body
// may return to request cooperative cancellation. They are recovered by the
// controller running the body and are never surfaced through a state cell.
package procerr

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled requests plain cancellation: the operation is abandoned and
// the bound state cell is left exactly as it was.
var ErrCancelled = errors.New("operation cancelled")

// ErrReset requests a computed self-cancellation: the operation is abandoned
// and the bound state cell is cleared to its empty variant.
var ErrReset = errors.New("operation reset")

// IsCancellation reports whether err is a plain cancellation, including
// context cancellation and deadline expiry from the surrounding scheduler.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// IsReset reports whether err is a reset signal.
func IsReset(err error) bool {
	return errors.Is(err, ErrReset)
}

// A ConfigurationError is returned when a component's configuration has
// invalid values.
type ConfigurationError struct {
	Component string
	Err       error
}

var _ error = (*ConfigurationError)(nil)

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Component, e.Err.Error())
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

package types

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors wrap one of these so callers classify with errors.Is.
var (
	ErrDataUnavailable    = errors.New("data unavailable")
	ErrTransportFailure   = errors.New("transport failure")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUserDeclined       = errors.New("user declined")
)

var (
	ErrNotDelegated          = fmt.Errorf("%w: stake is not delegated", ErrDataUnavailable)
	ErrMissingReserveData    = fmt.Errorf("%w: no rent exempt reserve data for stake", ErrDataUnavailable)
	ErrUnsupportedEpochDelta = fmt.Errorf("%w: unsupported target epoch delta", ErrInvariantViolation)
	ErrNegativeActiveStake   = fmt.Errorf("%w: negative active stake", ErrInvariantViolation)
	ErrActiveStakeOverflow   = fmt.Errorf("%w: active stake overflows u64", ErrInvariantViolation)
)

// NewTransportError marks err as an RPC/network failure.
func NewTransportError(method string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransportFailure, method, err)
}

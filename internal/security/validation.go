package security

import (
	"errors"
	"math/big"
)

var (
	// ErrInvalidRange is returned when a scalar is outside its expected range
	ErrInvalidRange = errors.New("value out of valid range")

	// ErrNilValue is returned when a required value is nil
	ErrNilValue = errors.New("nil value provided")
)

// ValidateScalarInRange checks that value lies in [1, max).
// Used for private keys and nonces against the group order, and for
// signature components; a zero scalar is never acceptable in any of
// those roles.
func ValidateScalarInRange(value, max *big.Int) error {
	if value == nil || max == nil {
		return ErrNilValue
	}

	if value.Sign() <= 0 {
		return ErrInvalidRange
	}

	if value.Cmp(max) >= 0 {
		return ErrInvalidRange
	}

	return nil
}

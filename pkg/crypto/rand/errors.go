package rand

import "errors"

var (
	// ErrInvalidLength is returned when a non-positive byte count is requested
	ErrInvalidLength = errors.New("invalid length: must be positive")

	// ErrNilMax is returned when the scalar upper bound is nil
	ErrNilMax = errors.New("max cannot be nil")

	// ErrInvalidMax is returned when the scalar upper bound is not positive
	ErrInvalidMax = errors.New("max must be positive")
)

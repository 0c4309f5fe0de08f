package curve

import "errors"

var (
	// ErrInvalidPoint is returned when a point is nil, malformed, or fails
	// the curve equation
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrInvalidScalar is returned when a scalar is nil or out of range
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrScalarZero is returned when a scalar reduces to zero
	ErrScalarZero = errors.New("scalar is zero")

	// ErrInvalidEncoding is returned when a point encoding cannot be parsed
	ErrInvalidEncoding = errors.New("invalid point encoding")

	// ErrPointNotOnCurve is returned when an x-coordinate has no square
	// root on the curve
	ErrPointNotOnCurve = errors.New("point not on curve")

	// ErrPointAtInfinity is returned when an operation that must yield a
	// finite point produces the point at infinity
	ErrPointAtInfinity = errors.New("point at infinity")
)

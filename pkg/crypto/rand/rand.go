// Package rand provides cryptographically secure random number generation
// for key material.
package rand

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Reader is the default cryptographically secure random source.
var Reader io.Reader = rand.Reader

// GenerateRandomBytes generates n cryptographically secure random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	bytes := make([]byte, n)
	if _, err := io.ReadFull(Reader, bytes); err != nil {
		return nil, err
	}

	return bytes, nil
}

// GenerateRandomScalar generates a uniform scalar in [1, max).
// Zero draws are rejected and redrawn, which preserves uniformity over the
// accepted range.
func GenerateRandomScalar(max *big.Int) (*big.Int, error) {
	if max == nil {
		return nil, ErrNilMax
	}

	if max.Sign() <= 0 {
		return nil, ErrInvalidMax
	}

	value, err := rand.Int(Reader, max)
	if err != nil {
		return nil, err
	}

	for value.Sign() == 0 {
		value, err = rand.Int(Reader, max)
		if err != nil {
			return nil, err
		}
	}

	return value, nil
}

// Package security provides secret-hygiene and constant-time utilities for
// the signing core: guaranteed wipes of key and nonce material, fixed-time
// comparison and selection, and the modular arithmetic helpers used on
// secret-dependent values.
package security

import (
	"crypto/subtle"
	"math/big"
	"runtime"
)

// SecureZero overwrites a byte slice holding secret material with zeros.
// It uses subtle.ConstantTimeCopy so the compiler cannot elide the write.
func SecureZero(data []byte) {
	if len(data) == 0 {
		return
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCopy(1, data, zeros)

	runtime.KeepAlive(data)
}

// SecureZeroBigInt clears a big.Int that held a private scalar or nonce.
// big.Int does not expose its limb buffer, so the value is reset to zero and
// a memory barrier prevents the store from being optimized away; callers must
// also SecureZero any byte encodings they derived from it.
func SecureZeroBigInt(b *big.Int) {
	if b == nil {
		return
	}

	b.SetInt64(0)
	runtime.KeepAlive(b)
}

// ConstantTimeCompare reports whether two byte slices are equal without
// leaking the position of the first difference.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ConstantTimeSelectBytes returns x if v == 1 and y if v == 0.
// Both slices must have equal length; v must be 0 or 1.
func ConstantTimeSelectBytes(v int, x, y []byte) []byte {
	if len(x) != len(y) {
		panic("ConstantTimeSelectBytes: slices must have equal length")
	}

	result := make([]byte, len(x))
	subtle.ConstantTimeCopy(v, result, x)
	subtle.ConstantTimeCopy(1-v, result, y)

	return result
}

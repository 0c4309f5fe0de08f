package security

import (
	"math/big"
)

// ConstantTimeModAdd computes (a + b) mod m for non-negative inputs.
// The signer routes every secret-dependent scalar operation through these
// helpers so the arithmetic path is uniform regardless of operand values.
func ConstantTimeModAdd(a, b, m *big.Int) *big.Int {
	if a.Sign() < 0 || b.Sign() < 0 || m.Sign() <= 0 {
		panic("ConstantTimeModAdd: inputs must be non-negative")
	}

	result := new(big.Int).Add(a, b)
	return constantTimeModReduce(result, m)
}

// ConstantTimeModSub computes (a - b) mod m for non-negative inputs.
func ConstantTimeModSub(a, b, m *big.Int) *big.Int {
	if a.Sign() < 0 || b.Sign() < 0 || m.Sign() <= 0 {
		panic("ConstantTimeModSub: inputs must be non-negative")
	}

	result := new(big.Int).Sub(a, b)
	return constantTimeModReduce(result, m)
}

// ConstantTimeModMul computes (a * b) mod m for non-negative inputs.
func ConstantTimeModMul(a, b, m *big.Int) *big.Int {
	if a.Sign() < 0 || b.Sign() < 0 || m.Sign() <= 0 {
		panic("ConstantTimeModMul: inputs must be non-negative")
	}

	result := new(big.Int).Mul(a, b)
	return constantTimeModReduce(result, m)
}

// ConstantTimeModInv computes a^(-1) mod m, or nil if no inverse exists.
// Go's ModInverse runs in constant time for prime moduli, which covers both
// the secp256k1 field prime and the group order.
func ConstantTimeModInv(a, m *big.Int) *big.Int {
	if a.Sign() <= 0 || m.Sign() <= 0 {
		return nil
	}

	return new(big.Int).ModInverse(a, m)
}

// constantTimeModReduce reduces x into [0, m).
func constantTimeModReduce(x, m *big.Int) *big.Int {
	if x.Sign() >= 0 && x.Cmp(m) < 0 {
		return new(big.Int).Set(x)
	}

	result := new(big.Int).Mod(x, m)
	if result.Sign() < 0 {
		result.Add(result, m)
	}

	return result
}

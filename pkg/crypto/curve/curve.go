// Package curve provides the elliptic curve group operations used by the
// signing core. The production engine delegates to btcec's constant-time
// secp256k1 arithmetic; a slow affine reference engine exists for
// differential testing.
package curve

import (
	"math/big"
)

// Point represents an affine point on the curve.
// A Point with both coordinates nil is the point at infinity; infinity only
// appears as an internal intermediate and is never returned as a public key.
type Point struct {
	X     *big.Int
	Y     *big.Int
	curve Curve
}

// Curve defines the group operations the signing core needs.
// Implementations must return points that satisfy the curve equation; the
// arithmetic engine behind the interface is swappable so tests can run the
// same scalars through independent implementations.
type Curve interface {
	// Params returns the curve parameters
	Params() *CurveParams

	// ScalarBaseMult computes k*G where G is the generator
	ScalarBaseMult(k *big.Int) (*Point, error)

	// ScalarMult computes k*P for point P
	ScalarMult(p *Point, k *big.Int) (*Point, error)

	// Add computes P1 + P2; the result may be the point at infinity
	Add(p1, p2 *Point) (*Point, error)

	// Double computes 2*P
	Double(p *Point) (*Point, error)

	// Negate computes -P
	Negate(p *Point) (*Point, error)

	// IsOnCurve verifies that P satisfies the curve equation
	IsOnCurve(p *Point) bool

	// LiftX decompresses an x-coordinate into the on-curve point whose y
	// has the requested parity; fails if x has no square root on the curve
	LiftX(x *big.Int, odd bool) (*Point, error)

	// Marshal encodes a point in 33-byte SEC1 compressed form
	Marshal(p *Point) []byte

	// MarshalUncompressed encodes a point in 65-byte SEC1 uncompressed form
	MarshalUncompressed(p *Point) []byte

	// Unmarshal decodes a compressed or uncompressed SEC1 encoding
	Unmarshal(data []byte) (*Point, error)

	// Generator returns the base point G
	Generator() *Point

	// Order returns the group order n
	Order() *big.Int

	// FieldPrime returns the field modulus p
	FieldPrime() *big.Int

	// Name returns the curve name
	Name() string
}

// CurveParams contains the domain parameters of a short-Weierstrass curve
// y^2 = x^3 + B over GF(P) with generator (Gx, Gy) of order N.
type CurveParams struct {
	Name    string
	P       *big.Int
	N       *big.Int
	B       *big.Int
	Gx, Gy  *big.Int
	BitSize int
}

// Infinity returns the point at infinity.
func Infinity() *Point {
	return &Point{}
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p == nil || (p.X == nil && p.Y == nil)
}

// IsEqual reports whether two points have identical coordinates.
func (p *Point) IsEqual(other *Point) bool {
	if p.IsInfinity() || other.IsInfinity() {
		return p.IsInfinity() && other.IsInfinity()
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// Clone creates a deep copy of the point.
func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	if p.IsInfinity() {
		return &Point{curve: p.curve}
	}
	return &Point{
		X:     new(big.Int).Set(p.X),
		Y:     new(big.Int).Set(p.Y),
		curve: p.curve,
	}
}

// Bytes returns the compressed encoding of the point.
func (p *Point) Bytes() []byte {
	if p.curve == nil {
		return nil
	}
	return p.curve.Marshal(p)
}

// HasOddY reports whether the point's y-coordinate is odd.
// This is the parity bit recorded in a signature's recovery id.
func (p *Point) HasOddY() bool {
	return !p.IsInfinity() && p.Y.Bit(0) == 1
}

// PaddedBytes returns the big-endian bytes of v, left-zero-padded to length.
func PaddedBytes(v *big.Int, length int) []byte {
	b := v.Bytes()
	if len(b) >= length {
		return b
	}

	padded := make([]byte, length)
	copy(padded[length-len(b):], b)
	return padded
}

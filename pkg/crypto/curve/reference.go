package curve

import (
	"math/big"
)

// referenceCurve is a textbook affine implementation of secp256k1 arithmetic
// over big.Int. It shares no code with the btcec engine and is deliberately
// simple rather than fast or constant-time, so differential tests can run the
// same scalars through two independent arithmetic paths. Not for production
// use with secret scalars.
type referenceCurve struct {
	params  *CurveParams
	sqrtExp *big.Int
}

// NewReferenceCurve returns the slow affine engine used for differential
// testing against the production implementation.
func NewReferenceCurve() Curve {
	p, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	n, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	gx, _ := new(big.Int).SetString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
	gy, _ := new(big.Int).SetString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", 16)

	sqrtExp := new(big.Int).Add(p, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2)

	return &referenceCurve{
		params: &CurveParams{
			Name:    "secp256k1-reference",
			P:       p,
			N:       n,
			B:       big.NewInt(7),
			Gx:      gx,
			Gy:      gy,
			BitSize: 256,
		},
		sqrtExp: sqrtExp,
	}
}

func (c *referenceCurve) Params() *CurveParams {
	return c.params
}

func (c *referenceCurve) ScalarBaseMult(k *big.Int) (*Point, error) {
	return c.ScalarMult(c.Generator(), k)
}

// ScalarMult computes k*P with plain double-and-add.
func (c *referenceCurve) ScalarMult(p *Point, k *big.Int) (*Point, error) {
	if p == nil || p.IsInfinity() {
		return nil, ErrInvalidPoint
	}
	if k == nil || k.Sign() <= 0 {
		return nil, ErrInvalidScalar
	}
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	k = new(big.Int).Mod(k, c.params.N)
	if k.Sign() == 0 {
		return nil, ErrScalarZero
	}

	result := &Point{curve: c}
	addend := p.Clone()

	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.affineAdd(result, addend)
		}
		addend = c.affineAdd(addend, addend)
	}

	return result, nil
}

func (c *referenceCurve) Add(p1, p2 *Point) (*Point, error) {
	if p1 == nil || p2 == nil {
		return nil, ErrInvalidPoint
	}
	if p1.IsInfinity() {
		return p2.Clone(), nil
	}
	if p2.IsInfinity() {
		return p1.Clone(), nil
	}
	if !c.IsOnCurve(p1) || !c.IsOnCurve(p2) {
		return nil, ErrInvalidPoint
	}

	return c.affineAdd(p1, p2), nil
}

func (c *referenceCurve) Double(p *Point) (*Point, error) {
	return c.Add(p, p)
}

func (c *referenceCurve) Negate(p *Point) (*Point, error) {
	if p == nil {
		return nil, ErrInvalidPoint
	}
	if p.IsInfinity() {
		return p.Clone(), nil
	}
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	negY := new(big.Int).Sub(c.params.P, p.Y)
	negY.Mod(negY, c.params.P)

	return &Point{
		X:     new(big.Int).Set(p.X),
		Y:     negY,
		curve: c,
	}, nil
}

func (c *referenceCurve) IsOnCurve(p *Point) bool {
	if p == nil || p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(c.params.P) >= 0 {
		return false
	}
	if p.Y.Sign() < 0 || p.Y.Cmp(c.params.P) >= 0 {
		return false
	}

	// y^2 == x^3 + B mod p
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, c.params.P)

	rhs := new(big.Int).Exp(p.X, big.NewInt(3), c.params.P)
	rhs.Add(rhs, c.params.B)
	rhs.Mod(rhs, c.params.P)

	return lhs.Cmp(rhs) == 0
}

func (c *referenceCurve) LiftX(x *big.Int, odd bool) (*Point, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(c.params.P) >= 0 {
		return nil, ErrInvalidPoint
	}

	ySquared := new(big.Int).Exp(x, big.NewInt(3), c.params.P)
	ySquared.Add(ySquared, c.params.B)
	ySquared.Mod(ySquared, c.params.P)

	y := new(big.Int).Exp(ySquared, c.sqrtExp, c.params.P)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, c.params.P)
	if check.Cmp(ySquared) != 0 {
		return nil, ErrPointNotOnCurve
	}

	if y.Bit(0) != boolToBit(odd) {
		y.Sub(c.params.P, y)
	}

	return &Point{
		X:     new(big.Int).Set(x),
		Y:     y,
		curve: c,
	}, nil
}

// Marshal encodes in SEC1 compressed form without btcec.
func (c *referenceCurve) Marshal(p *Point) []byte {
	if p == nil || p.IsInfinity() {
		return nil
	}

	out := make([]byte, 33)
	out[0] = 0x02
	if p.HasOddY() {
		out[0] = 0x03
	}
	copy(out[1:], PaddedBytes(p.X, 32))

	return out
}

func (c *referenceCurve) MarshalUncompressed(p *Point) []byte {
	if p == nil || p.IsInfinity() {
		return nil
	}

	out := make([]byte, 65)
	out[0] = 0x04
	copy(out[1:33], PaddedBytes(p.X, 32))
	copy(out[33:], PaddedBytes(p.Y, 32))

	return out
}

func (c *referenceCurve) Unmarshal(data []byte) (*Point, error) {
	switch len(data) {
	case 33:
		if data[0] != 0x02 && data[0] != 0x03 {
			return nil, ErrInvalidEncoding
		}
		x := new(big.Int).SetBytes(data[1:])
		return c.LiftX(x, data[0] == 0x03)
	case 65:
		if data[0] != 0x04 {
			return nil, ErrInvalidEncoding
		}
		p := &Point{
			X:     new(big.Int).SetBytes(data[1:33]),
			Y:     new(big.Int).SetBytes(data[33:]),
			curve: c,
		}
		if !c.IsOnCurve(p) {
			return nil, ErrInvalidPoint
		}
		return p, nil
	default:
		return nil, ErrInvalidEncoding
	}
}

func (c *referenceCurve) Generator() *Point {
	return &Point{
		X:     new(big.Int).Set(c.params.Gx),
		Y:     new(big.Int).Set(c.params.Gy),
		curve: c,
	}
}

func (c *referenceCurve) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c *referenceCurve) FieldPrime() *big.Int {
	return new(big.Int).Set(c.params.P)
}

func (c *referenceCurve) Name() string {
	return c.params.Name
}

// affineAdd handles the full affine addition case split: identity operands,
// inverse operands, doubling, and the generic chord case.
func (c *referenceCurve) affineAdd(p1, p2 *Point) *Point {
	if p1.IsInfinity() {
		return p2.Clone()
	}
	if p2.IsInfinity() {
		return p1.Clone()
	}

	p := c.params.P

	if p1.X.Cmp(p2.X) == 0 {
		sumY := new(big.Int).Add(p1.Y, p2.Y)
		sumY.Mod(sumY, p)
		if sumY.Sign() == 0 {
			// P + (-P) = infinity
			return &Point{curve: c}
		}
		return c.affineDouble(p1)
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(p2.Y, p1.Y)
	den := new(big.Int).Sub(p2.X, p1.X)
	den.Mod(den, p)
	lambda := new(big.Int).Mul(num, new(big.Int).ModInverse(den, p))
	lambda.Mod(lambda, p)

	return c.chord(p1, p2, lambda)
}

func (c *referenceCurve) affineDouble(pt *Point) *Point {
	p := c.params.P

	if pt.Y.Sign() == 0 {
		return &Point{curve: c}
	}

	// lambda = 3x^2 / 2y
	num := new(big.Int).Mul(pt.X, pt.X)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(pt.Y, 1)
	den.Mod(den, p)
	lambda := new(big.Int).Mul(num, new(big.Int).ModInverse(den, p))
	lambda.Mod(lambda, p)

	return c.chord(pt, pt, lambda)
}

// chord completes an addition given the line slope through the operands.
func (c *referenceCurve) chord(p1, p2 *Point, lambda *big.Int) *Point {
	p := c.params.P

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.X)
	x3.Sub(x3, p2.X)
	x3.Mod(x3, p)

	y3 := new(big.Int).Sub(p1.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.Y)
	y3.Mod(y3, p)

	return &Point{X: x3, Y: y3, curve: c}
}

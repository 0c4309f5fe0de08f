package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// secp256k1Curve implements the Curve interface using btcec, which provides
// constant-time field and group arithmetic for secp256k1.
type secp256k1Curve struct {
	params *CurveParams

	// (p+1)/4, the exponent for modular square roots; p = 3 mod 4
	sqrtExp *big.Int
}

// NewSecp256k1 returns the production secp256k1 engine.
func NewSecp256k1() Curve {
	params := btcec.S256().Params()

	sqrtExp := new(big.Int).Add(params.P, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2)

	return &secp256k1Curve{
		params: &CurveParams{
			Name:    "secp256k1",
			P:       params.P,
			N:       params.N,
			B:       params.B,
			Gx:      params.Gx,
			Gy:      params.Gy,
			BitSize: params.BitSize,
		},
		sqrtExp: sqrtExp,
	}
}

func (c *secp256k1Curve) Params() *CurveParams {
	return c.params
}

func (c *secp256k1Curve) ScalarBaseMult(k *big.Int) (*Point, error) {
	if k == nil || k.Sign() <= 0 {
		return nil, ErrInvalidScalar
	}

	k = new(big.Int).Mod(k, c.params.N)
	if k.Sign() == 0 {
		return nil, ErrScalarZero
	}

	privKey, _ := btcec.PrivKeyFromBytes(PaddedBytes(k, 32))
	pubKey := privKey.PubKey()

	return &Point{
		X:     pubKey.X(),
		Y:     pubKey.Y(),
		curve: c,
	}, nil
}

func (c *secp256k1Curve) ScalarMult(p *Point, k *big.Int) (*Point, error) {
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

	x, y := btcec.S256().ScalarMult(p.X, p.Y, k.Bytes())

	return c.fromAffine(x, y), nil
}

func (c *secp256k1Curve) Add(p1, p2 *Point) (*Point, error) {
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

	x, y := btcec.S256().Add(p1.X, p1.Y, p2.X, p2.Y)

	return c.fromAffine(x, y), nil
}

func (c *secp256k1Curve) Double(p *Point) (*Point, error) {
	if p == nil {
		return nil, ErrInvalidPoint
	}
	if p.IsInfinity() {
		return p.Clone(), nil
	}
	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	x, y := btcec.S256().Double(p.X, p.Y)

	return c.fromAffine(x, y), nil
}

func (c *secp256k1Curve) Negate(p *Point) (*Point, error) {
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

func (c *secp256k1Curve) IsOnCurve(p *Point) bool {
	if p == nil || p.X == nil || p.Y == nil {
		return false
	}
	return btcec.S256().IsOnCurve(p.X, p.Y)
}

// LiftX decompresses x into the on-curve point whose y-parity matches odd.
// Square roots mod p use the (p+1)/4 exponent, valid because p = 3 mod 4.
func (c *secp256k1Curve) LiftX(x *big.Int, odd bool) (*Point, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(c.params.P) >= 0 {
		return nil, ErrInvalidPoint
	}

	// y^2 = x^3 + B mod p
	ySquared := new(big.Int).Exp(x, big.NewInt(3), c.params.P)
	ySquared.Add(ySquared, c.params.B)
	ySquared.Mod(ySquared, c.params.P)

	y := new(big.Int).Exp(ySquared, c.sqrtExp, c.params.P)

	// Reject x-coordinates whose y^2 is a non-residue
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

func (c *secp256k1Curve) Marshal(p *Point) []byte {
	if p == nil || p.IsInfinity() {
		return nil
	}

	return c.toBtcecPubKey(p).SerializeCompressed()
}

func (c *secp256k1Curve) MarshalUncompressed(p *Point) []byte {
	if p == nil || p.IsInfinity() {
		return nil
	}

	return c.toBtcecPubKey(p).SerializeUncompressed()
}

func (c *secp256k1Curve) Unmarshal(data []byte) (*Point, error) {
	if len(data) != 33 && len(data) != 65 {
		return nil, ErrInvalidEncoding
	}

	pubKey, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	p := &Point{
		X:     pubKey.X(),
		Y:     pubKey.Y(),
		curve: c,
	}

	if !c.IsOnCurve(p) {
		return nil, ErrInvalidPoint
	}

	return p, nil
}

func (c *secp256k1Curve) Generator() *Point {
	return &Point{
		X:     new(big.Int).Set(c.params.Gx),
		Y:     new(big.Int).Set(c.params.Gy),
		curve: c,
	}
}

func (c *secp256k1Curve) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c *secp256k1Curve) FieldPrime() *big.Int {
	return new(big.Int).Set(c.params.P)
}

func (c *secp256k1Curve) Name() string {
	return c.params.Name
}

// fromAffine wraps btcec's affine output, mapping its (0, 0) infinity
// convention onto the explicit infinity point.
func (c *secp256k1Curve) fromAffine(x, y *big.Int) *Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &Point{curve: c}
	}
	return &Point{X: x, Y: y, curve: c}
}

func (c *secp256k1Curve) toBtcecPubKey(p *Point) *btcec.PublicKey {
	var xField, yField btcec.FieldVal
	xField.SetByteSlice(PaddedBytes(p.X, 32))
	yField.SetByteSlice(PaddedBytes(p.Y, 32))

	return btcec.NewPublicKey(&xField, &yField)
}

func boolToBit(b bool) uint {
	if b {
		return 1
	}
	return 0
}

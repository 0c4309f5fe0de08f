package curve

import (
	"math/big"
	"testing"
)

// TestEnginesAgreeOnScalarBaseMult drives the production and reference
// engines with the same scalars and requires identical points.
func TestEnginesAgreeOnScalarBaseMult(t *testing.T) {
	fast := NewSecp256k1()
	ref := NewReferenceCurve()

	scalars := []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(3),
		big.NewInt(0xdeadbeef),
		new(big.Int).Sub(fast.Order(), big.NewInt(1)),
		mustHex(t, "4c9d8a6e2f1b3c5d7e9f0a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d"),
	}

	for _, k := range scalars {
		fastPoint, err := fast.ScalarBaseMult(k)
		if err != nil {
			t.Fatalf("fast ScalarBaseMult(%v): %v", k, err)
		}

		refPoint, err := ref.ScalarBaseMult(k)
		if err != nil {
			t.Fatalf("reference ScalarBaseMult(%v): %v", k, err)
		}

		if !fastPoint.IsEqual(refPoint) {
			t.Errorf("engines disagree for scalar %x", k)
		}
		if !fast.IsOnCurve(fastPoint) {
			t.Errorf("fast result for scalar %x not on curve", k)
		}
	}
}

// TestEnginesAgreeOnGroupOps cross-checks add, double, scalar-mult and
// negation between the two engines.
func TestEnginesAgreeOnGroupOps(t *testing.T) {
	fast := NewSecp256k1()
	ref := NewReferenceCurve()

	g := fast.Generator()

	twoG, err := fast.Double(g)
	if err != nil {
		t.Fatalf("Double: %v", err)
	}

	threeG, err := fast.Add(g, twoG)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	refThreeG, err := ref.ScalarBaseMult(big.NewInt(3))
	if err != nil {
		t.Fatalf("reference ScalarBaseMult: %v", err)
	}

	if !threeG.IsEqual(refThreeG) {
		t.Error("G + 2G should equal 3G across engines")
	}

	k := big.NewInt(0x1337)

	fastMult, err := fast.ScalarMult(twoG, k)
	if err != nil {
		t.Fatalf("fast ScalarMult: %v", err)
	}

	refTwoG, err := ref.ScalarBaseMult(big.NewInt(2))
	if err != nil {
		t.Fatalf("reference ScalarBaseMult: %v", err)
	}

	refMult, err := ref.ScalarMult(refTwoG, k)
	if err != nil {
		t.Fatalf("reference ScalarMult: %v", err)
	}

	if !fastMult.IsEqual(refMult) {
		t.Error("engines disagree on ScalarMult")
	}

	neg, err := fast.Negate(g)
	if err != nil {
		t.Fatalf("Negate: %v", err)
	}

	refNeg, err := ref.Negate(ref.Generator())
	if err != nil {
		t.Fatalf("reference Negate: %v", err)
	}

	if !neg.IsEqual(refNeg) {
		t.Error("engines disagree on Negate")
	}
}

// TestAddInverseYieldsInfinity checks the P + (-P) = infinity edge in both
// engines; infinity must come back as the explicit infinity point, never an
// on-curve coordinate pair.
func TestAddInverseYieldsInfinity(t *testing.T) {
	for _, c := range []Curve{NewSecp256k1(), NewReferenceCurve()} {
		g := c.Generator()

		neg, err := c.Negate(g)
		if err != nil {
			t.Fatalf("%s Negate: %v", c.Name(), err)
		}

		sum, err := c.Add(g, neg)
		if err != nil {
			t.Fatalf("%s Add: %v", c.Name(), err)
		}

		if !sum.IsInfinity() {
			t.Errorf("%s: G + (-G) should be infinity", c.Name())
		}
		if c.IsOnCurve(sum) {
			t.Errorf("%s: infinity must not satisfy the curve equation", c.Name())
		}
	}
}

// TestLiftXParity checks decompression picks the requested y-parity and
// agrees with the known generator coordinates.
func TestLiftXParity(t *testing.T) {
	for _, c := range []Curve{NewSecp256k1(), NewReferenceCurve()} {
		g := c.Generator()

		lifted, err := c.LiftX(g.X, g.HasOddY())
		if err != nil {
			t.Fatalf("%s LiftX: %v", c.Name(), err)
		}
		if !lifted.IsEqual(g) {
			t.Errorf("%s: LiftX(G.x) should reproduce G", c.Name())
		}

		flipped, err := c.LiftX(g.X, !g.HasOddY())
		if err != nil {
			t.Fatalf("%s LiftX flipped: %v", c.Name(), err)
		}
		if flipped.IsEqual(g) {
			t.Errorf("%s: opposite parity should give the negated point", c.Name())
		}

		neg, _ := c.Negate(g)
		if !flipped.IsEqual(neg) {
			t.Errorf("%s: LiftX with flipped parity should equal -G", c.Name())
		}
	}
}

// TestLiftXNonResidue checks that x-coordinates with no curve point are
// rejected. The test finds such an x by Euler's criterion so it does not
// depend on a hard-coded constant.
func TestLiftXNonResidue(t *testing.T) {
	c := NewSecp256k1()
	p := c.FieldPrime()

	euler := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	one := big.NewInt(1)

	for x := int64(1); x < 100; x++ {
		ySquared := new(big.Int).Exp(big.NewInt(x), big.NewInt(3), p)
		ySquared.Add(ySquared, big.NewInt(7))
		ySquared.Mod(ySquared, p)

		if new(big.Int).Exp(ySquared, euler, p).Cmp(one) == 0 {
			continue
		}

		if _, err := c.LiftX(big.NewInt(x), false); err == nil {
			t.Errorf("LiftX should reject x=%d, which has no curve point", x)
		}
		return
	}

	t.Fatal("no non-residue x found below 100")
}

// TestMarshalRoundTrip checks that compressed and uncompressed encodings of
// the same point decode to the same point.
func TestMarshalRoundTrip(t *testing.T) {
	for _, c := range []Curve{NewSecp256k1(), NewReferenceCurve()} {
		p, err := c.ScalarBaseMult(big.NewInt(0xabcdef))
		if err != nil {
			t.Fatalf("%s ScalarBaseMult: %v", c.Name(), err)
		}

		compressed := c.Marshal(p)
		if len(compressed) != 33 {
			t.Fatalf("%s: compressed encoding should be 33 bytes, got %d", c.Name(), len(compressed))
		}

		uncompressed := c.MarshalUncompressed(p)
		if len(uncompressed) != 65 {
			t.Fatalf("%s: uncompressed encoding should be 65 bytes, got %d", c.Name(), len(uncompressed))
		}

		fromCompressed, err := c.Unmarshal(compressed)
		if err != nil {
			t.Fatalf("%s Unmarshal compressed: %v", c.Name(), err)
		}

		fromUncompressed, err := c.Unmarshal(uncompressed)
		if err != nil {
			t.Fatalf("%s Unmarshal uncompressed: %v", c.Name(), err)
		}

		if !fromCompressed.IsEqual(p) || !fromUncompressed.IsEqual(p) {
			t.Errorf("%s: encodings should decode to the original point", c.Name())
		}
	}
}

// TestUnmarshalRejectsMalformed checks encoding validation.
func TestUnmarshalRejectsMalformed(t *testing.T) {
	c := NewSecp256k1()

	if _, err := c.Unmarshal(nil); err == nil {
		t.Error("nil encoding should be rejected")
	}
	if _, err := c.Unmarshal(make([]byte, 10)); err == nil {
		t.Error("short encoding should be rejected")
	}

	bad := make([]byte, 65)
	bad[0] = 0x04
	if _, err := c.Unmarshal(bad); err == nil {
		t.Error("off-curve uncompressed encoding should be rejected")
	}
}

// TestScalarValidation checks that nil and non-positive scalars are rejected.
func TestScalarValidation(t *testing.T) {
	c := NewSecp256k1()

	if _, err := c.ScalarBaseMult(nil); err == nil {
		t.Error("nil scalar should be rejected")
	}
	if _, err := c.ScalarBaseMult(big.NewInt(0)); err == nil {
		t.Error("zero scalar should be rejected")
	}
	if _, err := c.ScalarMult(c.Generator(), big.NewInt(-1)); err == nil {
		t.Error("negative scalar should be rejected")
	}
	if _, err := c.ScalarMult(Infinity(), big.NewInt(1)); err == nil {
		t.Error("scalar mult of infinity should be rejected")
	}
}

func mustHex(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		t.Fatalf("bad hex constant %q", s)
	}
	return v
}

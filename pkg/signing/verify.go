package signing

import (
	"math/big"

	"github.com/Caqil/wallet-signer/internal/security"
	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
)

// Verifier checks ECDSA signatures against a public key and digest.
//
// By default a verifier accepts both canonical (low-S) and non-canonical
// (high-S) valid signatures; this asymmetry against the Signer, which always
// emits canonical form, is deliberate so that signatures produced by other
// implementations still verify. Strict mode additionally rejects high-S.
type Verifier struct {
	curve  curve.Curve
	strict bool
}

// NewVerifier creates a verifier that accepts any mathematically valid
// signature.
func NewVerifier() *Verifier {
	return &Verifier{curve: curve.NewSecp256k1()}
}

// NewStrictVerifier creates a verifier that additionally rejects
// non-canonical high-S signatures.
func NewStrictVerifier() *Verifier {
	return &Verifier{curve: curve.NewSecp256k1(), strict: true}
}

// NewVerifierWithCurve creates a verifier backed by a caller-supplied engine.
func NewVerifierWithCurve(c curve.Curve, strict bool) (*Verifier, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	return &Verifier{curve: c, strict: strict}, nil
}

// VerifyDigest verifies sig over digest against publicKey with the default
// lenient engine.
func VerifyDigest(digest []byte, sig *Signature, publicKey *curve.Point) bool {
	return NewVerifier().Verify(digest, sig, publicKey)
}

// VerifyBytes verifies 32-byte r and s over digest against a 64-byte
// uncompressed (x || y) public key. Malformed input verifies as false,
// never panics.
func VerifyBytes(digest, r, s, publicKey []byte) bool {
	if len(r) != ComponentLength || len(s) != ComponentLength {
		return false
	}

	pub, err := ParsePublicKeyBytes(publicKey)
	if err != nil {
		return false
	}

	sig := &Signature{
		R: new(big.Int).SetBytes(r),
		S: new(big.Int).SetBytes(s),
	}

	return NewVerifier().Verify(digest, sig, pub)
}

// Verify reports whether sig is a valid signature over digest by publicKey.
// The recovery id is not consulted.
func (v *Verifier) Verify(digest []byte, sig *Signature, publicKey *curve.Point) bool {
	if len(digest) != DigestLength {
		return false
	}
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	if publicKey.IsInfinity() || !v.curve.IsOnCurve(publicKey) {
		return false
	}

	order := v.curve.Order()

	if security.ValidateScalarInRange(sig.R, order) != nil {
		return false
	}
	if security.ValidateScalarInRange(sig.S, order) != nil {
		return false
	}

	if v.strict {
		halfOrder := new(big.Int).Rsh(order, 1)
		if sig.S.Cmp(halfOrder) > 0 {
			return false
		}
	}

	e := hashToInt(digest, order)

	// w = s^-1; u1 = e*w; u2 = r*w
	w := new(big.Int).ModInverse(sig.S, order)
	if w == nil {
		return false
	}

	u1 := security.ConstantTimeModMul(new(big.Int).Mod(e, order), w, order)
	u2 := security.ConstantTimeModMul(sig.R, w, order)

	// P = u1*G + u2*Q; u2 is nonzero because r and w are units mod n
	point, err := v.curve.ScalarMult(publicKey, u2)
	if err != nil {
		return false
	}

	if u1.Sign() != 0 {
		base, err := v.curve.ScalarBaseMult(u1)
		if err != nil {
			return false
		}
		point, err = v.curve.Add(base, point)
		if err != nil {
			return false
		}
	}

	if point.IsInfinity() {
		return false
	}

	rx := new(big.Int).Mod(point.X, order)
	return rx.Cmp(sig.R) == 0
}

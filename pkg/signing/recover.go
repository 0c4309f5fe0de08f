package signing

import (
	"math/big"

	"github.com/Caqil/wallet-signer/internal/security"
	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
)

// Recoverer reconstructs the signer's public key from a digest, signature,
// and recovery id.
type Recoverer struct {
	curve curve.Curve
}

// NewRecoverer creates a recoverer backed by the production secp256k1 engine.
func NewRecoverer() *Recoverer {
	return &Recoverer{curve: curve.NewSecp256k1()}
}

// NewRecovererWithCurve creates a recoverer backed by a caller-supplied engine.
func NewRecovererWithCurve(c curve.Curve) (*Recoverer, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	return &Recoverer{curve: c}, nil
}

// RecoverPublicKey recovers the public key from digest and sig with the
// default engine.
func RecoverPublicKey(digest []byte, sig *Signature) (*curve.Point, error) {
	return NewRecoverer().Recover(digest, sig)
}

// RecoverPublicKeyBytes recovers the 64-byte uncompressed (x || y) public
// key from a digest, 32-byte r and s, and a recovery id in [0, 3].
func RecoverPublicKeyBytes(digest, r, s []byte, recoveryID byte) ([]byte, error) {
	sig, err := NewSignature(r, s, recoveryID)
	if err != nil {
		return nil, err
	}

	rec := NewRecoverer()

	pub, err := rec.Recover(digest, sig)
	if err != nil {
		return nil, err
	}

	return rec.curve.MarshalUncompressed(pub)[1:], nil
}

// Recover reconstructs the public key Q = r^-1 * (s*R - e*G), where R is the
// nonce point decompressed from r under the recovery id's parity and
// overflow bits.
//
// Recovery ids 2 and 3 denote the exceedingly rare case where the nonce
// point's x-coordinate exceeded the group order; they are fully supported.
func (rec *Recoverer) Recover(digest []byte, sig *Signature) (*curve.Point, error) {
	if len(digest) != DigestLength {
		return nil, ErrInvalidDigestLength
	}
	if sig == nil || sig.R == nil || sig.S == nil {
		return nil, ErrInvalidSignature
	}
	if sig.RecoveryID > 3 {
		return nil, ErrInvalidRecoveryID
	}

	order := rec.curve.Order()

	if security.ValidateScalarInRange(sig.R, order) != nil {
		return nil, ErrInvalidSignature
	}
	if security.ValidateScalarInRange(sig.S, order) != nil {
		return nil, ErrInvalidSignature
	}

	// Reconstruct the nonce point's x-coordinate; bit 1 of the recovery id
	// says r was reduced from an x above the order
	x := new(big.Int).Set(sig.R)
	if sig.RecoveryID&2 != 0 {
		x.Add(x, order)
	}
	if x.Cmp(rec.curve.FieldPrime()) >= 0 {
		return nil, ErrPublicKeyRecovery
	}

	R, err := rec.curve.LiftX(x, sig.RecoveryID&1 == 1)
	if err != nil {
		return nil, ErrPublicKeyRecovery
	}

	e := new(big.Int).Mod(hashToInt(digest, order), order)

	rInv := new(big.Int).ModInverse(sig.R, order)
	if rInv == nil {
		return nil, ErrInvalidSignature
	}

	// Q = r^-1 * (s*R - e*G) = u1*G + u2*R
	// with u1 = -e*r^-1 and u2 = s*r^-1
	u1 := security.ConstantTimeModSub(order, security.ConstantTimeModMul(e, rInv, order), order)
	u2 := security.ConstantTimeModMul(sig.S, rInv, order)

	// u2 is a product of units mod n and cannot be zero
	pub, err := rec.curve.ScalarMult(R, u2)
	if err != nil {
		return nil, ErrPublicKeyRecovery
	}

	if u1.Sign() != 0 {
		base, err := rec.curve.ScalarBaseMult(u1)
		if err != nil {
			return nil, ErrPublicKeyRecovery
		}
		pub, err = rec.curve.Add(base, pub)
		if err != nil {
			return nil, ErrPublicKeyRecovery
		}
	}

	if pub.IsInfinity() || !rec.curve.IsOnCurve(pub) {
		return nil, ErrPublicKeyRecovery
	}

	// The reconstruction must verify; anything else means the stated
	// recovery id does not match the digest and signature
	verifier := &Verifier{curve: rec.curve}
	if !verifier.Verify(digest, sig, pub) {
		return nil, ErrPublicKeyRecovery
	}

	return pub, nil
}

package signing

import (
	"math/big"

	"github.com/Caqil/wallet-signer/internal/security"
	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
)

// maxNonceAttempts bounds the internal retry loop. A retry only happens when
// r or s reduces to zero, each with probability around 2^-256; the bound
// exists so the loop is provably finite, not because it is expected to bind.
const maxNonceAttempts = 128

// Signer produces deterministic low-S ECDSA signatures over 32-byte digests.
// It holds no key material and is safe for concurrent use.
type Signer struct {
	curve curve.Curve
}

// NewSigner creates a signer backed by the production secp256k1 engine.
func NewSigner() *Signer {
	return &Signer{curve: curve.NewSecp256k1()}
}

// NewSignerWithCurve creates a signer backed by a caller-supplied engine.
func NewSignerWithCurve(c curve.Curve) (*Signer, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	return &Signer{curve: c}, nil
}

// SignDigest signs digest with privateKey using the default engine.
func SignDigest(digest, privateKey []byte) (*Signature, error) {
	return NewSigner().Sign(digest, privateKey)
}

// Sign signs a 32-byte digest with a 32-byte private scalar.
//
// The nonce is derived deterministically per RFC 6979, so identical inputs
// always produce the identical signature. The result is always in canonical
// low-S form; when normalization flips s to n-s, the recovery id's parity
// bit is flipped with it so recovery still yields the signing key.
//
// The private scalar must be in [1, n-1]. Out-of-range keys are rejected,
// never reduced.
func (sg *Signer) Sign(digest, privateKey []byte) (*Signature, error) {
	if len(digest) != DigestLength {
		return nil, ErrInvalidDigestLength
	}
	if len(privateKey) != ComponentLength {
		return nil, ErrInvalidPrivateKey
	}

	order := sg.curve.Order()

	d := new(big.Int).SetBytes(privateKey)
	defer security.SecureZeroBigInt(d)

	if err := security.ValidateScalarInRange(d, order); err != nil {
		return nil, ErrInvalidPrivateKey
	}

	gen := NewNonceGenerator(d, digest, order)
	defer gen.Wipe()

	e := hashToInt(digest, order)
	halfOrder := new(big.Int).Rsh(order, 1)

	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		sig, err := sg.signOnce(gen, d, e, order, halfOrder)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
		// r or s was zero; pull the next RFC 6979 candidate
	}

	return nil, ErrNonceGeneration
}

// signOnce runs one signing attempt. It returns (nil, nil) when the attempt
// produced a zero r or s and must be retried with the next nonce.
func (sg *Signer) signOnce(gen *NonceGenerator, d, e, order, halfOrder *big.Int) (*Signature, error) {
	k := gen.Next()
	defer security.SecureZeroBigInt(k)

	R, err := sg.curve.ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}

	// Recovery id: bit 0 is R.y parity, bit 1 records R.x >= n
	var recoveryID byte
	if R.HasOddY() {
		recoveryID |= 1
	}
	if R.X.Cmp(order) >= 0 {
		recoveryID |= 2
	}

	r := new(big.Int).Mod(R.X, order)
	if r.Sign() == 0 {
		return nil, nil
	}

	kInv := security.ConstantTimeModInv(k, order)
	if kInv == nil {
		return nil, ErrInvalidNonce
	}
	defer security.SecureZeroBigInt(kInv)

	// s = k^-1 * (e + r*d) mod n
	rd := security.ConstantTimeModMul(r, d, order)
	sum := security.ConstantTimeModAdd(e, rd, order)
	s := security.ConstantTimeModMul(kInv, sum, order)
	security.SecureZeroBigInt(rd)
	security.SecureZeroBigInt(sum)

	if s.Sign() == 0 {
		return nil, nil
	}

	// Low-S normalization; the recovery id must track the flip
	if s.Cmp(halfOrder) > 0 {
		s.Sub(order, s)
		recoveryID ^= 1
	}

	return &Signature{
		R:          r,
		S:          s,
		RecoveryID: recoveryID,
	}, nil
}

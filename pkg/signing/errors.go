package signing

import "errors"

var (
	// ErrInvalidDigestLength is returned when the digest is not exactly 32 bytes
	ErrInvalidDigestLength = errors.New("digest must be exactly 32 bytes")

	// ErrInvalidPrivateKey is returned when the private scalar is malformed,
	// zero, or not below the group order
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidPublicKey is returned when a public key is malformed or not
	// on the curve
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidSignature is returned when r or s is missing or outside [1, n-1]
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidComponentLength is returned when r or s is not exactly 32 bytes
	ErrInvalidComponentLength = errors.New("signature component must be exactly 32 bytes")

	// ErrInvalidRecoveryID is returned when the recovery id is outside {0,1,2,3}
	ErrInvalidRecoveryID = errors.New("recovery id must be in range [0, 3]")

	// ErrPublicKeyRecovery is returned when no on-curve public key matches
	// the digest, signature, and recovery id. Distinct from ErrInvalidSignature:
	// the signature is well-formed but does not recover under the stated id,
	// which usually means the wrong digest was hashed upstream.
	ErrPublicKeyRecovery = errors.New("public key recovery failed")

	// ErrInvalidNonce is returned when nonce inversion fails
	ErrInvalidNonce = errors.New("invalid nonce")

	// ErrNonceGeneration is returned when no usable nonce was found within
	// the retry bound
	ErrNonceGeneration = errors.New("nonce generation exhausted retry bound")

	// ErrNilCurve is returned when a nil curve engine is supplied
	ErrNilCurve = errors.New("curve cannot be nil")
)

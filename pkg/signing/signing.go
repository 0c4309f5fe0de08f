// Package signing implements deterministic ECDSA over secp256k1: signature
// production with RFC 6979 nonces and low-S normalization, verification,
// and public-key recovery.
//
// SIGNATURE FORM:
//
//	A signature is (r, s, recoveryID) with r, s in [1, n-1] and s always in
//	the lower half of the order (canonical low-S form). The recovery id
//	encodes which of the candidate nonce points produced the signature:
//	bit 0 is the parity of R.y, bit 1 is set when R.x exceeded the order.
//	When low-S normalization replaces s with n-s, the parity bit is flipped
//	with it; the pair is only self-consistent together.
//
// SECRET HYGIENE:
//
//	The private scalar, the nonce, and the nonce generator's HMAC state are
//	zeroized on every exit path of Sign, including error returns. Nothing in
//	this package logs or retains key material.
package signing

import (
	"math/big"

	"github.com/Caqil/wallet-signer/internal/security"
	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
	"github.com/Caqil/wallet-signer/pkg/crypto/rand"
)

const (
	// DigestLength is the required length of a message digest
	DigestLength = 32

	// ComponentLength is the length of r, s, and a private key
	ComponentLength = 32

	// SignatureLength is the length of the serialized r || s || recoveryID form
	SignatureLength = 65

	// PublicKeyLength is the length of an uncompressed public key without
	// the SEC1 0x04 prefix (x || y)
	PublicKeyLength = 64

	// ethereumVOffset maps recovery ids {0,1} onto the Ethereum v
	// convention {27,28}
	ethereumVOffset = 27
)

// Signature is an ECDSA signature with its recovery id.
type Signature struct {
	R          *big.Int
	S          *big.Int
	RecoveryID byte
}

// NewSignature builds a Signature from 32-byte big-endian r and s components
// and a recovery id in [0, 3]. Range validation of r and s against the group
// order happens at point of use (verification or recovery).
func NewSignature(r, s []byte, recoveryID byte) (*Signature, error) {
	if len(r) != ComponentLength || len(s) != ComponentLength {
		return nil, ErrInvalidComponentLength
	}
	if recoveryID > 3 {
		return nil, ErrInvalidRecoveryID
	}

	return &Signature{
		R:          new(big.Int).SetBytes(r),
		S:          new(big.Int).SetBytes(s),
		RecoveryID: recoveryID,
	}, nil
}

// ParseSignature decodes the 65-byte r || s || recoveryID wire form.
func ParseSignature(data []byte) (*Signature, error) {
	if len(data) != SignatureLength {
		return nil, ErrInvalidSignature
	}

	return NewSignature(data[:32], data[32:64], data[64])
}

// RBytes returns r as exactly 32 big-endian bytes, left-zero-padded.
func (sig *Signature) RBytes() []byte {
	return curve.PaddedBytes(sig.R, ComponentLength)
}

// SBytes returns s as exactly 32 big-endian bytes, left-zero-padded.
func (sig *Signature) SBytes() []byte {
	return curve.PaddedBytes(sig.S, ComponentLength)
}

// Serialize encodes the signature as r || s || recoveryID (65 bytes).
func (sig *Signature) Serialize() []byte {
	out := make([]byte, SignatureLength)
	copy(out[:32], sig.RBytes())
	copy(out[32:64], sig.SBytes())
	out[64] = sig.RecoveryID
	return out
}

// EthereumV returns the signature's recovery id in the Ethereum v
// convention (27 or 28). EIP-155 chain-id folding is the caller's concern.
func (sig *Signature) EthereumV() byte {
	return sig.RecoveryID + ethereumVOffset
}

// EthereumVToRecoveryID maps a v value in the Ethereum 27/28 convention, or
// an already-raw id in [0, 3], to a raw recovery id.
func EthereumVToRecoveryID(v byte) (byte, error) {
	if v <= 3 {
		return v, nil
	}
	if v >= ethereumVOffset && v <= ethereumVOffset+3 {
		return v - ethereumVOffset, nil
	}
	return 0, ErrInvalidRecoveryID
}

// GeneratePrivateKey returns a uniformly random private key in [1, n-1] as
// 32 big-endian bytes.
func GeneratePrivateKey() ([]byte, error) {
	c := curve.NewSecp256k1()

	d, err := rand.GenerateRandomScalar(c.Order())
	if err != nil {
		return nil, err
	}

	return curve.PaddedBytes(d, ComponentLength), nil
}

// PublicKeyFromPrivateKey derives the public key point for a 32-byte private
// scalar. The scalar must be in [1, n-1]; it is never silently reduced.
func PublicKeyFromPrivateKey(privateKey []byte) (*curve.Point, error) {
	return publicKeyFromPrivateKey(curve.NewSecp256k1(), privateKey)
}

// PublicKeyBytesFromPrivateKey derives the 64-byte uncompressed (x || y)
// public key for a 32-byte private scalar.
func PublicKeyBytesFromPrivateKey(privateKey []byte) ([]byte, error) {
	c := curve.NewSecp256k1()

	pub, err := publicKeyFromPrivateKey(c, privateKey)
	if err != nil {
		return nil, err
	}

	return c.MarshalUncompressed(pub)[1:], nil
}

// ParsePublicKeyBytes decodes a 64-byte uncompressed (x || y) public key and
// validates that it lies on the curve.
func ParsePublicKeyBytes(pub []byte) (*curve.Point, error) {
	if len(pub) != PublicKeyLength {
		return nil, ErrInvalidPublicKey
	}

	c := curve.NewSecp256k1()

	sec1 := make([]byte, PublicKeyLength+1)
	sec1[0] = 0x04
	copy(sec1[1:], pub)

	point, err := c.Unmarshal(sec1)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}

	return point, nil
}

func publicKeyFromPrivateKey(c curve.Curve, privateKey []byte) (*curve.Point, error) {
	if len(privateKey) != ComponentLength {
		return nil, ErrInvalidPrivateKey
	}

	d := new(big.Int).SetBytes(privateKey)
	defer security.SecureZeroBigInt(d)

	if d.Sign() == 0 || d.Cmp(c.Order()) >= 0 {
		return nil, ErrInvalidPrivateKey
	}

	return c.ScalarBaseMult(d)
}

// Package hash provides the digest primitives used by the signing core.
// Keccak-256 is the legacy (pre-FIPS-202 padding) variant used by Ethereum
// for address derivation and checksum casing.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Size is the byte length of every digest this package produces.
const Size = 32

// HashFunction represents a cryptographic hash function
type HashFunction int

const (
	// SHA256 uses SHA-256
	SHA256 HashFunction = iota
	// SHA512 uses SHA-512
	SHA512
	// KECCAK256 uses legacy Keccak-256
	KECCAK256
)

// Hash computes the digest of data using the specified hash function.
func Hash(data []byte, hashFunc HashFunction) []byte {
	var h hash.Hash

	switch hashFunc {
	case SHA512:
		h = sha512.New()
	case KECCAK256:
		h = sha3.NewLegacyKeccak256()
	default:
		h = sha256.New()
	}

	h.Write(data)
	return h.Sum(nil)
}

// Keccak256 computes the legacy Keccak-256 digest over the concatenation of
// the given byte slices.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

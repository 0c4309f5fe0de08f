// Package address derives 20-byte account addresses from secp256k1 public
// keys and renders them with EIP-55 checksum casing.
package address

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
	"github.com/Caqil/wallet-signer/pkg/crypto/hash"
)

// Length is the byte length of an address.
const Length = 20

// publicKeyLength is the uncompressed (x || y) public key length.
const publicKeyLength = 64

var (
	// ErrInvalidPublicKey is returned when the public key is malformed or
	// not on the curve
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidAddress is returned when a string is not a 0x-prefixed
	// 40-hex-character address
	ErrInvalidAddress = errors.New("invalid address string")

	// ErrChecksumMismatch is returned when a mixed-case address fails its
	// EIP-55 checksum
	ErrChecksumMismatch = errors.New("address checksum mismatch")
)

// Address is a 20-byte account identifier: the last 20 bytes of the
// Keccak-256 digest of the uncompressed public key.
type Address [Length]byte

// FromPublicKey derives the address of a public key point.
func FromPublicKey(pub *curve.Point) (Address, error) {
	if pub.IsInfinity() {
		return Address{}, ErrInvalidPublicKey
	}

	c := curve.NewSecp256k1()
	if !c.IsOnCurve(pub) {
		return Address{}, ErrInvalidPublicKey
	}

	// Strip the SEC1 0x04 prefix; the address hash covers x || y only
	return fromUncompressed(c.MarshalUncompressed(pub)[1:]), nil
}

// FromUncompressedBytes derives the address from a 64-byte (x || y) public
// key, validating that the key lies on the curve.
func FromUncompressedBytes(pub []byte) (Address, error) {
	if len(pub) != publicKeyLength {
		return Address{}, ErrInvalidPublicKey
	}

	c := curve.NewSecp256k1()

	sec1 := make([]byte, publicKeyLength+1)
	sec1[0] = 0x04
	copy(sec1[1:], pub)

	if _, err := c.Unmarshal(sec1); err != nil {
		return Address{}, ErrInvalidPublicKey
	}

	return fromUncompressed(pub), nil
}

func fromUncompressed(pub []byte) Address {
	var a Address
	digest := hash.Keccak256(pub)
	copy(a[:], digest[12:])
	return a
}

// Bytes returns the raw 20-byte address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Checksum renders the address as "0x" plus 40 hex characters with EIP-55
// casing: a hex letter is upper-cased iff the nibble at the same position of
// Keccak256(lowercase-hex-address) is >= 8. The casing is a pure function of
// the address bytes, so re-encoding is idempotent.
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])
	digest := hash.Keccak256([]byte(lower))

	encoded := []byte(lower)
	for i, ch := range encoded {
		if ch < 'a' || ch > 'f' {
			continue
		}

		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			encoded[i] = ch - ('a' - 'A')
		}
	}

	return "0x" + string(encoded)
}

// String renders the checksummed form.
func (a Address) String() string {
	return a.Checksum()
}

// Parse decodes a 0x-prefixed hex address. All-lowercase and all-uppercase
// hex are accepted without checksum enforcement, per EIP-55's compatibility
// rule; mixed-case input must carry the correct checksum casing.
func Parse(s string) (Address, error) {
	if len(s) != 2+2*Length || (s[:2] != "0x" && s[:2] != "0X") {
		return Address{}, ErrInvalidAddress
	}

	body := s[2:]

	raw, err := hex.DecodeString(body)
	if err != nil {
		return Address{}, ErrInvalidAddress
	}

	var a Address
	copy(a[:], raw)

	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if "0x"+body != a.Checksum() {
			return Address{}, ErrChecksumMismatch
		}
	}

	return a, nil
}

// VerifyChecksum reports whether s is a correctly EIP-55-checksummed
// address string.
func VerifyChecksum(s string) bool {
	if len(s) != 2+2*Length || s[:2] != "0x" {
		return false
	}

	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return false
	}

	var a Address
	copy(a[:], raw)

	return s == a.Checksum()
}

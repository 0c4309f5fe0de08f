// Package signing - RFC 6979 deterministic nonce generation
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"

	"github.com/Caqil/wallet-signer/internal/security"
)

// NonceGenerator derives deterministic ECDSA nonces per RFC 6979 using
// HMAC-SHA256. It is seeded once from (private key, digest) and yields
// successive candidates, so the signer's r == 0 / s == 0 retry is a
// continuation of the RFC's generation loop rather than a fresh seeding.
//
// The generator's HMAC state is derived from the private key; callers must
// Wipe it when signing completes, on every exit path.
type NonceGenerator struct {
	order *big.Int
	qlen  int

	// RFC 6979 HMAC chain state
	k []byte
	v []byte
}

// NewNonceGenerator seeds a nonce generator from the private scalar and the
// 32-byte message digest, per RFC 6979 section 3.2 steps a-g.
func NewNonceGenerator(privateKey *big.Int, digest []byte, order *big.Int) *NonceGenerator {
	qlen := order.BitLen()
	rlen := ((qlen + 7) / 8) * 8

	h1 := hashToInt(digest, order)

	// Private key and digest as fixed-width octet strings
	x := int2octets(privateKey, rlen)
	h1Octets := bits2octets(h1, order, rlen)

	// V = 0x01..., K = 0x00...
	hlen := sha256.Size
	v := make([]byte, hlen)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, hlen)

	// K = HMAC_K(V || 0x00 || x || h1); V = HMAC_K(V)
	k = hmacUpdate(k, v, 0x00, x, h1Octets)
	v = hmacHash(k, v)

	// K = HMAC_K(V || 0x01 || x || h1); V = HMAC_K(V)
	k = hmacUpdate(k, v, 0x01, x, h1Octets)
	v = hmacHash(k, v)

	security.SecureZero(x)

	return &NonceGenerator{
		order: order,
		qlen:  qlen,
		k:     k,
		v:     v,
	}
}

// Next returns the next nonce candidate in [1, order-1].
// Out-of-range candidates are rejected and generation continues, as the RFC
// requires; they are never reduced mod order, which would diverge from the
// published test vectors.
func (gen *NonceGenerator) Next() *big.Int {
	for {
		var t []byte
		for len(t)*8 < gen.qlen {
			gen.v = hmacHash(gen.k, gen.v)
			t = append(t, gen.v...)
		}

		candidate := bits2int(t, gen.qlen)
		security.SecureZero(t)

		// Advance the chain so a retry yields a fresh candidate
		gen.k = hmacUpdate(gen.k, gen.v, 0x00)
		gen.v = hmacHash(gen.k, gen.v)

		if candidate.Sign() > 0 && candidate.Cmp(gen.order) < 0 {
			return candidate
		}
		security.SecureZeroBigInt(candidate)
	}
}

// Wipe zeroizes the generator's HMAC chain state.
func (gen *NonceGenerator) Wipe() {
	security.SecureZero(gen.k)
	security.SecureZero(gen.v)
}

// hmacHash computes HMAC-SHA256(key, data)
func hmacHash(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// hmacUpdate computes HMAC-SHA256(key, V || marker || data...)
func hmacUpdate(key, v []byte, marker byte, data ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(v)
	h.Write([]byte{marker})
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// hashToInt converts a digest to an integer, keeping the leftmost
// order.BitLen() bits. This is the e value shared by signing, verification,
// and recovery.
func hashToInt(digest []byte, order *big.Int) *big.Int {
	orderBits := order.BitLen()
	orderBytes := (orderBits + 7) / 8

	if len(digest) > orderBytes {
		digest = digest[:orderBytes]
	}

	ret := new(big.Int).SetBytes(digest)
	excess := len(digest)*8 - orderBits
	if excess > 0 {
		ret.Rsh(ret, uint(excess))
	}

	return ret
}

// bits2int converts a bit string to an integer per RFC 6979
func bits2int(b []byte, qlen int) *big.Int {
	blen := len(b) * 8
	v := new(big.Int).SetBytes(b)

	if blen > qlen {
		v.Rsh(v, uint(blen-qlen))
	}

	return v
}

// int2octets converts an integer to a fixed-width octet string per RFC 6979
func int2octets(v *big.Int, rlen int) []byte {
	out := v.Bytes()
	rolen := rlen / 8

	if len(out) < rolen {
		padded := make([]byte, rolen)
		copy(padded[rolen-len(out):], out)
		return padded
	}
	if len(out) > rolen {
		return out[len(out)-rolen:]
	}

	return out
}

// bits2octets converts a truncated hash value to an octet string per RFC 6979
func bits2octets(h1, order *big.Int, rlen int) []byte {
	z2 := new(big.Int).Sub(h1, order)
	if z2.Sign() < 0 {
		return int2octets(h1, rlen)
	}
	return int2octets(z2, rlen)
}

package signing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/Caqil/wallet-signer/pkg/crypto/curve"
	"github.com/Caqil/wallet-signer/pkg/crypto/hash"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex constant %q: %v", s, err)
	}
	return b
}

func testDigest(msg string) []byte {
	d := sha256.Sum256([]byte(msg))
	return d[:]
}

// TestSignRoundTrip checks that every signature produced by the signer
// verifies against the key's public point.
func TestSignRoundTrip(t *testing.T) {
	keys := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"4c9d8a6e2f1b3c5d7e9f0a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", // n-1
	}
	digests := [][]byte{
		testDigest("first message"),
		testDigest("second message"),
		hash.Keccak256([]byte("keccak-hashed message")),
	}

	for _, keyHex := range keys {
		privateKey := hexBytes(t, keyHex)

		publicKey, err := PublicKeyFromPrivateKey(privateKey)
		if err != nil {
			t.Fatalf("PublicKeyFromPrivateKey: %v", err)
		}

		for _, digest := range digests {
			sig, err := SignDigest(digest, privateKey)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			if !VerifyDigest(digest, sig, publicKey) {
				t.Errorf("signature for key %s should verify", keyHex[:8])
			}

			pubBytes, err := PublicKeyBytesFromPrivateKey(privateKey)
			if err != nil {
				t.Fatalf("PublicKeyBytesFromPrivateKey: %v", err)
			}
			if !VerifyBytes(digest, sig.RBytes(), sig.SBytes(), pubBytes) {
				t.Errorf("byte-level verification for key %s should succeed", keyHex[:8])
			}
		}
	}
}

// TestSignDeterministic checks that identical inputs produce identical
// signatures, per RFC 6979.
func TestSignDeterministic(t *testing.T) {
	privateKey := hexBytes(t, "4c9d8a6e2f1b3c5d7e9f0a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d")
	digest := testDigest("determinism")

	first, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	second, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !bytes.Equal(first.Serialize(), second.Serialize()) {
		t.Error("repeated signing of the same input should be byte-identical")
	}
}

// TestSignLowS checks the low-S canonical form invariant on every emitted
// signature.
func TestSignLowS(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000002")
	halfOrder := new(big.Int).Rsh(curve.NewSecp256k1().Order(), 1)

	for i := 0; i < 32; i++ {
		digest := testDigest(string(rune('a' + i)))

		sig, err := SignDigest(digest, privateKey)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}

		if sig.S.Cmp(halfOrder) > 0 {
			t.Fatalf("signature %d has high S; signer must emit canonical form", i)
		}
		if sig.RecoveryID > 1 {
			// Overflow ids require R.x >= n, probability ~2^-128
			t.Logf("unexpected overflow recovery id %d", sig.RecoveryID)
		}
	}
}

// TestSignKnownVector checks the RFC 6979 signature for the widely published
// (key=1, "Satoshi Nakamoto") secp256k1 vector.
func TestSignKnownVector(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000001")
	digest := testDigest("Satoshi Nakamoto")

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	wantR := "934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8"
	wantS := "2442ce9d2b916064108014783e923ec36b49743e2ffa1c4496f01a512aafd9e5"

	if got := hex.EncodeToString(sig.RBytes()); got != wantR {
		t.Errorf("r = %s, want %s", got, wantR)
	}
	if got := hex.EncodeToString(sig.SBytes()); got != wantS {
		t.Errorf("s = %s, want %s", got, wantS)
	}
}

// TestSignRejectsInvalidKeys checks that zero and order-exceeding private
// scalars are rejected, never signed with or silently reduced.
func TestSignRejectsInvalidKeys(t *testing.T) {
	digest := testDigest("any")

	tests := []struct {
		name string
		key  []byte
	}{
		{"zero", make([]byte, 32)},
		{"order", func() []byte {
			return curve.PaddedBytes(curve.NewSecp256k1().Order(), 32)
		}()},
		{"above order", bytes.Repeat([]byte{0xff}, 32)},
		{"short", make([]byte, 31)},
		{"long", make([]byte, 33)},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SignDigest(digest, tt.key); !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("expected ErrInvalidPrivateKey, got %v", err)
			}
		})
	}
}

// TestSignRejectsBadDigest checks the digest length contract.
func TestSignRejectsBadDigest(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000001")

	for _, n := range []int{0, 31, 33, 64} {
		if _, err := SignDigest(make([]byte, n), privateKey); !errors.Is(err, ErrInvalidDigestLength) {
			t.Errorf("digest length %d: expected ErrInvalidDigestLength, got %v", n, err)
		}
	}
}

// TestVerifyRejectsTampering flips single bytes of r, s, and the digest and
// requires verification to return false rather than error out.
func TestVerifyRejectsTampering(t *testing.T) {
	privateKey := hexBytes(t, "4c9d8a6e2f1b3c5d7e9f0a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d")
	digest := testDigest("tamper target")

	publicKey, err := PublicKeyBytesFromPrivateKey(privateKey)
	if err != nil {
		t.Fatalf("PublicKeyBytesFromPrivateKey: %v", err)
	}

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !VerifyBytes(digest, sig.RBytes(), sig.SBytes(), publicKey) {
		t.Fatal("untampered signature should verify")
	}

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	if VerifyBytes(digest, flip(sig.RBytes(), 15), sig.SBytes(), publicKey) {
		t.Error("flipped r byte should fail verification")
	}
	if VerifyBytes(digest, sig.RBytes(), flip(sig.SBytes(), 15), publicKey) {
		t.Error("flipped s byte should fail verification")
	}
	if VerifyBytes(flip(digest, 15), sig.RBytes(), sig.SBytes(), publicKey) {
		t.Error("flipped digest byte should fail verification")
	}
}

// TestVerifyAcceptsHighS checks the deliberate verifier asymmetry: the
// default verifier accepts the non-canonical s' = n - s form, while the
// strict verifier rejects it.
func TestVerifyAcceptsHighS(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000003")
	digest := testDigest("malleability")

	publicKey, err := PublicKeyFromPrivateKey(privateKey)
	if err != nil {
		t.Fatalf("PublicKeyFromPrivateKey: %v", err)
	}

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	order := curve.NewSecp256k1().Order()
	highS := &Signature{
		R:          new(big.Int).Set(sig.R),
		S:          new(big.Int).Sub(order, sig.S),
		RecoveryID: sig.RecoveryID ^ 1,
	}

	if !NewVerifier().Verify(digest, highS, publicKey) {
		t.Error("default verifier should accept a valid high-S signature")
	}
	if NewStrictVerifier().Verify(digest, highS, publicKey) {
		t.Error("strict verifier should reject a high-S signature")
	}
	if !NewStrictVerifier().Verify(digest, sig, publicKey) {
		t.Error("strict verifier should accept the canonical form")
	}
}

// TestVerifyRejectsMalformed checks out-of-range components and malformed
// keys verify as false.
func TestVerifyRejectsMalformed(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000002")
	digest := testDigest("shape checks")

	publicKey, err := PublicKeyBytesFromPrivateKey(privateKey)
	if err != nil {
		t.Fatalf("PublicKeyBytesFromPrivateKey: %v", err)
	}

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	zero := make([]byte, 32)
	orderBytes := curve.PaddedBytes(curve.NewSecp256k1().Order(), 32)

	if VerifyBytes(digest, zero, sig.SBytes(), publicKey) {
		t.Error("r = 0 should fail")
	}
	if VerifyBytes(digest, sig.RBytes(), orderBytes, publicKey) {
		t.Error("s = n should fail")
	}
	if VerifyBytes(digest, sig.RBytes(), sig.SBytes(), publicKey[:63]) {
		t.Error("truncated public key should fail")
	}
	if VerifyBytes(digest[:31], sig.RBytes(), sig.SBytes(), publicKey) {
		t.Error("short digest should fail")
	}
}

// TestSignatureSerialization checks the 65-byte wire form and the 32-byte
// left-padded component encodings.
func TestSignatureSerialization(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000001")
	digest := testDigest("wire form")

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	wire := sig.Serialize()
	if len(wire) != SignatureLength {
		t.Fatalf("serialized length = %d, want %d", len(wire), SignatureLength)
	}

	parsed, err := ParseSignature(wire)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}

	if parsed.R.Cmp(sig.R) != 0 || parsed.S.Cmp(sig.S) != 0 || parsed.RecoveryID != sig.RecoveryID {
		t.Error("parse of serialized signature should round-trip")
	}

	if len(sig.RBytes()) != ComponentLength || len(sig.SBytes()) != ComponentLength {
		t.Error("components must be exactly 32 bytes")
	}

	if _, err := ParseSignature(wire[:64]); !errors.Is(err, ErrInvalidSignature) {
		t.Error("short wire form should be rejected")
	}

	bad := append([]byte(nil), wire...)
	bad[64] = 4
	if _, err := ParseSignature(bad); !errors.Is(err, ErrInvalidRecoveryID) {
		t.Error("recovery id 4 should be rejected")
	}
}

// TestEthereumVMapping checks the v = recoveryID + 27 convention in both
// directions.
func TestEthereumVMapping(t *testing.T) {
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1), RecoveryID: 1}
	if sig.EthereumV() != 28 {
		t.Errorf("EthereumV = %d, want 28", sig.EthereumV())
	}

	tests := []struct {
		v       byte
		want    byte
		wantErr bool
	}{
		{0, 0, false},
		{1, 1, false},
		{3, 3, false},
		{27, 0, false},
		{28, 1, false},
		{30, 3, false},
		{4, 0, true},
		{26, 0, true},
		{31, 0, true},
	}

	for _, tt := range tests {
		got, err := EthereumVToRecoveryID(tt.v)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRecoveryID) {
				t.Errorf("v=%d: expected ErrInvalidRecoveryID, got %v", tt.v, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("v=%d: got (%d, %v), want %d", tt.v, got, err, tt.want)
		}
	}
}

// TestGeneratePrivateKey checks generated keys are well-formed and usable.
func TestGeneratePrivateKey(t *testing.T) {
	privateKey, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}

	if len(privateKey) != ComponentLength {
		t.Fatalf("key length = %d, want %d", len(privateKey), ComponentLength)
	}

	digest := testDigest("fresh key")

	sig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("Sign with generated key: %v", err)
	}

	publicKey, err := PublicKeyFromPrivateKey(privateKey)
	if err != nil {
		t.Fatalf("PublicKeyFromPrivateKey: %v", err)
	}

	if !VerifyDigest(digest, sig, publicKey) {
		t.Error("signature from generated key should verify")
	}
}

// TestSignerWithReferenceCurve runs the signer against the reference engine
// and cross-verifies with the production engine, exercising the swappable
// arithmetic boundary end to end.
func TestSignerWithReferenceCurve(t *testing.T) {
	privateKey := hexBytes(t, "0000000000000000000000000000000000000000000000000000000000000001")
	digest := testDigest("Satoshi Nakamoto")

	refSigner, err := NewSignerWithCurve(curve.NewReferenceCurve())
	if err != nil {
		t.Fatalf("NewSignerWithCurve: %v", err)
	}

	refSig, err := refSigner.Sign(digest, privateKey)
	if err != nil {
		t.Fatalf("reference Sign: %v", err)
	}

	fastSig, err := SignDigest(digest, privateKey)
	if err != nil {
		t.Fatalf("fast Sign: %v", err)
	}

	if !bytes.Equal(refSig.Serialize(), fastSig.Serialize()) {
		t.Error("reference and production engines should produce identical signatures")
	}
}

// Command sign-demo walks the full signing pipeline: generate a key, sign a
// digest, verify the signature, recover the public key, and derive the
// EIP-55 checksummed address.
package main

import (
	"encoding/hex"
	"os"

	"github.com/Caqil/wallet-signer/pkg/address"
	"github.com/Caqil/wallet-signer/pkg/crypto/hash"
	"github.com/Caqil/wallet-signer/pkg/logger"
	"github.com/Caqil/wallet-signer/pkg/signing"
)

func main() {
	log := logger.New(&logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info("generating private key")

	privateKey, err := signing.GeneratePrivateKey()
	if err != nil {
		log.With().Err(err).Logger().Fatal("key generation failed")
	}

	publicKey, err := signing.PublicKeyBytesFromPrivateKey(privateKey)
	if err != nil {
		log.With().Err(err).Logger().Fatal("public key derivation failed")
	}

	addr, err := address.FromUncompressedBytes(publicKey)
	if err != nil {
		log.With().Err(err).Logger().Fatal("address derivation failed")
	}

	log.InfoEvent().Str("address", addr.Checksum()).Msg("account ready")

	message := []byte("hello from the signing core")
	digest := hash.Keccak256(message)

	sig, err := signing.SignDigest(digest, privateKey)
	if err != nil {
		log.With().Err(err).Logger().Fatal("signing failed")
	}

	log.InfoEvent().
		Str("r", hex.EncodeToString(sig.RBytes())).
		Str("s", hex.EncodeToString(sig.SBytes())).
		Str("v", hex.EncodeToString([]byte{sig.EthereumV()})).
		Msg("signature produced")

	if !signing.VerifyBytes(digest, sig.RBytes(), sig.SBytes(), publicKey) {
		log.Error("signature did not verify")
		os.Exit(1)
	}
	log.Info("signature verified")

	recovered, err := signing.RecoverPublicKeyBytes(digest, sig.RBytes(), sig.SBytes(), sig.RecoveryID)
	if err != nil {
		log.With().Err(err).Logger().Fatal("public key recovery failed")
	}

	recoveredAddr, err := address.FromUncompressedBytes(recovered)
	if err != nil {
		log.With().Err(err).Logger().Fatal("recovered address derivation failed")
	}

	log.InfoEvent().
		Str("recovered", recoveredAddr.Checksum()).
		Bool("matches", recoveredAddr == addr).
		Msg("public key recovered")
}

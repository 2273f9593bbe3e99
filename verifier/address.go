// Package verifier implements the operator-facing surface verifiers use to
// join the protocol: key and chain-support registration on the Multisig and
// ServiceRegistry contracts, bech32 address derivation, and generation of
// the per-chain ampd handler configuration.
package verifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cosmos/btcutil/bech32"
	"golang.org/x/crypto/ripemd160"
)

// DeriveAddress converts a hex-encoded secp256k1 public key to the bech32
// account address a verifier operates under.
func DeriveAddress(pubKeyHex, prefix string) (string, error) {
	pubKeyBytes, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid public key hex: %w", err)
	}

	shaHash := sha256.Sum256(pubKeyBytes)

	ripemdHasher := ripemd160.New()
	ripemdHasher.Write(shaHash[:])
	ripemdHash := ripemdHasher.Sum(nil)

	fiveBitData, err := bech32.ConvertBits(ripemdHash, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert bits: %w", err)
	}

	address, err := bech32.Encode(prefix, fiveBitData)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return address, nil
}

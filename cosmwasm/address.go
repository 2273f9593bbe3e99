package cosmwasm

import (
	"crypto/sha256"
	"encoding/hex"

	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Salt derives the deterministic instantiate2 salt for a contract instance.
// Chain-scoped contracts get "<Contract>_<chain>" so the same contract can
// be instantiated once per connected chain; global contracts hash the bare
// name. Using the same salt on every environment keeps addresses aligned,
// which the runbooks' checklists depend on.
func Salt(contract, chain string) []byte {
	label := contract
	if chain != "" {
		label = contract + "_" + chain
	}
	hash := sha256.Sum256([]byte(label))
	return hash[:]
}

func SaltHex(contract, chain string) string {
	return hex.EncodeToString(Salt(contract, chain))
}

// PredictAddress computes the instantiate2 address for a code checksum,
// creator, and salt, bech32-encoded with the given prefix. checksumHex is
// the raw-wasm sha256 the registry records.
func PredictAddress(checksumHex string, creator sdk.AccAddress, salt []byte, prefix string) (string, error) {
	checksum, err := hex.DecodeString(checksumHex)
	if err != nil {
		return "", err
	}
	// FixMsg is always false in our instantiations, so the msg does not
	// participate in the derivation.
	address := wasmkeeper.BuildContractAddressPredictable(checksum, creator, salt, []byte{})
	return sdk.Bech32ifyAddressBytes(prefix, address)
}

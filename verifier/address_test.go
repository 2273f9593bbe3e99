package verifier_test

import (
	"strings"
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/verifier"
	"github.com/cosmos/btcutil/bech32"
	"github.com/stretchr/testify/require"
)

const testPubKeyHex = "02b4632d08485ff1df2db55b9dafd23347d1c47a457072a1e87be26896549a8737"

func TestDeriveAddress(t *testing.T) {
	address, err := verifier.DeriveAddress(testPubKeyHex, "axelar")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(address, "axelar1"))

	// The result must decode back to a 20-byte payload under the same prefix.
	hrp, data, err := bech32.Decode(address, 1023)
	require.NoError(t, err)
	require.Equal(t, "axelar", hrp)
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	require.NoError(t, err)
	require.Len(t, payload, 20)
}

func TestDeriveAddressIsDeterministic(t *testing.T) {
	first, err := verifier.DeriveAddress(testPubKeyHex, "axelar")
	require.NoError(t, err)
	second, err := verifier.DeriveAddress(testPubKeyHex, "axelar")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := verifier.DeriveAddress(testPubKeyHex, "cosmos")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
	require.True(t, strings.HasPrefix(other, "cosmos1"))
}

func TestDeriveAddressRejectsBadHex(t *testing.T) {
	_, err := verifier.DeriveAddress("not-hex", "axelar")
	require.Error(t, err)
}

package cmd

import (
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	v1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
)

func TestParseVoteOption(t *testing.T) {
	tests := []struct {
		input    string
		expected v1.VoteOption
	}{
		{"yes", v1.OptionYes},
		{"Yes", v1.OptionYes},
		{"no", v1.OptionNo},
		{"abstain", v1.OptionAbstain},
		{"veto", v1.OptionNoWithVeto},
		{"no_with_veto", v1.OptionNoWithVeto},
	}
	for _, tt := range tests {
		option, err := parseVoteOption(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, option)
	}

	_, err := parseVoteOption("maybe")
	assert.Error(t, err)
}

func TestInstantiatePermission(t *testing.T) {
	assert.Nil(t, instantiatePermission(nil))

	permission := instantiatePermission([]string{"axelar1deployer"})
	require.NotNil(t, permission)
	assert.Equal(t, wasmtypes.AccessTypeAnyOfAddresses, permission.Permission)
	assert.Equal(t, []string{"axelar1deployer"}, permission.Addresses)
}

func TestResolveContract(t *testing.T) {
	registry := &chains.Registry{
		Axelar: chains.AxelarConfig{
			Contracts: map[string]*chains.ContractEntry{
				"Router": {Address: "axelar1router"},
				"VotingVerifier": {
					Chains: map[string]*chains.ContractInstance{
						"avalanche": {Address: "axelar1votingverifieravalanche"},
					},
				},
			},
		},
	}

	address, err := resolveContract(registry, "Router", "", "axelar")
	require.NoError(t, err)
	assert.Equal(t, "axelar1router", address)

	// Single-instance contracts ignore a stray chain argument.
	address, err = resolveContract(registry, "Router", "avalanche", "axelar")
	require.NoError(t, err)
	assert.Equal(t, "axelar1router", address)

	address, err = resolveContract(registry, "VotingVerifier", "avalanche", "axelar")
	require.NoError(t, err)
	assert.Equal(t, "axelar1votingverifieravalanche", address)

	// Literal bech32 addresses pass through untouched.
	address, err = resolveContract(registry, "axelar1somecontract", "", "axelar")
	require.NoError(t, err)
	assert.Equal(t, "axelar1somecontract", address)

	_, err = resolveContract(registry, "Bridge", "", "axelar")
	assert.ErrorIs(t, err, chains.ErrContractUnknown)

	// A typo that merely contains a digit is not an address.
	_, err = resolveContract(registry, "Router1", "", "axelar")
	assert.ErrorIs(t, err, chains.ErrContractUnknown)

	// Nor is an address from another chain's prefix.
	_, err = resolveContract(registry, "cosmos1somecontract", "", "axelar")
	assert.ErrorIs(t, err, chains.ErrContractUnknown)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"deploy", "proposal", "query", "verifier", "rewards", "emergency", "chains", "config", "status"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	store, _, err := root.Find([]string{"deploy", "store"})
	require.NoError(t, err)
	assert.NotNil(t, store.Flags().Lookup(FlagChecksum))

	connect, _, err := root.Find([]string{"chains", "connect"})
	require.NoError(t, err)
	assert.NotNil(t, connect.Flags().Lookup(FlagTitle))

	// Every toggle pair supports --async in both directions.
	for _, name := range []string{
		"freeze-chains", "unfreeze-chains",
		"disable-signing", "enable-signing",
		"its-disable-execution", "its-enable-execution",
		"its-freeze-chain", "its-unfreeze-chain",
	} {
		sub, _, err := root.Find([]string{"emergency", name})
		require.NoError(t, err, name)
		assert.NotNil(t, sub.Flags().Lookup(FlagAsync), name)
	}
}

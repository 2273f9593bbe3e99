package chains_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/stretchr/testify/require"
)

func writeTestRegistry(t *testing.T, dir string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "testnet.json"), []byte(testRegistryJson), 0644)
	require.NoError(t, err)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	writeTestRegistry(t, dir)

	manager, err := chains.Load(dir, "testnet")
	require.NoError(t, err)

	registry := manager.Registry()
	require.Equal(t, "axelar-testnet-lisbon-3", registry.Axelar.ChainID)

	codeID, err := registry.CodeID("Router")
	require.NoError(t, err)
	require.Equal(t, uint64(41), codeID)

	address, err := registry.ContractAddress("Router", "")
	require.NoError(t, err)
	require.Equal(t, "axelar1router", address)

	address, err = registry.ContractAddress("VotingVerifier", "avalanche")
	require.NoError(t, err)
	require.Equal(t, "axelar1votingverifieravalanche", address)

	info, err := registry.Chain("avalanche")
	require.NoError(t, err)
	require.Equal(t, "hex_tx_hash_and_event_index", info.MsgIDFormat)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := chains.Load(t.TempDir(), "mainnet")
	require.Error(t, err)
	require.Contains(t, err.Error(), "mainnet.json")
}

func TestLoadRegistryEnvironmentMismatch(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "stagenet.json"),
		[]byte(`{"environment": "testnet", "axelar": {"contracts": {}}}`), 0644)
	require.NoError(t, err)

	_, err = chains.Load(dir, "stagenet")
	require.ErrorIs(t, err, chains.ErrEnvironmentMismatch)
}

func TestRegistryTypedLookupErrors(t *testing.T) {
	dir := t.TempDir()
	writeTestRegistry(t, dir)

	manager, err := chains.Load(dir, "testnet")
	require.NoError(t, err)
	registry := manager.Registry()

	_, err = registry.CodeID("Nonexistent")
	require.ErrorIs(t, err, chains.ErrContractUnknown)

	_, err = registry.CodeID("Coordinator")
	require.ErrorIs(t, err, chains.ErrCodeNotStored)

	_, err = registry.ContractAddress("VotingVerifier", "fantom")
	require.ErrorIs(t, err, chains.ErrNotInstantiated)

	_, err = registry.Chain("fantom")
	require.ErrorIs(t, err, chains.ErrChainUnknown)
}

func TestRecordCodeKeepsPreviousCodeIds(t *testing.T) {
	dir := t.TempDir()
	writeTestRegistry(t, dir)

	manager, err := chains.Load(dir, "testnet")
	require.NoError(t, err)

	require.NoError(t, manager.RecordCode("Router", 57, "aa11"))

	// Reload from disk and check persistence.
	reloaded, err := chains.Load(dir, "testnet")
	require.NoError(t, err)

	codeID, err := reloaded.Registry().CodeID("Router")
	require.NoError(t, err)
	require.Equal(t, uint64(57), codeID)
	require.Equal(t, []uint64{41}, reloaded.Registry().Axelar.Contracts["Router"].LastCodes)
}

func TestRecordAddressPerChain(t *testing.T) {
	dir := t.TempDir()
	writeTestRegistry(t, dir)

	manager, err := chains.Load(dir, "testnet")
	require.NoError(t, err)

	err = manager.RecordAddress("MultisigProver", "avalanche", "axelar1proveravalanche", "73616c74")
	require.NoError(t, err)

	reloaded, err := chains.Load(dir, "testnet")
	require.NoError(t, err)
	address, err := reloaded.Registry().ContractAddress("MultisigProver", "avalanche")
	require.NoError(t, err)
	require.Equal(t, "axelar1proveravalanche", address)
}

func TestSaveWritesValidJson(t *testing.T) {
	dir := t.TempDir()
	writeTestRegistry(t, dir)

	manager, err := chains.Load(dir, "testnet")
	require.NoError(t, err)
	require.NoError(t, manager.Save())

	bytes, err := os.ReadFile(filepath.Join(dir, "testnet.json"))
	require.NoError(t, err)
	var roundTripped chains.Registry
	require.NoError(t, json.Unmarshal(bytes, &roundTripped))
	require.Equal(t, "axelar-testnet-lisbon-3", roundTripped.Axelar.ChainID)
}

var testRegistryJson = `
{
  "environment": "testnet",
  "axelar": {
    "chainId": "axelar-testnet-lisbon-3",
    "rpc": "http://testnet-node:26657",
    "tokenSymbol": "AXL",
    "denom": "uaxl",
    "gasPrice": "0.007uaxl",
    "governanceAddress": "axelar10d07y265gmmuvt4z0w9aw880jnsr700j7v9daj",
    "adminAddress": "axelar1admin",
    "contracts": {
      "Router": {
        "codeId": 41,
        "checksum": "deadbeef",
        "address": "axelar1router"
      },
      "Coordinator": {
        "address": "axelar1coordinator"
      },
      "VotingVerifier": {
        "codeId": 42,
        "chains": {
          "avalanche": {
            "address": "axelar1votingverifieravalanche",
            "salt": "766f74696e67"
          }
        }
      },
      "MultisigProver": {
        "codeId": 43
      }
    }
  },
  "chains": {
    "avalanche": {
      "name": "avalanche",
      "axelarId": "avalanche",
      "chainType": "evm",
      "msgIdFormat": "hex_tx_hash_and_event_index",
      "externalGatewayAddress": "0x4F4495243837681061C4743b74B3eEdf548D56A5",
      "confirmationHeight": 1,
      "serviceName": "validators"
    }
  }
}
`

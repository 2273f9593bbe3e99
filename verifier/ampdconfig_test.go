package verifier_test

import (
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/verifier"
	"github.com/stretchr/testify/require"
)

func ampdTestRegistry() *chains.Registry {
	return &chains.Registry{
		Environment: "testnet",
		Axelar: chains.AxelarConfig{
			ChainID:  "axelar-testnet-lisbon-3",
			RPC:      "http://testnet-node:26657",
			GRPC:     "tcp://testnet-node:9090",
			GasPrice: "0.007uaxl",
			Contracts: map[string]*chains.ContractEntry{
				"ServiceRegistry": {Address: "axelar1registry"},
				"Multisig":        {Address: "axelar1multisig"},
				"VotingVerifier": {
					Chains: map[string]*chains.ContractInstance{
						"avalanche": {Address: "axelar1votingverifieravalanche"},
						"sui":       {Address: "axelar1votingverifiersui"},
					},
				},
			},
		},
		Chains: map[string]*chains.ChainInfo{
			"avalanche": {Name: "avalanche", AxelarID: "avalanche", ChainType: "evm"},
			"sui":       {Name: "sui", AxelarID: "sui", ChainType: "sui"},
		},
	}
}

func TestBuildAmpdConfig(t *testing.T) {
	cfg, err := verifier.BuildAmpdConfig(
		ampdTestRegistry(),
		[]string{"avalanche", "sui"},
		map[string]string{
			"avalanche": "http://avalanche-rpc:9650",
			"sui":       "http://sui-rpc:9000",
		},
		"http://localhost:50051",
	)
	require.NoError(t, err)

	require.Equal(t, "http://testnet-node:26657", cfg.TmJsonRPC)
	require.Equal(t, "axelar1registry", cfg.ServiceReg.CosmwasmContract)
	require.Equal(t, "axelar-testnet-lisbon-3", cfg.Broadcast.ChainID)

	// Two handlers per chain plus the single multisig signer.
	require.Len(t, cfg.Handlers, 5)
	require.Equal(t, "EvmMsgVerifier", cfg.Handlers[0].Type)
	require.Equal(t, "axelar1votingverifieravalanche", cfg.Handlers[0].CosmwasmContract)
	require.Equal(t, "RPCFinalizedBlock", cfg.Handlers[0].ChainFinalization)
	require.Equal(t, "EvmVerifierSetVerifier", cfg.Handlers[1].Type)
	require.Equal(t, "SuiMsgVerifier", cfg.Handlers[2].Type)
	require.Empty(t, cfg.Handlers[2].ChainFinalization)
	require.Equal(t, "MultisigSigner", cfg.Handlers[4].Type)
	require.Equal(t, "axelar1multisig", cfg.Handlers[4].CosmwasmContract)
}

func TestAmpdConfigRendersToml(t *testing.T) {
	cfg, err := verifier.BuildAmpdConfig(
		ampdTestRegistry(),
		[]string{"avalanche"},
		map[string]string{"avalanche": "http://avalanche-rpc:9650"},
		"http://localhost:50051",
	)
	require.NoError(t, err)

	rendered, err := cfg.Render()
	require.NoError(t, err)

	output := string(rendered)
	require.Contains(t, output, `tm_jsonrpc = "http://testnet-node:26657"`)
	require.Contains(t, output, "[[handlers]]")
	require.Contains(t, output, `type = "EvmMsgVerifier"`)
	require.Contains(t, output, `cosmwasm_contract = "axelar1votingverifieravalanche"`)
	require.Contains(t, output, "[tofnd_config]")
	require.Contains(t, output, `party_uid = "ampd"`)
}

func TestBuildAmpdConfigMissingVerifier(t *testing.T) {
	registry := ampdTestRegistry()
	delete(registry.Axelar.Contracts["VotingVerifier"].Chains, "sui")

	_, err := verifier.BuildAmpdConfig(registry, []string{"sui"},
		map[string]string{"sui": "http://sui-rpc:9000"}, "http://localhost:50051")
	require.ErrorIs(t, err, chains.ErrNotInstantiated)
}

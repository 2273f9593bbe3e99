package deployer_test

import (
	"encoding/json"
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
	"github.com/stretchr/testify/require"
)

func testRegistry() *chains.Registry {
	return &chains.Registry{
		Environment: "testnet",
		Axelar: chains.AxelarConfig{
			ChainID:           "axelar-testnet-lisbon-3",
			Denom:             "uaxl",
			GovernanceAddress: "axelar1governance",
			AdminAddress:      "axelar1admin",
			Contracts: map[string]*chains.ContractEntry{
				"Router":          {Address: "axelar1router", CodeID: 1},
				"Coordinator":     {Address: "axelar1coordinator", CodeID: 2},
				"ServiceRegistry": {Address: "axelar1registry", CodeID: 3},
				"Rewards":         {Address: "axelar1rewards", CodeID: 4},
				"Multisig":        {Address: "axelar1multisig", CodeID: 5},
				"AxelarnetGateway": {
					Address: "axelar1axelarnetgateway",
				},
				"VotingVerifier": {
					CodeID: 6,
					Chains: map[string]*chains.ContractInstance{
						"avalanche": {Address: "axelar1votingverifieravalanche"},
					},
				},
				"Gateway": {
					CodeID: 7,
					Chains: map[string]*chains.ContractInstance{
						"avalanche": {Address: "axelar1gatewayavalanche"},
					},
				},
				"MultisigProver": {CodeID: 8},
			},
		},
		Chains: map[string]*chains.ChainInfo{
			"avalanche": {
				Name:               "avalanche",
				AxelarID:           "avalanche",
				ChainType:          "evm",
				MsgIDFormat:        "hex_tx_hash_and_event_index",
				ExternalGateway:    "0x4F4495243837681061C4743b74B3eEdf548D56A5",
				ConfirmationHeight: 1,
				ServiceName:        "validators",
				VotingThreshold:    "2/3",
				SigningThreshold:   "4/5",
			},
		},
	}
}

func TestBuildVotingVerifierInstantiate(t *testing.T) {
	bytes, err := deployer.BuildInstantiateMsg(testRegistry(), deployer.ContractVotingVerifier, "avalanche")
	require.NoError(t, err)

	var msg cosmwasm.VotingVerifierInstantiateMsg
	require.NoError(t, json.Unmarshal(bytes, &msg))
	require.Equal(t, "axelar1governance", msg.GovernanceAddress)
	require.Equal(t, "axelar1registry", msg.ServiceRegistryAddr)
	require.Equal(t, "validators", msg.ServiceName)
	require.Equal(t, cosmwasm.Threshold{"2", "3"}, msg.VotingThreshold)
	require.Equal(t, "avalanche", msg.SourceChain)
	require.Equal(t, "axelar1rewards", msg.RewardsAddress)
	require.Equal(t, "eip55", msg.AddressFormat)
}

func TestBuildMultisigProverInstantiate(t *testing.T) {
	bytes, err := deployer.BuildInstantiateMsg(testRegistry(), deployer.ContractMultisigProver, "avalanche")
	require.NoError(t, err)

	var msg cosmwasm.MultisigProverInstantiateMsg
	require.NoError(t, json.Unmarshal(bytes, &msg))
	require.Equal(t, "axelar1gatewayavalanche", msg.GatewayAddress)
	require.Equal(t, "axelar1multisig", msg.MultisigAddress)
	require.Equal(t, "axelar1votingverifieravalanche", msg.VotingVerifierAddr)
	require.Equal(t, cosmwasm.Threshold{"4", "5"}, msg.SigningThreshold)
	require.Equal(t, "abi", msg.Encoder)
	require.Equal(t, "ecdsa", msg.KeyType)
	require.NoError(t, cosmwasm.ValidateDomainSeparator(msg.DomainSeparator))
}

func TestBuildGatewayInstantiate(t *testing.T) {
	bytes, err := deployer.BuildInstantiateMsg(testRegistry(), deployer.ContractGateway, "avalanche")
	require.NoError(t, err)
	require.JSONEq(t, `{
		"router_address": "axelar1router",
		"verifier_address": "axelar1votingverifieravalanche"
	}`, string(bytes))
}

func TestBuildInstantiateMissingDependency(t *testing.T) {
	registry := testRegistry()
	delete(registry.Axelar.Contracts, "Rewards")

	_, err := deployer.BuildInstantiateMsg(registry, deployer.ContractVotingVerifier, "avalanche")
	require.ErrorIs(t, err, chains.ErrContractUnknown)
}

func TestBuildInstantiateUnknownChain(t *testing.T) {
	_, err := deployer.BuildInstantiateMsg(testRegistry(), deployer.ContractVotingVerifier, "fantom")
	require.ErrorIs(t, err, chains.ErrChainUnknown)
}

func TestBuildInstantiateUnknownContract(t *testing.T) {
	_, err := deployer.BuildInstantiateMsg(testRegistry(), "Bridge", "")
	require.ErrorIs(t, err, deployer.ErrUnknownContract)
}

func TestDomainSeparatorIsDeterministic(t *testing.T) {
	first := deployer.DomainSeparator("avalanche", "axelar-testnet-lisbon-3")
	second := deployer.DomainSeparator("avalanche", "axelar-testnet-lisbon-3")
	require.Equal(t, first, second)
	require.Len(t, first, 64)

	other := deployer.DomainSeparator("avalanche", "axelar-dojo-1")
	require.NotEqual(t, first, other)
}

func TestEncodingPerChainType(t *testing.T) {
	registry := testRegistry()
	registry.Chains["stellar"] = &chains.ChainInfo{
		Name:               "stellar",
		AxelarID:           "stellar",
		ChainType:          "stellar",
		MsgIDFormat:        "hex_tx_hash_and_event_index",
		ExternalGateway:    "CCGATEWAY",
		ConfirmationHeight: 1,
		ServiceName:        "validators",
		VotingThreshold:    "2/3",
		SigningThreshold:   "2/3",
	}
	registry.Axelar.Contracts["Gateway"].Chains["stellar"] = &chains.ContractInstance{Address: "axelar1gatewaystellar"}
	registry.Axelar.Contracts["VotingVerifier"].Chains["stellar"] = &chains.ContractInstance{Address: "axelar1votingverifierstellar"}

	bytes, err := deployer.BuildInstantiateMsg(registry, deployer.ContractMultisigProver, "stellar")
	require.NoError(t, err)

	var msg cosmwasm.MultisigProverInstantiateMsg
	require.NoError(t, json.Unmarshal(bytes, &msg))
	require.Equal(t, "stellar_xdr", msg.Encoder)
	require.Equal(t, "ed25519", msg.KeyType)
}

func TestIsChainScoped(t *testing.T) {
	require.True(t, deployer.IsChainScoped(deployer.ContractGateway))
	require.True(t, deployer.IsChainScoped(deployer.ContractVotingVerifier))
	require.True(t, deployer.IsChainScoped(deployer.ContractMultisigProver))
	require.False(t, deployer.IsChainScoped(deployer.ContractRouter))
	require.False(t, deployer.IsChainScoped(deployer.ContractRewards))
}

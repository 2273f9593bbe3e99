package deployer_test

import (
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
)

func connectableRegistry() *chains.Registry {
	registry := testRegistry()
	registry.Axelar.Contracts["MultisigProver"].Chains = map[string]*chains.ContractInstance{
		"avalanche": {Address: "axelar1proveravalanche"},
	}
	return registry
}

func TestConnectChainMsgs(t *testing.T) {
	msgs, err := deployer.ConnectChainMsgs(connectableRegistry(), "avalanche", "axelar1govmodule")
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	registerChain, ok := msgs[0].(*wasmtypes.MsgExecuteContract)
	require.True(t, ok)
	require.Equal(t, "axelar1govmodule", registerChain.Sender)
	require.Equal(t, "axelar1router", registerChain.Contract)
	require.JSONEq(t, `{
		"register_chain": {
			"chain": "avalanche",
			"gateway_address": "axelar1gatewayavalanche",
			"msg_id_format": "hex_tx_hash_and_event_index"
		}
	}`, string(registerChain.Msg))

	registerProver, ok := msgs[1].(*wasmtypes.MsgExecuteContract)
	require.True(t, ok)
	require.Equal(t, "axelar1coordinator", registerProver.Contract)
	require.JSONEq(t, `{
		"register_prover_contract": {
			"chain_name": "avalanche",
			"new_prover_addr": "axelar1proveravalanche"
		}
	}`, string(registerProver.Msg))

	authorize, ok := msgs[2].(*wasmtypes.MsgExecuteContract)
	require.True(t, ok)
	require.Equal(t, "axelar1multisig", authorize.Contract)
	require.JSONEq(t, `{
		"authorize_callers": {
			"contracts": {"axelar1proveravalanche": "avalanche"}
		}
	}`, string(authorize.Msg))
}

func TestConnectChainMsgsMissingProver(t *testing.T) {
	_, err := deployer.ConnectChainMsgs(testRegistry(), "avalanche", "axelar1govmodule")
	require.ErrorIs(t, err, chains.ErrNotInstantiated)
}

func TestConnectChainMsgsUnknownChain(t *testing.T) {
	_, err := deployer.ConnectChainMsgs(connectableRegistry(), "fantom", "axelar1govmodule")
	require.ErrorIs(t, err, chains.ErrChainUnknown)
}

package verifier

import (
	"fmt"

	"github.com/pelletier/go-toml"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
)

// AmpdConfig mirrors the TOML configuration blocks verifiers paste into
// their ampd config when onboarding a chain.
type AmpdConfig struct {
	TmJsonRPC      string                `toml:"tm_jsonrpc"`
	TmGRPC         string                `toml:"tm_grpc"`
	EventBufferCap int                   `toml:"event_buffer_cap"`
	ServiceReg     ServiceRegistryConfig `toml:"service_registry"`
	Broadcast      BroadcastConfig       `toml:"broadcast"`
	Tofnd          TofndConfig           `toml:"tofnd_config"`
	Handlers       []Handler             `toml:"handlers"`
}

type ServiceRegistryConfig struct {
	CosmwasmContract string `toml:"cosmwasm_contract"`
}

type BroadcastConfig struct {
	BatchGasLimit     string `toml:"batch_gas_limit"`
	BroadcastInterval string `toml:"broadcast_interval"`
	ChainID           string `toml:"chain_id"`
	GasAdjustment     string `toml:"gas_adjustment"`
	GasPrice          string `toml:"gas_price"`
	QueueCap          string `toml:"queue_cap"`
	TxFetchInterval   string `toml:"tx_fetch_interval"`
	TxFetchMaxRetries string `toml:"tx_fetch_max_retries"`
}

type TofndConfig struct {
	URL      string `toml:"url"`
	PartyUID string `toml:"party_uid"`
	KeyUID   string `toml:"key_uid"`
}

type Handler struct {
	Type              string `toml:"type"`
	ChainName         string `toml:"chain_name,omitempty"`
	ChainRpcURL       string `toml:"chain_rpc_url,omitempty"`
	CosmwasmContract  string `toml:"cosmwasm_contract"`
	ChainFinalization string `toml:"chain_finalization,omitempty"`
}

// BuildAmpdConfig assembles the full ampd configuration for one verifier
// supporting the given chains, resolving every contract address through the
// registry. chainRpcURLs maps chain name to the verifier's own RPC endpoint
// for that chain.
func BuildAmpdConfig(registry *chains.Registry, chainNames []string, chainRpcURLs map[string]string, tofndURL string) (*AmpdConfig, error) {
	serviceRegistry, err := registry.ContractAddress("ServiceRegistry", "")
	if err != nil {
		return nil, fmt.Errorf("ampd config: %w", err)
	}
	multisig, err := registry.ContractAddress("Multisig", "")
	if err != nil {
		return nil, fmt.Errorf("ampd config: %w", err)
	}

	cfg := &AmpdConfig{
		TmJsonRPC:      registry.Axelar.RPC,
		TmGRPC:         registry.Axelar.GRPC,
		EventBufferCap: 10000,
		ServiceReg:     ServiceRegistryConfig{CosmwasmContract: serviceRegistry},
		Broadcast: BroadcastConfig{
			BatchGasLimit:     "20000000",
			BroadcastInterval: "1s",
			ChainID:           registry.Axelar.ChainID,
			GasAdjustment:     "1.5",
			GasPrice:          registry.Axelar.GasPrice,
			QueueCap:          "1000",
			TxFetchInterval:   "1000ms",
			TxFetchMaxRetries: "15",
		},
		Tofnd: TofndConfig{
			URL:      tofndURL,
			PartyUID: "ampd",
			KeyUID:   "axelar",
		},
	}

	for _, chainName := range chainNames {
		info, err := registry.Chain(chainName)
		if err != nil {
			return nil, err
		}
		votingVerifier, err := registry.ContractAddress("VotingVerifier", chainName)
		if err != nil {
			return nil, fmt.Errorf("ampd config for %s: %w", chainName, err)
		}

		msgVerifier, setVerifier := handlerTypesFor(info.ChainType)
		cfg.Handlers = append(cfg.Handlers,
			Handler{
				Type:              msgVerifier,
				ChainName:         chainName,
				ChainRpcURL:       chainRpcURLs[chainName],
				CosmwasmContract:  votingVerifier,
				ChainFinalization: finalizationFor(info),
			},
			Handler{
				Type:             setVerifier,
				ChainName:        chainName,
				ChainRpcURL:      chainRpcURLs[chainName],
				CosmwasmContract: votingVerifier,
			},
		)
	}

	// One signer handler regardless of how many chains are supported.
	cfg.Handlers = append(cfg.Handlers, Handler{
		Type:             "MultisigSigner",
		CosmwasmContract: multisig,
	})

	return cfg, nil
}

// Render emits the TOML block operators append to their ampd config file.
func (c *AmpdConfig) Render() ([]byte, error) {
	return toml.Marshal(c)
}

func handlerTypesFor(chainType string) (msgVerifier, verifierSetVerifier string) {
	switch chainType {
	case "sui":
		return "SuiMsgVerifier", "SuiVerifierSetVerifier"
	case "stellar":
		return "StellarMsgVerifier", "StellarVerifierSetVerifier"
	case "solana":
		return "SolanaMsgVerifier", "SolanaVerifierSetVerifier"
	default:
		return "EvmMsgVerifier", "EvmVerifierSetVerifier"
	}
}

func finalizationFor(info *chains.ChainInfo) string {
	if info.FinalizationApproach != "" {
		return info.FinalizationApproach
	}
	if info.ChainType == "evm" {
		return "RPCFinalizedBlock"
	}
	return ""
}

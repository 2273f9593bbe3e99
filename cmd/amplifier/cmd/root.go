// Package cmd wires the amplifier CLI: deployment, governance proposals,
// contract queries, verifier onboarding and emergency operations against one
// environment's contract registry.
package cmd

import (
	"fmt"
	"os"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/config"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmosclient"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// Flag names shared across commands.
const (
	FlagEnvironment = "env"
	FlagChainsDir   = "chains-dir"
	FlagNode        = "node"
	FlagAccount     = "account"
	FlagChain       = "chain"
	FlagMsg         = "msg"
	FlagMsgFile     = "msg-file"
	FlagChecksum    = "checksum"
	FlagFunds       = "funds"
	FlagTitle       = "title"
	FlagSummary     = "summary"
	FlagMetadata    = "metadata"
	FlagDeposit     = "deposit"
	FlagExpedited   = "expedited"
	FlagService     = "service"
	FlagKeyType     = "key-type"
	FlagTofndURL    = "tofnd-url"
	FlagChainRPC    = "chain-rpc"
	FlagOutput      = "output"
	FlagGovernance  = "governance"
)

const (
	connectRetries = 3
	connectDelay   = 2 * time.Second
)

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "amplifier",
		Short:         "Deploy and operate Axelar Amplifier CosmWasm contracts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String(FlagEnvironment, "", "Target environment, e.g. devnet-amplifier (overrides the config file)")
	cmd.PersistentFlags().String(FlagChainsDir, "", "Directory holding the per-environment registry files (overrides the config file)")
	cmd.PersistentFlags().String(FlagNode, "", "Axelar RPC node url (overrides the config file)")
	cmd.PersistentFlags().String(FlagAccount, "", "Keyring account to sign with (overrides the config file)")

	cmd.AddCommand(
		DeployCommands(),
		ProposalCommands(),
		QueryCommands(),
		VerifierCommands(),
		RewardsCommands(),
		EmergencyCommands(),
		ChainsCommands(),
		ConfigCommands(),
		statusCommand(),
	)
	return cmd
}

// loadConfig layers the yaml config, env vars and the persistent CLI flags.
// A missing config file is not an error; defaults target a local devnet.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	manager, err := config.LoadDefaultConfigManager()
	if err != nil {
		logging.Warn("Config file not loaded, using defaults", logging.Config, "error", err)
		cfg = config.DefaultConfig()
	} else {
		cfg = *manager.GetConfig()
	}

	if env, _ := cmd.Flags().GetString(FlagEnvironment); env != "" {
		cfg.Environment = env
	}
	if dir, _ := cmd.Flags().GetString(FlagChainsDir); dir != "" {
		cfg.ChainsDir = dir
	}
	if node, _ := cmd.Flags().GetString(FlagNode); node != "" {
		cfg.ChainNode.Url = node
	}
	if account, _ := cmd.Flags().GetString(FlagAccount); account != "" {
		cfg.ChainNode.AccountName = account
	}
	return &cfg, nil
}

func loadChains(cfg *config.Config) (*chains.Manager, error) {
	return chains.Load(cfg.ChainsDir, cfg.Environment)
}

func newClient(cmd *cobra.Command, cfg *config.Config) (*cosmosclient.Client, error) {
	return cosmosclient.NewClientWithRetry(cmd.Context(), cfg, connectRetries, connectDelay)
}

// newDeployer assembles the config, registry and signing client every
// transacting command needs.
func newDeployer(cmd *cobra.Command) (*deployer.Deployer, *chains.Manager, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	chainsManager, err := loadChains(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := newClient(cmd, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return deployer.New(client, chainsManager), chainsManager, cfg, nil
}

// readContractMsg returns the JSON payload from --msg or --msg-file, or nil
// when neither is set so callers can fall back to registry templating.
func readContractMsg(cmd *cobra.Command) ([]byte, error) {
	inline, err := cmd.Flags().GetString(FlagMsg)
	if err != nil {
		return nil, err
	}
	if inline != "" {
		return []byte(inline), nil
	}

	path, err := cmd.Flags().GetString(FlagMsgFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	msg, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading message file %s: %w", path, err)
	}
	return msg, nil
}

func addMsgFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagMsg, "", "Inline JSON message")
	cmd.Flags().String(FlagMsgFile, "", "Path to a JSON message file")
}

func parseFunds(cmd *cobra.Command) (sdk.Coins, error) {
	raw, err := cmd.Flags().GetString(FlagFunds)
	if err != nil || raw == "" {
		return nil, err
	}
	return sdk.ParseCoinsNormalized(raw)
}

func addProposalFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagTitle, "", "Proposal title")
	cmd.Flags().String(FlagSummary, "", "Proposal summary")
	cmd.Flags().String(FlagMetadata, "", "Proposal metadata")
	cmd.Flags().String(FlagDeposit, "", "Proposal deposit, e.g. 100000000uaxl")
	cmd.Flags().Bool(FlagExpedited, false, "Submit as an expedited proposal")
	cmd.MarkFlagRequired(FlagTitle)
}

func parseProposalData(cmd *cobra.Command) (cosmosclient.ProposalData, error) {
	title, _ := cmd.Flags().GetString(FlagTitle)
	summary, _ := cmd.Flags().GetString(FlagSummary)
	metadata, _ := cmd.Flags().GetString(FlagMetadata)
	expedited, _ := cmd.Flags().GetBool(FlagExpedited)

	var deposit sdk.Coins
	if raw, _ := cmd.Flags().GetString(FlagDeposit); raw != "" {
		var err error
		deposit, err = sdk.ParseCoinsNormalized(raw)
		if err != nil {
			return cosmosclient.ProposalData{}, fmt.Errorf("invalid deposit: %w", err)
		}
	}

	return cosmosclient.ProposalData{
		Metadata:  metadata,
		Title:     title,
		Summary:   summary,
		Deposit:   deposit,
		Expedited: expedited,
	}, nil
}

// instantiatePermission builds the AccessConfig for MsgStoreCode; nil keeps
// the chain default.
func instantiatePermission(addresses []string) *wasmtypes.AccessConfig {
	if len(addresses) == 0 {
		return nil
	}
	return &wasmtypes.AccessConfig{
		Permission: wasmtypes.AccessTypeAnyOfAddresses,
		Addresses:  addresses,
	}
}

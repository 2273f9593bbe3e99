package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
)

const (
	FlagChainID            = "chain-id"
	FlagRPC                = "rpc"
	FlagGRPC               = "grpc"
	FlagTokenSymbol        = "token-symbol"
	FlagDenom              = "denom"
	FlagGasPrice           = "gas-price"
	FlagGovernanceAddress  = "governance-address"
	FlagAdminAddress       = "admin-address"
	FlagAxelarID           = "axelar-id"
	FlagChainType          = "chain-type"
	FlagMsgIDFormat        = "msg-id-format"
	FlagAddressFormat      = "address-format"
	FlagExternalGateway    = "external-gateway"
	FlagConfirmationHeight = "confirmation-height"
	FlagVotingThreshold    = "voting-threshold"
	FlagSigningThreshold   = "signing-threshold"
	FlagFinalization       = "finalization"
)

func ChainsCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Manage the per-environment contract registry",
	}
	cmd.AddCommand(
		chainsInitCommand(),
		chainsRecordCodeCommand(),
		chainsRecordChainCommand(),
		chainsConnectCommand(),
		chainsShowCommand(),
	)
	return cmd
}

func chainsInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <environment>",
		Short: "Create a fresh registry file for an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.ChainsDir, args[0]+".json")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("registry file %s already exists", path)
			}
			if err := os.MkdirAll(cfg.ChainsDir, 0755); err != nil {
				return err
			}

			chainID, _ := cmd.Flags().GetString(FlagChainID)
			rpc, _ := cmd.Flags().GetString(FlagRPC)
			grpc, _ := cmd.Flags().GetString(FlagGRPC)
			tokenSymbol, _ := cmd.Flags().GetString(FlagTokenSymbol)
			denom, _ := cmd.Flags().GetString(FlagDenom)
			gasPrice, _ := cmd.Flags().GetString(FlagGasPrice)
			governance, _ := cmd.Flags().GetString(FlagGovernanceAddress)
			admin, _ := cmd.Flags().GetString(FlagAdminAddress)

			manager := chains.NewManager(path, &chains.Registry{
				Environment: args[0],
				Axelar: chains.AxelarConfig{
					ChainID:           chainID,
					RPC:               rpc,
					GRPC:              grpc,
					TokenSymbol:       tokenSymbol,
					Denom:             denom,
					GasPrice:          gasPrice,
					GovernanceAddress: governance,
					AdminAddress:      admin,
				},
			})
			if err := manager.Save(); err != nil {
				return err
			}
			cmd.Printf("Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().String(FlagChainID, "", "Axelar chain id, e.g. axelar-testnet-lisbon-3")
	cmd.Flags().String(FlagRPC, "", "Axelar RPC endpoint")
	cmd.Flags().String(FlagGRPC, "", "Axelar gRPC endpoint")
	cmd.Flags().String(FlagTokenSymbol, "AXL", "Native token symbol")
	cmd.Flags().String(FlagDenom, "uaxl", "Native token base denom")
	cmd.Flags().String(FlagGasPrice, "0.007uaxl", "Gas price for broadcast transactions")
	cmd.Flags().String(FlagGovernanceAddress, "", "Address treated as governance by the contracts")
	cmd.Flags().String(FlagAdminAddress, "", "Address treated as admin by the contracts")
	cmd.MarkFlagRequired(FlagChainID)
	cmd.MarkFlagRequired(FlagRPC)
	return cmd
}

func chainsRecordCodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-code <contract> <code-id>",
		Short: "Record a code id stored via a passed proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid code id %q: %w", args[1], err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chainsManager, err := loadChains(cfg)
			if err != nil {
				return err
			}

			checksum, _ := cmd.Flags().GetString(FlagChecksum)
			if err := chainsManager.RecordCode(args[0], codeID, checksum); err != nil {
				return err
			}
			cmd.Printf("Recorded code id %d for %s\n", codeID, args[0])
			return nil
		},
	}
	cmd.Flags().String(FlagChecksum, "", "sha256 of the stored wasm")
	return cmd
}

func chainsRecordChainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-chain <name>",
		Short: "Register a connected chain's parameters in the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chainsManager, err := loadChains(cfg)
			if err != nil {
				return err
			}

			axelarID, _ := cmd.Flags().GetString(FlagAxelarID)
			if axelarID == "" {
				axelarID = args[0]
			}
			chainType, _ := cmd.Flags().GetString(FlagChainType)
			msgIDFormat, _ := cmd.Flags().GetString(FlagMsgIDFormat)
			addressFormat, _ := cmd.Flags().GetString(FlagAddressFormat)
			externalGateway, _ := cmd.Flags().GetString(FlagExternalGateway)
			confirmationHeight, _ := cmd.Flags().GetUint64(FlagConfirmationHeight)
			service, _ := cmd.Flags().GetString(FlagService)
			votingThreshold, _ := cmd.Flags().GetString(FlagVotingThreshold)
			signingThreshold, _ := cmd.Flags().GetString(FlagSigningThreshold)
			finalization, _ := cmd.Flags().GetString(FlagFinalization)

			info := &chains.ChainInfo{
				Name:                 args[0],
				AxelarID:             axelarID,
				ChainType:            chainType,
				MsgIDFormat:          msgIDFormat,
				AddressFormat:        addressFormat,
				ExternalGateway:      externalGateway,
				ConfirmationHeight:   confirmationHeight,
				ServiceName:          service,
				VotingThreshold:      votingThreshold,
				SigningThreshold:     signingThreshold,
				FinalizationApproach: finalization,
			}
			if err := chainsManager.RecordChain(info); err != nil {
				return err
			}
			cmd.Printf("Recorded chain %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String(FlagAxelarID, "", "Chain name as registered on the router (defaults to the name)")
	cmd.Flags().String(FlagChainType, "evm", "Chain type: evm, sui, stellar or solana")
	cmd.Flags().String(FlagMsgIDFormat, "hex_tx_hash_and_event_index", "Message id format used by the voting verifier")
	cmd.Flags().String(FlagAddressFormat, "", "Address format (defaults by chain type)")
	cmd.Flags().String(FlagExternalGateway, "", "Gateway contract address on the external chain")
	cmd.Flags().Uint64(FlagConfirmationHeight, 1, "Blocks before a transaction counts as confirmed")
	cmd.Flags().String(FlagService, "validators", "Service name in the service registry")
	cmd.Flags().String(FlagVotingThreshold, "6/10", "Voting verifier quorum")
	cmd.Flags().String(FlagSigningThreshold, "6/10", "Multisig signing weight threshold")
	cmd.Flags().String(FlagFinalization, "", "Finalization approach override, e.g. RPCFinalizedBlock")
	return cmd
}

func chainsConnectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <chain>",
		Short: "Propose connecting an instantiated chain to the protocol",
		Long: `Propose connecting an instantiated chain to the protocol.

One proposal carries the router registration, the prover registration with
the coordinator and the multisig caller authorization, so the chain connects
atomically when the proposal passes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}
			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}

			proposalID, err := d.ProposeConnectChain(args[0], data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			return nil
		},
	}
	addProposalFlags(cmd)
	return cmd
}

func chainsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [contract]",
		Short: "Print the registry, or one contract's entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chainsManager, err := loadChains(cfg)
			if err != nil {
				return err
			}
			registry := chainsManager.Registry()

			var out any = registry
			if len(args) == 1 {
				entry, ok := registry.Axelar.Contracts[args[0]]
				if !ok {
					return fmt.Errorf("show %s: %w", args[0], chains.ErrContractUnknown)
				}
				out = entry
			}

			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(encoded))
			return nil
		},
	}
}

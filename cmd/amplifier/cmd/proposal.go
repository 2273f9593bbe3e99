package cmd

import (
	"fmt"
	"strconv"
	"strings"

	v1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
)

const (
	FlagMinVerifiers  = "min-verifiers"
	FlagMaxVerifiers  = "max-verifiers"
	FlagMinBond       = "min-bond"
	FlagBondDenom     = "bond-denom"
	FlagUnbondingDays = "unbonding-days"
	FlagDescription   = "description"
	FlagEdgeContract  = "edge-contract"
	FlagMaxUint       = "max-uint"
	FlagMaxDecimals   = "max-decimals"
)

func ProposalCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Run contract operations through governance proposals",
		Long: `Run contract operations through gov v1 proposals.

On networks where wasm uploads and privileged contract entry points are
gated behind governance, every deploy operation has a proposal counterpart
whose inner messages are executed by the gov module account once the
proposal passes.`,
	}
	cmd.AddCommand(
		proposeStoreCommand(),
		proposeInstantiateCommand(),
		proposeMigrateCommand(),
		proposeExecuteCommand(),
		proposeSigningThresholdCommand(),
		proposeVotingThresholdCommand(),
		proposeRegisterServiceCommand(),
		proposeAuthorizeVerifiersCommand(),
		proposeITSRegisterChainCommand(),
		voteCommand(),
	)
	return cmd
}

// proposeContractExecute wraps a prebuilt execute message in a proposal
// against a registry-resolved contract.
func proposeContractExecute(cmd *cobra.Command, contract, chain string, msg []byte) error {
	d, _, _, err := newDeployer(cmd)
	if err != nil {
		return err
	}
	data, err := parseProposalData(cmd)
	if err != nil {
		return err
	}
	proposalID, err := d.ProposeExecute(contract, chain, msg, nil, data)
	if err != nil {
		return err
	}
	cmd.Printf("Submitted proposal %d\n", proposalID)
	return nil
}

func proposeStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <contract> <artifact.wasm>",
		Short: "Propose uploading a contract artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			checksum, _ := cmd.Flags().GetString(FlagChecksum)
			addresses, _ := cmd.Flags().GetStringSlice(FlagInstantiateAddresses)
			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}

			proposalID, err := d.ProposeStore(args[0], args[1], checksum, instantiatePermission(addresses), data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			cmd.Printf("Record the code id after the proposal passes: amplifier chains record-code %s <code-id> --%s <checksum>\n", args[0], FlagChecksum)
			return nil
		},
	}
	cmd.Flags().String(FlagChecksum, "", "Expected sha256 of the uncompressed wasm; the proposal is aborted on mismatch")
	cmd.Flags().StringSlice(FlagInstantiateAddresses, nil, "Restrict instantiation to these addresses")
	addProposalFlags(cmd)
	return cmd
}

func proposeInstantiateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate <contract>",
		Short: "Propose instantiating a stored contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			chain, _ := cmd.Flags().GetString(FlagChain)
			msg, err := readContractMsg(cmd)
			if err != nil {
				return err
			}
			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}

			proposalID, err := d.ProposeInstantiate(args[0], chain, msg, data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	addMsgFlags(cmd)
	addProposalFlags(cmd)
	return cmd
}

func proposeMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <contract>",
		Short: "Propose migrating a deployed contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			chain, _ := cmd.Flags().GetString(FlagChain)
			msg, err := readContractMsg(cmd)
			if err != nil {
				return err
			}
			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}

			proposalID, err := d.ProposeMigrate(args[0], chain, msg, data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	addMsgFlags(cmd)
	addProposalFlags(cmd)
	return cmd
}

func proposeExecuteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute <contract>",
		Short: "Propose executing a governance-only contract entry point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			chain, _ := cmd.Flags().GetString(FlagChain)
			msg, err := readContractMsg(cmd)
			if err != nil {
				return err
			}
			if msg == nil {
				return fmt.Errorf("an execute message is required (--%s or --%s)", FlagMsg, FlagMsgFile)
			}
			funds, err := parseFunds(cmd)
			if err != nil {
				return err
			}
			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}

			proposalID, err := d.ProposeExecute(args[0], chain, msg, funds, data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	cmd.Flags().String(FlagFunds, "", "Coins to attach, e.g. 100uaxl")
	addMsgFlags(cmd)
	addProposalFlags(cmd)
	return cmd
}

func proposeSigningThresholdCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-signing-threshold <chain> <threshold>",
		Short: "Propose a new signing weight threshold for a chain's prover",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := cosmwasm.ParseThreshold(args[1])
			if err != nil {
				return err
			}
			msg, err := cosmwasm.ProverUpdateSigningThreshold(threshold)
			if err != nil {
				return err
			}
			return proposeContractExecute(cmd, deployer.ContractMultisigProver, args[0], msg)
		},
	}
	addProposalFlags(cmd)
	return cmd
}

func proposeVotingThresholdCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-voting-threshold <chain> <threshold>",
		Short: "Propose a new quorum for a chain's voting verifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := cosmwasm.ParseThreshold(args[1])
			if err != nil {
				return err
			}
			msg, err := cosmwasm.VerifierUpdateVotingThreshold(threshold)
			if err != nil {
				return err
			}
			return proposeContractExecute(cmd, deployer.ContractVotingVerifier, args[0], msg)
		},
	}
	addProposalFlags(cmd)
	return cmd
}

func proposeRegisterServiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-service <service-name>",
		Short: "Propose registering a verifier service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, chainsManager, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}
			coordinator, err := chainsManager.Registry().ContractAddress(deployer.ContractCoordinator, "")
			if err != nil {
				return err
			}

			minVerifiers, _ := cmd.Flags().GetUint16(FlagMinVerifiers)
			maxVerifiers, _ := cmd.Flags().GetInt(FlagMaxVerifiers)
			minBond, _ := cmd.Flags().GetUint64(FlagMinBond)
			bondDenom, _ := cmd.Flags().GetString(FlagBondDenom)
			unbondingDays, _ := cmd.Flags().GetUint16(FlagUnbondingDays)
			description, _ := cmd.Flags().GetString(FlagDescription)

			params := cosmwasm.ServiceParams{
				ServiceName:         args[0],
				CoordinatorContract: coordinator,
				MinNumVerifiers:     minVerifiers,
				MinVerifierBond:     cosmwasm.Uint64(minBond),
				BondDenom:           bondDenom,
				UnbondingPeriodDays: unbondingDays,
				Description:         description,
			}
			if maxVerifiers > 0 {
				params.MaxNumVerifiers = &maxVerifiers
			}
			msg, err := cosmwasm.ServiceRegistryRegisterService(params)
			if err != nil {
				return err
			}

			data, err := parseProposalData(cmd)
			if err != nil {
				return err
			}
			proposalID, err := d.ProposeExecute(deployer.ContractServiceRegistry, "", msg, nil, data)
			if err != nil {
				return err
			}
			cmd.Printf("Submitted proposal %d\n", proposalID)
			return nil
		},
	}
	cmd.Flags().Uint16(FlagMinVerifiers, 1, "Minimum verifiers before the service activates")
	cmd.Flags().Int(FlagMaxVerifiers, 0, "Maximum verifiers (0 for unbounded)")
	cmd.Flags().Uint64(FlagMinBond, 0, "Minimum bond in the base denom")
	cmd.Flags().String(FlagBondDenom, "uaxl", "Bond denom")
	cmd.Flags().Uint16(FlagUnbondingDays, 10, "Unbonding period in days")
	cmd.Flags().String(FlagDescription, "", "Service description")
	cmd.MarkFlagRequired(FlagMinBond)
	addProposalFlags(cmd)
	return cmd
}

func proposeAuthorizeVerifiersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize-verifiers <verifier-address>...",
		Short: "Propose authorizing verifiers for a service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _ := cmd.Flags().GetString(FlagService)
			msg, err := cosmwasm.ServiceRegistryAuthorizeVerifiers(service, args)
			if err != nil {
				return err
			}
			return proposeContractExecute(cmd, deployer.ContractServiceRegistry, "", msg)
		},
	}
	cmd.Flags().String(FlagService, "", "Service name, e.g. validators")
	cmd.MarkFlagRequired(FlagService)
	addProposalFlags(cmd)
	return cmd
}

func proposeITSRegisterChainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its-register-chain <chain>",
		Short: "Propose registering a chain with the ITS hub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edgeContract, _ := cmd.Flags().GetString(FlagEdgeContract)
			maxUint, _ := cmd.Flags().GetString(FlagMaxUint)
			maxDecimals, _ := cmd.Flags().GetUint8(FlagMaxDecimals)

			msg, err := cosmwasm.ITSRegisterChains([]cosmwasm.ITSChainRegistration{{
				Chain:           args[0],
				ITSEdgeContract: edgeContract,
				Truncation: cosmwasm.ITSTruncation{
					MaxUint:     maxUint,
					MaxDecimals: maxDecimals,
				},
			}})
			if err != nil {
				return err
			}
			return proposeContractExecute(cmd, deployer.ContractITS, "", msg)
		},
	}
	cmd.Flags().String(FlagEdgeContract, "", "ITS edge contract address on the external chain")
	cmd.Flags().String(FlagMaxUint, "", "Largest token amount the chain can represent, as a decimal string")
	cmd.Flags().Uint8(FlagMaxDecimals, 0, "Decimals to keep when truncating across decimal boundaries")
	cmd.MarkFlagRequired(FlagEdgeContract)
	cmd.MarkFlagRequired(FlagMaxUint)
	cmd.MarkFlagRequired(FlagMaxDecimals)
	addProposalFlags(cmd)
	return cmd
}

func voteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <proposal-id> <yes|no|abstain|veto>",
		Short: "Vote on an open proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proposalID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid proposal id %q: %w", args[0], err)
			}
			option, err := parseVoteOption(args[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}

			if err := client.VoteProposal(proposalID, option); err != nil {
				return err
			}
			cmd.Printf("Voted %s on proposal %d\n", args[1], proposalID)
			return nil
		},
	}
}

func parseVoteOption(s string) (v1.VoteOption, error) {
	switch strings.ToLower(s) {
	case "yes":
		return v1.OptionYes, nil
	case "no":
		return v1.OptionNo, nil
	case "abstain":
		return v1.OptionAbstain, nil
	case "veto", "no_with_veto":
		return v1.OptionNoWithVeto, nil
	}
	return v1.OptionEmpty, fmt.Errorf("unknown vote option %q", s)
}

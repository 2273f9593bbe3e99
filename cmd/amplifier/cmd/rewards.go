package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
)

const (
	FlagEpochDuration          = "epoch-duration"
	FlagRewardsPerEpoch        = "rewards-per-epoch"
	FlagParticipationThreshold = "participation-threshold"
)

func RewardsCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Create and fund rewards pools",
	}
	cmd.AddCommand(
		createPoolCommand(),
		addFundsCommand(),
	)
	return cmd
}

func createPoolCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool <chain> <pool-contract>",
		Short: "Create a rewards pool for a chain's voting verifier or the multisig",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epochDuration, _ := cmd.Flags().GetUint64(FlagEpochDuration)
			rewardsPerEpoch, _ := cmd.Flags().GetUint64(FlagRewardsPerEpoch)
			thresholdRaw, _ := cmd.Flags().GetString(FlagParticipationThreshold)

			threshold, err := cosmwasm.ParseThreshold(thresholdRaw)
			if err != nil {
				return err
			}

			d, chainsManager, cfg, err := newDeployer(cmd)
			if err != nil {
				return err
			}
			poolContract, err := resolveContract(chainsManager.Registry(), args[1], args[0], cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}

			msg, err := cosmwasm.RewardsCreatePool(
				cosmwasm.PoolID{ChainName: args[0], Contract: poolContract},
				cosmwasm.RewardsParams{
					EpochDuration:          cosmwasm.Uint64(epochDuration),
					RewardsPerEpoch:        cosmwasm.Uint64(rewardsPerEpoch),
					ParticipationThreshold: threshold,
				},
			)
			if err != nil {
				return err
			}

			// Pool creation is governance-gated on most networks.
			if governance, _ := cmd.Flags().GetBool(FlagGovernance); governance {
				data, err := parseProposalData(cmd)
				if err != nil {
					return err
				}
				proposalID, err := d.ProposeExecute(deployer.ContractRewards, "", msg, nil, data)
				if err != nil {
					return err
				}
				cmd.Printf("Submitted proposal %d\n", proposalID)
				return nil
			}

			if err := d.Execute(deployer.ContractRewards, "", msg, nil); err != nil {
				return err
			}
			cmd.Printf("Created rewards pool for %s/%s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().Uint64(FlagEpochDuration, 0, "Epoch length in blocks")
	cmd.Flags().Uint64(FlagRewardsPerEpoch, 0, "Rewards distributed per epoch, in the base denom")
	cmd.Flags().String(FlagParticipationThreshold, "", "Minimum participation, e.g. 9/10")
	cmd.Flags().Bool(FlagGovernance, false, "Submit as a governance proposal instead of executing directly")
	cmd.Flags().String(FlagTitle, "", "Proposal title (with --governance)")
	cmd.Flags().String(FlagSummary, "", "Proposal summary (with --governance)")
	cmd.Flags().String(FlagMetadata, "", "Proposal metadata (with --governance)")
	cmd.Flags().String(FlagDeposit, "", "Proposal deposit (with --governance)")
	cmd.Flags().Bool(FlagExpedited, false, "Submit as an expedited proposal (with --governance)")
	cmd.MarkFlagRequired(FlagEpochDuration)
	cmd.MarkFlagRequired(FlagRewardsPerEpoch)
	cmd.MarkFlagRequired(FlagParticipationThreshold)
	return cmd
}

func addFundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-funds <chain> <pool-contract> <amount>",
		Short: "Top up a rewards pool",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			funds, err := sdk.ParseCoinsNormalized(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}

			d, chainsManager, cfg, err := newDeployer(cmd)
			if err != nil {
				return err
			}
			poolContract, err := resolveContract(chainsManager.Registry(), args[1], args[0], cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}

			msg, err := cosmwasm.RewardsAddRewards(cosmwasm.PoolID{ChainName: args[0], Contract: poolContract})
			if err != nil {
				return err
			}

			if err := d.Execute(deployer.ContractRewards, "", msg, funds); err != nil {
				return err
			}
			cmd.Printf("Added %s to the %s/%s pool\n", args[2], args[0], args[1])
			return nil
		},
	}
}

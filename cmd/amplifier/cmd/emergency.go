package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
)

// Emergency operations run with the admin account recorded in the registry.
// They execute directly rather than through governance so they can take
// effect within a single block.

const FlagAsync = "async"

func EmergencyCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Incident response: freeze chains, halt signing, ITS killswitch",
	}
	cmd.AddCommand(
		freezeChainsCommand(),
		unfreezeChainsCommand(),
		disableSigningCommand(),
		enableSigningCommand(),
		itsDisableExecutionCommand(),
		itsEnableExecutionCommand(),
		itsFreezeChainCommand(),
		itsUnfreezeChainCommand(),
		rotateVerifierSetCommand(),
	)
	return cmd
}

// executeEmergency builds the message and executes it against a single-
// instance contract. With --async the tx is broadcast without waiting for
// inclusion and the hash is printed instead.
func executeEmergency(cmd *cobra.Command, contract string, build func() ([]byte, error), done string) error {
	msg, err := build()
	if err != nil {
		return err
	}
	d, _, _, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	if async, _ := cmd.Flags().GetBool(FlagAsync); async {
		txHash, err := d.ExecuteAsync(contract, "", msg, nil)
		if err != nil {
			return err
		}
		cmd.Printf("Broadcast %s, confirm with: amplifier query tx %s\n", txHash, txHash)
		return nil
	}

	if err := d.Execute(contract, "", msg, nil); err != nil {
		return err
	}
	cmd.Println(done)
	return nil
}

func addAsyncFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(FlagAsync, false, "Broadcast without waiting for inclusion")
}

// routerFreezeOp freezes or unfreezes chains on the router and, unless
// --async, queries each chain's registration back to confirm the new state.
func routerFreezeOp(cmd *cobra.Command, chainNames []string, build func([]string) ([]byte, error)) error {
	msg, err := build(chainNames)
	if err != nil {
		return err
	}
	d, chainsManager, _, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	if async, _ := cmd.Flags().GetBool(FlagAsync); async {
		txHash, err := d.ExecuteAsync(deployer.ContractRouter, "", msg, nil)
		if err != nil {
			return err
		}
		cmd.Printf("Broadcast %s, confirm with: amplifier query tx %s\n", txHash, txHash)
		return nil
	}

	if err := d.Execute(deployer.ContractRouter, "", msg, nil); err != nil {
		return err
	}

	router, err := chainsManager.Registry().ContractAddress(deployer.ContractRouter, "")
	if err != nil {
		return err
	}
	for _, chainName := range chainNames {
		query, err := cosmwasm.QueryRouterChainInfo(chainName)
		if err != nil {
			return err
		}
		state, err := d.Client().SmartContractQuery(cmd.Context(), router, query)
		if err != nil {
			return err
		}
		cmd.Printf("%s: %s\n", chainName, string(state))
	}
	return nil
}

// itsChainFreezeOp freezes or unfreezes one chain's ITS transfers and,
// unless --async, queries the chain's hub config back.
func itsChainFreezeOp(cmd *cobra.Command, chainName string, build func(string) ([]byte, error)) error {
	msg, err := build(chainName)
	if err != nil {
		return err
	}
	d, chainsManager, _, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	if async, _ := cmd.Flags().GetBool(FlagAsync); async {
		txHash, err := d.ExecuteAsync(deployer.ContractITS, "", msg, nil)
		if err != nil {
			return err
		}
		cmd.Printf("Broadcast %s, confirm with: amplifier query tx %s\n", txHash, txHash)
		return nil
	}

	if err := d.Execute(deployer.ContractITS, "", msg, nil); err != nil {
		return err
	}

	its, err := chainsManager.Registry().ContractAddress(deployer.ContractITS, "")
	if err != nil {
		return err
	}
	query, err := cosmwasm.QueryITSChainConfig(chainName)
	if err != nil {
		return err
	}
	state, err := d.Client().SmartContractQuery(cmd.Context(), its, query)
	if err != nil {
		return err
	}
	cmd.Printf("%s: %s\n", chainName, string(state))
	return nil
}

func freezeChainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze-chains <chain>...",
		Short: "Stop the router from routing to and from the given chains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return routerFreezeOp(cmd, args, cosmwasm.RouterFreezeChains)
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func unfreezeChainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unfreeze-chains <chain>...",
		Short: "Resume routing for the given chains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return routerFreezeOp(cmd, args, cosmwasm.RouterUnfreezeChains)
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func disableSigningCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable-signing",
		Short: "Halt all multisig signing sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeEmergency(cmd, deployer.ContractMultisig, cosmwasm.MultisigDisableSigning, "Signing disabled")
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func enableSigningCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable-signing",
		Short: "Resume multisig signing sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeEmergency(cmd, deployer.ContractMultisig, cosmwasm.MultisigEnableSigning, "Signing enabled")
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func itsDisableExecutionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its-disable-execution",
		Short: "Killswitch: stop the ITS hub from executing token transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeEmergency(cmd, deployer.ContractITS, cosmwasm.ITSDisableExecution, "ITS execution disabled")
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func itsEnableExecutionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its-enable-execution",
		Short: "Re-enable ITS hub execution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeEmergency(cmd, deployer.ContractITS, cosmwasm.ITSEnableExecution, "ITS execution enabled")
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func itsFreezeChainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its-freeze-chain <chain>",
		Short: "Freeze one chain's ITS transfers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return itsChainFreezeOp(cmd, args[0], cosmwasm.ITSFreezeChain)
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func itsUnfreezeChainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its-unfreeze-chain <chain>",
		Short: "Unfreeze one chain's ITS transfers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return itsChainFreezeOp(cmd, args[0], cosmwasm.ITSUnfreezeChain)
		},
	}
	addAsyncFlag(cmd)
	return cmd
}

func rotateVerifierSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate-verifier-set <chain>",
		Short: "Trigger a verifier set rotation on a chain's prover",
		Long: `Trigger a verifier set rotation on a chain's prover.

After the rotation is broadcast, the prover's pending set is queried and
printed so the operator can confirm the rotation started.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, chainsManager, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			msg, err := cosmwasm.ProverUpdateVerifierSet()
			if err != nil {
				return err
			}
			if err := d.Execute(deployer.ContractMultisigProver, args[0], msg, nil); err != nil {
				return err
			}

			prover, err := chainsManager.Registry().ContractAddress(deployer.ContractMultisigProver, args[0])
			if err != nil {
				return err
			}
			query, err := cosmwasm.QueryNextVerifierSet()
			if err != nil {
				return err
			}
			nextSet, err := d.Client().SmartContractQuery(cmd.Context(), prover, query)
			if err != nil {
				return err
			}

			cmd.Printf("Rotation started, pending set:\n%s\n", string(nextSet))
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	FlagInstantiateAddresses = "instantiate-addresses"
	FlagFresh                = "fresh"
)

func DeployCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Store, instantiate and migrate contracts directly",
	}
	cmd.AddCommand(
		storeCommand(),
		instantiateCommand(),
		migrateCommand(),
		executeCommand(),
		predictAddressCommand(),
	)
	return cmd
}

func storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <contract> <artifact.wasm>",
		Short: "Upload a contract artifact and record the code id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			checksum, _ := cmd.Flags().GetString(FlagChecksum)
			addresses, _ := cmd.Flags().GetStringSlice(FlagInstantiateAddresses)

			codeID, err := d.Store(args[0], args[1], checksum, instantiatePermission(addresses))
			if err != nil {
				return err
			}
			cmd.Printf("Stored %s as code id %d\n", args[0], codeID)
			return nil
		},
	}
	cmd.Flags().String(FlagChecksum, "", "Expected sha256 of the uncompressed wasm; the upload is aborted on mismatch")
	cmd.Flags().StringSlice(FlagInstantiateAddresses, nil, "Restrict instantiation to these addresses")
	return cmd
}

func instantiateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate <contract>",
		Short: "Instantiate a stored contract at its deterministic address",
		Long: `Instantiate a stored contract at its salt-derived deterministic address.

The instantiate message is templated from the registry: dependency contract
addresses, thresholds and chain parameters are resolved automatically.
Pass --msg or --msg-file to override the templated message.`,
		Args: cobra.ExactArgs(1),
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
			funds, err := parseFunds(cmd)
			if err != nil {
				return err
			}

			instantiate := d.Instantiate
			if fresh, _ := cmd.Flags().GetBool(FlagFresh); fresh {
				instantiate = d.InstantiateFresh
			}
			address, err := instantiate(args[0], chain, msg, funds)
			if err != nil {
				return err
			}
			cmd.Printf("Instantiated %s at %s\n", args[0], address)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	cmd.Flags().String(FlagFunds, "", "Coins to attach, e.g. 100uaxl")
	cmd.Flags().Bool(FlagFresh, false, "Instantiate at a chain-assigned address instead of the deterministic one")
	addMsgFlags(cmd)
	return cmd
}

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <contract>",
		Short: "Migrate a deployed contract to its latest recorded code id",
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

			if err := d.Migrate(args[0], chain, msg); err != nil {
				return err
			}
			cmd.Printf("Migrated %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	addMsgFlags(cmd)
	return cmd
}

func executeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute <contract>",
		Short: "Execute a message against a registry-resolved contract",
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

			if err := d.Execute(args[0], chain, msg, funds); err != nil {
				return err
			}
			cmd.Printf("Executed %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	cmd.Flags().String(FlagFunds, "", "Coins to attach, e.g. 100uaxl")
	addMsgFlags(cmd)
	return cmd
}

func predictAddressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict-address <contract>",
		Short: "Compute where instantiate would place a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, cfg, err := newDeployer(cmd)
			if err != nil {
				return err
			}

			chain, _ := cmd.Flags().GetString(FlagChain)
			address, err := d.PredictAddress(args[0], chain, cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}
			cmd.Println(address)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, required for chain-scoped contracts")
	return cmd
}

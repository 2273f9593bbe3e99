package cmd

import (
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/logging"
	"github.com/axelarnetwork/axelar-contract-deployments/verifier"
)

func VerifierCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Verifier onboarding: key registration, bonding and ampd config",
	}
	cmd.AddCommand(
		registerPublicKeyCommand(),
		registerChainSupportCommand(),
		bondCommand(),
		deriveAddressCommand(),
		ampdConfigCommand(),
	)
	return cmd
}

func newRegistrar(cmd *cobra.Command) (*verifier.Registrar, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	chainsManager, err := loadChains(cfg)
	if err != nil {
		return nil, err
	}
	client, err := newClient(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return verifier.NewRegistrar(client, chainsManager), nil
}

func registerPublicKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-public-key <pubkey-hex>",
		Short: "Register a signing key with the multisig contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registrar, err := newRegistrar(cmd)
			if err != nil {
				return err
			}
			keyType, _ := cmd.Flags().GetString(FlagKeyType)
			if err := registrar.RegisterPublicKey(keyType, args[0]); err != nil {
				return err
			}
			cmd.Printf("Registered %s public key\n", keyType)
			return nil
		},
	}
	cmd.Flags().String(FlagKeyType, "ecdsa", "Key algorithm: ecdsa or ed25519")
	return cmd
}

func registerChainSupportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-chain-support <chain>...",
		Short: "Declare which chains this verifier votes on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registrar, err := newRegistrar(cmd)
			if err != nil {
				return err
			}
			service, _ := cmd.Flags().GetString(FlagService)
			if err := registrar.RegisterChainSupport(service, args); err != nil {
				return err
			}
			cmd.Printf("Registered support for %v\n", args)
			return nil
		},
	}
	cmd.Flags().String(FlagService, "", "Service name, e.g. validators")
	cmd.MarkFlagRequired(FlagService)
	return cmd
}

func bondCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bond <amount>",
		Short: "Bond the stake the service registry requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bond, err := sdk.ParseCoinNormalized(args[0])
			if err != nil {
				return fmt.Errorf("invalid bond amount %q: %w", args[0], err)
			}

			registrar, err := newRegistrar(cmd)
			if err != nil {
				return err
			}
			service, _ := cmd.Flags().GetString(FlagService)
			if err := registrar.BondVerifier(service, bond); err != nil {
				return err
			}
			cmd.Printf("Bonded %s to %s\n", bond, service)
			return nil
		},
	}
	cmd.Flags().String(FlagService, "", "Service name, e.g. validators")
	cmd.MarkFlagRequired(FlagService)
	return cmd
}

func deriveAddressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "derive-address <pubkey-hex>",
		Short: "Derive the bech32 account address for a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			address, err := verifier.DeriveAddress(args[0], cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}
			cmd.Println(address)
			return nil
		},
	}
}

func ampdConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ampd-config <chain>...",
		Short: "Generate the ampd handler configuration for the given chains",
		Long: `Generate the TOML handler blocks a verifier appends to its ampd config.

Contract addresses are resolved from the registry; per-chain RPC endpoints
are supplied with repeated --chain-rpc chain=url flags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chainRpcURLs, _ := cmd.Flags().GetStringToString(FlagChainRPC)
			tofndURL, _ := cmd.Flags().GetString(FlagTofndURL)

			rendered, err := logging.WithNoopLogger(func() (any, error) {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return nil, err
				}
				chainsManager, err := loadChains(cfg)
				if err != nil {
					return nil, err
				}
				ampdConfig, err := verifier.BuildAmpdConfig(chainsManager.Registry(), args, chainRpcURLs, tofndURL)
				if err != nil {
					return nil, err
				}
				return ampdConfig.Render()
			})
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString(FlagOutput)
			if output != "" {
				if err := os.WriteFile(output, rendered.([]byte), 0644); err != nil {
					return err
				}
				cmd.Printf("Wrote ampd config to %s\n", output)
				return nil
			}
			cmd.Print(string(rendered.([]byte)))
			return nil
		},
	}
	cmd.Flags().StringToString(FlagChainRPC, nil, "Per-chain RPC endpoint, e.g. --chain-rpc avalanche=http://host:9650")
	cmd.Flags().String(FlagTofndURL, "http://localhost:50051", "tofnd endpoint")
	cmd.Flags().String(FlagOutput, "", "Write the TOML to a file instead of stdout")
	return cmd
}

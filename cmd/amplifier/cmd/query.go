package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/chains"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmosclient"
	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/axelarnetwork/axelar-contract-deployments/deployer"
	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

const (
	FlagNext   = "next"
	FlagHeight = "height"
)

func QueryCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query deployed contracts",
	}
	cmd.AddCommand(
		queryVerifierSetCommand(),
		queryProofCommand(),
		queryVotingThresholdCommand(),
		queryRewardsPoolCommand(),
		queryChainInfoCommand(),
		queryIsEnabledCommand(),
		queryITSChainCommand(),
		queryITSContractsCommand(),
		queryServiceCommand(),
		queryVerifierCommand(),
		queryActiveVerifiersCommand(),
		querySmartCommand(),
		queryRawCommand(),
		queryStoreCommand(),
		queryTxCommand(),
		queryCodeCommand(),
		queryContractCommand(),
	)
	return cmd
}

// smartQuery resolves the contract through the registry, runs the query and
// prints the contract's raw JSON response on stdout. Logging is silenced so
// the output stays machine-readable.
func smartQuery(cmd *cobra.Command, contract, chain string, query []byte) error {
	result, err := logging.WithNoopLogger(func() (any, error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		chainsManager, err := loadChains(cfg)
		if err != nil {
			return nil, err
		}
		address, err := resolveContract(chainsManager.Registry(), contract, chain, cfg.ChainNode.AddressPrefix)
		if err != nil {
			return nil, err
		}
		client, err := newClient(cmd, cfg)
		if err != nil {
			return nil, err
		}
		return client.SmartContractQuery(cmd.Context(), address, query)
	})
	if err != nil {
		return err
	}
	cmd.Println(string(result.([]byte)))
	return nil
}

// resolveContract accepts either a registry contract name or a literal
// bech32 address carrying the configured account prefix.
func resolveContract(registry *chains.Registry, contract, chain, prefix string) (string, error) {
	if _, ok := registry.Axelar.Contracts[contract]; ok {
		if !deployer.IsChainScoped(contract) {
			chain = ""
		}
		return registry.ContractAddress(contract, chain)
	}
	if strings.HasPrefix(contract, prefix+"1") {
		return contract, nil
	}
	return "", fmt.Errorf("resolve %s: %w", contract, chains.ErrContractUnknown)
}

func queryVerifierSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifier-set <chain>",
		Short: "Show a chain prover's current (or next) verifier set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build := cosmwasm.QueryCurrentVerifierSet
			if next, _ := cmd.Flags().GetBool(FlagNext); next {
				build = cosmwasm.QueryNextVerifierSet
			}
			query, err := build()
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractMultisigProver, args[0], query)
		},
	}
	cmd.Flags().Bool(FlagNext, false, "Show the pending verifier set instead of the active one")
	return cmd
}

func queryProofCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proof <chain> <multisig-session-id>",
		Short: "Show the proof for a completed signing session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[1], err)
			}
			query, err := cosmwasm.QueryProof(sessionID)
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractMultisigProver, args[0], query)
		},
	}
}

func queryVotingThresholdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voting-threshold <chain>",
		Short: "Show a chain's voting verifier threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryVotingThreshold()
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractVotingVerifier, args[0], query)
		},
	}
}

func queryRewardsPoolCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rewards-pool <chain> <pool-contract>",
		Short: "Show a rewards pool's balance and parameters",
		Long: `Show a rewards pool's balance and parameters.

pool-contract names the contract whose participation the pool rewards:
VotingVerifier or Multisig.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chainsManager, err := loadChains(cfg)
			if err != nil {
				return err
			}
			poolContract, err := resolveContract(chainsManager.Registry(), args[1], args[0], cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}
			query, err := cosmwasm.QueryRewardsPool(cosmwasm.PoolID{ChainName: args[0], Contract: poolContract})
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractRewards, "", query)
		},
	}
}

func queryChainInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-info <chain>",
		Short: "Show a chain's registration on the router",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryRouterChainInfo(args[0])
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractRouter, "", query)
		},
	}
}

func queryIsEnabledCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "is-enabled",
		Short: "Show whether the router is accepting messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryRouterIsEnabled()
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractRouter, "", query)
		},
	}
}

func queryITSChainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "its-chain <chain>",
		Short: "Show a chain's ITS hub configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryITSChainConfig(args[0])
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractITS, "", query)
		},
	}
}

func queryITSContractsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "its-contracts",
		Short: "List every ITS edge contract registered with the hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryAllITSContracts()
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractITS, "", query)
		},
	}
}

func queryServiceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "service <service-name>",
		Short: "Show a service's registration parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryService(args[0])
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractServiceRegistry, "", query)
		},
	}
}

func queryVerifierCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verifier <service-name> <verifier-address>",
		Short: "Show a verifier's registration and bond",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryVerifier(args[0], args[1])
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractServiceRegistry, "", query)
		},
	}
}

func queryActiveVerifiersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "active-verifiers <service-name> <chain>",
		Short: "List the verifiers active for a chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := cosmwasm.QueryActiveVerifiers(args[0], args[1])
			if err != nil {
				return err
			}
			return smartQuery(cmd, deployer.ContractServiceRegistry, "", query)
		},
	}
}

func querySmartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smart <contract> <query-json>",
		Short: "Run an arbitrary smart query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, _ := cmd.Flags().GetString(FlagChain)
			return smartQuery(cmd, args[0], chain, []byte(args[1]))
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, for chain-scoped contracts")
	return cmd
}

func queryRawCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw <contract> <key>",
		Short: "Read a raw state key from a contract's storage",
		Long: `Read a raw state key from a contract's storage.

The key is taken as a literal string unless it starts with 0x, in which case
it is decoded from hex.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := []byte(args[1])
			if strings.HasPrefix(args[1], "0x") {
				decoded, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
				if err != nil {
					return fmt.Errorf("invalid hex key: %w", err)
				}
				key = decoded
			}

			chain, _ := cmd.Flags().GetString(FlagChain)
			result, err := logging.WithNoopLogger(func() (any, error) {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return nil, err
				}
				chainsManager, err := loadChains(cfg)
				if err != nil {
					return nil, err
				}
				address, err := resolveContract(chainsManager.Registry(), args[0], chain, cfg.ChainNode.AddressPrefix)
				if err != nil {
					return nil, err
				}
				client, err := newClient(cmd, cfg)
				if err != nil {
					return nil, err
				}
				return client.RawContractQuery(cmd.Context(), address, key)
			})
			if err != nil {
				return err
			}
			cmd.Println(string(result.([]byte)))
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, for chain-scoped contracts")
	return cmd
}

func queryStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <store-key> <key>",
		Short: "Read a raw value from a module's KV store",
		Long: `Read a raw value from a module's KV store via ABCI query, e.g.
store wasm 0x03... for contract-prefixed state.

The key is taken as a literal string unless it starts with 0x, in which case
it is decoded from hex.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := []byte(args[1])
			if strings.HasPrefix(args[1], "0x") {
				decoded, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
				if err != nil {
					return fmt.Errorf("invalid hex key: %w", err)
				}
				key = decoded
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rpcClient, err := cosmosclient.NewRpcClient(cfg.ChainNode.Url)
			if err != nil {
				return err
			}
			height, _ := cmd.Flags().GetInt64(FlagHeight)
			result, err := cosmosclient.QueryByKey(rpcClient, args[0], key, height, false)
			if err != nil {
				return err
			}
			if result.Response.Code != 0 {
				return fmt.Errorf("store query failed: %s", result.Response.Log)
			}

			cmd.Printf("0x%s\n", hex.EncodeToString(result.Response.Value))
			return nil
		},
	}
	cmd.Flags().Int64(FlagHeight, 0, "Query at a specific block height (0 for latest)")
	return cmd
}

func queryTxCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tx <hash>",
		Short: "Check whether a broadcast transaction landed on chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}

			included, err := client.TxIncluded(args[0])
			switch {
			case errors.Is(err, cosmosclient.ErrTxNotFound):
				cmd.Println("not found")
			case err != nil:
				return err
			case included:
				cmd.Println("included")
			}
			return nil
		},
	}
}

func queryCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "code <code-id>",
		Short: "Show stored code metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid code id %q: %w", args[0], err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}
			resp, err := client.CodeInfo(cmd.Context(), codeID)
			if err != nil {
				return err
			}

			cmd.Printf("Code ID:  %d\n", resp.CodeID)
			cmd.Printf("Creator:  %s\n", resp.Creator)
			cmd.Printf("Checksum: %s\n", hex.EncodeToString(resp.DataHash))
			return nil
		},
	}
}

func queryContractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract <contract>",
		Short: "Show a deployed contract's metadata",
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
			chain, _ := cmd.Flags().GetString(FlagChain)
			address, err := resolveContract(chainsManager.Registry(), args[0], chain, cfg.ChainNode.AddressPrefix)
			if err != nil {
				return err
			}
			client, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}
			resp, err := client.ContractInfo(cmd.Context(), address)
			if err != nil {
				return err
			}

			cmd.Printf("Address: %s\n", address)
			cmd.Printf("Label:   %s\n", resp.Label)
			cmd.Printf("Code ID: %d\n", resp.CodeID)
			cmd.Printf("Creator: %s\n", resp.Creator)
			cmd.Printf("Admin:   %s\n", resp.Admin)
			return nil
		},
	}
	cmd.Flags().String(FlagChain, "", "Connected chain name, for chain-scoped contracts")
	return cmd
}

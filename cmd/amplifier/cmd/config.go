package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-contract-deployments/config"
)

func ConfigCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update the tool's configuration",
	}
	cmd.AddCommand(
		configShowCommand(),
		configSetEnvCommand(),
	)
	return cmd
}

func configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}

// configSetEnvCommand rewrites the config file, unlike the --env flag which
// only overrides a single invocation.
func configSetEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-env <environment>",
		Short: "Switch the config file's target environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.LoadDefaultConfigManager()
			if err != nil {
				return err
			}
			if err := manager.SetEnvironment(args[0]); err != nil {
				return err
			}
			cmd.Printf("Environment set to %s\n", args[0])
			return nil
		},
	}
}

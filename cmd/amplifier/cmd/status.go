package cmd

import (
	"github.com/spf13/cobra"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show node status and the signing account's balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}

			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			balances, err := client.BankBalances(cmd.Context(), client.GetAddress())
			if err != nil {
				return err
			}

			cmd.Printf("Chain ID:     %s\n", status.NodeInfo.Network)
			cmd.Printf("Block height: %d\n", status.SyncInfo.LatestBlockHeight)
			cmd.Printf("Catching up:  %t\n", status.SyncInfo.CatchingUp)
			cmd.Printf("Account:      %s\n", client.GetAddress())
			for _, coin := range balances {
				cmd.Printf("Balance:      %s\n", coin)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List configured workspaces and whether their tokens are set",
	Long: `List the configured workspaces in dispatch order.

Shows the environment variable each workspace reads its token from and
whether it is set. Tokens are shown by prefix only.`,
	Args: cobra.NoArgs,
	RunE: runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	infos := accountInfos(cfg.LoadAccounts())

	if jsonOutput {
		if err := outputJSON(cmd.OutOrStdout(), AccountsResponse{Accounts: infos}); err != nil {
			exitWithError(ExitError, "encoding JSON: %v", err)
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatAccountsHuman(infos))
	return nil
}

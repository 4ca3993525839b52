package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deploykit/internal/cli/render"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts [roles...]",
		Short: "Resolve and validate named accounts",
		Long: `Resolve the named accounts of the active network and check that each is
an address. Without roles every role in [named_accounts] is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			roles := args
			if len(roles) == 0 {
				roles = app.Roles.Roles()
			}

			accounts, err := app.ValidateAccounts.Run(cmd.Context(), roles...)
			if err != nil {
				return err
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(accounts)
		},
	}
}

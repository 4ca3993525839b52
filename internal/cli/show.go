package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deploykit/internal/cli/render"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		format string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a recorded deployment",
		Long: `Show the recorded deployment <name> on the active network, or on the
network given with --network. Without a name, pick one of the network's
deployments interactively.`,
		Example: `  deploykit show USDC
  deploykit show USDC --network sepolia --format json --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Name:   name,
				Verify: verify,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that code still lives at the recorded address")

	return cmd
}

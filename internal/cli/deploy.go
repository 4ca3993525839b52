package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deploykit/internal/cli/render"
	"github.com/trebuchet-org/deploykit/internal/config"
	"github.com/trebuchet-org/deploykit/internal/domain/units"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// NewDeployAndExportCmd creates the deploy-and-export command
func NewDeployAndExportCmd() *cobra.Command {
	var (
		tags     []string
		gasPrice string
	)

	cmd := &cobra.Command{
		Use:   "deploy-and-export",
		Short: "Run deploy recipes on a network and export all deployments",
		Long: `Run the deploy recipes on the selected network with the given gas price,
then export the deployments of every network to the flattened per-chain
artifact (deployments.json by default).

The gas price must be given in gwei, e.g. "5 gwei" or "3.5gwei".`,
		Example: `  deploykit deploy-and-export --network sepolia --gasprice "5 gwei"
  deploykit deploy-and-export --tags USDC --gasprice 1gwei`,
		// Args runs before the root PersistentPreRunE: no config or RPC yet.
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return err
			}
			if !cmd.Flags().Changed("gasprice") {
				return fmt.Errorf(`required flag(s) "gasprice" not set`)
			}
			_, err := units.ParseGasPrice(gasPrice)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network := app.Config.Network
			if _, err := config.DeployerKey(len(network.Accounts) == 0); err != nil {
				return err
			}

			if network.Live && !app.Config.NonInteractive {
				if !confirm(fmt.Sprintf("Deploy to live network %s", network.Name)) {
					return fmt.Errorf("deployment to %s cancelled", network.Name)
				}
			}

			result, err := app.DeployAndExport.Run(cmd.Context(), usecase.DeployAndExportParams{
				Tags:     tags,
				GasPrice: gasPrice,
			})
			if err != nil {
				return err
			}

			return render.NewExportRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Only run recipes with these tags (and their dependencies)")
	cmd.Flags().StringVar(&gasPrice, "gasprice", "", "Gas price in gwei, e.g. \"5 gwei\"")
	_ = cmd.MarkFlagRequired("gasprice")

	return cmd
}

// NewExportAllCmd creates the export-all command
func NewExportAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "export-all",
		Annotations: map[string]string{offlineAnnotation: "true"},
		Short: "Export the deployments of every network",
		Long: `Export the recorded deployments of every network to the flattened
per-chain artifact without deploying anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ExportDeployments.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewExportRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deploykit/internal/cli/render"
)

// NewRecipesCmd creates the recipes command
func NewRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes [tags...]",
		Short: "List deploy recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return render.NewRecipesRenderer(cmd.OutOrStdout()).Render(app.ListRecipes.Run(args...))
		},
	}
}

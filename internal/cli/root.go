package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deploykit/internal/adapters/progress"
	"github.com/trebuchet-org/deploykit/internal/app"
	"github.com/trebuchet-org/deploykit/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// offlineAnnotation marks commands that only need the project files
	offlineAnnotation = "deploykit/offline"
)

// skipApp lists commands that run without a project
var skipApp = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"deploykit":  true,
}

// session owns what PersistentPreRunE opened for a command
type session struct {
	closers []func()
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Execute runs the CLI with os.Args
func Execute(ctx context.Context) error {
	root, s := newRootCmd()
	defer s.close()
	return root.ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *session) {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "deploykit",
		Short: "Typed contract deployments with a per-chain address export",
		Long: `deploykit runs typed Go deploy recipes against a configured network and
publishes the deployments of every network as a flattened, per-chain
deployments.json for front ends and scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipApp[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			sink := progress.NewSink(v.GetBool("non_interactive"))

			ctx := cmd.Context()
			if timeout := v.GetDuration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				s.closers = append(s.closers, cancel)
			}

			var appInstance *app.App
			if cmd.Annotations[offlineAnnotation] == "true" {
				appInstance, err = app.InitExportApp(v, sink)
			} else {
				var cleanup func()
				appInstance, cleanup, err = app.InitApp(ctx, v, sink)
				if err == nil {
					s.closers = append(s.closers, cleanup)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			if stopper, ok := sink.(interface{ Stop() }); ok {
				s.closers = append(s.closers, stopper.Stop)
			}

			cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (defaults to default_network in deploykit.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Timeout for the whole command")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{NewDeployAndExportCmd(), NewExportAllCmd(), NewShowCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewAccountsCmd(), NewNetworksCmd(), NewRecipesCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd, s
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/deploykit/internal/adapters"
	"github.com/trebuchet-org/deploykit/internal/adapters/accounts"
	"github.com/trebuchet-org/deploykit/internal/config"
	"github.com/trebuchet-org/deploykit/internal/logging"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.NewLogger,

		// Adapters
		adapters.AllAdapters,
		ProvideRecipeSet,
		ProvideDeploymentNames,
		wire.Bind(new(usecase.DeploymentNames), new(*typeddeploy.Registry)),
		wire.Bind(new(RoleLister), new(*accounts.Provider)),

		// Use cases
		usecase.NewValidateAccounts,
		usecase.NewExportDeployments,
		usecase.NewDeployAndExport,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewListRecipes,

		// App
		NewApp,
	)
	return nil, nil, nil
}

// InitExportApp wires the filesystem export only. The active network is
// not resolved and no signers are loaded.
func InitExportApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.ProjectProvider,
		logging.NewLogger,
		adapters.FSSet,
		usecase.NewExportDeployments,
		NewExportApp,
	)
	return nil, nil
}

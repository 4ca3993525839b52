package app

import (
	"github.com/trebuchet-org/deploykit/internal/adapters/recipes"
	"github.com/trebuchet-org/deploykit/internal/deploy"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	ValidateAccounts  *usecase.ValidateAccounts
	DeployAndExport   *usecase.DeployAndExport
	ExportDeployments *usecase.ExportDeployments
	ShowDeployment    *usecase.ShowDeployment
	ListNetworks      *usecase.ListNetworks
	ListRecipes       *usecase.ListRecipes

	// Adapters needed by commands directly
	Roles RoleLister
}

// RoleLister lists the configured named account roles
type RoleLister interface {
	Roles() []string
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	validateAccounts *usecase.ValidateAccounts,
	deployAndExport *usecase.DeployAndExport,
	exportDeployments *usecase.ExportDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	listRecipes *usecase.ListRecipes,
	roles RoleLister,
) *App {
	return &App{
		Config:            cfg,
		ValidateAccounts:  validateAccounts,
		DeployAndExport:   deployAndExport,
		ExportDeployments: exportDeployments,
		ShowDeployment:    showDeployment,
		ListNetworks:      listNetworks,
		ListRecipes:       listRecipes,
		Roles:             roles,
	}
}

// NewExportApp creates an App holding only the export use case. Commands
// built on it must not touch the network or signers.
func NewExportApp(cfg *config.RuntimeConfig, exportDeployments *usecase.ExportDeployments) *App {
	return &App{
		Config:            cfg,
		ExportDeployments: exportDeployments,
	}
}

// ProvideDeploymentNames returns the project's typed deployment names
func ProvideDeploymentNames() *typeddeploy.Registry {
	return deploy.Names
}

// ProvideRecipeSet validates the project's recipes
func ProvideRecipeSet() (*recipes.Set, error) {
	return recipes.NewSet(deploy.Recipes()...)
}

package usecase

import (
	"context"
	"math/big"

	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
)

// NamedAccountProvider resolves every configured role on the active network.
// Values are returned as configured or resolved, unvalidated.
type NamedAccountProvider interface {
	GetNamedAccounts(ctx context.Context) (map[string]string, error)
}

// RunParams selects and parameterizes deploy recipes
type RunParams struct {
	// Tags filter the recipes to run; empty runs all of them
	Tags []string
	// GasPrice in wei applied to every transaction
	GasPrice *big.Int
}

// RunResult reports which recipes ran
type RunResult struct {
	Executed []string
	Skipped  []string
}

// DeploymentRunner runs deploy recipes against the active network
type DeploymentRunner interface {
	Run(ctx context.Context, params RunParams) (*RunResult, error)
}

// RecipeInfo describes a registered recipe
type RecipeInfo struct {
	ID           string
	Tags         []string
	Dependencies []string
}

// RecipeCatalog lists the registered recipes
type RecipeCatalog interface {
	Recipes() []RecipeInfo
}

// NetworkExporter writes the raw multi-network export to path
type NetworkExporter interface {
	ExportAll(ctx context.Context, path string) error
}

// ArtifactFiles reads, writes and removes export artifacts
type ArtifactFiles interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Remove(path string) error
}

// DeploymentStore handles persistence of deployments
type DeploymentStore interface {
	GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	Networks(ctx context.Context) ([]string, error)
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	Names() []string
	Resolve(ctx context.Context, name string) (*config.Network, error)
}

// BlockchainChecker looks at deployments on chain
type BlockchainChecker interface {
	// CheckDeploymentExists reports whether code lives at address on network.
	// reason explains a negative answer.
	CheckDeploymentExists(ctx context.Context, network *config.Network, address string) (exists bool, reason string, err error)
}

// DeploymentNames is the project's registry of typed deployment names
type DeploymentNames interface {
	Names() []string
	Artifact(name string) (string, bool)
}

// DeploymentSelector picks one deployment, prompting when needed
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

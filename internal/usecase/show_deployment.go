package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Name is selected interactively when empty
	Name string
	// Network defaults to the active network
	Network string
	// Verify checks that the address still holds code
	Verify bool
}

// ShowDeploymentResult is a deployment with its optional on-chain status
type ShowDeploymentResult struct {
	Deployment *models.Deployment
	// Verified is nil unless verification was requested
	Verified *bool
	Reason   string
}

// DeploymentNotFoundError is returned when no deployment has the name.
// Suggestions hold close matches among the network's deployments and the
// defined names. Artifact is set when the name is defined but not deployed.
type DeploymentNotFoundError struct {
	Name        string
	Network     string
	Artifact    string
	Suggestions []string
}

func (e *DeploymentNotFoundError) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("deployment %s (%s) is defined but not deployed on %s", e.Name, e.Artifact, e.Network)
	}
	msg := fmt.Sprintf("deployment %s not found on %s", e.Name, e.Network)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *DeploymentNotFoundError) Unwrap() error { return domain.ErrNotFound }

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	store    DeploymentStore
	networks NetworkResolver
	checker  BlockchainChecker
	selector DeploymentSelector
	names    DeploymentNames
	cfg      *config.RuntimeConfig
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(
	store DeploymentStore,
	networks NetworkResolver,
	checker BlockchainChecker,
	selector DeploymentSelector,
	names DeploymentNames,
	cfg *config.RuntimeConfig,
) *ShowDeployment {
	return &ShowDeployment{
		store:    store,
		networks: networks,
		checker:  checker,
		selector: selector,
		names:    names,
		cfg:      cfg,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	network := params.Network
	if network == "" && uc.cfg.Network != nil {
		network = uc.cfg.Network.Name
	}

	var deployment *models.Deployment
	var err error
	if params.Name == "" {
		deployment, err = uc.selectDeployment(ctx, network)
		if err != nil {
			return nil, err
		}
	} else {
		deployment, err = uc.store.GetDeployment(ctx, network, params.Name)
	}
	if err == nil {
		result := &ShowDeploymentResult{Deployment: deployment}
		if params.Verify {
			if err := uc.verify(ctx, network, result); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return nil, uc.notFound(ctx, network, params.Name)
}

func (uc *ShowDeployment) selectDeployment(ctx context.Context, network string) (*models.Deployment, error) {
	deployments, err := uc.store.ListDeployments(ctx, network)
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return nil, fmt.Errorf("no deployments on %s", network)
	}
	if uc.selector == nil {
		return nil, fmt.Errorf("deployment name is required")
	}
	return uc.selector.SelectDeployment(ctx, deployments, fmt.Sprintf("Select deployment on %s", network))
}

func (uc *ShowDeployment) verify(ctx context.Context, network string, result *ShowDeploymentResult) error {
	net, err := uc.networks.Resolve(ctx, network)
	if err != nil {
		return err
	}
	exists, reason, err := uc.checker.CheckDeploymentExists(ctx, net, result.Deployment.Address)
	if err != nil {
		return fmt.Errorf("failed to verify %s on %s: %w", result.Deployment.Name, network, err)
	}
	result.Verified = &exists
	result.Reason = reason
	return nil
}

func (uc *ShowDeployment) notFound(ctx context.Context, network, name string) error {
	notFound := &DeploymentNotFoundError{Name: name, Network: network}

	var candidates []string
	if existing, listErr := uc.store.ListDeployments(ctx, network); listErr == nil {
		for _, d := range existing {
			candidates = append(candidates, d.Name)
		}
	}
	if uc.names != nil {
		if artifact, ok := uc.names.Artifact(name); ok {
			notFound.Artifact = artifact
			return notFound
		}
		candidates = append(candidates, uc.names.Names()...)
	}

	for i, match := range fuzzy.Find(name, lo.Uniq(candidates)) {
		if i == maxSuggestions {
			break
		}
		notFound.Suggestions = append(notFound.Suggestions, match.Str)
	}
	return notFound
}

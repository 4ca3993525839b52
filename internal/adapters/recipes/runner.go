package recipes

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// PricedBackend is a typed backend that can be rebound to a gas price
type PricedBackend interface {
	typeddeploy.Backend
	WithGasPrice(gasPrice *big.Int) typeddeploy.Backend
}

// Runner runs recipes of a Set in dependency order
type Runner struct {
	set      *Set
	network  *config.Network
	backend  PricedBackend
	accounts *usecase.ValidateAccounts
	sink     usecase.ProgressSink
	log      *slog.Logger
}

// NewRunner creates a recipe runner for the active network
func NewRunner(
	set *Set,
	cfg *config.RuntimeConfig,
	backend PricedBackend,
	accounts *usecase.ValidateAccounts,
	sink usecase.ProgressSink,
	log *slog.Logger,
) *Runner {
	return &Runner{
		set:      set,
		network:  cfg.Network,
		backend:  backend,
		accounts: accounts,
		sink:     sink,
		log:      log.With("component", "recipes"),
	}
}

// Run executes the recipes selected by params.Tags. The first failing
// recipe stops the run.
func (r *Runner) Run(ctx context.Context, params usecase.RunParams) (*usecase.RunResult, error) {
	plan, err := r.set.Plan(params.Tags)
	if err != nil {
		return nil, r.fail("", err)
	}

	var backend typeddeploy.Backend = r.backend
	if params.GasPrice != nil {
		backend = r.backend.WithGasPrice(params.GasPrice)
	}
	env := &Env{
		Network:  r.network,
		Backend:  backend,
		Accounts: r.accounts,
		Log:      r.log,
	}

	result := &usecase.RunResult{}
	for i, recipe := range plan {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(recipe.ID, err)
		}

		r.sink.OnProgress(ctx, usecase.ProgressEvent{
			Stage:   "recipe",
			Current: i + 1,
			Total:   len(plan),
			Message: recipe.ID,
			Spinner: true,
		})

		if recipe.Skip != nil {
			skip, err := recipe.Skip(ctx, env)
			if err != nil {
				return nil, r.fail(recipe.ID, err)
			}
			if skip {
				r.log.Debug("skipping recipe", "recipe", recipe.ID)
				result.Skipped = append(result.Skipped, recipe.ID)
				continue
			}
		}

		r.log.Debug("running recipe", "recipe", recipe.ID, "tags", recipe.Tags)
		if err := recipe.Func(ctx, env.withLog(recipe.ID)); err != nil {
			return nil, r.fail(recipe.ID, err)
		}
		result.Executed = append(result.Executed, recipe.ID)
	}
	return result, nil
}

// Recipes lists the registered recipes sorted by ID
func (r *Runner) Recipes() []usecase.RecipeInfo {
	ids := r.set.IDs()
	infos := make([]usecase.RecipeInfo, len(ids))
	for i, id := range ids {
		recipe, _ := r.set.Get(id)
		infos[i] = usecase.RecipeInfo{
			ID:           recipe.ID,
			Tags:         recipe.Tags,
			Dependencies: recipe.Dependencies,
		}
	}
	return infos
}

func (r *Runner) fail(recipe string, err error) error {
	var depErr *domain.DeploymentError
	if errors.As(err, &depErr) {
		return depErr
	}
	network := ""
	if r.network != nil {
		network = r.network.Name
	}
	return &domain.DeploymentError{Network: network, Recipe: recipe, Err: err}
}

func (e *Env) withLog(recipe string) *Env {
	scoped := *e
	scoped.Log = e.Log.With("recipe", recipe)
	return &scoped
}

// Ensure the runner implements the interfaces
var (
	_ usecase.DeploymentRunner = (*Runner)(nil)
	_ usecase.RecipeCatalog    = (*Runner)(nil)
)

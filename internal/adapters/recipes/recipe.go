// Package recipes runs deploy recipes against the active network.
//
// A recipe is a Go function with an ID, tags and dependencies. Dependencies
// name other recipes by ID or by tag, as hardhat-deploy scripts do.
package recipes

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// Env is what a recipe gets to work with
type Env struct {
	Network *config.Network
	// Backend carries the gas price of the run
	Backend  typeddeploy.Backend
	Accounts *usecase.ValidateAccounts
	Log      *slog.Logger
}

// Func is the body of a recipe
type Func func(ctx context.Context, env *Env) error

// Recipe is a registered deploy step
type Recipe struct {
	ID           string
	Tags         []string
	Dependencies []string
	// Skip, when set, is consulted before Func
	Skip func(ctx context.Context, env *Env) (bool, error)
	Func Func
}

// HasTag reports whether the recipe carries tag
func (r *Recipe) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

func (r *Recipe) validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe without ID")
	}
	if r.Func == nil {
		return fmt.Errorf("recipe %s has no function", r.ID)
	}
	for _, dep := range r.Dependencies {
		if dep == r.ID || r.HasTag(dep) {
			return fmt.Errorf("recipe %s cannot depend on itself", r.ID)
		}
	}
	return nil
}

package deploy

import (
	"context"

	"github.com/trebuchet-org/deploykit/internal/adapters/recipes"
	"github.com/trebuchet-org/deploykit/internal/domain/bindings"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
)

var deployTokens = recipes.Recipe{
	ID:   "00_deploy",
	Tags: []string{"USDC"},
	Func: func(ctx context.Context, env *recipes.Env) error {
		accounts, err := env.Accounts.Run(ctx, "deployer")
		if err != nil {
			return err
		}
		deployer := accounts.MustGet("deployer")

		res, err := typeddeploy.Deploy(ctx, env.Backend, USDC,
			bindings.ERC20Args{Name: "USD Coin", Symbol: "USDC"},
			typeddeploy.DeployOptions{
				TxOptions:             typeddeploy.TxOptions{From: deployer, Log: true},
				SkipIfAlreadyDeployed: true,
			})
		if err != nil {
			return err
		}
		env.Log.Info("USDC ready", "address", res.Deployment.Address, "new", res.Newly)
		return nil
	},
}

// Recipes returns every recipe of the project
func Recipes() []recipes.Recipe {
	return []recipes.Recipe{
		deployTokens,
	}
}

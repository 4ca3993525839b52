// Package deploy holds the project's deployment names and recipes.
package deploy

import (
	"github.com/trebuchet-org/deploykit/internal/domain/bindings"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
)

// Deployment names. Each is bound to the binding of the artifact it is
// deployed from.
var (
	USDC = typeddeploy.Define("USDC", bindings.ERC20Constructor)
)

// Names is the registry of every defined deployment name
var Names = typeddeploy.MustRegistry(USDC)

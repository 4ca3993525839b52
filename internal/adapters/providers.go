package adapters

import (
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/wire"
	"github.com/trebuchet-org/deploykit/internal/adapters/accounts"
	"github.com/trebuchet-org/deploykit/internal/adapters/artifacts"
	"github.com/trebuchet-org/deploykit/internal/adapters/blockchain"
	"github.com/trebuchet-org/deploykit/internal/adapters/evm"
	"github.com/trebuchet-org/deploykit/internal/adapters/fs"
	"github.com/trebuchet-org/deploykit/internal/adapters/interactive"
	"github.com/trebuchet-org/deploykit/internal/adapters/recipes"
	"github.com/trebuchet-org/deploykit/internal/config"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStore,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStore)),
	wire.Bind(new(evm.Store), new(*fs.DeploymentStore)),

	fs.NewExporter,
	wire.Bind(new(usecase.NetworkExporter), new(*fs.Exporter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.ArtifactFiles), new(*fs.FileWriterAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// AccountsSet provides signers and named accounts
var AccountsSet = wire.NewSet(
	accounts.NewKeyring,
	accounts.NewProvider,
	wire.Bind(new(usecase.NamedAccountProvider), new(*accounts.Provider)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),

	blockchain.ProvideClient,
	wire.Bind(new(evm.Chain), new(*ethclient.Client)),

	artifacts.NewRepository,
	wire.Bind(new(evm.ArtifactSource), new(*artifacts.Repository)),

	evm.NewBackend,
	wire.Bind(new(recipes.PricedBackend), new(*evm.Backend)),
)

// RecipesSet provides the recipe runner. The recipe Set itself is supplied
// by the injector.
var RecipesSet = wire.NewSet(
	recipes.NewRunner,
	wire.Bind(new(usecase.DeploymentRunner), new(*recipes.Runner)),
	wire.Bind(new(usecase.RecipeCatalog), new(*recipes.Runner)),
)

// InteractiveSet provides prompts
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ConfigSet,
	AccountsSet,
	BlockchainSet,
	RecipesSet,
	InteractiveSet,
)

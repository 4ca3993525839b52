// Package typeddeploy binds deployment names to contract bindings so that
// deploy arguments, mutating calls and view calls are checked by the Go
// compiler against the contract they target.
//
// A binding package declares a marker type implementing Contract, a
// Constructor descriptor typed with the constructor argument list, and
// Method / View descriptors for the contract functions. Recipes then
// Define names against a Constructor and use the package level functions
// Deploy, Execute, Read, ReadWith and Get. A call that names a method of a
// different contract, or passes the wrong argument type, does not compile:
//
//	var USDC = typeddeploy.Define("USDC", bindings.ERC20Constructor)
//
//	typeddeploy.Deploy(ctx, b, USDC, bindings.ERC20Args{Name: "USD Coin", Symbol: "USDC"}, opts)
//	typeddeploy.Execute(ctx, b, USDC, tx, bindings.ERC20Transfer, bindings.TransferArgs{...})
//	typeddeploy.Execute(ctx, b, USDC, tx, bindings.CounterIncrement, typeddeploy.NoArgs{}) // compile error
//
//	var Counter = typeddeploy.Define("Counter", bindings.CounterConstructor)
//	typeddeploy.Deploy(ctx, b, Counter, bindings.ERC20Args{Name: "a", Symbol: "b"}, opts) // compile error
//
// The descriptors carry no state beyond their names; the runtime work is
// done by a Backend.
package typeddeploy

import (
	"context"
	"math/big"

	"github.com/trebuchet-org/deploykit/internal/domain/models"
)

// Contract is implemented by binding marker types.
type Contract interface {
	// ArtifactName is the compiled artifact the contract is deployed from.
	ArtifactName() string
}

// Args is an ordered argument list for a constructor or function.
type Args interface {
	Values() []any
}

// NoArgs is the argument list of functions without parameters.
type NoArgs struct{}

// Values implements Args.
func (NoArgs) Values() []any { return nil }

// Constructor describes the constructor of contract C taking A.
type Constructor[C Contract, A Args] struct{}

// Method describes a state mutating function of contract C taking A.
type Method[C Contract, A Args] struct {
	name string
}

// NewMethod declares a mutating function of C.
func NewMethod[C Contract, A Args](name string) Method[C, A] {
	return Method[C, A]{name: name}
}

// Name returns the ABI function name.
func (m Method[C, A]) Name() string { return m.name }

// TxOptions are the options of a state changing transaction.
type TxOptions struct {
	// From is the sender address, usually a resolved named account
	From string
	// Log prints the transaction when it is sent
	Log bool

	GasPrice *big.Int
	GasLimit uint64
	Value    *big.Int
}

// CallOptions are the options of a view call.
type CallOptions struct {
	From        string
	BlockNumber *big.Int
}

// DeployOptions are the options of a deployment.
type DeployOptions struct {
	TxOptions

	// SkipIfAlreadyDeployed reuses an existing deployment with the same
	// bytecode and arguments instead of sending a new transaction.
	SkipIfAlreadyDeployed bool
}

// DeployRequest is the untyped deployment handed to a Backend.
type DeployRequest struct {
	DeployOptions

	// Contract is the artifact to deploy
	Contract string
	Args     []any
}

// Backend performs the runtime side of the typed operations.
type Backend interface {
	Deploy(ctx context.Context, name string, req DeployRequest) (*models.DeployResult, error)
	Execute(ctx context.Context, name string, opts TxOptions, method string, args ...any) (*models.Receipt, error)
	Read(ctx context.Context, name string, opts CallOptions, method string, args ...any) ([]any, error)
	Get(ctx context.Context, name string) (*models.Deployment, error)
}

package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
)

// ERC20 is the OpenZeppelin ERC20 token.
type ERC20 struct{}

// ArtifactName implements typeddeploy.Contract.
func (ERC20) ArtifactName() string { return "ERC20" }

// ERC20Args are the constructor arguments of ERC20.
type ERC20Args struct {
	Name   string
	Symbol string
}

func (a ERC20Args) Values() []any { return []any{a.Name, a.Symbol} }

// ERC20Constructor binds deployment names to ERC20.
var ERC20Constructor = typeddeploy.Constructor[ERC20, ERC20Args]{}

type TransferArgs struct {
	To     common.Address
	Amount *big.Int
}

func (a TransferArgs) Values() []any { return []any{a.To, a.Amount} }

type ApproveArgs struct {
	Spender common.Address
	Amount  *big.Int
}

func (a ApproveArgs) Values() []any { return []any{a.Spender, a.Amount} }

type TransferFromArgs struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

func (a TransferFromArgs) Values() []any { return []any{a.From, a.To, a.Amount} }

type BalanceOfArgs struct {
	Account common.Address
}

func (a BalanceOfArgs) Values() []any { return []any{a.Account} }

type AllowanceArgs struct {
	Owner   common.Address
	Spender common.Address
}

func (a AllowanceArgs) Values() []any { return []any{a.Owner, a.Spender} }

// ERC20 functions
var (
	ERC20Transfer     = typeddeploy.NewMethod[ERC20, TransferArgs]("transfer")
	ERC20Approve      = typeddeploy.NewMethod[ERC20, ApproveArgs]("approve")
	ERC20TransferFrom = typeddeploy.NewMethod[ERC20, TransferFromArgs]("transferFrom")

	ERC20Name        = typeddeploy.NewView[ERC20, typeddeploy.NoArgs, string]("name")
	ERC20Symbol      = typeddeploy.NewView[ERC20, typeddeploy.NoArgs, string]("symbol")
	ERC20Decimals    = typeddeploy.NewView[ERC20, typeddeploy.NoArgs, uint8]("decimals")
	ERC20TotalSupply = typeddeploy.NewView[ERC20, typeddeploy.NoArgs, *big.Int]("totalSupply")
	ERC20BalanceOf   = typeddeploy.NewView[ERC20, BalanceOfArgs, *big.Int]("balanceOf")
	ERC20Allowance   = typeddeploy.NewView[ERC20, AllowanceArgs, *big.Int]("allowance")
)

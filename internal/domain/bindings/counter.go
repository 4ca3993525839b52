package bindings

import (
	"math/big"

	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
)

// Counter is the sample counter contract. Its constructor takes no arguments.
type Counter struct{}

func (Counter) ArtifactName() string { return "Counter" }

var CounterConstructor = typeddeploy.Constructor[Counter, typeddeploy.NoArgs]{}

type SetNumberArgs struct {
	Number *big.Int
}

func (a SetNumberArgs) Values() []any { return []any{a.Number} }

var (
	CounterIncrement = typeddeploy.NewMethod[Counter, typeddeploy.NoArgs]("increment")
	CounterSetNumber = typeddeploy.NewMethod[Counter, SetNumberArgs]("setNumber")

	CounterNumber = typeddeploy.NewView[Counter, typeddeploy.NoArgs, *big.Int]("number")
)

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/deploykit/internal/domain"
)

// AccountsRenderer renders validated named accounts
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// Render prints the accounts in request order
func (r *AccountsRenderer) Render(accounts domain.NamedAccounts) error {
	if len(accounts) == 0 {
		fmt.Fprintln(r.out, "No named accounts requested")
		return nil
	}

	t := newTable(r.out, table.Row{"Role", "Address"})
	for _, acc := range accounts {
		t.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(Title(acc.Role)),
			acc.Address,
		})
	}
	t.Render()
	return nil
}

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render prints every configured network, marking the active one
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deploykit.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out, table.Row{"", "Network", "Chain ID", "Live", "RPC"})
	for _, network := range result.Networks {
		marker := " "
		name := network.Name
		if network.Name == result.Active {
			marker = "*"
			name = color.New(color.Bold).Sprint(name)
		}

		if network.Error != nil {
			t.AppendRow(table.Row{marker, name, color.New(color.FgRed).Sprintf("error: %v", network.Error), "", ""})
			continue
		}

		live := ""
		if network.Live {
			live = color.New(color.FgYellow).Sprint("yes")
		}
		t.AppendRow(table.Row{marker, name, network.ChainID, live, network.RPCURL})
	}
	t.Render()
	return nil
}

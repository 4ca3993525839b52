package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/deploykit/internal/domain/units"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// ExportRenderer renders export and deploy summaries
type ExportRenderer struct {
	out io.Writer
}

// NewExportRenderer creates a new export renderer
func NewExportRenderer(out io.Writer) *ExportRenderer {
	return &ExportRenderer{out: out}
}

// RenderDeploy prints which recipes ran followed by the export summary
func (r *ExportRenderer) RenderDeploy(result *usecase.DeployAndExportResult) error {
	if result.GasPrice != nil {
		fmt.Fprintf(r.out, "Gas price: %s\n", units.Format(result.GasPrice, units.GWei))
	}
	if result.Run != nil {
		for _, id := range result.Run.Executed {
			fmt.Fprintf(r.out, "  %s %s\n", color.New(color.FgGreen).Sprint("✓"), id)
		}
		for _, id := range result.Run.Skipped {
			fmt.Fprintf(r.out, "  %s %s (skipped)\n", color.New(color.Faint).Sprint("⊘"), id)
		}
		fmt.Fprintln(r.out)
	}
	return r.Render(result.Export)
}

// Render prints the contracts of every exported chain
func (r *ExportRenderer) Render(result *usecase.ExportResult) error {
	if len(result.ChainIDs) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No deployments to export"))
	} else {
		t := newTable(r.out, table.Row{"Chain", "Contract", "Address"})
		for _, chainID := range result.ChainIDs {
			contracts := result.Contracts[chainID]
			names := make([]string, 0, len(contracts))
			for name := range contracts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				t.AppendRow(table.Row{chainID, color.New(color.FgYellow).Sprint(name), contracts[name]})
			}
		}
		t.Render()
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Exported to %s", result.Path)))
	return nil
}

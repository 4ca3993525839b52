package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// RecipesRenderer renders the recipe catalog
type RecipesRenderer struct {
	out io.Writer
}

// NewRecipesRenderer creates a new recipes renderer
func NewRecipesRenderer(out io.Writer) *RecipesRenderer {
	return &RecipesRenderer{out: out}
}

func (r *RecipesRenderer) Render(recipes []usecase.RecipeInfo) error {
	if len(recipes) == 0 {
		fmt.Fprintln(r.out, "No recipes found")
		return nil
	}

	t := newTable(r.out, table.Row{"Recipe", "Tags", "Depends on"})
	for _, recipe := range recipes {
		t.AppendRow(table.Row{
			color.New(color.FgCyan, color.Bold).Sprint(recipe.ID),
			strings.Join(recipe.Tags, ", "),
			strings.Join(recipe.Dependencies, ", "),
		})
	}
	t.Render()
	return nil
}

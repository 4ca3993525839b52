package usecase

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ListRecipes lists the deploy recipes, optionally filtered by tag
type ListRecipes struct {
	catalog RecipeCatalog
}

// NewListRecipes creates a new ListRecipes use case
func NewListRecipes(catalog RecipeCatalog) *ListRecipes {
	return &ListRecipes{catalog: catalog}
}

// Run returns recipes sorted by ID. With tags, only recipes carrying one
// of them are returned.
func (uc *ListRecipes) Run(tags ...string) []RecipeInfo {
	recipes := slices.Clone(uc.catalog.Recipes())
	if len(tags) > 0 {
		recipes = lo.Filter(recipes, func(r RecipeInfo, _ int) bool {
			return len(lo.Intersect(r.Tags, tags)) > 0
		})
	}
	slices.SortFunc(recipes, func(a, b RecipeInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return recipes
}

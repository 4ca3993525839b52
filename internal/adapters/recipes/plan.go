package recipes

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Set is a validated collection of recipes
type Set struct {
	recipes map[string]*Recipe
}

// NewSet validates recipes: IDs are unique and every dependency names a
// recipe ID or tag.
func NewSet(recipes ...Recipe) (*Set, error) {
	s := &Set{recipes: make(map[string]*Recipe, len(recipes))}
	for i := range recipes {
		r := recipes[i]
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, exists := s.recipes[r.ID]; exists {
			return nil, fmt.Errorf("duplicate recipe %s", r.ID)
		}
		s.recipes[r.ID] = &r
	}

	for _, r := range s.recipes {
		for _, dep := range r.Dependencies {
			if len(s.resolve(dep)) == 0 {
				return nil, fmt.Errorf("recipe '%s' depends on non-existent recipe or tag '%s'", r.ID, dep)
			}
		}
	}
	return s, nil
}

// IDs returns the recipe IDs, sorted
func (s *Set) IDs() []string {
	ids := lo.Keys(s.recipes)
	sort.Strings(ids)
	return ids
}

// Get returns the recipe id
func (s *Set) Get(id string) (*Recipe, bool) {
	r, ok := s.recipes[id]
	return r, ok
}

// resolve returns the IDs a dependency or tag refers to, sorted
func (s *Set) resolve(ref string) []string {
	var ids []string
	for id, r := range s.recipes {
		if id == ref || r.HasTag(ref) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Plan returns the recipes to run for tags in execution order. Without tags
// every recipe runs. Otherwise the tagged recipes run together with their
// transitive dependencies. Dependencies come first and ties are broken by
// ID.
func (s *Set) Plan(tags []string) ([]*Recipe, error) {
	selected := make(map[string]bool)
	var queue []string
	if len(tags) == 0 {
		queue = s.IDs()
	}
	for _, tag := range lo.Uniq(tags) {
		matched := lo.Filter(s.IDs(), func(id string, _ int) bool { return s.recipes[id].HasTag(tag) })
		if len(matched) == 0 {
			return nil, fmt.Errorf("no recipe is tagged %s", tag)
		}
		queue = append(queue, matched...)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if selected[id] {
			continue
		}
		selected[id] = true
		for _, dep := range s.recipes[id].Dependencies {
			queue = append(queue, s.resolve(dep)...)
		}
	}

	return s.sort(selected)
}

// sort orders the selected recipes topologically
func (s *Set) sort(selected map[string]bool) ([]*Recipe, error) {
	inDegree := make(map[string]int, len(selected))
	dependents := make(map[string][]string)
	for id := range selected {
		deps := lo.Uniq(lo.FlatMap(s.recipes[id].Dependencies, func(dep string, _ int) []string {
			return s.resolve(dep)
		}))
		inDegree[id] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	result := make([]*Recipe, 0, len(selected))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		result = append(result, s.recipes[current])

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
				sort.Strings(ready)
			}
		}
	}

	if len(result) != len(selected) {
		var cycle []string
		for id, degree := range inDegree {
			if degree > 0 {
				cycle = append(cycle, id)
			}
		}
		sort.Strings(cycle)
		return nil, fmt.Errorf("circular dependency detected involving recipes: %v", cycle)
	}
	return result, nil
}

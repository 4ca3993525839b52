package typeddeploy

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrDuplicateName is returned when two definitions share a deployment name.
var ErrDuplicateName = errors.New("duplicate deployment name")

// Name is a deployment name bound to contract C whose constructor takes A.
type Name[C Contract, A Args] struct {
	name string
}

// Define binds name to the contract described by ctor. The artifact is
// taken from C, so a name that differs from the artifact (USDC deployed
// from ERC20) needs no extra selector.
func Define[C Contract, A Args](name string, ctor Constructor[C, A]) Name[C, A] {
	return Name[C, A]{name: name}
}

// String returns the deployment name.
func (n Name[C, A]) String() string { return n.name }

// Artifact returns the artifact C is compiled to.
func (n Name[C, A]) Artifact() string {
	var c C
	return c.ArtifactName()
}

// Named is satisfied by every Name instantiation.
type Named interface {
	String() string
	Artifact() string
}

// Registry is the set of names known to a project.
type Registry struct {
	artifacts map[string]string
}

// NewRegistry builds a registry and rejects duplicate names.
func NewRegistry(names ...Named) (*Registry, error) {
	r := &Registry{artifacts: make(map[string]string, len(names))}
	for _, n := range names {
		if err := r.Add(n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for package level variables.
func MustRegistry(names ...Named) *Registry {
	r, err := NewRegistry(names...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers n.
func (r *Registry) Add(n Named) error {
	if n.String() == "" {
		return fmt.Errorf("deployment name is empty")
	}
	if _, exists := r.artifacts[n.String()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, n.String())
	}
	r.artifacts[n.String()] = n.Artifact()
	return nil
}

// Artifact returns the artifact bound to name.
func (r *Registry) Artifact(name string) (string, bool) {
	a, ok := r.artifacts[name]
	return a, ok
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.artifacts))
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.artifacts[name]
	return ok
}

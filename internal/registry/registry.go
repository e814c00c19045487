package registry

import (
	"sort"

	"github.com/vk/ipforge/internal/config"
)

// Module is the interface every catalog module implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the generators, manifests and definitions of one
// application instance.
type Registry struct {
	GeneratorRegistry  map[string]*RegisteredGenerator
	DefinitionRegistry map[string]*config.CoreDefinition
	manifests          map[string][]byte
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		GeneratorRegistry:  make(map[string]*RegisteredGenerator),
		DefinitionRegistry: make(map[string]*config.CoreDefinition),
		manifests:          make(map[string][]byte),
	}
}

// PopulateDefinitionsFromModel copies the loaded core definitions from the
// config model into the registry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Cores {
		r.DefinitionRegistry[key] = val
	}
}

// Sources returns the registered manifests as loader input, sorted by name.
func (r *Registry) Sources() []config.Source {
	names := make([]string, 0, len(r.manifests))
	for name := range r.manifests {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]config.Source, 0, len(names))
	for _, name := range names {
		out = append(out, config.Source{Name: name, Data: r.manifests[name]})
	}
	return out
}

// CoreTypes returns the defined core types in sorted order.
func (r *Registry) CoreTypes() []string {
	types := make([]string, 0, len(r.DefinitionRegistry))
	for t := range r.DefinitionRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

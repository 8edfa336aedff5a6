// Package visitors holds the built-in rewriting visitors and the registry
// that resolves them from configuration.
package visitors

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

// Definition describes a visitor that can be enabled by name.
type Definition struct {
	// Name is the unique identifier used in config and on the command line.
	Name string

	// Description is a one-line summary for listings and templates.
	Description string

	// DefaultEnabled reports whether the visitor runs without configuration.
	DefaultEnabled bool

	// Defaults are the option values used when config leaves them unset.
	Defaults map[string]any

	// New builds a fresh visitor. It is called once per document, so the
	// visitor may keep per-document state.
	New func(opts config.Options) (visit.Visitor, error)
}

// Registry holds visitor definitions in registration order, which is also
// the order their passes run in.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Definition
	order  []string
}

// NewRegistry creates an empty visitor registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Definition)}
}

// Register adds a definition. Registering a name again replaces the
// definition but keeps its original position.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.byName[def.Name] = def
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byName[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

// Resolve builds the visitors cfg enables, in registration order. Each
// visitor receives its defaults overlaid with the configured options.
func (r *Registry) Resolve(cfg *config.Config) ([]visit.Visitor, error) {
	var out []visit.Visitor
	for _, def := range r.Definitions() {
		if !cfg.VisitorEnabled(def.Name, def.DefaultEnabled) {
			continue
		}

		opts := config.Options(maps.Clone(def.Defaults))
		if opts == nil {
			opts = config.Options{}
		}
		maps.Copy(opts, cfg.VisitorOptions(def.Name))

		v, err := def.New(opts)
		if err != nil {
			return nil, fmt.Errorf("visitor %s: %w", def.Name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Info describes the registered visitors for config templates.
func (r *Registry) Info() []config.VisitorInfo {
	defs := r.Definitions()
	out := make([]config.VisitorInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, config.VisitorInfo{
			Name:           def.Name,
			Description:    def.Description,
			DefaultEnabled: def.DefaultEnabled,
			Options:        def.Defaults,
		})
	}
	return out
}

// DefaultRegistry is the global registry for built-in visitors.
// Visitors register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for visitor registration
var DefaultRegistry = NewRegistry()

//nolint:gochecknoinits // built-ins register in a fixed order
func init() {
	DefaultRegistry.Register(bannerDefinition())
	DefaultRegistry.Register(headingAnchorsDefinition())
	DefaultRegistry.Register(fenceLanguageDefinition())
	DefaultRegistry.Register(todoNotesDefinition())
}

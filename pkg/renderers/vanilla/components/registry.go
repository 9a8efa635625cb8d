package components

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	rendertemplate "github.com/goliatone/go-formwidgets/pkg/render/template"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Renderer writes the markup for one widget view.
type Renderer func(w io.Writer, view widgets.View, env Env) error

// Env is what the HTML renderer hands to every component.
type Env struct {
	Templates rendertemplate.TemplateRenderer
	// Overrides maps a widget kind to an alternate template path.
	Overrides map[widgets.Kind]string
	Icons     map[string]string
}

// Registry maps widget kinds to component renderers. It is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byKind map[widgets.Kind]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: map[widgets.Kind]Renderer{}}
}

// Clone copies the registry so overrides do not leak into the source.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{byKind: maps.Clone(r.byKind)}
}

// Set installs fn for kind, replacing any previous renderer.
func (r *Registry) Set(kind widgets.Kind, fn Renderer) error {
	if kind == "" {
		return fmt.Errorf("components: widget kind is required")
	}
	if fn == nil {
		return fmt.Errorf("components: renderer for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind] = fn
	return nil
}

// Lookup returns the renderer for kind.
func (r *Registry) Lookup(kind widgets.Kind) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byKind[kind]
	return fn, ok
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []widgets.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byKind))
}

package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

var builtinTemplates = map[widgets.Kind]string{
	widgets.KindTextField:      "templates/widgets/text_field.tmpl",
	widgets.KindFileUploader:   "templates/widgets/file_uploader.tmpl",
	widgets.KindSearchBar:      "templates/widgets/search_bar.tmpl",
	widgets.KindSearchCategory: "templates/widgets/search_category.tmpl",
	widgets.KindSelectField:    "templates/widgets/select_field.tmpl",
}

// NewDefaultRegistry returns a registry holding the template-backed
// renderers for every built-in widget kind.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for kind, path := range builtinTemplates {
		// Set only fails on an empty kind or nil renderer.
		_ = registry.Set(kind, Template(kind, path))
	}
	return registry
}

// Template renders views through the template at path, unless env overrides
// the template for kind. Templates receive widget, classes and icons.
func Template(kind widgets.Kind, path string) Renderer {
	return func(w io.Writer, view widgets.View, env Env) error {
		if env.Templates == nil {
			return fmt.Errorf("components: template renderer not configured for %q", kind)
		}

		resolved := path
		if override := strings.TrimSpace(env.Overrides[kind]); override != "" {
			resolved = override
		}

		_, err := env.Templates.RenderTemplate(resolved, map[string]any{
			"widget":  view,
			"classes": Classes(view),
			"icons":   env.Icons,
		}, w)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		return nil
	}
}

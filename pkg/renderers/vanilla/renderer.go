package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	rendertemplate "github.com/goliatone/go-formwidgets/pkg/render/template"
	gotemplate "github.com/goliatone/go-formwidgets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwidgets/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[widgets.Kind]string
	icons            map[string]string
	theme            *theme.Manifest
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry replaces the component registry used to resolve widget kinds.
// The renderer keeps a copy, so later changes to registry do not reach it.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithTemplateOverride renders kind through an alternate template path
// inside the template bundle.
func WithTemplateOverride(kind widgets.Kind, templatePath string) Option {
	return func(cfg *config) {
		templatePath = strings.TrimSpace(templatePath)
		if kind == "" || templatePath == "" {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[widgets.Kind]string)
		}
		cfg.overrides[kind] = templatePath
	}
}

// WithIcon overrides or adds an icon. The markup is sanitized before use.
func WithIcon(name, svg string) Option {
	return func(cfg *config) {
		if cfg.icons == nil {
			cfg.icons = defaultIcons()
		}
		cfg.icons[name] = sanitizeIconMarkup(svg)
	}
}

// WithTheme attaches a theme manifest. Its tokens are emitted verbatim as CSS
// custom properties on the form element.
func WithTheme(manifest *theme.Manifest) Option {
	return func(cfg *config) {
		cfg.theme = manifest
	}
}

// Renderer turns widget views into server-rendered HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	overrides map[widgets.Kind]string
	icons     map[string]string
	theme     *theme.Manifest
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.icons == nil {
		cfg.icons = defaultIcons()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		registry:  cfg.registry,
		overrides: maps.Clone(cfg.overrides),
		icons:     cfg.icons,
		theme:     cfg.theme,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the markup for a single widget.
func (r *Renderer) Render(ctx context.Context, widget widgets.Widget) ([]byte, error) {
	if widget == nil {
		return nil, fmt.Errorf("vanilla renderer: widget is nil")
	}
	return r.RenderView(ctx, widget.View())
}

// RenderView renders a view snapshot through the component registered for
// its kind.
func (r *Renderer) RenderView(ctx context.Context, view widgets.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	component, ok := r.registry.Lookup(view.Kind)
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: component %q not registered for widget %q", view.Kind, view.ID)
	}

	var buf bytes.Buffer
	err := component(&buf, view, components.Env{
		Templates: r.templates,
		Overrides: r.overrides,
		Icons:     r.icons,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render widget %q: %w", view.ID, err)
	}
	return buf.Bytes(), nil
}

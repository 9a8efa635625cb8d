package formdef

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Syncer is implemented by custom widgets that rebind themselves to a State.
type Syncer interface {
	Sync(state *State)
}

// Option configures how a Form is built.
type Option func(*config)

type config struct {
	registry *Registry
	state    *State
	onSearch func(key string)
	onError  func(key string, err error)
}

// WithRegistry swaps the kind registry.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithState binds the form to an existing State instead of a fresh one.
func WithState(state *State) Option {
	return func(cfg *config) {
		if state != nil {
			cfg.state = state
		}
	}
}

// WithSearchHandler receives the field key whenever a search widget fires.
func WithSearchHandler(fn func(key string)) Option {
	return func(cfg *config) {
		cfg.onSearch = fn
	}
}

// WithErrorHandler receives file ingestion failures keyed by field.
func WithErrorHandler(fn func(key string, err error)) Option {
	return func(cfg *config) {
		cfg.onError = fn
	}
}

// Form is a built definition: widgets in definition order, bound to a State.
type Form struct {
	Title       string
	Action      string
	SubmitLabel string

	widgets []widgets.Widget
	state   *State
}

// Build constructs a Form from a parsed document.
func Build(doc Document, opts ...Option) (*Form, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry()
	}
	if cfg.state == nil {
		cfg.state = NewState(nil)
	}

	bc := BuildContext{State: cfg.state, OnSearch: cfg.onSearch, OnError: cfg.onError}
	form := &Form{
		Title:       doc.Title,
		Action:      doc.Action,
		SubmitLabel: doc.SubmitLabel,
		state:       cfg.state,
	}

	names := make(map[string]struct{}, len(doc.Fields))
	ids := make(map[string]struct{}, len(doc.Fields))
	for i, field := range doc.Fields {
		w, err := cfg.registry.Build(field, bc)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(w.FieldName()) == "" {
			return nil, fmt.Errorf("formdef: field %d has neither name nor id", i)
		}
		if _, dup := names[w.FieldName()]; dup {
			return nil, fmt.Errorf("formdef: duplicate field %q", w.FieldName())
		}
		if _, dup := ids[w.ID()]; dup {
			return nil, fmt.Errorf("formdef: duplicate id %q (field %q)", w.ID(), w.FieldName())
		}
		names[w.FieldName()] = struct{}{}
		ids[w.ID()] = struct{}{}
		form.widgets = append(form.widgets, w)
	}
	return form, nil
}

// Parse decodes and builds a definition in one step.
func Parse(data []byte, opts ...Option) (*Form, error) {
	doc, err := ParseDocument(data, "inline")
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// Load reads and builds a definition from disk.
func Load(path string, opts ...Option) (*Form, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// LoadFS reads and builds a definition from fsys.
func LoadFS(fsys fs.FS, name string, opts ...Option) (*Form, error) {
	doc, err := ReadDocumentFS(fsys, name)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// Widgets returns the widgets in definition order.
func (f *Form) Widgets() []widgets.Widget {
	return append([]widgets.Widget(nil), f.widgets...)
}

// Widget looks a widget up by field name, falling back to its id.
func (f *Form) Widget(key string) (widgets.Widget, bool) {
	for _, w := range f.widgets {
		if w.FieldName() == key {
			return w, true
		}
	}
	for _, w := range f.widgets {
		if w.ID() == key {
			return w, true
		}
	}
	return nil, false
}

// State returns the state the form is bound to.
func (f *Form) State() *State {
	return f.state
}

// Values is a snapshot of the bound state.
func (f *Form) Values() map[string]any {
	return f.state.Values()
}

// Sync rebinds every widget to the latest state. Call it after handling a
// batch of events and before rendering.
func (f *Form) Sync() {
	for _, w := range f.widgets {
		key := w.FieldName()
		switch typed := w.(type) {
		case *widgets.TextField:
			typed.Rebind(f.state.Bind(key))
		case *widgets.SelectField:
			typed.Rebind(f.state.Bind(key))
		case *widgets.SearchBar:
			typed.Rebind(f.state.Bind(key))
		case *widgets.SearchWithCategory:
			typed.Rebind(f.state.Bind(key+".term"), f.state.Bind(key+".category"))
		case *widgets.FileUploader:
			typed.Rebind(f.state.BindSelection(key))
		case Syncer:
			typed.Sync(f.state)
		}
	}
}

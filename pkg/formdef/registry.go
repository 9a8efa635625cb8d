package formdef

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/validation"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// ErrUnknownKind is returned when a field names a kind nothing is registered
// for.
var ErrUnknownKind = errors.New("formdef: unknown widget kind")

// BuildContext carries what builders need besides the field itself.
type BuildContext struct {
	State *State
	// OnSearch is invoked with the field key when a search widget fires.
	OnSearch func(key string)
	// OnError is invoked with the field key when a file ingestion fails.
	OnError func(key string, err error)
}

// Builder constructs a widget for a field.
type Builder func(field Field, bc BuildContext) (widgets.Widget, error)

// Matcher decides whether a kind should handle a field that names none.
type Matcher func(field Field) bool

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// Registry maps kind names to builders. Fields without an explicit kind are
// resolved through matchers: higher priority wins, ties fall back to
// registration order.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
	aliases  map[string]string
	rules    []rule
}

// NewRegistry constructs a registry with the built-in widget kinds, their
// short aliases and inference rules registered.
func NewRegistry() *Registry {
	reg := &Registry{
		builders: make(map[string]Builder),
		aliases:  make(map[string]string),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces the builder for kind.
func (r *Registry) Register(kind string, builder Builder) {
	kind = normalize(kind)
	if kind == "" || builder == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[kind] = builder
}

// Alias makes alias resolve to kind.
func (r *Registry) Alias(alias, kind string) {
	alias, kind = normalize(alias), normalize(kind)
	if alias == "" || kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = kind
}

// Match registers an inference rule used when a field names no kind.
func (r *Registry) Match(kind string, priority int, matcher Matcher) {
	kind = normalize(kind)
	if kind == "" || matcher == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for a field: its explicit kind (through aliases)
// or the first matching inference rule.
func (r *Registry) Resolve(field Field) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if explicit := normalize(field.Kind); explicit != "" {
		if target, ok := r.aliases[explicit]; ok {
			explicit = target
		}
		_, ok := r.builders[explicit]
		return explicit, ok
	}

	rules := append([]rule(nil), r.rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.kind, true
		}
	}
	return "", false
}

// Build resolves the field's kind and runs its builder.
func (r *Registry) Build(field Field, bc BuildContext) (widgets.Widget, error) {
	kind, ok := r.Resolve(field)
	if !ok {
		if kind == "" {
			kind = field.Kind
		}
		return nil, fmt.Errorf("%w %q (field %q)", ErrUnknownKind, kind, field.key())
	}

	r.mu.RLock()
	builder := r.builders[kind]
	r.mu.RUnlock()

	w, err := builder(field, bc)
	if err != nil {
		return nil, fmt.Errorf("formdef: build %s field %q: %w", kind, field.key(), err)
	}
	return w, nil
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

func normalize(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

func (r *Registry) registerBuiltins() {
	r.Register(string(widgets.KindTextField), buildTextField)
	r.Register(string(widgets.KindFileUploader), buildFileUploader)
	r.Register(string(widgets.KindSearchBar), buildSearchBar)
	r.Register(string(widgets.KindSearchCategory), buildSearchCategory)
	r.Register(string(widgets.KindSelectField), buildSelectField)

	r.Alias("text", string(widgets.KindTextField))
	r.Alias("password", string(widgets.KindTextField))
	r.Alias("file", string(widgets.KindFileUploader))
	r.Alias("search", string(widgets.KindSearchBar))
	r.Alias("select", string(widgets.KindSelectField))

	r.Match(string(widgets.KindSearchCategory), 90, func(field Field) bool {
		return len(field.Categories) > 0
	})
	r.Match(string(widgets.KindSelectField), 80, func(field Field) bool {
		return len(field.Options) > 0
	})
	r.Match(string(widgets.KindFileUploader), 70, func(field Field) bool {
		return field.Accept != "" || field.Base64
	})
	r.Match(string(widgets.KindTextField), 0, func(Field) bool {
		return true
	})
}

func buildTextField(field Field, bc BuildContext) (widgets.Widget, error) {
	pattern, err := validation.ParsePattern(field.Pattern)
	if err != nil {
		return nil, err
	}

	props := widgets.DefaultTextFieldProps()
	field.applyBase(&props.Base)
	setString(&props.InputKind, field.InputKind)
	if field.InputKind == nil && normalize(field.Kind) == "password" {
		props.InputKind = widgets.InputKindPassword
	}
	setString(&props.ErrorMessage, field.ErrorMessage)
	props.Pattern = pattern

	key := fieldKey(props.Base)
	bc.State.Seed(key, field.Value)
	props.Value = bc.State.Bind(key)

	return widgets.NewTextField(func(p *widgets.TextFieldProps) { *p = props }), nil
}

func buildFileUploader(field Field, bc BuildContext) (widgets.Widget, error) {
	if field.MaxSize < 0 {
		return nil, fmt.Errorf("max_size must not be negative")
	}

	props := widgets.DefaultFileUploaderProps()
	field.applyBase(&props.Base)
	props.AcceptedTypes = field.Accept
	props.ConvertToBase64 = field.Base64
	props.MaxSize = field.MaxSize

	key := fieldKey(props.Base)
	props.Selected = bc.State.BindSelection(key)
	if bc.OnError != nil {
		props.OnError = func(err error) { bc.OnError(key, err) }
	}

	return widgets.NewFileUploader(func(p *widgets.FileUploaderProps) { *p = props }), nil
}

func buildSearchBar(field Field, bc BuildContext) (widgets.Widget, error) {
	props := widgets.DefaultSearchBarProps()
	field.applyBase(&props.Base)

	key := fieldKey(props.Base)
	bc.State.Seed(key, field.Value)
	props.Term = bc.State.Bind(key)
	props.OnSearch = searchHook(bc, key)

	return widgets.NewSearchBar(func(p *widgets.SearchBarProps) { *p = props }), nil
}

func buildSearchCategory(field Field, bc BuildContext) (widgets.Widget, error) {
	props := widgets.DefaultSearchWithCategoryProps()
	field.applyBase(&props.Base)
	props.Categories = append([]string(nil), field.Categories...)

	key := fieldKey(props.Base)
	bc.State.Seed(key+".term", field.Value)
	initial := props.Category.Current
	setString(&initial, field.Category)
	bc.State.Seed(key+".category", initial)

	props.Term = bc.State.Bind(key + ".term")
	props.Category = bc.State.Bind(key + ".category")
	props.OnSearch = searchHook(bc, key)

	return widgets.NewSearchWithCategory(func(p *widgets.SearchWithCategoryProps) { *p = props }), nil
}

func buildSelectField(field Field, bc BuildContext) (widgets.Widget, error) {
	props := widgets.DefaultSelectFieldProps()
	field.applyBase(&props.Base)
	setString(&props.ErrorMessage, field.ErrorMessage)
	props.Options = append([]widgets.Option(nil), field.Options...)

	key := fieldKey(props.Base)
	bc.State.Seed(key, field.Value)
	props.Value = bc.State.Bind(key)

	return widgets.NewSelectField(func(p *widgets.SelectFieldProps) { *p = props }), nil
}

func searchHook(bc BuildContext, key string) func() {
	if bc.OnSearch == nil {
		return nil
	}
	return func() { bc.OnSearch(key) }
}

// fieldKey mirrors Widget.FieldName for a base that has not been built yet.
func fieldKey(base widgets.Base) string {
	if name := strings.TrimSpace(base.Name); name != "" {
		return name
	}
	return base.ID
}

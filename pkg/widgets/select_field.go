package widgets

import (
	"slices"

	"github.com/goliatone/go-formwidgets/pkg/binding"
)

// SelectFieldProps configures a SelectField.
type SelectFieldProps struct {
	Base
	Options      []Option
	ErrorMessage string
	Value        binding.Value[string]
}

// SelectFieldOption mutates props during construction or Update.
type SelectFieldOption func(*SelectFieldProps)

// DefaultSelectFieldProps returns the documented defaults.
func DefaultSelectFieldProps() SelectFieldProps {
	return SelectFieldProps{
		Base: Base{
			ID:          "default",
			HTMLFor:     "default",
			Placeholder: "Select an option",
			Title:       "Title Field",
			Style:       DefaultStyle("full"),
		},
		ErrorMessage: "Selection is invalid",
	}
}

// SelectField is a native select with a disabled placeholder option.
type SelectField struct {
	props SelectFieldProps
}

// NewSelectField builds a SelectField from the defaults plus fns.
func NewSelectField(fns ...SelectFieldOption) *SelectField {
	props := DefaultSelectFieldProps()
	for _, fn := range fns {
		if fn != nil {
			fn(&props)
		}
	}
	return &SelectField{props: props}
}

func (f *SelectField) Kind() Kind        { return KindSelectField }
func (f *SelectField) ID() string        { return f.props.ID }
func (f *SelectField) FieldName() string { return f.props.fieldName() }

// Props returns a copy of the current configuration.
func (f *SelectField) Props() SelectFieldProps {
	props := f.props
	props.Options = slices.Clone(f.props.Options)
	return props
}

// Update applies fns to the current props.
func (f *SelectField) Update(fns ...SelectFieldOption) {
	for _, fn := range fns {
		if fn != nil {
			fn(&f.props)
		}
	}
}

// Rebind replaces the value binding with the host's latest state.
func (f *SelectField) Rebind(value binding.Value[string]) {
	f.props.Value = value
}

// Value returns the bound value.
func (f *SelectField) Value() string { return f.props.Value.Current }

// Change pushes the chosen option value upward.
func (f *SelectField) Change(value string) {
	f.props.Value.Push(value)
}

// Valid reports whether the bound value is empty (placeholder) or one of the
// options.
func (f *SelectField) Valid() bool {
	current := f.props.Value.Current
	if current == "" {
		return true
	}
	return slices.ContainsFunc(f.props.Options, func(o Option) bool { return o.Value == current })
}

func (f *SelectField) View() View {
	view := baseView(KindSelectField, f.props.Base)
	view.ReadOnly = f.props.Value.ReadOnly()
	view.Value = f.props.Value.Current
	view.Valid = f.Valid()
	if !view.Valid {
		view.ErrorMessage = f.props.ErrorMessage
	}
	for _, opt := range f.props.Options {
		view.Options = append(view.Options, OptionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == f.props.Value.Current,
		})
	}
	return view
}

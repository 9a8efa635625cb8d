package widgets

import (
	"regexp"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/validation"
)

// InputKindPassword is the input kind that enables visibility toggling.
const InputKindPassword = "password"

// TextFieldProps configures a TextField.
type TextFieldProps struct {
	Base
	// InputKind is the native input type: text, password, email, number...
	InputKind    string
	ErrorMessage string
	Value        binding.Value[string]
	Pattern      *regexp.Regexp
}

// TextFieldOption mutates props during construction or Update.
type TextFieldOption func(*TextFieldProps)

// DefaultTextFieldProps returns the documented defaults.
func DefaultTextFieldProps() TextFieldProps {
	return TextFieldProps{
		Base: Base{
			ID:          "default",
			HTMLFor:     "default",
			Placeholder: "Input Field",
			Title:       "Title Field",
			Style:       DefaultStyle("full"),
		},
		InputKind:    "text",
		ErrorMessage: "Input is invalid",
	}
}

// TextField is a labelled single-line input with optional pattern validation
// and password reveal.
type TextField struct {
	props    TextFieldProps
	revealed bool
	valid    bool
}

// NewTextField builds a TextField from the defaults plus fns.
func NewTextField(fns ...TextFieldOption) *TextField {
	props := DefaultTextFieldProps()
	for _, fn := range fns {
		if fn != nil {
			fn(&props)
		}
	}
	return &TextField{props: props, valid: true}
}

func (f *TextField) Kind() Kind        { return KindTextField }
func (f *TextField) ID() string        { return f.props.ID }
func (f *TextField) FieldName() string { return f.props.fieldName() }

// Props returns a copy of the current configuration.
func (f *TextField) Props() TextFieldProps { return f.props }

// Update applies fns to the current props, keeping local UI state.
func (f *TextField) Update(fns ...TextFieldOption) {
	for _, fn := range fns {
		if fn != nil {
			fn(&f.props)
		}
	}
}

// Rebind replaces the value binding with the host's latest state.
func (f *TextField) Rebind(value binding.Value[string]) {
	f.props.Value = value
}

// Value returns the bound value.
func (f *TextField) Value() string { return f.props.Value.Current }

// Change handles one edit event. The raw value is always pushed upward, valid
// or not; validity is then recomputed from value alone.
func (f *TextField) Change(value string) {
	f.props.Value.Push(value)
	f.valid = validation.Validate(value, f.rule())
}

// Valid returns the validity computed on the last change. A field that has not
// changed yet is valid.
func (f *TextField) Valid() bool { return f.valid }

// TogglePasswordVisibility flips the reveal flag of a password field and
// returns the new state. The bound value is untouched and nothing is reported
// upward. Non-password fields have nothing to reveal and stay as they are.
func (f *TextField) TogglePasswordVisibility() bool {
	if f.props.InputKind != InputKindPassword {
		return false
	}
	f.revealed = !f.revealed
	return f.revealed
}

// Revealed reports whether a password is currently shown in plain text.
func (f *TextField) Revealed() bool { return f.revealed }

// InputType is the native input type to render.
func (f *TextField) InputType() string {
	if f.revealed {
		return "text"
	}
	return f.props.InputKind
}

func (f *TextField) rule() *validation.Rule {
	if f.props.Pattern == nil {
		return nil
	}
	return &validation.Rule{Pattern: f.props.Pattern, ErrorMessage: f.props.ErrorMessage}
}

func (f *TextField) View() View {
	view := baseView(KindTextField, f.props.Base)
	view.ReadOnly = f.props.Value.ReadOnly()
	view.Value = f.props.Value.Current
	view.InputType = f.InputType()
	view.Password = f.props.InputKind == InputKindPassword
	view.Revealed = f.revealed
	view.Valid = f.valid
	if !f.valid {
		view.ErrorMessage = f.props.ErrorMessage
	}
	return view
}

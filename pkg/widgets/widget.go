// Package widgets provides the controlled input widgets: TextField,
// FileUploader, SearchBar, SearchWithCategory and SelectField.
//
// Widgets never own the value they display. Each one mirrors a binding
// supplied by the host, pushes every edit back through the binding's callback,
// and keeps only ephemeral UI state of its own (password reveal, menu open,
// last validity result, file preview). Hosts re-render by calling Rebind with
// their latest state.
//
// Every constructor starts from the widget's Default*Props and then applies
// the supplied options, so leaving a field alone is the same as passing its
// documented default.
//
// Widgets are driven from a single event loop. FileUploader is the exception
// that guards its own state, since base64 ingestion completes on another
// goroutine.
package widgets

import "strings"

// Kind identifies a widget variant.
type Kind string

const (
	KindTextField      Kind = "text-field"
	KindFileUploader   Kind = "file-uploader"
	KindSearchBar      Kind = "search-bar"
	KindSearchCategory Kind = "search-category"
	KindSelectField    Kind = "select-field"
)

// Widget is implemented by every variant.
type Widget interface {
	Kind() Kind
	ID() string
	// FieldName is the key the widget submits under: Name, or ID when Name is
	// empty.
	FieldName() string
	View() View
}

// Style is cosmetic layout configuration. It has no effect on behaviour.
type Style struct {
	Width       string `json:"width"`
	SpaceX      int    `json:"space_x"`
	SpaceY      int    `json:"space_y"`
	TextSize    string `json:"text_size"`
	RoundedSize string `json:"rounded_size"`
}

// DefaultStyle returns the shared style defaults with the given corner size.
func DefaultStyle(rounded string) Style {
	return Style{
		Width:       "full",
		SpaceX:      0,
		SpaceY:      0,
		TextSize:    "sm",
		RoundedSize: rounded,
	}
}

// Base is the configuration surface every widget accepts.
type Base struct {
	ID          string
	HTMLFor     string
	Placeholder string
	Title       string
	HelperText  string
	Name        string
	// Required only maps to the native required attribute. It never affects
	// computed validity.
	Required bool
	Style    Style
}

func (b Base) fieldName() string {
	if name := strings.TrimSpace(b.Name); name != "" {
		return name
	}
	return b.ID
}

// Option is a {value, label} pair offered by a select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// View is a render-ready snapshot of a widget. Sections that do not apply to a
// variant stay at their zero value.
type View struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"id"`
	HTMLFor     string `json:"html_for"`
	FieldName   string `json:"field_name"`
	Placeholder string `json:"placeholder"`
	Title       string `json:"title"`
	HelperText  string `json:"helper_text"`
	Required    bool   `json:"required"`
	Style       Style  `json:"style"`
	ReadOnly    bool   `json:"read_only"`

	Value        string `json:"value"`
	InputType    string `json:"input_type,omitempty"`
	Valid        bool   `json:"valid"`
	ErrorMessage string `json:"error_message,omitempty"`
	Password     bool   `json:"password,omitempty"`
	Revealed     bool   `json:"revealed,omitempty"`

	Options    []OptionView `json:"options,omitempty"`
	Category   string       `json:"category,omitempty"`
	Categories []OptionView `json:"categories,omitempty"`
	MenuOpen   bool         `json:"menu_open,omitempty"`
	Searchable bool         `json:"searchable,omitempty"`
	TermName   string       `json:"term_name,omitempty"`

	Accept      string    `json:"accept,omitempty"`
	InputID     string    `json:"input_id,omitempty"`
	Base64      bool      `json:"base64,omitempty"`
	File        *FileView `json:"file,omitempty"`
	IngestError string    `json:"ingest_error,omitempty"`
}

// OptionView is an option annotated with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FileView describes the uploader's local preview.
type FileView struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Image   bool   `json:"image"`
	Preview string `json:"preview,omitempty"`
}

func baseView(kind Kind, b Base) View {
	return View{
		Kind:        kind,
		ID:          b.ID,
		HTMLFor:     b.HTMLFor,
		FieldName:   b.fieldName(),
		Placeholder: b.Placeholder,
		Title:       b.Title,
		HelperText:  b.HelperText,
		Required:    b.Required,
		Style:       b.Style,
		Valid:       true,
	}
}

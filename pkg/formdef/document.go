package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Document is a parsed form definition.
type Document struct {
	Title       string  `json:"title" yaml:"title"`
	Action      string  `json:"action" yaml:"action"`
	SubmitLabel string  `json:"submit" yaml:"submit"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field describes one widget. Pointer fields distinguish "omitted" (keep the
// widget default) from "set to empty".
type Field struct {
	Kind        string  `json:"kind" yaml:"kind"`
	ID          *string `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	HTMLFor     *string `json:"html_for" yaml:"html_for"`
	Placeholder *string `json:"placeholder" yaml:"placeholder"`
	Title       *string `json:"title" yaml:"title"`
	HelperText  *string `json:"helper_text" yaml:"helper_text"`
	Required    bool    `json:"required" yaml:"required"`
	Style       *Style  `json:"style" yaml:"style"`

	// Text field.
	InputKind    *string `json:"input_kind" yaml:"input_kind"`
	Pattern      string  `json:"pattern" yaml:"pattern"`
	ErrorMessage *string `json:"error_message" yaml:"error_message"`

	// File uploader.
	Accept  string `json:"accept" yaml:"accept"`
	Base64  bool   `json:"base64" yaml:"base64"`
	MaxSize int64  `json:"max_size" yaml:"max_size"`

	// Select and search.
	Options    []widgets.Option `json:"options" yaml:"options"`
	Categories []string         `json:"categories" yaml:"categories"`
	Category   *string          `json:"category" yaml:"category"`

	// Value seeds the state when the key is not set yet.
	Value string `json:"value" yaml:"value"`
}

// Style overrides individual style props.
type Style struct {
	Width       *string `json:"width" yaml:"width"`
	SpaceX      *int    `json:"space_x" yaml:"space_x"`
	SpaceY      *int    `json:"space_y" yaml:"space_y"`
	TextSize    *string `json:"text_size" yaml:"text_size"`
	RoundedSize *string `json:"rounded_size" yaml:"rounded_size"`
}

// ParseDocument decodes a JSON or YAML definition. source only labels errors.
func ParseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	return doc, nil
}

// ReadDocument reads and parses a definition from disk.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return ParseDocument(data, path)
}

// ReadDocumentFS reads and parses a definition from fsys.
func ReadDocumentFS(fsys fs.FS, name string) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("formdef: read %s: %w", name, err)
	}
	return ParseDocument(data, name)
}

// key is the state key the field's value lives under.
func (f Field) key() string {
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	if f.ID != nil {
		return strings.TrimSpace(*f.ID)
	}
	return ""
}

// applyBase overlays the field's base props onto a widget's defaults.
// A named field without an id takes its name as the id, and without
// html_for its label targets that id, so element ids stay unique within a
// page.
func (f Field) applyBase(base *widgets.Base) {
	setString(&base.ID, f.ID)
	setString(&base.HTMLFor, f.HTMLFor)
	if name := strings.TrimSpace(f.Name); name != "" {
		if f.ID == nil {
			base.ID = name
		}
		if f.HTMLFor == nil {
			base.HTMLFor = base.ID
		}
	}
	setString(&base.Placeholder, f.Placeholder)
	setString(&base.Title, f.Title)
	setString(&base.HelperText, f.HelperText)
	base.Name = f.Name
	base.Required = f.Required

	if f.Style == nil {
		return
	}
	setString(&base.Style.Width, f.Style.Width)
	setString(&base.Style.TextSize, f.Style.TextSize)
	setString(&base.Style.RoundedSize, f.Style.RoundedSize)
	if f.Style.SpaceX != nil {
		base.Style.SpaceX = *f.Style.SpaceX
	}
	if f.Style.SpaceY != nil {
		base.Style.SpaceY = *f.Style.SpaceY
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

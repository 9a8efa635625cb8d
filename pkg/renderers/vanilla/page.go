package vanilla

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// HiddenField is an extra name/value pair submitted with the page.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Page is a form wrapping a set of widgets.
type Page struct {
	Title       string
	Action      string
	SubmitLabel string
	Hidden      []HiddenField
	Widgets     []widgets.Widget
	// Standalone wraps the form in a complete HTML document.
	Standalone bool
}

func (p Page) multipart() bool {
	for _, w := range p.Widgets {
		if w != nil && w.Kind() == widgets.KindFileUploader {
			return true
		}
	}
	return false
}

// RenderPage renders every widget in order inside a form element. The form
// switches to multipart encoding when it carries a file uploader.
func (r *Renderer) RenderPage(ctx context.Context, page Page) ([]byte, error) {
	markup := make([]string, 0, len(page.Widgets))
	for _, w := range page.Widgets {
		if w == nil {
			continue
		}
		out, err := r.Render(ctx, w)
		if err != nil {
			return nil, err
		}
		markup = append(markup, string(out))
	}

	hidden := page.Hidden
	if hidden == nil {
		hidden = []HiddenField{}
	}

	data := map[string]any{
		"page": map[string]any{
			"title":        page.Title,
			"action":       page.Action,
			"submit_label": page.SubmitLabel,
			"hidden":       hidden,
			"multipart":    page.multipart(),
			"standalone":   page.Standalone,
		},
		"widgets": markup,
	}
	if themeData := r.themeData(); themeData != nil {
		data["theme"] = themeData
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) themeData() map[string]any {
	if r.theme == nil {
		return nil
	}
	keys := make([]string, 0, len(r.theme.Tokens))
	for key := range r.theme.Tokens {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var style strings.Builder
	for i, key := range keys {
		if i > 0 {
			style.WriteByte(' ')
		}
		fmt.Fprintf(&style, "--fw-%s: %s;", key, r.theme.Tokens[key])
	}

	return map[string]any{
		"name":    r.theme.Name,
		"version": r.theme.Version,
		"style":   style.String(),
	}
}

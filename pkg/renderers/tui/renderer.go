package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/ingest"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// Renderer drives widgets from a terminal. Every answer is fed to the widget
// as the same event a browser would produce, so bindings, validation and the
// category menu behave exactly as they do in HTML.
type Renderer struct {
	driver    PromptDriver
	format    OutputFormat
	transform Transform
	theme     Theme
}

// New constructs a TUI renderer. Without options it prompts through survey
// and serializes to JSON.
func New(options ...Option) (*Renderer, error) {
	cfg := config{format: FormatJSON}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if _, err := ParseFormat(string(cfg.format)); err != nil {
		return nil, err
	}
	if cfg.driver == nil {
		cfg.driver = newSurveyDriver()
	}
	return &Renderer{
		driver:    cfg.driver,
		format:    cfg.format,
		transform: cfg.transform,
		theme:     cfg.theme,
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the media type of Render's output.
func (r *Renderer) ContentType() string {
	switch r.format {
	case FormatForm:
		return "application/x-www-form-urlencoded"
	case FormatPretty:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every widget in order and serializes the collected
// answers keyed by field name.
func (r *Renderer) Render(ctx context.Context, ws ...widgets.Widget) ([]byte, error) {
	values, err := r.Prompt(ctx, ws...)
	if err != nil {
		return nil, err
	}

	if r.transform != nil {
		values, err = r.transform(values)
		if err != nil {
			return nil, fmt.Errorf("tui: transform answers: %w", err)
		}
	}
	return r.serialize(values)
}

// Prompt runs the interaction for every widget in order and returns the
// answers. Values reach the host through the widgets' bindings as they are
// entered; the returned map is a transcript of what was entered.
func (r *Renderer) Prompt(ctx context.Context, ws ...widgets.Widget) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := NewState(nil)
	for _, w := range ws {
		if w == nil {
			continue
		}
		if err := r.promptWidget(ctx, w, state); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

func (r *Renderer) promptWidget(ctx context.Context, w widgets.Widget, state *State) error {
	switch typed := w.(type) {
	case *widgets.TextField:
		return r.promptTextField(ctx, typed, state)
	case *widgets.FileUploader:
		return r.promptFileUploader(ctx, typed, state)
	case *widgets.SearchBar:
		return r.promptSearchBar(ctx, typed, state)
	case *widgets.SearchWithCategory:
		return r.promptSearchCategory(ctx, typed, state)
	case *widgets.SelectField:
		return r.promptSelectField(ctx, typed, state)
	default:
		return fmt.Errorf("%w: %s (%T)", ErrUnsupportedWidget, w.Kind(), w)
	}
}

func (r *Renderer) promptTextField(ctx context.Context, field *widgets.TextField, state *State) error {
	view := field.View()
	label := r.label(view)

	if view.Password {
		reveal, err := r.driver.Confirm(ctx, r.theme.Prompt+"Show "+displayName(view)+" while typing?", false)
		if err != nil {
			return err
		}
		if reveal != field.Revealed() {
			field.TogglePasswordVisibility()
		}
	}

	prompt := TextPrompt{
		Label:   label,
		Default: field.Value(),
		Help:    view.HelperText,
		Masked:  field.InputType() == widgets.InputKindPassword,
	}
	for {
		answer, err := r.driver.Text(ctx, prompt)
		if err != nil {
			return err
		}

		field.Change(answer)
		if field.Valid() {
			return state.SetValue(field.FieldName(), answer)
		}
		prompt.Default = answer
		if err := r.errorf(ctx, "%s: %s", displayName(view), field.View().ErrorMessage); err != nil {
			return err
		}
	}
}

func (r *Renderer) promptFileUploader(ctx context.Context, uploader *widgets.FileUploader, state *State) error {
	view := uploader.View()
	help := view.HelperText
	if view.Accept != "" {
		help = strings.TrimSpace(help + " (accepts " + view.Accept + ")")
	}

	for {
		path, err := r.driver.Text(ctx, TextPrompt{
			Label: r.label(view) + " (path)",
			Help:  help,
		})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			if !view.Required {
				return nil
			}
			if err := r.errorf(ctx, "%s: a file is required", displayName(view)); err != nil {
				return err
			}
			continue
		}

		handle, err := ingest.FromPath(path)
		if err != nil {
			if err := r.errorf(ctx, "%s: %v", displayName(view), err); err != nil {
				return err
			}
			continue
		}

		uploader.Select(ctx, handle)
		uploader.Wait()
		if failure := uploader.Err(); failure != nil {
			if err := r.errorf(ctx, "%s: %v", displayName(view), failure); err != nil {
				return err
			}
			continue
		}
		return state.SetValue(uploader.FieldName(), handle.Name())
	}
}

func (r *Renderer) promptSearchBar(ctx context.Context, search *widgets.SearchBar, state *State) error {
	view := search.View()
	term, err := r.driver.Text(ctx, TextPrompt{
		Label:   r.label(view),
		Default: search.Term(),
		Help:    view.HelperText,
	})
	if err != nil {
		return err
	}
	search.Change(term)
	search.Search()
	return state.SetValue(search.FieldName(), term)
}

func (r *Renderer) promptSearchCategory(ctx context.Context, search *widgets.SearchWithCategory, state *State) error {
	view := search.View()

	category := search.Category()
	if len(view.Categories) > 0 {
		labels := make([]string, 0, len(view.Categories))
		for _, c := range view.Categories {
			labels = append(labels, c.Label)
		}
		idx, err := r.driver.Choose(ctx, ChoicePrompt{
			Label:    r.theme.Prompt + "Category",
			Choices:  labels,
			Selected: slices.Index(labels, category),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(view.Categories) {
			return fmt.Errorf("tui: category selection %d out of range", idx)
		}

		search.ToggleMenu()
		category = view.Categories[idx].Value
		if err := search.SelectCategory(category); err != nil {
			return fmt.Errorf("tui: select category: %w", err)
		}
	}

	term, err := r.driver.Text(ctx, TextPrompt{
		Label:   r.label(view),
		Default: search.Term(),
		Help:    view.HelperText,
	})
	if err != nil {
		return err
	}
	search.Change(term)
	search.Search()

	if err := state.SetValue(search.FieldName()+".category", category); err != nil {
		return err
	}
	return state.SetValue(search.FieldName()+".term", term)
}

func (r *Renderer) promptSelectField(ctx context.Context, field *widgets.SelectField, state *State) error {
	view := field.View()
	if len(view.Options) == 0 {
		return r.info(ctx, displayName(view)+": no options available")
	}

	labels := make([]string, 0, len(view.Options))
	defaultIdx := -1
	for i, opt := range view.Options {
		labels = append(labels, opt.Label)
		if opt.Selected {
			defaultIdx = i
		}
	}

	idx, err := r.driver.Choose(ctx, ChoicePrompt{
		Label:    r.label(view),
		Choices:  labels,
		Selected: defaultIdx,
		Help:     view.HelperText,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(view.Options) {
		return fmt.Errorf("tui: option selection %d out of range", idx)
	}

	value := view.Options[idx].Value
	field.Change(value)
	return state.SetValue(field.FieldName(), value)
}

func (r *Renderer) label(view widgets.View) string {
	return r.theme.Prompt + displayName(view)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Notify(ctx, LevelInfo, r.theme.Info+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Notify(ctx, LevelError, r.theme.Error+fmt.Sprintf(format, args...))
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.format {
	case FormatForm:
		return []byte(flattenForm(values)), nil
	case FormatPretty:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayName(view widgets.View) string {
	switch {
	case view.Title != "":
		return view.Title
	case view.Placeholder != "":
		return view.Placeholder
	default:
		return view.FieldName
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}

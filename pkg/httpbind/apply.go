package httpbind

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/ingest"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

// ActionField is the form key widget buttons submit.
const ActionField = "_action"

// Action verbs rendered by the built-in templates.
const (
	VerbTogglePassword = "toggle-password"
	VerbToggleMenu     = "toggle-menu"
	VerbSelect         = "select"
	VerbDismiss        = "dismiss"
	VerbSearch         = "search"
)

var (
	ErrUnknownWidget = errors.New("httpbind: unknown widget")
	ErrUnknownAction = errors.New("httpbind: unknown action")
)

// Action is a parsed _action value. Field is the target widget's field name,
// which is unique within a form where element ids need not be.
type Action struct {
	Field string
	Verb  string
	Arg   string
}

// ParseAction splits "<field>:<verb>[:<arg>]". The argument keeps any
// further colons.
func ParseAction(raw string) (Action, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Action{}, false
	}
	action := Action{Field: parts[0], Verb: parts[1]}
	if len(parts) == 3 {
		action.Arg = parts[2]
	}
	return action, true
}

// Report lists what a request did.
type Report struct {
	// Changed holds the field keys whose values were pushed, in widget order.
	Changed []string
	// Files holds the field keys that received a file.
	Files []string
	// FileErrors maps field keys to ingestion failures.
	FileErrors map[string]error
	Action     *Action
}

// Apply maps a form post onto widgets using default options.
func Apply(r *http.Request, ws ...widgets.Widget) (Report, error) {
	return ApplyWithOptions(r, NewOptions(), ws...)
}

// ApplyWithOptions maps a form post onto widgets: submitted values first, in
// widget order, then the clicked action. Base64 uploads are complete when it
// returns.
func ApplyWithOptions(r *http.Request, opts Options, ws ...widgets.Widget) (Report, error) {
	var report Report
	if r == nil {
		return report, fmt.Errorf("httpbind: request is nil")
	}
	if err := parseForm(r, opts.MaxMemory); err != nil {
		return report, fmt.Errorf("httpbind: parse form: %w", err)
	}

	for _, w := range ws {
		if w == nil {
			continue
		}
		key := w.FieldName()
		switch typed := w.(type) {
		case *widgets.TextField:
			if v, ok := submitted(r, key); ok && v != typed.Value() {
				typed.Change(v)
				report.Changed = append(report.Changed, key)
			}
		case *widgets.SelectField:
			if v, ok := submitted(r, key); ok && v != typed.Value() {
				typed.Change(v)
				report.Changed = append(report.Changed, key)
			}
		case *widgets.SearchBar:
			if v, ok := submitted(r, key); ok && v != typed.Term() {
				typed.Change(v)
				report.Changed = append(report.Changed, key)
			}
		case *widgets.SearchWithCategory:
			termKey := key + ".term"
			if v, ok := submitted(r, termKey); ok && v != typed.Term() {
				typed.Change(v)
				report.Changed = append(report.Changed, termKey)
			}
		case *widgets.FileUploader:
			if err := applyFile(r, typed, key, &report); err != nil {
				opts.Logger.Warn("file ingestion failed", zap.String("field", key), zap.Error(err))
			}
		}
	}

	raw := r.PostFormValue(ActionField)
	if raw == "" {
		dismissMenus(ws, "")
		return report, nil
	}
	action, ok := ParseAction(raw)
	if !ok {
		return report, fmt.Errorf("%w %q", ErrUnknownAction, raw)
	}
	report.Action = &action
	dismissMenus(ws, action.Field)

	if err := dispatch(action, ws); err != nil {
		return report, err
	}
	opts.Logger.Debug("widget action applied",
		zap.String("field", action.Field),
		zap.String("verb", action.Verb),
		zap.String("arg", action.Arg),
	)
	return report, nil
}

func parseForm(r *http.Request, maxMemory int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

func submitted(r *http.Request, key string) (string, bool) {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func applyFile(r *http.Request, uploader *widgets.FileUploader, key string, report *Report) error {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[key]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil
	}

	uploader.Select(r.Context(), ingest.FromMultipart(headers[0]))
	uploader.Wait()
	if err := uploader.Err(); err != nil {
		if report.FileErrors == nil {
			report.FileErrors = make(map[string]error)
		}
		report.FileErrors[key] = err
		return err
	}
	report.Files = append(report.Files, key)
	return nil
}

// dismissMenus closes every open category menu except the one belonging to
// the widget that was clicked; clicking anywhere else counts as an outside
// interaction.
func dismissMenus(ws []widgets.Widget, except string) {
	for _, w := range ws {
		if search, ok := w.(*widgets.SearchWithCategory); ok && search.FieldName() != except {
			search.DismissMenu()
		}
	}
}

func dispatch(action Action, ws []widgets.Widget) error {
	var target widgets.Widget
	for _, w := range ws {
		if w != nil && w.FieldName() == action.Field {
			target = w
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w %q", ErrUnknownWidget, action.Field)
	}

	switch typed := target.(type) {
	case *widgets.TextField:
		if action.Verb == VerbTogglePassword {
			typed.TogglePasswordVisibility()
			return nil
		}
	case *widgets.SearchBar:
		if action.Verb == VerbSearch {
			typed.Search()
			return nil
		}
	case *widgets.SearchWithCategory:
		switch action.Verb {
		case VerbToggleMenu:
			typed.ToggleMenu()
			return nil
		case VerbDismiss:
			typed.DismissMenu()
			return nil
		case VerbSelect:
			if err := typed.SelectCategory(action.Arg); err != nil {
				return fmt.Errorf("httpbind: select category on %q: %w", action.Field, err)
			}
			return nil
		case VerbSearch:
			typed.Search()
			return nil
		}
	}
	return fmt.Errorf("%w %q for %s widget %q", ErrUnknownAction, action.Verb, target.Kind(), action.Field)
}

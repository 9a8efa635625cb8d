package httpbind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/formdef"
	"github.com/goliatone/go-formwidgets/pkg/renderers/vanilla"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// PageRenderer renders a whole form page.
type PageRenderer interface {
	RenderPage(ctx context.Context, page vanilla.Page) ([]byte, error)
	ContentType() string
}

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Handler serves a form: GET renders it, POST applies the submission and
// renders the result. Requests are serialized since they share the form's
// widgets.
type Handler struct {
	mu       sync.Mutex
	form     *formdef.Form
	renderer PageRenderer
	opts     Options
}

// NewHandler builds a Handler with default options plus any overrides.
func NewHandler(form *formdef.Form, renderer PageRenderer, fns ...OptionFn) *Handler {
	return &Handler{
		form:     form,
		renderer: renderer,
		opts:     NewOptions(fns...),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.form == nil || h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if r.Method == http.MethodPost {
		if _, err := ApplyWithOptions(r, h.opts, h.form.Widgets()...); err != nil {
			h.opts.Logger.Warn("form submission rejected", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	h.form.Sync()

	body, err := h.renderer.RenderPage(r.Context(), h.page(r))
	if err != nil {
		h.opts.Logger.Error("render form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (h *Handler) page(r *http.Request) vanilla.Page {
	action := h.form.Action
	if action == "" {
		action = r.URL.Path
	}

	names := make([]string, 0, len(h.opts.Hidden))
	for name := range h.opts.Hidden {
		names = append(names, name)
	}
	slices.Sort(names)
	hidden := make([]vanilla.HiddenField, 0, len(names))
	for _, name := range names {
		hidden = append(hidden, vanilla.HiddenField{Name: name, Value: h.opts.Hidden[name]})
	}

	return vanilla.Page{
		Title:       h.form.Title,
		Action:      action,
		SubmitLabel: h.form.SubmitLabel,
		Hidden:      hidden,
		Widgets:     h.form.Widgets(),
		Standalone:  h.opts.Standalone,
	}
}

// ValuesHandler serves the form's bound state as JSON.
func ValuesHandler(form *formdef.Form) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(map[string]any{"data": form.Values()})
	})
}

// RegisterRoutes mounts the form handler under basePath on mux and returns
// the pattern used.
func RegisterRoutes(mux Mux, basePath string, form *formdef.Form, renderer PageRenderer, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("httpbind: missing mux")
	}
	handler := NewHandler(form, renderer, fns...)
	pattern := mountPath(basePath, handler.opts.RoutePath)
	mux.Handle(pattern, handler)
	return pattern, nil
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/internal/logging"
	"github.com/goliatone/go-formwidgets/pkg/formdef"
	"github.com/goliatone/go-formwidgets/pkg/httpbind"
	"github.com/goliatone/go-formwidgets/pkg/renderers/tui"
	"github.com/goliatone/go-formwidgets/pkg/renderers/vanilla"
)

// Render command and flags
var (
	outputPath string
	fragment   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a form definition to HTML",
	Example: `  # Render the demo form as a complete document
  formwidgets render

  # Render only the form element into a file
  formwidgets render --form signup.yaml --fragment --output signup.html`,
	RunE: runRender,
}

// Prompt command and flags
var promptFormat string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in a form definition from the terminal",
	Example: `  formwidgets prompt --form signup.yaml --format pretty`,
	RunE:    runPrompt,
}

// Serve command and flags
var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a form definition over HTTP",
	Long: `Serve a form definition as an HTML form.

GET / renders the form, POST / applies the submission and renders the result,
GET /values returns the bound values as JSON.`,
	Example: `  formwidgets serve --form signup.yaml --addr :9000 --log-level info`,
	RunE:    runServe,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().BoolVar(&fragment, "fragment", false, "Render only the form element")

	promptCmd.Flags().StringVar(&promptFormat, "format", string(tui.FormatJSON), "Output format (json, form, pretty)")

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to FORMWIDGETS_ADDR")
}

func newHTMLRenderer() (*vanilla.Renderer, error) {
	opts := []vanilla.Option{vanilla.WithTheme(cfg.Theme())}
	if cfg.TemplatesDir != "" {
		opts = append(opts, vanilla.WithTemplatesDir(cfg.TemplatesDir))
	}
	return vanilla.New(opts...)
}

func runRender(cmd *cobra.Command, args []string) error {
	form, err := cfg.loadForm()
	if err != nil {
		return err
	}
	renderer, err := newHTMLRenderer()
	if err != nil {
		return err
	}

	out, err := renderer.RenderPage(cmd.Context(), vanilla.Page{
		Title:       form.Title,
		Action:      form.Action,
		SubmitLabel: form.SubmitLabel,
		Widgets:     form.Widgets(),
		Standalone:  !fragment,
	})
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", outputPath)
	return nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	form, err := cfg.loadForm(
		formdef.WithSearchHandler(func(key string) {
			logging.Info("search triggered", zap.String("field", key))
		}),
	)
	if err != nil {
		return err
	}

	format, err := tui.ParseFormat(promptFormat)
	if err != nil {
		return err
	}
	renderer, err := tui.New(
		tui.WithOutputFormat(format),
		tui.WithTheme(tui.Theme{Error: "! "}),
	)
	if err != nil {
		return err
	}

	out, err := renderer.Render(cmd.Context(), form.Widgets()...)
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := cfg.Addr
	if addr != "" {
		listen = addr
	}

	form, err := cfg.loadForm(
		formdef.WithSearchHandler(func(key string) {
			logging.Info("search triggered", zap.String("field", key))
		}),
		formdef.WithErrorHandler(func(key string, err error) {
			logging.Warn("file rejected", zap.String("field", key), zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}
	renderer, err := newHTMLRenderer()
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	if _, err := httpbind.RegisterRoutes(router, "/", form, renderer, httpbind.WithLogger(logging.GetLogger())); err != nil {
		return err
	}
	router.Handle("/values", httpbind.ValuesHandler(form))

	server := &http.Server{
		Addr:              listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("listening", zap.String("addr", listen))
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving %q on %s\n", form.Title, listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, ww.Status())
	})
}

package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formwidgets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwidgets/pkg/testsupport"
)

var templateFiles = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
	"escape.tmpl":     {Data: []byte("<p>{{ value }}</p>")},
	"struct.tmpl":     {Data: []byte("{{ widget.id }}:{{ widget.title }}")},
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want || written != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q / %q", want, result, written)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}

	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngineAutoEscapes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{"value": `<script>alert("x")</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngineStructDataUsesJSONKeys(t *testing.T) {
	engine := newEngine(t)
	type view struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	result, err := engine.RenderTemplate("struct", map[string]any{"widget": view{ID: "email", Title: "Email"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "email:Email" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineNonObjectDataFails(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("hello", []string{"Ada"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "x-y" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template files")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templateFiles))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

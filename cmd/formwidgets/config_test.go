package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/testsupport"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FORMWIDGETS_ADDR", "")
	t.Setenv("FORMWIDGETS_THEME", "")
	t.Setenv("FORMWIDGETS_THEME_TOKENS", "")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if c.Theme() != nil {
		t.Fatalf("expected no theme, got %+v", c.Theme())
	}
}

func TestLoadConfigTheme(t *testing.T) {
	t.Setenv("FORMWIDGETS_THEME", "brand")
	t.Setenv("FORMWIDGETS_THEME_TOKENS", "primary=#0f172a,radius=4px")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	manifest := c.Theme()
	if manifest == nil {
		t.Fatalf("expected theme manifest")
	}
	if manifest.Name != "brand" {
		t.Fatalf("expected theme name brand, got %q", manifest.Name)
	}
	want := map[string]string{"primary": "#0f172a", "radius": "4px"}
	if diff := cmp.Diff(want, manifest.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDemoFormLoads(t *testing.T) {
	form, err := Config{}.loadForm()
	if err != nil {
		t.Fatalf("load demo form: %v", err)
	}
	if got := len(form.Widgets()); got != 5 {
		t.Fatalf("expected 5 demo widgets, got %d", got)
	}
	if _, ok := form.Widget("lookup"); !ok {
		t.Fatalf("expected lookup widget in demo form")
	}
}

func TestLoadConfigFormPath(t *testing.T) {
	path := testsupport.WriteFixture(t, t.TempDir(), "forms/contact.yaml", []byte(`title: Contact
fields:
  - kind: text
    name: email
    title: Email
  - kind: select
    name: topic
    options: [{value: sales, label: Sales}]
`))
	t.Setenv("FORMWIDGETS_FORM", path)

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	form, err := c.loadForm()
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if got := len(form.Widgets()); got != 2 {
		t.Fatalf("expected 2 widgets, got %d", got)
	}
	if _, ok := form.Widget("topic"); !ok {
		t.Fatalf("expected topic widget")
	}
}

func TestRenderCommandWritesFragment(t *testing.T) {
	t.Setenv("FORMWIDGETS_FORM", "")
	t.Setenv("FORMWIDGETS_TEMPLATES_DIR", "")
	t.Cleanup(func() {
		fragment = false
		outputPath = ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--fragment"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render command: %v", err)
	}

	html := out.String()
	if strings.Contains(html, "<!DOCTYPE html>") {
		t.Fatalf("fragment should not include a document wrapper:\n%s", html)
	}
	for _, want := range []string{`name="username"`, `name="lookup.category"`, `enctype="multipart/form-data"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

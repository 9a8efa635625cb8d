package vanilla_test

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/ingest"
	"github.com/goliatone/go-formwidgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwidgets/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formwidgets/pkg/testsupport"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func render(t *testing.T, renderer *vanilla.Renderer, w widgets.Widget) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), w)
	if err != nil {
		t.Fatalf("render %s: %v", w.Kind(), err)
	}
	return string(out)
}

func TestRenderer_TextFieldErrorState(t *testing.T) {
	field := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.ID = "age"
		p.Title = "Age"
		p.Pattern = regexp.MustCompile(`^\d+$`)
		p.Value = binding.Bind("", func(string) {})
	})
	renderer := newRenderer(t)

	output := render(t, renderer, field)
	testsupport.AssertContains(t, output, `id="age"`, "border-secondary-light", ">Age</label>")
	testsupport.AssertNotContains(t, output, "Input is invalid", "border-red-500")

	field.Change("12a")
	field.Rebind(binding.Bind("12a", func(string) {}))

	output = render(t, renderer, field)
	testsupport.AssertContains(t, output, "border-red-500", "Input is invalid", `aria-invalid="true"`, `value="12a"`)
}

func TestRenderer_EscapesValues(t *testing.T) {
	field := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.Value = binding.Static(`"><script>alert(1)</script>`)
		p.HelperText = "<b>bold</b>"
	})

	output := render(t, newRenderer(t), field)
	testsupport.AssertNotContains(t, output, "<script>", "<b>bold</b>")
	testsupport.AssertContains(t, output, "&lt;script&gt;", "&lt;b&gt;bold&lt;/b&gt;")
}

func TestRenderer_PasswordToggle(t *testing.T) {
	field := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.ID = "secret"
		p.InputKind = widgets.InputKindPassword
	})
	renderer := newRenderer(t)

	output := render(t, renderer, field)
	testsupport.AssertContains(t, output, `type="password"`, `value="secret:toggle-password"`, "Show password")

	field.TogglePasswordVisibility()
	output = render(t, renderer, field)
	testsupport.AssertContains(t, output, `type="text"`, "Hide password")
}

func TestRenderer_FileUploader(t *testing.T) {
	uploader := widgets.NewFileUploader(func(p *widgets.FileUploaderProps) {
		p.AcceptedTypes = "image/*"
		p.ConvertToBase64 = true
		p.Selected = binding.Bind(ingest.Selection{}, func(ingest.Selection) {})
	})
	renderer := newRenderer(t)

	output := render(t, renderer, uploader)
	inputID := uploader.InputID()
	testsupport.AssertContains(t, output,
		`for="`+inputID+`"`,
		`id="`+inputID+`"`,
		`accept="image/*"`,
		"Click to upload or drag and drop",
		"<svg",
	)

	uploader.Select(context.Background(), ingest.FromBytes("dot.png", "image/png", []byte{0x89, 'P', 'N', 'G'}))
	uploader.Wait()

	output = render(t, renderer, uploader)
	testsupport.AssertContains(t, output, `<img src="data:image/png;base64,`, `alt="dot.png"`)
}

func TestRenderer_SearchCategoryMenu(t *testing.T) {
	search := widgets.NewSearchWithCategory(func(p *widgets.SearchWithCategoryProps) {
		p.Categories = []string{"A", "B"}
		p.Category = binding.Bind("A", func(string) {})
	})
	renderer := newRenderer(t)

	output := render(t, renderer, search)
	testsupport.AssertContains(t, output, `value="search-category:toggle-menu"`, `aria-expanded="false"`, `value="search-category:search"`)
	testsupport.AssertNotContains(t, output, `role="listbox"`)

	search.ToggleMenu()
	output = render(t, renderer, search)
	testsupport.AssertContains(t, output,
		`aria-expanded="true"`,
		`value="search-category:select:A"`,
		`value="search-category:select:B"`,
		`aria-selected="true"`,
	)
}

func TestRenderer_SelectField(t *testing.T) {
	field := widgets.NewSelectField(func(p *widgets.SelectFieldProps) {
		p.Name = "color"
		p.Options = []widgets.Option{{Value: "r", Label: "Red"}, {Value: "g", Label: "Green"}}
		p.Value = binding.Static("g")
	})

	output := render(t, newRenderer(t), field)
	testsupport.AssertContains(t, output, `name="color"`, `<option value="g" selected>Green</option>`, `<option value="" disabled>Select an option</option>`)
	testsupport.AssertNotContains(t, output, "Selection is invalid")

	field.Rebind(binding.Static(""))
	output = render(t, newRenderer(t), field)
	testsupport.AssertContains(t, output, `<option value="" disabled selected>Select an option</option>`)

	field.Rebind(binding.Static("x"))
	output = render(t, newRenderer(t), field)
	testsupport.AssertContains(t, output, "Selection is invalid")
}

func TestRenderer_RenderPage(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithTheme(&theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"accent": "#abcdef",
		},
	}))

	output, err := renderer.RenderPage(testsupport.Context(), vanilla.Page{
		Title:       "Signup",
		Action:      "/submit",
		SubmitLabel: "Send",
		Hidden:      []vanilla.HiddenField{{Name: "csrf", Value: "token"}},
		Widgets: []widgets.Widget{
			widgets.NewTextField(),
			widgets.NewFileUploader(),
		},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}

	html := string(output)
	testsupport.AssertContains(t, html,
		`action="/submit"`,
		`enctype="multipart/form-data"`,
		`data-theme="acme"`,
		`style="--fw-accent: #abcdef; --fw-brand: #123456;"`,
		`<input type="hidden" name="csrf" value="token">`,
		">Send</button>",
	)
	if strings.Index(html, `data-widget="text-field"`) > strings.Index(html, `data-widget="file-uploader"`) {
		t.Fatalf("widgets rendered out of order")
	}
	testsupport.AssertNotContains(t, html, "<!DOCTYPE html>")
}

func TestRenderer_StandalonePageWithoutUploader(t *testing.T) {
	output, err := newRenderer(t).RenderPage(testsupport.Context(), vanilla.Page{
		Title:      "Search",
		Standalone: true,
		Widgets:    []widgets.Widget{widgets.NewSearchBar()},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	testsupport.AssertContains(t, string(output), "<!DOCTYPE html>", "<title>Search</title>")
	testsupport.AssertNotContains(t, string(output), "multipart/form-data", "data-theme")
}

func TestRenderer_TemplateOverride(t *testing.T) {
	files := fstest.MapFS{
		"custom/search.tmpl": {Data: []byte(`<custom-search name="{{ widget.term_name }}"></custom-search>`)},
	}
	renderer := newRenderer(t,
		vanilla.WithTemplatesFS(files),
		vanilla.WithTemplateOverride(widgets.KindSearchBar, "custom/search.tmpl"),
	)

	output := render(t, renderer, widgets.NewSearchBar(func(p *widgets.SearchBarProps) { p.Name = "q" }))
	if output != `<custom-search name="q"></custom-search>` {
		t.Fatalf("unexpected override output: %q", output)
	}
}

func TestRenderer_CustomComponent(t *testing.T) {
	registry := components.NewDefaultRegistry()
	err := registry.Set(widgets.KindSelectField, func(w io.Writer, view widgets.View, _ components.Env) error {
		_, err := io.WriteString(w, "select:"+view.FieldName)
		return err
	})
	if err != nil {
		t.Fatalf("set component: %v", err)
	}

	renderer := newRenderer(t, vanilla.WithRegistry(registry))
	output := render(t, renderer, widgets.NewSelectField())
	if output != "select:default" {
		t.Fatalf("unexpected custom output: %q", output)
	}

	err = registry.Set(widgets.KindSelectField, func(w io.Writer, _ widgets.View, _ components.Env) error {
		_, err := io.WriteString(w, "replaced")
		return err
	})
	if err != nil {
		t.Fatalf("replace component: %v", err)
	}
	if output := render(t, renderer, widgets.NewSelectField()); output != "select:default" {
		t.Fatalf("registry change after New reached the renderer: %q", output)
	}
}

func TestRenderer_UnknownKind(t *testing.T) {
	_, err := newRenderer(t).RenderView(testsupport.Context(), widgets.View{Kind: "slider", ID: "s"})
	if err == nil || !strings.Contains(err.Error(), `"slider"`) {
		t.Fatalf("expected unregistered component error, got %v", err)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, widgets.NewTextField()); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_IconsAreSanitized(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithIcon("search", `<svg onload="alert(1)"><script>alert(2)</script><path d="M0 0"/></svg>`))

	output := render(t, renderer, widgets.NewSearchBar())
	testsupport.AssertNotContains(t, output, "onload", "<script>")
	testsupport.AssertContains(t, output, `<path d="M0 0"`)
}

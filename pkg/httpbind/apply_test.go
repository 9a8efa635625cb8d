package httpbind

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/ingest"
	"github.com/goliatone/go-formwidgets/pkg/menu"
	"github.com/goliatone/go-formwidgets/pkg/testsupport"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postMultipart(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
		ok   bool
	}{
		{"pw:toggle-password", Action{Field: "pw", Verb: "toggle-password"}, true},
		{"cat:select:a:b", Action{Field: "cat", Verb: "select", Arg: "a:b"}, true},
		{"cat:select:", Action{Field: "cat", Verb: "select"}, true},
		{"nowidget", Action{}, false},
		{":search", Action{}, false},
		{"w:", Action{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseAction(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseAction(%q) = %+v, %v; want %+v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestApply_PushesOnlyDifferingValues(t *testing.T) {
	nameRec := &testsupport.Recorder[string]{}
	ageRec := &testsupport.Recorder[string]{}
	name := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.ID, p.Name = "name", "name"
		p.Value = nameRec.Bind("Ada")
	})
	age := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.ID, p.Name = "age", "age"
		p.Pattern = regexp.MustCompile(`^\d+$`)
		p.Value = ageRec.Bind("")
	})

	report, err := Apply(postForm(url.Values{"name": {"Ada"}, "age": {"12a"}}), name, age)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	testsupport.AssertDiff(t, "changed", []string{"age"}, report.Changed)
	if nameRec.Calls() != 0 {
		t.Fatalf("unchanged value must not be pushed")
	}
	testsupport.AssertDiff(t, "age pushes", []string{"12a"}, ageRec.Values())
	if age.Valid() {
		t.Fatalf("expected invalid age")
	}
}

func TestApply_TogglePassword(t *testing.T) {
	pw := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.ID = "pw"
		p.InputKind = widgets.InputKindPassword
		p.Value = binding.Bind("secret", func(string) {})
	})

	report, err := Apply(postForm(url.Values{"pw": {"secret"}, ActionField: {"pw:toggle-password"}}), pw)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if report.Action == nil || report.Action.Verb != VerbTogglePassword {
		t.Fatalf("unexpected action: %+v", report.Action)
	}
	if pw.InputType() != "text" || pw.Value() != "secret" {
		t.Fatalf("toggle must reveal without touching the value: %q %q", pw.InputType(), pw.Value())
	}
}

func TestApply_CategoryThenSearch(t *testing.T) {
	seq := &testsupport.Sequence{}
	search := widgets.NewSearchWithCategory(func(p *widgets.SearchWithCategoryProps) {
		p.ID, p.Name = "find", "find"
		p.Categories = []string{"A", "B"}
		p.Category = binding.Bind("All", func(c string) { seq.Add("category:" + c) })
		p.Term = binding.Bind("", func(term string) { seq.Add("term:" + term) })
		p.OnSearch = func() { seq.Add("search") }
	})

	steps := []url.Values{
		{ActionField: {"find:toggle-menu"}},
		{ActionField: {"find:select:B"}},
		{"find.term": {"go"}, ActionField: {"find:search"}},
	}
	for i, values := range steps {
		if _, err := Apply(postForm(values), search); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	testsupport.AssertDiff(t, "events", []string{"category:B", "term:go", "search"}, seq.Events())
	if search.MenuOpen() {
		t.Fatalf("menu should be closed")
	}
}

func TestApply_OtherActionsDismissOpenMenus(t *testing.T) {
	search := widgets.NewSearchWithCategory(func(p *widgets.SearchWithCategoryProps) {
		p.ID = "find"
		p.Categories = []string{"A"}
	})
	bar := widgets.NewSearchBar(func(p *widgets.SearchBarProps) { p.ID = "bar" })

	search.ToggleMenu()
	if _, err := Apply(postForm(url.Values{ActionField: {"bar:search"}}), search, bar); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if search.MenuOpen() {
		t.Fatalf("expected outside action to dismiss the menu")
	}

	search.ToggleMenu()
	if _, err := Apply(postForm(url.Values{}), search, bar); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if search.MenuOpen() {
		t.Fatalf("expected plain submit to dismiss the menu")
	}
}

func TestApply_SelectWithClosedMenuFails(t *testing.T) {
	search := widgets.NewSearchWithCategory(func(p *widgets.SearchWithCategoryProps) {
		p.ID = "find"
		p.Categories = []string{"A"}
		p.Category = binding.Bind("All", func(string) {})
	})
	_, err := Apply(postForm(url.Values{ActionField: {"find:select:A"}}), search)
	if !errors.Is(err, menu.ErrNoTransition) {
		t.Fatalf("expected ErrNoTransition, got %v", err)
	}
}

func TestApply_UnknownTargets(t *testing.T) {
	field := widgets.NewTextField(func(p *widgets.TextFieldProps) { p.ID = "f" })

	if _, err := Apply(postForm(url.Values{ActionField: {"ghost:search"}}), field); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	if _, err := Apply(postForm(url.Values{ActionField: {"f:search"}}), field); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := Apply(postForm(url.Values{ActionField: {"garbage"}}), field); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction for malformed value, got %v", err)
	}
}

func TestApply_MultipartUpload(t *testing.T) {
	rec := &testsupport.Recorder[ingest.Selection]{}
	uploader := widgets.NewFileUploader(func(p *widgets.FileUploaderProps) {
		p.Name = "doc"
		p.ConvertToBase64 = true
		p.Selected = rec.Bind(ingest.Selection{})
	})
	note := widgets.NewTextField(func(p *widgets.TextFieldProps) {
		p.Name = "note"
		p.Value = binding.Bind("", func(string) {})
	})

	req := postMultipart(t, map[string]string{"note": "hi"}, "doc", "hello.txt", []byte("hello"))
	report, err := Apply(req, uploader, note)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	testsupport.AssertDiff(t, "files", []string{"doc"}, report.Files)
	testsupport.AssertDiff(t, "changed", []string{"note"}, report.Changed)
	got := rec.Values()
	if len(got) != 1 || !strings.HasSuffix(got[0].Encoded, ";base64,aGVsbG8=") {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestApply_RejectedUploadReported(t *testing.T) {
	uploader := widgets.NewFileUploader(func(p *widgets.FileUploaderProps) {
		p.Name = "img"
		p.AcceptedTypes = "image/*"
		p.Selected = binding.Bind(ingest.Selection{}, func(ingest.Selection) {})
	})

	report, err := Apply(postMultipart(t, nil, "img", "notes.txt", []byte("x")), uploader)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !errors.Is(report.FileErrors["img"], ingest.ErrNotAccepted) {
		t.Fatalf("expected ErrNotAccepted, got %v", report.FileErrors)
	}
	if len(report.Files) != 0 {
		t.Fatalf("rejected file must not be reported as received")
	}
}

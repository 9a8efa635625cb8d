package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-formwidgets/pkg/testsupport"
	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

func TestRegistryCloneIsolated(t *testing.T) {
	reg := NewRegistry()
	noop := func(io.Writer, widgets.View, Env) error { return nil }

	if err := reg.Set(widgets.KindTextField, noop); err != nil {
		t.Fatalf("set: %v", err)
	}

	cloned := reg.Clone()
	if err := cloned.Set(widgets.KindSearchBar, noop); err != nil {
		t.Fatalf("set on clone: %v", err)
	}

	if _, ok := reg.Lookup(widgets.KindSearchBar); ok {
		t.Fatalf("clone registration leaked into original registry")
	}
	if _, ok := cloned.Lookup(widgets.KindTextField); !ok {
		t.Fatalf("clone lost existing renderer")
	}
}

func TestRegistryRejectsInvalidEntries(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Set("", func(io.Writer, widgets.View, Env) error { return nil }); err == nil {
		t.Fatalf("expected error for empty kind")
	}
	if err := reg.Set(widgets.KindTextField, nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestDefaultRegistryCoversEveryKind(t *testing.T) {
	want := []widgets.Kind{
		widgets.KindFileUploader,
		widgets.KindSearchBar,
		widgets.KindSearchCategory,
		widgets.KindSelectField,
		widgets.KindTextField,
	}
	testsupport.AssertDiff(t, "kinds", want, NewDefaultRegistry().Kinds())
}

func TestTemplateRendererRequiresEngine(t *testing.T) {
	fn, _ := NewDefaultRegistry().Lookup(widgets.KindTextField)
	var buf bytes.Buffer
	if err := fn(&buf, widgets.NewTextField().View(), Env{}); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}

func TestClassesReflectValidity(t *testing.T) {
	view := widgets.NewTextField().View()
	if got := Classes(view)["input"]; !strings.Contains(got, validBorder) || !strings.Contains(got, "rounded-full") {
		t.Fatalf("unexpected valid input classes: %q", got)
	}

	view.Valid = false
	if got := Classes(view)["input"]; !strings.Contains(got, errorBorder) {
		t.Fatalf("expected error border, got %q", got)
	}
}

func TestClassesSpacing(t *testing.T) {
	view := widgets.NewSearchBar(func(p *widgets.SearchBarProps) {
		p.Style.SpaceX = 2
		p.Style.SpaceY = 4
		p.Style.Width = "1/2"
	}).View()

	if got := Classes(view)["wrapper"]; !strings.Contains(got, "mx-2 my-4 w-1/2") {
		t.Fatalf("unexpected wrapper classes: %q", got)
	}
}

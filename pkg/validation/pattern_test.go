package validation

import (
	"regexp"
	"testing"
)

func TestValidate_NilRuleAlwaysValid(t *testing.T) {
	for _, value := range []string{"", "anything", "12a"} {
		if !Validate(value, nil) {
			t.Fatalf("nil rule rejected %q", value)
		}
		if !Validate(value, &Rule{ErrorMessage: "unused"}) {
			t.Fatalf("nil pattern rejected %q", value)
		}
	}
}

func TestValidate_MatchesPatternSemantics(t *testing.T) {
	cases := []struct {
		pattern string
		value   string
	}{
		{`^\d+$`, "123"},
		{`^\d+$`, "12a"},
		{`^\d+$`, ""},
		{`\d`, "a1b"},
		{`^$`, ""},
		{`foo`, "barfoobar"},
	}

	for _, tc := range cases {
		re := regexp.MustCompile(tc.pattern)
		got := Validate(tc.value, &Rule{Pattern: re})
		if want := re.MatchString(tc.value); got != want {
			t.Fatalf("Validate(%q, %q) = %v, want %v", tc.value, tc.pattern, got, want)
		}
	}
}

func TestCheck_AttachesMessageOnFailure(t *testing.T) {
	rule := &Rule{Pattern: MustPattern(`^\d+$`), ErrorMessage: "digits only"}

	if res := Check("12a", rule); res.Valid || res.Message != "digits only" {
		t.Fatalf("unexpected failure result: %+v", res)
	}
	if res := Check("12", rule); !res.Valid || res.Message != "" {
		t.Fatalf("unexpected success result: %+v", res)
	}
}

func TestParsePattern_LiteralForms(t *testing.T) {
	cases := []struct {
		expr  string
		value string
		want  bool
	}{
		{`^\d+$`, "42", true},
		{`/^\d+$/`, "42", true},
		{`/^abc$/i`, "ABC", true},
		{`/^abc$/`, "ABC", false},
		{`/^a.c$/s`, "a\nc", true},
		{`/x/gu`, "yxz", true},
		{`/path/to`, "/path/to", true},
		{`/^ab$/im`, "x\nAB", true},
		{`/\d/y`, "1a", true},
		{`/\d/y`, "a1", false},
		{`/b/my`, "a\nb", false},
		{`/a|b/y`, "ca", false},
	}

	for _, tc := range cases {
		re, err := ParsePattern(tc.expr)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.expr, err)
		}
		if got := re.MatchString(tc.value); got != tc.want {
			t.Fatalf("pattern %q on %q = %v, want %v", tc.expr, tc.value, got, tc.want)
		}
	}
}

func TestParsePattern_EmptyAndErrors(t *testing.T) {
	re, err := ParsePattern("   ")
	if err != nil || re != nil {
		t.Fatalf("expected nil pattern for empty expr, got %v, %v", re, err)
	}
	re, err = ParsePattern(`/abc/q`)
	if err != nil {
		t.Fatalf("expected non-literal expr to compile as is: %v", err)
	}
	if !re.MatchString("x/abc/q") {
		t.Fatalf("expected plain expression semantics for %q", re.String())
	}
	if _, err := ParsePattern(`(`); err == nil {
		t.Fatalf("expected compile error")
	}
}

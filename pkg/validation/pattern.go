package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule pairs an optional pattern with the message shown when it fails. A nil
// rule or nil pattern always validates.
type Rule struct {
	Pattern      *regexp.Regexp
	ErrorMessage string
}

// Result is the outcome of a single check. Message is empty when Valid.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validate reports whether value satisfies rule. The pattern only has to find
// a match somewhere in value; anchors must be part of the pattern. Empty values
// get no special treatment.
func Validate(value string, rule *Rule) bool {
	if rule == nil || rule.Pattern == nil {
		return true
	}
	return rule.Pattern.MatchString(value)
}

// Check runs Validate and attaches the rule's message on failure.
func Check(value string, rule *Rule) Result {
	if Validate(value, rule) {
		return Result{Valid: true}
	}
	return Result{Valid: false, Message: rule.ErrorMessage}
}

// ParsePattern compiles expr. Besides plain expressions it accepts the
// slash-delimited literal form used by browser pattern attributes and JS
// sources, e.g. `/^\d+$/i`. Supported flags are i, m, s and y, where y anchors
// the match at the start of value; d, g and u do not change matching and are
// ignored. A trailing segment holding anything else means expr is not a
// literal and is compiled as is. An empty expr yields a nil pattern.
func ParsePattern(expr string) (*regexp.Regexp, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, nil
	}

	body := trimmed
	if len(trimmed) >= 2 && trimmed[0] == '/' {
		if end := strings.LastIndex(trimmed, "/"); end > 0 && isFlagSet(trimmed[end+1:]) {
			body = trimmed[1:end]
			if strings.ContainsRune(trimmed[end+1:], 'y') {
				body = `\A(?:` + body + ")"
			}
			if inline := inlineFlags(trimmed[end+1:]); inline != "" {
				body = "(?" + inline + ")" + body
			}
		}
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", expr, err)
	}
	return re, nil
}

// MustPattern mirrors ParsePattern but panics on error.
func MustPattern(expr string) *regexp.Regexp {
	re, err := ParsePattern(expr)
	if err != nil {
		panic(err)
	}
	return re
}

func isFlagSet(flags string) bool {
	for _, flag := range flags {
		if !strings.ContainsRune("dgimsuy", flag) {
			return false
		}
	}
	return true
}

func inlineFlags(flags string) string {
	var out strings.Builder
	for _, flag := range "ims" {
		if strings.ContainsRune(flags, flag) {
			out.WriteRune(flag)
		}
	}
	return out.String()
}

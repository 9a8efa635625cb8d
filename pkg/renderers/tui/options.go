package tui

import (
	"fmt"
	"strings"
)

// OutputFormat selects how Render serializes the collected answers.
type OutputFormat string

const (
	FormatJSON   OutputFormat = "json"
	FormatForm   OutputFormat = "form"
	FormatPretty OutputFormat = "pretty"
)

// ParseFormat accepts a format name case-insensitively. Empty means JSON.
func ParseFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatForm, FormatPretty:
		return format, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", name)
	}
}

// Theme holds the prefixes put in front of prompt labels and notices.
type Theme struct {
	Prompt string
	Info   string
	Error  string
}

// Transform rewrites the answers before they are serialized.
type Transform func(map[string]any) (map[string]any, error)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	driver    PromptDriver
	format    OutputFormat
	transform Transform
	theme     Theme
}

// WithPromptDriver replaces the survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(cfg *config) {
		if format != "" {
			cfg.format = format
		}
	}
}

func WithTransform(fn Transform) Option {
	return func(cfg *config) {
		cfg.transform = fn
	}
}

func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

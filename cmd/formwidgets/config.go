package main

import (
	_ "embed"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwidgets/pkg/formdef"
)

//go:embed demo.yaml
var demoForm []byte

// Config is read from the environment; flags override individual fields.
type Config struct {
	Addr         string            `env:"FORMWIDGETS_ADDR" envDefault:":8080"`
	LogLevel     string            `env:"FORMWIDGETS_LOG_LEVEL"`
	FormPath     string            `env:"FORMWIDGETS_FORM"`
	TemplatesDir string            `env:"FORMWIDGETS_TEMPLATES_DIR"`
	ThemeName    string            `env:"FORMWIDGETS_THEME"`
	ThemeTokens  map[string]string `env:"FORMWIDGETS_THEME_TOKENS" envSeparator:"," envKeyValSeparator:"="`
}

// LoadConfig loads .env when present, then parses FORMWIDGETS_* variables.
func LoadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("formwidgets: parse environment: %w", err)
	}
	return c, nil
}

// Theme returns the configured theme manifest, or nil when no theme is set.
func (c Config) Theme() *theme.Manifest {
	if c.ThemeName == "" && len(c.ThemeTokens) == 0 {
		return nil
	}
	name := c.ThemeName
	if name == "" {
		name = "custom"
	}
	return &theme.Manifest{
		Name:   name,
		Tokens: c.ThemeTokens,
	}
}

// loadForm builds the configured form definition, falling back to the demo.
func (c Config) loadForm(opts ...formdef.Option) (*formdef.Form, error) {
	if c.FormPath == "" {
		return formdef.Parse(demoForm, opts...)
	}
	return formdef.Load(c.FormPath, opts...)
}

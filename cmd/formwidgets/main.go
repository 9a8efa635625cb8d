// Formwidgets renders and serves forms built from widget definitions.
//
// A definition is a JSON or YAML document listing widgets in order. The same
// definition can be rendered to static HTML, filled in from a terminal, or
// served as an HTML form that round-trips through POST.
//
// Usage:
//
//	formwidgets render --form signup.yaml
//	formwidgets prompt --form signup.yaml --format pretty
//	formwidgets serve --form signup.yaml --addr :8080
//
// Without --form, a built-in demo form is used.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwidgets/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	cfg      Config
	formPath string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "formwidgets",
	Short: "Render, prompt and serve widget forms",
	Long: `Render, prompt and serve forms built from JSON or YAML widget definitions.

Configuration is read from FORMWIDGETS_* environment variables (and a .env file
in the working directory when present); flags override the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		if formPath != "" {
			cfg.FormPath = formPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		return logging.Initialize(cfg.LogLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&formPath, "form", "", "Form definition (JSON or YAML); defaults to FORMWIDGETS_FORM or the demo form")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(serveCmd)
}

package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/widgets/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can copy it as
// the starting point for their own overrides.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

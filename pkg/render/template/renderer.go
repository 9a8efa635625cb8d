package template

import (
	"io"
)

// TemplateRenderer is the engine contract the HTML renderer relies on.
// RenderTemplate resolves name through the engine's loaders; RenderString
// parses the given source. Both return the output and also copy it to every
// writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

package template

import (
	"errors"
	"io"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract, providing the seam the rendering pipeline relies on.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// ErrNotFound reports a template name that no loader could resolve. Engines
// wrap it so callers can walk fallback chains with errors.Is.
var ErrNotFound = errors.New("template not found")

// Finder is implemented by engines that can answer template existence
// without rendering. The convention-based lookup uses it to probe variant
// and fallback names cheaply.
type Finder interface {
	HasTemplate(name string) bool
}

package hyperview

import (
	"io/fs"

	html "github.com/goliatone/go-hyperview/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in component and error templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	fsys := html.TemplatesFS()
	return fsys
}

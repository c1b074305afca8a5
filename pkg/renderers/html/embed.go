package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded component and error-page templates rooted
// so convention names (Task, Task.table) resolve directly. Callers can layer
// their own directory over it via WithEngineOptions.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// embed guarantees the directory exists
		return embeddedTemplates
	}
	return sub
}

package render

// Options carry per-request rendering state that renderers can use without
// mutating the component being rendered.
type Options struct {
	// Variant selects an alternate template for the same component (for
	// example a table row instead of a card). Empty means the base template.
	Variant string
	// Theme overrides the renderer's default theme selection by name.
	Theme string
	// Extra is merged into the template context after the component's own
	// fields and any global context provider values.
	Extra map[string]any
}

package render

import (
	"context"
)

// Renderer converts a handler result (a component, a slice of components, or
// any serializable value) into a response body for one content type.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, value any, options Options) ([]byte, error)
}

// Package jsonenc provides the JSON side of content negotiation: a renderer
// that serializes handler results with encoding/json. Component rendering
// metadata (attributes, CSS classes) is tagged out of serialization, so API
// clients see only the model's own fields.
package jsonenc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-hyperview/pkg/render"
)

// Renderer serializes values as JSON.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name reports the renderer identifier used in the registry.
func (r *Renderer) Name() string {
	return "json"
}

// ContentType reports the media type written for rendered output.
func (r *Renderer) ContentType() string {
	return "application/json; charset=utf-8"
}

// Render encodes value as JSON. Options are ignored; variants only affect
// HTML rendering.
func (r *Renderer) Render(_ context.Context, value any, _ render.Options) ([]byte, error) {
	out, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("jsonenc: encode value: %w", err)
	}
	return out, nil
}

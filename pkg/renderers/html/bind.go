package html

import (
	"context"
	"reflect"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/render"
)

// bound pairs a nested component with the renderer and request state of the
// render that produced it, so template filters can render it later with the
// same context provider values. The embedded interface keeps bound values
// recognizable as components throughout the pipeline.
type bound struct {
	component.Component

	renderer *Renderer
	ctx      context.Context
	options  render.Options
}

func (b bound) render(variant string) (string, error) {
	opts := b.options
	if variant != "" {
		opts.Variant = variant
	}
	return b.renderer.RenderComponent(b.ctx, b.Component, opts)
}

// bindComponents wraps nested component values inside a template context so
// the variant and render filters resolve them against this render's state.
func bindComponents(viewCtx map[string]any, r *Renderer, ctx context.Context, options render.Options) {
	for key, value := range viewCtx {
		viewCtx[key] = bindValue(value, r, ctx, options)
	}
}

func bindValue(value any, r *Renderer, ctx context.Context, options render.Options) any {
	switch v := value.(type) {
	case bound:
		return v
	case component.Component:
		return bound{Component: v, renderer: r, ctx: ctx, options: options}
	case []component.Component:
		out := make([]any, len(v))
		for i, c := range v {
			out[i] = bindValue(c, r, ctx, options)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = bindValue(item, r, ctx, options)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = bindValue(item, r, ctx, options)
		}
		return out
	default:
		return bindSlice(value, r, ctx, options)
	}
}

// bindSlice wraps typed component slices such as []Task, which reach the
// context without being declared as []component.Component.
func bindSlice(value any, r *Renderer, ctx context.Context, options render.Options) any {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return value
	}
	if !rv.Type().Elem().Implements(componentType) {
		return value
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = bindValue(rv.Index(i).Interface(), r, ctx, options)
	}
	return out
}

var componentType = reflect.TypeOf((*component.Component)(nil)).Elem()

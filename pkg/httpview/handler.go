package httpview

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/negotiate"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
	"github.com/goliatone/go-hyperview/pkg/sse"
)

// ErrResponseWritten is returned by handler functions that wrote the
// response themselves, e.g. redirects or file downloads. The adapter skips
// rendering when it sees it.
var ErrResponseWritten = errors.New("httpview: response already written")

// HandlerFunc is the application handler wrapped by Handler. It returns the
// value to render plus an error routed through the error pipeline.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) (any, error)

type handler struct {
	fn   HandlerFunc
	opts Options
}

// Handler wraps fn in the content-negotiating adapter. JSON requests get the
// result serialized as-is; HTML requests get components rendered through
// their convention-based templates, honoring the variant request header.
func Handler(fn HandlerFunc, fns ...OptionFn) http.Handler {
	return &handler{fn: fn, opts: NewOptions(fns...)}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind := negotiate.Negotiate(r)

	if h.opts.HTMLOnly && kind == negotiate.KindJSON {
		h.respondError(w, r, HTMLOnlyError{})
		return
	}

	result, err := h.fn(w, r)
	if err != nil {
		if errors.Is(err, ErrResponseWritten) {
			return
		}
		h.respondError(w, r, err)
		return
	}

	if h.opts.Streaming {
		stream, ok := result.(*sse.Stream)
		if !ok {
			h.respondError(w, r, NotRenderableError{Value: result})
			return
		}
		// Write errors mid-stream mean the client went away.
		_ = stream.Serve(w, r)
		return
	}

	if kind == negotiate.KindJSON {
		h.respondJSON(w, r, result)
		return
	}

	h.respondHTML(w, r, result)
}

func (h *handler) registry() (*render.Registry, error) {
	if h.opts.Renderers != nil {
		return h.opts.Renderers, nil
	}
	return sharedRenderers()
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	pages := h.opts.ErrorPages
	if pages == nil {
		pages = DefaultErrorPages()
	}
	pages.Respond(w, r, err)
}

func (h *handler) respondJSON(w http.ResponseWriter, r *http.Request, result any) {
	if result == nil {
		status := h.opts.Status
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
		return
	}

	registry, err := h.registry()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	renderer, err := registry.Get("json")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	body, err := renderer.Render(r.Context(), result, render.Options{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	status := h.opts.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	w.Write(body)
}

func (h *handler) respondHTML(w http.ResponseWriter, r *http.Request, result any) {
	if result == nil {
		writeHTML(w, "")
		return
	}

	registry, err := h.registry()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	renderer, err := registry.Get("html")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	ropts := render.Options{Variant: negotiate.Variant(r)}

	if h.opts.Template != "" {
		body, err := h.renderTemplate(r, renderer, result, ropts)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		writeHTML(w, body)
		return
	}

	switch v := result.(type) {
	case component.Component:
		body, err := renderer.Render(r.Context(), v, ropts)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		writeHTML(w, string(body))
		return
	case component.SafeHTML:
		writeHTML(w, string(v))
		return
	case string:
		if h.opts.Sanitizer != nil {
			v = h.opts.Sanitizer.Sanitize(v)
		}
		writeHTML(w, v)
		return
	}

	items, ok := sliceItems(result)
	if !ok {
		h.respondError(w, r, NotRenderableError{Value: result})
		return
	}
	for _, item := range items {
		switch item.(type) {
		case string, component.SafeHTML, component.Component:
		default:
			h.respondError(w, r, NotRenderableError{Value: item})
			return
		}
	}

	wrapped, err := h.opts.Wrapper(items...)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	body, err := renderer.Render(r.Context(), wrapped, ropts)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeHTML(w, string(body))
}

// renderTemplate renders results through the explicit Template option,
// building the template context from each value. Slices render per item and
// land in the wrapper container.
func (h *handler) renderTemplate(r *http.Request, renderer render.Renderer, result any, ropts render.Options) (string, error) {
	engine := h.opts.Engine
	if engine == nil {
		if hr, ok := renderer.(*html.Renderer); ok {
			engine = hr.Engine()
		}
	}
	if engine == nil {
		return "", fmt.Errorf("httpview: template %q needs an engine", h.opts.Template)
	}

	if items, ok := sliceItems(result); ok {
		rendered := make([]any, 0, len(items))
		for _, item := range items {
			out, err := h.renderTemplateValue(r, engine, item, ropts)
			if err != nil {
				return "", err
			}
			rendered = append(rendered, component.SafeHTML(out))
		}
		wrapped, err := h.opts.Wrapper(rendered...)
		if err != nil {
			return "", err
		}
		body, err := renderer.Render(r.Context(), wrapped, ropts)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	return h.renderTemplateValue(r, engine, result, ropts)
}

func (h *handler) renderTemplateValue(r *http.Request, engine template.TemplateRenderer, value any, ropts render.Options) (string, error) {
	ctx, err := templateContext(r, value)
	if err != nil {
		return "", err
	}

	if ropts.Variant != "" {
		if out, ok := tryRender(engine, h.opts.Template+"."+ropts.Variant, ctx); ok {
			return out, nil
		}
	}
	return engine.RenderTemplate(h.opts.Template, ctx)
}

// templateContext derives the rendering context for an arbitrary value:
// components contribute their field context, maps pass through, and other
// values round-trip through JSON the way the serializer would see them.
func templateContext(r *http.Request, value any) (map[string]any, error) {
	ctx := render.TemplateContext(r.Context())

	switch v := value.(type) {
	case component.Component:
		for key, val := range component.Context(v) {
			ctx[key] = val
		}
		return ctx, nil
	case map[string]any:
		for key, val := range v {
			ctx[key] = val
		}
		return ctx, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("httpview: build template context for %T: %w", value, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("httpview: build template context for %T: %w", value, err)
	}
	for key, val := range fields {
		ctx[key] = val
	}
	return ctx, nil
}

// sliceItems flattens slice and array results into []any. Strings and byte
// slices are not treated as collections.
func sliceItems(result any) ([]any, bool) {
	switch result.(type) {
	case nil, string, []byte, component.SafeHTML:
		return nil, false
	}

	value := reflect.ValueOf(result)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, value.Len())
	for i := 0; i < value.Len(); i++ {
		items[i] = value.Index(i).Interface()
	}
	return items, true
}

// HTML fragments always go out with 200 so htmx swaps them even on routes
// whose JSON form uses 201 or 204.
func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if body != "" {
		w.Write([]byte(body))
	}
}

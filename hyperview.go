package hyperview

import (
	"context"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/httpview"
	"github.com/goliatone/go-hyperview/pkg/negotiate"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
	"github.com/goliatone/go-hyperview/pkg/sse"
)

// Component marks renderable values; aliased at the root so applications can
// declare view models without importing the component package directly.
type Component = component.Component

// Meta carries per-instance attributes and classes for a component.
type Meta = component.Meta

// SafeHTML is a pre-rendered fragment written without escaping.
type SafeHTML = component.SafeHTML

// HandlerFunc is the application handler signature wrapped by Handler.
type HandlerFunc = httpview.HandlerFunc

// OptionFn configures a wrapped handler.
type OptionFn = httpview.OptionFn

// StatusError carries an HTTP status and detail through the error pipeline.
type StatusError = httpview.StatusError

// TemplateError carries presentation hints for templated error fragments.
type TemplateError = httpview.TemplateError

// Stream is a server-sent events response body.
type Stream = sse.Stream

// Handler wraps fn in the content-negotiating adapter.
func Handler(fn HandlerFunc, options ...OptionFn) http.Handler {
	return httpview.Handler(fn, options...)
}

// WithHTMLOnly rejects requests that do not negotiate to HTML.
func WithHTMLOnly() OptionFn { return httpview.WithHTMLOnly() }

// WithTemplate renders results through the named template.
func WithTemplate(name string) OptionFn { return httpview.WithTemplate(name) }

// WithStreaming marks the route as a server-sent events endpoint.
func WithStreaming() OptionFn { return httpview.WithStreaming() }

// WithStatus sets the JSON success status.
func WithStatus(code int) OptionFn { return httpview.WithStatus(code) }

// WithWrapper sets the container builder used for slice results.
func WithWrapper(fn httpview.Wrapper) OptionFn { return httpview.WithWrapper(fn) }

// NewRenderer builds an HTML renderer, optionally themed through a go-theme
// selector.
func NewRenderer(options ...html.Option) (*html.Renderer, error) {
	return html.New(options...)
}

// WithThemeSelector resolves theme templates and tokens ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) html.Option {
	return html.WithThemeSelector(selector, name, variant)
}

// RegisterFilters installs the component template filters against r.
func RegisterFilters(r *html.Renderer) error {
	return html.RegisterFilters(r)
}

// SetContextProvider installs a process-wide template context provider.
func SetContextProvider(provider func(ctx context.Context) map[string]any) {
	render.SetContextProvider(provider)
}

// IsHTMLRequest reports whether the request negotiates to an HTML response.
func IsHTMLRequest(r *http.Request) bool {
	return negotiate.IsHTML(r)
}

// RequestVariant returns the template variant requested via headers.
func RequestVariant(r *http.Request) string {
	return negotiate.Variant(r)
}

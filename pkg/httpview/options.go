package httpview

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
	"github.com/goliatone/go-hyperview/pkg/renderers/jsonenc"
)

// Wrapper packs a slice of handler results into a single component before
// rendering, typically a list or grid container.
type Wrapper func(items ...any) (component.Component, error)

// Options configures a Handler.
type Options struct {
	// HTMLOnly rejects non-HTML requests with 406 instead of serializing
	// the result as JSON.
	HTMLOnly bool

	// Template names an explicit template rendered with the result's
	// context, bypassing convention-based component lookup.
	Template string

	// Wrapper packs slice results into a container component. Defaults to
	// a div.
	Wrapper Wrapper

	// Streaming expects the handler to return an *sse.Stream and serves it
	// as a server-sent event response.
	Streaming bool

	// Status overrides the JSON response status. HTML fragments are always
	// written with 200 so htmx swaps them regardless of the resource
	// semantics.
	Status int

	// Renderers resolves negotiated content types. Defaults to a shared
	// registry holding the html and json renderers.
	Renderers *render.Registry

	// Engine renders the Template option. Defaults to the html renderer's
	// engine from the registry.
	Engine template.TemplateRenderer

	// ErrorPages handles handler errors. Defaults to the package default.
	ErrorPages *ErrorPages

	// Sanitizer, when set, filters string results through bluemonday
	// before they are written as HTML.
	Sanitizer *bluemonday.Policy
}

// OptionFn mutates handler options.
type OptionFn func(*Options)

// DefaultOptions returns the baseline handler configuration.
func DefaultOptions() Options {
	return Options{
		Wrapper: defaultWrapper,
	}
}

// NewOptions applies the provided functional options on top of the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Wrapper == nil {
		opts.Wrapper = defaultWrapper
	}
	return opts
}

// WithHTMLOnly rejects requests that do not negotiate to HTML.
func WithHTMLOnly() OptionFn {
	return func(o *Options) {
		o.HTMLOnly = true
	}
}

// WithTemplate renders results through the named template instead of the
// component convention.
func WithTemplate(name string) OptionFn {
	return func(o *Options) {
		o.Template = name
	}
}

// WithWrapper sets the container builder used for slice results.
func WithWrapper(fn Wrapper) OptionFn {
	return func(o *Options) {
		if fn != nil {
			o.Wrapper = fn
		}
	}
}

// WithStreaming marks the route as a server-sent events endpoint.
func WithStreaming() OptionFn {
	return func(o *Options) {
		o.Streaming = true
	}
}

// WithStatus sets the JSON success status.
func WithStatus(code int) OptionFn {
	return func(o *Options) {
		if code > 0 {
			o.Status = code
		}
	}
}

// WithRenderers replaces the renderer registry.
func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if registry != nil {
			o.Renderers = registry
		}
	}
}

// WithEngine sets the engine used for the Template option.
func WithEngine(engine template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if engine != nil {
			o.Engine = engine
		}
	}
}

// WithErrorPages sets the error pipeline for this handler.
func WithErrorPages(pages *ErrorPages) OptionFn {
	return func(o *Options) {
		if pages != nil {
			o.ErrorPages = pages
		}
	}
}

// WithSanitizer filters string results through the given policy before
// writing them as HTML.
func WithSanitizer(policy *bluemonday.Policy) OptionFn {
	return func(o *Options) {
		o.Sanitizer = policy
	}
}

func defaultWrapper(items ...any) (component.Component, error) {
	return component.NewDiv(items...)
}

var (
	sharedRegistryOnce sync.Once
	sharedRegistry     *render.Registry
	sharedRegistryErr  error
)

// sharedRenderers builds the process-wide registry with the html and json
// renderers and registers the template filters against the html renderer.
func sharedRenderers() (*render.Registry, error) {
	sharedRegistryOnce.Do(func() {
		registry := render.NewRegistry()

		htmlRenderer, err := html.New()
		if err != nil {
			sharedRegistryErr = err
			return
		}
		if err := html.RegisterFilters(htmlRenderer); err != nil {
			sharedRegistryErr = err
			return
		}

		if err := registry.Register(htmlRenderer); err != nil {
			sharedRegistryErr = err
			return
		}
		if err := registry.Register(jsonenc.New()); err != nil {
			sharedRegistryErr = err
			return
		}
		sharedRegistry = registry
	})
	return sharedRegistry, sharedRegistryErr
}

package html

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/render/template/gotemplate"
)

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	engine       template.TemplateRenderer
	engineOpts   []gotemplate.Option
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// WithEngine injects a custom template engine. The default engine serves the
// embedded component templates plus whatever WithEngineOptions adds.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithEngineOptions appends options for the default gotemplate engine, such
// as an application template directory layered over the embedded bundle.
func WithEngineOptions(options ...gotemplate.Option) Option {
	return func(cfg *config) {
		cfg.engineOpts = append(cfg.engineOpts, options...)
	}
}

// WithThemeSelector resolves name/variant through a go-theme selector. The
// selection contributes a default template variant, per-component template
// overrides (manifest Templates keyed "components.<Name>"), and a "theme"
// context value carrying the merged tokens.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// Renderer renders components to HTML using convention-based template
// lookup: <Name>.<variant>.html, then <Name>.html, walking the component's
// embedded-type chain until a template exists.
type Renderer struct {
	engine   template.TemplateRenderer
	selector theme.ThemeSelector
	selected *themeState
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		opts := append([]gotemplate.Option{gotemplate.WithFS(TemplatesFS())}, cfg.engineOpts...)
		built, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template engine: %w", err)
		}
		engine = built
	}

	r := &Renderer{engine: engine, selector: cfg.selector}

	if cfg.selector != nil && cfg.themeName != "" {
		state, err := resolveTheme(cfg.selector, cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("html renderer: resolve theme %q: %w", cfg.themeName, err)
		}
		r.selected = state
	}

	return r, nil
}

// Name reports the renderer identifier used in the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the media type written for rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Engine exposes the underlying template engine so callers can register
// filters or seed global context.
func (r *Renderer) Engine() template.TemplateRenderer {
	return r.engine
}

// Render implements render.Renderer for a component or a slice of
// components. Slices are rendered in order and concatenated; the HTTP
// adapter wraps them in a container component before calling Render, so the
// bare slice form mainly serves template filters.
func (r *Renderer) Render(ctx context.Context, value any, options render.Options) ([]byte, error) {
	switch v := value.(type) {
	case component.Component:
		out, err := r.RenderComponent(ctx, v, options)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case []component.Component:
		var out []byte
		for _, c := range v {
			rendered, err := r.RenderComponent(ctx, c, options)
			if err != nil {
				return nil, err
			}
			out = append(out, rendered...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("html renderer: value of type %T is not a component", value)
	}
}

// RenderComponent renders a single component with the given options.
func (r *Renderer) RenderComponent(ctx context.Context, c component.Component, options render.Options) (string, error) {
	if c == nil {
		return "", fmt.Errorf("html renderer: component is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	variant := options.Variant
	state := r.selected
	if r.selector != nil && options.Theme != "" && (state == nil || options.Theme != state.name) {
		resolved, err := resolveTheme(r.selector, options.Theme, "")
		if err != nil {
			return "", fmt.Errorf("html renderer: resolve theme %q: %w", options.Theme, err)
		}
		state = resolved
	}
	if variant == "" && state != nil {
		variant = state.defaultVariant
	}

	if self, ok := c.(component.HTMLRenderer); ok {
		return self.RenderHTML(ctx, variant)
	}

	name, err := r.resolve(c, variant, state)
	if err != nil {
		return "", err
	}

	viewCtx := r.buildContext(ctx, c, options, state)
	out, err := r.engine.RenderTemplate(name, viewCtx)
	if err != nil {
		return "", fmt.Errorf("html renderer: render %q: %w", name, err)
	}
	return out, nil
}

// resolve walks the component's template name chain probing variant names
// first. It returns the first name the engine can load.
func (r *Renderer) resolve(c component.Component, variant string, state *themeState) (string, error) {
	names := component.TemplateNames(c)
	if len(names) == 0 {
		return "", fmt.Errorf("html renderer: component %T has no template name", c)
	}

	finder, probes := r.engine.(template.Finder)

	for _, name := range names {
		if state != nil {
			if override, ok := state.templates["components."+name]; ok {
				return override, nil
			}
		}
		candidates := make([]string, 0, 2)
		if variant != "" {
			candidates = append(candidates, name+"."+variant)
		}
		candidates = append(candidates, name)
		for _, candidate := range candidates {
			if probes {
				if finder.HasTemplate(candidate) {
					return candidate, nil
				}
				continue
			}
			return candidate, nil
		}
	}

	return "", fmt.Errorf("html renderer: no template for component %q (tried %v): %w",
		names[0], names, template.ErrNotFound)
}

func (r *Renderer) buildContext(ctx context.Context, c component.Component, options render.Options, state *themeState) map[string]any {
	viewCtx := make(map[string]any)
	for key, value := range render.TemplateContext(ctx) {
		viewCtx[key] = value
	}
	for key, value := range component.Context(c) {
		viewCtx[key] = value
	}
	if state != nil {
		viewCtx["theme"] = map[string]any{
			"name":    state.name,
			"variant": state.variantName,
			"tokens":  state.tokens,
		}
	}
	for key, value := range options.Extra {
		viewCtx[key] = value
	}

	bindComponents(viewCtx, r, ctx, options)
	return viewCtx
}

package httpview

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/goliatone/go-hyperview/pkg/forms"
	"github.com/goliatone/go-hyperview/pkg/negotiate"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
)

// Retargeting defaults for validation failures. The fragment replaces the
// nearest error container instead of the htmx target.
const (
	ValidationRetarget = "closest .hv-error-container"
	ValidationReswap   = "outerHTML"
)

// ErrorPages turns handler errors into responses. HTML requests with a 4xx
// status get an error fragment resolved through a template chain: a template
// named after the error type in the application engine, then a generic
// StatusError template there, then the embedded defaults. Everything else
// falls back to a JSON body with a detail field.
type ErrorPages struct {
	engine   template.TemplateRenderer
	renderer *html.Renderer
	defaults template.TemplateRenderer
}

type ErrorPagesOption func(*ErrorPages)

// WithErrorTemplates sets the application engine consulted before the
// embedded default templates.
func WithErrorTemplates(engine template.TemplateRenderer) ErrorPagesOption {
	return func(p *ErrorPages) {
		p.engine = engine
	}
}

// WithErrorRenderer sets the renderer used when a TemplateError carries a
// component instead of a template name.
func WithErrorRenderer(r *html.Renderer) ErrorPagesOption {
	return func(p *ErrorPages) {
		p.renderer = r
	}
}

// NewErrorPages builds an ErrorPages with the embedded default templates.
func NewErrorPages(options ...ErrorPagesOption) (*ErrorPages, error) {
	defaults, err := gotemplate.New(gotemplate.WithFS(html.TemplatesFS()))
	if err != nil {
		return nil, err
	}

	pages := &ErrorPages{defaults: defaults}
	for _, option := range options {
		if option != nil {
			option(pages)
		}
	}

	if pages.renderer == nil {
		if r, err := html.New(); err == nil {
			pages.renderer = r
		}
	}

	return pages, nil
}

// Respond writes err to w. HTML requests get a templated fragment for 4xx
// statuses; other requests, 5xx statuses, and template misses get JSON.
func (p *ErrorPages) Respond(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := "Internal Server Error"

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode()
		detail = httpErr.Error()
	}

	if negotiate.IsHTML(r) && status >= 400 && status < 500 {
		if p.respondHTML(w, r, err, status, detail) {
			return
		}
	}

	p.respondJSON(w, err, status, detail)
}

func (p *ErrorPages) respondHTML(w http.ResponseWriter, r *http.Request, err error, status int, detail string) bool {
	var tplErr *TemplateError
	if errors.As(err, &tplErr) {
		return p.respondTemplateError(w, r, tplErr, status)
	}

	retarget, reswap := "", ""
	ctx := map[string]any{
		"status_code": status,
		"status_text": statusText(status),
		"detail":      detail,
	}

	name := "StatusError"
	var valErr *forms.ValidationError
	if errors.As(err, &valErr) {
		name = "ValidationError"
		ctx["errors"] = valErr.Details
		retarget, reswap = ValidationRetarget, ValidationReswap
	} else if n := errorTemplateName(err); n != "" {
		name = n
	}

	body, ok := p.renderChain(r, name, ctx)
	if !ok {
		return false
	}

	writeHTMLError(w, status, body, retarget, reswap)
	return true
}

func (p *ErrorPages) respondTemplateError(w http.ResponseWriter, r *http.Request, tplErr *TemplateError, status int) bool {
	ctx := map[string]any{
		"status_code": status,
		"status_text": statusText(status),
		"detail":      tplErr.Error(),
	}

	var body string
	switch {
	case tplErr.Component != nil:
		if p.renderer == nil {
			return false
		}
		out, err := p.renderer.Render(r.Context(), tplErr.Component, render.Options{Variant: tplErr.Variant})
		if err != nil {
			return false
		}
		body = string(out)
	case tplErr.Template != "":
		name := tplErr.Template
		if tplErr.Variant != "" {
			if out, ok := p.renderChain(r, name+"."+tplErr.Variant, ctx); ok {
				writeHTMLError(w, status, out, tplErr.Retarget, tplErr.Reswap)
				return true
			}
		}
		out, ok := p.renderChain(r, name, ctx)
		if !ok {
			return false
		}
		body = out
	default:
		out, ok := p.renderChain(r, "StatusError", ctx)
		if !ok {
			return false
		}
		body = out
	}

	writeHTMLError(w, status, body, tplErr.Retarget, tplErr.Reswap)
	return true
}

// renderChain resolves name through the application engine, a generic
// StatusError template there, then the embedded defaults.
func (p *ErrorPages) renderChain(r *http.Request, name string, ctx map[string]any) (string, bool) {
	ctx = mergeRequestContext(r, ctx)

	for _, engine := range []template.TemplateRenderer{p.engine, p.defaults} {
		if engine == nil {
			continue
		}
		if out, ok := tryRender(engine, name, ctx); ok {
			return out, true
		}
		if name != "StatusError" {
			if out, ok := tryRender(engine, "StatusError", ctx); ok {
				return out, true
			}
		}
	}
	return "", false
}

func (p *ErrorPages) respondJSON(w http.ResponseWriter, err error, status int, detail string) {
	payload := map[string]any{"detail": detail}

	var valErr *forms.ValidationError
	if errors.As(err, &valErr) {
		payload["detail"] = valErr.Details
	}

	body, encErr := json.Marshal(payload)
	if encErr != nil {
		http.Error(w, detail, status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func tryRender(engine template.TemplateRenderer, name string, ctx map[string]any) (string, bool) {
	if finder, ok := engine.(template.Finder); ok && !finder.HasTemplate(name) {
		return "", false
	}
	out, err := engine.RenderTemplate(name, ctx)
	if err != nil {
		return "", false
	}
	return out, true
}

func mergeRequestContext(r *http.Request, ctx map[string]any) map[string]any {
	merged := render.TemplateContext(r.Context())
	if len(merged) == 0 {
		return ctx
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return merged
}

func writeHTMLError(w http.ResponseWriter, status int, body, retarget, reswap string) {
	if retarget != "" {
		w.Header().Set("HX-Retarget", retarget)
	}
	if reswap != "" {
		w.Header().Set("HX-Reswap", reswap)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

var defaultErrorPages atomic.Pointer[ErrorPages]

// SetDefaultErrorPages installs the package-wide error pages used by handlers
// that were not given their own via WithErrorPages.
func SetDefaultErrorPages(pages *ErrorPages) {
	defaultErrorPages.Store(pages)
}

// DefaultErrorPages returns the package-wide error pages, building one with
// the embedded templates on first use.
func DefaultErrorPages() *ErrorPages {
	if pages := defaultErrorPages.Load(); pages != nil {
		return pages
	}
	pages, err := NewErrorPages()
	if err != nil {
		pages = &ErrorPages{}
	}
	defaultErrorPages.CompareAndSwap(nil, pages)
	return defaultErrorPages.Load()
}

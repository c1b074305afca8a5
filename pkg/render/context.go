package render

import (
	"context"
	"sync/atomic"
)

// ContextProvider supplies values merged into every template context, for
// application-wide data such as the current user or URL helpers.
type ContextProvider func(ctx context.Context) map[string]any

type providerKey struct{}

var globalProvider atomic.Pointer[ContextProvider]

// SetContextProvider installs a process-wide context provider. Passing nil
// clears it. Request-scoped providers installed with WithContextProvider are
// merged on top of it.
func SetContextProvider(provider ContextProvider) {
	if provider == nil {
		globalProvider.Store(nil)
		return
	}
	globalProvider.Store(&provider)
}

// WithContextProvider returns a context carrying a request-scoped provider.
// The HTTP adapter's ContextMiddleware installs one per request.
func WithContextProvider(ctx context.Context, provider ContextProvider) context.Context {
	if provider == nil {
		return ctx
	}
	return context.WithValue(ctx, providerKey{}, provider)
}

// TemplateContext collects provider values for a render: the process-wide
// provider first, then the request-scoped one, later keys winning.
func TemplateContext(ctx context.Context) map[string]any {
	out := make(map[string]any)
	if p := globalProvider.Load(); p != nil {
		for key, value := range (*p)(ctx) {
			out[key] = value
		}
	}
	if ctx != nil {
		if p, ok := ctx.Value(providerKey{}).(ContextProvider); ok && p != nil {
			for key, value := range p(ctx) {
				out[key] = value
			}
		}
	}
	return out
}

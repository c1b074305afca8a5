package httpview

import (
	"context"
	"net/http"

	"github.com/goliatone/go-hyperview/pkg/render"
)

// Mux is the subset of http.ServeMux (and chi.Router) used to mount routes.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Route pairs a pattern with a handler function and its adapter options.
type Route struct {
	Pattern string
	Handler HandlerFunc
	Options []OptionFn
}

// RegisterRoutes mounts each route on the mux wrapped in the adapter.
func RegisterRoutes(mux Mux, routes []Route) {
	for _, route := range routes {
		mux.Handle(route.Pattern, Handler(route.Handler, route.Options...))
	}
}

// ContextMiddleware installs a request-scoped template context provider, so
// values derived from the request (current user, CSRF token, flash messages)
// reach every template rendered downstream.
func ContextMiddleware(provider func(r *http.Request) map[string]any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if provider != nil {
				req := r
				ctx := render.WithContextProvider(r.Context(), func(context.Context) map[string]any {
					return provider(req)
				})
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

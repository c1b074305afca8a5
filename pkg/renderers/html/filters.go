package html

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/render"
)

// Filters are process-global in pongo2, so each name is registered at most
// once and the renderer they delegate to is swappable afterwards. Names are
// tracked individually so a collision with a foreign filter surfaces on every
// call without blocking the names that did register.
var (
	filtersMu     sync.Mutex
	filtersOwned  = make(map[string]bool)
	filterTarget  atomic.Pointer[Renderer]
	filterContext = context.Background()
)

// RegisterFilters installs the component template filters and points them at
// r. Calling it again only retargets the filters:
//
//	variant       render a component (or list of components) with a named
//	              variant: {{ task|variant:"table" }}
//	render        render a component, a SafeHTML fragment, or an escaped
//	              string: {{ item|render }}
//	is_component  report whether a value is a component
func RegisterFilters(r *Renderer) error {
	if r == nil {
		return fmt.Errorf("html renderer: filters need a renderer")
	}
	filterTarget.Store(r)

	filtersMu.Lock()
	defer filtersMu.Unlock()

	for name, fn := range map[string]pongo2.FilterFunction{
		"variant":      filterVariant,
		"render":       filterRender,
		"is_component": filterIsComponent,
	} {
		if filtersOwned[name] {
			continue
		}
		if pongo2.FilterExists(name) {
			return fmt.Errorf("html renderer: filter %q already exists", name)
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return err
		}
		filtersOwned[name] = true
	}
	return nil
}

func filterVariant(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	variant := ""
	if param != nil {
		variant = param.String()
	}
	out, err := renderFilterValue(in.Interface(), variant, false)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:variant", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

func filterRender(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	value := in.Interface()
	switch v := value.(type) {
	case nil:
		return pongo2.AsValue(""), nil
	case component.SafeHTML:
		return pongo2.AsSafeValue(string(v)), nil
	case string:
		// Plain strings stay subject to output escaping.
		return pongo2.AsValue(v), nil
	}
	switch value.(type) {
	case component.Component, []component.Component, []any:
	default:
		// Scalars pass through and get escaped like normal output.
		return in, nil
	}
	out, err := renderFilterValue(value, "", false)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:render", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

func filterIsComponent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(component.IsComponent(in.Interface())), nil
}

func renderFilterValue(value any, variant string, nested bool) (string, error) {
	switch v := value.(type) {
	case bound:
		return v.render(variant)
	case component.Component:
		r := filterTarget.Load()
		if r == nil {
			return "", fmt.Errorf("html renderer: filters are not registered")
		}
		return r.RenderComponent(filterContext, v, render.Options{Variant: variant})
	case []component.Component:
		return renderFilterSlice(anySlice(v), variant)
	case []any:
		return renderFilterSlice(v, variant)
	default:
		if nested {
			return "", fmt.Errorf("html renderer: cannot render %T as a component", value)
		}
		return "", fmt.Errorf("html renderer: filter input %T is not a component or component list", value)
	}
}

func renderFilterSlice(items []any, variant string) (string, error) {
	var out string
	for _, item := range items {
		rendered, err := renderFilterValue(item, variant, true)
		if err != nil {
			return "", err
		}
		out += rendered
	}
	return out, nil
}

func anySlice(components []component.Component) []any {
	out := make([]any, len(components))
	for i, c := range components {
		out[i] = c
	}
	return out
}

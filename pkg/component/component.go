package component

import (
	"context"
	"html"
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// Component marks a type as renderable through the convention-based template
// lookup. Embed Meta (directly or through another component) to satisfy it.
type Component interface {
	isComponent()
}

// TemplateNamer overrides the template base name derived from the concrete
// type. Components that do not implement it are resolved by type name.
type TemplateNamer interface {
	TemplateName() string
}

// TemplateFallbacker adds explicit fallback template names, tried after the
// component's own name and embedded-type chain.
type TemplateFallbacker interface {
	TemplateFallbacks() []string
}

// HTMLRenderer lets a component bypass template lookup and produce its own
// markup. The returned string is trusted as-is.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, variant string) (string, error)
}

// SafeHTML wraps a pre-rendered fragment so renderers emit it without
// escaping. Plain strings are always escaped.
type SafeHTML string

// Meta carries per-instance rendering metadata: arbitrary HTML attributes and
// CSS classes. Both are excluded from JSON serialization so API responses
// only expose the model's own fields.
type Meta struct {
	Attrs   map[string]string `json:"-"`
	Classes []string          `json:"-"`
}

func (Meta) isComponent() {}

// AddClass appends CSS classes, skipping duplicates.
func (m *Meta) AddClass(classes ...string) {
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" {
			continue
		}
		exists := false
		for _, have := range m.Classes {
			if have == class {
				exists = true
				break
			}
		}
		if !exists {
			m.Classes = append(m.Classes, class)
		}
	}
}

// SetAttr records an HTML attribute rendered into the component's root tag.
func (m *Meta) SetAttr(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if m.Attrs == nil {
		m.Attrs = make(map[string]string)
	}
	m.Attrs[name] = value
}

// AttributeString renders the metadata as an escaped attribute fragment,
// including a leading space when non-empty (e.g. ` class="a b" id="x"`).
// Class names merge the Classes slice with any literal class attribute.
func (m Meta) AttributeString() string {
	classes := append([]string{}, m.Classes...)
	names := make([]string, 0, len(m.Attrs))
	for name := range m.Attrs {
		if strings.EqualFold(name, "class") {
			classes = append(classes, strings.Fields(m.Attrs[name])...)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	if len(classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(strings.Join(classes, " ")))
		b.WriteString(`"`)
	}
	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(html.EscapeString(name))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(m.Attrs[name]))
		b.WriteString(`"`)
	}
	return b.String()
}

// IsComponent reports whether value satisfies Component. Registered as the
// is_component template filter.
func IsComponent(value any) bool {
	_, ok := value.(Component)
	return ok
}

// TemplateNames returns the lookup chain for a component: its own base name
// followed by the names of embedded component types, outermost first. The
// chain mirrors walking a class hierarchy; a component embedding Button is
// tried as its own name first, then as Button. Explicit TemplateFallbacker
// names close the chain.
func TemplateNames(c Component) []string {
	var names []string
	seen := make(map[string]struct{})

	appendName := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if namer, ok := c.(TemplateNamer); ok {
		appendName(namer.TemplateName())
	}

	t := reflect.TypeOf(c)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}

	var walk func(t reflect.Type)
	walk = func(t reflect.Type) {
		if t == metaType {
			return
		}
		appendName(t.Name())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.Anonymous {
				continue
			}
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() != reflect.Struct {
				continue
			}
			if isComponentType(ft) {
				walk(ft)
			}
		}
	}
	walk(t)

	if fb, ok := c.(TemplateFallbacker); ok {
		for _, name := range fb.TemplateFallbacks() {
			appendName(name)
		}
	}
	return names
}

var (
	metaType      = reflect.TypeOf(Meta{})
	componentType = reflect.TypeOf((*Component)(nil)).Elem()
)

func isComponentType(t reflect.Type) bool {
	return t == metaType || t.Implements(componentType) || reflect.PtrTo(t).Implements(componentType)
}

// Context flattens a component's exported fields into template variables,
// keyed by the json tag when present or the snake_case field name otherwise.
// Embedded component fields are flattened the way encoding/json promotes
// them. Nested Component values are passed through untouched so template
// filters can render them; everything else keeps its Go value. Meta surfaces
// as "attrs", "classes", and a pre-escaped "attributes" fragment.
func Context(c Component) map[string]any {
	ctx := make(map[string]any)
	v := reflect.ValueOf(c)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ctx
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ctx
	}
	collectFields(v, ctx)
	return ctx
}

func collectFields(v reflect.Value, ctx map[string]any) {
	t := v.Type()

	// Named fields first so outer fields shadow embedded ones regardless of
	// declaration order.
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous || field.PkgPath != "" {
			continue
		}
		key, skip := fieldKey(field)
		if skip {
			continue
		}
		if _, exists := ctx[key]; exists {
			continue
		}
		ctx[key] = v.Field(i).Interface()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous || field.PkgPath != "" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Type() == metaType {
			if _, exists := ctx["attributes"]; !exists {
				meta := fv.Interface().(Meta)
				ctx["attrs"] = meta.Attrs
				ctx["classes"] = meta.Classes
				ctx["attributes"] = meta.AttributeString()
			}
			continue
		}
		if fv.Kind() == reflect.Struct {
			collectFields(fv, ctx)
		}
	}
}

func fieldKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag, false
		}
	}
	return snakeCase(field.Name), false
}

func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

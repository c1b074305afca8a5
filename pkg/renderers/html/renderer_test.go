package html_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hyperview/pkg/component"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
)

type Card struct {
	component.Meta
	Title string `json:"title"`
}

type PromoCard struct {
	Card
	Badge string `json:"badge"`
}

func newRenderer(t *testing.T, files fstest.MapFS) *html.Renderer {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	renderer, err := html.New(html.WithEngine(engine))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return renderer
}

func TestRenderComponent_ByTypeName(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("<div>{{ title }}</div>")},
	})

	out, err := renderer.RenderComponent(context.Background(), Card{Title: "hello"}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<div>hello</div>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_VariantWinsOverBase(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html":         {Data: []byte("base")},
		"Card.compact.html": {Data: []byte("compact")},
	})

	out, err := renderer.RenderComponent(context.Background(), Card{}, render.Options{Variant: "compact"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "compact" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_MissingVariantFallsBack(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("base")},
	})

	out, err := renderer.RenderComponent(context.Background(), Card{}, render.Options{Variant: "compact"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "base" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_EmbeddedTypeFallback(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("{{ badge }} {{ title }}")},
	})

	promo := PromoCard{Card: Card{Title: "sale"}, Badge: "new"}
	out, err := renderer.RenderComponent(context.Background(), promo, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "new sale" {
		t.Fatalf("output mismatch: %q", out)
	}
}

type PartnerCard struct {
	component.Meta
	Title string `json:"title"`
}

func (PartnerCard) TemplateFallbacks() []string { return []string{"Card"} }

func TestRenderComponent_ExplicitFallbackNames(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("<div>{{ title }}</div>")},
	})

	out, err := renderer.RenderComponent(context.Background(), PartnerCard{Title: "acme"}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<div>acme</div>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_MissingTemplateErrNotFound(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{})

	_, err := renderer.RenderComponent(context.Background(), Card{}, render.Options{})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "Card") {
		t.Fatalf("expected tried names in error, got %v", err)
	}
}

func TestRenderComponent_SelfRendering(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{})

	out, err := renderer.RenderComponent(context.Background(), component.Break{}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<br>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_ContextProviderValues(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("{{ app }}: {{ title }}")},
	})

	ctx := render.WithContextProvider(context.Background(), func(context.Context) map[string]any {
		return map[string]any{"app": "demo"}
	})

	out, err := renderer.RenderComponent(ctx, Card{Title: "x"}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "demo: x" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderComponent_ExtraOverridesFields(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("{{ title }}")},
	})

	out, err := renderer.RenderComponent(context.Background(), Card{Title: "original"}, render.Options{
		Extra: map[string]any{"title": "override"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "override" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRender_ComponentSlice(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Card.html": {Data: []byte("[{{ title }}]")},
	})

	out, err := renderer.Render(context.Background(), []component.Component{
		Card{Title: "a"},
		Card{Title: "b"},
	}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "[a][b]" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRender_RejectsNonComponent(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{})

	if _, err := renderer.Render(context.Background(), 42, render.Options{}); err == nil {
		t.Fatal("expected error for non-component value")
	}
}

func TestFilters_RenderNestedComponents(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Deck.html": {Data: []byte("{% for card in cards %}{{ card|render }}{% endfor %}")},
		"Card.html": {Data: []byte("<li>{{ title }}</li>")},
	})
	if err := html.RegisterFilters(renderer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type Deck struct {
		component.Meta
		Cards []component.Component `json:"cards"`
	}

	deck := Deck{Cards: []component.Component{Card{Title: "one"}, Card{Title: "two"}}}
	out, err := renderer.RenderComponent(context.Background(), deck, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<li>one</li><li>two</li>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestFilters_RenderScalarContent(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Banner.html": {Data: []byte("<p>{{ body|render }}</p>")},
	})
	if err := html.RegisterFilters(renderer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type Banner struct {
		component.Meta
		Body any `json:"body"`
	}

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "nil", body: nil, want: "<p></p>"},
		{name: "number", body: 42, want: "<p>42</p>"},
		{name: "escaped string", body: "<b>hi</b>", want: "<p>&lt;b&gt;hi&lt;/b&gt;</p>"},
		{name: "safe html", body: component.SafeHTML("<b>hi</b>"), want: "<p><b>hi</b></p>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := renderer.RenderComponent(context.Background(), Banner{Body: tc.body}, render.Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tc.want {
				t.Fatalf("output mismatch: %q", out)
			}
		})
	}
}

func TestRegisterFilters_Retargets(t *testing.T) {
	first := newRenderer(t, fstest.MapFS{
		"Deck.html": {Data: []byte("{{ card|render }}")},
		"Card.html": {Data: []byte("first")},
	})
	if err := html.RegisterFilters(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newRenderer(t, fstest.MapFS{
		"Deck.html": {Data: []byte("{{ card|render }}")},
		"Card.html": {Data: []byte("second")},
	})
	if err := html.RegisterFilters(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type Deck struct {
		component.Meta
		Card component.Component `json:"card"`
	}

	out, err := second.RenderComponent(context.Background(), Deck{Card: Card{}}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "second" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestFilters_VariantSelection(t *testing.T) {
	renderer := newRenderer(t, fstest.MapFS{
		"Deck.html":      {Data: []byte("{{ card|variant:\"mini\" }}")},
		"Card.html":      {Data: []byte("full")},
		"Card.mini.html": {Data: []byte("mini")},
	})
	if err := html.RegisterFilters(renderer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type Deck struct {
		component.Meta
		Card component.Component `json:"card"`
	}

	out, err := renderer.RenderComponent(context.Background(), Deck{Card: Card{}}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "mini" {
		t.Fatalf("output mismatch: %q", out)
	}
}

type stubSelector struct {
	selection *theme.Selection
}

func (s stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, nil
}

func TestRenderComponent_ThemeOverridesTemplate(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"Card.html":      {Data: []byte("plain")},
		"acme/Card.html": {Data: []byte("themed {{ theme.tokens.brand }}")},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	selector := stubSelector{selection: &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name:      "acme",
			Tokens:    map[string]string{"brand": "#123456"},
			Templates: map[string]string{"components.Card": "acme/Card"},
		},
	}}

	renderer, err := html.New(
		html.WithEngine(engine),
		html.WithThemeSelector(selector, "acme", ""),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := renderer.RenderComponent(context.Background(), Card{}, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "themed #123456" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestTemplatesFS_ContainsDefaults(t *testing.T) {
	fsys := html.TemplatesFS()
	for _, name := range []string{"Page.html", "FormInput.html", "StatusError.html", "ValidationError.html"} {
		if _, err := fsys.Open(name); err != nil {
			t.Fatalf("expected embedded template %s: %v", name, err)
		}
	}
}

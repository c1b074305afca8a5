package component_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hyperview/pkg/component"
)

type Article struct {
	component.Meta
	Title string `json:"title"`
	Words int    `json:"words"`
}

type FeaturedArticle struct {
	Article
	Pinned bool `json:"pinned"`
}

type NamedView struct {
	component.Meta
}

func (NamedView) TemplateName() string { return "Custom" }

func TestTemplateNames_WalksEmbeddedChain(t *testing.T) {
	names := component.TemplateNames(FeaturedArticle{})
	want := []string{"FeaturedArticle", "Article"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateNames_InputFallbackChain(t *testing.T) {
	names := component.TemplateNames(component.NewEmailInput("email", "Email"))
	want := []string{"EmailInput", "FormInput"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}
}

type FallbackArticle struct {
	Article
}

func (FallbackArticle) TemplateFallbacks() []string { return []string{"Card", "Article"} }

func TestTemplateNames_AppendsExplicitFallbacks(t *testing.T) {
	names := component.TemplateNames(FallbackArticle{})
	want := []string{"FallbackArticle", "Article", "Card"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateNames_PrefersTemplateNamer(t *testing.T) {
	names := component.TemplateNames(NamedView{})
	if len(names) == 0 || names[0] != "Custom" {
		t.Fatalf("expected Custom first, got %v", names)
	}
}

func TestContext_OuterFieldsShadowEmbedded(t *testing.T) {
	inner := Article{Title: "inner", Words: 10}
	outer := struct {
		Article
		Title string `json:"title"`
	}{Article: inner, Title: "outer"}

	ctx := component.Context(outer)
	if ctx["title"] != "outer" {
		t.Fatalf("expected outer title to win, got %v", ctx["title"])
	}
	if ctx["words"] != 10 {
		t.Fatalf("expected embedded words to surface, got %v", ctx["words"])
	}
}

func TestContext_IncludesMetaAttributes(t *testing.T) {
	view := Article{Title: "hello"}
	view.AddClass("card", "card-wide")
	view.SetAttr("data-id", "42")

	ctx := component.Context(view)

	attrs, ok := ctx["attributes"].(string)
	if !ok {
		t.Fatalf("expected attributes string, got %T", ctx["attributes"])
	}
	for _, want := range []string{`class="card card-wide"`, `data-id="42"`} {
		if !strings.Contains(attrs, want) {
			t.Fatalf("attributes %q missing %q", attrs, want)
		}
	}
}

func TestAttributeString_EscapesValues(t *testing.T) {
	meta := component.Meta{}
	meta.SetAttr("title", `a "quoted" <value>`)

	attrs := meta.AttributeString()
	if strings.Contains(attrs, `"quoted"`) {
		t.Fatalf("expected escaped quotes in %q", attrs)
	}
	if strings.Contains(attrs, "<value>") {
		t.Fatalf("expected escaped angle brackets in %q", attrs)
	}
}

func TestNewHeading_ClampsLevel(t *testing.T) {
	if got := component.NewHeading("hi", 0).Level; got != 1 {
		t.Fatalf("expected level 1, got %d", got)
	}
	if got := component.NewHeading("hi", 9).Level; got != 5 {
		t.Fatalf("expected level 5, got %d", got)
	}
}

func TestNewDiv_RejectsNonRenderableItems(t *testing.T) {
	if _, err := component.NewDiv("text", component.Break{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := component.NewDiv(42); err == nil {
		t.Fatal("expected error for int item")
	}
}

func TestNewSelectInput_Validate(t *testing.T) {
	sel := component.NewSelectInput("color", "Color",
		component.InputOption{Value: "red", Label: "Red"},
		component.InputOption{Value: "blue", Label: "Blue"},
	)
	sel.Selected = "green"
	if err := sel.Validate(); err == nil {
		t.Fatal("expected error for unknown selected value")
	}

	sel.Selected = "blue"
	if err := sel.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsComponent(t *testing.T) {
	if !component.IsComponent(Article{}) {
		t.Fatal("expected Article to be a component")
	}
	if component.IsComponent("nope") {
		t.Fatal("expected string to not be a component")
	}
}

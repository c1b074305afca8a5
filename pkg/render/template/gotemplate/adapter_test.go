package gotemplate_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-hyperview/pkg/render/template"
	"github.com/goliatone/go-hyperview/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, files fstest.MapFS, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	opts := append([]gotemplate.Option{gotemplate.WithFS(files)}, options...)
	engine, err := gotemplate.New(opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func TestRenderTemplate_AppendsExtension(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"Greeting.html": {Data: []byte("Hello {{ name }}!")},
	})

	out, err := engine.RenderTemplate("Greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello Ada!" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRenderTemplate_EscapesByDefault(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"Value.html": {Data: []byte("{{ value }}")},
	})

	out, err := engine.RenderTemplate("Value", map[string]any{"value": "<b>bold</b>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
}

func TestRenderTemplate_MissingWrapsErrNotFound(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{})

	_, err := engine.RenderTemplate("Nope", nil)
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHasTemplate(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"Task.html":       {Data: []byte("task")},
		"Task.table.html": {Data: []byte("row")},
	})

	if !engine.HasTemplate("Task") {
		t.Fatal("expected Task to resolve")
	}
	if !engine.HasTemplate("Task.table") {
		t.Fatal("expected Task.table to resolve")
	}
	if engine.HasTemplate("Task.card") {
		t.Fatal("expected Task.card to be missing")
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{})

	out, err := engine.RenderString("{{ a }} + {{ b }}", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1 + 2" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRender_DetectsInlineContent(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"Plain.html": {Data: []byte("from file")},
	})

	out, err := engine.Render("Plain", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from file" {
		t.Fatalf("output mismatch: %q", out)
	}

	out, err = engine.Render("inline {{ x }}", map[string]any{"x": "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "inline y" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"App.html": {Data: []byte("{{ app_name }}")},
	})

	if err := engine.GlobalContext(map[string]any{"app_name": "demo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := engine.RenderTemplate("App", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "demo" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"Shout.html": {Data: []byte("{{ word|shout }}")},
	})

	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := engine.RenderTemplate("Shout", map[string]any{"word": "hey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "HEY" {
		t.Fatalf("output mismatch: %q", out)
	}

	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return input, nil
	}); err == nil {
		t.Fatal("expected duplicate filter error")
	}
}

func TestRenderTemplate_StructContext(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"User.html": {Data: []byte("{{ name }} <{{ email }}>")},
	})

	out, err := engine.RenderTemplate("User", struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Ada <ada@example.com>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hyperview/pkg/forms"
	"github.com/goliatone/go-hyperview/pkg/render"
	"github.com/goliatone/go-hyperview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-hyperview/pkg/renderers/html"
)

func main() {
	templateName := flag.String("template", "", "template to render, e.g. Heading or Task.table")
	variant := flag.String("variant", "", "template variant suffix")
	templatesDir := flag.String("templates", "", "application templates directory (embedded defaults if empty)")
	dataPath := flag.String("data", "", "YAML or JSON context file")
	schemaPath := flag.String("schema", "", "render a form built from this JSON Schema file")
	route := flag.String("route", "/submit", "form action route used with -schema")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for context values")
	flag.Parse()

	var engineOpts []gotemplate.Option
	if *templatesDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(*templatesDir))
	}

	renderer, err := html.New(html.WithEngineOptions(engineOpts...))
	if err != nil {
		log.Fatalf("Failed to configure renderer: %v", err)
	}
	if err := html.RegisterFilters(renderer); err != nil {
		log.Fatalf("Failed to register filters: %v", err)
	}

	var body string
	if *schemaPath != "" {
		body, err = renderSchema(renderer, *schemaPath, *route, *variant)
	} else if *templateName != "" {
		body, err = renderTemplate(renderer, *templateName, *dataPath, *interactive)
	} else {
		log.Fatal("either -template or -schema is required")
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(body), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Preview written to %s\n", *output)
	} else {
		fmt.Println(body)
	}
}

func renderSchema(renderer *html.Renderer, path, route, variant string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	schema, err := forms.LoadSchema(raw)
	if err != nil {
		return "", err
	}
	form, err := forms.BuildForm(schema, route)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(context.Background(), form, render.Options{Variant: variant})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func renderTemplate(renderer *html.Renderer, name, dataPath string, interactive bool) (string, error) {
	data, err := loadContext(dataPath, interactive)
	if err != nil {
		return "", err
	}
	return renderer.Engine().RenderTemplate(name, data)
}

func loadContext(dataPath string, interactive bool) (map[string]any, error) {
	data := map[string]any{}
	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", dataPath, err)
		}
	}
	if !interactive {
		return data, nil
	}

	for {
		key := ""
		if err := survey.AskOne(&survey.Input{Message: "Context key (empty to finish):"}, &key); err != nil {
			return nil, err
		}
		if key == "" {
			return data, nil
		}
		value := ""
		if err := survey.AskOne(&survey.Input{Message: fmt.Sprintf("Value for %q:", key)}, &value); err != nil {
			return nil, err
		}
		data[key] = value
	}
}

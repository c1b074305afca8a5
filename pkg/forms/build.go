package forms

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-hyperview/pkg/component"
)

// FormOption configures BuildForm output.
type FormOption func(*formConfig)

type formConfig struct {
	id     string
	verb   component.Verb
	submit string
}

// WithFormID sets the id attribute of the generated form.
func WithFormID(id string) FormOption {
	return func(cfg *formConfig) {
		cfg.id = id
	}
}

// WithFormVerb overrides the submission verb (default post).
func WithFormVerb(verb component.Verb) FormOption {
	return func(cfg *formConfig) {
		if verb != "" {
			cfg.verb = verb
		}
	}
}

// WithSubmitLabel sets the submit control's label.
func WithSubmitLabel(label string) FormOption {
	return func(cfg *formConfig) {
		cfg.submit = label
	}
}

// BuildForm derives a form component from an object schema: one input per
// property (in sorted property order), a line break after each, and a submit
// control. The control type follows the property's type and format; enums
// become selects.
func BuildForm(schema *openapi3.Schema, route string, options ...FormOption) (component.Form, error) {
	if schema == nil {
		return component.Form{}, fmt.Errorf("forms: schema is required")
	}
	if !schema.Type.Is(openapi3.TypeObject) && len(schema.Properties) == 0 {
		return component.Form{}, fmt.Errorf("forms: schema must describe an object with properties")
	}

	cfg := formConfig{verb: component.VerbPost, submit: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]component.Component, 0, 2*len(names)+1)
	for _, name := range names {
		input := inputFor(name, schema.Properties[name].Value)
		if _, ok := required[name]; !ok {
			input = optional(input)
		}
		items = append(items, input, component.Break{})
	}
	items = append(items, component.NewSubmitButton(cfg.submit))

	return component.Form{
		ID:    cfg.id,
		Verb:  cfg.verb,
		Route: route,
		Items: items,
	}, nil
}

func inputFor(name string, prop *openapi3.Schema) component.Component {
	label := labelFor(name, prop)
	if prop == nil {
		return component.NewTextInput(name, label)
	}

	if len(prop.Enum) > 0 {
		options := make([]component.InputOption, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			text := fmt.Sprint(value)
			options = append(options, component.InputOption{Value: text, Label: text})
		}
		return component.NewSelectInput(name, label, options...)
	}

	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		return component.NewCheckboxInput(name, label)
	case prop.Type.Is(openapi3.TypeInteger), prop.Type.Is(openapi3.TypeNumber):
		return component.NewNumberInput(name, label)
	}

	switch prop.Format {
	case "email":
		return component.NewEmailInput(name, label)
	case "password":
		return component.NewPasswordInput(name, label)
	}
	return component.NewTextInput(name, label)
}

func labelFor(name string, prop *openapi3.Schema) string {
	if prop != nil && prop.Title != "" {
		return prop.Title
	}
	return name
}

// optional clears the required flag on any of the generated input kinds.
func optional(c component.Component) component.Component {
	switch input := c.(type) {
	case component.TextInput:
		input.Required = false
		return input
	case component.EmailInput:
		input.Required = false
		return input
	case component.PasswordInput:
		input.Required = false
		return input
	case component.NumberInput:
		input.Required = false
		return input
	case component.SelectInput:
		input.Required = false
		return input
	case component.CheckboxInput:
		input.Required = false
		return input
	case component.RadioInput:
		input.Required = false
		return input
	default:
		return c
	}
}

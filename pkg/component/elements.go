package component

import (
	"context"
	"fmt"
)

// Target selects the browsing context an Anchor opens in.
type Target string

const (
	TargetSameFrame   Target = "_self"
	TargetNewWindow   Target = "_blank"
	TargetParentFrame Target = "_parent"
	TargetFullBody    Target = "_top"
)

// Verb is the HTTP method a Button or Form submits with.
type Verb string

const (
	VerbGet    Verb = "get"
	VerbPost   Verb = "post"
	VerbPut    Verb = "put"
	VerbPatch  Verb = "patch"
	VerbDelete Verb = "delete"
)

// Page is a full-document wrapper around a list of child components.
type Page struct {
	Meta
	Title   string      `json:"title"`
	Content []Component `json:"content"`
}

// Heading renders an h1..h5 element. Level is clamped into that range.
type Heading struct {
	Meta
	Content any `json:"content"`
	Level   int `json:"level"`
}

// NewHeading builds a Heading with the level clamped to 1..5.
func NewHeading(content any, level int) Heading {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return Heading{Content: content, Level: level}
}

// Paragraph renders a p element around a string or nested component.
type Paragraph struct {
	Meta
	Content any `json:"content"`
}

// Break renders a line break without a template.
type Break struct {
	Meta
}

func (Break) RenderHTML(context.Context, string) (string, error) {
	return "<br>", nil
}

// Anchor renders a link to route.
type Anchor struct {
	Meta
	Route   string `json:"route"`
	Content any    `json:"content"`
	Target  Target `json:"target"`
}

// Button renders a button that issues verb against route when activated.
type Button struct {
	Meta
	Route   string `json:"route"`
	Content any    `json:"content"`
	Verb    Verb   `json:"verb"`
}

// Image renders an img element for source.
type Image struct {
	Meta
	Source string `json:"source"`
}

// Div groups items inside a div element. Items may be strings (escaped),
// SafeHTML fragments, or nested components.
type Div struct {
	Meta
	Items []any `json:"items"`
}

// Span groups items inside a span element.
type Span struct {
	Meta
	Items []any `json:"items"`
}

// List renders items as an unordered list.
type List struct {
	Meta
	Items []any `json:"items"`
}

// NewDiv wraps items in a Div, rejecting values that are neither strings,
// SafeHTML, nor components.
func NewDiv(items ...any) (Div, error) {
	checked, err := checkItems(items)
	if err != nil {
		return Div{}, err
	}
	return Div{Items: checked}, nil
}

// NewSpan wraps items in a Span with the same item rules as NewDiv.
func NewSpan(items ...any) (Span, error) {
	checked, err := checkItems(items)
	if err != nil {
		return Span{}, err
	}
	return Span{Items: checked}, nil
}

// NewList wraps items in a List with the same item rules as NewDiv.
func NewList(items ...any) (List, error) {
	checked, err := checkItems(items)
	if err != nil {
		return List{}, err
	}
	return List{Items: checked}, nil
}

func checkItems(items []any) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch item.(type) {
		case string, SafeHTML, Component:
			out = append(out, item)
		default:
			return nil, fmt.Errorf("component: item must be a string or component, got %T", item)
		}
	}
	return out, nil
}

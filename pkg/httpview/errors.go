package httpview

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/goliatone/go-hyperview/pkg/component"
)

// HTTPError is implemented by errors that carry an HTTP status. The error
// pipeline uses it to pick the response status and, for 4xx statuses on HTML
// requests, an error template named after the error's type.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is the general-purpose HTTP error. Handlers return it (or wrap
// one) to control the response status and detail message.
type StatusError struct {
	Code   int
	Detail string
	Err    error
}

// NewStatusError builds a StatusError with the given status and detail.
func NewStatusError(code int, detail string) StatusError {
	return StatusError{Code: code, Detail: detail}
}

func (e StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// HTMLOnlyError reports a non-HTML request against a route configured with
// HTMLOnly.
type HTMLOnlyError struct{}

func (HTMLOnlyError) Error() string {
	return "this route only provides HTML responses; set an Accept header that includes text/html"
}

func (HTMLOnlyError) StatusCode() int {
	return http.StatusNotAcceptable
}

// NotRenderableError reports a handler result the HTML pipeline cannot turn
// into markup.
type NotRenderableError struct {
	Value any
}

func (e NotRenderableError) Error() string {
	return fmt.Sprintf("result must be a string, a component, or a slice of strings or components, not %T", e.Value)
}

func (NotRenderableError) StatusCode() int {
	return http.StatusInternalServerError
}

// TemplateError is an HTTP error carrying presentation hints: the component
// or template to render, the template variant, and htmx retargeting headers
// (HX-Retarget/HX-Reswap) directing where the fragment lands.
type TemplateError struct {
	Code      int
	Detail    string
	Component component.Component
	Template  string
	Variant   string
	Retarget  string
	Reswap    string
	Err       error
}

func (e *TemplateError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e *TemplateError) Unwrap() error { return e.Err }

func (e *TemplateError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// errorTemplateName derives the convention-based template name from the
// error's concrete type, e.g. StatusError or ValidationError.
func errorTemplateName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// statusText mirrors the human-readable names used by the error templates.
// 422 reads as a validation failure rather than the wire phrase.
func statusText(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusMethodNotAllowed:
		return "Method Not Allowed"
	case http.StatusNotAcceptable:
		return "Not Acceptable"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusUnprocessableEntity:
		return "Validation Error"
	default:
		return "Error"
	}
}

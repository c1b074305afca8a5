package forms

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrorDetail is a single validation failure: the field location, a
// human-readable message, and the failed schema keyword.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// FieldPath joins the location into a dotted path without the payload
// wrapper segment, e.g. ["body","author","email"] becomes "author.email".
// Renderers key inline feedback by these paths.
func (d ErrorDetail) FieldPath() string {
	segments := d.Loc
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data":
			segments = segments[1:]
			continue
		}
		break
	}
	return strings.Join(segments, ".")
}

// ValidationError reports that a decoded payload failed schema validation.
// It carries a 422 status through the HTTP error pipeline.
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "forms: validation failed"
	}
	parts := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		if path := detail.FieldPath(); path != "" {
			parts = append(parts, path+": "+detail.Msg)
			continue
		}
		parts = append(parts, detail.Msg)
	}
	return "forms: validation failed: " + strings.Join(parts, "; ")
}

// StatusCode reports 422 so the HTTP adapter renders validation errors with
// the validation template and status.
func (e *ValidationError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// FieldErrors regroups the details by dotted field path, the shape renderers
// consume for inline feedback.
func (e *ValidationError) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(e.Details))
	for _, detail := range e.Details {
		path := detail.FieldPath()
		out[path] = append(out[path], detail.Msg)
	}
	return out
}

// Validate checks value against schema and returns a *ValidationError
// listing every failure, or nil when the value conforms.
func Validate(schema *openapi3.Schema, value any) error {
	if schema == nil {
		return fmt.Errorf("forms: schema is required")
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	details := collectDetails(err)
	if len(details) == 0 {
		details = []ErrorDetail{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
	return &ValidationError{Details: details}
}

func collectDetails(err error) []ErrorDetail {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var details []ErrorDetail
		for _, item := range multi {
			details = append(details, collectDetails(item)...)
		}
		return details
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		loc := []string{"body"}
		for _, segment := range schemaErr.JSONPointer() {
			loc = append(loc, pointerSegment(segment))
		}
		kind := schemaErr.SchemaField
		if kind == "" {
			kind = "value_error"
		}
		return []ErrorDetail{{Loc: loc, Msg: schemaErr.Reason, Type: kind}}
	}

	return []ErrorDetail{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
}

func pointerSegment(segment string) string {
	if _, err := strconv.Atoi(segment); err == nil {
		return segment
	}
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

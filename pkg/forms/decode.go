package forms

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const maxMultipartMemory = 32 << 20

// Decode flattens a request's form data into a map, keeping the first value
// per key. Use Bind when a schema is available; it coerces and validates.
func Decode(r *http.Request) (map[string]any, error) {
	values, err := formValues(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out, nil
}

// Bind decodes a request's form data, coerces the string values into the
// types the schema declares, and validates the result. It returns a
// *ValidationError when the payload does not satisfy the schema.
func Bind(r *http.Request, schema *openapi3.Schema) (map[string]any, error) {
	if schema == nil {
		return nil, fmt.Errorf("forms: schema is required")
	}
	values, err := formValues(r)
	if err != nil {
		return nil, err
	}

	payload := coerce(values, schema)
	if err := Validate(schema, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func formValues(r *http.Request) (map[string][]string, error) {
	if r == nil {
		return nil, fmt.Errorf("forms: request is required")
	}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("forms: parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("forms: parse form: %w", err)
	}
	return r.PostForm, nil
}

// coerce maps the flat string values a form submits into the JSON types the
// schema declares, so schema validation sees integers as numbers and
// unchecked checkboxes as false rather than missing.
func coerce(values map[string][]string, schema *openapi3.Schema) map[string]any {
	out := make(map[string]any, len(values))

	for name, ref := range schema.Properties {
		prop := ref.Value
		vals, present := values[name]

		if !present || len(vals) == 0 {
			if prop != nil && prop.Type.Is(openapi3.TypeBoolean) {
				out[name] = false
			}
			continue
		}
		if prop == nil {
			out[name] = vals[0]
			continue
		}

		if prop.Type.Is(openapi3.TypeArray) {
			var itemSchema *openapi3.Schema
			if prop.Items != nil {
				itemSchema = prop.Items.Value
			}
			items := make([]any, 0, len(vals))
			for _, raw := range vals {
				items = append(items, coerceScalar(raw, itemSchema))
			}
			out[name] = items
			continue
		}

		out[name] = coerceScalar(vals[0], prop)
	}

	// Keep extra submitted fields as strings so validation can reject them
	// when the schema forbids additional properties.
	for name, vals := range values {
		if _, known := out[name]; known {
			continue
		}
		if _, declared := schema.Properties[name]; declared {
			continue
		}
		if len(vals) > 0 {
			out[name] = vals[0]
		}
	}

	return out
}

func coerceScalar(raw string, schema *openapi3.Schema) any {
	if schema == nil {
		return raw
	}
	switch {
	case schema.Type.Is(openapi3.TypeInteger), schema.Type.Is(openapi3.TypeNumber):
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return parsed
		}
		return raw
	case schema.Type.Is(openapi3.TypeBoolean):
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "on", "1", "yes":
			return true
		case "false", "off", "0", "no", "":
			return false
		}
		return raw
	default:
		return raw
	}
}

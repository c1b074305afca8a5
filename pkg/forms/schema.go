package forms

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// LoadSchema parses a JSON or YAML document into an OpenAPI schema. YAML
// documents are converted through JSON so both formats share one code path.
func LoadSchema(data []byte) (*openapi3.Schema, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("forms: schema document is empty")
	}

	raw := data
	if !json.Valid(data) {
		var decoded map[string]any
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("forms: parse schema document: %w", err)
		}
		converted, err := json.Marshal(decoded)
		if err != nil {
			return nil, fmt.Errorf("forms: convert schema document: %w", err)
		}
		raw = converted
	}

	schema := &openapi3.Schema{}
	if err := schema.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("forms: decode schema: %w", err)
	}
	return schema, nil
}

// LoadSchemaFS reads and parses a schema file from fsys.
func LoadSchemaFS(fsys fs.FS, name string) (*openapi3.Schema, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("forms: read schema %q: %w", name, err)
	}
	return LoadSchema(data)
}

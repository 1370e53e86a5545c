package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "pricing_data.schema.json"

// catalogSchema describes the structure of a pricing document. Cross
// references (price keys against category values) are checked separately.
var catalogSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "object",
	"required": []any{"version", "products"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"products": map[string]any{
			"type":                 "object",
			"minProperties":        1,
			"additionalProperties": map[string]any{"$ref": "#/$defs/product"},
		},
	},
	"$defs": map[string]any{
		"product": map[string]any{
			"type":                 "object",
			"required":             []any{"name", "categories", "prices"},
			"additionalProperties": false,
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "minLength": 1},
				"categories": map[string]any{
					"type":                 "object",
					"propertyNames":        map[string]any{"enum": []any{"stock", "print"}},
					"additionalProperties": map[string]any{"$ref": "#/$defs/category"},
				},
				"prices": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type":                 "object",
						"minProperties":        1,
						"additionalProperties": map[string]any{"type": "number"},
					},
				},
			},
		},
		"category": map[string]any{
			"type":                 "object",
			"required":             []any{"name", "icon", "fields"},
			"additionalProperties": false,
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"icon": map[string]any{"type": "string"},
				"fields": map[string]any{
					"type":                 "object",
					"minProperties":        1,
					"additionalProperties": map[string]any{"$ref": "#/$defs/field"},
				},
			},
		},
		"field": map[string]any{
			"type":                 "object",
			"required":             []any{"values", "icon", "order"},
			"additionalProperties": false,
			"properties": map[string]any{
				"values": map[string]any{
					"type":        "array",
					"minItems":    1,
					"uniqueItems": true,
					"items":       map[string]any{"type": "string", "minLength": 1},
				},
				"icon":  map[string]any{"type": "string"},
				"order": map[string]any{"type": "integer", "minimum": 1},
			},
		},
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return compileSchema(catalogSchema)
})

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateSchema checks a decoded JSON value against the pricing document
// schema.
func ValidateSchema(v any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

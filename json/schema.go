package json

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonschema"
	"github.com/yaoapp/node-neo4j/types"
)

// Validator wraps a compiled JSON Schema
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a JSON Schema given as a map, a JSON string or bytes
//
// Usage:
//
//	validator, err := json.NewValidator(json.SchemaOf(fields))
//	if err != nil {
//	    return err
//	}
//	err = validator.Validate(arguments)
func NewValidator(schema interface{}) (*Validator, error) {
	var schemaBytes []byte
	var err error

	switch v := schema.(type) {
	case string:
		schemaBytes = []byte(v)
	case []byte:
		schemaBytes = v
	default:
		schemaBytes, err = jsoniter.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
	}

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(schemaBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON Schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate returns nil when data matches the schema, otherwise an error
// listing every failing field
func (v *Validator) Validate(data interface{}) error {
	result := v.schema.Validate(data)
	if result.IsValid() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	for field := range result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, result.Errors[field].Message))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// SchemaOf builds the JSON Schema of a resource mapper field list. Object
// fields also accept a JSON string, tool callers often send them encoded.
func SchemaOf(fields []types.Field) map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}

	for _, field := range fields {
		prop := map[string]interface{}{"description": field.DisplayName}
		switch field.Type {
		case types.FieldTypeObject:
			prop["type"] = []string{"object", "string"}
		case types.FieldTypeNumber:
			prop["type"] = []string{"number", "string"}
		case types.FieldTypeBoolean:
			prop["type"] = []string{"boolean", "string"}
		default:
			prop["type"] = "string"
		}
		properties[field.ID] = prop

		if field.Required {
			required = append(required, field.ID)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

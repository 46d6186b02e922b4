package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON Schema used to check data documents before they
// are decoded into typed structures.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles a JSON Schema document. name identifies the schema in
// error messages and must be unique per compiler.
func Compile(name string, data []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use it for schemas
// embedded in the binary.
func MustCompile(name string, data []byte) *Schema {
	s, err := Compile(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema resource name.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks doc against the schema. doc may come from either a JSON or
// a YAML decoder; it is normalized to JSON types first.
func (s *Schema) Validate(doc interface{}) *Result {
	result := &Result{Valid: true}

	normalized, err := Normalize(doc)
	if err != nil {
		result.AddError(&FieldError{
			Code:    ErrCodeInvalidJSON,
			Message: err.Error(),
		})
		return result
	}

	if err := s.schema.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			parseSchemaErrors(validationErr, result)
		} else {
			result.AddError(&FieldError{
				Code:    ErrCodeSchema,
				Message: err.Error(),
			})
		}
	}

	return result
}

// Normalize converts a decoded document into the value types produced by
// encoding/json, which is what the schema validator expects.
func Normalize(doc interface{}) (interface{}, error) {
	// Convert to JSON and back to ensure consistent types
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("document is not representable as JSON: %w", err)
	}

	var out interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// parseSchemaErrors extracts detailed errors from JSON Schema validation
func parseSchemaErrors(err *jsonschema.ValidationError, result *Result) {
	// Handle basic validation errors
	if len(err.Causes) == 0 {
		result.AddError(&FieldError{
			Field:   extractFieldFromPath(err.InstanceLocation),
			Code:    ErrCodeSchema,
			Message: err.Message,
		})
		return
	}

	// Recursively process causes
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, result)
	}
}

// extractFieldFromPath extracts field name from JSON Pointer path
func extractFieldFromPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	// Remove leading slash and convert JSON Pointer to dot notation
	path = strings.TrimPrefix(path, "/")
	path = strings.ReplaceAll(path, "/", ".")
	// Unescape JSON Pointer tokens
	path = strings.ReplaceAll(path, "~1", "/")
	path = strings.ReplaceAll(path, "~0", "~")
	return path
}

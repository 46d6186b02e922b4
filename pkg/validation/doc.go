// Package validation checks data documents against JSON Schema before they
// are decoded into typed structures.
//
// The catalog and token data files are embedded in the binary, but users can
// add catalog overlays from their own YAML files. Both go through the same
// schema check so that shape errors are reported with a field path instead of
// surfacing later as a confusing decode error.
//
// # Basic Usage
//
//	schema := validation.MustCompile("components.schema.json", schemaBytes)
//	result := schema.Validate(doc)
//	if err := result.Err(); err != nil {
//	    return err
//	}
package validation

package tooling

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// marshalFunc is the JSON marshaler used by GenerateSchema. Package-level so
// tests can inject a failing marshaler to cover the error return path.
var marshalFunc = func(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// GenerateSchema generates a JSON Schema string from a Go struct using
// invopop/jsonschema reflection. Fields without omitempty are required;
// additional properties are rejected.
func GenerateSchema(input interface{}) string {
	reflector := invopopSchema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(input)

	schemaBytes, err := marshalFunc(schema)
	if err != nil {
		return ""
	}
	return string(schemaBytes)
}

// ValidateAgainstSchema validates JSON input against a JSON Schema string.
// On constraint violations it returns a *ValidationError listing every
// offending field, not just the first one found.
func ValidateAgainstSchema(input json.RawMessage, schemaStr string) error {
	schema, err := jsonschema.CompileString("", schemaStr)
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	var inputData interface{}
	if err := json.Unmarshal(input, &inputData); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}

	if err := schema.Validate(inputData); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &ValidationError{Violations: collectViolations(ve)}
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// collectViolations flattens the validator's hierarchical output into one
// violation per failing constraint. Aggregator nodes ("doesn't validate
// with ...") are skipped; only leaf messages carry information.
func collectViolations(ve *jsonschema.ValidationError) []FieldViolation {
	out := ve.BasicOutput()
	violations := make([]FieldViolation, 0, len(out.Errors))
	for _, e := range out.Errors {
		if strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		violations = append(violations, FieldViolation{
			Path:   strings.TrimPrefix(e.InstanceLocation, "/"),
			Reason: e.Error,
		})
	}
	if len(violations) == 0 {
		violations = append(violations, FieldViolation{Reason: ve.Message})
	}
	return violations
}

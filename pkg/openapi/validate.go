package openapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// ErrInvalidPayload wraps every schema violation reported by Validate.
var ErrInvalidPayload = errors.New("openapi: payload does not match field schema")

// Validate checks a JSON object payload against the schema of def. All
// violations are reported, not only the first one.
func Validate(def *registry.Definition, payload []byte) error {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("openapi: decode %s payload: %w", def.Name(), err)
	}
	if err := SchemaFor(def).VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: field %s: %w", ErrInvalidPayload, def.Name(), err)
	}
	return nil
}

// ValidateField checks the JSON form of f. A field whose mandatory
// components are all present and well formed passes.
func ValidateField(f *field.Field) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("openapi: encode %s: %w", f.Name(), err)
	}
	return Validate(f.Definition(), payload)
}

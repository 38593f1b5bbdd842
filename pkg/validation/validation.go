// Package validation checks field values against their definitions. Field
// setters never validate; callers that want to know whether a value is well
// formed run one of these checks explicitly.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mtfield/pkg/coerce"
	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/pattern"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// Issue is one problem found in a field value. Component is 1-based and zero
// for problems with the value as a whole.
type Issue struct {
	Component int    `json:"component,omitempty"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Result collects the outcome of a check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// CheckField reports missing mandatory components and components whose
// content does not fit their slot or type tag.
func CheckField(f *field.Field) Result {
	result := Result{Valid: true}
	def := f.Definition()
	slots := def.Pattern().Components()
	for _, comp := range def.Components() {
		v, ok := f.Component(comp.Index)
		if !ok {
			if !comp.Optional {
				result.add(Issue{Component: comp.Index, Field: comp.Key, Message: "is required"})
			}
			continue
		}
		slot := slots[comp.Index-1]
		if !slot.Accept(v) {
			result.add(Issue{Component: comp.Index, Field: comp.Key, Message: fmt.Sprintf("%q does not match %s", v, slot.Notation())})
			continue
		}
		if comp.Type != pattern.TypeString {
			if _, ok := coerce.Parse(comp.Type, v); !ok {
				result.add(Issue{Component: comp.Index, Field: comp.Key, Message: fmt.Sprintf("%q is not a valid %s", v, comp.Type)})
			}
		}
	}
	return result
}

// CheckValue parses raw as a field of def and checks it. A value that does
// not read back identically, such as one with trailing text the pattern has
// no slot for, is reported as a whole-value issue.
func CheckValue(def *registry.Definition, raw string) Result {
	f := field.Parse(def, raw)
	result := CheckField(f)
	if canonical := normalizeEOL(raw); f.Value() != canonical {
		result.add(Issue{Message: fmt.Sprintf("value does not match %s", def.Pattern().Validator())})
	}
	return result
}

// IssuesFromError turns a schema validation error, as returned by
// openapi.Validate, into issues keyed by JSON property.
func IssuesFromError(err error) []Issue {
	if err == nil {
		return nil
	}
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, e := range multi {
			out = append(out, IssuesFromError(e)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}
	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}

func normalizeEOL(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

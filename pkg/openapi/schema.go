package openapi

import (
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mtfield/pkg/pattern"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

const (
	// ExtensionField carries the field tag on every exported schema.
	ExtensionField = "x-mtfield-name"
	// ExtensionIndex carries the 1-based component index on a property.
	ExtensionIndex = "x-mtfield-index"
	// ExtensionType carries the component type tag on a property.
	ExtensionType = "x-mtfield-type"
	// ExtensionAliases lists legacy keys accepted on decode.
	ExtensionAliases = "x-mtfield-aliases"
)

// SchemaName returns the component schema name used for def, e.g. "Field32A".
func SchemaName(def *registry.Definition) string {
	return "Field" + def.Name()
}

// SchemaFor builds the object schema of def. Mandatory components are
// required and every property carries the length and character set of its
// slot.
func SchemaFor(def *registry.Definition) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = SchemaName(def)
	schema.Description = def.Description()
	schema.Extensions = map[string]any{ExtensionField: def.Name()}

	slots := def.Pattern().Components()
	var required []string
	for _, comp := range def.Components() {
		prop := propertySchema(comp, slots[comp.Index-1])
		schema.WithProperty(comp.Key, prop)
		if !comp.Optional {
			required = append(required, comp.Key)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

func propertySchema(comp registry.Component, slot pattern.Component) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	prop.Title = comp.Label
	prop.Extensions = map[string]any{
		ExtensionIndex: comp.Index,
		ExtensionType:  comp.Type.String(),
	}
	if len(comp.Aliases) > 0 {
		prop.Extensions[ExtensionAliases] = append([]string(nil), comp.Aliases...)
	}

	lo := slot.Min
	if lo < 1 {
		lo = 1
	}
	prop.WithMinLength(int64(lo))
	if slot.Max > 0 {
		prop.WithMaxLength(int64(slot.Max))
	}
	prop.WithPattern(slotRegexp(slot))
	return prop
}

// slotRegexp renders the character set and width of a slot as an anchored
// regular expression.
func slotRegexp(slot pattern.Component) string {
	switch slot.Macro {
	case "SIGN":
		return `^[+-]$`
	case "DC":
		return `^(D|C|RD|RC)$`
	case "BIC":
		return `^[A-Z0-9]{8}([A-Z0-9]{3})?$`
	case "AMOUNT":
		return `^[0-9]*,[0-9]*$`
	}
	return "^" + classSet(slot.Class) + quantifier(slot) + "$"
}

func quantifier(slot pattern.Component) string {
	lo := slot.Min
	if lo < 1 {
		lo = 1
	}
	switch {
	case slot.Max > 0 && (slot.Fixed || lo == slot.Max):
		return "{" + strconv.Itoa(slot.Max) + "}"
	case slot.Max > 0:
		return fmt.Sprintf("{%d,%d}", lo, slot.Max)
	case lo > 1:
		return "{" + strconv.Itoa(lo) + ",}"
	default:
		return "+"
	}
}

func classSet(c pattern.Class) string {
	switch c {
	case pattern.ClassNumeric:
		return `[0-9]`
	case pattern.ClassAlpha:
		return `[A-Z]`
	case pattern.ClassAlnum:
		return `[A-Z0-9]`
	case pattern.ClassDecimal:
		return `[0-9,]`
	case pattern.ClassHex:
		return `[0-9A-F]`
	case pattern.ClassSpace:
		return `[ ]`
	case pattern.ClassX:
		return `[0-9A-Za-z/\-?:().,'+ ]`
	case pattern.ClassY:
		return `[0-9A-Z .,\-()/='+:?!"%&*<>;]`
	case pattern.ClassZ:
		return `[0-9A-Za-z/\-?:().,'+ =!"%&*<>;{@#_]`
	default:
		return `[^\r\n]`
	}
}

// Catalog exports every definition of reg keyed by SchemaName.
func Catalog(reg *registry.Registry) openapi3.Schemas {
	schemas := make(openapi3.Schemas, reg.Len())
	for _, def := range reg.Definitions() {
		schemas[SchemaName(def)] = openapi3.NewSchemaRef("", SchemaFor(def))
	}
	return schemas
}

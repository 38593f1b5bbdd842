package mtfield

import (
	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/pattern"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// Field aliases field.Field for callers that only import the root package.
type Field = field.Field

// Tag is the name/value pair a message container stores.
type Tag = field.Tag

// Definition aliases registry.Definition.
type Definition = registry.Definition

// UnknownFieldError aliases registry.UnknownFieldError.
type UnknownFieldError = registry.UnknownFieldError

var (
	ErrUnknownField      = registry.ErrUnknownField
	ErrInvalidDefinition = registry.ErrInvalidDefinition
	ErrInvalidPattern    = pattern.ErrInvalidPattern
	ErrInvalidArgument   = field.ErrInvalidArgument
)

// Lookup returns the definition of name from the embedded registry.
func Lookup(name string) (*Definition, error) {
	return registry.Lookup(name)
}

// New returns an empty field of the named tag.
func New(name string) (*Field, error) {
	def, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return field.New(def), nil
}

// Parse reads value as the named field. Only an unknown tag is an error;
// malformed values leave components absent.
func Parse(name, value string) (*Field, error) {
	def, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return field.Parse(def, value), nil
}

// FromTag parses a tag taken from a message container.
func FromTag(tag Tag) (*Field, error) {
	def, err := registry.Lookup(tag.Name)
	if err != nil {
		return nil, err
	}
	return field.FromTag(def, tag)
}

// Names lists the embedded field tags in order.
func Names() []string {
	return registry.Default().Names()
}

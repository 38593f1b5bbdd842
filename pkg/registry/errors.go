package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned (wrapped) when a field name has no row.
	ErrUnknownField = errors.New("registry: unknown field")
	// ErrInvalidDefinition is returned (wrapped) when a row cannot be compiled.
	ErrInvalidDefinition = errors.New("registry: invalid field definition")
)

// UnknownFieldError reports a lookup for a field name the registry does not
// hold.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("registry: unknown field %q", e.Name)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

func invalidf(name, source, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if source != "" {
		return fmt.Errorf("%w: field %q (file %s): %s", ErrInvalidDefinition, name, source, msg)
	}
	return fmt.Errorf("%w: field %q: %s", ErrInvalidDefinition, name, msg)
}

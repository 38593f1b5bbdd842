package field

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-mtfield/pkg/codec"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// ErrInvalidArgument reports a programming error: a component index out of
// range, a component vector of the wrong length or a tag for another field.
var ErrInvalidArgument = errors.New("field: invalid argument")

// Tag is the name/value pair a message container stores.
type Tag struct {
	Name  string
	Value string
}

// Field is one field instance.
type Field struct {
	def   *registry.Definition
	comps []*string
}

// New returns a field with every component absent.
func New(def *registry.Definition) *Field {
	if def == nil {
		panic(fmt.Errorf("%w: nil definition", ErrInvalidArgument))
	}
	return &Field{def: def, comps: make([]*string, def.Size())}
}

// Parse returns a field populated from raw. Malformed input never fails; the
// components that could not be read stay absent.
func Parse(def *registry.Definition, raw string) *Field {
	f := New(def)
	f.Parse(raw)
	return f
}

// FromComponents returns a field holding a copy of comps.
func FromComponents(def *registry.Definition, comps []*string) (*Field, error) {
	f := New(def)
	if len(comps) != len(f.comps) {
		return nil, fmt.Errorf("%w: field %s has %d components, got %d", ErrInvalidArgument, def.Name(), len(f.comps), len(comps))
	}
	for i, c := range comps {
		f.comps[i] = clone(c)
	}
	return f, nil
}

// FromTag parses the value of tag, which must name def's field.
func FromTag(def *registry.Definition, tag Tag) (*Field, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidArgument)
	}
	if registry.NormalizeName(tag.Name) != def.Name() {
		return nil, fmt.Errorf("%w: tag %q is not field %s", ErrInvalidArgument, tag.Name, def.Name())
	}
	return Parse(def, tag.Value), nil
}

// Parse replaces every component with the ones read from raw.
func (f *Field) Parse(raw string) {
	f.comps = codec.Tokenize(f.def.Pattern(), raw)
}

// Value serializes the components to the wire form.
func (f *Field) Value() string {
	return codec.Serialize(f.def.Pattern(), f.comps)
}

// Component returns component n (1-based) and whether it is present.
func (f *Field) Component(n int) (string, bool) {
	f.check(n)
	if f.comps[n-1] == nil {
		return "", false
	}
	return *f.comps[n-1], true
}

// SetComponent stores v as component n without validating it. An empty
// string clears the component, since absent and empty are the same on the
// wire.
func (f *Field) SetComponent(n int, v string) *Field {
	f.check(n)
	if v == "" {
		f.comps[n-1] = nil
		return f
	}
	f.comps[n-1] = &v
	return f
}

// ClearComponent marks component n absent.
func (f *Field) ClearComponent(n int) *Field {
	f.check(n)
	f.comps[n-1] = nil
	return f
}

// ComponentsSize returns the fixed component count.
func (f *Field) ComponentsSize() int { return len(f.comps) }

// IsOptional reports whether component n may be absent.
func (f *Field) IsOptional(n int) bool {
	f.check(n)
	return f.def.IsOptional(n)
}

// IsEmpty reports whether every component is absent.
func (f *Field) IsEmpty() bool {
	for _, c := range f.comps {
		if c != nil {
			return false
		}
	}
	return true
}

// Components returns a copy of the component vector.
func (f *Field) Components() []*string {
	out := make([]*string, len(f.comps))
	for i, c := range f.comps {
		out[i] = clone(c)
	}
	return out
}

// Copy returns an independent field with the same components.
func (f *Field) Copy() *Field {
	return &Field{def: f.def, comps: f.Components()}
}

// Definition returns the registry row the field is built from.
func (f *Field) Definition() *registry.Definition { return f.def }

// Name returns the field tag.
func (f *Field) Name() string { return f.def.Name() }

// Label returns the label of component n.
func (f *Field) Label(n int) string {
	f.check(n)
	return f.def.Label(n)
}

// Tag returns the name/value pair for a message container.
func (f *Field) Tag() Tag {
	return Tag{Name: f.def.Name(), Value: f.Value()}
}

func (f *Field) String() string {
	return ":" + f.def.Name() + ":" + f.Value()
}

func (f *Field) check(n int) {
	if n < 1 || n > len(f.comps) {
		panic(fmt.Errorf("%w: component %d out of range [1, %d] for field %s", ErrInvalidArgument, n, len(f.comps), f.def.Name()))
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package field

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-mtfield/pkg/registry"
)

// MarshalJSON writes a flat object keyed by the camelCase component labels,
// in component order. Absent components are omitted and legacy alias keys
// are never written.
func (f *Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, c := range f.comps {
		if c == nil {
			continue
		}
		key, _ := f.def.Key(i + 1)
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(*c)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the components with the ones named in data. Alias
// keys are applied first and canonical keys second, so a canonical key wins
// over an alias for the same component. Unknown keys are ignored. The field
// must already be bound to a definition (see New or Decode).
func (f *Field) UnmarshalJSON(data []byte) error {
	if f.def == nil {
		return fmt.Errorf("%w: field has no definition", ErrInvalidArgument)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("field: decode %s: %w", f.def.Name(), err)
	}

	comps := make([]*string, f.def.Size())
	for key, value := range raw {
		if n, ok := f.def.AliasIndex(key); ok {
			if err := assign(comps, n, key, value); err != nil {
				return err
			}
		}
	}
	for key, value := range raw {
		if n, ok := f.def.Index(key); ok {
			if err := assign(comps, n, key, value); err != nil {
				return err
			}
		}
	}
	f.comps = comps
	return nil
}

// Decode builds a field of def from its JSON object form.
func Decode(def *registry.Definition, data []byte) (*Field, error) {
	f := New(def)
	if err := f.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return f, nil
}

// assign accepts strings and numbers; null leaves the component absent.
func assign(comps []*string, n int, key string, value json.RawMessage) error {
	text := strings.TrimSpace(string(value))
	if text == "null" {
		comps[n-1] = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		var num json.Number
		if numErr := json.Unmarshal(value, &num); numErr != nil {
			return fmt.Errorf("field: key %q must be a string: %w", key, err)
		}
		s = num.String()
	}
	if s == "" {
		comps[n-1] = nil
		return nil
	}
	comps[n-1] = &s
	return nil
}

package registry

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/hashbidimap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

// Entry is one row of a registry file.
type Entry struct {
	Description string           `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Validator   string           `json:"validator,omitempty" yaml:"validator,omitempty" toml:"validator,omitempty"`
	Parser      string           `json:"parser" yaml:"parser" toml:"parser"`
	Components  []ComponentEntry `json:"components" yaml:"components" toml:"components"`
	Generic     *GenericEntry    `json:"generic,omitempty" yaml:"generic,omitempty" toml:"generic,omitempty"`
}

// ComponentEntry labels one component. Repeat expands the entry into that
// many components labelled "Label", "Label 2", "Label 3"... which keeps
// multi-line fields short to declare.
type ComponentEntry struct {
	Label   string   `json:"label" yaml:"label" toml:"label"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Repeat  int      `json:"repeat,omitempty" yaml:"repeat,omitempty" toml:"repeat,omitempty"`
}

// GenericEntry points at the 1-based component positions of a generic
// field. Zero means the field has no such component.
type GenericEntry struct {
	Qualifier            int `json:"qualifier,omitempty" yaml:"qualifier,omitempty" toml:"qualifier,omitempty"`
	DSS                  int `json:"dss,omitempty" yaml:"dss,omitempty" toml:"dss,omitempty"`
	ConditionalQualifier int `json:"conditionalQualifier,omitempty" yaml:"conditionalQualifier,omitempty" toml:"conditionalQualifier,omitempty"`
}

// Component is the resolved description of one field component.
type Component struct {
	Index    int
	Label    string
	Key      string
	Aliases  []string
	Type     pattern.Type
	Optional bool
}

// Definition is a compiled registry row. Definitions are immutable and
// shared by every field instance of that tag.
type Definition struct {
	name        string
	description string
	source      string
	entry       Entry
	pattern     *pattern.Pattern
	components  []Component
	generic     *GenericEntry

	keysOnce sync.Once
	keys     *hashbidimap.Map
	aliases  map[string]int
}

// NewDefinition compiles entry into the definition of field name.
func NewDefinition(name string, entry Entry) (*Definition, error) {
	return define(name, entry, "")
}

func define(name string, entry Entry, source string) (*Definition, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, invalidf(name, source, "empty field name")
	}

	p, err := pattern.Compile(entry.Validator, entry.Parser)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidDefinition, name, err)
	}

	labels, err := expandComponents(entry.Components)
	if err != nil {
		return nil, invalidf(name, source, "%v", err)
	}
	if len(labels) != p.Size() {
		return nil, invalidf(name, source, "%d component labels for %d components", len(labels), p.Size())
	}

	types := p.Types()
	overridden := false
	components := make([]Component, len(labels))
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		key := CamelKey(l.label)
		if key == "" {
			return nil, invalidf(name, source, "component %d has no usable label", i+1)
		}
		if prev, dup := seen[key]; dup {
			return nil, invalidf(name, source, "components %d and %d share key %q", prev, i+1, key)
		}
		seen[key] = i + 1
		if l.typ != "" {
			t, err := pattern.ParseType(l.typ)
			if err != nil {
				return nil, invalidf(name, source, "component %d: %v", i+1, err)
			}
			if t != types[i] {
				types[i] = t
				overridden = true
			}
		}
		components[i] = Component{
			Index:    i + 1,
			Label:    l.label,
			Key:      key,
			Aliases:  l.aliases,
			Type:     types[i],
			Optional: p.IsOptional(i + 1),
		}
	}
	if overridden {
		if p, err = p.WithTypes(types); err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidDefinition, name, err)
		}
	}

	var generic *GenericEntry
	if entry.Generic != nil {
		g := *entry.Generic
		for _, pos := range []int{g.Qualifier, g.DSS, g.ConditionalQualifier} {
			if pos < 0 || pos > p.Size() {
				return nil, invalidf(name, source, "generic component %d out of range", pos)
			}
		}
		generic = &g
	}

	return &Definition{
		name:        name,
		description: strings.TrimSpace(entry.Description),
		source:      source,
		entry:       cloneEntry(entry),
		pattern:     p,
		components:  components,
		generic:     generic,
	}, nil
}

type expandedLabel struct {
	label   string
	typ     string
	aliases []string
}

func expandComponents(entries []ComponentEntry) ([]expandedLabel, error) {
	var out []expandedLabel
	for i, e := range entries {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return nil, fmt.Errorf("component entry %d has an empty label", i+1)
		}
		if e.Repeat < 0 {
			return nil, fmt.Errorf("component %q has a negative repeat", label)
		}
		aliases := make([]string, 0, len(e.Aliases))
		for _, alias := range e.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}
		if e.Repeat <= 1 {
			out = append(out, expandedLabel{label: label, typ: e.Type, aliases: aliases})
			continue
		}
		for n := 1; n <= e.Repeat; n++ {
			l := expandedLabel{label: label, typ: e.Type}
			if n > 1 {
				l.label = label + " " + strconv.Itoa(n)
			} else {
				l.aliases = aliases
			}
			out = append(out, l)
		}
	}
	return out, nil
}

// Name returns the normalised field tag ("32A").
func (d *Definition) Name() string { return d.name }

// Description returns the human readable summary of the field.
func (d *Definition) Description() string { return d.description }

// Source names the file the row was loaded from, empty for rows built in
// code.
func (d *Definition) Source() string { return d.source }

// Pattern returns the compiled grammar.
func (d *Definition) Pattern() *pattern.Pattern { return d.pattern }

// Entry returns a copy of the row the definition was compiled from.
func (d *Definition) Entry() Entry { return cloneEntry(d.entry) }

// Size returns the component count.
func (d *Definition) Size() int { return len(d.components) }

// Component returns the component at 1-based index n.
func (d *Definition) Component(n int) (Component, bool) {
	if n < 1 || n > len(d.components) {
		return Component{}, false
	}
	c := d.components[n-1]
	c.Aliases = append([]string(nil), c.Aliases...)
	return c, true
}

// Components returns all components in order.
func (d *Definition) Components() []Component {
	out := make([]Component, len(d.components))
	for i := range d.components {
		out[i], _ = d.Component(i + 1)
	}
	return out
}

// Label returns the human label of component n, or "" when out of range.
func (d *Definition) Label(n int) string {
	c, _ := d.Component(n)
	return c.Label
}

// Key returns the camelCase JSON key of component n.
func (d *Definition) Key(n int) (string, bool) {
	d.buildKeys()
	key, ok := d.keys.GetKey(n)
	if !ok {
		return "", false
	}
	return key.(string), true
}

// Index resolves a canonical camelCase key to its 1-based component index.
func (d *Definition) Index(key string) (int, bool) {
	d.buildKeys()
	n, ok := d.keys.Get(key)
	if !ok {
		return 0, false
	}
	return n.(int), true
}

// AliasIndex resolves a legacy JSON key to its component index.
func (d *Definition) AliasIndex(alias string) (int, bool) {
	d.buildKeys()
	n, ok := d.aliases[alias]
	return n, ok
}

// Aliases returns the legacy keys accepted for component n.
func (d *Definition) Aliases(n int) []string {
	c, _ := d.Component(n)
	return c.Aliases
}

// IsOptional reports whether component n may be absent.
func (d *Definition) IsOptional(n int) bool {
	return d.pattern.IsOptional(n)
}

// Generic returns the generic field positions, if the field is generic.
func (d *Definition) Generic() (GenericEntry, bool) {
	if d.generic == nil {
		return GenericEntry{}, false
	}
	return *d.generic, true
}

// buildKeys is idempotent; the maps are derived from immutable components.
func (d *Definition) buildKeys() {
	d.keysOnce.Do(func() {
		keys := hashbidimap.New()
		aliases := make(map[string]int)
		for _, c := range d.components {
			keys.Put(c.Key, c.Index)
			for _, alias := range c.Aliases {
				aliases[alias] = c.Index
			}
		}
		d.keys = keys
		d.aliases = aliases
	})
}

// NormalizeName trims and upper-cases a field tag.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// CamelKey turns a component label into its JSON key: "D/C Mark" becomes
// "dCMark" and "Name And Address 2" becomes "nameAndAddress2".
func CamelKey(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	// Casers keep state, so each call gets its own pair.
	lower, title := cases.Lower(language.Und), cases.Title(language.Und)
	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(lower.String(word))
			continue
		}
		b.WriteString(title.String(word))
	}
	return b.String()
}

func cloneEntry(e Entry) Entry {
	out := e
	out.Components = make([]ComponentEntry, len(e.Components))
	for i, c := range e.Components {
		c.Aliases = append([]string(nil), c.Aliases...)
		out.Components[i] = c
	}
	if e.Generic != nil {
		g := *e.Generic
		out.Generic = &g
	}
	return out
}

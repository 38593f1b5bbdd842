package pattern

import (
	"strconv"
	"strings"
)

// Component describes one slot of a compiled pattern. Index is 1-based to
// match the public component accessors.
type Component struct {
	Index    int
	Type     Type
	Class    Class
	Min      int
	Max      int // 0 means unbounded
	Fixed    bool
	Free     bool
	Optional bool
	Macro    string
}

// Accept reports whether raw satisfies the component's width, class and macro
// constraints.
func (c Component) Accept(raw string) bool {
	n := len(raw)
	if n == 0 || n < c.Min {
		return false
	}
	if c.Max > 0 && n > c.Max {
		return false
	}
	if !c.Class.AllowsAll(raw) {
		return false
	}
	switch c.Macro {
	case "SIGN":
		return raw == "+" || raw == "-"
	case "DC":
		return raw == "D" || raw == "C" || raw == "RD" || raw == "RC"
	case "BIC":
		return n == 8 || n == 11
	case "AMOUNT":
		return strings.Count(raw, ",") == 1
	}
	return true
}

// Notation writes the slot back in pattern notation, e.g. "6!n", "35x" or
// "<AMOUNT>". Unbounded slots print their class alone.
func (c Component) Notation() string {
	if c.Macro != "" {
		return "<" + c.Macro + ">"
	}
	switch {
	case c.Max > 0 && (c.Fixed || c.Min == c.Max):
		return strconv.Itoa(c.Max) + "!" + c.Class.String()
	case c.Max > 0:
		return strconv.Itoa(c.Max) + c.Class.String()
	default:
		return c.Class.String()
	}
}

// TokenKind identifies a TokenSpec variant.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenSlice
	TokenFree
	TokenGroup
)

func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenSlice:
		return "slice"
	case TokenFree:
		return "free"
	case TokenGroup:
		return "group"
	default:
		return "unknown"
	}
}

// TokenSpec is one step of a pattern as written. Components lists the 1-based
// indexes the token produces (several for multi-line and repeated tokens).
type TokenSpec struct {
	Kind       TokenKind
	Source     string
	Literal    string
	Components []int
	Repeat     int
	Children   []TokenSpec
}

// String returns the pattern fragment this token was compiled from.
func (t TokenSpec) String() string {
	return t.Source
}

// StepKind identifies the variant of an expanded matcher step.
type StepKind int

const (
	StepLiteral StepKind = iota
	StepSlot
	StepGroup
)

// Step is an expanded instruction consumed by the tokenizer and serializer.
// Repeats and multi-line slots are unrolled so every Slot names exactly one
// component (0-based). Terminator is the literal immediately following a slot
// in document order, empty when a slot or the end of the pattern follows.
type Step struct {
	Kind       StepKind
	Literal    string
	Slot       int
	Terminator string
	Children   []Step
}

// Pattern is a compiled field grammar: an immutable value shared by every
// field instance of the same definition.
type Pattern struct {
	validator  string
	parser     string
	vtokens    []TokenSpec
	ptokens    []TokenSpec
	components []Component
	steps      []Step
}

// Validator returns the validator pattern source.
func (p *Pattern) Validator() string { return p.validator }

// Parser returns the parser pattern source.
func (p *Pattern) Parser() string { return p.parser }

// Tokens returns the parser pattern token tree.
func (p *Pattern) Tokens() []TokenSpec { return cloneTokens(p.ptokens) }

// ValidatorTokens returns the validator pattern token tree.
func (p *Pattern) ValidatorTokens() []TokenSpec { return cloneTokens(p.vtokens) }

// Steps returns the expanded matcher program. Callers must not mutate it.
func (p *Pattern) Steps() []Step { return p.steps }

// Size returns the component count.
func (p *Pattern) Size() int { return len(p.components) }

// Component returns the component at 1-based index n.
func (p *Pattern) Component(n int) (Component, bool) {
	if n < 1 || n > len(p.components) {
		return Component{}, false
	}
	return p.components[n-1], true
}

// Components returns a copy of all components in order.
func (p *Pattern) Components() []Component {
	return append([]Component(nil), p.components...)
}

// IsOptional reports whether component n sits inside an optional group.
func (p *Pattern) IsOptional(n int) bool {
	c, ok := p.Component(n)
	return ok && c.Optional
}

// Types returns the per-component type tags.
func (p *Pattern) Types() []Type {
	out := make([]Type, len(p.components))
	for i, c := range p.components {
		out[i] = c.Type
	}
	return out
}

// OptionalMask returns the per-component optionality flags.
func (p *Pattern) OptionalMask() []bool {
	out := make([]bool, len(p.components))
	for i, c := range p.components {
		out[i] = c.Optional
	}
	return out
}

// WithTypes returns a copy of the pattern with the supplied type tags. The
// receiver is left untouched so cached patterns stay shareable.
func (p *Pattern) WithTypes(types []Type) (*Pattern, error) {
	if len(types) != len(p.components) {
		return nil, &InvalidPatternError{
			Validator: p.validator,
			Parser:    p.parser,
			Reason:    "type tag count does not match component count",
		}
	}
	clone := *p
	clone.components = append([]Component(nil), p.components...)
	for i, t := range types {
		clone.components[i].Type = t
	}
	return &clone, nil
}

// String renders the parser pattern.
func (p *Pattern) String() string {
	return p.parser
}

func joinTokens(tokens []TokenSpec) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.Source)
	}
	return b.String()
}

func cloneTokens(tokens []TokenSpec) []TokenSpec {
	if tokens == nil {
		return nil
	}
	out := make([]TokenSpec, len(tokens))
	for i, token := range tokens {
		token.Components = append([]int(nil), token.Components...)
		token.Children = cloneTokens(token.Children)
		out[i] = token
	}
	return out
}

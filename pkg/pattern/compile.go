package pattern

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-mtfield/internal/grammar"
)

var cache sync.Map

// macroTypes maps macro names to their type tag. Macros not listed (SIGN, DC,
// ISIN) are plain strings.
var macroTypes = map[string]Type{
	"DATE2":  TypeDate2,
	"DATE4":  TypeDate4,
	"HHMM":   TypeTime2,
	"OFFSET": TypeTime2,
	"HHMMSS": TypeTime3,
	"CUR":    TypeCurrency,
	"AMOUNT": TypeDecimal,
	"BIC":    TypeBIC,
	"LT":     TypeLTAddress,
	"MIR":    TypeMIR,
	"MT":     TypeNumber,
}

// Compile builds the Pattern for a validator/parser pair. An empty validator
// reuses the parser pattern. Results are cached for the process lifetime;
// concurrent compilations of the same pair are harmless since the result is
// deterministic.
func Compile(validator, parser string) (*Pattern, error) {
	if strings.TrimSpace(parser) == "" {
		return nil, &InvalidPatternError{Validator: validator, Parser: parser, Reason: "parser pattern is required"}
	}
	if strings.TrimSpace(validator) == "" {
		validator = parser
	}

	key := validator + "\x00" + parser
	if cached, ok := cache.Load(key); ok {
		return cached.(*Pattern), nil
	}

	compiled, err := compile(validator, parser)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(key, compiled)
	return actual.(*Pattern), nil
}

// MustCompile is like Compile but panics on error. Intended for package level
// pattern tables.
func MustCompile(validator, parser string) *Pattern {
	p, err := Compile(validator, parser)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(validator, parser string) (*Pattern, error) {
	pnodes, err := grammar.Parse(parser)
	if err != nil {
		return nil, &InvalidPatternError{Validator: validator, Parser: parser, Reason: "malformed parser pattern", Err: err}
	}
	vnodes, err := grammar.Parse(validator)
	if err != nil {
		return nil, &InvalidPatternError{Validator: validator, Parser: parser, Reason: "malformed validator pattern", Err: err}
	}

	pexp := &expander{}
	ptokens, steps := pexp.expand(pnodes, false)
	vexp := &expander{}
	vtokens, _ := vexp.expand(vnodes, false)

	if len(pexp.slots) == 0 {
		return nil, &InvalidPatternError{Validator: validator, Parser: parser, Reason: "pattern declares no components"}
	}
	if len(pexp.slots) != len(vexp.slots) {
		return nil, &InvalidPatternError{
			Validator: validator,
			Parser:    parser,
			Reason:    fmt.Sprintf("validator declares %d components, parser declares %d", len(vexp.slots), len(pexp.slots)),
		}
	}
	if psig, vsig := pexp.sig.String(), vexp.sig.String(); psig != vsig {
		return nil, &InvalidPatternError{
			Validator: validator,
			Parser:    parser,
			Reason:    fmt.Sprintf("component ordering differs (%s vs %s)", vsig, psig),
		}
	}

	components := make([]Component, len(pexp.slots))
	for i := range pexp.slots {
		components[i] = merge(i, pexp.slots[i], vexp.slots[i])
	}
	assignTerminators(steps)

	return &Pattern{
		validator:  validator,
		parser:     parser,
		vtokens:    vtokens,
		ptokens:    ptokens,
		components: components,
		steps:      steps,
	}, nil
}

type slotInfo struct {
	node     grammar.Node
	optional bool
}

// expander unrolls repeats and multi-line slots, numbering components in
// document order. sig records the skeleton (literals, 'C' per component and
// brackets per optional group) used to compare validator and parser.
type expander struct {
	slots []slotInfo
	sig   strings.Builder
}

func (e *expander) addSlot(node grammar.Node, optional bool) int {
	e.slots = append(e.slots, slotInfo{node: node, optional: optional})
	e.sig.WriteByte('C')
	return len(e.slots) - 1
}

func (e *expander) expand(nodes []grammar.Node, optional bool) ([]TokenSpec, []Step) {
	var (
		tokens []TokenSpec
		steps  []Step
	)
	for _, node := range nodes {
		switch node.Kind {
		case grammar.NodeLiteral:
			e.sig.WriteString(node.Literal)
			tokens = append(tokens, TokenSpec{Kind: TokenLiteral, Source: node.Text, Literal: node.Literal})
			steps = append(steps, Step{Kind: StepLiteral, Literal: node.Literal})

		case grammar.NodeSlot:
			kind := TokenSlice
			if node.Letter != 0 {
				kind = TokenFree
			}
			token := TokenSpec{Kind: kind, Source: node.Text}

			first := e.addSlot(node, optional)
			token.Components = append(token.Components, first+1)
			steps = append(steps, Step{Kind: StepSlot, Slot: first})

			for line := 1; line < node.Lines; line++ {
				e.sig.WriteString("[$")
				idx := e.addSlot(node, true)
				e.sig.WriteString("]")
				token.Components = append(token.Components, idx+1)
				steps = append(steps, Step{
					Kind: StepGroup,
					Children: []Step{
						{Kind: StepLiteral, Literal: "$"},
						{Kind: StepSlot, Slot: idx},
					},
				})
			}
			tokens = append(tokens, token)

		case grammar.NodeGroup:
			token := TokenSpec{Kind: TokenGroup, Source: node.String(), Repeat: node.Repeat}
			reps := node.Repeat
			if reps < 1 {
				reps = 1
			}
			for r := 0; r < reps; r++ {
				e.sig.WriteByte('[')
				children, childSteps := e.expand(node.Children, true)
				e.sig.WriteByte(']')
				if r == 0 {
					token.Children = children
				}
				token.Components = append(token.Components, collectComponents(children, r > 0, childSteps)...)
				steps = append(steps, Step{Kind: StepGroup, Children: childSteps})
			}
			tokens = append(tokens, token)
		}
	}
	return tokens, steps
}

// collectComponents lists the 1-based component indexes of one expansion of a
// group. Repetitions after the first only exist as steps, so their indexes are
// read from the step tree.
func collectComponents(children []TokenSpec, fromSteps bool, steps []Step) []int {
	if fromSteps {
		var out []int
		walkSlots(steps, func(step *Step) {
			out = append(out, step.Slot+1)
		})
		return out
	}
	var out []int
	for _, child := range children {
		out = append(out, child.Components...)
	}
	return out
}

func merge(i int, p, v slotInfo) Component {
	pn, vn := p.node, v.node
	c := Component{Index: i + 1, Optional: p.optional}

	if pn.Letter != 0 {
		c.Free = true
		c.Min = 1
		c.Class = ClassAny
		if pn.Letter == 'N' {
			c.Class = ClassDecimal
		}
		c.Type = typeOf(pn)
		if vn.Letter == 0 {
			c.Class = Class(vn.Class)
			c.Min, c.Max = vn.Min, vn.Max
			c.Macro = vn.Macro
			c.Type = typeOf(vn)
			if c.Type == TypeString && pn.Letter == 'N' {
				c.Type = TypeNumber
			}
		}
		return c
	}

	c.Class = Class(pn.Class)
	c.Min, c.Max = pn.Min, pn.Max
	c.Fixed = pn.Fixed && pn.Lines <= 1
	c.Macro = pn.Macro
	c.Type = typeOf(pn)
	// A plain width slot on both sides takes the validator's character set.
	if pn.Macro == "" && vn.Letter == 0 && vn.Macro == "" {
		c.Class = Class(vn.Class)
	}
	return c
}

func typeOf(n grammar.Node) Type {
	if n.Macro != "" {
		return macroTypes[n.Macro]
	}
	switch n.Letter {
	case 'N':
		return TypeNumber
	case 'S':
		return TypeString
	}
	switch n.Class {
	case 'n':
		return TypeNumber
	case 'd':
		return TypeDecimal
	}
	return TypeString
}

// assignTerminators records, for every slot, the literal that immediately
// follows it once groups are flattened.
func assignTerminators(steps []Step) {
	var flat []*Step
	var walk func([]Step)
	walk = func(list []Step) {
		for i := range list {
			step := &list[i]
			if step.Kind == StepGroup {
				walk(step.Children)
				continue
			}
			flat = append(flat, step)
		}
	}
	walk(steps)

	for i, step := range flat {
		if step.Kind != StepSlot {
			continue
		}
		if i+1 < len(flat) && flat[i+1].Kind == StepLiteral {
			step.Terminator = flat[i+1].Literal
		}
	}
}

func walkSlots(steps []Step, fn func(*Step)) {
	for i := range steps {
		step := &steps[i]
		switch step.Kind {
		case StepSlot:
			fn(step)
		case StepGroup:
			walkSlots(step.Children, fn)
		}
	}
}

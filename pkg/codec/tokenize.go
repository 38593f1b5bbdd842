package codec

import (
	"strings"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

// EOL is the protocol line separator written between the lines of a
// multi-line field. It does not depend on the host platform.
const EOL = "\r\n"

// Tokenize splits raw into the components declared by p. It never fails:
// input that does not fully match the pattern is sliced left to right and the
// components that could not be reached stay nil. A nil entry always means
// "not present"; empty strings are never produced.
func Tokenize(p *pattern.Pattern, raw string) []*string {
	out := make([]*string, p.Size())
	if raw == "" {
		return out
	}

	m := &matcher{p: p, raw: raw, comps: out, prog: flatten(p.Steps(), nil)}
	if m.match(0, 0) {
		return out
	}

	clear(out)
	m.lenient(p.Steps(), 0)
	return out
}

// op is one instruction of the flattened step tree. A group op is followed by
// its children and skip points past them.
type op struct {
	kind       pattern.StepKind
	literal    string
	slot       int
	terminator string
	skip       int
}

func flatten(steps []pattern.Step, prog []op) []op {
	for _, step := range steps {
		switch step.Kind {
		case pattern.StepGroup:
			at := len(prog)
			prog = append(prog, op{kind: step.Kind})
			prog = flatten(step.Children, prog)
			prog[at].skip = len(prog)
		default:
			prog = append(prog, op{
				kind:       step.Kind,
				literal:    step.Literal,
				slot:       step.Slot,
				terminator: step.Terminator,
			})
		}
	}
	return prog
}

type matcher struct {
	p      *pattern.Pattern
	raw    string
	comps  []*string
	prog   []op
	failed []bool
}

// match is the strict pass: a backtracking match of the program from pc at
// pos that must consume the whole input. Dead (pc, pos) states are recorded
// so each one is explored at most once.
func (m *matcher) match(pc, pos int) bool {
	if pc == len(m.prog) {
		return pos == len(m.raw)
	}
	if m.failed == nil {
		m.failed = make([]bool, len(m.prog)*(len(m.raw)+1))
	}
	state := pc*(len(m.raw)+1) + pos
	if m.failed[state] {
		return false
	}
	if m.step(pc, pos) {
		return true
	}
	m.failed[state] = true
	return false
}

func (m *matcher) step(pc, pos int) bool {
	in := m.prog[pc]
	switch in.kind {
	case pattern.StepLiteral:
		n := m.literalAt(in.literal, pos)
		if n < 0 {
			return false
		}
		return m.match(pc+1, pos+n)

	case pattern.StepSlot:
		c, _ := m.p.Component(in.slot + 1)
		for _, length := range m.candidates(c, in.terminator, pos) {
			value := m.raw[pos : pos+length]
			if !c.Accept(value) {
				continue
			}
			m.comps[in.slot] = &value
			if m.match(pc+1, pos+length) {
				return true
			}
		}
		m.comps[in.slot] = nil
		return false

	case pattern.StepGroup:
		if m.match(pc+1, pos) {
			return true
		}
		return m.match(in.skip, pos)
	}
	return false
}

// candidates lists slice lengths to try for a slot, longest first. A slot
// followed by a literal ends at the first occurrence of that literal.
func (m *matcher) candidates(c pattern.Component, terminator string, pos int) []int {
	remaining := len(m.raw) - pos
	if remaining <= 0 {
		return nil
	}
	if c.Free && terminator != "" {
		if idx := m.find(terminator, pos); idx >= 0 {
			return []int{idx - pos}
		}
	}

	upper := remaining
	if c.Max > 0 && c.Max < upper {
		upper = c.Max
	}
	lower := c.Min
	if lower < 1 {
		lower = 1
	}
	if upper < lower {
		return nil
	}
	out := make([]int, 0, upper-lower+1)
	for length := upper; length >= lower; length-- {
		out = append(out, length)
	}
	return out
}

// lenient walks the steps without backtracking and without character checks
// on free text. A slot takes its slice by width, up to its terminator, or up
// to the end of the line. The first step that does not fit stops the walk and
// leaves everything after it nil. An optional group is entered when its
// leading step fits; once entered, its steps follow the same rules.
func (m *matcher) lenient(steps []pattern.Step, pos int) (int, bool) {
	for _, step := range steps {
		switch step.Kind {
		case pattern.StepLiteral:
			n := m.literalAt(step.Literal, pos)
			if n < 0 {
				return pos, false
			}
			pos += n

		case pattern.StepSlot:
			c, _ := m.p.Component(step.Slot + 1)
			length, ok := m.lenientLength(c, step.Terminator, pos)
			if !ok {
				return pos, false
			}
			if length > 0 {
				value := m.raw[pos : pos+length]
				m.comps[step.Slot] = &value
			}
			pos += length

		case pattern.StepGroup:
			if !m.leads(step, pos) {
				continue
			}
			end, ok := m.lenient(step.Children, pos)
			if !ok {
				return end, false
			}
			pos = end
		}
	}
	return pos, true
}

// leads reports whether the first step of a group fits at pos.
func (m *matcher) leads(group pattern.Step, pos int) bool {
	if len(group.Children) == 0 || pos >= len(m.raw) {
		return false
	}
	first := group.Children[0]
	switch first.Kind {
	case pattern.StepLiteral:
		return m.literalAt(first.Literal, pos) >= 0
	case pattern.StepSlot:
		c, _ := m.p.Component(first.Slot + 1)
		if !c.Free && !c.Class.Allows(m.raw[pos]) {
			return false
		}
		length, ok := m.lenientLength(c, first.Terminator, pos)
		return ok && length > 0
	case pattern.StepGroup:
		return m.leads(first, pos)
	}
	return false
}

// lenientLength returns the slice a slot takes in the lenient pass. No slot
// crosses a line break.
func (m *matcher) lenientLength(c pattern.Component, terminator string, pos int) (int, bool) {
	line := len(m.raw) - pos
	if idx := m.find("$", pos); idx >= 0 {
		line = idx - pos
	}
	until := -1
	if terminator != "" && terminator != "$" {
		if idx := m.find(terminator, pos); idx >= 0 && idx-pos <= line {
			until = idx - pos
		}
	}

	if c.Free {
		if until >= 0 {
			return until, true
		}
		return line, true
	}

	if line < c.Min {
		return 0, false
	}
	if c.Fixed {
		return c.Min, true
	}

	upper := line
	if c.Max > 0 && c.Max < upper {
		upper = c.Max
	}
	if until >= c.Min && until <= upper {
		return until, true
	}
	run := 0
	for run < upper && c.Class.Allows(m.raw[pos+run]) {
		run++
	}
	if run >= c.Min {
		return run, true
	}
	return upper, true
}

// literalAt returns the number of bytes the literal consumes at pos, or -1.
// The line break literal accepts CRLF, LF and a lone CR.
func (m *matcher) literalAt(literal string, pos int) int {
	if literal == "$" {
		rest := m.raw[pos:]
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			return 2
		case strings.HasPrefix(rest, "\n"), strings.HasPrefix(rest, "\r"):
			return 1
		}
		return -1
	}
	if strings.HasPrefix(m.raw[pos:], literal) {
		return len(literal)
	}
	return -1
}

// find returns the absolute index of the first occurrence of literal at or
// after pos, or -1.
func (m *matcher) find(literal string, pos int) int {
	var idx int
	if literal == "$" {
		idx = strings.IndexAny(m.raw[pos:], "\r\n")
	} else {
		idx = strings.Index(m.raw[pos:], literal)
	}
	if idx < 0 {
		return -1
	}
	return pos + idx
}

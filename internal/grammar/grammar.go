package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind identifies the shape of a parsed pattern node.
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeSlot
	NodeGroup
)

// Node is a single element of a parsed field pattern. Text always holds the
// exact source fragment so a node list can be printed back verbatim.
type Node struct {
	Kind NodeKind
	Text string

	// Literal separator text for NodeLiteral ("/", "//", ":", "$", ...).
	Literal string

	// Slot attributes. Letter is 'S' or 'N' for free tokens, Macro holds the
	// bare macro name ("DATE2"), Class the SWIFT character class letter.
	Letter    byte
	Macro     string
	Class     byte
	Min       int
	Max       int
	Lines     int
	Fixed     bool
	Bracketed bool

	// Group attributes.
	Children []Node
	Repeat   int
}

// String reproduces the source fragment the node was parsed from.
func (n Node) String() string {
	if n.Kind != NodeGroup {
		return n.Text
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(Join(n.Children))
	b.WriteByte(']')
	if n.Repeat > 0 {
		b.WriteString("0-")
		b.WriteString(strconv.Itoa(n.Repeat))
	}
	return b.String()
}

// Join concatenates the source form of the supplied nodes.
func Join(nodes []Node) string {
	var b strings.Builder
	for _, node := range nodes {
		b.WriteString(node.String())
	}
	return b.String()
}

// SyntaxError reports a malformed pattern and the byte offset of the problem.
type SyntaxError struct {
	Pattern string
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("grammar: %s at offset %d in %q", e.Message, e.Offset, e.Pattern)
}

// Parse turns a validator or parser pattern into a node list.
func Parse(src string) ([]Node, error) {
	p := &parser{src: src}
	nodes, err := p.sequence(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return nodes, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pattern: p.src, Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) sequence(inGroup bool) ([]Node, error) {
	var nodes []Node
	for p.pos < len(p.src) {
		ch := p.peek()
		switch {
		case ch == ']':
			if !inGroup {
				return nil, p.errorf("unbalanced ']'")
			}
			return nodes, nil
		case ch == '[':
			group, err := p.group()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, group)
		case ch == '<':
			slot, err := p.angle()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, slot)
		case isDigit(ch):
			slot, err := p.width()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, slot)
		case ch == 'S' || ch == 'N':
			p.pos++
			nodes = append(nodes, Node{Kind: NodeSlot, Text: string(ch), Letter: ch, Min: 1})
		case IsClass(ch):
			p.pos++
			nodes = append(nodes, Node{Kind: NodeSlot, Text: string(ch), Class: ch, Min: 1, Max: 1, Fixed: true})
		case ch == '/':
			if p.peekAt(1) == '/' {
				p.pos += 2
				nodes = append(nodes, Node{Kind: NodeLiteral, Text: "//", Literal: "//"})
				continue
			}
			p.pos++
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: "/", Literal: "/"})
		case ch == '>' || ch == '!' || ch == '*':
			return nil, p.errorf("unexpected %q", ch)
		case ch < 0x20 || ch > 0x7e:
			return nil, p.errorf("non printable character 0x%02x", ch)
		default:
			p.pos++
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: string(ch), Literal: string(ch)})
		}
	}
	if inGroup {
		return nil, p.errorf("missing closing ']'")
	}
	return nodes, nil
}

func (p *parser) group() (Node, error) {
	start := p.pos
	p.pos++
	children, err := p.sequence(true)
	if err != nil {
		return Node{}, err
	}
	p.pos++ // ']'
	if len(children) == 0 {
		p.pos = start
		return Node{}, p.errorf("empty optional group")
	}
	node := Node{Kind: NodeGroup, Children: children}
	if repeat, ok := p.repeat(); ok {
		if repeat < 1 {
			return Node{}, p.errorf("repeat marker must allow at least one occurrence")
		}
		node.Repeat = repeat
	}
	node.Text = p.src[start:p.pos]
	return node, nil
}

// repeat consumes a "0-k" marker right after a group. A digit run followed by
// a class letter or '!' belongs to the next width spec instead.
func (p *parser) repeat() (int, bool) {
	if p.peek() != '0' || p.peekAt(1) != '-' || !isDigit(p.peekAt(2)) {
		return 0, false
	}
	end := p.pos + 2
	for end < len(p.src) && isDigit(p.src[end]) {
		end++
	}
	if end < len(p.src) {
		next := p.src[end]
		if IsClass(next) || next == '!' || next == '*' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(p.src[p.pos+2 : end])
	if err != nil {
		return 0, false
	}
	p.pos = end
	return value, true
}

func (p *parser) angle() (Node, error) {
	start := p.pos
	end := strings.IndexByte(p.src[start:], '>')
	if end < 0 {
		return Node{}, p.errorf("missing closing '>'")
	}
	inner := p.src[start+1 : start+end]
	if inner == "" {
		return Node{}, p.errorf("empty macro")
	}

	if isDigit(inner[0]) {
		sub := &parser{src: inner}
		node, err := sub.width()
		if err != nil || sub.pos != len(inner) {
			return Node{}, p.errorf("invalid width spec <%s>", inner)
		}
		p.pos = start + end + 1
		node.Text = p.src[start:p.pos]
		node.Bracketed = true
		return node, nil
	}

	def, ok := LookupMacro(inner)
	if !ok {
		return Node{}, p.errorf("unknown macro <%s>", inner)
	}
	p.pos = start + end + 1
	node := Node{
		Kind:  NodeSlot,
		Macro: def.Name,
		Class: def.Class,
		Min:   def.Min,
		Max:   def.Max,
		Fixed: def.Min == def.Max,
	}
	if def.Sized && isDigit(p.peek()) {
		digits := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		size, _ := strconv.Atoi(p.src[digits:p.pos])
		if size < 1 {
			return Node{}, p.errorf("invalid length for <%s>", inner)
		}
		node.Max = size
		node.Fixed = false
	}
	node.Text = p.src[start:p.pos]
	return node, nil
}

// width parses N!c, Nc, N-Mc and N*Mc.
func (p *parser) width() (Node, error) {
	start := p.pos
	first, err := p.number()
	if err != nil {
		return Node{}, err
	}
	node := Node{Kind: NodeSlot}

	switch p.peek() {
	case '!':
		p.pos++
		node.Min, node.Max, node.Fixed = first, first, true
	case '*':
		p.pos++
		length, err := p.number()
		if err != nil {
			return Node{}, err
		}
		if first < 1 {
			return Node{}, p.errorf("line count must be positive")
		}
		node.Lines = first
		node.Min, node.Max = 1, length
	case '-':
		p.pos++
		upper, err := p.number()
		if err != nil {
			return Node{}, err
		}
		if upper < first {
			return Node{}, p.errorf("length range %d-%d is inverted", first, upper)
		}
		node.Min, node.Max = first, upper
	default:
		node.Min, node.Max = 1, first
	}

	if !IsClass(p.peek()) {
		return Node{}, p.errorf("expected character class after length")
	}
	node.Class = p.peek()
	p.pos++
	if node.Max < 1 {
		return Node{}, p.errorf("length must be positive")
	}
	if node.Min < 1 {
		node.Min = 1
	}
	node.Text = p.src[start:p.pos]
	return node, nil
}

func (p *parser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected digits")
	}
	value, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid number %q", p.src[start:p.pos])
	}
	return value, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

package codec

import (
	"strings"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

// Serialize joins components back into the wire representation described by
// p. Optional groups are written only when one of their components is set and
// separators are never left dangling: a literal is written when a component
// after it at the same level is set, or, for trailing literals, when one
// before it is. Entries beyond the pattern size are ignored.
func Serialize(p *pattern.Pattern, comps []*string) string {
	var b strings.Builder
	w := writer{comps: comps, b: &b}
	w.sequence(p.Steps())
	return b.String()
}

type writer struct {
	comps []*string
	b     *strings.Builder
}

func (w writer) sequence(steps []pattern.Step) {
	for i, step := range steps {
		switch step.Kind {
		case pattern.StepLiteral:
			after := steps[i+1:]
			emit := w.anySet(after)
			if !hasSlots(after) {
				emit = w.anySet(steps[:i])
			}
			if !emit {
				continue
			}
			if step.Literal == "$" {
				w.b.WriteString(EOL)
				continue
			}
			w.b.WriteString(step.Literal)

		case pattern.StepSlot:
			if v := w.value(step.Slot); v != nil {
				w.b.WriteString(*v)
			}

		case pattern.StepGroup:
			if w.anySet(step.Children) {
				w.sequence(step.Children)
			}
		}
	}
}

func (w writer) value(slot int) *string {
	if slot < 0 || slot >= len(w.comps) {
		return nil
	}
	return w.comps[slot]
}

func (w writer) anySet(steps []pattern.Step) bool {
	for _, step := range steps {
		switch step.Kind {
		case pattern.StepSlot:
			if w.value(step.Slot) != nil {
				return true
			}
		case pattern.StepGroup:
			if w.anySet(step.Children) {
				return true
			}
		}
	}
	return false
}

func hasSlots(steps []pattern.Step) bool {
	for _, step := range steps {
		switch step.Kind {
		case pattern.StepSlot:
			return true
		case pattern.StepGroup:
			if hasSlots(step.Children) {
				return true
			}
		}
	}
	return false
}

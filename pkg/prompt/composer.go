package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-mtfield/pkg/coerce"
	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/pattern"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// Composer builds field values by prompting for each component in turn.
type Composer struct {
	driver       PromptDriver
	out          io.Writer
	skipOptional bool
	typed        bool
}

// NewComposer returns a composer using the survey driver unless another one
// is supplied.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{typed: true}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		if c.out == nil {
			c.out = defaultOutput()
		}
		c.driver = NewSurveyDriver(c.out)
	}
	return c
}

// ChooseField asks the user to pick a field tag from reg.
func (c *Composer) ChooseField(ctx context.Context, reg *registry.Registry) (*registry.Definition, error) {
	defs := reg.Definitions()
	if len(defs) == 0 {
		return nil, ErrNoFields
	}
	choices := make([]FieldChoice, len(defs))
	for i, def := range defs {
		choices[i] = FieldChoice{Name: def.Name(), Description: def.Description()}
	}
	idx, err := c.driver.Pick(ctx, choices)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(defs) {
		return nil, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return defs[idx], nil
}

// Compose prompts for every component of def and returns the new field.
func (c *Composer) Compose(ctx context.Context, def *registry.Definition) (*field.Field, error) {
	f := field.New(def)
	if err := c.Edit(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Edit prompts for every component of f, offering the current values as
// defaults. f is only modified when every prompt succeeds.
func (c *Composer) Edit(ctx context.Context, f *field.Field) error {
	def := f.Definition()
	slots := def.Pattern().Components()
	draft := f.Copy()

	for _, comp := range def.Components() {
		current, present := draft.Component(comp.Index)
		p := ComponentPrompt{
			Field:     def.Name(),
			Component: comp,
			Slot:      slots[comp.Index-1],
			Current:   current,
			Present:   present,
		}
		p.Check = c.check(p)

		if comp.Optional {
			include := present
			if !c.skipOptional {
				var err error
				include, err = c.driver.Include(ctx, p)
				if err != nil {
					return err
				}
			}
			if !include {
				draft.ClearComponent(comp.Index)
				continue
			}
		}

		value, err := c.driver.Value(ctx, p)
		if err != nil {
			return err
		}
		draft.SetComponent(comp.Index, value)
	}

	for n := 1; n <= draft.ComponentsSize(); n++ {
		if v, ok := draft.Component(n); ok {
			f.SetComponent(n, v)
		} else {
			f.ClearComponent(n)
		}
	}
	return c.driver.Show(ctx, f)
}

func (c *Composer) check(p ComponentPrompt) func(string) error {
	return func(v string) error {
		if !p.Slot.Accept(v) {
			return fmt.Errorf("%s: expected %s", p.Component.Label, p.Help())
		}
		if c.typed && p.Component.Type != pattern.TypeString {
			if _, ok := coerce.Parse(p.Component.Type, v); !ok {
				return fmt.Errorf("%s: not a valid %s", p.Component.Label, p.Component.Type)
			}
		}
		return nil
	}
}

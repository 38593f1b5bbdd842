package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/pattern"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// ComponentPrompt describes one component of the field being composed.
type ComponentPrompt struct {
	Field     string
	Component registry.Component
	Slot      pattern.Component
	Current   string
	Present   bool
	Check     func(string) error
}

// Label is the prompt message, e.g. "32A Date".
func (p ComponentPrompt) Label() string {
	return p.Field + " " + p.Component.Label
}

// Help shows the slot notation followed by the type tag when it is not a
// plain string, e.g. "6!n, date2".
func (p ComponentPrompt) Help() string {
	if p.Component.Type == pattern.TypeString {
		return p.Slot.Notation()
	}
	return p.Slot.Notation() + ", " + p.Component.Type.String()
}

// FieldChoice is one entry of the field picker.
type FieldChoice struct {
	Name        string
	Description string
}

func (c FieldChoice) String() string {
	return c.Name + "  " + c.Description
}

// PromptDriver abstracts the terminal so the composer can be tested with a
// scripted driver.
type PromptDriver interface {
	// Value asks for the raw text of a component. Answers rejected by
	// p.Check are asked again.
	Value(ctx context.Context, p ComponentPrompt) (string, error)
	// Include asks whether an optional component is present.
	Include(ctx context.Context, p ComponentPrompt) (bool, error)
	// Pick returns the index of the chosen field.
	Pick(ctx context.Context, choices []FieldChoice) (int, error)
	// Show presents the composed field.
	Show(ctx context.Context, f *field.Field) error
}

type surveyDriver struct {
	out      io.Writer
	pageSize int
}

// NewSurveyDriver returns the interactive driver backed by survey. Composed
// fields are written to out.
func NewSurveyDriver(out io.Writer) PromptDriver {
	return &surveyDriver{out: out, pageSize: 15}
}

func (d *surveyDriver) Value(ctx context.Context, p ComponentPrompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: p.Label(),
		Help:    p.Help(),
		Default: p.Current,
	}
	var opts []survey.AskOpt
	if p.Check != nil {
		check := p.Check
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return check(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Include(ctx context.Context, p ComponentPrompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Include %s?", p.Label()),
		Help:    p.Help(),
		Default: p.Present,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Pick(ctx context.Context, choices []FieldChoice) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = c.String()
	}
	var out int
	prompt := &survey.Select{
		Message:  "Field",
		Options:  options,
		PageSize: d.pageSize,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Show(ctx context.Context, f *field.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, f.String())
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

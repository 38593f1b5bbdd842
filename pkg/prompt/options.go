package prompt

import (
	"io"
	"os"
)

// Option configures a Composer.
type Option func(*Composer)

// WithPromptDriver overrides the prompt driver used by the composer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Composer) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints info messages.
// It has no effect together with WithPromptDriver.
func WithOutput(w io.Writer) Option {
	return func(c *Composer) {
		if w != nil {
			c.out = w
		}
	}
}

// WithSkipOptional stops the composer from offering optional components.
func WithSkipOptional(skip bool) Option {
	return func(c *Composer) {
		c.skipOptional = skip
	}
}

// WithTypedValidation toggles the type tag check on entered values, on by
// default. Width and character set are always checked.
func WithTypedValidation(enabled bool) Option {
	return func(c *Composer) {
		c.typed = enabled
	}
}

func defaultOutput() io.Writer { return os.Stdout }

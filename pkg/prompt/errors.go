package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoFields is returned when a field must be chosen from an empty registry.
	ErrNoFields = errors.New("prompt: registry has no fields")
)

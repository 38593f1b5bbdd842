package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is the sentinel matched by every InvalidPatternError.
var ErrInvalidPattern = errors.New("pattern: invalid pattern")

// InvalidPatternError reports a pattern pair that cannot be compiled, either
// because one side is malformed or because validator and parser disagree.
type InvalidPatternError struct {
	Validator string
	Parser    string
	Reason    string
	Err       error
}

func (e *InvalidPatternError) Error() string {
	msg := fmt.Sprintf("pattern: validator %q / parser %q: %s", e.Validator, e.Parser, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidPattern) succeed.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// Unwrap exposes the underlying syntax error, when present.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

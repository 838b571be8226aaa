package parsing

import (
	"errors"
	"fmt"
)

// NoMatchError indicates no balanced JSON substring of the expected shape
// was found in the response text.
type NoMatchError struct {
	Shape string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("parse error: no JSON %s found in response", e.Shape)
}

// MalformedError indicates a candidate substring was found but is not
// valid JSON.
type MalformedError struct {
	Shape   string
	Snippet string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("parse error: malformed JSON %s: %s", e.Shape, e.Snippet)
}

// IsParseError reports whether err is either extraction failure mode.
func IsParseError(err error) bool {
	var noMatch *NoMatchError
	var malformed *MalformedError
	return errors.As(err, &noMatch) || errors.As(err, &malformed)
}

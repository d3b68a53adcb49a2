package extract

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLocator  = errors.New("invalid locator")
	ErrNoMatch         = errors.New("no node matched")
	ErrMultipleMatches = errors.New("more than one node matched")
	ErrNotNumeric      = errors.New("text is not a number")
)

// ExtractionError means a value could not be extracted from a document. Matches is the number
// of nodes the locator found, and Text is the text that failed to parse, when applicable.
type ExtractionError struct {
	Locator string
	Matches int
	Text    string
	Err     error
}

func (e *ExtractionError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotNumeric):
		return fmt.Sprintf("%s: %q found by %s", e.Err, e.Text, e.Locator)
	case errors.Is(e.Err, ErrMultipleMatches):
		return fmt.Sprintf("%s (%d) for %s", e.Err, e.Matches, e.Locator)
	default:
		return fmt.Sprintf("%s for %s", e.Err, e.Locator)
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

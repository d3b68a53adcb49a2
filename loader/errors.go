package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrBadStatus is wrapped by a LoadError when the server did not return a 2xx status.
	ErrBadStatus = errors.New("unsuccessful response status")
	// ErrTooSmall is wrapped by a LoadError when the body is shorter than the declared minimum.
	ErrTooSmall = errors.New("response smaller than expected")
)

// LoadError means a named request could not be loaded. Every test that depends on the request
// sees the same LoadError.
type LoadError struct {
	Name       string
	URL        string
	StatusCode int
	Size       int
	MinSize    int
	Err        error
}

func (e *LoadError) Error() string {
	switch {
	case errors.Is(e.Err, ErrBadStatus):
		return fmt.Sprintf("failed to load %q from %s: HTTP status %d", e.Name, e.URL, e.StatusCode)
	case errors.Is(e.Err, ErrTooSmall):
		return fmt.Sprintf("failed to load %q from %s: response was %d bytes, expected at least %d",
			e.Name, e.URL, e.Size, e.MinSize)
	default:
		return fmt.Sprintf("failed to load %q from %s: %s", e.Name, e.URL, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LookupError means a request name is not known to the loader, or has not been loaded yet.
type LookupError struct {
	Name   string
	Reason string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no loaded request named %q: %s", e.Name, e.Reason)
}

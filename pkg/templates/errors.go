package templates

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingPlaceholder is returned when a layout lacks {body}.
	ErrMissingPlaceholder = errors.New("template must contain {body} placeholder")
	// ErrNotFound is wrapped by NotFoundError.
	ErrNotFound = errors.New("template not found")
	// ErrNoSelector is returned when resolving the zero Selector.
	ErrNoSelector = errors.New("no template selected")
)

// NotFoundError is returned when a name matches neither a built-in alias
// nor a registered layout.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("custom template %q not found. Available: [%s]", e.Name, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an explicitly requested config file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat is returned when a file format cannot be decoded by this build.
	ErrUnsupportedFormat = errors.New("config format not supported")
	// ErrMalformed is returned when a config file exists but cannot be parsed.
	ErrMalformed = errors.New("malformed config file")
	// ErrMissingFields is returned when required fields are absent after all layers.
	ErrMissingFields = errors.New("missing required configuration fields")
	// ErrInvalidValue is returned when a value has the wrong shape or is out of range.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Error describes a configuration failure. It wraps one of the sentinel
// errors above so callers can branch with errors.Is.
type Error struct {
	// Path is the config file involved, if any.
	Path string
	// Fields lists the canonical keys involved, if any.
	Fields []string
	// Detail is the human readable explanation.
	Detail string
	// Err is the sentinel error.
	Err error
	// Cause is the underlying error (parser, filesystem, ...), if any.
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Detail)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func notFoundError(path string, cause error) *Error {
	return &Error{
		Path:   path,
		Detail: fmt.Sprintf("config file not found: %s", path),
		Err:    ErrNotFound,
		Cause:  cause,
	}
}

func malformedError(path, format string, cause error) *Error {
	return &Error{
		Path:   path,
		Detail: fmt.Sprintf("invalid %s in %s", format, path),
		Err:    ErrMalformed,
		Cause:  cause,
	}
}

// notAnObjectError reports a document whose top level is null instead of
// a mapping.
func notAnObjectError(path, format string) *Error {
	return &Error{
		Path:   path,
		Detail: fmt.Sprintf("invalid %s in %s: expected an object at the top level", format, path),
		Err:    ErrMalformed,
	}
}

func invalidValueError(field, detail string) *Error {
	return &Error{
		Fields: []string{field},
		Detail: detail,
		Err:    ErrInvalidValue,
	}
}

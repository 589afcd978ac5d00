//go:build noyaml

package output

import "errors"

// ErrYAMLUnavailable is returned for FormatYAML in builds tagged noyaml.
var ErrYAMLUnavailable = errors.New("yaml output is not available in this build (built with the noyaml tag)")

func marshalYAML(any) ([]byte, error) {
	return nil, ErrYAMLUnavailable
}

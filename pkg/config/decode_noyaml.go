//go:build noyaml

package config

const yamlSupported = false

func decodeYAML(path string, _ []byte) (map[string]any, error) {
	return nil, yamlUnavailableError(path, "convert "+path+" to JSON")
}

func encodeYAML(path string, _ any) ([]byte, error) {
	return nil, yamlUnavailableError(path, "use a .json path instead of "+path)
}

func yamlUnavailableError(path, alternative string) *Error {
	return &Error{
		Path: path,
		Detail: "YAML support is not available in this build (built with the noyaml tag); " +
			"rebuild without it (go install github.com/telekom/exmailer/cmd/exmailer@latest) or " + alternative,
		Err: ErrUnsupportedFormat,
	}
}

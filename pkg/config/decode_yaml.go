//go:build !noyaml

package config

import (
	"gopkg.in/yaml.v3"
)

// yamlSupported reports whether this build can decode YAML config files.
const yamlSupported = true

func decodeYAML(path string, content []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, malformedError(path, "YAML", err)
	}
	if raw == nil {
		return nil, notAnObjectError(path, "YAML")
	}
	return raw, nil
}

func encodeYAML(_ string, v any) ([]byte, error) {
	return yaml.Marshal(v)
}

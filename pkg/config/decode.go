package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// isYAMLPath reports whether path should be decoded as YAML.
func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ReadFile reads and decodes a JSON or YAML config file into a raw mapping.
// An empty or whitespace-only file yields an empty mapping.
func ReadFile(path string) (map[string]any, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, &Error{Path: path, Detail: "cannot resolve config path " + path, Err: ErrInvalidValue, Cause: err}
	}
	content, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(path, nil)
		}
		return nil, &Error{Path: path, Detail: "failed to read config file " + path, Err: ErrMalformed, Cause: err}
	}
	if strings.TrimSpace(string(content)) == "" {
		return map[string]any{}, nil
	}
	if isYAMLPath(resolved) {
		return decodeYAML(path, content)
	}
	return decodeJSON(path, content)
}

func decodeJSON(path string, content []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, malformedError(path, "JSON", err)
	}
	if raw == nil {
		return nil, notAnObjectError(path, "JSON")
	}
	return raw, nil
}

// YAMLSupported reports whether this build can decode YAML config files.
func YAMLSupported() bool {
	return yamlSupported
}

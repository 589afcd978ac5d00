//go:build noyaml

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLUnsupported(t *testing.T) {
	assert.False(t, YAMLSupported())
}

func assertYAMLUnavailable(t *testing.T, err error, path string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "YAML support is not available")
	assert.Contains(t, err.Error(), "rebuild without it")
}

func TestReadFileYAMLUnavailable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "exmailer.yml", "domain: CORP\n")
	_, err := ReadFile(path)
	assertYAMLUnavailable(t, err, path)
}

func TestResolveExplicitYAMLPathUnavailable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "exmailer.yaml", "domain: CORP\n")
	_, err := newTestLoader(completeEnv()).Resolve(Sources{Path: path})
	assertYAMLUnavailable(t, err, path)
}

func TestResolveDiscoveredYAMLUnavailable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "exmailer.yaml", "domain: CORP\n")
	_, err := newTestLoader(completeEnv(), filepath.Join(dir, "exmailer.json"), path).Resolve(Sources{})
	assertYAMLUnavailable(t, err, path)
}

func TestResolveEmptyYAMLFileStillAllowed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "exmailer.yaml", "")
	cfg, err := newTestLoader(completeEnv()).Resolve(Sources{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "ENVDOMAIN", cfg.Domain)
}

func TestWriteExampleYAMLUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := WriteExample(path, false)
	assertYAMLUnavailable(t, err, path)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

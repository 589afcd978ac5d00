package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    map[string]any
		wantErr error
	}{
		{
			name:    "json object",
			file:    "a.json",
			content: `{"domain": "CORP", "save_copy": false}`,
			want:    map[string]any{"domain": "CORP", "save_copy": false},
		},
		{
			name:    "json null",
			file:    "null.json",
			content: "null",
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown extension is json",
			file:    "config.conf",
			content: "domain: CORP",
			wantErr: ErrMalformed,
		},
		{
			name:    "whitespace only",
			file:    "blank.json",
			content: "\n   \n",
			want:    map[string]any{},
		},
		{
			name:    "whitespace only yaml",
			file:    "blank.yaml",
			content: "  \n",
			want:    map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := ReadFile(path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := ReadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "config file not found: "+path, err.Error())
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMalformedErrorKeepsCause(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":}`), 0o600))

	_, err := ReadFile(path)
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
	require.Error(t, cfgErr.Cause)
	assert.Contains(t, err.Error(), cfgErr.Cause.Error())
}

func TestReadFileRejectsNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "null.json")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0o600))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, "invalid JSON in "+path+": expected an object at the top level", err.Error())
}

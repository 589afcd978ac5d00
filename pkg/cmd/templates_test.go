package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesList(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("templates", "list"))
	lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"NAME", "ALIASES"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "persian"))
	assert.Contains(t, lines[1], "farsi, rtl, fa")
	assert.True(t, strings.HasPrefix(lines[4], "plain"))
}

func TestTemplatesListJSON(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("templates", "ls", "-o", "json"))
	var infos []templateInfo
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "default", infos[1].Name)
	assert.Equal(t, []string{"default", "english", "ltr", "en"}, infos[1].Aliases)
}

func TestTemplatesListRejectsUnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	err := env.run("templates", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			env := newTestEnv(t)
			require.NoError(t, env.run("completion", shell))
			assert.Contains(t, env.out.String(), "exmailer")
		})
	}
}

func TestCompletionCommandRejectsUnknownShell(t *testing.T) {
	env := newTestEnv(t)
	err := env.run("completion", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

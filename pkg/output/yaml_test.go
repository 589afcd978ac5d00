//go:build !noyaml

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteObjectYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteObject(buf, FormatYAML, sample{Name: "persian", Count: 4}))
	assert.Equal(t, "name: persian\ncount: 4\n", buf.String())
}

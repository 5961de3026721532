package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoundTrip(t *testing.T) {
	m, err := ParseString(cubeOBJ)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, "written by test"))

	assert.True(t, strings.HasPrefix(buf.String(), "# written by test\nv -0.5 -0.5 -0.5\n"))
	assert.Contains(t, buf.String(), "f 1 4 3 2\n")

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.True(t, m.Equal(back))
}

func TestWritePreservesPrecision(t *testing.T) {
	m, err := ParseString("v 0.1 1e-9 123456.789012345\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Vertex(0), back.Vertex(0))
}

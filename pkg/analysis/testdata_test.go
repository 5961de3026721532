package analysis

import (
	"testing"

	"github.com/philipparndt/objfeat/pkg/mesh"
	"github.com/stretchr/testify/require"
)

const cubeOBJ = `v -0.5 -0.5 -0.5
v  0.5 -0.5 -0.5
v  0.5  0.5 -0.5
v -0.5  0.5 -0.5
v -0.5 -0.5  0.5
v  0.5 -0.5  0.5
v  0.5  0.5  0.5
v -0.5  0.5  0.5
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
`

const tetrahedronOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func parse(t *testing.T, src string) *mesh.Mesh {
	t.Helper()
	m, err := mesh.ParseString(src)
	require.NoError(t, err)
	return m
}

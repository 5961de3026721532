package sample

import (
	"math"
	"testing"

	"github.com/philipparndt/objfeat/pkg/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	m, err := Box(20, 10, 5, 32)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())

	result, err := analysis.Calculate(m)
	require.NoError(t, err)

	size := result.BoundingBox.Size()
	assert.InDelta(t, 20, size.X, 1.5)
	assert.InDelta(t, 10, size.Y, 1.5)
	assert.InDelta(t, 5, size.Z, 1.5)
	assert.InDelta(t, 1000, result.Volume, 150)
	assert.Greater(t, result.Features.AspectRatio, 2.0)
}

func TestCylinder(t *testing.T) {
	m, err := Cylinder(10, 4, 32)
	require.NoError(t, err)

	result, err := analysis.Calculate(m)
	require.NoError(t, err)

	want := math.Pi * 4 * 4 * 10
	assert.InDelta(t, want, result.Volume, want*0.15)
	for _, field := range result.Features.Fields() {
		assert.False(t, math.IsNaN(field.Value) || math.IsInf(field.Value, 0), field.Name)
	}
}

func TestTessellationIsWelded(t *testing.T) {
	m, err := Box(4, 4, 4, 16)
	require.NoError(t, err)

	// A triangle soup would have exactly three vertices per face.
	assert.Less(t, m.VertexCount(), 3*m.FaceCount())
}

func TestInvalidDimensions(t *testing.T) {
	_, err := Box(-1, 1, 1, 8)
	assert.Error(t, err)

	_, err = Cylinder(1, -1, 8)
	assert.Error(t, err)
}

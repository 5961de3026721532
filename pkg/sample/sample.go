// Package sample tessellates simple sdfx solids into indexed meshes. The
// meshes serve as fixtures with known volume and area.
package sample

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// weldPrecision is the grid, in model units, on which vertices produced
// by neighbouring cubes are considered identical.
const weldPrecision = 1e-9

// Box returns a closed mesh of an axis-aligned box with the given
// dimensions, centred on the origin.
func Box(x, y, z float64, cells int) (*mesh.Mesh, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("box dimensions must be positive, got %gx%gx%g", x, y, z)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx box: %w", err)
	}
	return Tessellate(s, cells)
}

// Cylinder returns a closed mesh of a cylinder along Z, centred on the
// origin.
func Cylinder(height, radius float64, cells int) (*mesh.Mesh, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("cylinder height and radius must be positive, got %g and %g", height, radius)
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx cylinder: %w", err)
	}
	return Tessellate(s, cells)
}

// Tessellate renders s with uniform marching cubes and welds the
// resulting triangle soup into an indexed mesh.
func Tessellate(s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}

	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("tessellation produced no triangles")
	}

	w := mesh.NewWelder(weldPrecision, len(triangles))
	for _, tri := range triangles {
		w.Add(
			geometry.NewVector3(tri[0].X, tri[0].Y, tri[0].Z),
			geometry.NewVector3(tri[1].X, tri[1].Y, tri[1].Z),
			geometry.NewVector3(tri[2].X, tri[2].Y, tri[2].Z),
		)
	}
	return w.Mesh()
}

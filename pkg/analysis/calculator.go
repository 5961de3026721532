package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

const (
	// Epsilon is the floor below which spans, lengths and volumes are
	// treated as zero.
	Epsilon = 1e-6

	// GridDivisions is the number of voxels per axis used for local
	// density.
	GridDivisions = 10
)

// ErrEmptyMesh is returned by Calculate when the mesh has no vertices or
// no faces.
var ErrEmptyMesh = errors.New("mesh must contain vertices and faces")

// Result is the outcome of Calculate: the descriptors plus the counts and
// measures shown alongside them.
type Result struct {
	Features    Features
	VertexCount int
	FaceCount   int
	SurfaceArea float64
	Volume      float64
	BoundingBox geometry.BoundingBox
}

// Calculate derives the shape descriptors of m. Every descriptor is
// finite; wherever a formula would divide by (near) zero or the mesh lacks
// the structure it needs, the descriptor is 0.
func Calculate(m *mesh.Mesh) (*Result, error) {
	if m == nil || m.IsEmpty() {
		vertices, faces := 0, 0
		if m != nil {
			vertices, faces = m.VertexCount(), m.FaceCount()
		}
		return nil, fmt.Errorf("%w (vertices: %d, faces: %d)", ErrEmptyMesh, vertices, faces)
	}

	vertices := m.Vertices()
	box := geometry.BoundingBoxOf(vertices)
	stats := ComputeStats(m)

	features := Features{
		Linearity:    finite(linearity(box)),
		Planarity:    finite(planarity(vertices)),
		Sphericity:   finite(sphericity(stats)),
		Anisotropy:   finite(anisotropy(m)),
		Curvature:    finite(curvature(m)),
		EulerNumber:  finite(eulerNumber(m.VertexCount(), stats)),
		Compactness:  finite(compactness(stats)),
		AspectRatio:  finite(aspectRatio(box)),
		Convexity:    finite(convexity(stats.Volume, box)),
		LocalDensity: finite(localDensity(vertices, box)),
	}

	return &Result{
		Features:    features,
		VertexCount: m.VertexCount(),
		FaceCount:   m.FaceCount(),
		SurfaceArea: stats.SurfaceArea,
		Volume:      stats.Volume,
		BoundingBox: box,
	}, nil
}

// linearity is the ratio of the longest to the shortest bounding box span.
func linearity(box geometry.BoundingBox) float64 {
	minSpan := box.MinSpan()
	if minSpan <= Epsilon {
		return 0
	}
	return box.MaxSpan() / minSpan
}

// planarity is the mean distance of the vertices from their centroid.
func planarity(vertices []geometry.Vector3) float64 {
	var centroid geometry.Vector3
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	n := float64(len(vertices))
	centroid = centroid.Mul(1 / n)

	total := 0.0
	for _, v := range vertices {
		total += v.Distance(centroid)
	}
	return total / n
}

// sphericity is the isoperimetric quotient π^(1/3)·(6V)^(2/3)/A.
func sphericity(stats Stats) float64 {
	if stats.SurfaceArea <= 0 || stats.Volume <= 0 {
		return 0
	}
	return math.Cbrt(math.Pi) * math.Pow(6*stats.Volume, 2.0/3.0) / stats.SurfaceArea
}

// anisotropy is the RMS deviation from a right angle of the apex angle of
// every fan triangle. Corners with an edge shorter than Epsilon are not
// measured.
func anisotropy(m *mesh.Mesh) float64 {
	sumSquared := 0.0
	valid := 0
	corners := make([]geometry.Vector3, 0, 8)

	m.EachFace(func(i int, face []int) {
		if len(face) < 3 {
			return
		}
		corners = m.FaceVertices(corners[:0], i)
		for j := 1; j < len(corners)-1; j++ {
			angle, ok := geometry.NewTriangle(corners[0], corners[j], corners[j+1]).ApexAngle(Epsilon)
			if !ok {
				continue
			}
			diff := angle - math.Pi/2
			sumSquared += diff * diff
			valid++
		}
	})

	if valid == 0 {
		return 0
	}
	return math.Sqrt(sumSquared / float64(valid))
}

// curvature is the mean angle between the normals of consecutive faces in
// file order. Faces are not matched by adjacency, so this is only a proxy
// for surface curvature.
func curvature(m *mesh.Mesh) float64 {
	if m.FaceCount() < 2 {
		return 0
	}

	sum := 0.0
	prev := faceNormal(m, 0)
	for i := 1; i < m.FaceCount(); i++ {
		next := faceNormal(m, i)
		sum += geometry.UnitAngle(prev, next)
		prev = next
	}
	return sum / float64(m.FaceCount()-1)
}

// faceNormal is the unit normal of the plane through the first three
// corners of face i, or the zero vector for short or degenerate faces.
func faceNormal(m *mesh.Mesh, i int) geometry.Vector3 {
	var buf [8]geometry.Vector3
	corners := m.FaceVertices(buf[:0], i)
	if len(corners) < 3 {
		return geometry.Vector3{}
	}
	return geometry.NewTriangle(corners[0], corners[1], corners[2]).Normal(Epsilon)
}

// eulerNumber is the characteristic V - E + F.
func eulerNumber(vertexCount int, stats Stats) float64 {
	return float64(vertexCount - stats.EdgeCount + stats.FaceCount)
}

// compactness is the mean surface area per face.
func compactness(stats Stats) float64 {
	if stats.FaceCount == 0 {
		return 0
	}
	return stats.SurfaceArea / float64(stats.FaceCount)
}

// aspectRatio is the longest bounding box span over the shortest one,
// floored at Epsilon.
func aspectRatio(box geometry.BoundingBox) float64 {
	return box.MaxSpan() / math.Max(box.MinSpan(), Epsilon)
}

// convexity is the mesh volume relative to its bounding box volume.
func convexity(volume float64, box geometry.BoundingBox) float64 {
	if volume <= 0 {
		return 0
	}
	return volume / math.Max(box.Volume(), Epsilon)
}

// localDensity is the vertex count of the fullest cell of a uniform
// GridDivisions³ grid over the bounding box. Indices are clamped so
// vertices on the upper faces of the box land in the last cell.
func localDensity(vertices []geometry.Vector3, box geometry.BoundingBox) float64 {
	size := box.Size()
	cell := geometry.NewVector3(
		math.Max(size.X/GridDivisions, Epsilon),
		math.Max(size.Y/GridDivisions, Epsilon),
		math.Max(size.Z/GridDivisions, Epsilon),
	)

	var grid [GridDivisions][GridDivisions][GridDivisions]int
	maxCount := 0
	for _, v := range vertices {
		i := cellIndex(v.X-box.Min.X, cell.X)
		j := cellIndex(v.Y-box.Min.Y, cell.Y)
		k := cellIndex(v.Z-box.Min.Z, cell.Z)

		grid[i][j][k]++
		maxCount = max(maxCount, grid[i][j][k])
	}
	return float64(maxCount)
}

func cellIndex(offset, cell float64) int {
	idx := math.Floor(offset / cell)
	if idx < 0 || math.IsNaN(idx) {
		return 0
	}
	if idx > GridDivisions-1 {
		return GridDivisions - 1
	}
	return int(idx)
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

package analysis

import (
	"math"

	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

// Stats holds the surface, volume and topology aggregates of a mesh.
type Stats struct {
	SurfaceArea  float64
	SignedVolume float64
	Volume       float64 // |SignedVolume|
	EdgeCount    int     // unique undirected edges
	FaceCount    int     // faces with at least three indices
}

// edgeKey identifies an undirected edge; lo <= hi.
type edgeKey struct {
	lo, hi int
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// ComputeStats walks the faces of m once. Each face is fan-triangulated
// from its first corner; every triangle adds its area and its signed
// tetrahedron volume against the origin. Face boundary edges are
// collected into a set. Faces with fewer than three indices are skipped.
func ComputeStats(m *mesh.Mesh) Stats {
	var stats Stats
	edges := make(map[edgeKey]struct{})
	corners := make([]geometry.Vector3, 0, 8)

	m.EachFace(func(i int, face []int) {
		if len(face) < 3 {
			return
		}
		stats.FaceCount++

		corners = m.FaceVertices(corners[:0], i)
		for j := 1; j < len(corners)-1; j++ {
			tri := geometry.NewTriangle(corners[0], corners[j], corners[j+1])
			stats.SurfaceArea += tri.Area()
			stats.SignedVolume += tri.SignedVolume()
		}

		for j, a := range face {
			b := face[(j+1)%len(face)]
			edges[makeEdgeKey(a, b)] = struct{}{}
		}
	})

	stats.EdgeCount = len(edges)
	stats.Volume = math.Abs(stats.SignedVolume)
	return stats
}

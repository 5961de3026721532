package analysis

import (
	"cmp"
	"slices"

	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

// Edge is a unique undirected mesh edge.
type Edge struct {
	A, B   int // vertex indices, A <= B
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// EdgeSummary aggregates edge lengths.
type EdgeSummary struct {
	Count int
	Min   float64
	Max   float64
	Avg   float64
}

// Edges returns the unique undirected edges of m in the order they first
// appear on a face boundary. It walks the same edge set ComputeStats
// counts.
func Edges(m *mesh.Mesh) []Edge {
	seen := make(map[edgeKey]struct{})
	var edges []Edge

	m.EachFace(func(_ int, face []int) {
		if len(face) < 3 {
			return
		}
		for j, a := range face {
			key := makeEdgeKey(a, face[(j+1)%len(face)])
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			start, end := m.Vertex(key.lo), m.Vertex(key.hi)
			edges = append(edges, Edge{
				A:      key.lo,
				B:      key.hi,
				Start:  start,
				End:    end,
				Length: start.Distance(end),
			})
		}
	})
	return edges
}

// SummarizeEdges returns count, minimum, maximum and mean length. All
// lengths are 0 for an empty slice.
func SummarizeEdges(edges []Edge) EdgeSummary {
	if len(edges) == 0 {
		return EdgeSummary{}
	}
	s := EdgeSummary{Count: len(edges), Min: edges[0].Length, Max: edges[0].Length}
	total := 0.0
	for _, e := range edges {
		s.Min = min(s.Min, e.Length)
		s.Max = max(s.Max, e.Length)
		total += e.Length
	}
	s.Avg = total / float64(len(edges))
	return s
}

// LongestEdges returns up to n edges sorted by decreasing length.
func LongestEdges(edges []Edge, n int) []Edge {
	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b Edge) int { return cmp.Compare(b.Length, a.Length) })
	return sorted[:min(n, len(sorted))]
}

// ShortestEdges returns up to n edges sorted by increasing length.
func ShortestEdges(edges []Edge, n int) []Edge {
	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b Edge) int { return cmp.Compare(a.Length, b.Length) })
	return sorted[:min(n, len(sorted))]
}

// EdgesByLength returns the edges with minLen <= length <= maxLen, in
// their original order.
func EdgesByLength(edges []Edge, minLen, maxLen float64) []Edge {
	var filtered []Edge
	for _, e := range edges {
		if e.Length >= minLen && e.Length <= maxLen {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

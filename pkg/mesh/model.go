// Package mesh holds the immutable polygon mesh model and its OBJ codec.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/philipparndt/objfeat/pkg/geometry"
)

// ErrIndexOutOfRange is returned by New when a face references a vertex
// that does not exist.
var ErrIndexOutOfRange = errors.New("face index out of range")

// Mesh is an ordered list of vertices and an ordered list of faces, each
// face being a loop of 0-based vertex indices. A Mesh never changes after
// construction; every accessor that returns a slice returns a copy.
type Mesh struct {
	vertices []geometry.Vector3
	// faces are stored flat: face i spans indices[offsets[i]:offsets[i+1]].
	indices []int
	offsets []int
}

// New builds a Mesh from copies of the given vertices and faces. Faces
// shorter than three indices are kept but play no part in any statistic.
func New(vertices []geometry.Vector3, faces [][]int) (*Mesh, error) {
	total := 0
	for _, face := range faces {
		total += len(face)
	}

	m := &Mesh{
		vertices: append([]geometry.Vector3(nil), vertices...),
		indices:  make([]int, 0, total),
		offsets:  make([]int, 1, len(faces)+1),
	}

	for fi, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", fi, idx, len(vertices), ErrIndexOutOfRange)
			}
		}
		m.indices = append(m.indices, face...)
		m.offsets = append(m.offsets, len(m.indices))
	}

	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// FaceCount returns the number of faces, including short ones.
func (m *Mesh) FaceCount() int {
	return len(m.offsets) - 1
}

// IsEmpty reports whether the mesh lacks vertices or faces.
func (m *Mesh) IsEmpty() bool {
	return m.VertexCount() == 0 || m.FaceCount() == 0
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) geometry.Vector3 {
	return m.vertices[i]
}

// Face returns a copy of the index loop of face i.
func (m *Mesh) Face(i int) []int {
	return append([]int(nil), m.face(i)...)
}

func (m *Mesh) face(i int) []int {
	return m.indices[m.offsets[i]:m.offsets[i+1]:m.offsets[i+1]]
}

// Vertices returns a copy of all vertices.
func (m *Mesh) Vertices() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), m.vertices...)
}

// Faces returns a copy of all faces. The returned faces share one backing
// array that is not referenced by the mesh.
func (m *Mesh) Faces() [][]int {
	indices := append([]int(nil), m.indices...)
	faces := make([][]int, m.FaceCount())
	for i := range faces {
		faces[i] = indices[m.offsets[i]:m.offsets[i+1]:m.offsets[i+1]]
	}
	return faces
}

// EachFace calls fn for every face in order. The slice passed to fn is a
// read-only view and must not be retained or modified.
func (m *Mesh) EachFace(fn func(i int, face []int)) {
	for i := 0; i < m.FaceCount(); i++ {
		fn(i, m.face(i))
	}
}

// FaceVertices resolves the corners of face i into positions, appending
// them to dst.
func (m *Mesh) FaceVertices(dst []geometry.Vector3, i int) []geometry.Vector3 {
	for _, idx := range m.face(i) {
		dst = append(dst, m.vertices[idx])
	}
	return dst
}

// BoundingBox returns the axis-aligned box of all vertices.
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.vertices)
}

// Equal reports whether two meshes hold identical vertices and faces.
func (m *Mesh) Equal(other *Mesh) bool {
	if m == nil || other == nil {
		return m == other
	}
	return slices.Equal(m.vertices, other.vertices) &&
		slices.Equal(m.indices, other.indices) &&
		slices.Equal(m.offsets, other.offsets)
}

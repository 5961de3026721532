package mesh

import (
	"math"

	"github.com/philipparndt/objfeat/pkg/geometry"
)

type weldKey [3]int64

// Welder turns triangle soup into an indexed mesh. Corners whose
// coordinates fall on the same cell of the precision grid share one
// vertex; with a precision of zero only bit-identical positions do.
type Welder struct {
	precision float64
	lookup    map[weldKey]int
	vertices  []geometry.Vector3
	faces     [][]int
	dropped   int
}

// NewWelder creates a welder for about n triangles.
func NewWelder(precision float64, n int) *Welder {
	return &Welder{
		precision: precision,
		lookup:    make(map[weldKey]int, n/2),
		faces:     make([][]int, 0, n),
	}
}

// Add appends the triangle abc. It reports false, and adds nothing, when
// two of its corners weld onto the same vertex.
func (w *Welder) Add(a, b, c geometry.Vector3) bool {
	ia, ib, ic := w.index(a), w.index(b), w.index(c)
	if ia == ib || ib == ic || ic == ia {
		w.dropped++
		return false
	}
	w.faces = append(w.faces, []int{ia, ib, ic})
	return true
}

// Dropped returns the number of collapsed triangles rejected by Add.
func (w *Welder) Dropped() int {
	return w.dropped
}

// Mesh returns the welded mesh.
func (w *Welder) Mesh() (*Mesh, error) {
	return New(w.vertices, w.faces)
}

func (w *Welder) index(v geometry.Vector3) int {
	key := weldKey{w.quantize(v.X), w.quantize(v.Y), w.quantize(v.Z)}
	if idx, ok := w.lookup[key]; ok {
		return idx
	}
	idx := len(w.vertices)
	w.lookup[key] = idx
	w.vertices = append(w.vertices, v)
	return idx
}

func (w *Welder) quantize(f float64) int64 {
	if f == 0 {
		f = 0 // fold -0 onto +0
	}
	if w.precision <= 0 {
		return int64(math.Float64bits(f))
	}
	return int64(math.Round(f / w.precision))
}

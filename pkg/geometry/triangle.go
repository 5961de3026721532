package geometry

// Triangle is a triangle given by three corners. A is the apex used by
// fan triangulation.
type Triangle struct {
	A, B, C Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// edgeCross returns (B-A) x (C-A).
func (t Triangle) edgeCross() Vector3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.edgeCross().Length() / 2.0
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin: A · (B × C) / 6. Summed over a closed,
// consistently wound surface it yields the enclosed volume.
func (t Triangle) SignedVolume() float64 {
	return t.A.Dot(t.B.Cross(t.C)) / 6.0
}

// Normal returns the unit normal of the triangle, or the zero vector when
// the cross product of its edges is shorter than eps.
func (t Triangle) Normal(eps float64) Vector3 {
	return t.edgeCross().Normalize(eps)
}

// ApexAngle returns the angle at A between the edges A→B and A→C. ok is
// false when either edge is shorter than eps.
func (t Triangle) ApexAngle(eps float64) (angle float64, ok bool) {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	if e1.Length() < eps || e2.Length() < eps {
		return 0, false
	}
	return Angle(e1, e2), true
}

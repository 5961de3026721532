package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box. Extending it with the
// first point collapses it onto that point.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vector3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// BoundingBoxOf returns the bounding box of the given points. The box of
// an empty slice is the zero box.
func BoundingBoxOf(points []Vector3) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the span of the box along each axis
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// MaxSpan returns the largest of the three axis spans.
func (b BoundingBox) MaxSpan() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// MinSpan returns the smallest of the three axis spans.
func (b BoundingBox) MinSpan() float64 {
	s := b.Size()
	return math.Min(s.X, math.Min(s.Y, s.Z))
}

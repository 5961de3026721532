package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 represents a 3D point or vector.
// It shares its layout with r3.Vec so conversions are free.
type Vector3 r3.Vec

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec(v)
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3(r3.Add(v.vec(), other.vec()))
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3(r3.Sub(v.vec(), other.vec()))
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3(r3.Scale(scalar, v.vec()))
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3(r3.Cross(v.vec(), other.vec()))
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return r3.Norm(v.vec())
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction, or the zero
// vector when the length is below eps.
func (v Vector3) Normalize(eps float64) Vector3 {
	if v.Length() < eps {
		return Vector3{}
	}
	return Vector3(r3.Unit(v.vec()))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Angle returns the angle in radians between two vectors. The cosine is
// clamped to [-1, 1]; if either vector has zero length the cosine is
// taken as 0 and the result is π/2.
func Angle(a, b Vector3) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return math.Pi / 2
	}
	return math.Acos(clamp(r3.Cos(a.vec(), b.vec()), -1, 1))
}

// UnitAngle returns the angle between two vectors that are expected to be
// unit length or zero. Zero vectors yield a dot product of 0 (π/2).
func UnitAngle(a, b Vector3) float64 {
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

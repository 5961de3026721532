package analysis

import (
	"fmt"

	"github.com/philipparndt/objfeat/pkg/geometry"
)

// Describe renders the result for display: counts and measures first,
// then the descriptors.
func (r *Result) Describe() string {
	return fmt.Sprintf("Vertices: %d\nFaces: %d\nSurface area: %.4f\nVolume: %.4f\n\n%s",
		r.VertexCount,
		r.FaceCount,
		r.SurfaceArea,
		r.Volume,
		r.Features)
}

// FeaturePayload flattens a result into the string map stored in the
// analysis history.
func FeaturePayload(r *Result) map[string]string {
	payload := map[string]string{
		"Vertices":    fmt.Sprintf("%d", r.VertexCount),
		"Faces":       fmt.Sprintf("%d", r.FaceCount),
		"SurfaceArea": fmt.Sprintf("%.4f", r.SurfaceArea),
		"Volume":      fmt.Sprintf("%.4f", r.Volume),
	}
	for _, field := range r.Features.Fields() {
		format := "%.4f"
		if field.Name == "EulerNumber" {
			format = "%.2f"
		}
		payload[field.Name] = fmt.Sprintf(format, field.Value)
	}
	return payload
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

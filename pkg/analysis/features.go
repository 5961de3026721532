package analysis

import (
	"fmt"
	"math"
	"strings"
)

// EncodingPrecision is the number of decimals every descriptor is rounded
// to before it is narrowed to float32 by Encode.
const EncodingPrecision = 3

// Features are the ten shape descriptors of a mesh, in encoding order.
type Features struct {
	Linearity    float64
	Planarity    float64
	Sphericity   float64
	Anisotropy   float64
	Curvature    float64
	EulerNumber  float64
	Compactness  float64
	AspectRatio  float64
	Convexity    float64
	LocalDensity float64
}

// Field is a named descriptor value.
type Field struct {
	Name  string
	Value float64
}

// FieldNames lists the descriptor names in encoding order.
var FieldNames = [...]string{
	"Linearity",
	"Planarity",
	"Sphericity",
	"Anisotropy",
	"Curvature",
	"EulerNumber",
	"Compactness",
	"AspectRatio",
	"Convexity",
	"LocalDensity",
}

// DescriptorCount is the length of the descriptor part of an encoding.
const DescriptorCount = len(FieldNames)

// Values returns the descriptors in encoding order.
func (f Features) Values() []float64 {
	return []float64{
		f.Linearity,
		f.Planarity,
		f.Sphericity,
		f.Anisotropy,
		f.Curvature,
		f.EulerNumber,
		f.Compactness,
		f.AspectRatio,
		f.Convexity,
		f.LocalDensity,
	}
}

// Fields returns the descriptors paired with their names, in encoding
// order.
func (f Features) Fields() []Field {
	values := f.Values()
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = Field{Name: FieldNames[i], Value: v}
	}
	return fields
}

// Encode returns the classifier input: the ten descriptors, each rounded
// to EncodingPrecision decimals, followed by the given flags as 1 or 0.
// The flags are not part of Features; their order is the caller's.
func (f Features) Encode(flags ...bool) []float32 {
	values := f.Values()
	out := make([]float32, 0, len(values)+len(flags))
	for _, v := range values {
		out = append(out, float32(roundTo(v, EncodingPrecision)))
	}
	for _, flag := range flags {
		if flag {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}

// EncodeWithProfile is Encode with the profile's flags appended in
// RequirementFlagNames order.
func (f Features) EncodeWithProfile(p RequirementProfile) []float32 {
	return f.Encode(p.Flags()...)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// String renders the descriptors one per line for display.
func (f Features) String() string {
	var sb strings.Builder
	for i, field := range f.Fields() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		format := "%s: %.4f"
		if field.Name == "EulerNumber" {
			format = "%s: %.2f"
		}
		fmt.Fprintf(&sb, format, displayName(field.Name), field.Value)
	}
	return sb.String()
}

var displayNames = map[string]string{
	"EulerNumber":  "Euler",
	"AspectRatio":  "Aspect Ratio",
	"LocalDensity": "Local Density",
}

func displayName(name string) string {
	if d, ok := displayNames[name]; ok {
		return d
	}
	return name
}

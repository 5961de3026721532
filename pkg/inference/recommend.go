package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/philipparndt/objfeat/pkg/analysis"
)

// Output heads of the classifier, in the order it returns them.
const (
	HeadFilament = iota
	HeadInfillPercent
	HeadInfillPattern
	HeadNozzle
	HeadLayerHeight
	headCount
)

// Labels of each output head, indexed by head.
var Labels = [headCount][]string{
	HeadFilament:      {"ABS", "ASA", "PC", "PETG", "PLA", "TPU"},
	HeadInfillPercent: {"0-15%", "16-30%", "31-45%", "46-60%", "61-75%", "76-90%", "91-100%"},
	HeadInfillPattern: {"concentric", "cubic", "gyroid", "lines", "triangle"},
	HeadNozzle:        {"0.2", "0.3", "0.4", "0.6", "0.8"},
	HeadLayerHeight:   {"0.1", "0.15", "0.2", "0.25", "0.3"},
}

// Prediction is the decoded classifier answer for one mesh.
type Prediction struct {
	Filament      string
	InfillPercent string
	InfillPattern string
	Nozzle        string
	LayerHeight   string
	// Confidence is the product of the winning probability of each head.
	Confidence float64
	Scores     [headCount][]float32
	Profile    analysis.RequirementProfile
}

// Recommend encodes features with the profile flags, submits them to c
// and decodes the answer. The classifier is owned by the caller.
func Recommend(ctx context.Context, c Classifier, features analysis.Features, profile analysis.RequirementProfile) (*Prediction, error) {
	profile = profile.Normalized()

	outputs, err := c.Classify(ctx, features.EncodeWithProfile(profile))
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	return Decode(outputs, profile)
}

// Decode picks the most probable label of every head.
func Decode(outputs [][]float32, profile analysis.RequirementProfile) (*Prediction, error) {
	if len(outputs) < headCount {
		return nil, fmt.Errorf("classifier returned %d heads, expected %d", len(outputs), headCount)
	}

	p := &Prediction{Confidence: 1, Profile: profile}
	var picked [headCount]string
	for head := 0; head < headCount; head++ {
		scores := outputs[head]
		if len(scores) != len(Labels[head]) {
			return nil, fmt.Errorf("head %d has %d scores, expected %d", head, len(scores), len(Labels[head]))
		}
		idx := argmax(scores)
		picked[head] = Labels[head][idx]
		p.Confidence *= float64(scores[idx])
		p.Scores[head] = append([]float32(nil), scores...)
	}

	p.Filament = picked[HeadFilament]
	p.InfillPercent = picked[HeadInfillPercent]
	p.InfillPattern = picked[HeadInfillPattern]
	p.Nozzle = picked[HeadNozzle]
	p.LayerHeight = picked[HeadLayerHeight]
	return p, nil
}

// argmax returns the index of the first maximum.
func argmax(values []float32) int {
	idx := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[idx] {
			idx = i
		}
	}
	return idx
}

// Suggestions returns advice derived from the requirement profile.
func (p *Prediction) Suggestions() []string {
	var list []string
	if p.Profile.WeightSupport {
		list = append(list, "Consider increasing the infill density.")
	}
	if p.Profile.Friction {
		list = append(list, "Higher infill can improve friction support.")
	}
	if p.Profile.Decorative {
		list = append(list, "A lower infill density may be more efficient.")
	}
	if p.Profile.Detail {
		list = append(list, "A finer nozzle and layer height could improve surface detail.")
	}
	if p.Profile.Functional {
		list = append(list, "Ensure adequate infill for functional parts.")
	}
	return list
}

// Summary renders the prediction and its suggestions for display.
func (p *Prediction) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Filament: %s\nInfill percentage: %s\nInfill pattern: %s\nNozzle: %s\nLayer Height: %s\nConfidence: %.2f%%\n",
		p.Filament, p.InfillPercent, p.InfillPattern, p.Nozzle, p.LayerHeight, p.Confidence*100)

	recs := p.Suggestions()
	if len(recs) == 0 {
		sb.WriteString("Recommendations: None\n")
		return sb.String()
	}
	sb.WriteString("Recommendations:\n")
	for _, r := range recs {
		sb.WriteString(" - ")
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Payload flattens the prediction into the string map stored in the
// analysis history.
func (p *Prediction) Payload() map[string]string {
	return map[string]string{
		"Filament":      p.Filament,
		"InfillPercent": p.InfillPercent,
		"InfillPattern": p.InfillPattern,
		"Nozzle":        p.Nozzle,
		"LayerHeight":   p.LayerHeight,
		"Confidence":    fmt.Sprintf("%.2f", p.Confidence*100),
	}
}

package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxOf(t *testing.T) {
	bbox := BoundingBoxOf([]Vector3{NewVector3(2, 2, 2)})
	if bbox.Size() != (Vector3{}) {
		t.Errorf("single point box: expected zero size, got %v", bbox.Size())
	}

	if empty := BoundingBoxOf(nil); empty != (BoundingBox{}) {
		t.Errorf("empty box: expected zero value, got %v", empty)
	}
}

func TestBoundingBoxSpans(t *testing.T) {
	bbox := BoundingBoxOf([]Vector3{NewVector3(0, 0, 0), NewVector3(10, 20, 30)})

	if bbox.Size() != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: got %v", bbox.Size())
	}
	if bbox.MaxSpan() != 30 {
		t.Errorf("MaxSpan failed: expected 30, got %v", bbox.MaxSpan())
	}
	if bbox.MinSpan() != 10 {
		t.Errorf("MinSpan failed: expected 10, got %v", bbox.MinSpan())
	}
	if bbox.Center() != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: got %v", bbox.Center())
	}
}

func TestBoundingBoxVolume(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(2, 3, 4))

	volume := bbox.Volume()
	expected := 24.0 // 2 * 3 * 4 = 24

	if math.Abs(volume-expected) > 1e-10 {
		t.Errorf("Volume failed: expected %v, got %v", expected, volume)
	}
}

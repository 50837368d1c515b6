package dataset

import (
	"math"
	"testing"
)

func TestViewCatalog_LoopTwelveScenario(t *testing.T) {
	c := ViewCatalog{
		Rotations:    []float32{0, 0.5, 1, 1.5},
		Scales:       []float32{0.95, 1, 1.05},
		OffsetStride: 1,
	}
	if got := c.AugsPerOffset(); got != 12 {
		t.Fatalf("augs per offset %d, want 12", got)
	}

	v := c.At(7)
	if v.RotationIndex != 2 {
		t.Errorf("rotation index %d, want 2", v.RotationIndex)
	}
	if v.ScaleIndex != 1 {
		t.Errorf("scale index %d, want 1", v.ScaleIndex)
	}
	if v.Offset != 0 {
		t.Errorf("offset %d, want 0", v.Offset)
	}
	if got := c.Angle(v); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("angle %v, want pi", got)
	}
	if got := c.Scale(v); got != 1.0 {
		t.Errorf("scale %v, want 1.0", got)
	}
}

func TestViewCatalog_CoversEnumerationSpaceExactlyOnce(t *testing.T) {
	c := DefaultViewCatalog()
	const offsets = 3
	loop := c.AugsPerOffset() * offsets

	seen := make(map[View]int)
	for v := 0; v < loop; v++ {
		seen[c.At(v)]++
	}
	if len(seen) != loop {
		t.Fatalf("enumeration visited %d distinct views, want %d", len(seen), loop)
	}
	for view, n := range seen {
		if n != 1 {
			t.Fatalf("view %+v visited %d times", view, n)
		}
		if view.Offset < 0 || view.Offset >= offsets {
			t.Fatalf("offset %d out of range", view.Offset)
		}
	}
}

func TestViewCatalog_OffsetStride(t *testing.T) {
	c := ViewCatalog{Rotations: []float32{0}, Scales: []float32{1}, OffsetStride: 5}
	for v := 0; v < 4; v++ {
		view := c.At(v)
		if view.Offset != v {
			t.Fatalf("variant %d: offset %d", v, view.Offset)
		}
		if got := c.Pick(view); got != v*5 {
			t.Fatalf("variant %d: pick %d, want %d", v, got, v*5)
		}
	}
}

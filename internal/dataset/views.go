package dataset

import "math"

// ViewCatalog is the fixed catalog of deterministic test-time views:
// rotation angles (as fractions of pi about the vertical axis), scale
// factors, and the stride multiplying the offset index into a
// subsampling pick. Enumeration is rotation-major within one offset.
type ViewCatalog struct {
	Rotations    []float32
	Scales       []float32
	OffsetStride int
}

// DefaultViewCatalog returns the full rotation/scale grid used for
// multi-view evaluation voting.
func DefaultViewCatalog() ViewCatalog {
	return ViewCatalog{
		Rotations:    []float32{0, 0.5, 1, 1.5},
		Scales:       []float32{0.95, 1, 1.05},
		OffsetStride: 1,
	}
}

// View is one reproducible (offset, rotation, scale) combination.
type View struct {
	Offset        int
	RotationIndex int
	ScaleIndex    int
}

// AugsPerOffset returns the number of rotation/scale combinations per
// subsampling offset.
func (c ViewCatalog) AugsPerOffset() int {
	return len(c.Rotations) * len(c.Scales)
}

// At maps a variant index v (already reduced modulo loop) to its view.
// Iterating v over [0, AugsPerOffset()*P) visits every (offset,
// rotation, scale) combination exactly once.
func (c ViewCatalog) At(v int) View {
	augs := c.AugsPerOffset()
	return View{
		Offset:        v / augs,
		RotationIndex: (v % augs) / len(c.Scales),
		ScaleIndex:    (v % augs) % len(c.Scales),
	}
}

// Angle returns the rotation angle of the view in radians.
func (c ViewCatalog) Angle(v View) float32 {
	return float32(math.Pi) * c.Rotations[v.RotationIndex]
}

// Scale returns the scale factor of the view.
func (c ViewCatalog) Scale(v View) float32 {
	return c.Scales[v.ScaleIndex]
}

// Pick returns the deterministic subsampling pick for the view's
// offset.
func (c ViewCatalog) Pick(v View) int {
	stride := c.OffsetStride
	if stride < 1 {
		stride = 1
	}
	return v.Offset * stride
}

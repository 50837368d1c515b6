// Package dataset assembles training and evaluation samples from loaded
// scenes: the stochastic augmentation pipeline behind TrainSampler, the
// deterministic view enumeration behind TestSampler, and the narrow
// contracts to the external subsampling, hierarchy, and batch-merge
// collaborators.
package dataset

import (
	"math/rand"

	"github.com/roomscan-data/pointprep/internal/config"
	"github.com/roomscan-data/pointprep/internal/geom"
)

// Sample is one prepared view of a scene. Feature is row-major with
// FeatureDim values per point: rescaled color, height, and (when the
// pipeline uses normals) the rotated normals. RawColor keeps the
// unscaled 0-255 colors for visualization. Hierarchy is whatever the
// bridge builder returned; this package attaches it without
// interpreting its internals. A Sample is built fresh per call and
// owned by the caller.
type Sample struct {
	Positions  []geom.Vec3
	Feature    []float32
	FeatureDim int
	Labels     []int32
	RawColor   []geom.Vec3
	Hierarchy  any
}

// NumPoints returns the number of points in the sample.
func (s *Sample) NumPoints() int { return len(s.Positions) }

// Subsampler is the grid-based point selection primitive. Subsample is
// the training-time stochastic variant; SubsampleAt is the test-time
// deterministic variant, where the same pick on the same input must
// always return the same ordered selection. Both return index lists
// into the input that respect grid cell locality.
type Subsampler interface {
	Subsample(pts []geom.Vec3, cellSize, ratio float32, rng *rand.Rand) []int
	SubsampleAt(pts []geom.Vec3, cellSize, ratio float32, pick int) []int
}

// HierarchyBuilder constructs the multi-resolution neighbor/viewpoint
// structure for a prepared point set. The result is opaque to this
// package. Failures propagate unchanged to the sampler's caller.
type HierarchyBuilder interface {
	Build(pts []geom.Vec3, k []int, gridSizes []float32, alpha float32) (any, error)
}

// NoopBuilder satisfies HierarchyBuilder without building anything,
// for tests and tools that only exercise the preparation pipeline.
type NoopBuilder struct{}

// Build returns a nil hierarchy.
func (NoopBuilder) Build([]geom.Vec3, []int, []float32, float32) (any, error) {
	return nil, nil
}

// Sampler is the shared sampling interface: TrainSampler and
// TestSampler are selected once at construction, never by a runtime
// mode flag.
type Sampler interface {
	// Len returns the logical dataset length, sceneCount*loop.
	Len() int
	// Sample prepares the view for one logical index.
	Sample(idx int) (*Sample, error)
}

// Params is the resolved per-dataset configuration consumed by the
// samplers.
type Params struct {
	Loop       int
	VoxelMax   int
	CellSize   float32
	Ratio      float32
	UseNormals bool

	// Elastic selects elastic distortion for noise injection; false
	// selects Gaussian jitter. Never both.
	Elastic          bool
	JitterStd        float32
	DistortionParams [][2]float32

	// Hierarchy builder inputs, passed through unchanged.
	K         []int
	GridSizes []float32
	Alpha     float32

	// Views drives the deterministic test enumeration.
	Views ViewCatalog
}

// ParamsFromTuning resolves a tuning config into sampler parameters.
func ParamsFromTuning(c *config.TuningConfig) Params {
	dp := c.GetDistortionParams()
	distortion := make([][2]float32, len(dp))
	for i, p := range dp {
		distortion[i] = [2]float32{float32(p[0]), float32(p[1])}
	}
	gs := c.GetGridSizes()
	gridSizes := make([]float32, len(gs))
	for i, g := range gs {
		gridSizes[i] = float32(g)
	}
	rot := c.GetRotations()
	rotations := make([]float32, len(rot))
	for i, r := range rot {
		rotations[i] = float32(r)
	}
	sc := c.GetScales()
	scales := make([]float32, len(sc))
	for i, s := range sc {
		scales[i] = float32(s)
	}

	return Params{
		Loop:             c.GetLoop(),
		VoxelMax:         c.GetVoxelMax(),
		CellSize:         float32(c.GetCellSize()),
		Ratio:            float32(c.GetRatio()),
		UseNormals:       c.GetUseNormals(),
		Elastic:          c.GetElastic(),
		JitterStd:        float32(c.GetJitterStd()),
		DistortionParams: distortion,
		K:                c.GetK(),
		GridSizes:        gridSizes,
		Alpha:            float32(c.GetAlpha()),
		Views: ViewCatalog{
			Rotations:    rotations,
			Scales:       scales,
			OffsetStride: c.GetOffsetStride(),
		},
	}
}

// assembleFeature concatenates rescaled color, height (z after
// re-centering), and optional normals into the flat per-point feature
// block.
func assembleFeature(cols, pts, normals []geom.Vec3) ([]float32, int) {
	dim := 4
	if normals != nil {
		dim = 7
	}
	out := make([]float32, 0, len(pts)*dim)
	for i := range pts {
		out = append(out, cols[i][0], cols[i][1], cols[i][2], pts[i][2])
		if normals != nil {
			out = append(out, normals[i][0], normals[i][1], normals[i][2])
		}
	}
	return out, dim
}

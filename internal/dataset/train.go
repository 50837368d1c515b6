package dataset

import (
	"fmt"
	"math/rand"

	"github.com/roomscan-data/pointprep/internal/augment"
	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/scene"
)

// TrainSampler draws stochastic augmented samples. Each sampler owns
// its RNG; per-worker samplers must be created with distinct worker
// numbers so parallel workers never correlate. The underlying store is
// shared read-only.
type TrainSampler struct {
	store      *scene.Store
	params     Params
	rng        *rand.Rand
	distortion augment.Distortion
	sub        Subsampler
	builder    HierarchyBuilder
}

// NewTrainSampler builds a sampler over st for one worker. builder may
// be nil when no hierarchy attachment is wanted.
func NewTrainSampler(st *scene.Store, params Params, seed int64, worker int, sub Subsampler, builder HierarchyBuilder) *TrainSampler {
	d := augment.NewDistortion()
	if len(params.DistortionParams) > 0 {
		d.Params = make([]augment.DistortionParam, len(params.DistortionParams))
		for i, p := range params.DistortionParams {
			d.Params[i] = augment.DistortionParam{Granularity: p[0], Magnitude: p[1]}
		}
	}
	return &TrainSampler{
		store:      st,
		params:     params,
		rng:        augment.NewRand(seed, worker),
		distortion: d,
		sub:        sub,
		builder:    builder,
	}
}

// Len returns the logical dataset length.
func (t *TrainSampler) Len() int { return t.store.Count() * t.params.Loop }

// Sample prepares one augmented training view. The stages run as a
// value-passing pipeline over working copies; the stored scene is never
// touched.
func (t *TrainSampler) Sample(idx int) (*Sample, error) {
	if idx < 0 || idx >= t.Len() {
		return nil, fmt.Errorf("sample index %d out of range [0, %d)", idx, t.Len())
	}
	sc := t.store.At(idx / t.params.Loop)

	rigid := augment.DrawRigid(t.rng)
	var normals []geom.Vec3
	if t.params.UseNormals && sc.HasNormals() {
		normals = rigid.Normals(sc.Normals)
	}
	pos := rigid.Positions(sc.Positions)

	if t.params.Elastic {
		pos = t.distortion.Apply(t.rng, pos)
	} else {
		pos = augment.Jitter(t.rng, pos, t.params.JitterStd)
	}
	pos = geom.Recentered(pos)

	indices := t.sub.Subsample(pos, t.params.CellSize, t.params.Ratio, t.rng)
	pos = geom.Gather(pos, indices)
	if len(pos) > t.params.VoxelMax {
		kept := augment.LocalityCrop(t.rng, pos, t.params.VoxelMax)
		pos = geom.Gather(pos, kept)
		indices = geom.GatherInts(indices, kept)
	}

	cols := geom.Gather(sc.Colors, indices)
	raw := geom.Clone(cols)
	labels := geom.GatherInt32(sc.Labels, indices)
	if normals != nil {
		normals = geom.Gather(normals, indices)
	}

	cols = augment.AugmentColors(t.rng, cols)
	if normals != nil && t.rng.Float64() < augment.NormalDropProbability {
		normals = augment.ZeroVecs(len(normals))
	}

	feature, dim := assembleFeature(cols, pos, normals)
	s := &Sample{
		Positions:  pos,
		Feature:    feature,
		FeatureDim: dim,
		Labels:     labels,
		RawColor:   raw,
	}

	if t.builder != nil {
		h, err := t.builder.Build(pos, t.params.K, t.params.GridSizes, t.params.Alpha)
		if err != nil {
			return nil, fmt.Errorf("build hierarchy for scene %q: %w", sc.Name, err)
		}
		s.Hierarchy = h
	}
	return s, nil
}

package dataset

import (
	"fmt"

	"github.com/roomscan-data/pointprep/internal/augment"
	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/scene"
)

// TestSampler enumerates deterministic evaluation views. No random
// source is consulted: the variant index alone selects the (offset,
// rotation, scale) combination, so repeated runs are bit-identical and
// multiple views of one scene can be aggregated by voting.
type TestSampler struct {
	store   *scene.Store
	params  Params
	sub     Subsampler
	builder HierarchyBuilder
}

// NewTestSampler builds a deterministic sampler over st. builder may be
// nil when no hierarchy attachment is wanted.
func NewTestSampler(st *scene.Store, params Params, sub Subsampler, builder HierarchyBuilder) *TestSampler {
	return &TestSampler{store: st, params: params, sub: sub, builder: builder}
}

// Len returns the logical dataset length.
func (t *TestSampler) Len() int { return t.store.Count() * t.params.Loop }

// Sample prepares the deterministic view for one logical index. Color
// is rescaled only; there is no distortion, jitter, stochastic color
// work, or crop. Re-centering happens twice: after the rigid transform
// and again after the deterministic subsampling.
func (t *TestSampler) Sample(idx int) (*Sample, error) {
	if idx < 0 || idx >= t.Len() {
		return nil, fmt.Errorf("sample index %d out of range [0, %d)", idx, t.Len())
	}
	view := t.params.Views.At(idx % t.params.Loop)
	sc := t.store.At(idx / t.params.Loop)

	rigid := augment.NewRigid(t.params.Views.Angle(view), t.params.Views.Scale(view))
	var normals []geom.Vec3
	if t.params.UseNormals && sc.HasNormals() {
		normals = rigid.Normals(sc.Normals)
	}
	pos := rigid.Positions(sc.Positions)
	pos = geom.Recentered(pos)

	indices := t.sub.SubsampleAt(pos, t.params.CellSize, t.params.Ratio, t.params.Views.Pick(view))
	pos = geom.Gather(pos, indices)
	labels := geom.GatherInt32(sc.Labels, indices)
	cols := geom.Gather(sc.Colors, indices)
	raw := geom.Clone(cols)
	if normals != nil {
		normals = geom.Gather(normals, indices)
	}

	cols = augment.ScaleColors(cols)
	pos = geom.Recentered(pos)

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

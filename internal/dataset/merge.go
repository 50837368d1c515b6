package dataset

import (
	"fmt"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// Batch is a list of per-scene samples combined into one contiguous
// structure. Offsets holds the point-row boundaries: sample i occupies
// rows [Offsets[i], Offsets[i+1]).
type Batch struct {
	Positions  []geom.Vec3
	Feature    []float32
	FeatureDim int
	Labels     []int32
	RawColor   []geom.Vec3
	Offsets    []int32
}

// NumSamples returns the number of merged samples.
func (b *Batch) NumSamples() int { return len(b.Offsets) - 1 }

// Merger combines per-scene samples into one batch-ready structure.
// All samples handed to a Merger share the same attribute names and
// per-point-row shapes.
type Merger interface {
	Merge(samples []*Sample) (*Batch, error)
}

// ConcatMerger is the default Merger: it verifies the shared shape
// contract and concatenates all per-point tensors in sample order.
type ConcatMerger struct{}

// Merge implements Merger.
func (ConcatMerger) Merge(samples []*Sample) (*Batch, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("merge: no samples")
	}

	dim := samples[0].FeatureDim
	total := 0
	for i, s := range samples {
		if s.FeatureDim != dim {
			return nil, fmt.Errorf("merge: sample %d feature width %d, want %d", i, s.FeatureDim, dim)
		}
		n := s.NumPoints()
		if len(s.Labels) != n || len(s.RawColor) != n || len(s.Feature) != n*dim {
			return nil, fmt.Errorf("merge: sample %d tensors misaligned (points=%d labels=%d raw=%d feature=%d)",
				i, n, len(s.Labels), len(s.RawColor), len(s.Feature))
		}
		total += n
	}

	b := &Batch{
		Positions:  make([]geom.Vec3, 0, total),
		Feature:    make([]float32, 0, total*dim),
		FeatureDim: dim,
		Labels:     make([]int32, 0, total),
		RawColor:   make([]geom.Vec3, 0, total),
		Offsets:    make([]int32, 1, len(samples)+1),
	}
	for _, s := range samples {
		b.Positions = append(b.Positions, s.Positions...)
		b.Feature = append(b.Feature, s.Feature...)
		b.Labels = append(b.Labels, s.Labels...)
		b.RawColor = append(b.RawColor, s.RawColor...)
		b.Offsets = append(b.Offsets, b.Offsets[len(b.Offsets)-1]+int32(s.NumPoints()))
	}
	return b, nil
}

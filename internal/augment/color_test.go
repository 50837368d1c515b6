package augment

import (
	"math"
	"math/rand"
	"testing"

	"github.com/roomscan-data/pointprep/internal/geom"
)

func TestScaleColors(t *testing.T) {
	cols := []geom.Vec3{{250, 125, 0}, {25, 50, 75}}
	out := ScaleColors(cols)
	if out[0] != (geom.Vec3{1, 0.5, 0}) {
		t.Fatalf("scaled color %v", out[0])
	}
	// input untouched
	if cols[0] != (geom.Vec3{250, 125, 0}) {
		t.Fatal("input mutated")
	}
}

func TestAugmentColors_DropBranchZeroes(t *testing.T) {
	// find a seed whose first draw triggers the drop branch
	for seed := int64(0); seed < 100; seed++ {
		trial := rand.New(rand.NewSource(seed))
		if trial.Float64() >= ColorDropProbability {
			continue
		}
		rng := rand.New(rand.NewSource(seed))
		out := AugmentColors(rng, []geom.Vec3{{200, 100, 50}, {10, 20, 30}})
		for i, c := range out {
			if c != (geom.Vec3{}) {
				t.Fatalf("seed %d: dropped color %d is %v, want zero", seed, i, c)
			}
		}
		return
	}
	t.Fatal("no dropping seed found in search range")
}

func TestAugmentColors_PlainBranchScalesOnly(t *testing.T) {
	// find a seed where both the drop and the contrast draw miss
	for seed := int64(0); seed < 200; seed++ {
		trial := rand.New(rand.NewSource(seed))
		if trial.Float64() < ColorDropProbability {
			continue
		}
		if trial.Float64() < ContrastProbability {
			continue
		}
		rng := rand.New(rand.NewSource(seed))
		in := []geom.Vec3{{250, 125, 0}}
		out := AugmentColors(rng, in)
		if out[0] != (geom.Vec3{1, 0.5, 0}) {
			t.Fatalf("seed %d: plain branch produced %v", seed, out[0])
		}
		return
	}
	t.Fatal("no plain-branch seed found in search range")
}

func TestStretchBlend_FullAlphaHitsFullRange(t *testing.T) {
	// with α=1 the blend collapses to the pure min-max stretch, so the
	// channel extremes must map to 0 and 255
	cols := []geom.Vec3{{50, 100, 10}, {150, 200, 10}, {100, 150, 10}}
	min := cols[0]
	max := cols[1]
	alpha := float32(1)
	for ch := 0; ch < 3; ch++ {
		span := max[ch] - min[ch]
		if span <= 0 {
			continue
		}
		s := 255 / span
		gain := 1 - alpha + alpha*s
		bias := alpha * min[ch] * s
		lo := gain*min[ch] - bias
		hi := gain*max[ch] - bias
		if math.Abs(float64(lo)) > 1e-3 || math.Abs(float64(hi-255)) > 1e-3 {
			t.Fatalf("channel %d: stretch maps extremes to (%v, %v)", ch, lo, hi)
		}
	}

	// degenerate channel (zero span) must survive the blend unchanged
	rng := rand.New(rand.NewSource(0))
	work := geom.Clone(cols)
	stretchBlend(rng, work)
	for i := range work {
		if work[i][2] != cols[i][2] {
			t.Fatalf("zero-span channel changed: %v -> %v", cols[i][2], work[i][2])
		}
	}
}

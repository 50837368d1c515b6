package augment

import (
	"math"
	"math/rand"
	"testing"

	"github.com/roomscan-data/pointprep/internal/geom"
)

func randomCloud(rng *rand.Rand, n int, extent float32) []geom.Vec3 {
	pts := make([]geom.Vec3, n)
	for i := range pts {
		pts[i] = geom.Vec3{
			rng.Float32() * extent,
			rng.Float32() * extent,
			rng.Float32() * extent * 0.3,
		}
	}
	return pts
}

func TestDistortion_SkipBranchIsIdentity(t *testing.T) {
	// an empty schedule forces the pass loop to do nothing, so the
	// output must equal the input bit for bit even when the apply
	// branch is taken
	d := Distortion{Params: nil}
	rng := rand.New(rand.NewSource(5))
	pts := randomCloud(rng, 200, 4)

	out := d.Apply(rng, pts)
	for i := range pts {
		if out[i] != pts[i] {
			t.Fatalf("point %d moved without any distortion pass: %v -> %v", i, pts[i], out[i])
		}
	}
}

func TestDistortion_SkipProbabilityExact(t *testing.T) {
	// locate a seed whose first draw lands in the skip branch and check
	// the output is an exact copy
	d := NewDistortion()
	for seed := int64(0); seed < 200; seed++ {
		trial := rand.New(rand.NewSource(seed))
		if trial.Float64() < DistortionApplyProbability {
			continue
		}
		rng := rand.New(rand.NewSource(seed))
		pts := randomCloud(rand.New(rand.NewSource(99)), 100, 4)
		out := d.Apply(rng, pts)
		for i := range pts {
			if out[i] != pts[i] {
				t.Fatalf("seed %d skip branch modified point %d", seed, i)
			}
		}
		return
	}
	t.Fatal("no skipping seed found in search range")
}

func TestDistortion_DoesNotMutateInput(t *testing.T) {
	d := NewDistortion()
	rng := rand.New(rand.NewSource(3))
	pts := randomCloud(rand.New(rand.NewSource(7)), 300, 4)
	orig := geom.Clone(pts)

	d.Apply(rng, pts)
	for i := range pts {
		if pts[i] != orig[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestDistortion_DisplacementsAreSmooth(t *testing.T) {
	// adjacent points must receive nearly identical displacements: the
	// field is low-frequency by construction
	d := Distortion{Params: []DistortionParam{{Granularity: 0.2, Magnitude: 0.4}}}
	rng := rand.New(rand.NewSource(21))

	pts := randomCloud(rand.New(rand.NewSource(8)), 400, 4)
	// append a twin 1mm away from point 0
	twin := pts[0]
	twin[0] += 0.001
	pts = append(pts, twin)

	out := d.Apply(rng, pts)
	d0 := out[0].Sub(pts[0])
	d1 := out[len(out)-1].Sub(pts[len(pts)-1])
	delta := math.Sqrt(float64(d0.SqDist(d1)))
	if delta > 0.05 {
		t.Fatalf("neighboring displacements differ by %v, field is not smooth", delta)
	}
}

func TestDistortion_DegenerateGeometry(t *testing.T) {
	// all points coincident: zero-extent box must not panic or divide
	// by zero; the minimum grid shape of 3 applies on every axis
	d := Distortion{Params: []DistortionParam{{Granularity: 0.2, Magnitude: 0.4}}}
	rng := rand.New(rand.NewSource(2))

	pts := []geom.Vec3{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}
	out := d.Apply(rng, pts)
	if len(out) != 3 {
		t.Fatalf("got %d points", len(out))
	}
	for _, p := range out {
		for c := 0; c < 3; c++ {
			if math.IsNaN(float64(p[c])) || math.IsInf(float64(p[c]), 0) {
				t.Fatalf("degenerate geometry produced non-finite coordinate %v", p)
			}
		}
	}
}

func TestDistortion_Reproducible(t *testing.T) {
	d := NewDistortion()
	pts := randomCloud(rand.New(rand.NewSource(13)), 250, 4)

	a := d.Apply(rand.New(rand.NewSource(42)), pts)
	b := d.Apply(rand.New(rand.NewSource(42)), pts)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at point %d: %v vs %v", i, a[i], b[i])
		}
	}
}

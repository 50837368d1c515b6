package augment

import (
	"math"
	"math/rand"
	"testing"

	"github.com/roomscan-data/pointprep/internal/geom"
)

func TestDrawRigid_NormalsGetPureRotation(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := DrawRigid(rand.New(rand.NewSource(seed)))

		// the normals matrix must stay orthogonal with determinant 1
		det := r.Rotation.Det()
		if math.Abs(float64(det)-1) > 1e-5 {
			t.Fatalf("seed %d: normals matrix determinant %v", seed, det)
		}

		// the positions matrix carries the scale: its determinant is
		// the cube of a factor in [MinScale, MaxScale]
		sdet := float64(r.Scaled.Det())
		s := math.Cbrt(sdet)
		if s < MinScale-1e-4 || s > MaxScale+1e-4 {
			t.Fatalf("seed %d: implied scale %v outside [%v, %v]", seed, s, MinScale, MaxScale)
		}
	}
}

func TestNewRigid_KnownAngle(t *testing.T) {
	r := NewRigid(math.Pi, 1.0)
	got := r.Scaled.Apply(geom.Vec3{1, 2, 3})
	want := geom.Vec3{-1, -2, 3}
	for c := 0; c < 3; c++ {
		if math.Abs(float64(got[c]-want[c])) > 1e-5 {
			t.Fatalf("half turn: got %v, want %v", got, want)
		}
	}
}

func TestRigid_NormalLengthPreserved(t *testing.T) {
	r := DrawRigid(rand.New(rand.NewSource(9)))
	ns := r.Normals([]geom.Vec3{{0.6, 0.8, 0}})
	norm := math.Sqrt(float64(ns[0][0]*ns[0][0] + ns[0][1]*ns[0][1] + ns[0][2]*ns[0][2]))
	if math.Abs(norm-1) > 1e-5 {
		t.Fatalf("rotated normal has length %v", norm)
	}
}

func TestJitter_StdDeviationScale(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pts := make([]geom.Vec3, 10000)
	out := Jitter(rng, pts, 0.005)

	var sumSq float64
	for _, p := range out {
		for c := 0; c < 3; c++ {
			sumSq += float64(p[c]) * float64(p[c])
		}
	}
	std := math.Sqrt(sumSq / float64(3*len(out)))
	if std < 0.004 || std > 0.006 {
		t.Fatalf("empirical jitter std %v, want ≈0.005", std)
	}
}

func TestWorkerSeed_Distinct(t *testing.T) {
	seen := make(map[int64]bool)
	for w := 0; w < 64; w++ {
		s := WorkerSeed(12345, w)
		if seen[s] {
			t.Fatalf("worker %d collided on seed %d", w, s)
		}
		seen[s] = true
	}
	if WorkerSeed(1, 0) == WorkerSeed(2, 0) {
		t.Fatal("different base seeds produced the same worker seed")
	}
}

package augment

import (
	"math"
	"math/rand"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// Scale factor range for the training rigid transform.
const (
	MinScale = 0.8
	MaxScale = 1.2
)

// Rigid is the two-step transform drawn once per sample. Normals see
// the pure rotation; positions see the same rotation with the uniform
// scale folded in. The split is a behavioral contract of the pipeline,
// not an optimization: the two matrices are kept explicit so the
// asymmetry cannot be collapsed accidentally.
type Rigid struct {
	Rotation geom.Mat3 // unscaled, applied to normals
	Scaled   geom.Mat3 // Rotation * scale, applied to positions
}

// NewRigid builds the transform for a known angle (radians, about the
// vertical axis) and scale factor. Used directly by the deterministic
// test enumeration.
func NewRigid(angle, scale float32) Rigid {
	rot := geom.RotationZ(angle)
	return Rigid{Rotation: rot, Scaled: rot.Scaled(scale)}
}

// DrawRigid samples a training transform: angle uniform in [0, 2π),
// scale uniform in [MinScale, MaxScale].
func DrawRigid(rng *rand.Rand) Rigid {
	angle := float32(rng.Float64() * 2 * math.Pi)
	scale := float32(MinScale + rng.Float64()*(MaxScale-MinScale))
	return NewRigid(angle, scale)
}

// Positions returns a new slice with the rotation+scale matrix applied.
func (r Rigid) Positions(pts []geom.Vec3) []geom.Vec3 {
	return geom.Transformed(pts, r.Scaled)
}

// Normals returns a new slice with the pure rotation applied.
func (r Rigid) Normals(ns []geom.Vec3) []geom.Vec3 {
	return geom.Transformed(ns, r.Rotation)
}

// Jitter returns a new slice with independent Gaussian positional noise
// of the given standard deviation added to every coordinate.
func Jitter(rng *rand.Rand, pts []geom.Vec3, std float32) []geom.Vec3 {
	out := make([]geom.Vec3, len(pts))
	for i, p := range pts {
		out[i] = geom.Vec3{
			p[0] + float32(rng.NormFloat64())*std,
			p[1] + float32(rng.NormFloat64())*std,
			p[2] + float32(rng.NormFloat64())*std,
		}
	}
	return out
}

// ZeroVecs returns a zeroed slice of the same length, used for the
// color-drop and normal-drop branches.
func ZeroVecs(n int) []geom.Vec3 {
	return make([]geom.Vec3, n)
}

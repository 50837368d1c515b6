// Package augment implements the per-sample point-cloud augmentation
// primitives: the rigid rotate/scale transform, elastic spatial
// distortion, Gaussian jitter, stochastic color perturbation, and the
// locality-preserving crop. Every primitive takes its randomness from
// an explicit *rand.Rand and returns fresh slices, so samplers stay
// reproducible and scenes are never aliased across variants.
package augment

import "math/rand"

// WorkerSeed derives an independent seed for the given worker from a
// base seed using a splitmix64 step, so parallel workers never share an
// augmentation stream.
func WorkerSeed(base int64, worker int) int64 {
	z := uint64(base) + uint64(worker+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// NewRand returns a rand.Rand seeded for one worker.
func NewRand(base int64, worker int) *rand.Rand {
	return rand.New(rand.NewSource(WorkerSeed(base, worker)))
}

package augment

import (
	"math/rand"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// Probabilities and constants of the stochastic color policy.
const (
	// ColorDropProbability zeroes all channels, simulating scans with
	// missing color.
	ColorDropProbability = 0.2
	// ContrastProbability applies the random contrast-stretch blend.
	ContrastProbability = 0.2
	// NormalDropProbability zeroes normals, independent of the color
	// decision.
	NormalDropProbability = 0.2
	// ColorScale brings the 0-255 channels into a small numeric range.
	ColorScale = 1.0 / 250.0
)

// AugmentColors applies the training color policy to a fresh copy of
// cols (raw 0-255 scale): with ColorDropProbability all channels are
// zeroed; otherwise, with ContrastProbability, the colors are blended
// with their per-sample min-max stretch to [0,255] by a uniform factor,
// and in every non-dropped case the result is rescaled by ColorScale.
func AugmentColors(rng *rand.Rand, cols []geom.Vec3) []geom.Vec3 {
	if rng.Float64() < ColorDropProbability {
		return ZeroVecs(len(cols))
	}
	out := geom.Clone(cols)
	if rng.Float64() < ContrastProbability {
		stretchBlend(rng, out)
	}
	for i := range out {
		out[i][0] *= ColorScale
		out[i][1] *= ColorScale
		out[i][2] *= ColorScale
	}
	return out
}

// stretchBlend replaces each channel value c with
// (1-α+α·s)·c - α·cmin·s, where s = 255/(cmax-cmin) per channel and α
// is uniform in [0,1]. A channel with zero range is left unchanged.
func stretchBlend(rng *rand.Rand, cols []geom.Vec3) {
	if len(cols) == 0 {
		return
	}
	min := cols[0]
	max := cols[0]
	for _, c := range cols[1:] {
		for ch := 0; ch < 3; ch++ {
			if c[ch] < min[ch] {
				min[ch] = c[ch]
			}
			if c[ch] > max[ch] {
				max[ch] = c[ch]
			}
		}
	}
	alpha := float32(rng.Float64())
	for ch := 0; ch < 3; ch++ {
		span := max[ch] - min[ch]
		if span <= 0 {
			continue
		}
		s := 255 / span
		gain := 1 - alpha + alpha*s
		bias := alpha * min[ch] * s
		for i := range cols {
			cols[i][ch] = gain*cols[i][ch] - bias
		}
	}
}

// ScaleColors returns a copy of cols rescaled by ColorScale. This is
// the deterministic test-time color path: no dropout, no stretch.
func ScaleColors(cols []geom.Vec3) []geom.Vec3 {
	out := make([]geom.Vec3, len(cols))
	for i, c := range cols {
		out[i] = geom.Vec3{c[0] * ColorScale, c[1] * ColorScale, c[2] * ColorScale}
	}
	return out
}

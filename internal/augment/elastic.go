package augment

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// DistortionParam is one (granularity, magnitude) pass of the elastic
// distortion: granularity is the noise grid cell size in meters,
// magnitude scales the interpolated displacement.
type DistortionParam struct {
	Granularity float32
	Magnitude   float32
}

// DefaultDistortionParams is the coarse-then-fine two-pass schedule.
var DefaultDistortionParams = []DistortionParam{
	{Granularity: 0.2, Magnitude: 0.4},
	{Granularity: 0.8, Magnitude: 1.6},
}

// DistortionApplyProbability is the chance the whole distortion call
// runs; the complement keeps some samples undistorted.
const DistortionApplyProbability = 0.95

// Distortion warps coordinates with a smooth low-frequency random
// displacement field: per pass, standard-normal noise is sampled on a
// coarse grid over the cloud's bounding box, box-blurred along each
// axis twice, and trilinearly interpolated at every point.
type Distortion struct {
	Params []DistortionParam
}

// NewDistortion returns a Distortion with the default two-pass schedule.
func NewDistortion() Distortion {
	return Distortion{Params: DefaultDistortionParams}
}

// Apply returns distorted coordinates. With probability
// 1-DistortionApplyProbability the input is returned as an unmodified
// copy. All randomness comes from rng.
func (d Distortion) Apply(rng *rand.Rand, pts []geom.Vec3) []geom.Vec3 {
	out := geom.Clone(pts)
	if len(out) == 0 {
		return out
	}
	if rng.Float64() >= DistortionApplyProbability {
		return out
	}
	for _, p := range d.Params {
		distort(rng, out, p.Granularity, p.Magnitude)
	}
	return out
}

// distort applies one (granularity, magnitude) pass in place on the
// working copy.
func distort(rng *rand.Rand, pts []geom.Vec3, granularity, magnitude float32) {
	b := geom.Bounds(pts)
	ext := b.Extent()

	// One padding cell on each side plus one extra; a zero-extent axis
	// degenerates to the minimum shape of 3 instead of failing.
	var dim [3]int
	for a := 0; a < 3; a++ {
		dim[a] = int(math32.Floor(ext[a]/granularity)) + 3
		if dim[a] < 3 {
			dim[a] = 3
		}
	}

	field := newNoiseField(rng, dim)
	// Two full three-axis passes of the length-3 uniform kernel. The
	// zero-padded boundaries shrink the field near the edges slightly;
	// that bias is part of the contract.
	for pass := 0; pass < 2; pass++ {
		field.blurAxis(0)
		field.blurAxis(1)
		field.blurAxis(2)
	}

	// Node i along axis a sits at min-granularity + i*granularity,
	// spanning [min-granularity, min+granularity*(dim-2)].
	origin := b.Min.Sub(geom.Vec3{granularity, granularity, granularity})
	inv := 1 / granularity
	for i, p := range pts {
		d, ok := field.trilinear(
			(p[0]-origin[0])*inv,
			(p[1]-origin[1])*inv,
			(p[2]-origin[2])*inv,
		)
		if !ok {
			continue // out of bounds: zero displacement
		}
		pts[i] = geom.Vec3{
			p[0] + d[0]*magnitude,
			p[1] + d[1]*magnitude,
			p[2] + d[2]*magnitude,
		}
	}
}

// noiseField is a dense dim[0]×dim[1]×dim[2] grid of 3-vectors.
type noiseField struct {
	dim  [3]int
	data []float32 // len = dim0*dim1*dim2*3
}

func newNoiseField(rng *rand.Rand, dim [3]int) *noiseField {
	f := &noiseField{dim: dim, data: make([]float32, dim[0]*dim[1]*dim[2]*3)}
	for i := range f.data {
		f.data[i] = float32(rng.NormFloat64())
	}
	return f
}

func (f *noiseField) at(x, y, z, c int) float32 {
	return f.data[((x*f.dim[1]+y)*f.dim[2]+z)*3+c]
}

func (f *noiseField) set(x, y, z, c int, v float32) {
	f.data[((x*f.dim[1]+y)*f.dim[2]+z)*3+c] = v
}

// blurAxis convolves the field along one axis with the length-3 uniform
// kernel, treating out-of-range nodes as zero.
func (f *noiseField) blurAxis(axis int) {
	out := make([]float32, len(f.data))
	prev := &noiseField{dim: f.dim, data: f.data}
	next := &noiseField{dim: f.dim, data: out}

	var step [3]int
	step[axis] = 1

	for x := 0; x < f.dim[0]; x++ {
		for y := 0; y < f.dim[1]; y++ {
			for z := 0; z < f.dim[2]; z++ {
				for c := 0; c < 3; c++ {
					sum := prev.at(x, y, z, c)
					lx, ly, lz := x-step[0], y-step[1], z-step[2]
					if lx >= 0 && ly >= 0 && lz >= 0 {
						sum += prev.at(lx, ly, lz, c)
					}
					hx, hy, hz := x+step[0], y+step[1], z+step[2]
					if hx < f.dim[0] && hy < f.dim[1] && hz < f.dim[2] {
						sum += prev.at(hx, hy, hz, c)
					}
					next.set(x, y, z, c, sum/3)
				}
			}
		}
	}
	f.data = out
}

// trilinear interpolates the field at grid coordinates (u, v, w). The
// second return is false when the query falls outside the grid.
func (f *noiseField) trilinear(u, v, w float32) (geom.Vec3, bool) {
	if u < 0 || v < 0 || w < 0 ||
		u > float32(f.dim[0]-1) || v > float32(f.dim[1]-1) || w > float32(f.dim[2]-1) {
		return geom.Vec3{}, false
	}

	x0 := int(math32.Floor(u))
	y0 := int(math32.Floor(v))
	z0 := int(math32.Floor(w))
	if x0 > f.dim[0]-2 {
		x0 = f.dim[0] - 2
	}
	if y0 > f.dim[1]-2 {
		y0 = f.dim[1] - 2
	}
	if z0 > f.dim[2]-2 {
		z0 = f.dim[2] - 2
	}
	fx := u - float32(x0)
	fy := v - float32(y0)
	fz := w - float32(z0)

	var out geom.Vec3
	for c := 0; c < 3; c++ {
		c00 := f.at(x0, y0, z0, c)*(1-fx) + f.at(x0+1, y0, z0, c)*fx
		c10 := f.at(x0, y0+1, z0, c)*(1-fx) + f.at(x0+1, y0+1, z0, c)*fx
		c01 := f.at(x0, y0, z0+1, c)*(1-fx) + f.at(x0+1, y0, z0+1, c)*fx
		c11 := f.at(x0, y0+1, z0+1, c)*(1-fx) + f.at(x0+1, y0+1, z0+1, c)*fx
		c0 := c00*(1-fy) + c10*fy
		c1 := c01*(1-fy) + c11*fy
		out[c] = c0*(1-fz) + c1*fz
	}
	return out, true
}

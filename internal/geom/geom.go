// Package geom provides the float32 vector and matrix primitives shared
// by the scene preparation pipeline. Points are stored as dense slices
// of Vec3 and treated as row vectors, matching the layout of the
// persisted scene tensors.
package geom

import "github.com/chewxy/math32"

// Vec3 is one point or per-point attribute triple (x, y, z or r, g, b).
type Vec3 [3]float32

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// SqDist returns the squared Euclidean distance between v and o.
func (v Vec3) SqDist(o Vec3) float32 {
	dx := v[0] - o[0]
	dy := v[1] - o[1]
	dz := v[2] - o[2]
	return dx*dx + dy*dy + dz*dz
}

// Mat3 is a row-major 3x3 matrix. Transforms apply to row vectors,
// p' = p·M, so columns of M are the images of the basis vectors.
type Mat3 [9]float32

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// RotationZ returns the rotation about the vertical axis used by the
// rigid augmentation: the 2D rotation sub-matrix embedded in the 3x3
// identity, leaving z untouched.
func RotationZ(angle float32) Mat3 {
	s, c := math32.Sincos(angle)
	return Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Scaled returns m with every element multiplied by f.
func (m Mat3) Scaled(f float32) Mat3 {
	var out Mat3
	for i, v := range m {
		out[i] = v * f
	}
	return out
}

// Apply multiplies the row vector v by m.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		v[0]*m[0] + v[1]*m[3] + v[2]*m[6],
		v[0]*m[1] + v[1]*m[4] + v[2]*m[7],
		v[0]*m[2] + v[1]*m[5] + v[2]*m[8],
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant of m.
func (m Mat3) Det() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Mul returns the matrix product m·o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[r*3+k] * o[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// Bounds returns the bounding box of pts. The zero Box is returned for
// an empty slice.
func Bounds(pts []Vec3) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		for a := 0; a < 3; a++ {
			if p[a] < b.Min[a] {
				b.Min[a] = p[a]
			}
			if p[a] > b.Max[a] {
				b.Max[a] = p[a]
			}
		}
	}
	return b
}

// Extent returns the per-axis size of the box.
func (b Box) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Clone returns a copy of pts.
func Clone(pts []Vec3) []Vec3 {
	out := make([]Vec3, len(pts))
	copy(out, pts)
	return out
}

// Transformed returns a new slice with every point multiplied by m.
func Transformed(pts []Vec3, m Mat3) []Vec3 {
	out := make([]Vec3, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// Recentered returns a new slice translated so the per-axis minimum of
// the points is zero.
func Recentered(pts []Vec3) []Vec3 {
	if len(pts) == 0 {
		return nil
	}
	min := Bounds(pts).Min
	out := make([]Vec3, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(min)
	}
	return out
}

// Gather returns the rows of pts selected by idx, in idx order.
func Gather(pts []Vec3, idx []int) []Vec3 {
	out := make([]Vec3, len(idx))
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}

// GatherInt32 returns the elements of vals selected by idx, in idx order.
func GatherInt32(vals []int32, idx []int) []int32 {
	out := make([]int32, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}

// GatherInts composes two index selections: out[i] = vals[idx[i]].
func GatherInts(vals []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}

// Floor returns the element-wise floor of v.
func Floor(v Vec3) Vec3 {
	return Vec3{math32.Floor(v[0]), math32.Floor(v[1]), math32.Floor(v[2])}
}

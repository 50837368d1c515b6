// Package voxel provides grid-based point subsampling: points are
// bucketed into fixed-size axis-aligned cubic cells and each cell keeps
// one representative per ratio input points, so the selection follows
// the spatial structure of the cloud instead of a uniform random
// subset. The deterministic variant is a pure function of its inputs
// and backs the test-time enumeration protocol.
package voxel

import (
	"math"
	"math/rand"
	"sort"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// EstimatedPointsPerCell sizes the cell index for a typical indoor scan
// at the configured cell sizes.
const EstimatedPointsPerCell = 8

// Grid is a stateless grid subsampler. It satisfies the dataset
// Subsampler contract.
type Grid struct{}

// cellKey packs the three signed cell coordinates into one map key.
// Coordinates are zigzag-encoded to 21 bits each so negative cells
// (clouds are usually recentred first, but not required) hash
// correctly.
func cellKey(p geom.Vec3, inv float32) uint64 {
	cx := int64(math.Floor(float64(p[0] * inv)))
	cy := int64(math.Floor(float64(p[1] * inv)))
	cz := int64(math.Floor(float64(p[2] * inv)))

	zig := func(v int64) uint64 {
		return uint64((v << 1) ^ (v >> 63)) & ((1 << 21) - 1)
	}
	return zig(cx)<<42 | zig(cy)<<21 | zig(cz)
}

// buildCells buckets points into cells, preserving first-appearance
// cell order and original point order within each cell. Both orders are
// deterministic functions of the input, which keeps the deterministic
// subsampling variant reproducible.
func buildCells(pts []geom.Vec3, cellSize float32) [][]int {
	inv := 1 / cellSize
	index := make(map[uint64]int, len(pts)/EstimatedPointsPerCell)
	var cells [][]int
	for i, p := range pts {
		key := cellKey(p, inv)
		ci, ok := index[key]
		if !ok {
			ci = len(cells)
			index[key] = ci
			cells = append(cells, nil)
		}
		cells[ci] = append(cells[ci], i)
	}
	return cells
}

// keepPerCell returns how many representatives a cell of the given
// occupancy contributes. ratio is the downsampling ratio, input points
// per kept point, so a cell keeps round(count/ratio). Every occupied
// cell keeps at least one point, and ratios at or below 1 keep the
// whole cell.
func keepPerCell(count int, ratio float32) int {
	if ratio <= 1 {
		return count
	}
	k := int(math.Round(float64(count) / float64(ratio)))
	if k < 1 {
		k = 1
	}
	if k > count {
		k = count
	}
	return k
}

// estimateKept sizes the output for a downsampling ratio.
func estimateKept(n int, ratio float32) int {
	if ratio <= 1 {
		return n
	}
	return int(float64(n) / float64(ratio))
}

// Subsample selects representative point indices with cells visited in
// first-appearance order; within each cell the representatives are
// drawn from rng and emitted in original relative order.
func (Grid) Subsample(pts []geom.Vec3, cellSize, ratio float32, rng *rand.Rand) []int {
	if len(pts) == 0 {
		return nil
	}
	cells := buildCells(pts, cellSize)

	out := make([]int, 0, estimateKept(len(pts), ratio)+len(cells))
	for _, cell := range cells {
		k := keepPerCell(len(cell), ratio)
		if k == len(cell) {
			out = append(out, cell...)
			continue
		}
		// partial Fisher-Yates over a scratch copy, then restore the
		// original relative order of the chosen slots
		scratch := make([]int, len(cell))
		for i := range scratch {
			scratch[i] = i
		}
		for i := 0; i < k; i++ {
			j := i + rng.Intn(len(scratch)-i)
			scratch[i], scratch[j] = scratch[j], scratch[i]
		}
		chosen := scratch[:k]
		sort.Ints(chosen)
		for _, s := range chosen {
			out = append(out, cell[s])
		}
	}
	return out
}

// SubsampleAt is the deterministic variant: the same pick offset on the
// same input always yields the same selection. Within each cell the
// representatives are strided across the cell's points starting from a
// position rotated by pick, then emitted in original relative order.
func (Grid) SubsampleAt(pts []geom.Vec3, cellSize, ratio float32, pick int) []int {
	if len(pts) == 0 {
		return nil
	}
	if pick < 0 {
		pick = 0
	}
	cells := buildCells(pts, cellSize)

	out := make([]int, 0, estimateKept(len(pts), ratio)+len(cells))
	chosen := make([]int, 0, 8)
	for _, cell := range cells {
		n := len(cell)
		k := keepPerCell(n, ratio)
		if k == n {
			out = append(out, cell...)
			continue
		}
		chosen = chosen[:0]
		start := pick % n
		for i := 0; i < k; i++ {
			chosen = append(chosen, (start+i*n/k)%n)
		}
		sort.Ints(chosen)
		prev := -1
		for _, s := range chosen {
			if s == prev {
				continue // strides can collide on tiny cells
			}
			prev = s
			out = append(out, cell[s])
		}
	}
	return out
}

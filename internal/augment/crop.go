package augment

import (
	"math/rand"
	"sort"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// LocalityCrop bounds a point set to at most voxelMax points while
// keeping the selection spatially contiguous: one anchor point is
// chosen uniformly at random and the voxelMax points nearest to it (by
// squared Euclidean distance) are kept. The kept indices are re-sorted
// into their original relative order, so whatever locality the grid
// subsampling produced upstream survives the crop. When the input is
// already within budget the identity selection is returned.
func LocalityCrop(rng *rand.Rand, pts []geom.Vec3, voxelMax int) []int {
	if len(pts) <= voxelMax {
		idx := make([]int, len(pts))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	return cropAround(pts, rng.Intn(len(pts)), voxelMax)
}

// cropAround is the deterministic core of LocalityCrop given a fixed
// anchor index.
func cropAround(pts []geom.Vec3, anchor, voxelMax int) []int {
	anchorPt := pts[anchor]
	order := make([]int, len(pts))
	dist := make([]float32, len(pts))
	for i, p := range pts {
		order[i] = i
		dist[i] = p.SqDist(anchorPt)
	}
	// ties broken by original index to keep the selection deterministic
	sort.Slice(order, func(a, b int) bool {
		da, db := dist[order[a]], dist[order[b]]
		if da != db {
			return da < db
		}
		return order[a] < order[b]
	})

	kept := order[:voxelMax]
	// back into original relative order; distance order must not leak
	// into the point ordering consumed downstream
	sort.Ints(kept)
	return kept
}

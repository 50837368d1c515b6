// Package scene holds the per-room point-cloud tensors consumed by the
// preparation pipeline: loading, validation, the on-disk container
// format, and the eagerly loaded Store shared by samplers.
package scene

import (
	"errors"
	"fmt"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// ErrNoScenes reports that scene enumeration produced an empty file set.
var ErrNoScenes = errors.New("no scene files matched")

// ShapeMismatchError reports aligned per-point tensors whose lengths
// disagree within one scene. Construction of a Store fails outright on
// the first mismatched scene rather than truncating.
type ShapeMismatchError struct {
	Scene     string
	Positions int
	Colors    int
	Normals   int // -1 when absent
	Labels    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("scene %q: tensor lengths disagree (positions=%d colors=%d normals=%d labels=%d)",
		e.Scene, e.Positions, e.Colors, e.Normals, e.Labels)
}

// Scene is the immutable per-file tuple of aligned per-point arrays.
// Colors are on the raw 0-255 scale. Normals may be nil. A Scene is
// owned by its Store and never mutated after load; consumers must copy
// before transforming.
type Scene struct {
	Name      string
	Positions []geom.Vec3
	Colors    []geom.Vec3
	Normals   []geom.Vec3
	Labels    []int32
}

// NumPoints returns the point count N of the scene.
func (s *Scene) NumPoints() int { return len(s.Positions) }

// HasNormals reports whether the scene carries per-point normals.
func (s *Scene) HasNormals() bool { return s.Normals != nil }

// Validate checks that all per-point tensors agree in length.
func (s *Scene) Validate() error {
	n := len(s.Positions)
	normals := -1
	if s.Normals != nil {
		normals = len(s.Normals)
	}
	if len(s.Colors) != n || len(s.Labels) != n || (s.Normals != nil && normals != n) {
		return &ShapeMismatchError{
			Scene:     s.Name,
			Positions: n,
			Colors:    len(s.Colors),
			Normals:   normals,
			Labels:    len(s.Labels),
		}
	}
	return nil
}

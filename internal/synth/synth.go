// Package synth generates synthetic indoor scenes for testing and demos.
package synth

import (
	"math"
	"math/rand"

	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/scene"
)

// Class labels assigned to generated surfaces, matching the room-scan
// palette ordering.
const (
	LabelCeiling int32 = 0
	LabelFloor   int32 = 1
	LabelWall    int32 = 2
	LabelClutter int32 = 12
)

// Generator produces box-shaped rooms with uniformly sampled surface
// points plus a few clutter blobs on the floor.
type Generator struct {
	// Room dimensions in metres.
	RoomWidth  float32
	RoomDepth  float32
	RoomHeight float32

	// PointsPerSqm controls sampling density on each surface.
	PointsPerSqm float64

	// ClutterBlobs is the number of clutter clusters placed on the floor.
	ClutterBlobs int

	// WithNormals adds per-point surface normals.
	WithNormals bool

	rng *rand.Rand
}

// NewGenerator creates a generator with typical room dimensions.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		RoomWidth:    6.0,
		RoomDepth:    4.0,
		RoomHeight:   2.8,
		PointsPerSqm: 400,
		ClutterBlobs: 3,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Generate produces one synthetic scene with the given name.
func (g *Generator) Generate(name string) *scene.Scene {
	sc := &scene.Scene{Name: name}

	w, d, h := g.RoomWidth, g.RoomDepth, g.RoomHeight

	// Floor and ceiling.
	g.addPlane(sc, planeSpec{
		area: float64(w * d), label: LabelFloor,
		base: geom.Vec3{0, 0, 0}, u: geom.Vec3{w, 0, 0}, v: geom.Vec3{0, d, 0},
		normal: geom.Vec3{0, 0, 1}, tint: geom.Vec3{120, 100, 80},
	})
	g.addPlane(sc, planeSpec{
		area: float64(w * d), label: LabelCeiling,
		base: geom.Vec3{0, 0, h}, u: geom.Vec3{w, 0, 0}, v: geom.Vec3{0, d, 0},
		normal: geom.Vec3{0, 0, -1}, tint: geom.Vec3{230, 230, 225},
	})

	// Four walls, normals pointing into the room.
	walls := []planeSpec{
		{area: float64(w * h), base: geom.Vec3{0, 0, 0}, u: geom.Vec3{w, 0, 0}, v: geom.Vec3{0, 0, h}, normal: geom.Vec3{0, 1, 0}},
		{area: float64(w * h), base: geom.Vec3{0, d, 0}, u: geom.Vec3{w, 0, 0}, v: geom.Vec3{0, 0, h}, normal: geom.Vec3{0, -1, 0}},
		{area: float64(d * h), base: geom.Vec3{0, 0, 0}, u: geom.Vec3{0, d, 0}, v: geom.Vec3{0, 0, h}, normal: geom.Vec3{1, 0, 0}},
		{area: float64(d * h), base: geom.Vec3{w, 0, 0}, u: geom.Vec3{0, d, 0}, v: geom.Vec3{0, 0, h}, normal: geom.Vec3{-1, 0, 0}},
	}
	for _, spec := range walls {
		spec.label = LabelWall
		spec.tint = geom.Vec3{200, 195, 185}
		g.addPlane(sc, spec)
	}

	for i := 0; i < g.ClutterBlobs; i++ {
		g.addClutterBlob(sc)
	}

	return sc
}

type planeSpec struct {
	area   float64
	label  int32
	base   geom.Vec3
	u, v   geom.Vec3
	normal geom.Vec3
	tint   geom.Vec3
}

func (g *Generator) addPlane(sc *scene.Scene, spec planeSpec) {
	n := int(spec.area * g.PointsPerSqm)
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		a := g.rng.Float32()
		b := g.rng.Float32()
		p := geom.Vec3{
			spec.base[0] + a*spec.u[0] + b*spec.v[0],
			spec.base[1] + a*spec.u[1] + b*spec.v[1],
			spec.base[2] + a*spec.u[2] + b*spec.v[2],
		}
		sc.Positions = append(sc.Positions, p)
		sc.Colors = append(sc.Colors, g.noisyColor(spec.tint))
		sc.Labels = append(sc.Labels, spec.label)
		if g.WithNormals {
			sc.Normals = append(sc.Normals, spec.normal)
		}
	}
}

// addClutterBlob places a gaussian cluster of points on the floor.
func (g *Generator) addClutterBlob(sc *scene.Scene) {
	cx := g.rng.Float32() * g.RoomWidth
	cy := g.rng.Float32() * g.RoomDepth
	height := 0.3 + g.rng.Float32()*0.9
	tint := geom.Vec3{
		float32(60 + g.rng.Intn(160)),
		float32(60 + g.rng.Intn(160)),
		float32(60 + g.rng.Intn(160)),
	}

	n := int(0.25 * g.PointsPerSqm)
	if n < 16 {
		n = 16
	}
	for i := 0; i < n; i++ {
		p := geom.Vec3{
			cx + float32(g.rng.NormFloat64())*0.15,
			cy + float32(g.rng.NormFloat64())*0.15,
			g.rng.Float32() * height,
		}
		sc.Positions = append(sc.Positions, p)
		sc.Colors = append(sc.Colors, g.noisyColor(tint))
		sc.Labels = append(sc.Labels, LabelClutter)
		if g.WithNormals {
			// Radial normal from the blob axis.
			dx := float64(p[0] - cx)
			dy := float64(p[1] - cy)
			l := math.Hypot(dx, dy)
			if l < 1e-6 {
				sc.Normals = append(sc.Normals, geom.Vec3{0, 0, 1})
			} else {
				sc.Normals = append(sc.Normals, geom.Vec3{float32(dx / l), float32(dy / l), 0})
			}
		}
	}
}

func (g *Generator) noisyColor(tint geom.Vec3) geom.Vec3 {
	var c geom.Vec3
	for i := 0; i < 3; i++ {
		v := tint[i] + float32(g.rng.NormFloat64())*8
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		c[i] = v
	}
	return c
}

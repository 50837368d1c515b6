// Package visual renders top-down views of scenes for inspection, one
// point per sample projected onto the xy plane.
package visual

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roomscan-data/pointprep/internal/scene"
)

// TopDownRenderer draws scenes seen from above. The zero value is not
// usable; construct with NewTopDownRenderer.
type TopDownRenderer struct {
	Palette *Palette

	// Output dimensions and glyph size.
	Width       vg.Length
	Height      vg.Length
	PointRadius vg.Length

	// MaxPoints caps how many points are drawn; scenes larger than this
	// are strided down to keep output files manageable. Zero means no cap.
	MaxPoints int
}

// NewTopDownRenderer creates a renderer using the given class palette.
func NewTopDownRenderer(p *Palette) *TopDownRenderer {
	return &TopDownRenderer{
		Palette:     p,
		Width:       10 * vg.Inch,
		Height:      10 * vg.Inch,
		PointRadius: vg.Points(1),
		MaxPoints:   200000,
	}
}

// RenderLabels writes a PNG of the scene coloured by semantic label,
// with one legend entry per class present.
func (r *TopDownRenderer) RenderLabels(sc *scene.Scene, path string) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if sc.NumPoints() == 0 {
		return fmt.Errorf("render %q: empty scene", sc.Name)
	}

	p := plot.New()
	p.Title.Text = sc.Name
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	stride := r.stride(sc.NumPoints())

	// Group points by label so each class gets one scatter and one
	// legend entry.
	byLabel := make(map[int32]plotter.XYs)
	for i := 0; i < sc.NumPoints(); i += stride {
		l := sc.Labels[i]
		byLabel[l] = append(byLabel[l], plotter.XY{
			X: float64(sc.Positions[i][0]),
			Y: float64(sc.Positions[i][1]),
		})
	}

	labels := make([]int32, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(a, b int) bool { return labels[a] < labels[b] })

	for _, l := range labels {
		s, err := plotter.NewScatter(byLabel[l])
		if err != nil {
			return fmt.Errorf("scatter for label %d: %w", l, err)
		}
		s.GlyphStyle.Color = r.Palette.At(l)
		s.GlyphStyle.Radius = r.PointRadius
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(r.Palette.Name(l), s)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save label render: %w", err)
	}
	return nil
}

// RenderColors writes a PNG of the scene using its captured colours.
func (r *TopDownRenderer) RenderColors(sc *scene.Scene, path string) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if sc.NumPoints() == 0 {
		return fmt.Errorf("render %q: empty scene", sc.Name)
	}

	p := plot.New()
	p.Title.Text = sc.Name
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	stride := r.stride(sc.NumPoints())

	pts := make(plotter.XYs, 0, sc.NumPoints()/stride+1)
	cols := make([]color.Color, 0, sc.NumPoints()/stride+1)
	for i := 0; i < sc.NumPoints(); i += stride {
		pts = append(pts, plotter.XY{
			X: float64(sc.Positions[i][0]),
			Y: float64(sc.Positions[i][1]),
		})
		cols = append(cols, color.RGBA{
			R: clampByte(sc.Colors[i][0]),
			G: clampByte(sc.Colors[i][1]),
			B: clampByte(sc.Colors[i][2]),
			A: 255,
		})
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  cols[i],
			Radius: r.PointRadius,
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(s)

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save colour render: %w", err)
	}
	return nil
}

func (r *TopDownRenderer) stride(n int) int {
	if r.MaxPoints <= 0 || n <= r.MaxPoints {
		return 1
	}
	return (n + r.MaxPoints - 1) / r.MaxPoints
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

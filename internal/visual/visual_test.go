package visual

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/scene"
)

func testScene(n int) *scene.Scene {
	sc := &scene.Scene{Name: "render_test"}
	for i := 0; i < n; i++ {
		sc.Positions = append(sc.Positions, geom.Vec3{float32(i) * 0.1, float32(i%7) * 0.1, 0})
		sc.Colors = append(sc.Colors, geom.Vec3{float32(i % 256), 128, 64})
		sc.Labels = append(sc.Labels, int32(i%3))
	}
	return sc
}

func TestRenderLabels_WritesPNG(t *testing.T) {
	r := NewTopDownRenderer(PaletteRoomScan())
	path := filepath.Join(t.TempDir(), "labels.png")
	if err := r.RenderLabels(testScene(50), path); err != nil {
		t.Fatalf("render labels: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatal("empty output file")
	}
}

func TestRenderColors_WritesPNG(t *testing.T) {
	r := NewTopDownRenderer(PaletteMeshScan())
	path := filepath.Join(t.TempDir(), "colors.png")
	if err := r.RenderColors(testScene(50), path); err != nil {
		t.Fatalf("render colors: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatal("empty output file")
	}
}

func TestRenderLabels_RejectsEmptyScene(t *testing.T) {
	r := NewTopDownRenderer(PaletteRoomScan())
	if err := r.RenderLabels(&scene.Scene{Name: "empty"}, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("expected error for empty scene")
	}
}

func TestPalette_FallbackForUnknownLabel(t *testing.T) {
	p := PaletteRoomScan()
	if got := p.Name(99); got != "unknown" {
		t.Fatalf("Name(99) = %q, want unknown", got)
	}
	c := p.At(99)
	if _, ok := c.(color.RGBA); !ok {
		t.Fatalf("At(99) returned %T, want color.RGBA", c)
	}
}

func TestStride_CapsLargeScenes(t *testing.T) {
	r := NewTopDownRenderer(PaletteRoomScan())
	r.MaxPoints = 10
	if got := r.stride(100); got != 10 {
		t.Fatalf("stride(100) = %d, want 10", got)
	}
	if got := r.stride(5); got != 1 {
		t.Fatalf("stride(5) = %d, want 1", got)
	}
}

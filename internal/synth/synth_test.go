package synth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerate_ValidScene(t *testing.T) {
	g := NewGenerator(7)
	sc := g.Generate("demo")

	if err := sc.Validate(); err != nil {
		t.Fatalf("generated scene invalid: %v", err)
	}
	if sc.NumPoints() == 0 {
		t.Fatal("generated scene is empty")
	}
	if sc.HasNormals() {
		t.Fatal("normals present without WithNormals")
	}

	seen := map[int32]bool{}
	for _, l := range sc.Labels {
		seen[l] = true
	}
	for _, want := range []int32{LabelCeiling, LabelFloor, LabelWall, LabelClutter} {
		if !seen[want] {
			t.Errorf("label %d missing from generated scene", want)
		}
	}

	// All points inside the room bounds (clutter can spill slightly past walls).
	for _, p := range sc.Positions {
		if p[2] < -0.01 || p[2] > g.RoomHeight+1.3 {
			t.Fatalf("point height %v out of range", p[2])
		}
	}
}

func TestGenerate_NormalsUnitLength(t *testing.T) {
	g := NewGenerator(7)
	g.WithNormals = true
	sc := g.Generate("demo")

	if !sc.HasNormals() {
		t.Fatal("expected normals")
	}
	for i, n := range sc.Normals {
		l := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if l < 0.99 || l > 1.01 {
			t.Fatalf("normal %d not unit length: %v", i, l)
		}
	}
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	a := NewGenerator(42).Generate("x")
	b := NewGenerator(42).Generate("x")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different scenes:\n%s", diff)
	}

	c := NewGenerator(43).Generate("x")
	if cmp.Diff(a, c) == "" {
		t.Fatal("different seeds produced identical scenes")
	}
}

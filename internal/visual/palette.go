package visual

import "image/color"

// Palette maps semantic class labels to display colours. Labels outside
// the named range fall back to a generated hue so unknown classes still
// render distinctly.
type Palette struct {
	Names  []string
	Colors []color.Color
}

// PaletteRoomScan covers the 13 indoor classes used by room-scan corpora.
func PaletteRoomScan() *Palette {
	return &Palette{
		Names: []string{
			"ceiling", "floor", "wall", "beam", "column", "window", "door",
			"table", "chair", "sofa", "bookcase", "board", "clutter",
		},
		Colors: []color.Color{
			color.RGBA{0, 255, 0, 255},
			color.RGBA{0, 0, 255, 255},
			color.RGBA{0, 255, 255, 255},
			color.RGBA{255, 255, 0, 255},
			color.RGBA{255, 0, 255, 255},
			color.RGBA{100, 100, 255, 255},
			color.RGBA{200, 200, 100, 255},
			color.RGBA{170, 120, 200, 255},
			color.RGBA{255, 0, 0, 255},
			color.RGBA{200, 100, 100, 255},
			color.RGBA{10, 200, 100, 255},
			color.RGBA{200, 200, 200, 255},
			color.RGBA{50, 50, 50, 255},
		},
	}
}

// PaletteMeshScan covers the 20 indoor classes used by mesh-scan corpora.
func PaletteMeshScan() *Palette {
	return &Palette{
		Names: []string{
			"wall", "floor", "cabinet", "bed", "chair", "sofa", "table",
			"door", "window", "bookshelf", "picture", "counter", "desk",
			"curtain", "refrigerator", "shower curtain", "toilet", "sink",
			"bathtub", "otherfurniture",
		},
		Colors: []color.Color{
			color.RGBA{174, 199, 232, 255},
			color.RGBA{152, 223, 138, 255},
			color.RGBA{31, 119, 180, 255},
			color.RGBA{255, 187, 120, 255},
			color.RGBA{188, 189, 34, 255},
			color.RGBA{140, 86, 75, 255},
			color.RGBA{255, 152, 150, 255},
			color.RGBA{214, 39, 40, 255},
			color.RGBA{197, 176, 213, 255},
			color.RGBA{148, 103, 189, 255},
			color.RGBA{196, 156, 148, 255},
			color.RGBA{23, 190, 207, 255},
			color.RGBA{247, 182, 210, 255},
			color.RGBA{219, 219, 141, 255},
			color.RGBA{255, 127, 14, 255},
			color.RGBA{158, 218, 229, 255},
			color.RGBA{44, 160, 44, 255},
			color.RGBA{112, 128, 144, 255},
			color.RGBA{227, 119, 194, 255},
			color.RGBA{82, 84, 163, 255},
		},
	}
}

// At returns the colour for a label, generating one for out-of-range labels.
func (p *Palette) At(label int32) color.Color {
	if label >= 0 && int(label) < len(p.Colors) {
		return p.Colors[label]
	}
	// Spread unknown labels around the hue wheel.
	hue := float64(uint32(label)%17) / 17.0
	r, g, b := hslToRGB(hue, 0.7, 0.5)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Name returns the class name for a label, or "unknown" if out of range.
func (p *Palette) Name(label int32) string {
	if label >= 0 && int(label) < len(p.Names) {
		return p.Names[label]
	}
	return "unknown"
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

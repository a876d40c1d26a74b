package retro

import (
	"fmt"
	"math"

	"github.com/poly2dev/poly2/internal/ir"
)

// profile is the parameter set that defines one preset. The quantization
// step and every constant in noise and tone are part of the preset's look.
type profile struct {
	// quantization step, channels floor to multiples of it
	step int
	// positional perturbation, nil if the preset has none
	noise func(x, y float64) float64
	// share of the noise term added to R, G, B
	weight [3]float64
	tone   func(r, g, b uint8) (uint8, uint8, uint8)
	prompt string
}

var profiles = [...]profile{
	PlayStation1: {
		step:   16,
		noise:  psxWobble,
		weight: [3]float64{1, 1, 1},
		tone:   psxContrast,
		prompt: "A retro PlayStation 1 version of this image with low-poly geometry, pixelated textures, " +
			"a limited 16-bit color palette, sharp angular surfaces and the blocky geometric look of 1995 3D games. " +
			"Apply strong dithering and a reduced polygon count for an authentic PSX aesthetic.",
	},
	Nintendo64: {
		step: 12,
		tone: n64Glow,
		prompt: "A Nintendo 64 styled version of this image with smooth Gouraud shading, simple geometry, " +
			"color banding, bilinear texture filtering and the slightly blurred but smooth look of 1996 N64 games. " +
			"Use warmer color tones and the subtle fog typical of N64 graphics.",
	},
	Saturn: {
		step: 32,
		tone: saturnFlatShade,
		prompt: "A Sega Saturn graphics version of this image with flat shading, geometric shapes, " +
			"limited texture resolution, sharp polygon edges and the distinct look of the Saturn's 2D/3D hybrid hardware. " +
			"Use high contrast and saturated colors with minimal anti-aliasing.",
	},
	Early3D: {
		step:   24,
		noise:  early3DInstability,
		weight: [3]float64{1, 0.8, 0.6},
		prompt: "An early 3D console graphics version of this image with vertex wobble, limited color depth, " +
			"angular geometry, texture warping and the unstable polygon rendering of early 3D hardware. " +
			"Add subtle jittering and polygon pop-in for an authentic early 3D console feel.",
	},
}

func profileFor(p Preset) *profile {
	if !p.Valid() {
		p = DefaultPreset
	}
	return &profiles[p]
}

// Apply returns a copy of pix with preset p applied. pix holds width*height
// RGBA pixels; any other length is a caller bug and panics. Alpha is copied
// through unchanged and the input slice is never written.
func Apply(pix []byte, width, height int, p Preset) []byte {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		panic(fmt.Sprintf("retro: expected %d RGBA bytes for %dx%d, got %d", width*height*4, width, height, len(pix)))
	}

	out := make([]byte, len(pix))
	copy(out, pix)
	pr := profileFor(p)

	for y := 0; y < height; y++ {
		row := y * width * 4
		for x := 0; x < width; x++ {
			i := row + x*4
			r := quantize(out[i], pr.step)
			g := quantize(out[i+1], pr.step)
			b := quantize(out[i+2], pr.step)

			if pr.noise != nil {
				n := pr.noise(float64(x), float64(y))
				r = clamp(float64(r) + n*pr.weight[0])
				g = clamp(float64(g) + n*pr.weight[1])
				b = clamp(float64(b) + n*pr.weight[2])
			}
			if pr.tone != nil {
				r, g, b = pr.tone(r, g, b)
			}

			out[i], out[i+1], out[i+2] = r, g, b
		}
	}
	return out
}

// ApplyImage applies p to img and returns a new image of the same size.
func ApplyImage(img *ir.RGBAImage, p Preset) *ir.RGBAImage {
	return &ir.RGBAImage{
		Width:  img.Width,
		Height: img.Height,
		Pixels: Apply(img.Pixels, img.Width, img.Height, p),
	}
}

func quantize(c uint8, step int) uint8 {
	return uint8(int(c) / step * step)
}

// clamp stores v into an 8-bit channel: saturate at both ends, truncate
// toward zero in between. NaN maps to 0.
func clamp(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func psxWobble(x, y float64) float64 {
	return math.Sin(x*0.1) * math.Sin(y*0.1) * 8
}

func psxContrast(r, g, b uint8) (uint8, uint8, uint8) {
	return clamp(float64(r) * 1.3), clamp(float64(g) * 1.3), clamp(float64(b) * 1.3)
}

func n64Glow(r, g, b uint8) (uint8, uint8, uint8) {
	r = clamp(float64(r) * 1.1)
	g = clamp(float64(g) * 1.05)

	if (float64(r)+float64(g)+float64(b))/3 > 180 {
		r = clamp(float64(r) + 8)
		g = clamp(float64(g) + 8)
		b = clamp(float64(b) + 8)
	}
	return r, g, b
}

func saturnFlatShade(r, g, b uint8) (uint8, uint8, uint8) {
	factor := 0.7
	if (float64(r)+float64(g)+float64(b))/3 > 128 {
		factor = 1.4
	}
	r = clamp(float64(r) * factor)
	g = clamp(float64(g) * factor)
	b = clamp(float64(b) * factor)

	m := float64(max(r, g, b))
	if m > 0 {
		r = clamp(float64(r) / m * m * 1.2)
		g = clamp(float64(g) / m * m * 1.2)
		b = clamp(float64(b) / m * m * 1.2)
	}
	return r, g, b
}

func early3DInstability(x, y float64) float64 {
	wobbleX := math.Sin(x*0.05+y*0.02) * 12
	wobbleY := math.Cos(x*0.03+y*0.07) * 8
	instability := math.Sin(x*y*0.0001) * 6
	return wobbleX + wobbleY + instability
}

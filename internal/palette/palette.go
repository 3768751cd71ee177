// Package palette provides the colours used to draw curves: hex encoding for
// persisted curve colours, HSV-based random colours for generated curves, and
// the fixed colours of the trace overlay.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Overlay colours.
var (
	Gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	LightGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	DarkGray  = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	Hot       = color.RGBA{R: 0, G: 0, B: 255, A: 255} // the part under the cursor
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) color.RGBA {
	red, green, blue := c.Clamped().RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// Hex returns the colour as "#rrggbb".
func Hex(c color.RGBA) string {
	return toColorful(c).Hex()
}

// ParseHex parses a "#rrggbb" (or "#rgb") colour.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// RandomPastel returns a light, moderately saturated colour, which reads well
// on both dark and light backgrounds.
func RandomPastel(r *rand.Rand) color.RGBA {
	hue := r.Float64() * 360
	sat := clamp(0.25+r.Float64()*0.25, 0, 1)
	bright := clamp(0.75+r.Float64()*0.25, 0, 1)
	return fromColorful(colorful.Hsv(hue, sat, bright))
}

// Fade blends c toward bg by t in [0, 1], in Lab space so the fade looks
// even across hues.
func Fade(c, bg color.RGBA, t float64) color.RGBA {
	return fromColorful(toColorful(c).BlendLab(toColorful(bg), clamp(t, 0, 1)))
}

package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/ribbons/internal/ribbon"
)

// toNRGBA converts an HSLA color to 8-bit non-premultiplied RGBA, scaling
// its alpha by globalAlpha. Hues wrap around 360.
func toNRGBA(c ribbon.HSLA, globalAlpha float64) color.NRGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(c.S), clamp01(c.L)).Clamped().RGB255()
	a := clamp01(c.A) * clamp01(globalAlpha)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 0xFF))}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}


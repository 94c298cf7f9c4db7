package physics

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color with hue in [0,360) and saturation and value in [0,1].
type HSV struct {
	H, S, V float64
}

// RGBA converts to an opaque 8-bit color for the render surface.
func (c HSV) RGBA() color.RGBA {
	r, g, b := colorful.Hsv(wrapHue(c.H), clamp01(c.S), clamp01(c.V)).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// HSVFromColor converts any color to HSV. Fully transparent colors map to
// black.
func HSVFromColor(c color.Color) HSV {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return HSV{}
	}
	h, s, v := cf.Hsv()
	return HSV{H: wrapHue(h), S: s, V: v}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Light is a radial falloff: texels fade toward Fog as distance grows.
// A zero FalloffDistance disables shading.
type Light struct {
	FalloffDistance float64
	MinBrightness   float64
	Fog             color.RGBA
}

func (l Light) Enabled() bool {
	return l.FalloffDistance > 0
}

// Brightness returns max(MinBrightness, 1 - d/FalloffDistance), capped at 1.
func (l Light) Brightness(d float64) float64 {
	if !l.Enabled() {
		return 1
	}
	b := 1 - d/l.FalloffDistance
	if b < l.MinBrightness {
		b = l.MinBrightness
	}
	if b > 1 {
		b = 1
	}
	return b
}

// Shade blends c toward the fog color for a texel at distance d.
func (l Light) Shade(c color.RGBA, d float64) color.RGBA {
	b := l.Brightness(d)
	if b >= 1 {
		return c
	}
	fog := colorful.Color{R: float64(l.Fog.R) / 255, G: float64(l.Fog.G) / 255, B: float64(l.Fog.B) / 255}
	tex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, bl := fog.BlendRgb(tex, b).Clamped().RGB255()
	return color.RGBA{r, g, bl, c.A}
}

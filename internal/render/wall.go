package render

import (
	"image/color"
	"math"

	"raycastmaze/internal/raycast"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/world"
)

// WallTextures resolves a wall variant to its texture. *world.TileManager
// implements it.
type WallTextures interface {
	TextureFor(variant world.VariantID) world.TextureKey
}

// Projection holds the wall projection constants.
type Projection struct {
	WallScale    float64 // Stripe height at distance d is (screenHeight/2)/d * WallScale
	MinDistance  float64 // Corrected distances are clamped to at least this
	FarDistance  float64 // Distance used to size the far-plane stripe of a miss
	DrawFarPlane bool
	FarPlane     color.RGBA
}

// DefaultProjection returns the reference projection constants.
func DefaultProjection() Projection {
	return Projection{
		WallScale:   100,
		MinDistance: 0.1,
		FarDistance: 3000,
		FarPlane:    color.RGBA{20, 20, 40, 255},
	}
}

// ColumnParams bundles what the wall projector reads besides the hit.
type ColumnParams struct {
	Textures   TextureSource
	Walls      WallTextures
	Projection Projection
	Light      Light
}

// CorrectedDistance removes fisheye distortion: the ray distance projected
// onto the view direction, clamped away from zero.
func CorrectedDistance(distance, angleOffset, minDistance float64) float64 {
	if minDistance <= 0 {
		minDistance = 1e-6
	}
	d := distance * math.Cos(angleOffset)
	if d < minDistance {
		d = minDistance
	}
	return d
}

// StripeHeight returns the unclipped wall stripe height in pixels.
func StripeHeight(corrected float64, screenHeight int, wallScale float64) float64 {
	return float64(screenHeight) / 2 / corrected * wallScale
}

// StripeBounds returns the unclipped stripe edges, centered on the horizon.
func StripeBounds(height float64, screenHeight int) (top, bottom float64) {
	horizon := float64(screenHeight) / 2
	return horizon - height/2, horizon + height/2
}

// ProjectColumn draws the wall stripe for one screen column and returns the
// stripe rows [top, bottom). Transparent texels are skipped. Sprite-only tiles and unconfigured misses paint
// nothing and return an empty span.
func ProjectColumn(dst *surface.Surface, column int, hit raycast.Hit, angleOffset float64, p ColumnParams) (top, bottom int) {
	h := dst.Height()
	if column < 0 || column >= dst.Width() || h == 0 {
		return 0, 0
	}
	if hit.Tile.SpriteOnly() {
		return 0, 0
	}

	if !hit.Found() {
		if !p.Projection.DrawFarPlane {
			return 0, 0
		}
		height := StripeHeight(CorrectedDistance(p.Projection.FarDistance, 0, p.Projection.MinDistance), h, p.Projection.WallScale)
		topF, bottomF := StripeBounds(height, h)
		top, bottom = clipSpan(topF, bottomF, h)
		for y := top; y < bottom; y++ {
			dst.Set(column, y, p.Projection.FarPlane)
		}
		return top, bottom
	}

	corrected := CorrectedDistance(hit.Distance, angleOffset, p.Projection.MinDistance)
	height := StripeHeight(corrected, h, p.Projection.WallScale)
	topF, bottomF := StripeBounds(height, h)
	top, bottom = clipSpan(topF, bottomF, h)

	key := world.TextureKey("")
	if p.Walls != nil {
		key = p.Walls.TextureFor(hit.Tile.Variant)
	}
	size := p.Textures.Size()
	transparent := p.Textures.Transparent()
	u := int(hit.TextureU)
	span := bottomF - topF

	for y := top; y < bottom; y++ {
		// v comes from the unclipped span so close walls keep their scale.
		v := int((float64(y) + 0.5 - topF) / span * float64(size))
		if v >= size {
			v = size - 1
		}
		c := p.Textures.Texel(key, u, v)
		// Holes in a wall texture keep the sky or floor underneath.
		if c == transparent {
			continue
		}
		if p.Light.Enabled() {
			c = p.Light.Shade(c, corrected)
		}
		dst.Set(column, y, c)
	}
	return top, bottom
}

func clipSpan(topF, bottomF float64, h int) (top, bottom int) {
	top = int(math.Floor(topF))
	bottom = int(math.Ceil(bottomF))
	if top < 0 {
		top = 0
	}
	if bottom > h {
		bottom = h
	}
	if bottom < top {
		bottom = top
	}
	return top, bottom
}

package render

import (
	"math"

	"raycastmaze/internal/mathutil"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/world"
)

// BillboardParams holds the sprite clip planes and size constant.
type BillboardParams struct {
	NearPlane float64
	FarPlane  float64
	Scale     float64 // Sprite size at distance d is (screenHeight/d) * Scale
}

// DefaultBillboardParams returns the reference sprite constants.
func DefaultBillboardParams() BillboardParams {
	return BillboardParams{NearPlane: 50, FarPlane: 1000, Scale: 70}
}

// SpriteProjection is where a sprite lands on screen.
type SpriteProjection struct {
	Distance  float64
	AngleDiff float64 // Bearing relative to the facing, in (-Pi, Pi]
	CenterX   float64
	Size      float64
	Left, Top float64 // Unclipped top-left corner of the billboard square
}

// ProjectBillboard computes the screen placement of s. It reports false when
// the sprite is outside the field of view or the clip planes.
func ProjectBillboard(cam *world.Camera, s world.Sprite, screenW, screenH int, bp BillboardParams) (SpriteProjection, bool) {
	if cam.FOV <= 0 || screenW <= 0 || screenH <= 0 {
		return SpriteProjection{}, false
	}

	dx, dy := s.X-cam.X, s.Y-cam.Y
	distance := math.Hypot(dx, dy)
	if distance < bp.NearPlane || distance > bp.FarPlane || distance == 0 {
		return SpriteProjection{}, false
	}

	angleDiff := mathutil.NormalizeAngle(math.Atan2(dy, dx) - cam.Angle)
	if math.Abs(angleDiff) > cam.FOV/2 {
		return SpriteProjection{}, false
	}

	size := float64(screenH) / distance * bp.Scale
	centerX := (angleDiff/cam.FOV + 0.5) * float64(screenW)
	return SpriteProjection{
		Distance:  distance,
		AngleDiff: angleDiff,
		CenterX:   centerX,
		Size:      size,
		Left:      centerX - size/2,
		Top:       float64(screenH)/2 - size/2,
	}, true
}

// ProjectSprite draws s as a camera-facing square and reports whether it was
// drawn. There is no depth test: a sprite behind a wall still draws over it.
func ProjectSprite(dst *surface.Surface, cam *world.Camera, s world.Sprite, textures TextureSource, bp BillboardParams, light Light) bool {
	proj, ok := ProjectBillboard(cam, s, dst.Width(), dst.Height(), bp)
	if !ok {
		return false
	}
	drawBillboard(dst, proj, s.Texture, textures, light)
	return true
}

func drawBillboard(dst *surface.Surface, proj SpriteProjection, key world.TextureKey, textures TextureSource, light Light) {
	size := textures.Size()
	transparent := textures.Transparent()

	x0 := mathutil.IntMax(0, int(math.Floor(proj.Left)))
	x1 := mathutil.IntMin(dst.Width(), int(math.Ceil(proj.Left+proj.Size)))
	y0 := mathutil.IntMax(0, int(math.Floor(proj.Top)))
	y1 := mathutil.IntMin(dst.Height(), int(math.Ceil(proj.Top+proj.Size)))

	for x := x0; x < x1; x++ {
		u := int(math.Floor((float64(x) + 0.5 - proj.Left) / proj.Size * float64(size)))
		if u < 0 || u >= size {
			continue
		}
		for y := y0; y < y1; y++ {
			v := int(math.Floor((float64(y) + 0.5 - proj.Top) / proj.Size * float64(size)))
			if v < 0 || v >= size {
				continue
			}
			c := textures.Texel(key, u, v)
			if c == transparent {
				continue
			}
			if light.Enabled() {
				c = light.Shade(c, proj.Distance)
			}
			dst.Set(x, y, c)
		}
	}
}

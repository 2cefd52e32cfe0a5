package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"raycastmaze/internal/raycast"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/world"
)

var (
	minimapBackdrop = color.RGBA{0, 0, 0, 180}
	minimapBorder   = color.RGBA{255, 255, 255, 255}
	colorDarkGray   = color.RGBA{80, 80, 80, 255}
	colorRed        = color.RGBA{230, 41, 55, 255}
	colorGreen      = color.RGBA{0, 228, 48, 255}
	colorGold       = color.RGBA{255, 203, 0, 255}
	colorBlue       = color.RGBA{0, 121, 241, 255}
	colorYellow     = color.RGBA{253, 249, 0, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorRayTrace   = color.RGBA{190, 190, 190, 255}
)

const facingLineLength = 8

// TileColors picks the top-down color of a tile.
type TileColors func(t world.Tile) color.RGBA

// KindColors colors tiles by kind only.
func KindColors(t world.Tile) color.RGBA {
	switch t.Kind {
	case world.TileWall:
		return colorRed
	case world.TileGoal:
		return colorGreen
	case world.TileKeySpawn:
		return colorGold
	default:
		return colorDarkGray
	}
}

// mapView maps world coordinates into a pixel rectangle.
type mapView struct {
	origin image.Point
	scale  float64 // pixels per world unit
}

func newMapView(g *world.Grid, region image.Rectangle) mapView {
	ww, wh := g.WorldSize()
	scale := 0.0
	if ww > 0 && wh > 0 {
		scale = math.Min(float64(region.Dx())/ww, float64(region.Dy())/wh)
	}
	return mapView{origin: region.Min, scale: scale}
}

func (v mapView) point(x, y float64) (int, int) {
	return v.origin.X + int(math.Floor(x*v.scale)), v.origin.Y + int(math.Floor(y*v.scale))
}

func (v mapView) cellRect(g *world.Grid, col, row int) image.Rectangle {
	bs := g.BlockSize()
	x0, y0 := v.point(float64(col)*bs, float64(row)*bs)
	x1, y1 := v.point(float64(col+1)*bs, float64(row+1)*bs)
	return image.Rect(x0, y0, x1, y1)
}

// MinimapParams controls the inset map.
type MinimapParams struct {
	SampleRays int
	Cast       raycast.Options
	Colors     TileColors // nil uses KindColors
}

// RenderMinimap draws an inset top-down map of the grid into region: a
// translucent backdrop, a border, one block per cell, the camera marker with
// its facing line, and SampleRays traced view rays. It never mutates g or cam.
func RenderMinimap(dst *surface.Surface, g *world.Grid, cam *world.Camera, region image.Rectangle, mp MinimapParams) {
	region = region.Intersect(image.Rect(0, 0, dst.Width(), dst.Height()))
	if region.Empty() || g.Width() == 0 || g.Height() == 0 {
		return
	}
	colors := mp.Colors
	if colors == nil {
		colors = KindColors
	}

	// The backdrop replaces the region's pixels so a repeated call starts
	// from the same state.
	draw.Draw(dst.Image(), region, image.NewUniform(minimapBackdrop), image.Point{}, draw.Src)
	dst.Pen(minimapBorder).Outline(region)
	inner := region.Inset(1)
	if inner.Empty() {
		return
	}

	view := newMapView(g, inner)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			dst.FillRect(view.cellRect(g, col, row).Intersect(inner), colors(g.At(col, row)))
		}
	}

	drawRays(dst, g, cam, view, inner, mp.SampleRays, mp.Cast, colorRayTrace)

	px, py := view.point(cam.X, cam.Y)
	px, py = clampPoint(px, py, inner)
	marker := dst.Pen(colorBlue)
	marker.Rect(image.Rect(px-1, py-1, px+2, py+2).Intersect(inner))

	fx := px + int(math.Round(math.Cos(cam.Angle)*facingLineLength))
	fy := py + int(math.Round(math.Sin(cam.Angle)*facingLineLength))
	fx, fy = clampPoint(fx, fy, inner)
	marker.With(colorYellow).Line(px, py, fx, fy)
}

// RenderTopDown clears dst and draws the whole grid seen from above: wall and
// marker cells, the camera point, and SampleRays traced rays.
func RenderTopDown(dst *surface.Surface, g *world.Grid, cam *world.Camera, mp MinimapParams) {
	dst.Clear()
	if g.Width() == 0 || g.Height() == 0 {
		return
	}
	bounds := image.Rect(0, 0, dst.Width(), dst.Height())
	view := newMapView(g, bounds)
	// One pixel per world unit when the grid fits.
	if view.scale > 1 {
		view.scale = 1
	}

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			t := g.At(col, row)
			if t.IsEmpty() {
				continue
			}
			c := KindColors(t)
			if t.IsWall() && mp.Colors != nil {
				c = mp.Colors(t)
			}
			dst.FillRect(view.cellRect(g, col, row), c)
		}
	}

	drawRays(dst, g, cam, view, bounds, mp.SampleRays, mp.Cast, colorWhite)

	px, py := view.point(cam.X, cam.Y)
	dst.FillRect(image.Rect(px-1, py-1, px+2, py+2), colorWhite)
}

// drawRays casts n rays across the field of view and draws each from the
// camera to its hit. A miss ends at the last sample that was still inside the
// grid.
func drawRays(dst *surface.Surface, g *world.Grid, cam *world.Camera, view mapView, clip image.Rectangle, n int, opts raycast.Options, c color.RGBA) {
	if n <= 0 {
		return
	}
	ww, wh := g.WorldSize()
	px, py := view.point(cam.X, cam.Y)
	pen := dst.Pen(c)

	var lastX, lastY float64
	trace := opts.WithTrace(func(x, y float64) {
		if x >= 0 && y >= 0 && x < ww && y < wh {
			lastX, lastY = x, y
		}
	})

	for i := 0; i < n; i++ {
		lastX, lastY = cam.X, cam.Y
		hit := raycast.Cast(g, cam, cam.RayOffset(i, n), trace)
		endX, endY := lastX, lastY
		if hit.Found() {
			endX, endY = hit.HitX, hit.HitY
		}
		ex, ey := view.point(endX, endY)
		ex, ey = clampPoint(ex, ey, clip)
		sx, sy := clampPoint(px, py, clip)
		pen.Line(sx, sy, ex, ey)
	}
}

func clampPoint(x, y int, r image.Rectangle) (int, int) {
	x = max(r.Min.X, min(x, r.Max.X-1))
	y = max(r.Min.Y, min(y, r.Max.Y-1))
	return x, y
}

package raycast

import (
	"math"

	"raycastmaze/internal/mathutil"
	"raycastmaze/internal/world"
)

// march samples the ray every opts.Step world units.
func march(g *world.Grid, startX, startY, dirX, dirY float64, opts Options) Hit {
	step := opts.Step
	if step <= 0 {
		step = DefaultOptions().Step
	}
	maxSteps := int(math.Ceil(opts.MaxRange / step))
	bs := g.BlockSize()

	for i := 1; i <= maxSteps; i++ {
		d := float64(i) * step
		x := startX + d*dirX
		y := startY + d*dirY
		if opts.Trace != nil {
			opts.Trace(x, y)
		}

		col, row := g.CellAt(x, y)
		if !g.InBounds(col, row) {
			return miss(x, y, col, row, i)
		}
		tile := g.At(col, row)
		if tile.IsEmpty() {
			continue
		}

		fx := mathutil.FracPart(x / bs)
		fy := mathutil.FracPart(y / bs)
		u, side := fy, 0
		// The fraction closer to a cell edge names the crossed face; the
		// other one runs along it. Ties resolve to the x face.
		if edgeDistance(fy) < edgeDistance(fx) {
			u, side = fx, 1
		}

		return Hit{
			Distance: d,
			Tile:     tile,
			TextureU: texel(u, opts.TextureSize),
			Side:     side,
			CellX:    col,
			CellY:    row,
			HitX:     x,
			HitY:     y,
			Steps:    i,
		}
	}

	return miss(startX+opts.MaxRange*dirX, startY+opts.MaxRange*dirY, -1, -1, maxSteps)
}

func edgeDistance(frac float64) float64 {
	return math.Min(frac, 1-frac)
}

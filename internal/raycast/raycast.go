// Package raycast intersects view rays with the tile grid.
//
// Cast is called once per screen column every frame. It allocates nothing and
// its loop count is bounded by the configured range, so a camera standing
// inside a wall or outside the grid still returns promptly.
package raycast

import (
	"fmt"
	"math"

	"raycastmaze/internal/world"
)

// NoHitDistance is the distance reported when a ray leaves the grid or travels
// past MaxRange without meeting a non-empty cell.
const NoHitDistance = 1e30

// Mode selects the traversal algorithm.
type Mode int

const (
	// ModeDDA walks grid-line crossings; exact and independent of step size.
	ModeDDA Mode = iota
	// ModeMarch samples the ray at fixed Step intervals.
	ModeMarch
)

func (m Mode) String() string {
	switch m {
	case ModeDDA:
		return "dda"
	case ModeMarch:
		return "march"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "dda":
		return ModeDDA, nil
	case "march":
		return ModeMarch, nil
	default:
		return ModeDDA, fmt.Errorf("unknown raycast mode %q", s)
	}
}

// TraceFunc receives the world position of every sample a ray visits.
type TraceFunc func(x, y float64)

// Options control a single cast.
type Options struct {
	Mode        Mode
	Step        float64 // March sample spacing in world units
	MaxRange    float64 // Rays travelling further report no hit
	TextureSize int     // TextureU is scaled to [0, TextureSize)
	Trace       TraceFunc
}

// DefaultOptions returns DDA casting with the reference range and texture width.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeDDA,
		Step:        1,
		MaxRange:    3000,
		TextureSize: 128,
	}
}

// WithTrace returns a copy of o that reports samples to fn.
func (o Options) WithTrace(fn TraceFunc) Options {
	o.Trace = fn
	return o
}

// Hit is the result of one cast.
type Hit struct {
	Distance float64    // Euclidean distance from the camera to the hit point
	Tile     world.Tile // world.Void when nothing was hit
	TextureU float64    // Horizontal texel coordinate on the hit face
	Side     int        // 0 = face perpendicular to X, 1 = perpendicular to Y
	CellX    int
	CellY    int
	HitX     float64 // World position of the hit, or of the ray end on a miss
	HitY     float64
	Steps    int // Loop iterations used
}

// Found reports whether the ray met a non-empty cell.
func (h Hit) Found() bool {
	return h.Tile.Kind != world.TileVoid
}

// Cast fires a ray from the camera at camera.Angle+angleOffset.
func Cast(g *world.Grid, cam *world.Camera, angleOffset float64, opts Options) Hit {
	return CastFrom(g, cam.X, cam.Y, cam.Angle+angleOffset, opts)
}

// CastFrom fires a ray from an arbitrary world position.
func CastFrom(g *world.Grid, x, y, angle float64, opts Options) Hit {
	if opts.MaxRange <= 0 {
		opts.MaxRange = DefaultOptions().MaxRange
	}
	if opts.TextureSize <= 0 {
		opts.TextureSize = DefaultOptions().TextureSize
	}

	col, row := g.CellAt(x, y)
	if !g.InBounds(col, row) {
		return miss(x, y, col, row, 0)
	}
	if t := g.TileAtWorld(x, y); !t.IsEmpty() {
		// Starting inside a non-empty cell is a hit at zero distance.
		return Hit{Tile: t, CellX: col, CellY: row, HitX: x, HitY: y}
	}

	dirX, dirY := math.Cos(angle), math.Sin(angle)
	if opts.Mode == ModeMarch {
		return march(g, x, y, dirX, dirY, opts)
	}
	return dda(g, x, y, dirX, dirY, opts)
}

func miss(x, y float64, col, row, steps int) Hit {
	return Hit{
		Distance: NoHitDistance,
		Tile:     world.Void,
		CellX:    col,
		CellY:    row,
		HitX:     x,
		HitY:     y,
		Steps:    steps,
	}
}

// texel scales a face fraction in [0,1] to a texel column.
func texel(frac float64, size int) float64 {
	u := frac * float64(size)
	if u >= float64(size) {
		u = float64(size) - 1e-9
	}
	if u < 0 {
		u = 0
	}
	return u
}

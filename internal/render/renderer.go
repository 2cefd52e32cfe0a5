// Package render projects a tile grid, camera and sprites into a surface:
// the first-person view, a full top-down view and an inset minimap.
//
// Each entry point clears or fully overwrites the pixels it owns, so calling
// it twice with the same inputs produces the same surface.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"raycastmaze/internal/config"
	"raycastmaze/internal/raycast"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/threading/monitoring"
	"raycastmaze/internal/world"
)

// ColumnRunner calls fn once for each column in [0, n) and returns when all
// calls have finished. *rendering.ColumnScheduler implements it.
type ColumnRunner interface {
	Columns(n int, fn func(column int))
}

// Renderer holds the per-level rendering configuration. A Renderer reuses
// scratch buffers between frames and must not render two frames at once.
type Renderer struct {
	Textures    TextureSource
	Walls       WallTextures
	Cast        raycast.Options
	Projection  Projection
	Billboards  BillboardParams
	Light       Light
	Sky         color.RGBA
	Floor       color.RGBA
	MinimapRays int
	WallColors  TileColors // Top-down wall colors; nil uses KindColors

	scheduler ColumnRunner
	monitor   *monitoring.PerformanceMonitor
	sprites   []spriteDepth
}

type spriteDepth struct {
	sprite   world.Sprite
	distance float64
}

// NewRenderer creates a renderer with the reference constants.
func NewRenderer(textures TextureSource, walls WallTextures) *Renderer {
	return &Renderer{
		Textures:    textures,
		Walls:       walls,
		Cast:        raycast.DefaultOptions(),
		Projection:  DefaultProjection(),
		Billboards:  DefaultBillboardParams(),
		Sky:         color.RGBA{135, 206, 235, 255},
		Floor:       color.RGBA{168, 168, 168, 255},
		MinimapRays: 20,
	}
}

// NewRendererFromConfig creates a renderer configured from cfg.
func NewRendererFromConfig(cfg *config.Config, textures TextureSource, walls WallTextures) (*Renderer, error) {
	mode, err := raycast.ParseMode(cfg.Raycast.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to configure renderer: %w", err)
	}

	r := NewRenderer(textures, walls)
	r.Cast = raycast.Options{
		Mode:        mode,
		Step:        cfg.Raycast.Step,
		MaxRange:    cfg.Raycast.MaxRange,
		TextureSize: textures.Size(),
	}
	r.Projection = Projection{
		WallScale:    cfg.Projection.WallScale,
		MinDistance:  cfg.Projection.MinDistance,
		FarDistance:  cfg.Raycast.MaxRange,
		DrawFarPlane: cfg.Colors.DrawFarPlane,
		FarPlane:     cfg.GetFarPlaneColor(),
	}
	r.Billboards = BillboardParams{
		NearPlane: cfg.Sprites.NearPlane,
		FarPlane:  cfg.Sprites.FarPlane,
		Scale:     cfg.Sprites.Scale,
	}
	r.Light = Light{
		FalloffDistance: cfg.Lighting.FalloffDistance,
		MinBrightness:   cfg.Lighting.MinBrightness,
		Fog:             cfg.GetFarPlaneColor(),
	}
	r.Sky = cfg.GetSkyColor()
	r.Floor = cfg.GetFloorColor()
	r.MinimapRays = cfg.Minimap.SampleRays
	return r, nil
}

// SetScheduler spreads wall columns across a worker pool. nil casts on the
// calling goroutine.
func (r *Renderer) SetScheduler(s ColumnRunner) {
	r.scheduler = s
}

// SetMonitor records phase timings into pm.
func (r *Renderer) SetMonitor(pm *monitoring.PerformanceMonitor) {
	r.monitor = pm
}

func (r *Renderer) columnParams() ColumnParams {
	return ColumnParams{
		Textures:   r.Textures,
		Walls:      r.Walls,
		Projection: r.Projection,
		Light:      r.Light,
	}
}

// RenderFirstPerson draws sky and floor halves, one wall stripe per column,
// then the sprites far to near. sprites is not modified.
func (r *Renderer) RenderFirstPerson(dst *surface.Surface, g *world.Grid, cam *world.Camera, sprites []world.Sprite) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	dst.FillRows(0, h/2, r.Sky)
	dst.FillRows(h/2, h, r.Floor)

	var rt *monitoring.RaycastTimer
	if r.monitor != nil {
		rt = r.monitor.StartRaycast()
	}
	r.renderWalls(dst, g, cam)
	if rt != nil {
		rt.EndRaycast(w)
	}

	if r.monitor != nil {
		r.monitor.ProfiledFunction("sprite_render", func() {
			drawn, culled := r.renderSprites(dst, cam, sprites)
			r.monitor.RecordSprites(drawn, culled)
		})
		return
	}
	r.renderSprites(dst, cam, sprites)
}

func (r *Renderer) renderWalls(dst *surface.Surface, g *world.Grid, cam *world.Camera) {
	w := dst.Width()
	opts := r.Cast
	opts.Trace = nil
	params := r.columnParams()

	column := func(i int) {
		offset := cam.RayOffset(i, w)
		hit := raycast.Cast(g, cam, offset, opts)
		ProjectColumn(dst, i, hit, offset, params)
	}

	if r.scheduler != nil {
		r.scheduler.Columns(w, column)
		return
	}
	for i := 0; i < w; i++ {
		column(i)
	}
}

func (r *Renderer) renderSprites(dst *surface.Surface, cam *world.Camera, sprites []world.Sprite) (drawn, culled int) {
	r.sprites = r.sprites[:0]
	for _, s := range sprites {
		dx, dy := s.X-cam.X, s.Y-cam.Y
		r.sprites = append(r.sprites, spriteDepth{sprite: s, distance: dx*dx + dy*dy})
	}
	sort.SliceStable(r.sprites, func(i, j int) bool {
		return r.sprites[i].distance > r.sprites[j].distance
	})

	for _, sd := range r.sprites {
		if ProjectSprite(dst, cam, sd.sprite, r.Textures, r.Billboards, r.Light) {
			drawn++
		} else {
			culled++
		}
	}
	return drawn, culled
}

func (r *Renderer) minimapParams() MinimapParams {
	opts := r.Cast
	opts.Trace = nil
	return MinimapParams{SampleRays: r.MinimapRays, Cast: opts}
}

// RenderTopDown replaces the whole surface with a top-down view of g.
func (r *Renderer) RenderTopDown(dst *surface.Surface, g *world.Grid, cam *world.Camera) {
	mp := r.minimapParams()
	mp.Colors = r.WallColors
	RenderTopDown(dst, g, cam, mp)
}

// RenderMinimap draws a size x size inset map with its top-left corner at
// position.
func (r *Renderer) RenderMinimap(dst *surface.Surface, g *world.Grid, cam *world.Camera, size int, position image.Point) {
	if size <= 0 {
		return
	}
	region := image.Rect(position.X, position.Y, position.X+size, position.Y+size)
	if r.monitor != nil {
		r.monitor.ProfiledFunction("minimap", func() {
			RenderMinimap(dst, g, cam, region, r.minimapParams())
		})
		return
	}
	RenderMinimap(dst, g, cam, region, r.minimapParams())
}

// MinimapPosition returns the top-left corner of a size x size minimap placed
// in the top-right corner of a surface of the given width.
func MinimapPosition(surfaceWidth, size, margin int) image.Point {
	return image.Pt(surfaceWidth-size-margin, margin)
}

// Package level loads everything a frame needs before the frame loop starts:
// tile table, maze, sprites, textures and the starting camera.
package level

import (
	"fmt"
	"image/color"

	"raycastmaze/internal/config"
	"raycastmaze/internal/render"
	"raycastmaze/internal/threading"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
)

// Level is a loaded maze together with its assets.
type Level struct {
	Config  *config.Config
	Tiles   *world.TileManager
	Map     *world.MapData
	Sprites []world.Sprite
	Atlas   *render.Atlas
	Start   world.Camera
}

// Load reads the tile table, the maze at mapPath (cfg.World.MapFile when
// empty) and the textures. A missing tile table or texture only logs a
// warning; a missing or malformed maze is an error.
func Load(cfg *config.Config, mapPath string, logger *log.Logger) (*Level, error) {
	if logger == nil {
		logger = log.Default()
	}
	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}

	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.World.TilesFile); err != nil {
		logger.Warn("using default wall variant", "error", err)
	}
	world.GlobalTileManager = tiles

	path, err := world.FindMap(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate map: %w", err)
	}
	mapData, err := world.NewMapLoader(tiles, cfg.GetBlockSize()).LoadMap(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	atlas := render.NewAtlas(cfg.GetTextureSize())
	want := append(tiles.Textures(), world.TextureKey_Key, world.TextureKey_Goal)
	if err := atlas.LoadTextures(cfg.Textures.Dir, cfg.Textures.Files, want); err != nil {
		logger.Warn("some textures replaced by placeholders", "error", err)
	}

	l := &Level{
		Config:  cfg,
		Tiles:   tiles,
		Map:     mapData,
		Sprites: mapData.Sprites(),
		Atlas:   atlas,
	}
	l.Start = l.startCamera()

	w, h := mapData.Grid.Width(), mapData.Grid.Height()
	logger.Info("level loaded",
		"map", path,
		"size", fmt.Sprintf("%dx%d", w, h),
		"variants", tiles.VariantCount(),
		"keys", len(mapData.KeySpawns),
		"goals", len(mapData.GoalSpawns),
	)
	return l, nil
}

// startCamera uses the maze's start marker when present and the configured
// start pose otherwise.
func (l *Level) startCamera() world.Camera {
	cam := l.Config.Camera
	x, y := cam.StartX, cam.StartY
	if sx, sy, ok := l.Map.StartPosition(); ok {
		x, y = sx, sy
	}
	return world.NewCamera(x, y, cam.StartAngle, l.Config.GetCameraFOV())
}

// Grid returns the loaded tile grid.
func (l *Level) Grid() *world.Grid {
	return l.Map.Grid
}

// NewRenderer builds a renderer for this level. tc may be nil; when it has a
// column scheduler, wall casting is spread across its workers.
func (l *Level) NewRenderer(tc *threading.ThreadingComponents) (*render.Renderer, error) {
	r, err := render.NewRendererFromConfig(l.Config, l.Atlas, l.Tiles)
	if err != nil {
		return nil, err
	}
	r.WallColors = l.wallColor
	if tc != nil {
		if tc.ColumnScheduler != nil {
			r.SetScheduler(tc.ColumnScheduler)
		}
		r.SetMonitor(tc.PerformanceMonitor)
	}
	return r, nil
}

func (l *Level) wallColor(t world.Tile) color.RGBA {
	return l.Tiles.MinimapColor(t.Variant)
}

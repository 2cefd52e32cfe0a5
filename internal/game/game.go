// Package game presents the raycaster in an ebiten window.
package game

import (
	"errors"
	"time"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/player"
	"raycastmaze/internal/render"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/threading"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// MazeGame implements ebiten.Game. It owns the camera; the renderer only
// reads it during Draw.
type MazeGame struct {
	config     *config.Config
	level      *level.Level
	camera     world.Camera
	renderer   *render.Renderer
	controller *player.Controller
	threading  *threading.ThreadingComponents
	input      *InputHandler
	logger     *log.Logger

	// CPU framebuffer and the GPU image it is uploaded to every frame
	frame    *surface.Surface
	frameImg *ebiten.Image

	showTopDown      bool
	showMinimap      bool
	perfDebugEnabled bool
	quitRequested    bool

	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewMazeGame creates a game for a loaded level.
func NewMazeGame(cfg *config.Config, lvl *level.Level, logger *log.Logger) (*MazeGame, error) {
	if logger == nil {
		logger = log.Default()
	}
	tc := threading.NewThreadingComponents(cfg.Raycast.Workers)
	tc.PerformanceMonitor.SetLowFPSWarning(cfg.Perf.LowFPSWarning)

	r, err := lvl.NewRenderer(tc)
	if err != nil {
		tc.Shutdown()
		return nil, err
	}

	g := &MazeGame{
		config:           cfg,
		level:            lvl,
		camera:           lvl.Start,
		renderer:         r,
		threading:        tc,
		logger:           logger,
		frame:            surface.New(cfg.GetScreenWidth(), cfg.GetScreenHeight(), cfg.GetBackgroundColor()),
		frameImg:         ebiten.NewImage(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		showMinimap:      cfg.Minimap.Enabled,
		perfDebugEnabled: cfg.Perf.LogEnabled,
	}
	g.controller = player.NewController(&g.camera, lvl.Grid(), cfg)
	g.input = NewInputHandler(g)
	return g, nil
}

// Update samples input and moves the camera.
func (g *MazeGame) Update() error {
	start := time.Now()
	defer func() { g.lastUpdateDuration = time.Since(start) }()

	g.input.HandleInput()
	if g.quitRequested {
		return ebiten.Termination
	}
	g.maybeLogPerfDrop()
	return nil
}

// Draw renders the frame on the CPU surface and uploads it.
func (g *MazeGame) Draw(screen *ebiten.Image) {
	start := time.Now()
	frameTimer := g.threading.PerformanceMonitor.StartFrame()

	g.renderFrame()
	g.frameImg.WritePixels(g.frame.Pix())
	screen.DrawImage(g.frameImg, nil)

	frameTimer.EndFrame()
	g.lastDrawDuration = time.Since(start)
}

func (g *MazeGame) renderFrame() {
	grid := g.level.Grid()
	if g.showTopDown {
		g.renderer.RenderTopDown(g.frame, grid, &g.camera)
		return
	}

	g.renderer.RenderFirstPerson(g.frame, grid, &g.camera, g.level.Sprites)
	if g.showMinimap {
		size := g.config.Minimap.Size
		pos := render.MinimapPosition(g.frame.Width(), size, g.config.Minimap.Margin)
		g.renderer.RenderMinimap(g.frame, grid, &g.camera, size, pos)
	}
}

// Layout returns the framebuffer size; ebiten scales it to the window.
func (g *MazeGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.frame.Width(), g.frame.Height()
}

// Camera returns a copy of the current camera pose.
func (g *MazeGame) Camera() world.Camera {
	return g.camera
}

// Close stops the worker pool.
func (g *MazeGame) Close() {
	g.threading.Shutdown()
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, lvl *level.Level, logger *log.Logger) error {
	g, err := NewMazeGame(cfg, lvl, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

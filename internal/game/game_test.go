package game

import (
	"image/color"
	"io"
	"math"
	"strings"
	"testing"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/player"
	"raycastmaze/internal/render"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
)

const testMaze = `xxxxx
xp  x
x  kx
xxxxx
`

func newTestGame(t *testing.T) *MazeGame {
	t.Helper()
	cfg := config.Default()
	cfg.Display.ScreenWidth = 160
	cfg.Display.ScreenHeight = 120
	cfg.Minimap.Enabled = true
	cfg.Minimap.Size = 40
	cfg.Minimap.Margin = 4
	cfg.Projection.TextureSize = 16

	tiles := world.NewTileManager()
	md, err := world.NewMapLoader(tiles, cfg.GetBlockSize()).Parse(strings.NewReader(testMaze))
	if err != nil {
		t.Fatalf("failed to parse test maze: %v", err)
	}
	atlas := render.NewAtlas(cfg.GetTextureSize())
	want := append(tiles.Textures(), world.TextureKey_Key, world.TextureKey_Goal)
	if err := atlas.LoadTextures("", nil, want); err != nil {
		t.Fatalf("failed to build placeholder textures: %v", err)
	}

	x, y, _ := md.StartPosition()
	lvl := &level.Level{
		Config:  cfg,
		Tiles:   tiles,
		Map:     md,
		Sprites: md.Sprites(),
		Atlas:   atlas,
		Start:   world.NewCamera(x, y, 0, cfg.GetCameraFOV()),
	}

	g, err := NewMazeGame(cfg, lvl, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewMazeGame failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestNewMazeGame(t *testing.T) {
	g := newTestGame(t)

	w, h := g.Layout(800, 600)
	if w != 160 || h != 120 {
		t.Errorf("Layout() = %dx%d, want 160x120", w, h)
	}
	cam := g.Camera()
	if cam.X != 150 || cam.Y != 150 {
		t.Errorf("camera starts at (%v, %v), want the start marker center (150, 150)", cam.X, cam.Y)
	}
	if !g.showMinimap || g.showTopDown {
		t.Errorf("unexpected initial view flags: minimap=%v topDown=%v", g.showMinimap, g.showTopDown)
	}
}

func TestRenderFrameFirstPersonWithMinimap(t *testing.T) {
	g := newTestGame(t)
	g.renderFrame()

	if got, _ := g.frame.At(0, 0); got != g.config.GetSkyColor() {
		t.Errorf("top-left pixel = %v, want sky %v", got, g.config.GetSkyColor())
	}

	// Minimap border in the top-right corner
	pos := render.MinimapPosition(g.frame.Width(), g.config.Minimap.Size, g.config.Minimap.Margin)
	if got, _ := g.frame.At(pos.X, pos.Y); got != colorWhite {
		t.Errorf("minimap corner = %v, want white border", got)
	}
}

func TestRenderFrameTopDown(t *testing.T) {
	g := newTestGame(t)
	g.showTopDown = true
	g.renderFrame()

	// The wall border of the maze is drawn from the origin
	if got, _ := g.frame.At(0, 0); got == g.config.GetSkyColor() {
		t.Error("top-down view should replace the first-person frame")
	}
	if got, _ := g.frame.At(g.frame.Width()-1, g.frame.Height()-1); got != g.frame.Background() {
		t.Errorf("area outside the maze = %v, want background", got)
	}
}

func TestControllerMovesGameCamera(t *testing.T) {
	g := newTestGame(t)
	before := g.Camera()

	g.controller.Update(playerForward())
	after := g.Camera()
	if math.Abs(after.X-before.X-g.config.GetMoveSpeed()) > 1e-9 {
		t.Errorf("camera moved from %v to %v, want +%v on x", before.X, after.X, g.config.GetMoveSpeed())
	}
}

func TestTogglePerfDebug(t *testing.T) {
	g := newTestGame(t)
	g.perfDebugEnabled = true
	g.togglePerfDebug()
	if g.perfDebugEnabled {
		t.Error("toggle should disable perf logging")
	}
	if !g.perfLowFpsSince.IsZero() || !g.perfLastPerfLog.IsZero() {
		t.Error("toggle should reset the low-fps timers")
	}
}

var colorWhite = color.RGBA{255, 255, 255, 255}

func playerForward() player.Input {
	return player.Input{Forward: true}
}

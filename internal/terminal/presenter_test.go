package terminal

import (
	"io"
	"strings"
	"testing"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/render"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const testMaze = `xxxxxx
xp   x
x    x
x   gx
xxxxxx
`

func newTestPresenter(t *testing.T) (*Presenter, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	cfg := config.Default()
	cfg.Minimap.Enabled = true
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

	p, err := NewPresenter(screen, cfg, lvl, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPresenter failed: %v", err)
	}
	t.Cleanup(p.Close)
	return p, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPresenterFrameMatchesScreen(t *testing.T) {
	p, _ := newTestPresenter(t)
	if p.frame.Width() != 40 || p.frame.Height() != 40 {
		t.Errorf("frame is %dx%d, want 40x40", p.frame.Width(), p.frame.Height())
	}
}

func TestPresenterDrawsHalfBlocks(t *testing.T) {
	p, screen := newTestPresenter(t)
	p.Tick()

	r, _, style, _ := screen.GetContent(0, 0)
	if r != upperHalfBlock {
		t.Fatalf("cell (0,0) = %q, want upper half block", r)
	}
	sky := p.config.GetSkyColor()
	if want := cellStyle(sky, sky); style != want {
		t.Errorf("cell (0,0) style = %v, want sky over sky", style)
	}

	// The bottom row shows floor in both halves
	floor := p.config.GetFloorColor()
	if _, _, style, _ := screen.GetContent(0, 19); style != cellStyle(floor, floor) {
		t.Errorf("bottom-left cell style = %v, want floor over floor", style)
	}
}

func TestPresenterMovementKeysLatchUntilTick(t *testing.T) {
	p, _ := newTestPresenter(t)
	start := p.Camera()

	if !p.HandleEvent(key('w')) {
		t.Fatal("movement key should not end the session")
	}
	if p.Camera() != start {
		t.Error("camera moved before the tick")
	}

	p.Tick()
	moved := p.Camera()
	if moved.X <= start.X {
		t.Errorf("forward key did not move the camera east: %v -> %v", start.X, moved.X)
	}

	p.Tick()
	if p.Camera() != moved {
		t.Error("latched input should be cleared after a tick")
	}
}

func TestPresenterToggles(t *testing.T) {
	p, _ := newTestPresenter(t)

	p.HandleEvent(key('m'))
	if !p.showTopDown {
		t.Error("m should switch to the top-down view")
	}
	p.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if p.showMinimap {
		t.Error("tab should hide the minimap")
	}
	p.Tick()
}

func TestPresenterQuitKeys(t *testing.T) {
	p, _ := newTestPresenter(t)
	if p.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should end the session")
	}
	if p.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)) {
		t.Error("ctrl+c should end the session")
	}
}

func TestPresenterResize(t *testing.T) {
	p, screen := newTestPresenter(t)
	screen.SetSize(30, 10)
	p.HandleEvent(tcell.NewEventResize(30, 10))
	if p.frame.Width() != 30 || p.frame.Height() != 20 {
		t.Errorf("frame after resize is %dx%d, want 30x20", p.frame.Width(), p.frame.Height())
	}
}

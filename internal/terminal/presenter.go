// Package terminal presents the raycaster in a terminal through tcell. Each
// cell shows two vertically stacked pixels using an upper half block.
package terminal

import (
	"image/color"
	"time"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/mathutil"
	"raycastmaze/internal/player"
	"raycastmaze/internal/render"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/threading"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	upperHalfBlock = '▀'
	tickInterval   = 16 * time.Millisecond // ~60 FPS
)

// Presenter drives one terminal session.
type Presenter struct {
	screen     tcell.Screen
	config     *config.Config
	level      *level.Level
	camera     world.Camera
	renderer   *render.Renderer
	controller *player.Controller
	threading  *threading.ThreadingComponents
	logger     *log.Logger

	frame *surface.Surface

	// Terminals report key presses only, so movement keys latch until the
	// next tick.
	pending     player.Input
	showTopDown bool
	showMinimap bool
}

// NewPresenter creates a presenter on an initialized screen.
func NewPresenter(screen tcell.Screen, cfg *config.Config, lvl *level.Level, logger *log.Logger) (*Presenter, error) {
	if logger == nil {
		logger = log.Default()
	}
	tc := threading.NewThreadingComponents(cfg.Raycast.Workers)
	r, err := lvl.NewRenderer(tc)
	if err != nil {
		tc.Shutdown()
		return nil, err
	}

	p := &Presenter{
		screen:      screen,
		config:      cfg,
		level:       lvl,
		camera:      lvl.Start,
		renderer:    r,
		threading:   tc,
		logger:      logger,
		showMinimap: cfg.Minimap.Enabled,
	}
	p.controller = player.NewController(&p.camera, lvl.Grid(), cfg)
	p.resize()
	return p, nil
}

// resize matches the framebuffer to the screen: one column per terminal
// column and two rows per terminal row.
func (p *Presenter) resize() {
	w, h := p.screen.Size()
	w, h = mathutil.IntMax(w, 1), mathutil.IntMax(h, 1)
	if p.frame != nil && p.frame.Width() == w && p.frame.Height() == h*2 {
		return
	}
	p.frame = surface.New(w, h*2, p.config.GetBackgroundColor())
}

// HandleEvent applies one terminal event. It returns false when the session
// should end.
func (p *Presenter) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(ev)
	case *tcell.EventResize:
		p.screen.Sync()
		p.resize()
	}
	return true
}

func (p *Presenter) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		p.pending.Forward = true
	case tcell.KeyDown:
		p.pending.Backward = true
	case tcell.KeyLeft:
		p.pending.TurnLeft = true
	case tcell.KeyRight:
		p.pending.TurnRight = true
	case tcell.KeyTab:
		p.showMinimap = !p.showMinimap
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			p.pending.Forward = true
		case 's', 'S':
			p.pending.Backward = true
		case 'a', 'A':
			p.pending.TurnLeft = true
		case 'd', 'D':
			p.pending.TurnRight = true
		case 'q', 'Q':
			p.pending.StrafeLeft = true
		case 'e', 'E':
			p.pending.StrafeRight = true
		case 'm', 'M':
			p.showTopDown = !p.showTopDown
		}
	}
	return true
}

// Tick applies the latched input and redraws the screen.
func (p *Presenter) Tick() {
	p.controller.Update(p.pending)
	p.pending = player.Input{}
	p.draw()
}

func (p *Presenter) draw() {
	frameTimer := p.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	grid := p.level.Grid()
	if p.showTopDown {
		p.renderer.RenderTopDown(p.frame, grid, &p.camera)
	} else {
		p.renderer.RenderFirstPerson(p.frame, grid, &p.camera, p.level.Sprites)
		if p.showMinimap {
			size := p.minimapSize()
			pos := render.MinimapPosition(p.frame.Width(), size, 1)
			p.renderer.RenderMinimap(p.frame, grid, &p.camera, size, pos)
		}
	}
	blit(p.screen, p.frame)
	p.screen.Show()
}

// minimapSize shrinks the configured minimap to a third of the frame height.
func (p *Presenter) minimapSize() int {
	return mathutil.IntMin(p.config.Minimap.Size, p.frame.Height()/3)
}

// blit copies the surface to the screen, two pixel rows per cell.
func blit(screen tcell.Screen, src *surface.Surface) {
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top, ok := src.At(x, y*2)
			if !ok {
				continue
			}
			bottom, _ := src.At(x, y*2+1)
			screen.SetContent(x, y, upperHalfBlock, nil, cellStyle(top, bottom))
		}
	}
}

func cellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}

// Close stops the worker pool and the frame timers.
func (p *Presenter) Close() {
	p.threading.Shutdown()
}

// Camera returns a copy of the current camera pose.
func (p *Presenter) Camera() world.Camera {
	return p.camera
}

// Run opens the terminal and blocks until the user quits.
func Run(cfg *config.Config, lvl *level.Level, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	p, err := NewPresenter(screen, cfg, lvl, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	p.loop()
	metrics := p.threading.PerformanceMonitor.GetCurrentMetrics()
	p.logger.Debug("terminal session ended", "last_fps", metrics.FramesPerSecond)
	return nil
}

func (p *Presenter) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	p.draw()
	for {
		select {
		case ev := <-eventChan:
			if !p.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			p.Tick()
		}
	}
}

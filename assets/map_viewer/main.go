package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/render"
	"raycastmaze/internal/surface"
	"raycastmaze/internal/world"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
	padding      = 16
	previewSize  = 150
)

type mapInfo struct {
	Key      string
	Level    *level.Level
	Renderer *render.Renderer
	Err      error
}

type viewer struct {
	maps        []mapInfo
	mapIndex    int
	legendLines []string
	sidebarTab  int
	lastErr     string

	// Map panel and minimap preview are rendered on the CPU and uploaded
	panel      *surface.Surface
	panelImg   *ebiten.Image
	preview    *surface.Surface
	previewImg *ebiten.Image
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()
	logger := log.WithPrefix("map_viewer")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.Default()
	}

	maps, err := loadMaps(cfg, logger)
	if err != nil {
		logger.Warn("no maze files found", "error", err)
	}

	panelW, panelH := mapPanelSize()
	background := color.RGBA{20, 20, 35, 255}
	v := &viewer{
		maps:       maps,
		sidebarTab: tabInfo,
		panel:      surface.New(panelW, panelH, background),
		panelImg:   ebiten.NewImage(panelW, panelH),
		preview:    surface.New(previewSize, previewSize, background),
		previewImg: ebiten.NewImage(previewSize, previewSize),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	} else {
		v.selectMap(0)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycast Maze Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("viewer stopped", "error", err)
	}
}

func mapPanelSize() (int, int) {
	return windowWidth - sidebarWidth - padding*3, windowHeight - padding*2
}

func (v *viewer) selectMap(i int) {
	v.mapIndex = i
	m := v.maps[i]
	if m.Level != nil {
		v.legendLines = buildLegendLines(m.Level.Tiles)
	} else {
		v.legendLines = nil
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.maps) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.selectMap((v.mapIndex + 1) % len(v.maps))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.selectMap((v.mapIndex - 1 + len(v.maps)) % len(v.maps))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, padding, padding)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), padding, padding)
		return
	}

	panelW, panelH := mapPanelSize()
	sidebarX := padding + panelW + padding

	v.drawMapPanel(screen, m, padding, padding)
	drawRectBorder(screen, padding, padding, panelW, panelH, 2, color.RGBA{70, 70, 90, 255})
	v.drawSidebar(screen, m, sidebarX, padding, sidebarWidth, panelH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// drawMapPanel renders the whole maze top-down with the level's start camera,
// then marks spawns on top.
func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y int) {
	lvl := m.Level
	cam := lvl.Start
	m.Renderer.RenderTopDown(v.panel, lvl.Grid(), &cam)
	v.panelImg.WritePixels(v.panel.Pix())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(v.panelImg, op)

	drawOverlays(screen, lvl, x, y, v.panel.Width(), v.panel.Height())
	drawMapHeader(screen, m, x, y)
}

func drawMapHeader(screen *ebiten.Image, m mapInfo, x, y int) {
	ebitenutil.DebugPrintAt(screen, m.Key, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

// drawOverlays marks the start, key and goal cells using the same scale
// RenderTopDown picked for the panel.
func drawOverlays(screen *ebiten.Image, lvl *level.Level, originX, originY, w, h int) {
	g := lvl.Grid()
	ww, wh := g.WorldSize()
	if ww <= 0 || wh <= 0 {
		return
	}
	scale := min(float64(w)/ww, float64(h)/wh, 1)
	tileSize := float32(g.BlockSize() * scale)

	mark := func(cell world.Cell, clr color.RGBA, stroke bool) {
		cx := float32(originX) + (float32(cell.X)+0.5)*tileSize
		cy := float32(originY) + (float32(cell.Y)+0.5)*tileSize
		radius := tileSize * 0.35
		vector.DrawFilledCircle(screen, cx, cy, radius, clr, true)
		if stroke {
			vector.StrokeCircle(screen, cx, cy, radius, 1, color.RGBA{255, 255, 255, 255}, true)
		}
	}

	if lvl.Map.HasStart() {
		mark(world.Cell{X: lvl.Map.StartX, Y: lvl.Map.StartY}, color.RGBA{50, 200, 255, 255}, true)
	}
	for _, c := range lvl.Map.KeySpawns {
		mark(c, color.RGBA{255, 203, 0, 255}, false)
	}
	for _, c := range lvl.Map.GoalSpawns {
		mark(c, color.RGBA{0, 228, 48, 255}, false)
	}
}

func (v *viewer) drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, v.sidebarTab)
	row := y + tabHeight + 12

	if v.sidebarTab == tabLegend {
		for _, line := range v.legendLines {
			if row > y+h-14 {
				break
			}
			ebitenutil.DebugPrintAt(screen, line, x+10, row)
			row += 14
		}
		return
	}

	lvl := m.Level
	g := lvl.Grid()
	stats := []string{
		fmt.Sprintf("Tiles: %dx%d", g.Width(), g.Height()),
		fmt.Sprintf("Block size: %.0f", g.BlockSize()),
		fmt.Sprintf("Wall variants: %d", lvl.Tiles.VariantCount()),
		fmt.Sprintf("Keys: %d", len(lvl.Map.KeySpawns)),
		fmt.Sprintf("Goals: %d", len(lvl.Map.GoalSpawns)),
		fmt.Sprintf("Start: (%.0f, %.0f)", lvl.Start.X, lvl.Start.Y),
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Cyan: start  Gold: keys  Green: goals", x+12, row)
	row += 24

	// Minimap preview as the game draws it
	cam := lvl.Start
	v.preview.Clear()
	m.Renderer.RenderMinimap(v.preview, g, &cam, previewSize, image.Point{})
	v.previewImg.WritePixels(v.preview.Pix())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x+12), float64(row))
	screen.DrawImage(v.previewImg, op)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

// loadMaps loads every maze file in assets/, sorted by name.
func loadMaps(cfg *config.Config, logger *log.Logger) ([]mapInfo, error) {
	files, err := filepath.Glob(filepath.Join("assets", "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maze files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *.txt files in assets")
	}
	sort.Strings(files)

	maps := make([]mapInfo, 0, len(files))
	for _, file := range files {
		info := mapInfo{Key: filepath.Base(file)}
		info.Level, info.Err = level.Load(cfg, file, logger)
		if info.Err == nil {
			info.Renderer, info.Err = info.Level.NewRenderer(nil)
		}
		maps = append(maps, info)
	}
	return maps, nil
}

func buildLegendLines(tm *world.TileManager) []string {
	lines := []string{
		"Wall variants (letter -> key/name texture)",
		"------------------------------------------",
	}
	for _, key := range tm.GetAllTileKeys() {
		variant, ok := tm.VariantForKey(key)
		if !ok {
			continue
		}
		data := tm.GetTileData(variant)
		if data == nil {
			continue
		}
		letter := data.Letter
		if letter == "" {
			letter = "*"
		}
		lines = append(lines, fmt.Sprintf("%s -> %s (%s) %s", letter, key, data.Name, tm.TextureFor(variant)))
	}

	lines = append(lines, "",
		"Markers",
		"-------",
		"p = start position",
		"k = key spawn",
		"g = goal",
		"* = any other symbol uses the default wall",
	)
	return lines
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}

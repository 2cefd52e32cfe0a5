package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Map symbols with fixed meaning. Every other symbol is a wall whose variant is
// looked up in the tile manager.
const (
	SymbolEmpty    = ' '
	SymbolGoal     = 'g'
	SymbolKeySpawn = 'k'
	SymbolStart    = 'p'
)

func isReservedSymbol(r rune) bool {
	return r == SymbolEmpty || r == SymbolGoal || r == SymbolKeySpawn || r == SymbolStart
}

// MapLoader handles loading maze files
type MapLoader struct {
	tiles     *TileManager
	blockSize float64
}

// Cell is a grid coordinate recorded by the loader.
type Cell struct {
	X, Y int
}

// MapData contains the loaded map information
type MapData struct {
	Grid       *Grid
	KeySpawns  []Cell
	GoalSpawns []Cell
	StartX     int // -1 when the map has no start marker
	StartY     int
}

// HasStart reports whether the map placed a camera start marker.
func (md *MapData) HasStart() bool {
	return md.StartX >= 0 && md.StartY >= 0
}

// StartPosition returns the world coordinates of the start cell's center.
func (md *MapData) StartPosition() (x, y float64, ok bool) {
	if !md.HasStart() {
		return 0, 0, false
	}
	x, y = md.Grid.CellCenter(md.StartX, md.StartY)
	return x, y, true
}

// Sprites returns the billboards for every key and goal cell.
func (md *MapData) Sprites() []Sprite {
	return SpawnSprites(md.Grid)
}

// NewMapLoader creates a map loader. A nil tile manager falls back to
// GlobalTileManager, then to the default wall variant for every wall symbol.
func NewMapLoader(tiles *TileManager, blockSize float64) *MapLoader {
	return &MapLoader{tiles: tiles, blockSize: blockSize}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	mapData, err := ml.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", filepath.Base(mapPath), err)
	}
	return mapData, nil
}

// Parse reads a maze from r. Blank lines and lines starting with '#' are
// skipped; all remaining lines must have the same width.
func (ml *MapLoader) Parse(r io.Reader) (*MapData, error) {
	var lines [][]rune
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, []rune(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(line))
		}
	}

	tm := ml.tiles
	if tm == nil {
		tm = GlobalTileManager
	}

	mapData := &MapData{StartX: -1, StartY: -1}
	rows := make([][]Tile, len(lines))
	for y, line := range lines {
		rows[y] = make([]Tile, width)
		for x, char := range line {
			tile, isStart := parseMapCharacter(tm, char)
			rows[y][x] = tile

			switch {
			case isStart:
				if mapData.HasStart() {
					return nil, fmt.Errorf("duplicate start marker at line %d column %d", y+1, x+1)
				}
				mapData.StartX, mapData.StartY = x, y
			case tile.Kind == TileKeySpawn:
				mapData.KeySpawns = append(mapData.KeySpawns, Cell{X: x, Y: y})
			case tile.Kind == TileGoal:
				mapData.GoalSpawns = append(mapData.GoalSpawns, Cell{X: x, Y: y})
			}
		}
	}

	mapData.Grid = NewGrid(rows, ml.blockSize)
	return mapData, nil
}

// parseMapCharacter converts a map character to a tile and reports whether it
// is the start marker.
func parseMapCharacter(tm *TileManager, char rune) (Tile, bool) {
	switch char {
	case SymbolEmpty:
		return Empty, false
	case SymbolStart:
		return Empty, true
	case SymbolGoal:
		return Goal, false
	case SymbolKeySpawn:
		return KeySpawn, false
	}
	if tm == nil {
		return Wall(DefaultVariant), false
	}
	return Wall(tm.VariantForLetter(char)), false
}

// FindMap looks for a maze file in the usual locations relative to the
// working directory.
func FindMap(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	possiblePaths := []string{
		name,
		filepath.Join("assets", name),
		filepath.Join("..", "assets", name),
		filepath.Join("..", "..", "assets", name),
	}
	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found in any of the expected locations", name)
}

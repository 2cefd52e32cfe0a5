package world

import "math"

// Grid is the per-level tile map. It is built once by the loader and read
// concurrently by every renderer component afterwards, so it exposes no
// mutators beyond construction.
type Grid struct {
	cells     []Tile // row-major
	width     int
	height    int
	blockSize float64
}

// NewGrid builds a grid from rows of tiles. Rows are expected to be
// rectangular; short rows are padded with Void so lookups stay in range.
func NewGrid(rows [][]Tile, blockSize float64) *Grid {
	height := len(rows)
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if blockSize <= 0 {
		blockSize = 1
	}

	g := &Grid{
		cells:     make([]Tile, width*height),
		width:     width,
		height:    height,
		blockSize: blockSize,
	}
	for y, row := range rows {
		for x := 0; x < width; x++ {
			t := Void
			if x < len(row) {
				t = row[x]
			}
			g.cells[y*width+x] = t
		}
	}
	return g
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// BlockSize is the edge length of one cell in world units.
func (g *Grid) BlockSize() float64 {
	return g.blockSize
}

// WorldSize returns the grid extent in world units.
func (g *Grid) WorldSize() (w, h float64) {
	return float64(g.width) * g.blockSize, float64(g.height) * g.blockSize
}

// InBounds reports whether (col, row) is a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// At returns the tile at (col, row), or Void outside the grid.
func (g *Grid) At(col, row int) Tile {
	if !g.InBounds(col, row) {
		return Void
	}
	return g.cells[row*g.width+col]
}

// CellAt converts a world position into cell coordinates.
func (g *Grid) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / g.blockSize)), int(math.Floor(y / g.blockSize))
}

// TileAtWorld returns the tile containing the world position (x, y).
func (g *Grid) TileAtWorld(x, y float64) Tile {
	col, row := g.CellAt(x, y)
	return g.At(col, row)
}

// CellCenter returns the world coordinates of a cell's center.
func (g *Grid) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * g.blockSize, (float64(row) + 0.5) * g.blockSize
}

// Find returns every cell holding a tile of the given kind, in row-major order.
func (g *Grid) Find(kind TileKind) [][2]int {
	var cells [][2]int
	for i, t := range g.cells {
		if t.Kind == kind {
			cells = append(cells, [2]int{i % g.width, i / g.width})
		}
	}
	return cells
}

// IsTileBlocking implements collision.TileChecker.
func (g *Grid) IsTileBlocking(col, row int) bool {
	return !g.At(col, row).Walkable()
}

// GetWorldBounds implements collision.TileChecker.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.width, g.height
}

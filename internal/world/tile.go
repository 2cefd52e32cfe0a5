package world

import "fmt"

// TileKind is the closed set of cell identities a grid can hold.
type TileKind uint8

const (
	TileEmpty    TileKind = iota // Open floor - rays pass through
	TileWall                     // Solid wall - Variant selects its texture
	TileGoal                     // Level exit - drawn as a billboard, never as a wall stripe
	TileKeySpawn                 // Key pickup marker - drawn as a billboard
	TileVoid                     // Outside the grid, or no hit within range
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileGoal:
		return "goal"
	case TileKeySpawn:
		return "key_spawn"
	case TileVoid:
		return "void"
	default:
		return fmt.Sprintf("TileKind(%d)", uint8(k))
	}
}

// VariantID selects one wall appearance from the tile table.
type VariantID uint16

// Tile is one grid cell. Variant is meaningful only for walls.
type Tile struct {
	Kind    TileKind
	Variant VariantID
}

var (
	Empty    = Tile{Kind: TileEmpty}
	Goal     = Tile{Kind: TileGoal}
	KeySpawn = Tile{Kind: TileKeySpawn}
	Void     = Tile{Kind: TileVoid}
)

// Wall returns a wall tile of the given variant.
func Wall(variant VariantID) Tile {
	return Tile{Kind: TileWall, Variant: variant}
}

func (t Tile) IsEmpty() bool { return t.Kind == TileEmpty }
func (t Tile) IsWall() bool  { return t.Kind == TileWall }
func (t Tile) IsVoid() bool  { return t.Kind == TileVoid }

// SpriteOnly reports tiles that are represented by billboards and must be
// skipped by wall projection.
func (t Tile) SpriteOnly() bool {
	return t.Kind == TileGoal || t.Kind == TileKeySpawn
}

// Walkable reports whether the camera may enter the cell.
func (t Tile) Walkable() bool {
	return t.Kind == TileEmpty || t.Kind == TileGoal || t.Kind == TileKeySpawn
}

func (t Tile) String() string {
	if t.Kind == TileWall {
		return fmt.Sprintf("wall(%d)", t.Variant)
	}
	return t.Kind.String()
}

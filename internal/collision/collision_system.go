package collision

import (
	"math"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem resolves camera movement against the tile grid
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
	}
}

// UpdateTileChecker updates the tile checker (used when switching maps)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// CanMoveTo checks if a body of the given radius fits at (x, y). A zero
// radius tests the single cell under the point.
func (cs *CollisionSystem) CanMoveTo(x, y, radius float64) bool {
	if radius < 0 {
		radius = 0
	}
	return cs.canMoveToWorldPosition(NewBoundingBox(x, y, radius*2, radius*2))
}

// canMoveToWorldPosition checks collision with world tiles
func (cs *CollisionSystem) canMoveToWorldPosition(boundingBox *BoundingBox) bool {
	width, height := cs.tileChecker.GetWorldBounds()

	minX, minY, maxX, maxY := boundingBox.GetBounds()

	// Floor keeps negative coordinates out of tile 0
	startTileX := int(math.Floor(minX / cs.tileSize))
	startTileY := int(math.Floor(minY / cs.tileSize))
	endTileX := int(math.Floor(maxX / cs.tileSize))
	endTileY := int(math.Floor(maxY / cs.tileSize))

	for tileY := startTileY; tileY <= endTileY; tileY++ {
		for tileX := startTileX; tileX <= endTileX; tileX++ {
			if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
				return false
			}
			if cs.tileChecker.IsTileBlocking(tileX, tileY) {
				return false
			}
		}
	}

	return true
}

// Move applies the displacement (dx, dy) from (x, y) and returns the
// resulting position. A blocked move slides along whichever axis is still
// free; if neither is, the position is unchanged.
func (cs *CollisionSystem) Move(x, y, dx, dy, radius float64) (float64, float64) {
	if dx == 0 && dy == 0 {
		return x, y
	}
	if cs.CanMoveTo(x+dx, y+dy, radius) {
		return x + dx, y + dy
	}
	if dx != 0 && cs.CanMoveTo(x+dx, y, radius) {
		return x + dx, y
	}
	if dy != 0 && cs.CanMoveTo(x, y+dy, radius) {
		return x, y + dy
	}
	return x, y
}

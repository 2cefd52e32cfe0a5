package raycast

import (
	"math"

	"raycastmaze/internal/world"
)

// dda walks the ray from grid line to grid line. The direction is a unit
// vector, so the ray parameter at a crossing is the Euclidean distance in
// cells.
func dda(g *world.Grid, startWorldX, startWorldY, rayDirectionX, rayDirectionY float64, opts Options) Hit {
	tileSize := g.BlockSize()
	startX := startWorldX / tileSize
	startY := startWorldY / tileSize
	currentTileX := int(math.Floor(startX))
	currentTileY := int(math.Floor(startY))

	positionInTileX := startX - float64(currentTileX)
	positionInTileY := startY - float64(currentTileY)

	// How far the ray travels to cross one grid line
	deltaDistanceX, deltaDistanceY := NoHitDistance, NoHitDistance
	if rayDirectionX != 0 {
		deltaDistanceX = math.Abs(1 / rayDirectionX)
	}
	if rayDirectionY != 0 {
		deltaDistanceY = math.Abs(1 / rayDirectionY)
	}

	var stepDirectionX, stepDirectionY int
	var distanceToNextGridLineX, distanceToNextGridLineY float64
	if rayDirectionX < 0 {
		stepDirectionX = -1
		distanceToNextGridLineX = positionInTileX * deltaDistanceX
	} else {
		stepDirectionX = 1
		distanceToNextGridLineX = (1.0 - positionInTileX) * deltaDistanceX
	}
	if rayDirectionY < 0 {
		stepDirectionY = -1
		distanceToNextGridLineY = positionInTileY * deltaDistanceY
	} else {
		stepDirectionY = 1
		distanceToNextGridLineY = (1.0 - positionInTileY) * deltaDistanceY
	}

	maxRange := opts.MaxRange / tileSize
	maxSteps := int(2*maxRange) + 2
	wallSide := 0

	for steps := 1; steps <= maxSteps; steps++ {
		var crossing float64
		if distanceToNextGridLineX < distanceToNextGridLineY {
			crossing = distanceToNextGridLineX
			distanceToNextGridLineX += deltaDistanceX
			currentTileX += stepDirectionX
			wallSide = 0
		} else {
			crossing = distanceToNextGridLineY
			distanceToNextGridLineY += deltaDistanceY
			currentTileY += stepDirectionY
			wallSide = 1
		}

		if crossing > maxRange {
			endX := startWorldX + rayDirectionX*opts.MaxRange
			endY := startWorldY + rayDirectionY*opts.MaxRange
			return miss(endX, endY, currentTileX, currentTileY, steps)
		}

		hitX := startWorldX + rayDirectionX*crossing*tileSize
		hitY := startWorldY + rayDirectionY*crossing*tileSize
		if opts.Trace != nil {
			opts.Trace(hitX, hitY)
		}

		if !g.InBounds(currentTileX, currentTileY) {
			return miss(hitX, hitY, currentTileX, currentTileY, steps)
		}
		tile := g.At(currentTileX, currentTileY)
		if tile.IsEmpty() {
			continue
		}

		var textureCoordinate float64
		if wallSide == 0 {
			textureCoordinate = startY + crossing*rayDirectionY
		} else {
			textureCoordinate = startX + crossing*rayDirectionX
		}
		textureCoordinate -= math.Floor(textureCoordinate)

		// Keep textures reading left to right on every face.
		if wallSide == 0 && rayDirectionX > 0 {
			textureCoordinate = 1 - textureCoordinate
		}
		if wallSide == 1 && rayDirectionY < 0 {
			textureCoordinate = 1 - textureCoordinate
		}

		return Hit{
			Distance: crossing * tileSize,
			Tile:     tile,
			TextureU: texel(textureCoordinate, opts.TextureSize),
			Side:     wallSide,
			CellX:    currentTileX,
			CellY:    currentTileY,
			HitX:     hitX,
			HitY:     hitY,
			Steps:    steps,
		}
	}

	endX := startWorldX + rayDirectionX*opts.MaxRange
	endY := startWorldY + rayDirectionY*opts.MaxRange
	return miss(endX, endY, currentTileX, currentTileY, maxSteps)
}

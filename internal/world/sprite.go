package world

// TextureKey names a texture in the texture source ("stone", "key", ...).
type TextureKey string

const (
	TextureKey_Key  TextureKey = "key"
	TextureKey_Goal TextureKey = "goal"
)

// Sprite is a world-space point drawn as a camera-facing billboard.
type Sprite struct {
	X, Y    float64
	Texture TextureKey
}

// SpawnSprites returns one billboard per goal and key-spawn cell, centered in
// its cell.
func SpawnSprites(g *Grid) []Sprite {
	var sprites []Sprite
	for _, cell := range g.Find(TileKeySpawn) {
		x, y := g.CellCenter(cell[0], cell[1])
		sprites = append(sprites, Sprite{X: x, Y: y, Texture: TextureKey_Key})
	}
	for _, cell := range g.Find(TileGoal) {
		x, y := g.CellCenter(cell[0], cell[1])
		sprites = append(sprites, Sprite{X: x, Y: y, Texture: TextureKey_Goal})
	}
	return sprites
}

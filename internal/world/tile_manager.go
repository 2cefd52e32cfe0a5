package world

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"raycastmaze/internal/config"

	"gopkg.in/yaml.v3"
)

// DefaultVariant is the wall variant used for symbols the tile table does not
// name. It always exists, even with no tile table loaded.
const DefaultVariant VariantID = 0

const defaultVariantKey = "wall"

// TileManager is the variant table: it maps map symbols to wall variants and
// wall variants to texture keys and minimap colors.
type TileManager struct {
	tileData        map[string]*config.TileData
	variantToKey    map[VariantID]string
	keyToVariant    map[string]VariantID
	letterToVariant map[rune]VariantID
	nextDynamicID   VariantID // Next id handed to a tile key from yaml
}

var GlobalTileManager *TileManager

// NewTileManager creates a tile manager holding only the default wall variant.
func NewTileManager() *TileManager {
	tm := &TileManager{}
	tm.reset()
	return tm
}

func (tm *TileManager) reset() {
	tm.tileData = map[string]*config.TileData{
		defaultVariantKey: {Name: "Wall", Texture: "stone", MinimapColor: [3]int{230, 41, 55}},
	}
	tm.variantToKey = map[VariantID]string{DefaultVariant: defaultVariantKey}
	tm.keyToVariant = map[string]VariantID{defaultVariantKey: DefaultVariant}
	tm.letterToVariant = make(map[rune]VariantID)
	tm.nextDynamicID = DefaultVariant + 1
}

// LoadTileConfig loads the variant table from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}
	return tm.ParseTileConfig(data)
}

// ParseTileConfig replaces the variant table with the given YAML document.
func (tm *TileManager) ParseTileConfig(data []byte) error {
	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tm.reset()
	if def, ok := tileConfig.TileData[defaultVariantKey]; ok {
		if def.Texture == "" {
			def.Texture = tm.tileData[defaultVariantKey].Texture
		}
		tm.tileData[defaultVariantKey] = &def
	}

	// Sorted keys give every load of the same file the same variant ids.
	keys := make([]string, 0, len(tileConfig.TileData))
	for key := range tileConfig.TileData {
		if key != defaultVariantKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		tileCopy := tileConfig.TileData[key]
		tm.tileData[key] = &tileCopy
		tm.variantToKey[tm.nextDynamicID] = key
		tm.keyToVariant[key] = tm.nextDynamicID
		tm.nextDynamicID++
	}

	return tm.createLetterMappings()
}

// createLetterMappings maps each tile's single-character letter to its variant
func (tm *TileManager) createLetterMappings() error {
	tm.letterToVariant = make(map[rune]VariantID)
	for variant, key := range tm.variantToKey {
		data := tm.tileData[key]
		if data == nil || data.Letter == "" {
			continue
		}
		runes := []rune(data.Letter)
		if len(runes) != 1 {
			return fmt.Errorf("tile %q: letter %q must be a single character", key, data.Letter)
		}
		if isReservedSymbol(runes[0]) {
			return fmt.Errorf("tile %q: letter %q is reserved by the map format", key, data.Letter)
		}
		if other, dup := tm.letterToVariant[runes[0]]; dup {
			return fmt.Errorf("tile %q: letter %q already used by %q", key, data.Letter, tm.variantToKey[other])
		}
		tm.letterToVariant[runes[0]] = variant
	}
	return nil
}

// VariantForLetter returns the wall variant selected by a map symbol. Symbols
// missing from the table select DefaultVariant.
func (tm *TileManager) VariantForLetter(letter rune) VariantID {
	if v, ok := tm.letterToVariant[letter]; ok {
		return v
	}
	return DefaultVariant
}

// VariantForKey returns the variant registered under a yaml tile key.
func (tm *TileManager) VariantForKey(key string) (VariantID, bool) {
	v, ok := tm.keyToVariant[key]
	return v, ok
}

// GetTileData returns the configuration data for a wall variant
func (tm *TileManager) GetTileData(variant VariantID) *config.TileData {
	key, ok := tm.variantToKey[variant]
	if !ok {
		return nil
	}
	return tm.tileData[key]
}

// TextureFor returns the texture key for a wall variant. Unknown variants use
// the default wall's texture.
func (tm *TileManager) TextureFor(variant VariantID) TextureKey {
	if data := tm.GetTileData(variant); data != nil && data.Texture != "" {
		return TextureKey(data.Texture)
	}
	return TextureKey(tm.tileData[defaultVariantKey].Texture)
}

// MinimapColor returns the top-down color of a wall variant.
func (tm *TileManager) MinimapColor(variant VariantID) color.RGBA {
	data := tm.GetTileData(variant)
	if data == nil {
		data = tm.tileData[defaultVariantKey]
	}
	return config.RGBA(data.MinimapColor)
}

// Textures returns every texture key referenced by the table, sorted.
func (tm *TileManager) Textures() []TextureKey {
	seen := make(map[TextureKey]bool)
	var keys []TextureKey
	for _, data := range tm.tileData {
		k := TextureKey(data.Texture)
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// GetAllTileKeys returns all available tile keys from the loaded configuration
func (tm *TileManager) GetAllTileKeys() []string {
	keys := make([]string, 0, len(tm.tileData))
	for key := range tm.tileData {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// VariantCount returns how many wall variants are registered.
func (tm *TileManager) VariantCount() int {
	return len(tm.variantToKey)
}

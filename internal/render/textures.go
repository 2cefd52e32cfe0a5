package render

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"raycastmaze/internal/world"
)

// TextureSource maps (texture, u, v) to a color. Texels equal to Transparent()
// are skipped by the wall and billboard projectors.
type TextureSource interface {
	Texel(key world.TextureKey, u, v int) color.RGBA
	Transparent() color.RGBA
	Size() int
}

// TransparentColor is the chroma key used by Atlas.
var TransparentColor = color.RGBA{0, 0, 0, 0}

// Atlas is a set of square RGBA textures of one size. Textures are added
// before the frame loop starts; Texel is then safe for concurrent use.
type Atlas struct {
	size     int
	textures map[world.TextureKey]*image.RGBA
	missing  *image.RGBA
}

// NewAtlas creates an empty atlas of size x size textures.
func NewAtlas(size int) *Atlas {
	if size <= 0 {
		size = 128
	}
	return &Atlas{
		size:     size,
		textures: make(map[world.TextureKey]*image.RGBA),
		missing:  checkerTexture(size, color.RGBA{255, 0, 255, 255}, color.RGBA{0, 0, 0, 255}),
	}
}

func (a *Atlas) Size() int {
	return a.size
}

func (a *Atlas) Transparent() color.RGBA {
	return TransparentColor
}

// Has reports whether a texture was added under key.
func (a *Atlas) Has(key world.TextureKey) bool {
	_, ok := a.textures[key]
	return ok
}

// Texel returns the color at (u, v). Coordinates wrap modulo the texture
// size. Unknown keys read from a magenta checkerboard.
func (a *Atlas) Texel(key world.TextureKey, u, v int) color.RGBA {
	img, ok := a.textures[key]
	if !ok {
		img = a.missing
	}
	u = wrap(u, a.size)
	v = wrap(v, a.size)
	i := v*img.Stride + u*4
	p := img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

// Add stores img under key, scaled to the atlas size with nearest-neighbour
// sampling. Pixels under half opacity become the transparent color and all
// others become fully opaque.
func (a *Atlas) Add(key world.TextureKey, img image.Image) {
	dst := image.NewRGBA(image.Rect(0, 0, a.size, a.size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i+3] < 128 {
			copy(dst.Pix[i:i+4], []byte{0, 0, 0, 0})
			continue
		}
		// Un-premultiply so the stored texel is the straight color.
		if alpha := dst.Pix[i+3]; alpha != 255 {
			for c := 0; c < 3; c++ {
				dst.Pix[i+c] = uint8(min(255, int(dst.Pix[i+c])*255/int(alpha)))
			}
		}
		dst.Pix[i+3] = 255
	}
	a.textures[key] = dst
}

// LoadFile decodes an image file and adds it under key.
func (a *Atlas) LoadFile(key world.TextureKey, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	a.Add(key, img)
	return nil
}

// LoadTextures loads every file in files (key -> file name relative to dir)
// and generates placeholders for each key in want that is still missing.
// Load failures are returned joined; the atlas stays usable either way.
func (a *Atlas) LoadTextures(dir string, files map[string]string, want []world.TextureKey) error {
	var errs []error
	for key, name := range files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}
		if err := a.LoadFile(world.TextureKey(key), path); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range want {
		if !a.Has(key) {
			a.textures[key] = Placeholder(key, a.size)
		}
	}
	return errors.Join(errs...)
}

// Placeholder generates a procedural texture for key. Billboard keys get a
// shape on a transparent background; everything else gets a brick pattern
// whose hue is derived from the key.
func Placeholder(key world.TextureKey, size int) *image.RGBA {
	switch key {
	case world.TextureKey_Key:
		return keyTexture(size)
	case world.TextureKey_Goal:
		return goalTexture(size)
	}

	h := fnv.New32a()
	h.Write([]byte(key))
	hue := float64(h.Sum32() % 360)
	mortar := color.RGBA{40, 40, 40, 255}
	brick := toRGBA(colorful.Hsv(hue, 0.55, 0.7))
	brickDark := toRGBA(colorful.Hsv(hue, 0.6, 0.55))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	rowH := max(1, size/8)
	brickW := max(1, size/4)
	for y := 0; y < size; y++ {
		row := y / rowH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			if ((x+offset)/brickW+row)%3 == 0 {
				c = brickDark
			}
			if y%rowH == 0 || (x+offset)%brickW == 0 {
				c = mortar
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func keyTexture(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gold := color.RGBA{255, 203, 0, 255}
	s := float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)/s, float64(y)/s
			// Ring bow, shaft, and two teeth.
			dx, dy := fx-0.5, fy-0.28
			r := dx*dx + dy*dy
			ring := r < 0.04 && r > 0.012
			shaft := fx > 0.45 && fx < 0.55 && fy > 0.45 && fy < 0.9
			teeth := fy > 0.7 && fy < 0.9 && fx >= 0.55 && fx < 0.68 && (fy < 0.76 || fy > 0.83)
			if ring || shaft || teeth {
				img.SetRGBA(x, y, gold)
			}
		}
	}
	return img
}

func goalTexture(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)/s-0.5, float64(y)/s-0.5
			r := fx*fx + fy*fy
			if r > 0.2 {
				continue
			}
			// Concentric green rings fading toward the edge.
			c := colorful.Hsv(130, 0.9, 1-r*3)
			img.SetRGBA(x, y, toRGBA(c))
		}
	}
	return img
}

func checkerTexture(size int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/8)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

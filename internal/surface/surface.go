package surface

import (
	"image"
	"image/color"

	"raycastmaze/internal/mathutil"
)

// Surface is the pixel grid every renderer component writes into.
// Colors are passed on each call; the only color the surface remembers is
// the background used by Clear.
type Surface struct {
	img        *image.RGBA
	width      int
	height     int
	background color.RGBA
}

// New creates a surface filled with the background color.
func New(width, height int, background color.RGBA) *Surface {
	width = mathutil.IntMax(width, 0)
	height = mathutil.IntMax(height, 0)
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: background,
	}
	s.Clear()
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Background returns the color used by Clear.
func (s *Surface) Background() color.RGBA {
	return s.background
}

// SetBackground changes the color used by Clear.
func (s *Surface) SetBackground(c color.RGBA) {
	s.background = c
}

// Clear fills every pixel with the background color.
func (s *Surface) Clear() {
	s.FillRows(0, s.height, s.background)
}

// InBounds reports whether (x, y) addresses a pixel of the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set writes one pixel. Out-of-bounds coordinates are silently ignored.
func (s *Surface) Set(x, y int, c color.RGBA) {
	if !s.InBounds(x, y) {
		return
	}
	i := y*s.img.Stride + x*4
	p := s.img.Pix[i : i+4 : i+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}

// At returns the pixel at (x, y); ok is false outside the surface.
func (s *Surface) At(x, y int) (c color.RGBA, ok bool) {
	if !s.InBounds(x, y) {
		return color.RGBA{}, false
	}
	i := y*s.img.Stride + x*4
	p := s.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, true
}

// FillRows paints the full-width band of rows [y0, y1).
func (s *Surface) FillRows(y0, y1 int, c color.RGBA) {
	y0 = mathutil.IntClamp(y0, 0, s.height)
	y1 = mathutil.IntClamp(y1, 0, s.height)
	if y0 >= y1 || s.width == 0 {
		return
	}
	row := s.img.Pix[y0*s.img.Stride : y0*s.img.Stride+s.width*4]
	for x := 0; x < s.width; x++ {
		row[x*4] = c.R
		row[x*4+1] = c.G
		row[x*4+2] = c.B
		row[x*4+3] = c.A
	}
	for y := y0 + 1; y < y1; y++ {
		copy(s.img.Pix[y*s.img.Stride:y*s.img.Stride+s.width*4], row)
	}
}

// FillRect paints the rectangle r, clipped to the surface.
func (s *Surface) FillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.Set(x, y, c)
		}
	}
}

// StrokeRect draws the one-pixel outline of r.
func (s *Surface) StrokeRect(r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		s.Set(x, r.Min.Y, c)
		s.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s.Set(r.Min.X, y, c)
		s.Set(r.Max.X-1, y, c)
	}
}

// DrawLine draws a line from (x1, y1) to (x2, y2) inclusive using integer
// Bresenham stepping. It handles all eight octants and always terminates on
// the exact end point.
func (s *Surface) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	dx := mathutil.IntAbs(x2 - x1)
	dy := mathutil.IntAbs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	x, y := x1, y1

	for {
		s.Set(x, y, c)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Image exposes the backing image for presenters and encoders.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Pix returns the raw RGBA bytes, row-major with no padding.
func (s *Surface) Pix() []byte {
	return s.img.Pix
}

// Pen returns a draw context bound to one color.
func (s *Surface) Pen(c color.RGBA) Pen {
	return Pen{s: s, c: c}
}

// Pen is an immutable (surface, color) pair. Drawing through a pen never
// changes the surface's own state beyond the pixels it writes.
type Pen struct {
	s *Surface
	c color.RGBA
}

// Color returns the pen color.
func (p Pen) Color() color.RGBA {
	return p.c
}

// With returns a pen on the same surface with a different color.
func (p Pen) With(c color.RGBA) Pen {
	return Pen{s: p.s, c: c}
}

// Set writes one pixel.
func (p Pen) Set(x, y int) {
	p.s.Set(x, y, p.c)
}

// Line draws a Bresenham line.
func (p Pen) Line(x1, y1, x2, y2 int) {
	p.s.DrawLine(x1, y1, x2, y2, p.c)
}

// Rect fills a rectangle.
func (p Pen) Rect(r image.Rectangle) {
	p.s.FillRect(r, p.c)
}

// Outline strokes a rectangle.
func (p Pen) Outline(r image.Rectangle) {
	p.s.StrokeRect(r, p.c)
}

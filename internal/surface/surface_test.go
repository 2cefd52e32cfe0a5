package surface

import (
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

// litPixels returns every pixel that differs from the background.
func litPixels(s *Surface) map[image.Point]bool {
	lit := make(map[image.Point]bool)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c, _ := s.At(x, y); c != s.Background() {
				lit[image.Pt(x, y)] = true
			}
		}
	}
	return lit
}

func TestNewSurfaceIsCleared(t *testing.T) {
	s := New(8, 4, black)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 8x4", s.Width(), s.Height())
	}
	if n := len(litPixels(s)); n != 0 {
		t.Errorf("new surface has %d non-background pixels", n)
	}
}

func TestSetAndAt(t *testing.T) {
	s := New(10, 10, black)
	s.Set(3, 4, red)
	if c, ok := s.At(3, 4); !ok || c != red {
		t.Errorf("At(3,4) = %v, %v; want red, true", c, ok)
	}

	// Out of bounds writes are dropped without panicking.
	s.Set(-1, 0, red)
	s.Set(10, 0, red)
	s.Set(0, -1, red)
	s.Set(0, 10, red)
	if n := len(litPixels(s)); n != 1 {
		t.Errorf("expected exactly 1 lit pixel, got %d", n)
	}

	if _, ok := s.At(-1, 5); ok {
		t.Error("At outside the surface should report ok=false")
	}
	if _, ok := s.At(5, 10); ok {
		t.Error("At outside the surface should report ok=false")
	}
}

func TestClearRestoresBackground(t *testing.T) {
	s := New(6, 6, black)
	s.FillRect(image.Rect(0, 0, 6, 6), white)
	s.Clear()
	if n := len(litPixels(s)); n != 0 {
		t.Errorf("after Clear %d pixels still lit", n)
	}

	s.SetBackground(red)
	s.Clear()
	if c, _ := s.At(5, 5); c != red {
		t.Errorf("Clear with new background gave %v", c)
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	s := New(10, 3, black)
	s.DrawLine(0, 0, 5, 0, white)

	lit := litPixels(s)
	if len(lit) != 6 {
		t.Fatalf("expected 6 pixels, got %d: %v", len(lit), lit)
	}
	for x := 0; x <= 5; x++ {
		if !lit[image.Pt(x, 0)] {
			t.Errorf("pixel (%d,0) not set", x)
		}
	}
}

func TestDrawLineDiagonalIsConnected(t *testing.T) {
	s := New(5, 5, black)
	s.DrawLine(0, 0, 3, 3, white)

	lit := litPixels(s)
	for i := 0; i <= 3; i++ {
		if !lit[image.Pt(i, i)] {
			t.Errorf("diagonal pixel (%d,%d) missing", i, i)
		}
	}
	if len(lit) != 4 {
		t.Errorf("expected 4 pixels on the 45 degree diagonal, got %d", len(lit))
	}
}

func TestDrawLineAllOctants(t *testing.T) {
	ends := []image.Point{
		{9, 2}, {2, 9}, {-2, 9}, {-9, 2},
		{-9, -2}, {-2, -9}, {2, -9}, {9, -2},
		{0, 7}, {0, -7}, {7, 0}, {-7, 0},
	}
	for _, end := range ends {
		s := New(21, 21, black)
		x1, y1 := 10, 10
		x2, y2 := x1+end.X, y1+end.Y
		s.DrawLine(x1, y1, x2, y2, white)
		lit := litPixels(s)

		if !lit[image.Pt(x1, y1)] || !lit[image.Pt(x2, y2)] {
			t.Errorf("line to %v misses an end point", end)
			continue
		}

		// Every lit pixel except the end point has an 8-connected neighbour,
		// and the count matches the major axis length.
		major := max(abs(end.X), abs(end.Y))
		if len(lit) != major+1 {
			t.Errorf("line to %v: %d pixels, want %d", end, len(lit), major+1)
		}
		for p := range lit {
			if p == image.Pt(x2, y2) {
				continue
			}
			connected := false
			for dy := -1; dy <= 1 && !connected; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && lit[image.Pt(p.X+dx, p.Y+dy)] {
						connected = true
						break
					}
				}
			}
			if !connected {
				t.Errorf("line to %v: pixel %v is isolated", end, p)
			}
		}
	}
}

func TestDrawLineSinglePointAndClipping(t *testing.T) {
	s := New(4, 4, black)
	s.DrawLine(2, 2, 2, 2, white)
	if n := len(litPixels(s)); n != 1 {
		t.Errorf("degenerate line lit %d pixels", n)
	}

	// A line running off the surface draws only its visible part.
	s.Clear()
	s.DrawLine(-5, 1, 10, 1, white)
	if n := len(litPixels(s)); n != 4 {
		t.Errorf("clipped line lit %d pixels, want 4", n)
	}
}

func TestPenCarriesColor(t *testing.T) {
	s := New(4, 4, black)
	p := s.Pen(red)
	p.Set(0, 0)
	p.With(white).Line(0, 3, 3, 3)

	if c, _ := s.At(0, 0); c != red {
		t.Errorf("pen pixel = %v, want red", c)
	}
	if c, _ := s.At(3, 3); c != white {
		t.Errorf("derived pen pixel = %v, want white", c)
	}
	if p.Color() != red {
		t.Error("With must not modify the original pen")
	}
}

func TestFillAndStrokeRect(t *testing.T) {
	s := New(10, 10, black)
	s.FillRect(image.Rect(8, 8, 20, 20), red)
	if n := len(litPixels(s)); n != 4 {
		t.Errorf("clipped fill lit %d pixels, want 4", n)
	}

	s.Clear()
	s.StrokeRect(image.Rect(0, 0, 4, 4), white)
	if n := len(litPixels(s)); n != 12 {
		t.Errorf("4x4 outline lit %d pixels, want 12", n)
	}
	if c, _ := s.At(1, 1); c != black {
		t.Error("outline must not fill the interior")
	}
}

func TestFillRows(t *testing.T) {
	s := New(3, 4, black)
	s.FillRows(-2, 2, white)
	for y := 0; y < 4; y++ {
		c, _ := s.At(2, y)
		want := black
		if y < 2 {
			want = white
		}
		if c != want {
			t.Errorf("row %d = %v, want %v", y, c, want)
		}
	}
}

func TestZeroSizedSurface(t *testing.T) {
	s := New(0, 0, black)
	s.Clear()
	s.Set(0, 0, white)
	s.DrawLine(0, 0, 3, 3, white)
	if _, ok := s.At(0, 0); ok {
		t.Error("zero sized surface has no pixels")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

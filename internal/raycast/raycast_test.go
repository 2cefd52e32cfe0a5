package raycast

import (
	"math"
	"testing"

	"raycastmaze/internal/world"
)

// boxGrid is a w x h room of default walls with an empty interior.
func boxGrid(w, h int, bs float64) *world.Grid {
	rows := make([][]world.Tile, h)
	for y := range rows {
		rows[y] = make([]world.Tile, w)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x] = world.Wall(world.DefaultVariant)
			} else {
				rows[y][x] = world.Empty
			}
		}
	}
	return world.NewGrid(rows, bs)
}

func modes() []Options {
	dda := DefaultOptions()
	march := DefaultOptions()
	march.Mode = ModeMarch
	return []Options{dda, march}
}

func TestCastThreeByThreeEastWall(t *testing.T) {
	g := boxGrid(3, 3, 100)
	cam := world.NewCamera(150, 150, 0, math.Pi/3)

	for _, opts := range modes() {
		t.Run(opts.Mode.String(), func(t *testing.T) {
			hit := Cast(g, &cam, 0, opts)
			if !hit.Found() || !hit.Tile.IsWall() {
				t.Fatalf("expected wall hit, got %+v", hit)
			}
			if math.Abs(hit.Distance-50) > opts.Step {
				t.Errorf("distance = %v, want 50", hit.Distance)
			}
			if hit.CellX != 2 || hit.CellY != 1 {
				t.Errorf("cell = (%d,%d), want (2,1)", hit.CellX, hit.CellY)
			}
			if math.Abs(hit.TextureU-64) > 1 {
				t.Errorf("textureU = %v, want 64", hit.TextureU)
			}
			if hit.Side != 0 {
				t.Errorf("side = %d, want 0", hit.Side)
			}
		})
	}
}

func TestCastDistanceMatchesCellsTravelled(t *testing.T) {
	// Camera in the leftmost interior cell of a 1-row corridor.
	for n := 1; n <= 6; n++ {
		g := boxGrid(n+2, 3, 64)
		cam := world.NewCamera(64+32, 96, 0, math.Pi/3)
		want := float64(n)*64 - 32

		for _, opts := range modes() {
			hit := Cast(g, &cam, 0, opts)
			if math.Abs(hit.Distance-want) > opts.Step+1e-9 {
				t.Errorf("n=%d %s: distance = %v, want %v", n, opts.Mode, hit.Distance, want)
			}
		}
	}
}

func TestCastModesAgree(t *testing.T) {
	g := boxGrid(8, 6, 100)
	cam := world.NewCamera(310, 240, 0.3, math.Pi/3)
	dda, march := modes()[0], modes()[1]
	march.Step = 0.25

	for i := 0; i < 64; i++ {
		offset := cam.RayOffset(i, 64)
		a := Cast(g, &cam, offset, dda)
		b := Cast(g, &cam, offset, march)
		if a.CellX != b.CellX || a.CellY != b.CellY {
			// Rays grazing a corner may land on either neighbour.
			if math.Abs(a.Distance-b.Distance) > 1 {
				t.Errorf("ray %d: cells (%d,%d) vs (%d,%d)", i, a.CellX, a.CellY, b.CellX, b.CellY)
			}
			continue
		}
		if math.Abs(a.Distance-b.Distance) > march.Step+1e-6 {
			t.Errorf("ray %d: distance %v vs %v", i, a.Distance, b.Distance)
		}
	}
}

func TestCastCameraInsideWall(t *testing.T) {
	g := boxGrid(3, 3, 100)
	cam := world.NewCamera(50, 50, 0, math.Pi/3)

	for _, opts := range modes() {
		hit := Cast(g, &cam, 0, opts)
		if hit.Distance != 0 || !hit.Tile.IsWall() {
			t.Errorf("%s: inside wall = %+v, want zero-distance wall hit", opts.Mode, hit)
		}
		if hit.Steps != 0 {
			t.Errorf("%s: steps = %d, want 0", opts.Mode, hit.Steps)
		}
	}
}

func TestCastOutsideGridReturnsVoid(t *testing.T) {
	g := boxGrid(3, 3, 100)
	cam := world.NewCamera(-500, 150, 0, math.Pi/3)

	for _, opts := range modes() {
		hit := Cast(g, &cam, 0, opts)
		if hit.Found() || hit.Distance != NoHitDistance {
			t.Errorf("%s: outside grid = %+v, want void sentinel", opts.Mode, hit)
		}
	}
}

func TestCastOpenGridTerminates(t *testing.T) {
	// An all-empty grid has nothing to hit; rays must exit via bounds or range.
	rows := make([][]world.Tile, 50)
	for y := range rows {
		rows[y] = make([]world.Tile, 50)
	}
	g := world.NewGrid(rows, 100)
	cam := world.NewCamera(2500, 2500, 0, math.Pi/3)

	for _, opts := range modes() {
		opts.MaxRange = 1000
		hit := Cast(g, &cam, 0, opts)
		if hit.Found() || hit.Distance != NoHitDistance {
			t.Errorf("%s: hit = %+v, want void", opts.Mode, hit)
		}
		limit := int(math.Ceil(opts.MaxRange/opts.Step)) + 1
		if opts.Mode == ModeDDA {
			limit = int(2*opts.MaxRange/g.BlockSize()) + 2
		}
		if hit.Steps > limit {
			t.Errorf("%s: steps = %d exceeds bound %d", opts.Mode, hit.Steps, limit)
		}
	}
}

func TestCastTrace(t *testing.T) {
	g := boxGrid(5, 3, 100)
	cam := world.NewCamera(150, 150, 0, math.Pi/3)

	opts := DefaultOptions()
	opts.Mode = ModeMarch
	var samples int
	lastX := 0.0
	hit := Cast(g, &cam, 0, opts.WithTrace(func(x, y float64) {
		samples++
		lastX = x
	}))
	if samples != hit.Steps {
		t.Errorf("trace samples = %d, steps = %d", samples, hit.Steps)
	}
	if math.Abs(lastX-hit.HitX) > 1e-9 {
		t.Errorf("last trace x = %v, hit x = %v", lastX, hit.HitX)
	}
}

func TestCastSpriteOnlyTilesStopRays(t *testing.T) {
	g := world.NewGrid([][]world.Tile{
		{world.Wall(0), world.Wall(0), world.Wall(0), world.Wall(0)},
		{world.Wall(0), world.Empty, world.Goal, world.Wall(0)},
		{world.Wall(0), world.Wall(0), world.Wall(0), world.Wall(0)},
	}, 100)
	cam := world.NewCamera(150, 150, 0, math.Pi/3)

	hit := Cast(g, &cam, 0, DefaultOptions())
	if hit.Tile != world.Goal {
		t.Errorf("tile = %v, want goal", hit.Tile)
	}
}

func TestTextureUInRange(t *testing.T) {
	g := boxGrid(6, 6, 100)
	cam := world.NewCamera(233, 377, 1.1, math.Pi/3)
	for _, opts := range modes() {
		for i := 0; i < 360; i++ {
			hit := Cast(g, &cam, float64(i)*math.Pi/180, opts)
			if hit.TextureU < 0 || hit.TextureU >= float64(opts.TextureSize) {
				t.Fatalf("%s ray %d: textureU %v outside [0,%d)", opts.Mode, i, hit.TextureU, opts.TextureSize)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("march"); err != nil || m != ModeMarch {
		t.Errorf("ParseMode(march) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeDDA {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("voxel"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

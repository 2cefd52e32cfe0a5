package main

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"
	"raycastmaze/internal/threading"

	"github.com/charmbracelet/log"
)

func loadTestLevel(t *testing.T) (*config.Config, *level.Level) {
	t.Helper()
	dir := t.TempDir()
	mazePath := filepath.Join(dir, "maze.txt")
	if err := os.WriteFile(mazePath, []byte("xxxx\nxp x\nx gx\nxxxx\n"), 0o644); err != nil {
		t.Fatalf("failed to write maze: %v", err)
	}

	cfg := config.Default()
	cfg.World.TilesFile = filepath.Join(dir, "missing.yaml")
	cfg.Textures.Dir = dir
	cfg.Projection.TextureSize = 16

	lvl, err := level.Load(cfg, mazePath, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg, lvl
}

func TestRenderFrameViews(t *testing.T) {
	cfg, lvl := loadTestLevel(t)
	tc := threading.NewThreadingComponents(1)
	defer tc.Shutdown()

	for _, view := range []string{"first", "top"} {
		t.Run(view, func(t *testing.T) {
			dst, err := renderFrame(cfg, lvl, tc, view, 64, 48, true)
			if err != nil {
				t.Fatalf("renderFrame(%q) failed: %v", view, err)
			}
			if dst.Width() != 64 || dst.Height() != 48 {
				t.Errorf("frame is %dx%d, want 64x48", dst.Width(), dst.Height())
			}
		})
	}

	if _, err := renderFrame(cfg, lvl, tc, "side", 64, 48, false); err == nil {
		t.Error("expected an error for an unknown view")
	}
}

func TestWritePNG(t *testing.T) {
	cfg, lvl := loadTestLevel(t)
	dst, err := renderFrame(cfg, lvl, nil, "first", 32, 24, false)
	if err != nil {
		t.Fatalf("renderFrame failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(path, dst); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written png: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("written file is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("png is %dx%d, want 32x24", b.Dx(), b.Dy())
	}
}

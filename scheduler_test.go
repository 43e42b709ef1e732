package mandel

import (
	"bytes"
	"errors"
	"image"
	"sync/atomic"
	"testing"
)

func schedulerConfig(w, h, tiles int) Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Tiles = w, h, tiles
	return cfg
}

func newTestScheduler(t *testing.T, w, h, tiles int) *TileScheduler {
	t.Helper()
	s, err := NewTileScheduler(schedulerConfig(w, h, tiles))
	if err != nil {
		t.Fatalf("NewTileScheduler(%dx%d, %d) failed: %v", w, h, tiles, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestComputeFrameMatchesSequential is the 8x8, two band scenario.
func TestComputeFrameMatchesSequential(t *testing.T) {
	cam := Camera{Dim: [2]float64{4, 4}, Pos: [2]float64{0, 0}, Iterations: 50}
	s := newTestScheduler(t, 8, 8, 2)

	got, err := s.ComputeFrame(cam)
	if err != nil {
		t.Fatalf("ComputeFrame failed: %v", err)
	}
	want := RenderSequential(cam.View(), 8, 8)

	if len(got) != 64 {
		t.Fatalf("canvas has %d bytes, want 64", len(got))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("two band canvas differs from sequential:\n got %v\nwant %v", got, want)
	}
	// row 4 is the real axis; x = -2 at column 0 is the cusp and never escapes
	if got[4*8] != 255 {
		t.Errorf("pixel (0,4) = %d, want 255", got[4*8])
	}
}

// TestComputeFrameTileCountInvariant verifies 1 and 64 bands give identical canvases.
func TestComputeFrameTileCountInvariant(t *testing.T) {
	cams := []Camera{
		Overview.Camera(64),
		SeahorseValley.Camera(200),
		{Dim: [2]float64{-3, 2}, Pos: [2]float64{-0.5, 0.25}, Iterations: 17},
		{Dim: [2]float64{4, 4}, Iterations: 0},
	}

	one := newTestScheduler(t, 96, 128, 1)
	many := newTestScheduler(t, 96, 128, 64)

	for _, cam := range cams {
		a, err := one.ComputeFrame(cam)
		if err != nil {
			t.Fatalf("ComputeFrame (1 band) failed: %v", err)
		}
		a = bytes.Clone(a)

		b, err := many.ComputeFrame(cam)
		if err != nil {
			t.Fatalf("ComputeFrame (64 bands) failed: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("camera %+v: canvases differ between 1 and 64 bands", cam)
		}
		if !bytes.Equal(a, RenderSequential(cam.View(), 96, 128)) {
			t.Errorf("camera %+v: canvas differs from sequential render", cam)
		}
	}
}

// TestComputeFrameOverwritesCanvas verifies a frame fully replaces the previous one.
func TestComputeFrameOverwritesCanvas(t *testing.T) {
	s := newTestScheduler(t, 32, 32, 4)

	if _, err := s.ComputeFrame(Overview.Camera(64)); err != nil {
		t.Fatalf("ComputeFrame failed: %v", err)
	}
	got, err := s.ComputeFrame(Overview.Camera(0))
	if err != nil {
		t.Fatalf("ComputeFrame failed: %v", err)
	}
	for i, b := range got {
		if b != 0 {
			t.Fatalf("pixel %d = %d after a zero budget frame, want 0", i, b)
		}
	}
}

func TestNewTileSchedulerRejectsIndivisibleHeight(t *testing.T) {
	for _, tc := range [][3]int{{8, 10, 3}, {8, 8, 0}, {8, 8, 16}, {0, 8, 2}} {
		_, err := NewTileScheduler(schedulerConfig(tc[0], tc[1], tc[2]))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewTileScheduler(%v) = %v, want ErrInvalidConfig", tc, err)
		}
	}
}

// TestBandsPartitionImage verifies the bands are disjoint and cover every row.
func TestBandsPartitionImage(t *testing.T) {
	s := newTestScheduler(t, 40, 960, 64)
	bands := s.Bands()
	if len(bands) != 64 {
		t.Fatalf("got %d bands, want 64", len(bands))
	}

	next := 0
	for i, b := range bands {
		if b.Min.Y != next || b.Dy() != 15 || b.Min.X != 0 || b.Max.X != 40 {
			t.Fatalf("band %d = %v, want rows %d-%d across the full width", i, b, next, next+15)
		}
		next = b.Max.Y
	}
	if next != 960 {
		t.Errorf("bands end at row %d, want 960", next)
	}
}

// TestComputeFrameTaskFailure verifies a failing band fails the whole frame.
func TestComputeFrameTaskFailure(t *testing.T) {
	s := newTestScheduler(t, 16, 16, 4)
	s.render = func(view View, w, h int, rows image.Rectangle, out []byte) {
		if rows.Min.Y == 8 {
			panic("boom")
		}
		renderBand(view, w, h, rows, out)
	}

	canvas, err := s.ComputeFrame(Overview.Camera(64))
	if !errors.Is(err, ErrTaskFailed) {
		t.Fatalf("ComputeFrame() error = %v, want ErrTaskFailed", err)
	}
	if canvas != nil {
		t.Error("failed frame returned a canvas")
	}

	// workers survive a failed frame
	s.render = renderBand
	if _, err := s.ComputeFrame(Overview.Camera(64)); err != nil {
		t.Errorf("ComputeFrame after failure: %v", err)
	}
}

// TestComputeFrameRunsEveryBand verifies each band is computed exactly once per frame.
func TestComputeFrameRunsEveryBand(t *testing.T) {
	s := newTestScheduler(t, 8, 64, 16)
	var calls atomic.Int32
	seen := make([]atomic.Int32, 64)
	s.render = func(view View, w, h int, rows image.Rectangle, out []byte) {
		calls.Add(1)
		for y := rows.Min.Y; y < rows.Max.Y; y++ {
			seen[y].Add(1)
		}
		renderBand(view, w, h, rows, out)
	}

	const frames = 5
	for range frames {
		if _, err := s.ComputeFrame(Overview.Camera(8)); err != nil {
			t.Fatalf("ComputeFrame failed: %v", err)
		}
	}
	if got := calls.Load(); got != 16*frames {
		t.Errorf("band tasks run = %d, want %d", got, 16*frames)
	}
	for y := range seen {
		if got := seen[y].Load(); got != frames {
			t.Errorf("row %d computed %d times, want %d", y, got, frames)
		}
	}
}

func TestSchedulerClose(t *testing.T) {
	s, err := NewTileScheduler(schedulerConfig(8, 8, 2))
	if err != nil {
		t.Fatalf("NewTileScheduler failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := s.ComputeFrame(Overview.Camera(8)); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("ComputeFrame after Close = %v, want ErrSchedulerClosed", err)
	}
}

func BenchmarkComputeFrame(b *testing.B) {
	cfg := DefaultConfig()
	s, err := NewTileScheduler(cfg)
	if err != nil {
		b.Fatalf("NewTileScheduler failed: %v", err)
	}
	defer s.Close()

	cam := Overview.Camera(64)
	b.ResetTimer()
	for range b.N {
		if _, err := s.ComputeFrame(cam); err != nil {
			b.Fatal(err)
		}
	}
}

package mandel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Frame is one rendered frame as handed to a Host.
type Frame struct {
	Seq           uint64
	Width, Height int
	Canvas        Canvas
	Palette       *Palette
	Iterations    int32
	Camera        Camera
	Elapsed       time.Duration // time spent in the scheduler
}

// FrameLoop owns the camera and drives controller and scheduler once per frame.
type FrameLoop struct {
	cfg     Config
	mu      sync.Mutex // guards camera, which other goroutines may read
	camera  Camera
	ctrl    *CameraController
	sched   *TileScheduler
	palette *Palette
	seq     uint64
}

// NewFrameLoop validates cfg and sets up the camera, palette and scheduler.
func NewFrameLoop(cfg Config) (*FrameLoop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cam, err := cfg.InitialCamera()
	if err != nil {
		return nil, err
	}
	sched, err := NewTileScheduler(cfg)
	if err != nil {
		return nil, err
	}

	return &FrameLoop{
		cfg:     cfg,
		camera:  cam,
		ctrl:    NewCameraController(cfg),
		sched:   sched,
		palette: BuildPalette(cfg.Hue),
	}, nil
}

// Camera returns a copy of the current camera. It is safe to call while
// the loop runs.
func (l *FrameLoop) Camera() Camera {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.camera
}

// Palette returns the shared palette.
func (l *FrameLoop) Palette() *Palette { return l.palette }

// Step advances the camera by in and renders the resulting frame.
// Hosts that own their own loop (a game engine, a browser) call Step directly.
func (l *FrameLoop) Step(in InputSnapshot) (Frame, error) {
	l.mu.Lock()
	l.ctrl.Update(&l.camera, in)
	cam := l.camera
	l.mu.Unlock()

	start := time.Now()
	canvas, err := l.sched.ComputeFrame(cam)
	if err != nil {
		return Frame{}, fmt.Errorf("frame %d: %w", l.seq+1, err)
	}
	l.seq++

	return Frame{
		Seq:        l.seq,
		Width:      l.cfg.Width,
		Height:     l.cfg.Height,
		Canvas:     canvas,
		Palette:    l.palette,
		Iterations: cam.Iterations,
		Camera:     cam,
		Elapsed:    time.Since(start),
	}, nil
}

// Run drives host until it asks to close or ctx is done, which both return nil.
// Any render or presentation failure ends the loop with an error.
func (l *FrameLoop) Run(ctx context.Context, host Host) error {
	slog.Info("frameloop: running", "width", l.cfg.Width, "height", l.cfg.Height, "tiles", l.cfg.Tiles)

	for {
		if ctx.Err() != nil {
			return nil
		}
		in, ok := host.Input(ctx)
		if !ok {
			slog.Info("frameloop: close requested", "frames", l.seq)
			return nil
		}

		f, err := l.Step(in)
		if err != nil {
			return err
		}
		slog.Debug("frameloop: frame rendered", "seq", f.Seq, "elapsed", f.Elapsed, "iterations", f.Iterations)

		if err := host.Present(f); err != nil {
			return fmt.Errorf("present frame %d: %w", f.Seq, err)
		}
	}
}

// Close stops the scheduler workers.
func (l *FrameLoop) Close() error {
	return l.sched.Close()
}

package mandel

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

//go:generate go run github.com/marben/irpc/cmd/irpc

// FrameProvider renders single frames on request, for clients that do not
// keep a viewer session open.
type FrameProvider interface {
	// GetFrame renders the current camera moved by zoomSteps zoom frames
	// and iterSteps iteration presses. The shared camera does not change.
	GetFrame(zoomSteps int, iterSteps int) (FrameMsg, error)
}

// ErrBadRequest is returned for a GetFrame request outside the served limits.
var ErrBadRequest = errors.New("bad frame request")

// maxFrameSteps bounds each kind of step in one request.
const maxFrameSteps = 1 << 12

// FrameService implements FrameProvider for a running FrameLoop. Requests
// start from the loop's current camera and render on a scheduler of their
// own, so they never wait for the live frame.
type FrameService struct {
	loop          *FrameLoop
	ctrl          *CameraController
	width, height int
	hue           float32

	m     sync.Mutex // the scheduler canvas is reused between requests
	sched *TileScheduler
	seq   uint64
}

var _ FrameProvider = (*FrameService)(nil)

// NewFrameService returns a service for loop, which must run with cfg.
// Callers must Close it.
func NewFrameService(cfg Config, loop *FrameLoop) (*FrameService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sched, err := NewTileScheduler(cfg)
	if err != nil {
		return nil, err
	}
	return &FrameService{
		loop:   loop,
		ctrl:   NewCameraController(cfg),
		width:  cfg.Width,
		height: cfg.Height,
		hue:    cfg.Hue,
		sched:  sched,
	}, nil
}

// GetFrame implements FrameProvider.
func (s *FrameService) GetFrame(zoomSteps int, iterSteps int) (FrameMsg, error) {
	if abs(zoomSteps) > maxFrameSteps || abs(iterSteps) > maxFrameSteps {
		return FrameMsg{}, fmt.Errorf("%w: at most %d steps each, got zoom %d and iterations %d",
			ErrBadRequest, maxFrameSteps, zoomSteps, iterSteps)
	}

	cam := s.loop.Camera()
	s.ctrl.Apply(&cam, zoomSteps, iterSteps)

	s.m.Lock()
	defer s.m.Unlock()

	canvas, err := s.sched.ComputeFrame(cam)
	if err != nil {
		return FrameMsg{}, fmt.Errorf("snapshot: %w", err)
	}
	s.seq++
	slog.Debug("frameservice: frame rendered", "seq", s.seq, "zoom_steps", zoomSteps, "iter_steps", iterSteps)

	return FrameMsg{
		Seq:        s.seq,
		Width:      s.width,
		Height:     s.height,
		Iterations: cam.Iterations,
		Hue:        s.hue,
		Canvas:     bytes.Clone(canvas),
	}, nil
}

// Close stops the service's scheduler.
func (s *FrameService) Close() error {
	return s.sched.Close()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

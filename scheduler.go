package mandel

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
)

var (
	// ErrTaskFailed reports a band task that did not complete; the frame is unusable.
	ErrTaskFailed = errors.New("band task failed")
	// ErrSchedulerClosed is returned by ComputeFrame after Close.
	ErrSchedulerClosed = errors.New("scheduler closed")
)

type bandFunc func(view View, imgW, imgH int, rows image.Rectangle, out []byte)

// TileScheduler renders frames by splitting the image into equal row bands
// and computing each band on its own worker.
//
// Workers are started once and fed through a task queue; every frame is a
// fork of one task per band followed by a full join. A band task writes only
// into its private buffer, and the scheduler copies the buffers into the
// canvas after the join, so no locking happens on the pixel path.
type TileScheduler struct {
	width, height int
	bands         []image.Rectangle
	bufs          [][]byte
	canvas        Canvas
	render        bandFunc

	tasks chan bandTask
	wg    sync.WaitGroup // tracks workers

	m      sync.Mutex // serializes ComputeFrame and Close
	closed bool
}

type bandTask struct {
	index int
	view  View
	done  chan<- bandResult
}

type bandResult struct {
	index int
	err   error
}

// NewTileScheduler validates the partition of cfg and starts cfg.Tiles workers.
// Callers must Close the scheduler to stop them.
func NewTileScheduler(cfg Config) (*TileScheduler, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	bands, err := splitRows(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Tiles)
	if err != nil {
		return nil, err
	}

	s := &TileScheduler{
		width:  cfg.Width,
		height: cfg.Height,
		bands:  bands,
		bufs:   make([][]byte, len(bands)),
		canvas: make(Canvas, cfg.Width*cfg.Height),
		render: renderBand,
		tasks:  make(chan bandTask, len(bands)),
	}
	for i, b := range bands {
		s.bufs[i] = make([]byte, b.Dx()*b.Dy())
	}

	s.wg.Add(len(bands))
	for range bands {
		go s.worker()
	}

	slog.Debug("scheduler: started", "width", cfg.Width, "height", cfg.Height, "bands", len(bands))
	return s, nil
}

// Bands returns the row band assigned to each task index.
func (s *TileScheduler) Bands() []image.Rectangle {
	return append([]image.Rectangle(nil), s.bands...)
}

// ComputeFrame renders cam and returns the assembled canvas.
//
// The camera is snapshotted before dispatch. The returned canvas belongs to
// the scheduler and is overwritten by the next call. If any band fails, the
// error wraps ErrTaskFailed and no canvas is returned.
func (s *TileScheduler) ComputeFrame(cam Camera) (Canvas, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.closed {
		return nil, ErrSchedulerClosed
	}

	view := cam.View()
	done := make(chan bandResult, len(s.bands))
	for i := range s.bands {
		s.tasks <- bandTask{index: i, view: view, done: done}
	}

	var errs []error
	for range s.bands {
		if r := <-done; r.err != nil {
			errs = append(errs, r.err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for i, b := range s.bands {
		copy(s.canvas[b.Min.Y*s.width:b.Max.Y*s.width], s.bufs[i])
	}
	return s.canvas, nil
}

// Close stops the workers. It is safe to call more than once.
func (s *TileScheduler) Close() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.tasks)
	s.wg.Wait()

	slog.Debug("scheduler: stopped")
	return nil
}

func (s *TileScheduler) worker() {
	defer s.wg.Done()
	for t := range s.tasks {
		t.done <- s.runBand(t)
	}
}

// runBand computes one band, turning a panic into ErrTaskFailed so the
// frame fails as a whole instead of leaving the band stale.
func (s *TileScheduler) runBand(t bandTask) (res bandResult) {
	res.index = t.index
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("%w: band %d (rows %d-%d): %v",
				ErrTaskFailed, t.index, s.bands[t.index].Min.Y, s.bands[t.index].Max.Y, r)
		}
	}()

	s.render(t.view, s.width, s.height, s.bands[t.index], s.bufs[t.index])
	return res
}

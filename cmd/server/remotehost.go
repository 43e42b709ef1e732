package main

import (
	"context"
	"fmt"
	"time"

	mandel "github.com/marben/rt_mandel"
)

// remoteHost presents frames to websocket viewers at a fixed rate.
// Rendering pauses while nobody is watching.
type remoteHost struct {
	hub      *viewerHub
	hue      float32
	interval time.Duration
	ticker   *time.Ticker
	last     time.Time
}

var _ mandel.Host = (*remoteHost)(nil)

func newRemoteHost(hub *viewerHub, fps int, hue float32) *remoteHost {
	interval := time.Second / time.Duration(fps)
	return &remoteHost{
		hub:      hub,
		hue:      hue,
		interval: interval,
		ticker:   time.NewTicker(interval),
	}
}

// Input implements mandel.Host.
func (h *remoteHost) Input(ctx context.Context) (mandel.InputSnapshot, bool) {
	ok, waited := h.hub.waitViewers(ctx)
	if !ok {
		return mandel.InputSnapshot{}, false
	}
	if waited {
		// idle time is not motion time
		h.last = time.Time{}
	}

	var now time.Time
	select {
	case now = <-h.ticker.C:
	case <-ctx.Done():
		return mandel.InputSnapshot{}, false
	}

	dt := h.interval.Seconds()
	if !h.last.IsZero() {
		dt = now.Sub(h.last).Seconds()
	}
	h.last = now

	held, pressed := h.hub.input()
	return mandel.InputSnapshot{Held: held, Pressed: pressed, DT: dt}, true
}

// Present implements mandel.Host.
func (h *remoteHost) Present(f mandel.Frame) error {
	b, err := mandel.Encode(mandel.NewFrameMsg(f, h.hue))
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	h.hub.broadcast(b)
	return nil
}

func (h *remoteHost) Close() {
	h.ticker.Stop()
}

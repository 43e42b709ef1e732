package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	mandel "github.com/marben/rt_mandel"
)

// maxQueuedPresses caps the presses of one key waiting for frames.
const maxQueuedPresses = 64

// viewerHub tracks connected viewers, merges their input and fans frames out.
//
// Presses are queued per key: a frame sees one press of a key, and extra
// presses of the same key carry over to the following frames.
type viewerHub struct {
	m       sync.Mutex
	viewers map[string]*viewer
	held    map[string]mandel.KeySet // latest held keys per viewer
	presses map[mandel.Key]int       // queued presses, all viewers

	joined chan struct{} // poked when a viewer connects
}

func newViewerHub() *viewerHub {
	return &viewerHub{
		viewers: make(map[string]*viewer),
		held:    make(map[string]mandel.KeySet),
		presses: make(map[mandel.Key]int),
		joined:  make(chan struct{}, 1),
	}
}

// viewer is one websocket peer. Frames go through a single-slot mailbox:
// a frame not yet written when the next one arrives is dropped.
type viewer struct {
	id   string
	conn net.Conn

	mu     sync.Mutex
	cond   *sync.Cond
	frame  []byte // encoded FrameMsg, nil once written
	closed bool
	drops  uint64
}

func (h *viewerHub) add(conn net.Conn) *viewer {
	v := &viewer{id: uuid.NewString(), conn: conn}
	v.cond = sync.NewCond(&v.mu)

	h.m.Lock()
	h.viewers[v.id] = v
	n := len(h.viewers)
	h.m.Unlock()

	select {
	case h.joined <- struct{}{}:
	default:
	}

	slog.Info("server: viewer connected", "viewer", v.id, "remote", conn.RemoteAddr(), "viewers", n)
	return v
}

func (h *viewerHub) remove(v *viewer) {
	h.m.Lock()
	delete(h.viewers, v.id)
	delete(h.held, v.id)
	n := len(h.viewers)
	h.m.Unlock()

	v.close()
	slog.Info("server: viewer disconnected", "viewer", v.id, "dropped_frames", v.dropped(), "viewers", n)
}

func (h *viewerHub) count() int {
	h.m.Lock()
	defer h.m.Unlock()
	return len(h.viewers)
}

// waitViewers blocks until at least one viewer is connected.
// waited reports whether it had to block.
func (h *viewerHub) waitViewers(ctx context.Context) (ok, waited bool) {
	for {
		if h.count() > 0 {
			return true, waited
		}
		waited = true
		select {
		case <-h.joined:
		case <-ctx.Done():
			return false, waited
		}
	}
}

func (h *viewerHub) setInput(id string, msg mandel.InputMsg) {
	h.m.Lock()
	defer h.m.Unlock()
	if _, ok := h.viewers[id]; !ok {
		return
	}
	h.held[id] = msg.Held
	for k := range msg.Pressed.All() {
		h.presses[k] = min(h.presses[k]+1, maxQueuedPresses)
	}
}

// input returns the union of all viewers' held keys and takes one queued
// press of every key that has any.
func (h *viewerHub) input() (held, pressed mandel.KeySet) {
	h.m.Lock()
	defer h.m.Unlock()
	for _, s := range h.held {
		held |= s
	}
	for k, n := range h.presses {
		pressed = pressed.With(k)
		if n > 1 {
			h.presses[k] = n - 1
		} else {
			delete(h.presses, k)
		}
	}
	return held, pressed
}

func (h *viewerHub) broadcast(frame []byte) {
	h.m.Lock()
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.m.Unlock()

	for _, v := range viewers {
		v.publish(frame)
	}
}

func (h *viewerHub) closeAll() {
	h.m.Lock()
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.m.Unlock()

	for _, v := range viewers {
		h.remove(v)
	}
}

// serve pumps frames to the viewer and input from it until the connection ends.
func (v *viewer) serve(h *viewerHub) error {
	defer h.remove(v)
	go v.writeLoop()

	dec := mandel.NewDecoder(v.conn)
	for {
		msg, err := dec.DecodeInput()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		h.setInput(v.id, msg)
	}
}

func (v *viewer) publish(frame []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	if v.frame != nil {
		v.drops++
	}
	v.frame = frame
	v.cond.Signal()
}

func (v *viewer) writeLoop() {
	for {
		v.mu.Lock()
		for v.frame == nil && !v.closed {
			v.cond.Wait()
		}
		if v.closed {
			v.mu.Unlock()
			return
		}
		frame := v.frame
		v.frame = nil
		v.mu.Unlock()

		if _, err := v.conn.Write(frame); err != nil {
			slog.Debug("server: frame write failed", "viewer", v.id, "error", err)
			v.close()
			return
		}
	}
}

func (v *viewer) dropped() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drops
}

func (v *viewer) close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.cond.Broadcast()
	v.mu.Unlock()

	v.conn.Close()
}

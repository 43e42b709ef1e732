package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/rt_mandel"
)

var runeBindings = map[rune]mandel.Key{
	'a': mandel.PanLeft,
	'd': mandel.PanRight,
	'w': mandel.PanUp,
	's': mandel.PanDown,
	'z': mandel.ZoomIn,
	'x': mandel.ZoomOut,
	'+': mandel.MoreIterations,
	'-': mandel.FewerIterations,
}

var keyBindings = map[tcell.Key]mandel.Key{
	tcell.KeyLeft:  mandel.PanLeft,
	tcell.KeyRight: mandel.PanRight,
	tcell.KeyUp:    mandel.MoreIterations,
	tcell.KeyDown:  mandel.FewerIterations,
}

const hud = "  [wasd] pan  [z/x] zoom  [up/down] iterations  [q] quit"

// termHost draws frames with upper half blocks: the foreground colors the
// top pixel of a cell, the background the bottom one. Terminals report key
// presses but no releases, so a key event counts as held for one frame.
type termHost struct {
	screen    tcell.Screen
	events    chan tcell.Event
	done      chan struct{} // closed by Close
	pumped    chan struct{} // closed when pump returns
	closeOnce sync.Once
	ticker    *time.Ticker
	interval  time.Duration
	last      time.Time

	frames int
	since  time.Time
	fps    float64
}

var _ mandel.Host = (*termHost)(nil)

func newTermHost(screen tcell.Screen, fps int) *termHost {
	interval := time.Second / time.Duration(fps)
	h := &termHost{
		screen:   screen,
		events:   make(chan tcell.Event, 64),
		done:     make(chan struct{}),
		pumped:   make(chan struct{}),
		ticker:   time.NewTicker(interval),
		interval: interval,
		since:    time.Now(),
	}
	go h.pump()
	return h
}

// pump forwards screen events until the screen is finalized or the host
// closed. After Close nobody drains events, so sends give up on done.
func (h *termHost) pump() {
	defer close(h.pumped)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			close(h.events)
			return
		}
		select {
		case h.events <- ev:
		case <-h.done:
			return
		}
	}
}

// Input implements mandel.Host.
func (h *termHost) Input(ctx context.Context) (mandel.InputSnapshot, bool) {
	var now time.Time
	select {
	case now = <-h.ticker.C:
	case <-ctx.Done():
		return mandel.InputSnapshot{}, false
	}

	in := mandel.InputSnapshot{DT: h.interval.Seconds()}
	if !h.last.IsZero() {
		in.DT = now.Sub(h.last).Seconds()
	}
	h.last = now

	for {
		select {
		case ev, ok := <-h.events:
			if !ok {
				return in, false
			}
			if !h.handle(ev, &in) {
				return in, false
			}
		default:
			return in, true
		}
	}
}

// handle folds one event into in; false means quit.
func (h *termHost) handle(ev tcell.Event, in *mandel.InputSnapshot) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		var (
			k  mandel.Key
			ok bool
		)
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			k, ok = runeBindings[ev.Rune()]
		default:
			k, ok = keyBindings[ev.Key()]
		}
		if ok {
			in.Held = in.Held.With(k)
			in.Pressed = in.Pressed.With(k)
		}
	}
	return true
}

// Present implements mandel.Host.
func (h *termHost) Present(f mandel.Frame) error {
	cols, rows := h.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		return nil
	}

	for cy := range rows {
		top := (2 * cy) * f.Height / (2 * rows)
		bottom := (2*cy + 1) * f.Height / (2 * rows)
		for cx := range cols {
			x := cx * f.Width / cols
			fg := f.Palette.Lookup(f.Canvas[top*f.Width+x])
			bg := f.Palette.Lookup(f.Canvas[bottom*f.Width+x])
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
				Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
			h.screen.SetContent(cx, cy+1, '▀', nil, style)
		}
	}

	h.frames++
	if elapsed := time.Since(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames, h.since = 0, time.Now()
	}
	status := fmt.Sprintf("Iterations: %d  FPS: %.0f%s", f.Iterations, h.fps, hud)
	h.drawText(0, 0, cols, status)

	h.screen.Show()
	return nil
}

func (h *termHost) drawText(x, y, width int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	i := 0
	for _, r := range s {
		if x+i >= width {
			return
		}
		h.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
	for ; x+i < width; i++ {
		h.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// Close stops the ticker and restores the terminal. It is safe to call more than once.
func (h *termHost) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.ticker.Stop()
		h.screen.Fini()
	})
}

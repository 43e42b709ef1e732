package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/rt_mandel"
)

var keyBindings = []struct {
	key     ebiten.Key
	control mandel.Key
}{
	{ebiten.KeyA, mandel.PanLeft},
	{ebiten.KeyD, mandel.PanRight},
	{ebiten.KeyW, mandel.PanUp},
	{ebiten.KeyS, mandel.PanDown},
	{ebiten.KeyShiftLeft, mandel.ZoomIn},
	{ebiten.KeySpace, mandel.ZoomOut},
	{ebiten.KeyArrowUp, mandel.MoreIterations},
	{ebiten.KeyArrowDown, mandel.FewerIterations},
}

// game adapts a FrameLoop to ebiten's Update/Draw cycle.
type game struct {
	loop          *mandel.FrameLoop
	width, height int

	img   *ebiten.Image
	pix   []byte
	frame mandel.Frame
	last  time.Time
}

func newGame(loop *mandel.FrameLoop, width, height int) *game {
	return &game{
		loop:   loop,
		width:  width,
		height: height,
		img:    ebiten.NewImage(width, height),
		pix:    make([]byte, 4*width*height),
	}
}

func (g *game) input() mandel.InputSnapshot {
	now := time.Now()
	var in mandel.InputSnapshot
	if !g.last.IsZero() {
		in.DT = now.Sub(g.last).Seconds()
	}
	g.last = now

	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.key) {
			in.Held = in.Held.With(b.control)
		}
		if inpututil.IsKeyJustPressed(b.key) {
			in.Pressed = in.Pressed.With(b.control)
		}
	}
	return in
}

// Update renders the next frame. A failed frame ends RunGame with its error.
func (g *game) Update() error {
	f, err := g.loop.Step(g.input())
	if err != nil {
		return err
	}
	g.frame = f

	f.Palette.Fill(g.pix, f.Canvas)
	g.img.WritePixels(g.pix)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.img, nil)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Iterations: %d", g.frame.Iterations), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f FPS", ebiten.ActualFPS()), g.width-100, 10)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

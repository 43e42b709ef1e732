// viewer is the desktop Mandelbrot explorer: a window that re-renders the
// whole image every frame while the keyboard pans, zooms and changes depth.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	mandel "github.com/marben/rt_mandel"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg, err := mandel.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	loop, err := mandel.NewFrameLoop(cfg)
	if err != nil {
		return err
	}
	defer loop.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("mandelbrot")
	// one Update per displayed frame, so zoom advances once per frame
	ebiten.SetTPS(ebiten.SyncWithFPS)

	// RunGame returns nil when the window is closed
	return ebiten.RunGame(newGame(loop, cfg.Width, cfg.Height))
}

// termview explores the Mandelbrot set in a terminal, two pixels per cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/rt_mandel"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

// termConfig is the default configuration scaled down for a terminal.
// Pan speed keeps the same share of the image per second.
func termConfig() mandel.Config {
	cfg := mandel.DefaultConfig()
	cfg.Speed = cfg.Speed * 320 / float64(cfg.Width)
	cfg.Width, cfg.Height, cfg.Tiles = 320, 192, 16
	cfg.Server.FPS = 20
	return cfg
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file (default: a 320x192 terminal setup)")
	flag.Parse()

	cfg := termConfig()
	if *configPath != "" {
		var err error
		if cfg, err = mandel.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	loop, err := mandel.NewFrameLoop(cfg)
	if err != nil {
		return err
	}
	defer loop.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell.NewScreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen.Init: %w", err)
	}
	// slog output would tear the picture; keep warnings only
	slog.SetLogLoggerLevel(slog.LevelWarn)

	host := newTermHost(screen, cfg.Server.FPS)
	defer host.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return loop.Run(ctx, host)
}

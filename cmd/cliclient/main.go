// cliclient is a CLI client for the Mandelbrot streaming server.
// It asks the server for one frame of the live camera, optionally zoomed and
// deepened, and saves it as a PNG file.

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net"
	"os"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/rt_mandel"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type options struct {
	addr    string
	out     string
	zoom    int // zoom frames applied before rendering, negative zooms out
	more    int // iteration steps applied before rendering, negative lowers
	timeout time.Duration
}

// run connects to the Mandelbrot server, requests a frame, and saves it as a PNG file.
// Returns an error if any step fails.
func run() error {
	var opts options
	flag.StringVar(&opts.addr, "addr", "localhost:8081", "server irpc address")
	flag.StringVar(&opts.out, "out", "mandel.png", "output PNG file")
	flag.IntVar(&opts.zoom, "zoom", 0, "zoom in this many frames before rendering (negative zooms out)")
	flag.IntVar(&opts.more, "more", 0, "raise the iteration budget this many steps before rendering (negative lowers it)")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "give up after this long")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	msg, err := capture(ctx, opts)
	if err != nil {
		return err
	}

	// Save the frame to a PNG file
	log.Printf("Saving frame %d (%dx%d, %d iterations) to %q...", msg.Seq, msg.Width, msg.Height, msg.Iterations, opts.out)
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	img := mandel.BuildPalette(msg.Hue).Image(msg.Canvas, msg.Width, msg.Height)
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("Frame saved to %q", opts.out)
	return nil
}

// capture fetches one frame with the requested steps applied. The server
// applies every step before rendering, so the frame reflects all of them.
func capture(ctx context.Context, opts options) (mandel.FrameMsg, error) {
	log.Printf("Connecting to Mandelbrot server on %s...", opts.addr)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", opts.addr)
	if err != nil {
		return mandel.FrameMsg{}, fmt.Errorf("failed to connect to server: %w", err)
	}
	// the generated client does not take a context; bound the whole call instead
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	ep := irpc.NewEndpoint(conn)
	defer ep.Close()

	client, err := mandel.NewFrameProviderIrpcClient(ep)
	if err != nil {
		return mandel.FrameMsg{}, fmt.Errorf("failed to create FrameProvider client: %w", err)
	}

	log.Printf("Requesting frame (zoom %d, iterations %+d steps)...", opts.zoom, opts.more)
	msg, err := client.GetFrame(opts.zoom, opts.more)
	if err != nil {
		return mandel.FrameMsg{}, fmt.Errorf("client.GetFrame: %w", err)
	}
	return msg, msg.Validate()
}

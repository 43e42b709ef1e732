package main

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/rt_mandel"
)

func serveFrames(t *testing.T, cfg mandel.Config) (*mandel.FrameLoop, string) {
	t.Helper()
	loop, err := mandel.NewFrameLoop(cfg)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}
	t.Cleanup(func() { loop.Close() })
	svc, err := mandel.NewFrameService(cfg, loop)
	if err != nil {
		t.Fatalf("NewFrameService failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen failed: %v", err)
	}
	srv := irpc.NewServer(irpc.WithServices(mandel.NewFrameProviderIrpcService(svc)))
	go srv.Serve(l)
	t.Cleanup(func() { srv.Close() })
	return loop, l.Addr().String()
}

// TestCaptureAppliesEveryStep verifies the saved frame reflects all requested
// zoom and iteration steps, however fast they are requested.
func TestCaptureAppliesEveryStep(t *testing.T) {
	cfg := mandel.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Tiles = 40, 30, 5
	loop, addr := serveFrames(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tests := []struct {
		zoom, more int
	}{
		{0, 0},
		{4, 3},
		{-2, -1},
	}
	for _, tt := range tests {
		msg, err := capture(ctx, options{addr: addr, zoom: tt.zoom, more: tt.more})
		if err != nil {
			t.Fatalf("capture(%d, %d) failed: %v", tt.zoom, tt.more, err)
		}

		cam := loop.Camera()
		mandel.NewCameraController(cfg).Apply(&cam, tt.zoom, tt.more)
		if msg.Iterations != cam.Iterations {
			t.Errorf("capture(%d, %d): iterations = %d, want %d", tt.zoom, tt.more, msg.Iterations, cam.Iterations)
		}
		want := mandel.RenderSequential(cam.View(), cfg.Width, cfg.Height)
		if !bytes.Equal(msg.Canvas, want) {
			t.Errorf("capture(%d, %d): canvas does not match the stepped camera", tt.zoom, tt.more)
		}
	}
}

func TestCaptureNoServer(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen failed: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := capture(ctx, options{addr: addr}); err == nil {
		t.Error("capture succeeded without a server")
	}
}

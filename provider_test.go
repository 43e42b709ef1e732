package mandel

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net"
	"testing"

	"github.com/marben/irpc"
)

func newTestService(t *testing.T, cfg Config) (*FrameLoop, *FrameService) {
	t.Helper()
	l := newTestLoop(t, cfg)
	s, err := NewFrameService(cfg, l)
	if err != nil {
		t.Fatalf("NewFrameService failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return l, s
}

// TestFrameServiceAppliesSteps verifies that every requested step is applied
// exactly once and the live camera is left alone.
func TestFrameServiceAppliesSteps(t *testing.T) {
	cfg := loopConfig()
	l, s := newTestService(t, cfg)
	before := l.Camera()

	msg, err := s.GetFrame(3, 2)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if err := msg.Validate(); err != nil {
		t.Fatal(err)
	}

	want := before
	f := math.Pow(cfg.ZoomFactor, 3)
	want.Dim[0] *= f
	want.Dim[1] *= f
	want.Iterations += 2 * cfg.IterStep

	if msg.Iterations != want.Iterations {
		t.Errorf("iterations = %d, want %d", msg.Iterations, want.Iterations)
	}
	if msg.Hue != cfg.Hue {
		t.Errorf("hue = %v, want %v", msg.Hue, cfg.Hue)
	}

	// rebuild the camera through the controller to compare pixels exactly
	cam := before
	NewCameraController(cfg).Apply(&cam, 3, 2)
	if !near(cam.Dim[0], want.Dim[0]) || !near(cam.Dim[1], want.Dim[1]) {
		t.Fatalf("Apply dim = %v, want %v", cam.Dim, want.Dim)
	}
	if !bytes.Equal(msg.Canvas, RenderSequential(cam.View(), cfg.Width, cfg.Height)) {
		t.Error("canvas does not match the stepped camera")
	}

	if l.Camera() != before {
		t.Errorf("live camera moved to %+v", l.Camera())
	}
}

func TestFrameServiceIterationsClamp(t *testing.T) {
	_, s := newTestService(t, loopConfig())

	msg, err := s.GetFrame(0, -10)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if msg.Iterations != 0 {
		t.Errorf("iterations = %d, want 0", msg.Iterations)
	}
}

func TestFrameServiceRejectsLargeRequests(t *testing.T) {
	_, s := newTestService(t, loopConfig())

	for _, steps := range [][2]int{{maxFrameSteps + 1, 0}, {0, -maxFrameSteps - 1}} {
		if _, err := s.GetFrame(steps[0], steps[1]); !errors.Is(err, ErrBadRequest) {
			t.Errorf("GetFrame(%d, %d) error = %v, want ErrBadRequest", steps[0], steps[1], err)
		}
	}
}

func TestFrameProviderOverIrpc(t *testing.T) {
	cfg := loopConfig()
	_, s := newTestService(t, cfg)

	clientConn, serverConn := net.Pipe()
	serverEp := irpc.NewEndpoint(serverConn, irpc.WithEndpointServices(NewFrameProviderIrpcService(s)))
	defer serverEp.Close()
	clientEp := irpc.NewEndpoint(clientConn)
	defer clientEp.Close()

	client, err := NewFrameProviderIrpcClient(clientEp)
	if err != nil {
		t.Fatalf("NewFrameProviderIrpcClient: %v", err)
	}

	remote, err := client.GetFrame(2, 1)
	if err != nil {
		t.Fatalf("remote GetFrame failed: %v", err)
	}
	local, err := s.GetFrame(2, 1)
	if err != nil {
		t.Fatalf("local GetFrame failed: %v", err)
	}

	if remote.Width != cfg.Width || remote.Height != cfg.Height || remote.Iterations != local.Iterations {
		t.Errorf("remote frame %dx%d at %d iterations, want %dx%d at %d",
			remote.Width, remote.Height, remote.Iterations, cfg.Width, cfg.Height, local.Iterations)
	}
	if !bytes.Equal(remote.Canvas, local.Canvas) {
		t.Error("remote canvas differs from local render")
	}

	if _, err := client.GetFrame(maxFrameSteps+1, 0); err == nil {
		t.Error("remote GetFrame accepted an oversized request")
	}
}

// TestFrameServiceDuringRun verifies snapshots may be taken while the loop runs.
func TestFrameServiceDuringRun(t *testing.T) {
	cfg := loopConfig()
	l, s := newTestService(t, cfg)

	host := &scriptedHost{}
	for range 50 {
		host.inputs = append(host.inputs, InputSnapshot{Held: held(ZoomIn, PanRight), DT: 0.01})
	}
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background(), host) }()

	for range 5 {
		if _, err := s.GetFrame(1, 1); err != nil {
			t.Errorf("GetFrame failed: %v", err)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(host.frames) != 50 {
		t.Errorf("presented %d frames, want 50", len(host.frames))
	}
}

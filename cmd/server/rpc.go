package main

import (
	"log/slog"

	"github.com/marben/irpc"

	mandel "github.com/marben/rt_mandel"
)

// newRPCServer serves frame snapshots over irpc. cliclient uses it to fetch
// a single frame without joining the shared camera.
func newRPCServer(p mandel.FrameProvider) *irpc.Server {
	return irpc.NewServer(
		irpc.WithServices(mandel.NewFrameProviderIrpcService(p)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			slog.Info("server: rpc client connected", "remote", ep.RemoteAddr())
		}),
	)
}

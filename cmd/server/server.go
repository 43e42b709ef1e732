package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/rt_mandel"
)

// main is the entry point for the Mandelbrot streaming server.
// The server owns the camera and renders every frame; viewers (web and CLI)
// only send key state and display what they receive.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP port, overrides server.http_port")
	rpcPort := flag.Int("rpc-port", 0, "irpc tcp port, overrides server.rpc_port")
	debug := flag.Bool("debug", false, "log every frame")
	flag.Parse()

	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := mandel.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.HTTPPort = *port
	}
	if *rpcPort != 0 {
		cfg.Server.RPCPort = *rpcPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop, err := mandel.NewFrameLoop(cfg)
	if err != nil {
		return err
	}
	defer loop.Close()

	// frameService renders single frames for irpc clients from the live camera
	frameService, err := mandel.NewFrameService(cfg, loop)
	if err != nil {
		return err
	}
	defer frameService.Close()

	// TCP
	log.Printf("tcp listening on port: %d", cfg.Server.RPCPort)
	tcpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.RPCPort))
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	rpcServer := newRPCServer(frameService)
	go func() {
		if err := rpcServer.Serve(tcpListener); err != nil && !errors.Is(err, irpc.ErrServerClosed) {
			log.Fatalf("server.Serve tcp: %v", err)
		}
	}()

	// WEBSOCKET
	hub := newViewerHub()
	websocketListener, httpServer := webServer(ctx, cfg.Server.HTTPPort, cfg.Server.StaticDir)

	// httpServer provides index.html, main.wasm along with websocket endpoint
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("httpServer: %v", err)
		}
	}()
	go acceptViewers(websocketListener, hub)

	host := newRemoteHost(hub, cfg.Server.FPS, cfg.Hue)
	defer host.Close()

	log.Printf("mb server waiting for websocket viewers")
	runErr := loop.Run(ctx, host)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	websocketListener.Close()
	hub.closeAll()
	if err := rpcServer.Close(); err != nil {
		slog.Warn("server: rpc shutdown", "error", err)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server: http shutdown", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("frame loop: %w", runErr)
	}
	return nil
}

// acceptViewers turns every accepted websocket into a viewer session.
func acceptViewers(l net.Listener, hub *viewerHub) {
	for {
		conn, err := l.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Error("server: accept", "error", err)
			}
			return
		}

		v := hub.add(conn)
		go func() {
			if err := v.serve(hub); err != nil {
				slog.Warn("server: viewer input", "viewer", v.id, "error", err)
			}
		}()
	}
}

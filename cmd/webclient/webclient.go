//go:build js && wasm

// webclient.go is a WASM web viewer for the Mandelbrot streaming server.
// It connects to the server, forwards keyboard state and paints every frame it receives.

package main

import (
	"fmt"
	"log"
	"syscall/js"
	"time"

	mandel "github.com/marben/rt_mandel"
)

// main is the entry point for the WASM web client.
// It connects to the Mandelbrot server, wires the keyboard and runs the frame loop.
func main() {
	logScreenf("Starting WASM web client...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	// Step 2: Connect to server via WebSocket
	logScreenf("Connecting to Mandelbrot server at %s...", websocketUrl)
	websocket := js.Global().Get("WebSocket").New(websocketUrl)
	websocketRWC := NewWebsocketReadWriteCloser(websocket)
	logScreenf("WebSocket created.")

	// Step 3: Forward key state to the server, in event order
	inputs := make(chan mandel.InputMsg, 64)
	watchKeyboard(inputs)
	go func() {
		for in := range inputs {
			b, err := mandel.Encode(in)
			if err != nil {
				logScreenf("encode input: %v", err)
				continue
			}
			if _, err := websocketRWC.Write(b); err != nil {
				logScreenf("send input: %v", err)
				return
			}
		}
	}()

	// Step 4: Paint frames until the connection ends
	if err := framesLoop(mandel.NewDecoder(websocketRWC)); err != nil {
		logFatalf("framesLoop: %v", err)
	}

	// Step 5: Block main goroutine to keep WASM running
	select {}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

// framesLoop decodes frames pushed by the server and paints them.
// The palette is rebuilt only when the server's hue changes.
func framesLoop(dec *mandel.Decoder) error {
	var (
		palette *mandel.Palette
		hue     float32
		canvas  *canvasPainter
		frames  int
		since   = time.Now()
	)

	for {
		msg, err := dec.DecodeFrame()
		if err != nil {
			return fmt.Errorf("DecodeFrame: %w", err)
		}

		if palette == nil || msg.Hue != hue {
			palette, hue = mandel.BuildPalette(msg.Hue), msg.Hue
		}
		if canvas == nil || canvas.width != msg.Width || canvas.height != msg.Height {
			canvas = newCanvasPainter(msg.Width, msg.Height)
			logScreenf("Canvas initialized to dimensions %dx%d", msg.Width, msg.Height)
		}

		palette.Fill(canvas.pix, msg.Canvas)
		canvas.paint()

		frames++
		if elapsed := time.Since(since); elapsed >= time.Second {
			hudSetFPS(float64(frames) / elapsed.Seconds())
			frames, since = 0, time.Now()
		}
		hudSetIterations(msg.Iterations)
	}
}

// hudSetIterations updates the HUD to show the current iteration budget.
func hudSetIterations(iterations int32) {
	js.Global().Get("document").Call("getElementById", "iterations").Set("textContent", iterations)
}

// hudSetFPS updates the HUD to show the frame rate.
func hudSetFPS(fps float64) {
	js.Global().Get("document").Call("getElementById", "fps").Set("textContent", fmt.Sprintf("%.0f", fps))
}

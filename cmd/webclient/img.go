//go:build js && wasm

package main

import (
	"syscall/js"
)

// canvasPainter copies RGBA pixels into the page's canvas element.
type canvasPainter struct {
	width, height int
	pix           []byte
	ctx           js.Value
	jsData        js.Value
	imageData     js.Value
}

// newCanvasPainter sizes the canvas and allocates the shared pixel buffers once.
func newCanvasPainter(width, height int) *canvasPainter {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "myCanvas")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", "#3a3a6e")
	ctx.Call("fillRect", 0, 0, width, height)

	// width * height * 4 (RGBA)
	jsData := js.Global().Get("Uint8ClampedArray").New(width * height * 4)
	return &canvasPainter{
		width:     width,
		height:    height,
		pix:       make([]byte, width*height*4),
		ctx:       ctx,
		jsData:    jsData,
		imageData: js.Global().Get("ImageData").New(jsData, width, height),
	}
}

// paint displays the current contents of pix.
func (p *canvasPainter) paint() {
	js.CopyBytesToJS(p.jsData, p.pix)
	p.ctx.Call("putImageData", p.imageData, 0, 0)
}

//go:build js && wasm

package main

import (
	"syscall/js"

	mandel "github.com/marben/rt_mandel"
)

// keyBindings maps KeyboardEvent.code to controls, as in the desktop viewer.
var keyBindings = map[string]mandel.Key{
	"KeyA":      mandel.PanLeft,
	"KeyD":      mandel.PanRight,
	"KeyW":      mandel.PanUp,
	"KeyS":      mandel.PanDown,
	"ShiftLeft": mandel.ZoomIn,
	"Space":     mandel.ZoomOut,
	"ArrowUp":   mandel.MoreIterations,
	"ArrowDown": mandel.FewerIterations,
}

// watchKeyboard queues a message on out whenever the set of held keys
// changes or a key goes down. Auto-repeat events are not presses.
// JS callbacks must not block, so a full queue drops the message.
func watchKeyboard(out chan<- mandel.InputMsg) {
	var held mandel.KeySet
	doc := js.Global().Get("document")

	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		k, ok := keyBindings[ev.Get("code").String()]
		if !ok {
			return nil
		}
		ev.Call("preventDefault")
		if ev.Get("repeat").Bool() {
			return nil
		}
		held = held.With(k)
		queue(out, mandel.InputMsg{Held: held, Pressed: mandel.KeySet(0).With(k)})
		return nil
	}))

	doc.Call("addEventListener", "keyup", js.FuncOf(func(this js.Value, args []js.Value) any {
		k, ok := keyBindings[args[0].Get("code").String()]
		if !ok {
			return nil
		}
		held &^= mandel.KeySet(0).With(k)
		queue(out, mandel.InputMsg{Held: held})
		return nil
	}))
}

func queue(out chan<- mandel.InputMsg, msg mandel.InputMsg) {
	select {
	case out <- msg:
	default:
		logScreenf("input queue full, dropping key event")
	}
}

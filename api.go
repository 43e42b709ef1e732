package mandel

import (
	"context"
)

// Host is the window, terminal or network peer a FrameLoop runs against.
type Host interface {
	// Input blocks until the next frame is due and returns its input.
	// ok is false once the host has asked to close.
	Input(ctx context.Context) (in InputSnapshot, ok bool)
	// Present shows a frame. The canvas is only valid until Present returns.
	Present(f Frame) error
}

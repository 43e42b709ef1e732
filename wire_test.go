package mandel

import (
	"bytes"
	"testing"
)

func TestFrameMsgStream(t *testing.T) {
	cam := Overview.Camera(32)
	f := Frame{Seq: 7, Width: 8, Height: 4, Canvas: RenderSequential(cam.View(), 8, 4), Iterations: 32}
	msg := NewFrameMsg(f, 252)
	f.Canvas[0] ^= 0xff // the message holds its own copy

	var stream bytes.Buffer
	for _, v := range []any{msg, InputMsg{Held: held(ZoomIn), Pressed: held(MoreIterations)}} {
		b, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		stream.Write(b)
	}

	dec := NewDecoder(&stream)
	got, err := dec.DecodeFrame()
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if got.Seq != 7 || got.Hue != 252 || got.Iterations != 32 {
		t.Errorf("frame header = %+v", got)
	}
	if !bytes.Equal(got.Canvas, RenderSequential(cam.View(), 8, 4)) {
		t.Error("canvas changed on the wire")
	}

	in, err := dec.DecodeInput()
	if err != nil {
		t.Fatalf("DecodeInput failed: %v", err)
	}
	if !in.Held.Has(ZoomIn) || !in.Pressed.Has(MoreIterations) || in.Held.Has(ZoomOut) {
		t.Errorf("input = %+v", in)
	}
}

func TestFrameMsgValidate(t *testing.T) {
	bad := FrameMsg{Width: 4, Height: 4, Canvas: make([]byte, 15)}
	if err := bad.Validate(); err == nil {
		t.Error("Validate accepted a short canvas")
	}
}

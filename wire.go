package mandel

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// FrameMsg carries a raw canvas to a remote viewer. The viewer rebuilds the
// palette from Hue, so a frame costs one byte per pixel on the wire.
type FrameMsg struct {
	Seq        uint64  `msgpack:"seq"`
	Width      int     `msgpack:"w"`
	Height     int     `msgpack:"h"`
	Iterations int32   `msgpack:"it"`
	Hue        float32 `msgpack:"hue"`
	Canvas     []byte  `msgpack:"px"`
}

// InputMsg is a viewer's key state.
type InputMsg struct {
	Held    KeySet `msgpack:"held"`
	Pressed KeySet `msgpack:"pressed"`
}

// NewFrameMsg copies f into a message; the canvas is not retained.
func NewFrameMsg(f Frame, hue float32) FrameMsg {
	return FrameMsg{
		Seq:        f.Seq,
		Width:      f.Width,
		Height:     f.Height,
		Iterations: f.Iterations,
		Hue:        hue,
		Canvas:     append([]byte(nil), f.Canvas...),
	}
}

// Validate checks that the canvas matches the declared size.
func (m FrameMsg) Validate() error {
	if m.Width <= 0 || m.Height <= 0 || len(m.Canvas) != m.Width*m.Height {
		return fmt.Errorf("malformed frame %d: %dx%d with %d pixels", m.Seq, m.Width, m.Height, len(m.Canvas))
	}
	return nil
}

// Encode marshals v into a single message body.
func Encode(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("msgpack.Marshal: %w", err)
	}
	return b, nil
}

// Decoder reads consecutive messages from a stream.
type Decoder struct {
	dec *msgpack.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: msgpack.NewDecoder(r)}
}

// DecodeFrame reads the next FrameMsg.
func (d *Decoder) DecodeFrame() (FrameMsg, error) {
	var m FrameMsg
	if err := d.dec.Decode(&m); err != nil {
		return FrameMsg{}, err
	}
	return m, m.Validate()
}

// DecodeInput reads the next InputMsg.
func (d *Decoder) DecodeInput() (InputMsg, error) {
	var m InputMsg
	err := d.dec.Decode(&m)
	return m, err
}

package mandel

import "iter"

// Camera is the viewport onto the complex plane: the extent of the visible
// region (Dim), its center (Pos) and the escape-time budget.
type Camera struct {
	Dim        [2]float64
	Pos        [2]float64
	Iterations int32
}

// View is a frozen copy of a Camera handed to band tasks.
// Tasks never see the live camera.
type View struct {
	dim        [2]float64
	pos        [2]float64
	iterations int32
}

// View snapshots the camera.
func (c Camera) View() View {
	return View{dim: c.Dim, pos: c.Pos, iterations: c.Iterations}
}

// Iterations returns the escape-time budget of the snapshot.
func (v View) Iterations() int32 { return v.iterations }

// Key is a logical control, independent of the host's keyboard layout.
type Key uint8

const (
	PanLeft Key = iota
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
	MoreIterations
	FewerIterations
)

// KeySet is a set of Keys.
type KeySet uint16

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet { return s | 1<<k }

// All yields the keys of the set in ascending order.
func (s KeySet) All() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for k := Key(0); k < 16; k++ {
			if s.Has(k) && !yield(k) {
				return
			}
		}
	}
}

// InputSnapshot is the input of one frame, as reported by the host.
type InputSnapshot struct {
	Held    KeySet  // keys down during this frame
	Pressed KeySet  // keys that went down since the previous frame
	DT      float64 // seconds since the previous frame
}

// CameraController advances a Camera from per-frame input.
type CameraController struct {
	width, height float64
	speed         float64
	zoom          float64
	iterStep      int32
}

// NewCameraController returns a controller for cfg's image size and speeds.
func NewCameraController(cfg Config) *CameraController {
	return &CameraController{
		width:    float64(cfg.Width),
		height:   float64(cfg.Height),
		speed:    cfg.Speed,
		zoom:     cfg.ZoomFactor,
		iterStep: cfg.IterStep,
	}
}

// Update applies one frame of input to cam.
//
// Panning moves speed pixels per second, converted to plane units through the
// current extent, so it slows down as the view zooms in. Zoom is applied once
// per frame while its key is held and is not scaled by DT: the zoom rate
// follows the frame rate, the pan rate does not.
func (cc *CameraController) Update(cam *Camera, in InputSnapshot) {
	h := axis(in.Held, PanRight, PanLeft)
	v := axis(in.Held, PanDown, PanUp)

	cam.Pos[0] += h * cc.speed * in.DT / cc.width * cam.Dim[0]
	cam.Pos[1] += v * cc.speed * in.DT / cc.height * cam.Dim[1]

	if in.Pressed.Has(MoreIterations) {
		cam.Iterations += cc.iterStep
	}
	if in.Pressed.Has(FewerIterations) {
		cam.Iterations -= cc.iterStep
	}
	cam.Iterations = max(cam.Iterations, 0)

	switch scroll := axis(in.Held, ZoomIn, ZoomOut); {
	case scroll > 0:
		cam.Dim[0] *= cc.zoom
		cam.Dim[1] *= cc.zoom
	case scroll < 0:
		cam.Dim[0] /= cc.zoom
		cam.Dim[1] /= cc.zoom
	}
}

// Apply moves cam by whole steps: zoomSteps frames with zoom-in held
// (zoom-out when negative), then iterSteps presses of the iteration keys
// (fewer when negative). Nothing is scaled by time, so there is no panning.
func (cc *CameraController) Apply(cam *Camera, zoomSteps, iterSteps int) {
	zoom, more := ZoomIn, MoreIterations
	if zoomSteps < 0 {
		zoom, zoomSteps = ZoomOut, -zoomSteps
	}
	if iterSteps < 0 {
		more, iterSteps = FewerIterations, -iterSteps
	}

	var none KeySet
	for range zoomSteps {
		cc.Update(cam, InputSnapshot{Held: none.With(zoom)})
	}
	for range iterSteps {
		cc.Update(cam, InputSnapshot{Pressed: none.With(more)})
	}
}

// axis is +1, -1 or 0 depending on which of pos and neg are held.
func axis(held KeySet, pos, neg Key) float64 {
	var d float64
	if held.Has(pos) {
		d++
	}
	if held.Has(neg) {
		d--
	}
	return d
}

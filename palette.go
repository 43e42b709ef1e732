package mandel

import (
	"image"
	"image/color"
	"math"
)

// Palette maps an escape byte to its display color.
// It is built once and only read afterwards, so frames may share it freely.
type Palette [256]color.RGBA

// BuildPalette returns a palette of a single hue (in degrees) at full
// saturation, with brightness rising linearly from black at level 0.
func BuildPalette(hue float32) *Palette {
	var p Palette
	h := math.Mod(float64(hue), 360) / 360
	if h < 0 {
		h++
	}
	for i := range p {
		p[i] = hsv(h, 1, float64(i)/255)
	}
	return &p
}

// Lookup returns the color of level.
func (p *Palette) Lookup(level byte) color.RGBA {
	return p[level]
}

// Fill writes c as packed RGBA bytes into dst, which must hold 4*len(c) bytes.
func (p *Palette) Fill(dst []byte, c Canvas) {
	if len(c) == 0 {
		return
	}
	_ = dst[4*len(c)-1]
	for i, level := range c {
		col := p[level]
		d := dst[4*i : 4*i+4 : 4*i+4]
		d[0], d[1], d[2], d[3] = col.R, col.G, col.B, col.A
	}
}

// Image colors a w×h canvas into a new RGBA image.
func (p *Palette) Image(c Canvas, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p.Fill(img.Pix, c[:w*h])
	return img
}

// Simple HSV → RGB, h in [0,1)
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255)), 255}
}

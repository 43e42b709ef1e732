package mandel

import "image"

// Canvas is a row-major image of escape bytes, one per pixel.
type Canvas []byte

// RenderSequential renders a w×h canvas of view on the calling goroutine.
func RenderSequential(view View, w, h int) Canvas {
	c := make(Canvas, w*h)
	renderBand(view, w, h, image.Rect(0, 0, w, h), c)
	return c
}

// renderBand evaluates every pixel of rows into out, which holds the band
// only (out[0] is rows.Min). The pixel → plane mapping depends on the full
// image size, never on the band, so any partition yields the same bytes.
func renderBand(view View, imgW, imgH int, rows image.Rectangle, out []byte) {
	for py := rows.Min.Y; py < rows.Max.Y; py++ {
		y := float64(py-imgH/2)/float64(imgH)*view.dim[1] + view.pos[1]
		row := out[(py-rows.Min.Y)*imgW : (py-rows.Min.Y+1)*imgW]

		for px := range imgW {
			x := float64(px-imgW/2)/float64(imgW)*view.dim[0] + view.pos[0]
			row[px] = Evaluate(x, y, view.iterations)
		}
	}
}

// splitRows splits r into n full-width bands of equal height.
// Unlike a clipping split, it refuses heights that n does not divide.
func splitRows(r image.Rectangle, n int) ([]image.Rectangle, error) {
	if err := checkTiles(r.Dy(), n); err != nil {
		return nil, err
	}

	th := r.Dy() / n
	bands := make([]image.Rectangle, 0, n)
	for oy := 0; oy < r.Dy(); oy += th {
		bands = append(bands, image.Rect(r.Min.X, r.Min.Y+oy, r.Max.X, r.Min.Y+oy+th))
	}
	return bands, nil
}

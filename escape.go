package mandel

import "math"

// EscapeCount runs z = z² + c from z = 0, c = re + im·i, until |z| > 2 or
// maxIterations steps, and returns the number of steps taken.
func EscapeCount(re, im float64, maxIterations int32) int32 {
	var x, y, x2, y2 float64
	var n int32
	for x2+y2 <= 4.0 && n < maxIterations {
		y = 2*x*y + im
		x = x2 - y2 + re
		x2 = x * x
		y2 = y * y
		n++
	}
	return n
}

// Evaluate returns the escape count of re + im·i as a share of
// maxIterations, scaled to 0..255. Points that never escape give 255.
// A budget of zero (or less) gives 0.
//
// Evaluate is pure and safe for concurrent use.
func Evaluate(re, im float64, maxIterations int32) byte {
	if maxIterations <= 0 {
		return 0
	}
	n := EscapeCount(re, im, maxIterations)
	level := math.Round(float64(n) / float64(maxIterations) * 255)
	return byte(max(0, min(255, level)))
}

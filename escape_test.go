package mandel

import "testing"

// TestEvaluateOrigin verifies the origin never escapes.
func TestEvaluateOrigin(t *testing.T) {
	for _, n := range []int32{1, 2, 7, 64, 1000} {
		if got := Evaluate(0, 0, n); got != 255 {
			t.Errorf("Evaluate(0, 0, %d) = %d, want 255", n, got)
		}
	}
}

// TestEvaluateZeroBudget verifies a zero budget yields 0 instead of dividing by zero.
func TestEvaluateZeroBudget(t *testing.T) {
	points := [][2]float64{{0, 0}, {-2, 0}, {3, 3}, {-0.75, 0.1}, {1e300, -1e300}}
	for _, p := range points {
		if got := Evaluate(p[0], p[1], 0); got != 0 {
			t.Errorf("Evaluate(%v, %v, 0) = %d, want 0", p[0], p[1], got)
		}
	}
	if got := Evaluate(0, 0, -5); got != 0 {
		t.Errorf("Evaluate with negative budget = %d, want 0", got)
	}
}

func TestEvaluateKnownPoints(t *testing.T) {
	tests := []struct {
		name   string
		re, im float64
		max    int32
		want   byte
	}{
		// |c| > 2 escapes after the first step
		{"far outside", 3, 0, 10, 26},
		{"far outside big budget", 3, 0, 255, 1},
		// c = -1 cycles 0, -1, 0, -1 forever
		{"period two", -1, 0, 100, 255},
		// c = 1: 0, 1, 2, 5 -> escapes on the third step
		{"real axis", 1, 0, 6, 128},
		{"cusp", -2, 0, 50, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.re, tt.im, tt.max); got != tt.want {
				t.Errorf("Evaluate(%v, %v, %d) = %d, want %d", tt.re, tt.im, tt.max, got, tt.want)
			}
		})
	}
}

// TestEscapeCountMonotonic verifies a larger budget never lowers the count.
func TestEscapeCountMonotonic(t *testing.T) {
	points := [][2]float64{{1, 0}, {0.3, 0.5}, {-0.75, 0.11}, {0.26, 0}, {-1.25, 0.3}}
	for _, p := range points {
		prev := int32(0)
		for budget := int32(0); budget <= 512; budget++ {
			n := EscapeCount(p[0], p[1], budget)
			if n < prev {
				t.Fatalf("EscapeCount(%v, %v, %d) = %d, below %d at the previous budget", p[0], p[1], budget, n, prev)
			}
			if n > budget {
				t.Fatalf("EscapeCount(%v, %v, %d) = %d exceeds the budget", p[0], p[1], budget, n)
			}
			prev = n
		}
	}
}

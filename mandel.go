package mandel

import "fmt"

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Camera returns a camera framing r, centered on its midpoint.
func (r Region) Camera(iterations int32) Camera {
	return Camera{
		Dim:        [2]float64{r.Xmax - r.Xmin, r.Ymax - r.Ymin},
		Pos:        [2]float64{(r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2},
		Iterations: iterations,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Overview – the whole set, the default startup view
	Overview = Region{
		Xmin: -2.0,
		Xmax: 0.47,
		Ymin: -1.12,
		Ymax: 1.12,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils. The valley
	// opens at the main cardioid's cusp near 0.3+0i; the often quoted window
	// around -1.8 shows the real-axis antenna instead.
	ElephantValley = Region{
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Regions maps the names accepted in configuration files to landmarks.
var Regions = map[string]Region{
	"overview":                Overview,
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// LookupRegion returns the landmark registered under name.
// An empty name selects Overview.
func LookupRegion(name string) (Region, error) {
	if name == "" {
		return Overview, nil
	}
	r, ok := Regions[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q", name)
	}
	return r, nil
}

package effect

import (
	"math"
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	spiralRadius = 1.4
	spiralCenter = 1.5
	spiralDT     = 0.05
	spiralDZ     = 0.005
	spiralHold   = 5 * time.Millisecond
)

// SpiralSteps is the number of frames in one pass of the helix.
var SpiralSteps = helixSteps()

func helixSteps() int {
	n := 0
	for float64(n)*spiralDZ < voxel.Size {
		n++
	}
	return n
}

func gridCoord(v float64) int {
	i := int(math.Round(v))
	if i < 0 {
		return 0
	}
	if i > voxel.Size-1 {
		return voxel.Size - 1
	}
	return i
}

// helix walks the spiral from the bottom, calling plot once per step.
// Height is derived from the step count, not accumulated, so every pass
// takes exactly SpiralSteps steps.
func helix(plot func(x, y, z int)) {
	t := 0.0
	for n := 0; n < SpiralSteps; n++ {
		z := float64(n) * spiralDZ
		x := spiralRadius*math.Cos(t) + spiralCenter
		y := spiralRadius*math.Sin(t) + spiralCenter
		plot(gridCoord(x), gridCoord(y), gridCoord(z))

		t += spiralDT
		if t >= 2*math.Pi {
			t = 0
		}
	}
}

// Spiral draws a tightly wound helix in rotating color, then walks the same
// path again writing black.
func Spiral(cv *Canvas, niters int) {
	pal := pick(cv.Palettes.Spiral, palette.Cool)
	ci := 0

	for i := 0; i < niters; i++ {
		helix(func(x, y, z int) {
			cv.Buf.Set(x, y, z, pal.At(ci))
			cv.frame(spiralHold)
			ci++
		})
		helix(func(x, y, z int) {
			cv.Buf.Set(x, y, z, voxel.Black)
			cv.frame(spiralHold)
		})
	}
}

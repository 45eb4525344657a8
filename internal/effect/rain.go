package effect

import (
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	rainMaxDrops  = 3
	rainFallSteps = voxel.Size + 3
	rainSpawnHold = 200 * time.Millisecond
	rainFallHold  = 100 * time.Millisecond
)

// Rain drops up to three random palette colors on the top layer, then lets
// them fall through the cube. Each drop is dimmed by four bits half the time.
func Rain(cv *Canvas, iterations int) {
	pal := pick(cv.Palettes.Rain, palette.Compact)
	top := voxel.Size - 1

	for ii := 0; ii < iterations; ii++ {
		n := cv.Rand.IntN(rainMaxDrops + 1)
		for i := 0; i < n; i++ {
			col := pal.At(cv.Rand.IntN(pal.Len()))
			var atten uint
			if cv.Rand.Uint32()&4 != 0 {
				atten = 4
			}
			x := cv.Rand.IntN(voxel.Size)
			y := cv.Rand.IntN(voxel.Size)
			cv.Buf.Set(x, y, top, col.Dim(atten))
		}
		cv.frame(rainSpawnHold)

		for i := 0; i < rainFallSteps; i++ {
			Shift(cv.Buf, AxisZ, Down)
			cv.frame(rainFallHold)
		}
	}
}

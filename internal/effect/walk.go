package effect

import (
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	walkHold    = 50 * time.Millisecond
	channelHold = 500 * time.Millisecond
	walkLevel   = 63
)

var walkChannels = [3]voxel.Color{{R: walkLevel}, {G: walkLevel}, {B: walkLevel}}

// Walk is a wiring check: one voxel at a time in x, y, z order, then the
// whole cube on each channel in turn.
func Walk(cv *Canvas, niters int) {
	white := voxel.Color{R: walkLevel, G: walkLevel, B: walkLevel}
	for it := 0; it < niters; it++ {
		for z := 0; z < voxel.Size; z++ {
			for y := 0; y < voxel.Size; y++ {
				for x := 0; x < voxel.Size; x++ {
					cv.Buf.Set(x, y, z, white)
					cv.frame(walkHold)
					cv.Buf.Set(x, y, z, voxel.Black)
				}
			}
		}
		for _, c := range walkChannels {
			fill(cv.Buf, c)
			cv.frame(channelHold)
		}
		fill(cv.Buf, voxel.Black)
		cv.Buf.Commit()
	}
}

func fill(buf voxel.Buffer, c voxel.Color) {
	for z := 0; z < voxel.Size; z++ {
		for y := 0; y < voxel.Size; y++ {
			for x := 0; x < voxel.Size; x++ {
				buf.Set(x, y, z, c)
			}
		}
	}
}

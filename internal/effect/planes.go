package effect

import (
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	planeHold   = 100 * time.Millisecond
	phaseHold   = 400 * time.Millisecond
	planeBlocks = 6
)

// Sweep is one phase of the planes effect: a solid plane perpendicular to
// Axis stepped from one face to the other.
type Sweep struct {
	Axis Axis
	Dir  Direction
}

// Sweeps is the fixed phase order within every block of six colors.
var Sweeps = [6]Sweep{
	{AxisZ, Up},
	{AxisY, Up},
	{AxisY, Down},
	{AxisX, Up},
	{AxisX, Down},
	{AxisZ, Down},
}

// positions returns the plane positions along the axis, in sweep order.
func (s Sweep) positions() [voxel.Size]int {
	var p [voxel.Size]int
	for i := range p {
		if s.Dir == Down {
			p[i] = voxel.Size - 1 - i
		} else {
			p[i] = i
		}
	}
	return p
}

func fillPlane(buf voxel.Buffer, axis Axis, pos int, c voxel.Color) {
	for a := 0; a < voxel.Size; a++ {
		for b := 0; b < voxel.Size; b++ {
			switch axis {
			case AxisZ:
				buf.Set(a, b, pos, c)
			case AxisY:
				buf.Set(b, pos, a, c)
			case AxisX:
				buf.Set(pos, b, a, c)
			}
		}
	}
}

// Planes wipes solid colors through the cube from each face in turn,
// taking one palette entry per phase. A palette shorter than 36 entries
// wraps around.
func Planes(cv *Canvas, niters int) {
	pal := pick(cv.Palettes.Planes, palette.Cool)

	for m := 0; m < niters; m++ {
		for l := 0; l < planeBlocks; l++ {
			for phase, s := range Sweeps {
				col := pal.At(l*len(Sweeps) + phase)
				for _, pos := range s.positions() {
					fillPlane(cv.Buf, s.Axis, pos, col)
					cv.frame(planeHold)
				}
				cv.hold(phaseHold)
			}
		}
	}
}

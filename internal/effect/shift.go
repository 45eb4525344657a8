package effect

import "github.com/coreman2200/funtimes-cube4/internal/voxel"

type Axis int

const (
	AxisZ Axis = iota // layering axis
	AxisY
	AxisX
)

type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

// Shift moves the whole volume one layer along axis, leaving a copy dimmed
// by two bits in the vacated layer. Only AxisZ/Down moves anything; every
// other axis and direction is a no-op.
//
// Layers are walked bottom-up, so each layer is overwritten by the one
// above it and only the top layer keeps the dimmed trail. Whatever sat in
// layer 0 falls off the cube.
func Shift(buf voxel.Buffer, axis Axis, dir Direction) {
	if axis != AxisZ || dir != Down {
		return
	}
	for k := 0; k < voxel.Size; k++ {
		for i := 0; i < voxel.Size; i++ {
			for j := 0; j < voxel.Size; j++ {
				c := buf.Get(i, j, k)
				if k > 0 {
					buf.Set(i, j, k-1, c)
				}
				buf.Set(i, j, k, c.Dim(2))
			}
		}
	}
}

package voxel

// Serpentine describes how the LED strip snakes through the cube.
type Serpentine struct {
	XFlipEveryRow   bool
	YFlipEveryLayer bool
}

// Layout maps voxel coordinates onto the linear LED strip. Layers run
// along Z, rows along Y, and X is the fastest-moving index.
type Layout struct {
	Order Serpentine
}

// Index maps x,y,z -> linear LED index (0..Count-1)
func (l Layout) Index(x, y, z int) int {
	yy := y
	xx := x
	if (y%2 == 1) && l.Order.XFlipEveryRow {
		xx = Size - 1 - x
	}
	if l.Order.YFlipEveryLayer && (z%2 == 1) {
		yy = Size - 1 - y
	}
	perLayer := Size * Size
	return z*perLayer + yy*Size + xx
}

func (l Layout) Count() int {
	return Count
}

// RGB encodes colors (in Cube storage order) as strip-ordered RGB bytes.
func (l Layout) RGB(colors []Color, dst []byte) []byte {
	if cap(dst) < Count*3 {
		dst = make([]byte, Count*3)
	}
	dst = dst[:Count*3]
	for z := 0; z < Size; z++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				c := colors[offset(x, y, z)]
				i := l.Index(x, y, z) * 3
				dst[i+0] = c.R
				dst[i+1] = c.G
				dst[i+2] = c.B
			}
		}
	}
	return dst
}

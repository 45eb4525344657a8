package voxel

import "image/color"

// Channel offsets inside a packed voxel word. The display driver unpacks
// red from the low byte, so this order is fixed.
const (
	RED_OFFSET   uint8 = 0x00
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x10
)

// Color is one voxel's channel triple. Values are small (the palettes stay
// under 6 significant bits); led.Levels scales them for output.
type Color struct {
	R, G, B uint8
}

var Black = Color{}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

// Pack returns r | g<<8 | b<<16.
func (c Color) Pack() uint32 {
	var v uint32
	v = setcolor(v, c.R, RED_OFFSET)
	v = setcolor(v, c.G, GREEN_OFFSET)
	v = setcolor(v, c.B, BLUE_OFFSET)
	return v
}

// Unpack is the inverse of Pack. Bits above the blue byte are ignored.
func Unpack(v uint32) Color {
	return Color{
		R: getcolor(v, RED_OFFSET),
		G: getcolor(v, GREEN_OFFSET),
		B: getcolor(v, BLUE_OFFSET),
	}
}

// Dim right-shifts every channel by n bits.
func (c Color) Dim(n uint) Color {
	return Color{R: c.R >> n, G: c.G >> n, B: c.B >> n}
}

func (c Color) IsBlack() bool {
	return c == Black
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

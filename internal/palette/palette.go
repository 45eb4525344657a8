// Package palette holds the fixed color tables the effects cycle through.
package palette

import (
	"fmt"
	"strings"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// Palette is an immutable, ordered color table.
type Palette struct {
	name   string
	colors []voxel.Color
}

func newPalette(name string, r, g, b []uint8) Palette {
	if len(r) != len(g) || len(g) != len(b) {
		panic("palette " + name + ": channel tables differ in length")
	}
	p := Palette{name: name, colors: make([]voxel.Color, len(r))}
	for i := range r {
		p.colors[i] = voxel.Color{R: r[i], G: g[i], B: b[i]}
	}
	return p
}

func (p Palette) Name() string { return p.name }
func (p Palette) Len() int     { return len(p.colors) }

// At returns entry i modulo the palette length; negative indices wrap too.
func (p Palette) At(i int) voxel.Color {
	n := len(p.colors)
	if n == 0 {
		return voxel.Black
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.colors[i]
}

var (
	// Triangle walks the edges of the RGB triangle.
	Triangle = newPalette("triangle",
		[]uint8{0, 3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 27, 24, 21, 18, 15, 12, 9, 6, 3, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 0},
		[]uint8{30, 27, 24, 21, 18, 15, 12, 9, 6, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			3, 6, 9, 12, 15, 18, 21, 24, 27},
		[]uint8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 6, 9, 12, 15, 18, 21, 24, 27, 30,
			27, 24, 21, 18, 15, 12, 9, 6, 3},
	)

	// Compact is a 7-stop subset of Triangle. Rain picks from it.
	Compact = newPalette("compact",
		[]uint8{0, 15, 30, 15, 0, 0, 0},
		[]uint8{30, 15, 0, 0, 0, 15, 30},
		[]uint8{0, 0, 0, 15, 30, 15, 0},
	)

	Warm = newPalette("warm",
		[]uint8{31, 31, 31, 31, 29, 28, 26, 24, 22, 20, 18, 15, 14, 12, 10, 9, 7,
			7, 6, 6, 6, 7, 9, 10, 12, 15, 17, 20, 23, 25, 28, 30, 31, 31,
			31, 31},
		[]uint8{7, 7, 7, 8, 8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 11, 11, 11,
			12, 11, 11, 11, 11, 11, 10, 10, 9, 9, 8, 8, 7, 7, 7, 7, 6,
			6, 7},
		[]uint8{12, 10, 8, 7, 6, 5, 4, 4, 4, 4, 4, 4, 5, 6, 7, 9, 10,
			12, 14, 16, 18, 19, 21, 22, 24, 24, 25, 25, 24, 23, 22, 21, 19, 17,
			15, 13},
	)

	// Cool is the default gradient for planes and spiral.
	Cool = newPalette("cool",
		[]uint8{17, 16, 16, 15, 14, 13, 12, 11, 10, 8, 7, 6, 5, 4, 3, 2, 1,
			1, 0, 0, 0, 1, 1, 2, 4, 5, 7, 9, 10, 12, 14, 15, 16, 17,
			17, 17},
		[]uint8{2, 3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
			5, 5, 4, 4, 4, 3, 3, 3, 3, 2, 2, 2, 2, 2},
		[]uint8{5, 4, 3, 2, 1, 1, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 4,
			5, 6, 7, 9, 10, 11, 12, 12, 13, 13, 13, 13, 12, 12, 11, 10, 8,
			7, 6},
	)
)

var all = []Palette{Triangle, Compact, Warm, Cool}

// Lookup resolves a palette by (case-insensitive) name.
func Lookup(name string) (Palette, error) {
	for _, p := range all {
		if strings.EqualFold(p.name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("unknown palette %q", name)
}

func Names() []string {
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = p.name
	}
	return out
}

// Package effect computes the cube animations. Every effect draws through
// an injected Canvas and runs to completion once started.
package effect

import (
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/clock"
	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// Source is the randomness an effect may draw on. *math/rand/v2.Rand
// satisfies it.
type Source interface {
	IntN(n int) int
	Uint32() uint32
}

// Palettes overrides the table each effect draws from. Zero values fall
// back to the defaults.
type Palettes struct {
	Rain   palette.Palette
	Planes palette.Palette
	Spiral palette.Palette
}

func pick(p, def palette.Palette) palette.Palette {
	if p.Len() == 0 {
		return def
	}
	return p
}

type Canvas struct {
	Buf      voxel.Buffer
	Clock    clock.Clock
	Rand     Source
	Palettes Palettes
}

// frame commits the buffer and holds it for d.
func (cv *Canvas) frame(d time.Duration) {
	cv.Buf.Commit()
	cv.hold(d)
}

func (cv *Canvas) hold(d time.Duration) {
	if cv.Clock != nil {
		cv.Clock.Wait(d)
	}
}

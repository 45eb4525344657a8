package effect

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/coreman2200/funtimes-cube4/internal/clock"
	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grid [voxel.Size][voxel.Size][voxel.Size]voxel.Color

type write struct {
	x, y, z int
	c       voxel.Color
	commit  int // commits issued before this write
}

// fakeBuffer records every access and snapshots the grid on each commit.
type fakeBuffer struct {
	cells      grid
	writes     []write
	frames     []grid
	outOfRange []voxel.Coord
}

func (b *fakeBuffer) Get(x, y, z int) voxel.Color {
	if !voxel.InRange(x, y, z) {
		b.outOfRange = append(b.outOfRange, voxel.Coord{X: x, Y: y, Z: z})
		return voxel.Black
	}
	return b.cells[x][y][z]
}

func (b *fakeBuffer) Set(x, y, z int, c voxel.Color) {
	b.writes = append(b.writes, write{x, y, z, c, len(b.frames)})
	if !voxel.InRange(x, y, z) {
		b.outOfRange = append(b.outOfRange, voxel.Coord{X: x, Y: y, Z: z})
		return
	}
	b.cells[x][y][z] = c
}

func (b *fakeBuffer) Commit() {
	b.frames = append(b.frames, b.cells)
}

func (b *fakeBuffer) allBlack() bool {
	for x := range b.cells {
		for y := range b.cells[x] {
			for z := range b.cells[x][y] {
				if !b.cells[x][y][z].IsBlack() {
					return false
				}
			}
		}
	}
	return true
}

// script replays fixed random draws.
type script struct {
	t    *testing.T
	ints []int
	u32  []uint32
}

func (s *script) IntN(n int) int {
	require.NotEmpty(s.t, s.ints, "script ran out of ints")
	v := s.ints[0]
	s.ints = s.ints[1:]
	require.Less(s.t, v, n)
	return v
}

func (s *script) Uint32() uint32 {
	require.NotEmpty(s.t, s.u32, "script ran out of uint32s")
	v := s.u32[0]
	s.u32 = s.u32[1:]
	return v
}

func newCanvas(src Source) (*Canvas, *fakeBuffer, *clock.Virtual) {
	buf := &fakeBuffer{}
	clk := &clock.Virtual{}
	return &Canvas{Buf: buf, Clock: clk, Rand: src}, buf, clk
}

func TestShiftMovesLayersDownAndDimsTop(t *testing.T) {
	buf := &fakeBuffer{}
	var before grid
	for x := 0; x < voxel.Size; x++ {
		for y := 0; y < voxel.Size; y++ {
			for z := 0; z < voxel.Size; z++ {
				c := voxel.Color{R: uint8(4 * (x + 1)), G: uint8(8 * (y + 1)), B: uint8(16 + z)}
				buf.cells[x][y][z] = c
				before[x][y][z] = c
			}
		}
	}

	Shift(buf, AxisZ, Down)

	assert.Empty(t, buf.outOfRange)
	for x := 0; x < voxel.Size; x++ {
		for y := 0; y < voxel.Size; y++ {
			for z := 0; z < voxel.Size-1; z++ {
				assert.Equal(t, before[x][y][z+1], buf.cells[x][y][z], "(%d,%d,%d)", x, y, z)
			}
			top := before[x][y][voxel.Size-1]
			assert.Equal(t, voxel.Color{R: top.R >> 2, G: top.G >> 2, B: top.B >> 2}, buf.cells[x][y][voxel.Size-1])
		}
	}
}

func TestShiftSingleVoxelTrail(t *testing.T) {
	buf := &fakeBuffer{}
	buf.cells[1][2][3] = voxel.Color{R: 16, G: 8, B: 31}

	Shift(buf, AxisZ, Down)
	assert.Equal(t, voxel.Color{R: 16, G: 8, B: 31}, buf.cells[1][2][2])
	assert.Equal(t, voxel.Color{R: 4, G: 2, B: 7}, buf.cells[1][2][3])

	Shift(buf, AxisZ, Down)
	assert.Equal(t, voxel.Color{R: 16, G: 8, B: 31}, buf.cells[1][2][1])
	assert.Equal(t, voxel.Color{R: 4, G: 2, B: 7}, buf.cells[1][2][2])
	assert.Equal(t, voxel.Color{R: 1, G: 0, B: 1}, buf.cells[1][2][3])
}

func TestShiftBottomLayerFallsOff(t *testing.T) {
	buf := &fakeBuffer{}
	buf.cells[0][0][0] = voxel.Color{G: 20}
	Shift(buf, AxisZ, Down)
	assert.Empty(t, buf.outOfRange)
	assert.True(t, buf.allBlack())
}

func TestShiftUndefinedCasesAreNoops(t *testing.T) {
	for _, tc := range []struct {
		name string
		axis Axis
		dir  Direction
	}{
		{"y", AxisY, Down},
		{"x", AxisX, Down},
		{"unknown", Axis(7), Down},
		{"z up", AxisZ, Up},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := &fakeBuffer{}
			buf.cells[2][2][2] = voxel.Color{R: 9}
			Shift(buf, tc.axis, tc.dir)
			assert.Empty(t, buf.writes)
			assert.Equal(t, voxel.Color{R: 9}, buf.cells[2][2][2])
		})
	}
}

func TestRainWithoutDropsOnlyDecays(t *testing.T) {
	cv, buf, clk := newCanvas(&script{t: t, ints: []int{0}})
	buf.cells[0][0][3] = voxel.Color{R: 16}

	Rain(cv, 1)

	require.Len(t, buf.frames, 1+rainFallSteps)
	assert.Equal(t, 8, len(buf.frames))
	assert.Equal(t, voxel.Color{R: 16}, buf.frames[0][0][0][3])
	for _, w := range buf.writes {
		assert.GreaterOrEqual(t, w.commit, 1, "no writes before the spawn commit")
	}
	assert.True(t, buf.allBlack())
	assert.Equal(t, 200*time.Millisecond+7*100*time.Millisecond, clk.Now())
}

func TestRainPlacesDropsOnTopLayer(t *testing.T) {
	src := &script{
		t:    t,
		ints: []int{2, 2, 1, 3, 5, 0, 0},
		u32:  []uint32{4, 3},
	}
	cv, buf, _ := newCanvas(src)

	Rain(cv, 1)

	first := buf.frames[0]
	assert.Equal(t, palette.Compact.At(2).Dim(4), first[1][3][3])
	assert.Equal(t, palette.Compact.At(5), first[0][0][3])

	second := buf.frames[1]
	assert.Equal(t, palette.Compact.At(5), second[0][0][2])
	assert.Equal(t, palette.Compact.At(5).Dim(2), second[0][0][3])
	assert.Empty(t, src.ints)
	assert.Empty(t, src.u32)
}

func TestPlanesCommitsAndPaletteOrder(t *testing.T) {
	cv, buf, clk := newCanvas(nil)

	Planes(cv, 1)

	require.Len(t, buf.frames, 144)
	assert.Equal(t, 144*planeHold+36*phaseHold, clk.Now())

	perCommit := map[int][]write{}
	for _, w := range buf.writes {
		perCommit[w.commit] = append(perCommit[w.commit], w)
	}
	for c := 0; c < 144; c++ {
		phase := c / voxel.Size
		s := Sweeps[phase%len(Sweeps)]
		pos := s.positions()[c%voxel.Size]
		ws := perCommit[c]
		require.Len(t, ws, voxel.Size*voxel.Size, "commit %d", c)
		for _, w := range ws {
			assert.Equal(t, palette.Cool.At(phase), w.c, "commit %d", c)
			var along int
			switch s.Axis {
			case AxisZ:
				along = w.z
			case AxisY:
				along = w.y
			case AxisX:
				along = w.x
			}
			require.Equal(t, pos, along, "commit %d phase %d", c, phase)
		}
	}
}

func TestPlanesPhaseOrder(t *testing.T) {
	assert.Equal(t, [6]Sweep{
		{AxisZ, Up}, {AxisY, Up}, {AxisY, Down}, {AxisX, Up}, {AxisX, Down}, {AxisZ, Down},
	}, Sweeps)
	assert.Equal(t, [voxel.Size]int{3, 2, 1, 0}, Sweep{AxisX, Down}.positions())
	assert.Equal(t, [voxel.Size]int{0, 1, 2, 3}, Sweep{AxisZ, Up}.positions())
}

func TestPlanesHonoursPaletteOverride(t *testing.T) {
	cv, buf, _ := newCanvas(nil)
	cv.Palettes.Planes = palette.Warm
	Planes(cv, 1)
	assert.Equal(t, palette.Warm.At(35), buf.frames[143][0][0][0])
}

func TestPlanesShortPaletteWraps(t *testing.T) {
	for _, pal := range []palette.Palette{palette.Compact, palette.Triangle} {
		cv, buf, _ := newCanvas(nil)
		cv.Palettes.Planes = pal
		Planes(cv, 1)
		require.Len(t, buf.frames, 144, pal.Name())
		// phase 8 is block 1, Y- sweep
		assert.Equal(t, pal.At(8), buf.frames[8*4][0][3][0], pal.Name())
		assert.Equal(t, pal.At(35), buf.frames[143][0][0][0], pal.Name())
	}
}

func TestSpiralStepCount(t *testing.T) {
	assert.Equal(t, 800, SpiralSteps)
}

func TestSpiralDrawThenErase(t *testing.T) {
	cv, buf, clk := newCanvas(nil)

	Spiral(cv, 1)

	require.Len(t, buf.frames, 2*SpiralSteps)
	assert.Equal(t, time.Duration(2*SpiralSteps)*spiralHold, clk.Now())
	assert.Empty(t, buf.outOfRange)

	require.Len(t, buf.writes, 2*SpiralSteps)
	assert.Equal(t, write{3, 2, 0, palette.Cool.At(0), 0}, buf.writes[0])

	touched := map[voxel.Coord]bool{}
	for i, w := range buf.writes {
		if i < SpiralSteps {
			assert.Equal(t, palette.Cool.At(i), w.c)
			continue
		}
		assert.Equal(t, voxel.Black, w.c)
		touched[voxel.Coord{X: w.x, Y: w.y, Z: w.z}] = true
		draw := buf.writes[i-SpiralSteps]
		assert.Equal(t, [3]int{draw.x, draw.y, draw.z}, [3]int{w.x, w.y, w.z}, "erase retraces step %d", i-SpiralSteps)
	}
	for c := range touched {
		assert.True(t, buf.cells[c.X][c.Y][c.Z].IsBlack())
	}
	assert.True(t, buf.allBlack())
	assert.NotEmpty(t, touched)
}

func TestSpiralColorCarriesAcrossIterations(t *testing.T) {
	cv, buf, _ := newCanvas(nil)
	Spiral(cv, 2)
	require.Len(t, buf.writes, 4*SpiralSteps)
	assert.Equal(t, palette.Cool.At(SpiralSteps), buf.writes[2*SpiralSteps].c)
}

func TestSpiralClampsHeight(t *testing.T) {
	maxZ := 0
	helix(func(x, y, z int) {
		if z > maxZ {
			maxZ = z
		}
	})
	assert.Equal(t, voxel.Size-1, maxZ)
}

func TestEffectsStayInRange(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		r := rand.New(rand.NewPCG(seed, seed*7919))
		cv, buf, _ := newCanvas(r)
		cv.Buf.Set(r.IntN(4), r.IntN(4), r.IntN(4), voxel.Color{R: 31, G: 31, B: 31})
		Rain(cv, 1+r.IntN(6))
		Planes(cv, 1)
		Spiral(cv, 1)
		Walk(cv, 1)
		assert.Empty(t, buf.outOfRange, "seed %d", seed)
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"planes", "rain", "spiral", "walk"}, Names())
	f, ok := Lookup("rain")
	require.True(t, ok)
	assert.NotNil(t, f)
	_, ok = Lookup("fireworks")
	assert.False(t, ok)
}

func TestWalkVisitsEveryVoxelOnce(t *testing.T) {
	cv, buf, clk := newCanvas(nil)
	Walk(cv, 1)

	require.Len(t, buf.frames, voxel.Count+3+1)
	for i := 0; i < voxel.Count; i++ {
		lit := 0
		f := buf.frames[i]
		for x := range f {
			for y := range f[x] {
				for z := range f[x][y] {
					if !f[x][y][z].IsBlack() {
						lit++
					}
				}
			}
		}
		assert.Equal(t, 1, lit, "frame %d", i)
	}
	assert.Equal(t, voxel.Color{R: 63}, buf.frames[voxel.Count][3][3][3])
	assert.Equal(t, voxel.Color{B: 63}, buf.frames[voxel.Count+2][0][0][0])
	assert.True(t, buf.allBlack())
	assert.Equal(t, voxel.Count*walkHold+3*channelHold, clk.Now())
}

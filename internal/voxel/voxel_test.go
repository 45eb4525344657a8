package voxel_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	. "github.com/coreman2200/funtimes-cube4/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var TestRGBIsExpectedWord = []struct {
	R, G, B uint8
	Expect  uint32
}{
	{0x11, 0x22, 0x33, 0x00332211},
	{0x1F, 0x00, 0x00, 0x0000001F},
	{0x00, 0x1F, 0x00, 0x00001F00},
	{0x00, 0x00, 0x1F, 0x001F0000},
	{0xFF, 0xFF, 0xFF, 0x00FFFFFF},
}

func TestColorPack(t *testing.T) {
	for k, v := range TestRGBIsExpectedWord {
		t.Run("Given RGB"+strconv.Itoa(k), func(t *testing.T) {
			col := Color{R: v.R, G: v.G, B: v.B}
			assert.Equal(t, v.Expect, col.Pack())
			assert.Equal(t, col, Unpack(v.Expect))
		})
	}
}

func TestUnpackIgnoresHighByte(t *testing.T) {
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, Unpack(0xAB030201))
}

func TestColorDim(t *testing.T) {
	c := Color{R: 31, G: 16, B: 3}
	assert.Equal(t, Color{R: 7, G: 4, B: 0}, c.Dim(2))
	assert.Equal(t, Color{R: 1, G: 1, B: 0}, c.Dim(4))
	assert.Equal(t, c, c.Dim(0))
}

type captureSink struct {
	frames []Frame
	err    error
}

func (s *captureSink) WriteFrame(f *Frame) error {
	cp := *f
	cp.RGB = append([]byte(nil), f.RGB...)
	s.frames = append(s.frames, cp)
	return s.err
}

func TestCubeOutOfRange(t *testing.T) {
	c := NewCube(Layout{})
	c.Set(0, 0, -1, Color{R: 9})
	c.Set(4, 0, 0, Color{R: 9})
	c.Set(0, 4, 0, Color{R: 9})
	for _, v := range c.Snapshot() {
		assert.True(t, v.IsBlack())
	}
	assert.Equal(t, Black, c.Get(0, 0, -1))
	assert.Equal(t, Black, c.Get(3, 3, 4))
}

func TestCubeCommitSnapshotsFrame(t *testing.T) {
	sink := &captureSink{}
	c := NewCube(Layout{}, sink)
	c.Now = func() time.Duration { return 5 * time.Millisecond }

	c.Set(1, 2, 3, Color{R: 4, G: 5, B: 6})
	c.Commit()
	c.Set(1, 2, 3, Black)

	require.Len(t, sink.frames, 1)
	f := sink.frames[0]
	assert.Equal(t, uint64(1), f.Seq)
	assert.Equal(t, 5*time.Millisecond, f.Elapsed)
	assert.Equal(t, Color{R: 4, G: 5, B: 6}, f.Voxel(1, 2, 3))
	i := Layout{}.Index(1, 2, 3) * 3
	assert.Equal(t, []byte{4, 5, 6}, f.RGB[i:i+3])
	assert.Equal(t, uint64(1), c.Seq())
}

func TestCubeSinkFailureIsFatal(t *testing.T) {
	boom := errors.New("spi gone")
	c := NewCube(Layout{}, &captureSink{err: boom})
	var got error
	c.Fatal = func(err error) { got = err }
	c.Commit()
	assert.ErrorIs(t, got, boom)
}

func TestCubeCloseBlanksOnce(t *testing.T) {
	sink := &captureSink{}
	c := NewCube(Layout{}, sink)
	c.Set(0, 0, 0, Color{G: 3})
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	c.Commit()

	require.Len(t, sink.frames, 1)
	for _, v := range sink.frames[0].Voxels {
		assert.True(t, v.IsBlack())
	}
}

func TestLayoutSerpentine(t *testing.T) {
	plain := Layout{}
	assert.Equal(t, 0, plain.Index(0, 0, 0))
	assert.Equal(t, 5, plain.Index(1, 1, 0))
	assert.Equal(t, 63, plain.Index(3, 3, 3))

	snake := Layout{Order: Serpentine{XFlipEveryRow: true, YFlipEveryLayer: true}}
	assert.Equal(t, 7, snake.Index(0, 1, 0))
	assert.Equal(t, 16+12, snake.Index(0, 0, 1))

	seen := map[int]bool{}
	for z := 0; z < Size; z++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				i := snake.Index(x, y, z)
				assert.False(t, seen[i], "index %d reused", i)
				seen[i] = true
			}
		}
	}
	assert.Len(t, seen, snake.Count())
}

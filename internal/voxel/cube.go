package voxel

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Size  = 4
	Count = Size * Size * Size
)

// Buffer is what the effects draw into. Writes are buffered until Commit.
type Buffer interface {
	Get(x, y, z int) Color
	Set(x, y, z int, c Color)
	Commit()
}

type Coord struct{ X, Y, Z int }

func (c Coord) Valid() bool {
	return InRange(c.X, c.Y, c.Z)
}

func InRange(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}

func offset(x, y, z int) int {
	return x + Size*(y+Size*z)
}

// Frame is one committed snapshot.
type Frame struct {
	Seq     uint64
	Elapsed time.Duration
	Voxels  [Count]Color
	// RGB is the strip-ordered encoding from the cube's Layout.
	RGB []byte
}

func (f *Frame) Voxel(x, y, z int) Color {
	if !InRange(x, y, z) {
		return Black
	}
	return f.Voxels[offset(x, y, z)]
}

// Sink receives every committed frame. Implementations must not retain f
// past the call.
type Sink interface {
	WriteFrame(f *Frame) error
}

// Cube is the in-memory voxel buffer. Storage is packed words, one per voxel.
type Cube struct {
	mu     sync.Mutex
	words  [Count]uint32
	layout Layout
	sinks  []Sink
	seq    uint64
	start  time.Time
	closed bool
	frame  Frame

	// Now reports frame timestamps; defaults to wall time since NewCube.
	Now func() time.Duration
	// Fatal handles sink failures. Nothing can recover a dead display, so
	// the default logs and exits.
	Fatal func(err error)
}

func NewCube(l Layout, sinks ...Sink) *Cube {
	c := &Cube{
		layout: l,
		sinks:  sinks,
		start:  time.Now(),
	}
	c.Now = func() time.Duration { return time.Since(c.start) }
	c.Fatal = func(err error) {
		log.Fatal().Err(err).Uint64("frame", c.seq).Msg("display write failed")
	}
	return c
}

func (c *Cube) Attach(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

func (c *Cube) Get(x, y, z int) Color {
	if !InRange(x, y, z) {
		return Black
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Unpack(c.words[offset(x, y, z)])
}

// Set silently drops writes outside the cube.
func (c *Cube) Set(x, y, z int, col Color) {
	if !InRange(x, y, z) {
		return
	}
	c.mu.Lock()
	c.words[offset(x, y, z)] = col.Pack()
	c.mu.Unlock()
}

func (c *Cube) Commit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err := c.flush(); err != nil {
		c.Fatal(err)
	}
}

// Seq returns the number of frames committed so far.
func (c *Cube) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Snapshot copies the current (possibly uncommitted) buffer contents.
func (c *Cube) Snapshot() [Count]Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out [Count]Color
	for i, w := range c.words {
		out[i] = Unpack(w)
	}
	return out
}

// Close blanks the display with one last frame and turns Commit into a
// no-op. The sinks themselves are left open for the caller.
func (c *Cube) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for i := range c.words {
		c.words[i] = 0
	}
	return c.flush()
}

func (c *Cube) flush() error {
	c.seq++
	f := &c.frame
	f.Seq = c.seq
	f.Elapsed = c.Now()
	for i, w := range c.words {
		f.Voxels[i] = Unpack(w)
	}
	f.RGB = c.layout.RGB(f.Voxels[:], f.RGB)
	for _, s := range c.sinks {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

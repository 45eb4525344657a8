package led

import (
	"fmt"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// Output feeds committed cube frames through Levels into a Driver.
type Output struct {
	Driver Driver
	Levels Levels

	buf []byte
}

func NewOutput(d Driver, l Levels) *Output {
	return &Output{Driver: d, Levels: l}
}

func (o *Output) WriteFrame(f *voxel.Frame) error {
	o.buf = o.Levels.Apply(f.RGB, o.buf)
	if err := o.Driver.Write(o.buf); err != nil {
		return fmt.Errorf("frame %d: %w", f.Seq, err)
	}
	return nil
}

package record

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// Writer is a voxel.Sink that appends every frame to a recording.
type Writer struct {
	mu     sync.Mutex
	zw     *zstd.Encoder
	closer io.Closer
	buf    [recordSize]byte
	frames int
}

// Create truncates path and starts a recording in it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, magic); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &Writer{zw: zw}, nil
}

func (w *Writer) WriteFrame(f *voxel.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.zw == nil {
		return fmt.Errorf("recording closed")
	}
	marshalRecord(f, w.buf[:])
	if _, err := w.zw.Write(w.buf[:]); err != nil {
		return fmt.Errorf("record frame %d: %w", f.Seq, err)
	}
	w.frames++
	return nil
}

// Frames reports how many frames have been written.
func (w *Writer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Close flushes the zstd stream and closes the file when Create opened it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.zw == nil {
		return nil
	}
	err := w.zw.Close()
	w.zw = nil
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

type Reader struct {
	dec    *zstd.Decoder
	closer io.Closer
	buf    [recordSize]byte
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

func NewReader(r io.Reader) (*Reader, error) {
	var hdr [len(magic)]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil || string(hdr[:]) != magic {
		return nil, ErrFormat
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &Reader{dec: dec}, nil
}

// Next decodes the next frame. It returns io.EOF at a clean end of stream
// and ErrChecksum when a record does not match its hash.
func (r *Reader) Next() (*voxel.Frame, error) {
	if _, err := io.ReadFull(r.dec, r.buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read record: %w", err)
	}
	b := r.buf[:]
	f := &voxel.Frame{
		Seq:     binary.LittleEndian.Uint64(b[0:]),
		Elapsed: time.Duration(int64(binary.LittleEndian.Uint64(b[8:]))),
	}
	if xxhash.Sum64(b[:bodySize]) != binary.LittleEndian.Uint64(b[bodySize:]) {
		return nil, fmt.Errorf("frame %d: %w", f.Seq, ErrChecksum)
	}
	p := b[16:bodySize]
	for i := range f.Voxels {
		f.Voxels[i] = voxel.Color{R: p[i*3], G: p[i*3+1], B: p[i*3+2]}
	}
	return f, nil
}

// ReadAll drains the recording.
func (r *Reader) ReadAll() ([]*voxel.Frame, error) {
	var out []*voxel.Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func (r *Reader) Close() error {
	r.dec.Close()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

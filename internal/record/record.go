// Package record stores committed frames as a compressed .c4rec stream and
// reads them back for offline inspection.
//
// A recording is the 6 byte magic "C4REC\x01" followed by a single zstd
// stream of fixed-size little-endian records:
//
//	seq   uint64
//	at    int64  // nanoseconds since the cube started
//	rgb   [192]byte // voxel storage order, x fastest then y then z
//	sum   uint64 // xxh64 of the preceding 208 bytes
package record

import (
	"encoding/binary"
	"errors"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	magic      = "C4REC\x01"
	bodySize   = 8 + 8 + voxel.Count*3
	recordSize = bodySize + 8
)

var (
	ErrFormat   = errors.New("record: not a c4rec stream")
	ErrChecksum = errors.New("record: checksum mismatch")
)

func marshalRecord(f *voxel.Frame, b []byte) {
	binary.LittleEndian.PutUint64(b[0:], f.Seq)
	binary.LittleEndian.PutUint64(b[8:], uint64(f.Elapsed.Nanoseconds()))
	p := b[16:]
	for i, c := range f.Voxels {
		p[i*3], p[i*3+1], p[i*3+2] = c.R, c.G, c.B
	}
	binary.LittleEndian.PutUint64(b[bodySize:], xxhash.Sum64(b[:bodySize]))
}

// Fingerprint hashes the voxel colors of f, ignoring sequence and time.
func Fingerprint(f *voxel.Frame) uint64 {
	var b [voxel.Count * 3]byte
	for i, c := range f.Voxels {
		b[i*3], b[i*3+1], b[i*3+2] = c.R, c.G, c.B
	}
	return xxhash.Sum64(b[:])
}

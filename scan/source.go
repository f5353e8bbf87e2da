// Package scan provides the navigational primitives of this module: the
// backward search for the end of central directory record and the forward
// iteration over central directory file headers, both over archives that
// may be too large to hold in memory and too corrupted for archive/zip.
package scan

import (
	"errors"
	"fmt"
	"io"
)

// Source provides ranged access to the bytes of an archive without
// requiring the whole archive in memory.
//
// Range must return the bytes of [start, end) intersected with the
// archive's actual bounds; a reversed or fully out-of-bounds range yields
// an empty slice, not an error. Errors are reserved for genuine I/O
// failures such as a failed network fetch, so the in-memory implementations
// below never return one.
//
// Implementations that juggle multiple backing buffers across calls must
// synchronize internally; callers treat a Source as read-only.
type Source interface {
	// Size returns the total byte count of the archive.
	Size() int64

	// Range returns the bytes in [start, end) intersected with
	// [0, Size()).
	Range(start, end int64) ([]byte, error)
}

// Bytes is an in-memory Source over a byte slice.
type Bytes []byte

var _ Source = Bytes(nil)

// Size returns the length of the slice.
func (b Bytes) Size() int64 {
	return int64(len(b))
}

// Range returns the bytes in [start, end) intersected with the slice's
// bounds. The returned slice aliases b; it is never a copy.
func (b Bytes) Range(start, end int64) ([]byte, error) {
	start, end = ClampRange(start, end, int64(len(b)))
	return b[start:end], nil
}

// ReaderAtSource adapts an io.ReaderAt of known size, such as an *os.File,
// into a Source.
type ReaderAtSource struct {
	r    io.ReaderAt
	size int64
}

var _ Source = (*ReaderAtSource)(nil)

// NewReaderAtSource returns a Source reading from r, which must hold size
// bytes.
func NewReaderAtSource(r io.ReaderAt, size int64) *ReaderAtSource {
	return &ReaderAtSource{r: r, size: size}
}

// Size returns the size given at construction.
func (s *ReaderAtSource) Size() int64 {
	return s.size
}

// Range reads the bytes in [start, end) intersected with [0, Size()).
func (s *ReaderAtSource) Range(start, end int64) ([]byte, error) {
	start, end = ClampRange(start, end, s.size)
	if start == end {
		return nil, nil
	}

	p := make([]byte, end-start)
	switch n, err := s.r.ReadAt(p, start); {
	case err != nil && !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("read range [%d, %d) error: %w", start, end, err)
	default:
		return p[:n], nil
	}
}

// ClampRange intersects the half-open range [start, end) with [0, size),
// collapsing reversed ranges to an empty range.
func ClampRange(start, end, size int64) (int64, int64) {
	start = min(max(start, 0), size)
	end = min(max(end, start), size)
	return start, end
}

// Package view provides a panic-free window over a contiguous byte region.
//
// Every consumer of archive bytes in this module goes through View rather
// than indexing a raw []byte, so that walking untrusted or corrupted input
// can never trip an out-of-bounds access. A View also remembers its offset
// from the buffer it was originally created over, which lets callers recover
// the position of a sub-view within its parent without comparing pointers.
package view

// View is a non-owning, immutable window into a byte buffer.
//
// The zero value is an empty View at offset 0. All methods return new Views;
// none mutate the receiver or the underlying bytes. A View remains valid for
// as long as the buffer it was created over.
type View struct {
	data []byte
	off  int
}

// New returns a View over the entire buffer, at offset 0.
func New(p []byte) View {
	return View{data: p}
}

// Raw returns the underlying bytes.
func (v View) Raw() []byte {
	return v.data
}

// Offset returns the position of the view relative to the buffer it was
// originally created over.
func (v View) Offset() int {
	return v.off
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// IsEmpty reports whether the view contains no bytes.
func (v View) IsEmpty() bool {
	return len(v.data) == 0
}

// Get returns the byte at index i, or false if i is out of bounds.
func (v View) Get(i int) (byte, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}

	return v.data[i], true
}

// Slice returns the sub-view over [start, end), or false if the range is
// ill-formed or out of bounds. There is no partial result on failure.
func (v View) Slice(start, end int) (View, bool) {
	if start < 0 || start > end || end > len(v.data) {
		return View{}, false
	}

	return View{data: v.data[start:end], off: v.off + start}, true
}

// Take returns a view truncated to at most n leading bytes. Unlike Slice,
// Take cannot fail; n is clamped to [0, Len()].
func (v View) Take(n int) View {
	switch {
	case n < 0:
		n = 0
	case n > len(v.data):
		n = len(v.data)
	}

	return View{data: v.data[:n], off: v.off}
}

// Skip returns a view advanced past the first n bytes. Unlike Slice, Skip
// cannot fail; n is clamped to [0, Len()], so skipping past the end yields
// an empty view positioned at the end.
func (v View) Skip(n int) View {
	switch {
	case n < 0:
		n = 0
	case n > len(v.data):
		n = len(v.data)
	}

	return View{data: v.data[n:], off: v.off + n}
}

// Uint16 decodes the first 2 bytes of v as a little-endian uint16, or
// returns false if v is too short. No alignment is assumed.
func Uint16(v View) (uint16, bool) {
	b0, ok0 := v.Get(0)
	b1, ok1 := v.Get(1)
	if !ok0 || !ok1 {
		return 0, false
	}

	return uint16(b0) | uint16(b1)<<8, true
}

// Uint32 decodes the first 4 bytes of v as a little-endian uint32, or
// returns false if v is too short. No alignment is assumed.
func Uint32(v View) (uint32, bool) {
	b0, ok0 := v.Get(0)
	b1, ok1 := v.Get(1)
	b2, ok2 := v.Get(2)
	b3, ok3 := v.Get(3)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return 0, false
	}

	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24, true
}

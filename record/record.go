// Package record provides typed, bounds-checked readers over the four
// structural records of the ZIP format: the end of central directory record
// (EOCD), the central directory file header (CDFH), the local file header
// (LFH), and the data descriptor (DD).
//
// Readers are zero-copy views; constructing one never copies or validates
// the bytes beyond checking that enough of them exist for the fixed-size
// part of the record. In particular signatures are never checked, so
// corrupted or non-conformant archives remain readable for recovery
// purposes.
//
// Fixed-size fields always decode: if the backing bytes are truncated, the
// accessor substitutes the Dead or DeadBeef sentinel instead of failing, so
// a caller scanning a damaged archive sees a recognizable dead pattern
// without having to handle an error on every field. Variable-size fields
// (file name, extra field, comment) report absence instead: a field whose
// declared length does not fit the buffer returns false, while a field
// declared empty returns an empty, non-absent slice.
//
// See https://en.wikipedia.org/wiki/ZIP_(file_format) for the record
// layouts.
package record

import "github.com/nguyengg/zipview/view"

// Sentinels substituted by fixed-field accessors when the backing bytes are
// truncated.
const (
	// Dead is returned in place of an unreadable 16-bit field.
	Dead uint16 = 0xdead
	// DeadBeef is returned in place of an unreadable 32-bit field.
	DeadBeef uint32 = 0xdeadbeef
)

// readU16 decodes the little-endian uint16 at [start, start+2) of v,
// substituting Dead if the bytes are not there.
func readU16(v view.View, start int) uint16 {
	s, ok := v.Slice(start, start+2)
	if !ok {
		return Dead
	}

	u, ok := view.Uint16(s)
	if !ok {
		return Dead
	}

	return u
}

// readU32 decodes the little-endian uint32 at [start, start+4) of v,
// substituting DeadBeef if the bytes are not there.
func readU32(v view.View, start int) uint32 {
	s, ok := v.Slice(start, start+4)
	if !ok {
		return DeadBeef
	}

	u, ok := view.Uint32(s)
	if !ok {
		return DeadBeef
	}

	return u
}

// readField returns the length bytes starting at start, or false when the
// declared length does not fit the backing view. A zero-length field at a
// valid position yields an empty, non-absent slice.
func readField(v view.View, start, length int) ([]byte, bool) {
	s, ok := v.Slice(start, start+length)
	if !ok {
		return nil, false
	}

	return s.Raw(), true
}

// hasDataDescriptor reports whether bit 3 of the general purpose bit flags
// announces a data descriptor record after the file data.
func hasDataDescriptor(flags uint16) bool {
	return flags&0x08 != 0
}

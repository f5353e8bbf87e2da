package record

import "github.com/nguyengg/zipview/view"

// End of central directory record constants.
const (
	// EOCDSignature is the expected value of the EOCD signature field.
	EOCDSignature uint32 = 0x06054b50
	// EOCDMinSize is the size of the fixed part of the record.
	EOCDMinSize = 22
	// EOCDMaxSize is EOCDMinSize plus the longest possible comment.
	EOCDMaxSize = EOCDMinSize + 0xffff
)

// EOCD reads an end of central directory record, the trailer that locates
// and summarizes the central directory.
//
// The reader only guarantees that access to its fields is safe; it does not
// guarantee their integrity.
//
// See https://en.wikipedia.org/wiki/ZIP_(file_format)#End_of_central_directory_record_(EOCD).
//
//	offset  bytes  field
//	     0      4  signature (0x06054b50)
//	     4      2  number of this disk
//	     6      2  disk where central directory starts
//	     8      2  central directory records on this disk
//	    10      2  central directory records in total
//	    12      4  central directory size in bytes
//	    16      4  central directory offset from start of archive
//	    20      2  comment length (n)
//	    22      n  comment
type EOCD struct {
	data view.View
}

// NewEOCD returns a reader over p, or false if p is shorter than
// EOCDMinSize.
//
// Neither the signature nor the comment length are checked, so potentially
// corrupted archives remain readable. The backing view is truncated to
// EOCDMaxSize; an over-long buffer can never make comment-length validation
// accept bytes beyond the format's legal maximum.
func NewEOCD(p []byte) (EOCD, bool) {
	return NewEOCDView(view.New(p))
}

// NewEOCDView is NewEOCD over an existing view, preserving its offset.
func NewEOCDView(v view.View) (EOCD, bool) {
	if v.Len() < EOCDMinSize {
		return EOCD{}, false
	}

	return EOCD{data: v.Take(EOCDMaxSize)}, true
}

// Raw returns the backing bytes.
func (r EOCD) Raw() []byte {
	return r.data.Raw()
}

// Offset returns the position of the record relative to the buffer it was
// read from.
func (r EOCD) Offset() int {
	return r.data.Offset()
}

// Signature returns the signature field, expected to be EOCDSignature.
func (r EOCD) Signature() uint32 {
	return readU32(r.data, 0)
}

// DiskNumber returns the number of this disk.
func (r EOCD) DiskNumber() uint16 {
	return readU16(r.data, 4)
}

// CDStartDisk returns the number of the disk where the central directory
// starts.
func (r EOCD) CDStartDisk() uint16 {
	return readU16(r.data, 6)
}

// CDCountOnDisk returns the number of central directory records on this
// disk.
func (r EOCD) CDCountOnDisk() uint16 {
	return readU16(r.data, 8)
}

// CDCount returns the total number of central directory records.
func (r EOCD) CDCount() uint16 {
	return readU16(r.data, 10)
}

// CDSize returns the size of the central directory in bytes.
func (r EOCD) CDSize() uint32 {
	return readU32(r.data, 12)
}

// CDOffset returns the offset of the start of the central directory,
// relative to the start of the archive.
func (r EOCD) CDOffset() uint32 {
	return readU32(r.data, 16)
}

// CommentLen returns the declared length of the comment field.
func (r EOCD) CommentLen() uint16 {
	return readU16(r.data, 20)
}

// Comment returns the comment field, possibly of length 0, or false if the
// declared length does not fit the backing bytes.
func (r EOCD) Comment() ([]byte, bool) {
	return readField(r.data, EOCDMinSize, int(r.CommentLen()))
}

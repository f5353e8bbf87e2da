package record

import "github.com/nguyengg/zipview/view"

// Local file header constants.
const (
	// LFHSignature is the expected value of the LFH signature field.
	LFHSignature uint32 = 0x04034b50
	// LFHMinSize is the size of the fixed part of the record.
	LFHMinSize = 30
	// LFHMaxSize is LFHMinSize plus the longest possible file name and
	// extra field.
	LFHMaxSize = LFHMinSize + 2*0xffff
)

// LocalFileHeader reads a local file header, the record immediately
// preceding a file's data in the archive. In a well-formed archive its
// fields duplicate the central directory file header; the redundancy exists
// so that files can be recovered from incomplete or corrupted archives.
//
// The reader only guarantees that access to its fields is safe; it does not
// guarantee their integrity.
//
// See https://en.wikipedia.org/wiki/ZIP_(file_format)#Local_file_header.
//
//	offset  bytes  field
//	     0      4  signature (0x04034b50)
//	     4      2  version needed to extract
//	     6      2  general purpose bit flags
//	     8      2  compression method
//	    10      2  last modification time (MS-DOS)
//	    12      2  last modification date (MS-DOS)
//	    14      4  CRC-32
//	    18      4  compressed size
//	    22      4  uncompressed size
//	    26      2  file name length (n)
//	    28      2  extra field length (m)
//	    30      n  file name
//	  30+n      m  extra field
type LocalFileHeader struct {
	data view.View
}

// NewLocalFileHeader returns a reader over p, or false if p is shorter than
// LFHMinSize.
//
// Neither the signature nor the declared lengths of the variable fields are
// checked, so potentially corrupted archives remain readable.
func NewLocalFileHeader(p []byte) (LocalFileHeader, bool) {
	return NewLocalFileHeaderView(view.New(p))
}

// NewLocalFileHeaderView is NewLocalFileHeader over an existing view,
// preserving its offset.
func NewLocalFileHeaderView(v view.View) (LocalFileHeader, bool) {
	if v.Len() < LFHMinSize {
		return LocalFileHeader{}, false
	}

	return LocalFileHeader{data: v}, true
}

// Raw returns the backing bytes.
func (r LocalFileHeader) Raw() []byte {
	return r.data.Raw()
}

// Offset returns the position of the record relative to the buffer it was
// read from.
func (r LocalFileHeader) Offset() int {
	return r.data.Offset()
}

// Signature returns the signature field, expected to be LFHSignature.
func (r LocalFileHeader) Signature() uint32 {
	return readU32(r.data, 0)
}

// ReaderVersion returns the minimum ZIP specification version needed to
// extract, encoded as major*10 + minor.
func (r LocalFileHeader) ReaderVersion() uint16 {
	return readU16(r.data, 4)
}

// Flags returns the general purpose bit flags. Bit 3 (0x08) announces a
// data descriptor record after the file data; when set, the CRC-32 and both
// size fields of this record hold zeroes.
func (r LocalFileHeader) Flags() uint16 {
	return readU16(r.data, 6)
}

// Method returns the compression method; 0 is store, 8 is deflate.
func (r LocalFileHeader) Method() uint16 {
	return readU16(r.data, 8)
}

// ModifiedTime returns the last modification time in MS-DOS format.
func (r LocalFileHeader) ModifiedTime() uint16 {
	return readU16(r.data, 10)
}

// ModifiedDate returns the last modification date in MS-DOS format.
func (r LocalFileHeader) ModifiedDate() uint16 {
	return readU16(r.data, 12)
}

// CRC32 returns the CRC-32 of the uncompressed file data.
func (r LocalFileHeader) CRC32() uint32 {
	return readU32(r.data, 14)
}

// CompressedSize returns the compressed size of the file.
func (r LocalFileHeader) CompressedSize() uint32 {
	return readU32(r.data, 18)
}

// UncompressedSize returns the uncompressed size of the file.
func (r LocalFileHeader) UncompressedSize() uint32 {
	return readU32(r.data, 22)
}

// NameLen returns the declared length of the file name.
func (r LocalFileHeader) NameLen() uint16 {
	return readU16(r.data, 26)
}

// ExtraLen returns the declared length of the extra field.
func (r LocalFileHeader) ExtraLen() uint16 {
	return readU16(r.data, 28)
}

// HasDataDescriptor reports whether the flags announce a data descriptor
// record after the file data.
func (r LocalFileHeader) HasDataDescriptor() bool {
	return hasDataDescriptor(r.Flags())
}

// TotalLen returns the declared total length of the record: the fixed part
// plus the declared lengths of the file name and extra field, whether or
// not those fields actually fit the backing bytes.
func (r LocalFileHeader) TotalLen() int {
	return LFHMinSize + int(r.NameLen()) + int(r.ExtraLen())
}

// Name returns the file name, possibly of length 0, or false if the
// declared length does not fit the backing bytes.
func (r LocalFileHeader) Name() ([]byte, bool) {
	return readField(r.data, LFHMinSize, int(r.NameLen()))
}

// Extra returns the extra field, possibly of length 0, or false if the
// declared length does not fit the backing bytes. The field is divided into
// chunks, each a 16-bit ID code followed by a 16-bit length and that many
// bytes of content.
func (r LocalFileHeader) Extra() ([]byte, bool) {
	return readField(r.data, LFHMinSize+int(r.NameLen()), int(r.ExtraLen()))
}

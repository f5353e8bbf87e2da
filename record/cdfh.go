package record

import "github.com/nguyengg/zipview/view"

// Central directory file header constants.
const (
	// CDFHSignature is the expected value of the CDFH signature field.
	CDFHSignature uint32 = 0x02014b50
	// CDFHMinSize is the size of the fixed part of the record.
	CDFHMinSize = 46
	// CDFHMaxSize is CDFHMinSize plus the longest possible file name,
	// extra field and comment.
	CDFHMaxSize = CDFHMinSize + 3*0xffff
)

// CDFileHeader reads a central directory file header, the per-file metadata
// record in the central directory. Files that were deleted or updated may
// still exist in the archive without appearing in the central directory.
//
// The reader only guarantees that access to its fields is safe; it does not
// guarantee their integrity.
//
// See https://en.wikipedia.org/wiki/ZIP_(file_format)#Central_directory_file_header_(CDFH).
//
//	offset  bytes  field
//	     0      4  signature (0x02014b50)
//	     4      2  version made by
//	     6      2  version needed to extract
//	     8      2  general purpose bit flags
//	    10      2  compression method
//	    12      2  last modification time (MS-DOS)
//	    14      2  last modification date (MS-DOS)
//	    16      4  CRC-32
//	    20      4  compressed size
//	    24      4  uncompressed size
//	    28      2  file name length (n)
//	    30      2  extra field length (m)
//	    32      2  comment length (k)
//	    34      2  disk number where file starts
//	    36      2  internal file attributes
//	    38      4  external file attributes
//	    42      4  relative offset of local file header
//	    46      n  file name
//	  46+n      m  extra field
//	46+n+m      k  comment
type CDFileHeader struct {
	data view.View
}

// NewCDFileHeader returns a reader over p, or false if p is shorter than
// CDFHMinSize.
//
// Neither the signature nor the declared lengths of the variable fields are
// checked, so potentially corrupted archives remain readable.
func NewCDFileHeader(p []byte) (CDFileHeader, bool) {
	return NewCDFileHeaderView(view.New(p))
}

// NewCDFileHeaderView is NewCDFileHeader over an existing view, preserving
// its offset.
func NewCDFileHeaderView(v view.View) (CDFileHeader, bool) {
	if v.Len() < CDFHMinSize {
		return CDFileHeader{}, false
	}

	return CDFileHeader{data: v}, true
}

// Raw returns the backing bytes.
func (r CDFileHeader) Raw() []byte {
	return r.data.Raw()
}

// Offset returns the position of the record relative to the buffer it was
// read from.
func (r CDFileHeader) Offset() int {
	return r.data.Offset()
}

// Signature returns the signature field, expected to be CDFHSignature.
func (r CDFileHeader) Signature() uint32 {
	return readU32(r.data, 0)
}

// CreatorVersion returns the version of the software that created the
// record. The upper byte encodes the host system (0 FAT, 3 UNIX, 10 NTFS,
// 19 OS X); the lower byte encodes the ZIP specification version as
// major*10 + minor.
func (r CDFileHeader) CreatorVersion() uint16 {
	return readU16(r.data, 4)
}

// ReaderVersion returns the minimum ZIP specification version needed to
// extract, encoded as major*10 + minor.
func (r CDFileHeader) ReaderVersion() uint16 {
	return readU16(r.data, 6)
}

// Flags returns the general purpose bit flags. Bit 3 (0x08) announces a
// data descriptor record after the file data.
func (r CDFileHeader) Flags() uint16 {
	return readU16(r.data, 8)
}

// Method returns the compression method; 0 is store, 8 is deflate.
func (r CDFileHeader) Method() uint16 {
	return readU16(r.data, 10)
}

// ModifiedTime returns the last modification time in MS-DOS format.
func (r CDFileHeader) ModifiedTime() uint16 {
	return readU16(r.data, 12)
}

// ModifiedDate returns the last modification date in MS-DOS format.
func (r CDFileHeader) ModifiedDate() uint16 {
	return readU16(r.data, 14)
}

// CRC32 returns the CRC-32 of the uncompressed file data.
func (r CDFileHeader) CRC32() uint32 {
	return readU32(r.data, 16)
}

// CompressedSize returns the compressed size of the file.
func (r CDFileHeader) CompressedSize() uint32 {
	return readU32(r.data, 20)
}

// UncompressedSize returns the uncompressed size of the file.
func (r CDFileHeader) UncompressedSize() uint32 {
	return readU32(r.data, 24)
}

// NameLen returns the declared length of the file name.
func (r CDFileHeader) NameLen() uint16 {
	return readU16(r.data, 28)
}

// ExtraLen returns the declared length of the extra field.
func (r CDFileHeader) ExtraLen() uint16 {
	return readU16(r.data, 30)
}

// CommentLen returns the declared length of the file comment.
func (r CDFileHeader) CommentLen() uint16 {
	return readU16(r.data, 32)
}

// StartDisk returns the number of the disk on which the file starts.
func (r CDFileHeader) StartDisk() uint16 {
	return readU16(r.data, 34)
}

// InternalAttrs returns the internal file attributes.
func (r CDFileHeader) InternalAttrs() uint16 {
	return readU16(r.data, 36)
}

// ExternalAttrs returns the external file attributes, whose meaning depends
// on the host system in CreatorVersion.
func (r CDFileHeader) ExternalAttrs() uint32 {
	return readU32(r.data, 38)
}

// LocalHeaderOffset returns the offset of the corresponding local file
// header, relative to the start of the first disk on which the file occurs.
func (r CDFileHeader) LocalHeaderOffset() uint32 {
	return readU32(r.data, 42)
}

// HasDataDescriptor reports whether the flags announce a data descriptor
// record after the file data.
func (r CDFileHeader) HasDataDescriptor() bool {
	return hasDataDescriptor(r.Flags())
}

// TotalLen returns the declared total length of the record: the fixed part
// plus the declared lengths of the file name, extra field and comment,
// whether or not those fields actually fit the backing bytes.
func (r CDFileHeader) TotalLen() int {
	return CDFHMinSize + int(r.NameLen()) + int(r.ExtraLen()) + int(r.CommentLen())
}

// Name returns the file name, possibly of length 0, or false if the
// declared length does not fit the backing bytes.
func (r CDFileHeader) Name() ([]byte, bool) {
	return readField(r.data, CDFHMinSize, int(r.NameLen()))
}

// Extra returns the extra field, possibly of length 0, or false if the
// declared length does not fit the backing bytes.
func (r CDFileHeader) Extra() ([]byte, bool) {
	return readField(r.data, r.extraPos(), int(r.ExtraLen()))
}

// Comment returns the file comment, possibly of length 0, or false if the
// declared length does not fit the backing bytes.
func (r CDFileHeader) Comment() ([]byte, bool) {
	return readField(r.data, r.commentPos(), int(r.CommentLen()))
}

func (r CDFileHeader) extraPos() int {
	return CDFHMinSize + int(r.NameLen())
}

func (r CDFileHeader) commentPos() int {
	return CDFHMinSize + int(r.NameLen()) + int(r.ExtraLen())
}

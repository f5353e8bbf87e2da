package record

import "github.com/nguyengg/zipview/view"

// Data descriptor constants.
const (
	// DDSignature is the expected value of the optional DD signature
	// field.
	DDSignature uint32 = 0x08074b50
	// DDMinSize is the size of the record without the optional signature.
	DDMinSize = 12
	// DDMaxSize is the size of the record with the optional signature.
	DDMaxSize = 16
)

// DataDescriptor reads a data descriptor, the trailer appended after a
// file's data when the CRC-32 and sizes were unknown at the time the local
// file header was written (bit 3 of its flags is then set and the
// corresponding fields hold zeroes).
//
// The leading signature is optional and a data descriptor carries no other
// self-describing length, so the two variants can only be told apart by
// total size: exactly 12 bytes without a signature, exactly 16 with one.
//
// The reader only guarantees that access to its fields is safe; it does not
// guarantee their integrity.
//
// See https://en.wikipedia.org/wiki/ZIP_(file_format)#Data_descriptor.
//
//	offset  bytes  field
//	     0    0/4  optional signature (0x08074b50)
//	   0/4      4  CRC-32
//	   4/8      4  compressed size
//	  8/12      4  uncompressed size
type DataDescriptor struct {
	data view.View
}

// NewDataDescriptor returns a reader over p, or false if p is not exactly
// DDMinSize or DDMaxSize bytes long.
func NewDataDescriptor(p []byte) (DataDescriptor, bool) {
	return NewDataDescriptorView(view.New(p))
}

// NewDataDescriptorView is NewDataDescriptor over an existing view,
// preserving its offset.
func NewDataDescriptorView(v view.View) (DataDescriptor, bool) {
	if v.Len() != DDMinSize && v.Len() != DDMaxSize {
		return DataDescriptor{}, false
	}

	return DataDescriptor{data: v}, true
}

// Raw returns the backing bytes.
func (r DataDescriptor) Raw() []byte {
	return r.data.Raw()
}

// Offset returns the position of the record relative to the buffer it was
// read from.
func (r DataDescriptor) Offset() int {
	return r.data.Offset()
}

// HasSignature reports whether the record carries the optional signature,
// determined purely from its size.
func (r DataDescriptor) HasSignature() bool {
	return r.data.Len() == DDMaxSize
}

// Signature returns the signature field, expected to be DDSignature, or
// false on the 12-byte variant which has none.
func (r DataDescriptor) Signature() (uint32, bool) {
	if !r.HasSignature() {
		return 0, false
	}

	return readU32(r.data, 0), true
}

// CRC32 returns the CRC-32 of the uncompressed file data.
func (r DataDescriptor) CRC32() uint32 {
	return readU32(r.data, r.fieldPos(0))
}

// CompressedSize returns the compressed size of the file.
func (r DataDescriptor) CompressedSize() uint32 {
	return readU32(r.data, r.fieldPos(4))
}

// UncompressedSize returns the uncompressed size of the file.
func (r DataDescriptor) UncompressedSize() uint32 {
	return readU32(r.data, r.fieldPos(8))
}

// fieldPos shifts the data fields past the signature when it is present.
func (r DataDescriptor) fieldPos(pos int) int {
	if r.HasSignature() {
		return pos + 4
	}

	return pos
}

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCDFileHeader_ShortSlice(t *testing.T) {
	buf := make([]byte, CDFHMinSize-1)
	for length := 0; length < len(buf); length++ {
		_, ok := NewCDFileHeader(buf[:length])
		assert.Falsef(t, ok, "NewCDFileHeader with %d bytes should fail", length)
	}
}

func TestNewCDFileHeader_MinSize(t *testing.T) {
	_, ok := NewCDFileHeader(make([]byte, CDFHMinSize))
	assert.True(t, ok)

	// declared variable lengths that cannot fit do not fail construction.
	buf := make([]byte, CDFHMinSize)
	buf[28], buf[30], buf[32] = 0x01, 0x01, 0x01
	_, ok = NewCDFileHeader(buf)
	assert.True(t, ok)

	buf = make([]byte, CDFHMinSize)
	for i := range buf {
		buf[i] = 0xff
	}
	_, ok = NewCDFileHeader(buf)
	assert.True(t, ok)
}

func TestCDFileHeader_Signature(t *testing.T) {
	buf := make([]byte, CDFHMinSize)
	buf[0], buf[1], buf[2], buf[3] = 0x50, 0x4b, 0x01, 0x02

	r, ok := NewCDFileHeader(buf)
	require.True(t, ok)
	assert.Equal(t, CDFHSignature, r.Signature())

	r, ok = NewCDFileHeader(make([]byte, CDFHMinSize))
	require.True(t, ok)
	assert.Equal(t, uint32(0), r.Signature())
}

func TestCDFileHeader_FixedFields(t *testing.T) {
	buf := make([]byte, CDFHMinSize)

	u16Fields := []struct {
		name  string
		index int
		get   func(r CDFileHeader) uint16
	}{
		{"CreatorVersion", 4, CDFileHeader.CreatorVersion},
		{"ReaderVersion", 6, CDFileHeader.ReaderVersion},
		{"Flags", 8, CDFileHeader.Flags},
		{"Method", 10, CDFileHeader.Method},
		{"ModifiedTime", 12, CDFileHeader.ModifiedTime},
		{"ModifiedDate", 14, CDFileHeader.ModifiedDate},
		{"NameLen", 28, CDFileHeader.NameLen},
		{"ExtraLen", 30, CDFileHeader.ExtraLen},
		{"CommentLen", 32, CDFileHeader.CommentLen},
		{"StartDisk", 34, CDFileHeader.StartDisk},
		{"InternalAttrs", 36, CDFileHeader.InternalAttrs},
	}
	for _, tt := range u16Fields {
		t.Run(tt.name, func(t *testing.T) {
			testAllUint16At(t, buf, tt.index, func(buf []byte, v uint16) {
				r, ok := NewCDFileHeader(buf)
				require.True(t, ok)
				require.Equal(t, v, tt.get(r))
			})
			putU16(buf, tt.index, 0)
		})
	}

	u32Fields := []struct {
		name  string
		index int
		get   func(r CDFileHeader) uint32
	}{
		{"CRC32", 16, CDFileHeader.CRC32},
		{"CompressedSize", 20, CDFileHeader.CompressedSize},
		{"UncompressedSize", 24, CDFileHeader.UncompressedSize},
		{"ExternalAttrs", 38, CDFileHeader.ExternalAttrs},
		{"LocalHeaderOffset", 42, CDFileHeader.LocalHeaderOffset},
	}
	for _, tt := range u32Fields {
		t.Run(tt.name, func(t *testing.T) {
			testSomeUint32At(t, buf, tt.index, func(buf []byte, v uint32) {
				r, ok := NewCDFileHeader(buf)
				require.True(t, ok)
				require.Equal(t, v, tt.get(r))
			})
			putU32(buf, tt.index, 0)
		})
	}
}

func TestCDFileHeader_HasDataDescriptor(t *testing.T) {
	buf := make([]byte, CDFHMinSize)

	r, _ := NewCDFileHeader(buf)
	assert.False(t, r.HasDataDescriptor())

	putU16(buf, 8, 0x08)
	r, _ = NewCDFileHeader(buf)
	assert.True(t, r.HasDataDescriptor())

	putU16(buf, 8, 0xfff7)
	r, _ = NewCDFileHeader(buf)
	assert.False(t, r.HasDataDescriptor())
}

func TestCDFileHeader_TotalLen(t *testing.T) {
	buf := make([]byte, CDFHMinSize)
	putU16(buf, 28, 8)
	putU16(buf, 30, 10)
	putU16(buf, 32, 22)

	// the declared total length stands whether or not the fields fit.
	r, ok := NewCDFileHeader(buf)
	require.True(t, ok)
	assert.Equal(t, CDFHMinSize+40, r.TotalLen())

	putU16(buf, 28, 0xffff)
	putU16(buf, 30, 0xffff)
	putU16(buf, 32, 0xffff)
	r, _ = NewCDFileHeader(buf)
	assert.Equal(t, CDFHMaxSize, r.TotalLen())
}

func TestCDFileHeader_VariableFields(t *testing.T) {
	type accessor struct {
		name  string
		index int
		get   func(r CDFileHeader) ([]byte, bool)
	}
	accessors := []accessor{
		{"Name", 28, CDFileHeader.Name},
		{"Extra", 30, CDFileHeader.Extra},
		{"Comment", 32, CDFileHeader.Comment},
	}

	for _, a := range accessors {
		t.Run(a.name+" zero length is empty, not absent", func(t *testing.T) {
			r, ok := NewCDFileHeader(make([]byte, CDFHMinSize))
			require.True(t, ok)

			field, ok := a.get(r)
			require.True(t, ok)
			assert.Empty(t, field)
		})

		t.Run(a.name+" exact fit", func(t *testing.T) {
			buf := make([]byte, CDFHMinSize)
			buf = append(buf, "Hello, World!"...)
			putU16(buf, a.index, uint16(len(buf)-CDFHMinSize))

			r, ok := NewCDFileHeader(buf)
			require.True(t, ok)

			field, ok := a.get(r)
			require.True(t, ok)
			assert.Equal(t, []byte("Hello, World!"), field)
		})

		t.Run(a.name+" max length", func(t *testing.T) {
			buf := make([]byte, CDFHMinSize+0xffff)
			for i := CDFHMinSize; i < len(buf); i++ {
				buf[i] = 1
			}
			putU16(buf, a.index, 0xffff)

			r, ok := NewCDFileHeader(buf)
			require.True(t, ok)

			field, ok := a.get(r)
			require.True(t, ok)
			assert.Equal(t, buf[CDFHMinSize:], field)
		})

		t.Run(a.name+" declared length past buffer end is absent", func(t *testing.T) {
			buf := make([]byte, CDFHMinSize+0xffff-1)
			for _, length := range []int{1, 2, 255, 256, 4096, 0xfffe, 0xffff} {
				putU16(buf, a.index, uint16(length))

				r, ok := NewCDFileHeader(buf[:CDFHMinSize+length-1])
				require.True(t, ok)

				_, ok = a.get(r)
				require.Falsef(t, ok, "%s with declared length %d over %d available bytes should be absent", a.name, length, length-1)
			}
		})
	}
}

// TestCDFileHeader_AllVariableFields lays out the three variable fields
// back to back and checks each is returned unmodified from its computed
// position.
func TestCDFileHeader_AllVariableFields(t *testing.T) {
	var (
		helloFile    = "Hello, File!"
		helloExtra   = "Hello, Extra!"
		helloComment = "Hello, Comment!"
	)

	buf := make([]byte, CDFHMinSize)
	buf = append(buf, helloFile...)
	buf = append(buf, helloExtra...)
	buf = append(buf, helloComment...)
	putU16(buf, 28, uint16(len(helloFile)))
	putU16(buf, 30, uint16(len(helloExtra)))
	putU16(buf, 32, uint16(len(helloComment)))

	r, ok := NewCDFileHeader(buf)
	require.True(t, ok)

	name, ok := r.Name()
	require.True(t, ok)
	assert.Equal(t, []byte(helloFile), name)

	extra, ok := r.Extra()
	require.True(t, ok)
	assert.Equal(t, []byte(helloExtra), extra)

	comment, ok := r.Comment()
	require.True(t, ok)
	assert.Equal(t, []byte(helloComment), comment)
}

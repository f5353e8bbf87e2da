package record

import "testing"

// putU16 writes v little-endian at buf[index].
func putU16(buf []byte, index int, v uint16) {
	buf[index] = byte(v)
	buf[index+1] = byte(v >> 8)
}

// putU32 writes v little-endian at buf[index].
func putU32(buf []byte, index int, v uint32) {
	buf[index] = byte(v)
	buf[index+1] = byte(v >> 8)
	buf[index+2] = byte(v >> 16)
	buf[index+3] = byte(v >> 24)
}

// testAllUint16At invokes f once for each of the 65536 possible uint16
// values after writing it little-endian at buf[index].
func testAllUint16At(t *testing.T, buf []byte, index int, f func(buf []byte, v uint16)) {
	t.Helper()

	for i := 0; i < 1<<16; i++ {
		putU16(buf, index, uint16(i))
		f(buf, uint16(i))
	}
}

// testSomeUint32At invokes f for a scattering of uint32 values, including 0,
// values near 0, values near the maximum, and the maximum itself, after
// writing each little-endian at buf[index].
func testSomeUint32At(t *testing.T, buf []byte, index int, f func(buf []byte, v uint32)) {
	t.Helper()

	for _, v := range []uint32{0, 1, 2, 255, 256, 65535, 65536, 1<<24 - 1, 1 << 24, 1<<31 - 1, 1 << 31, 1<<32 - 2, 1<<32 - 1} {
		putU32(buf, index, v)
		f(buf, v)
	}

	for v := uint32(0); v < 1<<32-1<<22; v += 1<<22 + 4099 {
		putU32(buf, index, v)
		f(buf, v)
	}
}

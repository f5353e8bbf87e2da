package scan

import (
	"iter"

	"github.com/nguyengg/zipview/record"
	"github.com/nguyengg/zipview/view"
)

// CentralDirectory iterates forward over a contiguous run of central
// directory file headers, advancing by each record's self-declared total
// length.
//
// Records are yielded in on-disk order, which need not match insertion or
// logical order. Nothing is validated, not even signatures: a buffer of
// garbage yields garbage readers until the budget runs out or the remaining
// bytes are too short for another fixed header. The iterator cannot be
// rewound; remember a record's Offset and build a new one to restart.
//
// CentralDirectory is not safe for use across multiple goroutines.
type CentralDirectory struct {
	data      view.View
	remaining int
}

// NewCentralDirectory returns an iterator over p, which should start
// exactly on the boundary of the first record (see record.EOCD.CDOffset and
// record.EOCD.CDSize), yielding at most total records (see
// record.EOCD.CDCount).
func NewCentralDirectory(p []byte, total int) *CentralDirectory {
	return &CentralDirectory{data: view.New(p), remaining: total}
}

// Next returns the next file header, or false once the budget is exhausted
// or the remaining bytes are too short for another fixed header. An early
// stop on a truncated directory is a normal end of iteration, not a
// failure.
//
// Each header's Offset reports its position within the original buffer.
func (c *CentralDirectory) Next() (record.CDFileHeader, bool) {
	if c.remaining == 0 {
		return record.CDFileHeader{}, false
	}

	fh, ok := record.NewCDFileHeaderView(c.data)
	if !ok {
		return record.CDFileHeader{}, false
	}

	// advance past the declared total length even when the variable
	// fields do not actually fit; a truncated directory then ends the
	// iteration on the next construction attempt.
	c.data = c.data.Skip(fh.TotalLen())
	c.remaining--

	return fh, true
}

// All returns the remaining file headers as an iterator.
//
// Don't mix Next and All as they share the same cursor.
func (c *CentralDirectory) All() iter.Seq[record.CDFileHeader] {
	return func(yield func(record.CDFileHeader) bool) {
		for fh, ok := c.Next(); ok; fh, ok = c.Next() {
			if !yield(fh) {
				return
			}
		}
	}
}

package scan

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"iter"

	"github.com/nguyengg/zipview/record"
	"github.com/nguyengg/zipview/view"
)

// ErrEOCDNotFound is returned by LocateEOCD if no end of central directory
// record was found.
var ErrEOCDNotFound = errors.New("end of central directory not found; most likely not a ZIP file")

var eocdSigBytes = make([]byte, 4)

func init() {
	binary.LittleEndian.PutUint32(eocdSigBytes, record.EOCDSignature)
}

// EOCDScanner iterates backward over every potential end of central
// directory record in a buffer.
//
// Candidates are yielded in strictly decreasing position order. A correct
// archive may embed decoy signature bytes inside the comment field of the
// real record, and superseded records may survive in archives with an edit
// history, so every raw signature match is reported and nothing is
// validated. Use LocateEOCD for the record that is most likely
// authoritative.
//
// EOCDScanner is not safe for use across multiple goroutines.
type EOCDScanner struct {
	data view.View
	rpos int
}

// NewEOCDScanner returns a scanner over p, starting at the last position
// from which a minimum-size record could still fit and moving backward.
func NewEOCDScanner(p []byte) *EOCDScanner {
	return &EOCDScanner{data: view.New(p), rpos: record.EOCDMinSize - 1}
}

// Next returns the next candidate, or false when the scan has reached the
// start of the buffer.
//
// Each candidate is read from the suffix of the buffer starting at its
// signature, so its comment may extend all the way to the buffer's end;
// EOCD.Offset reports the candidate's position within the buffer.
func (s *EOCDScanner) Next() (record.EOCD, bool) {
	for s.rpos < s.data.Len() {
		s.rpos++
		pos := s.data.Len() - s.rpos

		if w, ok := s.data.Slice(pos, pos+4); ok && bytes.Equal(w.Raw(), eocdSigBytes) {
			// at least EOCDMinSize bytes remain past pos, so this
			// cannot fail.
			if eocd, ok := record.NewEOCDView(s.data.Skip(pos)); ok {
				return eocd, true
			}
		}
	}

	return record.EOCD{}, false
}

// All returns the remaining candidates as an iterator.
//
// Don't mix Next and All as they share the same scan cursor.
func (s *EOCDScanner) All() iter.Seq[record.EOCD] {
	return func(yield func(record.EOCD) bool) {
		for eocd, ok := s.Next(); ok; eocd, ok = s.Next() {
			if !yield(eocd) {
				return
			}
		}
	}
}

// LocateEOCD returns the end of central directory record of src that is
// most likely authoritative.
//
// The heuristic scans the last min(record.EOCDMaxSize, size) bytes of the
// archive backward and picks the first candidate whose declared comment
// length makes the record end exactly at the end of the archive. Decoy
// signature bytes planted inside a comment cannot satisfy that property,
// while the most recently appended genuine record is the one closest to the
// true end of file, so it wins over any superseded records before it.
//
// The returned record's Offset is relative to the scanned window, which
// starts at max(0, size-record.EOCDMaxSize). Returns ErrEOCDNotFound if no
// candidate passes, or the Source's error if fetching the window failed.
func LocateEOCD(src Source) (record.EOCD, error) {
	size := src.Size()
	start := size - min(record.EOCDMaxSize, size)

	window, err := src.Range(start, size)
	if err != nil {
		return record.EOCD{}, fmt.Errorf("fetch EOCD scan window error: %w", err)
	}

	for s := NewEOCDScanner(window); ; {
		eocd, ok := s.Next()
		if !ok {
			return record.EOCD{}, ErrEOCDNotFound
		}

		if eocd.Offset()+record.EOCDMinSize+int(eocd.CommentLen()) == len(window) {
			return eocd, nil
		}
	}
}

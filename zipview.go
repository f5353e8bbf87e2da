// Package zipview reads the structural records of ZIP archives as
// zero-copy, bounds-checked views: the end of central directory record
// (EOCD), the central directory file headers (CDFH), the local file headers
// (LFH), and the data descriptors (DD).
//
// Unlike archive/zip, nothing is decompressed, verified, or even required
// to be well-formed: records are located and decoded as they are, which
// makes the module suitable for inspecting truncated, corrupted, or
// deliberately misleading archives, and for archives too large to download
// because the bytes are reached through a ranged [scan.Source] (in-memory,
// io.ReaderAt, or S3 via the s3source package).
//
// The packages build on each other:
//
//   - view: the panic-free byte window every other package reads through
//   - record: typed readers for the four record kinds
//   - scan: the backward EOCD search and the forward CDFH iteration
//   - s3source: a scan.Source over an S3 object
//
// Scan in this package ties them together for the common case.
package zipview

import (
	"fmt"
	"iter"

	"github.com/nguyengg/zipview/record"
	"github.com/nguyengg/zipview/scan"
)

// Scan locates the authoritative end of central directory record of src
// and returns it along with an iterator over the central directory file
// headers.
//
// The central directory is fetched from src up front using the EOCD's
// declared offset and size, then walked record by record. No semantic
// validation is performed: if the directory is corrupted or truncated the
// iterator simply yields fewer records than the EOCD declared, and the
// records themselves may be garbage (check [record.CDFileHeader.Signature]
// against [record.CDFHSignature] if that matters to you).
//
// Returns [scan.ErrEOCDNotFound] if src does not end in an EOCD record.
func Scan(src scan.Source) (record.EOCD, iter.Seq[record.CDFileHeader], error) {
	eocd, err := scan.LocateEOCD(src)
	if err != nil {
		return record.EOCD{}, nil, err
	}

	start := int64(eocd.CDOffset())
	cd, err := src.Range(start, start+int64(eocd.CDSize()))
	if err != nil {
		return eocd, nil, fmt.Errorf("fetch central directory error: %w", err)
	}

	return eocd, scan.NewCentralDirectory(cd, int(eocd.CDCount())).All(), nil
}

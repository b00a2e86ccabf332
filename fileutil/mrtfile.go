// Package fileutil constructs bz2-aware, MRT-framed bufio.Scanners
// over dump files, and loads filter-file configuration. Adapted from
// fileutil/mrtfile.go and fileutil/filterfile.go of the teacher this
// module was built from, retargeted at mrtfmt's TABLE_DUMP_V2 decoder
// instead of the teacher's protobuf-backed BGP4MP decoder.
package fileutil

import (
	"bufio"
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"

	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/pkg/errors"
)

// MrtFileReader scans one MRT dump file record by record, maintaining
// the PeerIndexTable most recently seen in the stream so each RIB
// record's peer_index resolves against the right table
// (SPEC_FULL.md §5's per-file scoping rule).
type MrtFileReader struct {
	in      io.ReadCloser
	scanner *bufio.Scanner

	activeTable *mrtfmt.PeerIndexTable
	lastRec     *mrtfmt.Record
	lastErr     error

	// offset is the cumulative byte count of every record fully
	// consumed so far — i.e. the file offset at which the record
	// currently being scanned (or the one a fatal Err() refers to)
	// begins (SPEC_FULL.md §4.7/§7: errors are reported with the file
	// offset at which they occurred).
	offset int64
}

// NewMrtFileReader opens fname (transparently bz2-decompressing if it
// ends in .bz2) and wraps it for per-record scanning.
func NewMrtFileReader(fname string) (*MrtFileReader, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	return &MrtFileReader{
		in:      fp,
		scanner: newScanner(fp),
	}, nil
}

func newScanner(file *os.File) *bufio.Scanner {
	var scanner *bufio.Scanner
	if filepath.Ext(file.Name()) == ".bz2" {
		scanner = bufio.NewScanner(bzip2.NewReader(file))
	} else {
		scanner = bufio.NewScanner(file)
	}
	scanner.Split(mrtfmt.SplitMrt)
	// A full-table RIB_IPV4_UNICAST/RIB_IPV6_UNICAST record can run to
	// several megabytes; size generously like the teacher's own
	// getScanner did for its (smaller) BGP4MP tokens.
	buf := make([]byte, 2<<24)
	scanner.Buffer(buf, cap(buf))
	return scanner
}

// Scan advances to the next record. It returns false at clean EOF or
// once a non-EOF error has occurred; callers must check Err() to tell
// the two apart.
func (m *MrtFileReader) Scan() bool {
	if m.lastErr != nil {
		return false
	}
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			m.lastErr = errors.Wrapf(err, "scan at offset %d", m.offset)
		}
		return false
	}

	tok := m.scanner.Bytes()
	var peers []*mrtfmt.Peer
	if m.activeTable != nil {
		peers = m.activeTable.Peers
	}
	rec, err := mrtfmt.ParseRecord(tok, peers)
	if err != nil {
		m.lastErr = errors.Wrapf(err, "parse record at offset %d", m.offset)
		return false
	}
	m.offset += int64(len(tok))
	if rec.PeerIndexTable != nil {
		m.activeTable = rec.PeerIndexTable
	}
	m.lastRec = rec
	return true
}

// Offset returns the byte offset, within the file, just past the most
// recently scanned record, i.e. the start of the next record; if Err()
// is non-nil, it is the start of the record that failed.
func (m *MrtFileReader) Offset() int64 {
	return m.offset
}

// Record returns the most recently scanned record.
func (m *MrtFileReader) Record() *mrtfmt.Record {
	return m.lastRec
}

// Err reports the terminal error, if Scan stopped for a reason other
// than clean EOF.
func (m *MrtFileReader) Err() error {
	return m.lastErr
}

// Close releases the underlying file handle.
func (m *MrtFileReader) Close() error {
	return m.in.Close()
}

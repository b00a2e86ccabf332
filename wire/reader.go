// Package wire provides buffered, fallible, big-endian reads over a
// fixed byte slice. It is the common substrate every decoder in this
// module builds on.
package wire

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrTruncated is returned whenever a read asks for more bytes than
// remain in the underlying slice.
var ErrTruncated = errors.New("truncated")

// Reader is a cursor over an in-memory byte slice. It never performs
// I/O itself — callers are expected to have already read a
// length-bounded record into memory (C7 does this for every MRT
// record, C3 for every attribute stream).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Pos returns the current read offset, useful for error reporting.
func (r *Reader) Pos() int {
	return r.pos
}

func (r *Reader) require(n int) error {
	if r.Len() < n {
		return errors.Wrapf(ErrTruncated, "need %d bytes, have %d at offset %d", n, r.Len(), r.pos)
	}
	return nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadU128 reads a big-endian 128-bit value as two uint64 halves
// (hi, lo), used for IPv6 addresses.
func (r *Reader) ReadU128() (hi uint64, lo uint64, err error) {
	if err = r.require(16); err != nil {
		return 0, 0, err
	}
	hi = binary.BigEndian.Uint64(r.buf[r.pos:])
	lo = binary.BigEndian.Uint64(r.buf[r.pos+8:])
	r.pos += 16
	return hi, lo, nil
}

// ReadExact reads exactly n bytes and advances past them.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Peek returns the next n bytes without consuming them.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	return r.buf[r.pos : r.pos+n], nil
}

// Consume advances the cursor by n bytes without returning them. Used
// after a Peek that bounds a sub-decoder to a declared length.
func (r *Reader) Consume(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

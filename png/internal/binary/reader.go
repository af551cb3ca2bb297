package binary

import (
	"encoding/binary"

	"github.com/wippyai/pngchunks/errors"
)

// Reader is a forward-only cursor over an immutable byte slice.
// Every read either advances by exactly the requested count or fails
// without moving.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadN returns the next n bytes without copying. The returned slice
// aliases the input and must not be modified.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.UnexpectedEOF(r.pos, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Since returns the bytes consumed between start and the current position.
// It does not move the cursor.
func (r *Reader) Since(start int) []byte {
	if start < 0 || start > r.pos {
		return nil
	}
	return r.data[start:r.pos:r.pos]
}

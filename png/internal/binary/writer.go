package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer builds PNG chunk streams. It is used to produce fixtures; the
// decoder itself never writes.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// Chunk writes a complete chunk: length, tag, payload and the CRC-32 of
// tag and payload.
func (w *Writer) Chunk(tag string, payload []byte) {
	w.ChunkWithCRC(tag, payload, Checksum([]byte(tag), payload))
}

// ChunkWithCRC writes a chunk with an explicit checksum value.
func (w *Writer) ChunkWithCRC(tag string, payload []byte, crc uint32) {
	w.WriteU32(uint32(len(payload)))
	w.buf.WriteString(tag)
	w.buf.Write(payload)
	w.WriteU32(crc)
}

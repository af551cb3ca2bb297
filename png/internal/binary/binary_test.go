package binary

import (
	"bytes"
	"errors"
	"testing"

	pngerrors "github.com/wippyai/pngchunks/errors"
)

func TestReaderReadN(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	got, err := r.ReadN(3)
	if err != nil {
		t.Fatalf("ReadN: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadN: got %v, want [1 2 3]", got)
	}
	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}
	if r.Remaining() != 2 {
		t.Errorf("remaining: got %d, want 2", r.Remaining())
	}

	got, err = r.ReadN(0)
	if err != nil {
		t.Fatalf("ReadN(0): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadN(0): got %v, want empty", got)
	}
}

func TestReaderReadNPastEnd(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.ReadN(1); err != nil {
		t.Fatalf("ReadN: %v", err)
	}

	_, err := r.ReadN(10)
	if err == nil {
		t.Fatal("expected error for reading past end")
	}
	if !errors.Is(err, pngerrors.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
	if r.Position() != 1 {
		t.Errorf("failed read moved position to %d", r.Position())
	}

	// the remaining bytes are still readable after a failed read
	got, err := r.ReadN(2)
	if err != nil {
		t.Fatalf("ReadN after failure: %v", err)
	}
	if !bytes.Equal(got, []byte{0x02, 0x03}) {
		t.Errorf("got %v, want [2 3]", got)
	}
}

func TestReaderReadNNegative(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadN(-1); !errors.Is(err, pngerrors.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
	if r.Position() != 0 {
		t.Errorf("position: got %d, want 0", r.Position())
	}
}

func TestReaderReadNDoesNotExposeTail(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	r := NewReader(data)
	got, _ := r.ReadN(2)
	if cap(got) != 2 {
		t.Errorf("cap: got %d, want 2", cap(got))
	}
}

func TestReaderFixedWidth(t *testing.T) {
	data := []byte{
		0xAB,
		0x12, 0x34,
		0xDE, 0xAD, 0xBE, 0xEF,
	}
	r := NewReader(data)

	u8, err := r.ReadU8()
	if err != nil || u8 != 0xAB {
		t.Errorf("ReadU8: got 0x%02x, %v", u8, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadU16: got 0x%04x, %v", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0xDEADBEEF {
		t.Errorf("ReadU32: got 0x%08x, %v", u32, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining: got %d, want 0", r.Remaining())
	}
}

func TestReaderFixedWidthTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"u8", nil, func(r *Reader) error { _, err := r.ReadU8(); return err }},
		{"u16", []byte{0x01}, func(r *Reader) error { _, err := r.ReadU16(); return err }},
		{"u32", []byte{0x01, 0x02, 0x03}, func(r *Reader) error { _, err := r.ReadU32(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			err := tt.read(r)
			if !errors.Is(err, pngerrors.ErrUnexpectedEOF) {
				t.Errorf("expected unexpected EOF, got %v", err)
			}
			if r.Position() != 0 {
				t.Errorf("position: got %d, want 0", r.Position())
			}
		})
	}
}

func TestReaderSince(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	_, _ = r.ReadU8()
	start := r.Position()
	_, _ = r.ReadU16()

	if got := r.Since(start); !bytes.Equal(got, []byte{0x02, 0x03}) {
		t.Errorf("Since: got %v, want [2 3]", got)
	}
	if r.Position() != 3 {
		t.Errorf("Since moved position to %d", r.Position())
	}
	if got := r.Since(4); got != nil {
		t.Errorf("Since past position: got %v, want nil", got)
	}
}

func TestWriterFixedWidth(t *testing.T) {
	w := NewWriter()
	w.Byte(0xAB)
	w.WriteU16(0x1234)
	w.WriteU32(0xDEADBEEF)
	w.WriteBytes([]byte{0x01})

	want := []byte{0xAB, 0x12, 0x34, 0xDE, 0xAD, 0xBE, 0xEF, 0x01}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", w.Len(), len(want))
	}
}

func TestWriterChunk(t *testing.T) {
	w := NewWriter()
	w.Chunk("IEND", nil)

	// IEND with its well-known CRC
	want := []byte{0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestWriterChunkWithCRC(t *testing.T) {
	w := NewWriter()
	w.ChunkWithCRC("abCD", []byte{0x09}, 0x01020304)

	want := []byte{0x00, 0x00, 0x00, 0x01, 'a', 'b', 'C', 'D', 0x09, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestChecksum(t *testing.T) {
	if got := Checksum([]byte("IEND"), nil); got != 0xAE426082 {
		t.Errorf("Checksum(IEND): got 0x%08x, want 0xae426082", got)
	}

	whole := Checksum([]byte("IDATabc"), nil)
	split := Checksum([]byte("IDAT"), []byte("abc"))
	if whole != split {
		t.Errorf("split checksum 0x%08x != whole 0x%08x", split, whole)
	}
}

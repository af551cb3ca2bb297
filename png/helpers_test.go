package png_test

import (
	"github.com/wippyai/pngchunks/png"
	"github.com/wippyai/pngchunks/png/internal/binary"
)

// stream builds a PNG datastream chunk by chunk.
type stream struct {
	w *binary.Writer
}

func newStream() *stream {
	w := binary.NewWriter()
	w.WriteBytes([]byte(png.Signature))
	return &stream{w: w}
}

func (s *stream) chunk(tag string, payload []byte) *stream {
	s.w.Chunk(tag, payload)
	return s
}

func (s *stream) chunkWithCRC(tag string, payload []byte, crc uint32) *stream {
	s.w.ChunkWithCRC(tag, payload, crc)
	return s
}

func (s *stream) raw(b ...byte) *stream {
	s.w.WriteBytes(b)
	return s
}

func (s *stream) header(h png.ImageHeader) *stream {
	return s.chunk(png.TagImageHeader, headerPayload(h))
}

func (s *stream) data(b ...byte) *stream {
	return s.chunk(png.TagImageData, b)
}

func (s *stream) end() *stream {
	return s.chunk(png.TagImageTrailer, nil)
}

func (s *stream) bytes() []byte {
	return s.w.Bytes()
}

func headerPayload(h png.ImageHeader) []byte {
	w := binary.NewWriter()
	w.WriteU32(h.Width)
	w.WriteU32(h.Height)
	w.Byte(h.BitDepth)
	w.Byte(byte(h.ColorType))
	w.Byte(h.CompressionMethod)
	w.Byte(h.FilterMethod)
	w.Byte(byte(h.InterlaceMethod))
	return w.Bytes()
}

func header(ct png.ColorType, depth uint8) png.ImageHeader {
	return png.ImageHeader{
		Width:     1,
		Height:    1,
		BitDepth:  depth,
		ColorType: ct,
	}
}

func u16s(vals ...uint16) []byte {
	w := binary.NewWriter()
	for _, v := range vals {
		w.WriteU16(v)
	}
	return w.Bytes()
}

func u32(v uint32) []byte {
	w := binary.NewWriter()
	w.WriteU32(v)
	return w.Bytes()
}

// minimal returns signature, an 8-bit grayscale 1x1 IHDR, one IDAT and IEND.
func minimal() []byte {
	return newStream().
		header(header(png.ColorGrayscale, 8)).
		data(0x78, 0x9c, 0x63, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01).
		end().
		bytes()
}

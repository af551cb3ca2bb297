package png

import "fmt"

// ChunkKind enumerates the chunk types this decoder understands.
// Anything else resolves to KindUnknown and is kept opaque.
type ChunkKind uint8

const (
	KindUnknown ChunkKind = iota
	KindImageHeader
	KindImageData
	KindImageTrailer
	KindGamma
	KindPalette
	KindBackground
	KindTransparency
)

func (k ChunkKind) String() string {
	switch k {
	case KindImageHeader:
		return TagImageHeader
	case KindImageData:
		return TagImageData
	case KindImageTrailer:
		return TagImageTrailer
	case KindGamma:
		return TagGamma
	case KindPalette:
		return TagPalette
	case KindBackground:
		return TagBackground
	case KindTransparency:
		return TagTransparency
	default:
		return "unknown"
	}
}

// ChunkType is a chunk tag together with its resolved kind.
type ChunkType struct {
	Tag  [4]byte
	Kind ChunkKind
}

// LookupChunkType resolves a 4-byte tag against the known chunk kinds.
func LookupChunkType(tag [4]byte) ChunkType {
	ct := ChunkType{Tag: tag}
	switch string(tag[:]) {
	case TagImageHeader:
		ct.Kind = KindImageHeader
	case TagImageData:
		ct.Kind = KindImageData
	case TagImageTrailer:
		ct.Kind = KindImageTrailer
	case TagGamma:
		ct.Kind = KindGamma
	case TagPalette:
		ct.Kind = KindPalette
	case TagBackground:
		ct.Kind = KindBackground
	case TagTransparency:
		ct.Kind = KindTransparency
	}
	return ct
}

func (t ChunkType) String() string {
	return string(t.Tag[:])
}

// Critical reports whether a decoder must understand the chunk to show the image.
func (t ChunkType) Critical() bool {
	return t.Tag[ancillaryByte]&propertyBit == 0
}

// Public reports whether the tag is registered by the format rather than private.
func (t ChunkType) Public() bool {
	return t.Tag[privateByte]&propertyBit == 0
}

// Conforming reports whether the reserved bit is clear.
func (t ChunkType) Conforming() bool {
	return t.Tag[reservedByte]&propertyBit == 0
}

// SafeToCopy reports whether editors may copy the chunk without understanding it.
func (t ChunkType) SafeToCopy() bool {
	return t.Tag[safeToCopyByte]&propertyBit != 0
}

// validTag reports whether every tag byte is an ASCII letter.
func validTag(tag [4]byte) bool {
	for _, c := range tag {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// ColorType is the IHDR color model.
type ColorType uint8

func (c ColorType) String() string {
	switch c {
	case ColorGrayscale:
		return "grayscale"
	case ColorTruecolor:
		return "truecolor"
	case ColorIndexed:
		return "indexed"
	case ColorGrayscaleAlpha:
		return "grayscale+alpha"
	case ColorTruecolorAlpha:
		return "truecolor+alpha"
	default:
		return fmt.Sprintf("ColorType(%d)", uint8(c))
	}
}

// InterlaceMethod is the IHDR interlace method.
type InterlaceMethod uint8

func (m InterlaceMethod) String() string {
	switch m {
	case InterlaceNone:
		return "none"
	case InterlaceAdam7:
		return "adam7"
	default:
		return fmt.Sprintf("InterlaceMethod(%d)", uint8(m))
	}
}

// Chunk is one decoded chunk in file order.
type Chunk struct {
	Data   ChunkData
	Type   ChunkType
	Offset int // offset of the length field in the input
	Length uint32
	CRC    uint32
}

// ChunkData is the typed payload of a chunk. The concrete type is selected
// by Kind: *ImageHeader, *ImageData, *ImageTrailer, *Gamma, *Palette,
// *Background, *Transparency or *Unknown.
type ChunkData interface {
	Kind() ChunkKind
}

// ImageHeader is the IHDR payload: dimensions and pixel encoding.
type ImageHeader struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   InterlaceMethod
}

func (*ImageHeader) Kind() ChunkKind { return KindImageHeader }

// Channels returns the number of samples per pixel.
func (h *ImageHeader) Channels() int {
	switch h.ColorType {
	case ColorGrayscale, ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorTruecolor:
		return 3
	case ColorTruecolorAlpha:
		return 4
	default:
		return 0
	}
}

// BitsPerPixel returns the number of bits a single pixel occupies.
func (h *ImageHeader) BitsPerPixel() int {
	return h.Channels() * int(h.BitDepth)
}

// RowBytes returns the byte length of one unfiltered scanline of a
// non-interlaced image, excluding the filter type byte.
func (h *ImageHeader) RowBytes() uint64 {
	return (uint64(h.Width)*uint64(h.BitsPerPixel()) + 7) / 8
}

// HasAlpha reports whether pixels carry an alpha sample.
func (h *ImageHeader) HasAlpha() bool {
	return h.ColorType == ColorGrayscaleAlpha || h.ColorType == ColorTruecolorAlpha
}

// UsesPalette reports whether pixels are palette indices.
func (h *ImageHeader) UsesPalette() bool {
	return h.ColorType == ColorIndexed
}

// ImageData is one IDAT payload. Concatenating all of them in file order
// yields the compressed image stream.
type ImageData struct {
	Bytes []byte
}

func (*ImageData) Kind() ChunkKind { return KindImageData }

// ImageTrailer is the empty IEND payload.
type ImageTrailer struct{}

func (*ImageTrailer) Kind() ChunkKind { return KindImageTrailer }

// Gamma is the gAMA payload.
type Gamma struct {
	Raw uint32 // gamma times 100000
}

func (*Gamma) Kind() ChunkKind { return KindGamma }

// Value returns the gamma multiplier.
func (g *Gamma) Value() float64 {
	return float64(g.Raw) / GammaScale
}

// RGB is one 8-bit palette entry.
type RGB struct {
	R, G, B uint8
}

// RGB16 is a 16-bit sample triple used by bKGD and tRNS.
type RGB16 struct {
	R, G, B uint16
}

// Palette is the PLTE payload in file order.
type Palette struct {
	Entries []RGB
}

func (*Palette) Kind() ChunkKind { return KindPalette }

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Background is the bKGD payload. Model selects the meaningful field:
// Gray for grayscale models, RGB for truecolor models, Index for indexed.
type Background struct {
	RGB   RGB16
	Gray  uint16
	Model ColorType
	Index uint8
}

func (*Background) Kind() ChunkKind { return KindBackground }

// Transparency is the tRNS payload. Model selects the meaningful field:
// Gray for grayscale, RGB for truecolor, Indices for indexed.
type Transparency struct {
	Indices []uint8
	RGB     RGB16
	Gray    uint16
	Model   ColorType
}

func (*Transparency) Kind() ChunkKind { return KindTransparency }

// Unknown holds the raw payload of a chunk the decoder does not interpret.
type Unknown struct {
	Bytes []byte
}

func (*Unknown) Kind() ChunkKind { return KindUnknown }

// Chunks is a decoded chunk sequence in file order.
type Chunks []Chunk

// Header returns the IHDR payload.
func (cs Chunks) Header() (*ImageHeader, bool) {
	return first[*ImageHeader](cs, KindImageHeader)
}

// Palette returns the PLTE payload.
func (cs Chunks) Palette() (*Palette, bool) {
	return first[*Palette](cs, KindPalette)
}

// Gamma returns the gAMA payload.
func (cs Chunks) Gamma() (*Gamma, bool) {
	return first[*Gamma](cs, KindGamma)
}

// Background returns the bKGD payload.
func (cs Chunks) Background() (*Background, bool) {
	return first[*Background](cs, KindBackground)
}

// Transparency returns the tRNS payload.
func (cs Chunks) Transparency() (*Transparency, bool) {
	return first[*Transparency](cs, KindTransparency)
}

// ImageData concatenates every IDAT payload in file order.
func (cs Chunks) ImageData() []byte {
	n := 0
	for _, c := range cs {
		if d, ok := c.Data.(*ImageData); ok {
			n += len(d.Bytes)
		}
	}
	out := make([]byte, 0, n)
	for _, c := range cs {
		if d, ok := c.Data.(*ImageData); ok {
			out = append(out, d.Bytes...)
		}
	}
	return out
}

// Filter returns the chunks of the given kind in file order.
func (cs Chunks) Filter(kind ChunkKind) Chunks {
	var out Chunks
	for _, c := range cs {
		if c.Type.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Kinds returns the kind of every chunk in file order.
func (cs Chunks) Kinds() []ChunkKind {
	out := make([]ChunkKind, len(cs))
	for i, c := range cs {
		out[i] = c.Type.Kind
	}
	return out
}

func first[T ChunkData](cs Chunks, kind ChunkKind) (T, bool) {
	var zero T
	for _, c := range cs {
		if c.Type.Kind != kind {
			continue
		}
		v, ok := c.Data.(T)
		return v, ok
	}
	return zero, false
}

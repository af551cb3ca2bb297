package png

// Signature is the fixed 8-byte magic that opens every PNG datastream.
const Signature = "\x89PNG\r\n\x1a\n"

// Chunk tags known to the decoder.
const (
	TagImageHeader  = "IHDR"
	TagImageData    = "IDAT"
	TagImageTrailer = "IEND"
	TagGamma        = "gAMA"
	TagPalette      = "PLTE"
	TagBackground   = "bKGD"
	TagTransparency = "tRNS"
)

// Length limits.
const (
	// MaxChunkLength is the largest legal declared chunk length (2^31-1).
	MaxChunkLength uint32 = 1<<31 - 1

	// MaxDimension is the largest legal image width or height (2^31-1).
	MaxDimension uint32 = 1<<31 - 1

	// MaxPaletteEntries is the largest number of PLTE entries.
	MaxPaletteEntries = 256

	// GammaScale converts the stored gAMA integer to a multiplier.
	GammaScale = 100000

	headerLength  uint32 = 13
	gammaLength   uint32 = 4
	trailerLength uint32 = 0
)

// Color types as stored in the IHDR color type byte.
const (
	ColorGrayscale      ColorType = 0 // one gray sample per pixel
	ColorTruecolor      ColorType = 2 // RGB triple per pixel
	ColorIndexed        ColorType = 3 // palette index per pixel
	ColorGrayscaleAlpha ColorType = 4 // gray sample followed by alpha
	ColorTruecolorAlpha ColorType = 6 // RGB triple followed by alpha
)

// Interlace methods as stored in the IHDR interlace byte.
const (
	InterlaceNone  InterlaceMethod = 0
	InterlaceAdam7 InterlaceMethod = 1
)

// CompressionDeflate and FilterAdaptive are the only methods defined for
// IHDR; any other value is rejected.
const (
	CompressionDeflate uint8 = 0
	FilterAdaptive     uint8 = 0
)

// Tag property bits. Each is bit 5 (the ASCII case bit) of one tag byte.
const (
	propertyBit = 0x20

	ancillaryByte  = 0 // lowercase: ancillary, uppercase: critical
	privateByte    = 1 // lowercase: private, uppercase: public
	reservedByte   = 2 // must be uppercase
	safeToCopyByte = 3 // lowercase: safe to copy
)

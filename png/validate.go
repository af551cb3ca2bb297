package png

import (
	"github.com/wippyai/pngchunks/errors"
)

// IHDR field offsets within the 13-byte payload.
const (
	offWidth       = 0
	offHeight      = 4
	offBitDepth    = 8
	offColorType   = 9
	offCompression = 10
	offFilter      = 11
	offInterlace   = 12
)

// ValidBitDepth reports whether depth is one of 1, 2, 4, 8 or 16.
func ValidBitDepth(depth uint8) bool {
	switch depth {
	case 1, 2, 4, 8, 16:
		return true
	}
	return false
}

// Valid reports whether c is a defined color type.
func (c ColorType) Valid() bool {
	switch c {
	case ColorGrayscale, ColorTruecolor, ColorIndexed, ColorGrayscaleAlpha, ColorTruecolorAlpha:
		return true
	}
	return false
}

// AllowsBitDepth reports whether depth is legal for the color type.
// Grayscale takes every depth, indexed up to 8, the rest only 8 or 16.
func (c ColorType) AllowsBitDepth(depth uint8) bool {
	switch c {
	case ColorGrayscale:
		return ValidBitDepth(depth)
	case ColorIndexed:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	case ColorTruecolor, ColorGrayscaleAlpha, ColorTruecolorAlpha:
		return depth == 8 || depth == 16
	}
	return false
}

// AllowsPalette reports whether a PLTE chunk may appear for the color type.
func (c ColorType) AllowsPalette() bool {
	return c == ColorTruecolor || c == ColorIndexed || c == ColorTruecolorAlpha
}

// AllowsTransparency reports whether a tRNS chunk may appear for the color type.
func (c ColorType) AllowsTransparency() bool {
	return c == ColorGrayscale || c == ColorTruecolor || c == ColorIndexed
}

// Valid reports whether m is a defined interlace method.
func (m InterlaceMethod) Valid() bool {
	return m == InterlaceNone || m == InterlaceAdam7
}

// Validate checks every IHDR field and the bit depth / color type pairing.
func (h *ImageHeader) Validate() error {
	return h.validate(-1)
}

// validate reports the first violation in field order. base is the input
// offset of the payload, or -1 when the header did not come from a stream.
func (h *ImageHeader) validate(base int) error {
	at := func(field int) int {
		if base < 0 {
			return -1
		}
		return base + field
	}

	if h.Width == 0 || h.Width > MaxDimension {
		return errors.New(errors.PhaseHeader, errors.KindInvalidDimensions).
			Chunk(TagImageHeader).Offset(at(offWidth)).Value(h.Width).
			Detail("width %d outside 1..%d", h.Width, MaxDimension).Build()
	}
	if h.Height == 0 || h.Height > MaxDimension {
		return errors.New(errors.PhaseHeader, errors.KindInvalidDimensions).
			Chunk(TagImageHeader).Offset(at(offHeight)).Value(h.Height).
			Detail("height %d outside 1..%d", h.Height, MaxDimension).Build()
	}
	if !ValidBitDepth(h.BitDepth) {
		return errors.InvalidEnum(errors.KindInvalidBitDepth, TagImageHeader, at(offBitDepth), "bit depth", h.BitDepth)
	}
	if !h.ColorType.Valid() {
		return errors.InvalidEnum(errors.KindInvalidColorModel, TagImageHeader, at(offColorType), "color type", uint8(h.ColorType))
	}
	if !h.ColorType.AllowsBitDepth(h.BitDepth) {
		return errors.New(errors.PhaseHeader, errors.KindIncompatibleBitDepth).
			Chunk(TagImageHeader).Offset(at(offBitDepth)).Value(h.BitDepth).
			Detail("bit depth %d not allowed for %s", h.BitDepth, h.ColorType).Build()
	}
	if h.CompressionMethod != CompressionDeflate {
		return errors.InvalidEnum(errors.KindInvalidCompressionMethod, TagImageHeader, at(offCompression), "compression method", h.CompressionMethod)
	}
	if h.FilterMethod != FilterAdaptive {
		return errors.InvalidEnum(errors.KindInvalidFilterMethod, TagImageHeader, at(offFilter), "filter method", h.FilterMethod)
	}
	if !h.InterlaceMethod.Valid() {
		return errors.InvalidEnum(errors.KindInvalidInterlaceMethod, TagImageHeader, at(offInterlace), "interlace method", uint8(h.InterlaceMethod))
	}
	return nil
}

// maxPaletteEntries returns the largest palette the header admits.
func (h *ImageHeader) maxPaletteEntries() int {
	if h.ColorType == ColorIndexed && h.BitDepth < 8 {
		return 1 << h.BitDepth
	}
	return MaxPaletteEntries
}

package png

import (
	"bytes"

	"github.com/wippyai/pngchunks/errors"
	"github.com/wippyai/pngchunks/png/internal/binary"
)

// readChunkData dispatches to the payload decoder for ct. Each decoder
// validates the declared length before reading and consumes exactly
// length bytes.
func (d *Decoder) readChunkData(ct ChunkType, length uint32) (ChunkData, error) {
	switch ct.Kind {
	case KindImageHeader:
		return d.readHeader(length)
	case KindImageData:
		return d.readImageData(length)
	case KindImageTrailer:
		return d.readTrailer(length)
	case KindGamma:
		return d.readGamma(length)
	case KindPalette:
		return d.readPalette(length)
	case KindBackground:
		return d.readBackground(length)
	case KindTransparency:
		return d.readTransparency(length)
	default:
		return d.readUnknown(length)
	}
}

func (d *Decoder) readHeader(length uint32) (ChunkData, error) {
	base := d.r.Position()
	if length != headerLength {
		return nil, errors.InvalidLength(errors.PhaseHeader, errors.KindInvalidHeaderLength,
			TagImageHeader, base, length, "13")
	}

	b, err := d.r.ReadN(int(headerLength))
	if err != nil {
		return nil, err
	}

	r := binary.NewReader(b)
	h := &ImageHeader{}
	h.Width, _ = r.ReadU32()
	h.Height, _ = r.ReadU32()
	h.BitDepth, _ = r.ReadU8()
	ct, _ := r.ReadU8()
	h.ColorType = ColorType(ct)
	h.CompressionMethod, _ = r.ReadU8()
	h.FilterMethod, _ = r.ReadU8()
	im, _ := r.ReadU8()
	h.InterlaceMethod = InterlaceMethod(im)

	if err := h.validate(base); err != nil {
		return nil, err
	}
	return h, nil
}

func (d *Decoder) readImageData(length uint32) (ChunkData, error) {
	b, err := d.r.ReadN(int(length))
	if err != nil {
		return nil, err
	}
	return &ImageData{Bytes: bytes.Clone(b)}, nil
}

func (d *Decoder) readTrailer(length uint32) (ChunkData, error) {
	if length != trailerLength {
		return nil, errors.InvalidLength(errors.PhaseTrailer, errors.KindInvalidTrailerLength,
			TagImageTrailer, d.r.Position(), length, "0")
	}
	return &ImageTrailer{}, nil
}

func (d *Decoder) readGamma(length uint32) (ChunkData, error) {
	if length != gammaLength {
		return nil, errors.InvalidLength(errors.PhasePayload, errors.KindInvalidGammaLength,
			TagGamma, d.r.Position(), length, "4")
	}
	raw, err := d.r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &Gamma{Raw: raw}, nil
}

func (d *Decoder) readPalette(length uint32) (ChunkData, error) {
	offset := d.r.Position()
	if d.header == nil {
		return nil, errors.MissingState(errors.KindMissingHeaderState, TagPalette, offset, "IHDR")
	}
	if length == 0 || length%3 != 0 {
		return nil, errors.InvalidLength(errors.PhasePayload, errors.KindInvalidPaletteLength,
			TagPalette, offset, length, "a positive multiple of 3")
	}
	n := int(length / 3)
	if limit := d.header.maxPaletteEntries(); n > limit {
		return nil, errors.New(errors.PhasePayload, errors.KindTooManyPaletteEntries).
			Chunk(TagPalette).Offset(offset).Value(n).
			Detail("%d entries, at most %d allowed", n, limit).Build()
	}
	if !d.header.ColorType.AllowsPalette() {
		return nil, errors.New(errors.PhaseOrder, errors.KindUnexpectedPaletteChunk).
			Chunk(TagPalette).Offset(offset).
			Detail("PLTE not allowed for %s", d.header.ColorType).Build()
	}

	b, err := d.r.ReadN(int(length))
	if err != nil {
		return nil, err
	}
	entries := make([]RGB, n)
	for i := range entries {
		entries[i] = RGB{R: b[3*i], G: b[3*i+1], B: b[3*i+2]}
	}
	return &Palette{Entries: entries}, nil
}

func (d *Decoder) readBackground(length uint32) (ChunkData, error) {
	offset := d.r.Position()
	if d.header == nil {
		return nil, errors.MissingState(errors.KindMissingHeaderState, TagBackground, offset, "IHDR")
	}

	model := d.header.ColorType
	bg := &Background{Model: model}

	switch model {
	case ColorGrayscale, ColorGrayscaleAlpha:
		if length != 2 {
			return nil, badLength(errors.KindInvalidBackgroundLength, TagBackground, offset, length, "2")
		}
		gray, err := d.r.ReadU16()
		if err != nil {
			return nil, err
		}
		bg.Gray = gray
	case ColorTruecolor, ColorTruecolorAlpha:
		if length != 6 {
			return nil, badLength(errors.KindInvalidBackgroundLength, TagBackground, offset, length, "6")
		}
		rgb, err := d.readRGB16()
		if err != nil {
			return nil, err
		}
		bg.RGB = rgb
	case ColorIndexed:
		if d.paletteLen < 0 {
			return nil, errors.MissingState(errors.KindMissingPaletteState, TagBackground, offset, "PLTE")
		}
		if length != 1 {
			return nil, badLength(errors.KindInvalidBackgroundLength, TagBackground, offset, length, "1")
		}
		idx, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		if int(idx) >= d.paletteLen {
			return nil, errors.PaletteIndex(TagBackground, offset, idx, d.paletteLen)
		}
		bg.Index = idx
	}
	return bg, nil
}

func (d *Decoder) readTransparency(length uint32) (ChunkData, error) {
	offset := d.r.Position()
	if d.header == nil {
		return nil, errors.MissingState(errors.KindMissingHeaderState, TagTransparency, offset, "IHDR")
	}

	model := d.header.ColorType
	if !model.AllowsTransparency() {
		return nil, errors.New(errors.PhaseOrder, errors.KindUnexpectedTransparencyChunk).
			Chunk(TagTransparency).Offset(offset).
			Detail("tRNS not allowed for %s", model).Build()
	}

	trns := &Transparency{Model: model}

	switch model {
	case ColorGrayscale:
		if length != 2 {
			return nil, badLength(errors.KindInvalidTransparencyLength, TagTransparency, offset, length, "2")
		}
		gray, err := d.r.ReadU16()
		if err != nil {
			return nil, err
		}
		trns.Gray = gray
	case ColorTruecolor:
		if length != 6 {
			return nil, badLength(errors.KindInvalidTransparencyLength, TagTransparency, offset, length, "6")
		}
		rgb, err := d.readRGB16()
		if err != nil {
			return nil, err
		}
		trns.RGB = rgb
	case ColorIndexed:
		if d.paletteLen < 0 {
			return nil, errors.MissingState(errors.KindMissingPaletteState, TagTransparency, offset, "PLTE")
		}
		b, err := d.r.ReadN(int(length))
		if err != nil {
			return nil, err
		}
		for i, idx := range b {
			if int(idx) >= d.paletteLen {
				return nil, errors.PaletteIndex(TagTransparency, offset+i, idx, d.paletteLen)
			}
		}
		trns.Indices = bytes.Clone(b)
	}
	return trns, nil
}

func (d *Decoder) readUnknown(length uint32) (ChunkData, error) {
	b, err := d.r.ReadN(int(length))
	if err != nil {
		return nil, err
	}
	return &Unknown{Bytes: bytes.Clone(b)}, nil
}

func (d *Decoder) readRGB16() (RGB16, error) {
	b, err := d.r.ReadN(6)
	if err != nil {
		return RGB16{}, err
	}
	r := binary.NewReader(b)
	var rgb RGB16
	rgb.R, _ = r.ReadU16()
	rgb.G, _ = r.ReadU16()
	rgb.B, _ = r.ReadU16()
	return rgb, nil
}

func badLength(kind errors.Kind, tag string, offset int, length uint32, want string) error {
	return errors.InvalidLength(errors.PhasePayload, kind, tag, offset, length, want)
}

package png

import (
	"go.uber.org/zap"

	"github.com/wippyai/pngchunks/errors"
	"github.com/wippyai/pngchunks/png/internal/binary"
)

// TrailingPolicy selects what happens to bytes that follow IEND.
type TrailingPolicy uint8

const (
	// TrailingIgnore leaves trailing bytes unread and records their count.
	TrailingIgnore TrailingPolicy = iota
	// TrailingReject fails the decode with KindTrailingData.
	TrailingReject
)

// Options configures decoder behavior.
type Options struct {
	TrailingData TrailingPolicy
	// RejectUnknownCritical fails on unrecognized chunks whose tag marks
	// them critical. By default every unknown chunk is kept as *Unknown.
	RejectUnknownCritical bool
}

// DefaultOptions returns default decoder configuration.
func DefaultOptions() Options {
	return Options{
		TrailingData: TrailingIgnore,
	}
}

type decodeState uint8

const (
	stateStart decodeState = iota
	stateScanning
	stateTerminated
	stateFailed
)

// Decoder decodes the chunk layer of one PNG datastream.
// A Decoder is single-use and not safe for concurrent use.
type Decoder struct {
	r      *binary.Reader
	header *ImageHeader
	chunks Chunks
	opts   Options

	// paletteLen is the PLTE entry count, -1 until a palette is decoded.
	paletteLen int
	trailing   int
	prev       ChunkKind
	state      decodeState

	seenGamma        bool
	seenPalette      bool
	seenBackground   bool
	seenTransparency bool
	seenData         bool
}

// NewDecoder creates a Decoder over data with the given options.
// data is not modified; decoded payloads do not alias it.
func NewDecoder(data []byte, opts Options) *Decoder {
	return &Decoder{
		r:          binary.NewReader(data),
		opts:       opts,
		paletteLen: -1,
	}
}

// NewDecoderWithDefaults creates a Decoder with default options.
func NewDecoderWithDefaults(data []byte) *Decoder {
	return NewDecoder(data, DefaultOptions())
}

// Decode parses a PNG datastream with default options.
func Decode(data []byte) (Chunks, error) {
	return NewDecoderWithDefaults(data).Decode()
}

// DecodeWithOptions parses a PNG datastream with the given options.
func DecodeWithOptions(data []byte, opts Options) (Chunks, error) {
	return NewDecoder(data, opts).Decode()
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(Signature) && string(data[:len(Signature)]) == Signature
}

// Header returns the decoded IHDR, or nil before it has been read.
func (d *Decoder) Header() *ImageHeader {
	return d.header
}

// TrailingBytes returns the number of bytes left after IEND.
// Only meaningful after a successful Decode with TrailingIgnore.
func (d *Decoder) TrailingBytes() int {
	return d.trailing
}

// Decode reads the signature and every chunk up to and including IEND.
// On failure no chunks are returned.
func (d *Decoder) Decode() (Chunks, error) {
	if d.state != stateStart {
		return nil, &errors.Error{
			Kind:   errors.KindDecoderUsed,
			Offset: -1,
			Detail: "decoder is single-use",
		}
	}

	chunks, err := d.decode()
	if err != nil {
		d.state = stateFailed
		d.chunks = nil
		Logger().Warn("png decode failed",
			zap.Int("offset", d.r.Position()),
			zap.Error(err))
		return nil, err
	}
	return chunks, nil
}

func (d *Decoder) decode() (Chunks, error) {
	if err := d.readSignature(); err != nil {
		return nil, err
	}
	d.state = stateScanning

	for d.state == stateScanning {
		c, err := d.readChunk()
		if err != nil {
			return nil, err
		}
		d.chunks = append(d.chunks, c)
		if c.Type.Kind == KindImageTrailer {
			d.state = stateTerminated
		}
	}

	if err := d.checkTrailing(); err != nil {
		return nil, err
	}

	Logger().Debug("decoded png chunk stream",
		zap.Int("chunks", len(d.chunks)),
		zap.Int("trailing", d.trailing))
	return d.chunks, nil
}

func (d *Decoder) readSignature() error {
	if d.r.Remaining() < len(Signature) {
		sig, _ := d.r.ReadN(d.r.Remaining())
		return errors.MissingSignature(sig)
	}
	sig, err := d.r.ReadN(len(Signature))
	if err != nil {
		return err
	}
	if string(sig) != Signature {
		return errors.MissingSignature(sig)
	}
	return nil
}

// readChunk reads one framed chunk: length, tag, payload and checksum.
func (d *Decoder) readChunk() (Chunk, error) {
	start := d.r.Position()

	length, err := d.r.ReadU32()
	if err != nil {
		return Chunk{}, err
	}
	tagBytes, err := d.r.ReadN(4)
	if err != nil {
		return Chunk{}, err
	}
	var tag [4]byte
	copy(tag[:], tagBytes)

	// A length running past the input is reported as truncation even when
	// it is also out of range.
	if uint64(length) > uint64(d.r.Remaining()) {
		err := errors.UnexpectedEOF(d.r.Position(), int(length), d.r.Remaining())
		err.Chunk = string(tag[:])
		return Chunk{}, err
	}
	if length > MaxChunkLength {
		return Chunk{}, errors.InvalidLength(errors.PhaseFrame, errors.KindInvalidChunkLength,
			string(tag[:]), start, length, "at most 2^31-1")
	}
	if !validTag(tag) {
		return Chunk{}, errors.New(errors.PhaseFrame, errors.KindInvalidChunkTag).
			Offset(start+4).Value(tag).
			Detail("tag % x is not four ASCII letters", tagBytes).Build()
	}
	ct := LookupChunkType(tag)

	if err := d.checkOrder(ct, start); err != nil {
		return Chunk{}, err
	}

	payloadStart := d.r.Position()
	data, err := d.readChunkData(ct, length)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Chunk == "" {
			e.Chunk = ct.String()
		}
		return Chunk{}, err
	}
	if consumed := d.r.Position() - payloadStart; consumed != int(length) {
		return Chunk{}, errors.New(errors.PhasePayload, errors.KindInvalidChunkLength).
			Chunk(ct.String()).Offset(payloadStart).Value(length).
			Detail("payload decoder consumed %d of %d bytes", consumed, length).Build()
	}

	computed := binary.Checksum(tagBytes, d.r.Since(payloadStart))
	crcOffset := d.r.Position()
	stored, err := d.r.ReadU32()
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Chunk = ct.String()
		}
		return Chunk{}, err
	}
	if stored != computed {
		return Chunk{}, errors.ChecksumMismatch(ct.String(), crcOffset, stored, computed)
	}

	d.commit(ct, data)

	Logger().Debug("decoded chunk",
		zap.Stringer("type", ct),
		zap.Uint32("length", length),
		zap.Int("offset", start))

	return Chunk{
		Offset: start,
		Length: length,
		Type:   ct,
		Data:   data,
		CRC:    stored,
	}, nil
}

// checkOrder enforces chunk placement before any payload byte is read.
func (d *Decoder) checkOrder(ct ChunkType, offset int) error {
	tag := ct.String()

	if len(d.chunks) == 0 && ct.Kind != KindImageHeader {
		return errors.OutOfOrder(errors.KindMisorderedHeader, tag, offset,
			"first chunk must be IHDR")
	}

	switch ct.Kind {
	case KindImageHeader:
		if d.header != nil {
			return errors.OutOfOrder(errors.KindDuplicateHeader, tag, offset,
				"IHDR already decoded")
		}
	case KindGamma:
		if d.seenGamma {
			return duplicate(tag, offset)
		}
		if d.seenPalette || d.seenData {
			return errors.OutOfOrder(errors.KindMisorderedChunk, tag, offset,
				"gAMA must precede PLTE and IDAT")
		}
	case KindPalette:
		if d.seenPalette {
			return duplicate(tag, offset)
		}
		if d.seenData || d.seenBackground || d.seenTransparency {
			return errors.OutOfOrder(errors.KindMisorderedChunk, tag, offset,
				"PLTE must precede bKGD, tRNS and IDAT")
		}
	case KindBackground:
		if d.seenBackground {
			return duplicate(tag, offset)
		}
		if d.seenData {
			return errors.OutOfOrder(errors.KindMisorderedChunk, tag, offset,
				"bKGD must precede IDAT")
		}
	case KindTransparency:
		if d.seenTransparency {
			return duplicate(tag, offset)
		}
		if d.seenData {
			return errors.OutOfOrder(errors.KindMisorderedChunk, tag, offset,
				"tRNS must precede IDAT")
		}
	case KindImageData:
		if d.seenData && d.prev != KindImageData {
			return errors.OutOfOrder(errors.KindMisorderedChunk, tag, offset,
				"IDAT chunks must be consecutive")
		}
		if d.header != nil && d.header.UsesPalette() && d.paletteLen < 0 {
			return errors.MissingState(errors.KindMissingPaletteState, tag, offset, "PLTE")
		}
	case KindImageTrailer:
		if !d.seenData {
			return errors.OutOfOrder(errors.KindMissingImageData, tag, offset,
				"no IDAT before IEND")
		}
	case KindUnknown:
		if d.opts.RejectUnknownCritical && ct.Critical() {
			return errors.OutOfOrder(errors.KindUnknownCriticalChunk, tag, offset,
				"unrecognized critical chunk")
		}
	}
	return nil
}

func duplicate(tag string, offset int) error {
	return errors.OutOfOrder(errors.KindDuplicateChunk, tag, offset, tag+" already decoded")
}

// commit records the state later chunks depend on. It runs only after the
// chunk's checksum has been verified.
func (d *Decoder) commit(ct ChunkType, data ChunkData) {
	switch v := data.(type) {
	case *ImageHeader:
		d.header = v
	case *Palette:
		d.paletteLen = v.Len()
		d.seenPalette = true
	case *Gamma:
		d.seenGamma = true
	case *Background:
		d.seenBackground = true
	case *Transparency:
		d.seenTransparency = true
	case *ImageData:
		d.seenData = true
	}
	d.prev = ct.Kind
}

// checkTrailing applies the trailing data policy once IEND has been read.
func (d *Decoder) checkTrailing() error {
	n := d.r.Remaining()
	if n == 0 {
		return nil
	}
	if d.opts.TrailingData == TrailingReject {
		return errors.New(errors.PhaseTrailer, errors.KindTrailingData).
			Offset(d.r.Position()).Value(n).
			Detail("%d bytes after IEND", n).Build()
	}
	d.trailing = n
	Logger().Debug("ignoring bytes after IEND",
		zap.Int("offset", d.r.Position()),
		zap.Int("bytes", n))
	return nil
}

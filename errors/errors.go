package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the chunk stream the error occurred
type Phase string

const (
	PhaseSignature Phase = "signature" // 8-byte magic
	PhaseFrame     Phase = "frame"     // length, tag and checksum fields
	PhaseHeader    Phase = "header"    // IHDR payload
	PhasePayload   Phase = "payload"   // payload of any other chunk
	PhaseOrder     Phase = "order"     // chunk placement rules
	PhaseTrailer   Phase = "trailer"   // IEND and what follows it
)

// Kind categorizes the error. The set is closed: every failure the decoder
// reports carries exactly one of these.
type Kind string

const (
	KindMissingSignature            Kind = "missing_signature"
	KindUnexpectedEOF               Kind = "unexpected_end_of_input"
	KindInvalidHeaderLength         Kind = "invalid_header_length"
	KindDuplicateHeader             Kind = "duplicate_header"
	KindMisorderedHeader            Kind = "misordered_header"
	KindInvalidBitDepth             Kind = "invalid_bit_depth"
	KindInvalidColorModel           Kind = "invalid_color_model"
	KindIncompatibleBitDepth        Kind = "incompatible_bit_depth_for_color_model"
	KindInvalidCompressionMethod    Kind = "invalid_compression_method"
	KindInvalidFilterMethod         Kind = "invalid_filter_method"
	KindInvalidInterlaceMethod      Kind = "invalid_interlace_method"
	KindInvalidPaletteLength        Kind = "invalid_palette_length"
	KindTooManyPaletteEntries       Kind = "too_many_palette_entries"
	KindUnexpectedPaletteChunk      Kind = "unexpected_palette_chunk"
	KindInvalidGammaLength          Kind = "invalid_gamma_length"
	KindMissingHeaderState          Kind = "missing_header_state"
	KindMissingPaletteState         Kind = "missing_palette_state"
	KindInvalidPaletteIndex         Kind = "invalid_palette_index"
	KindUnexpectedTransparencyChunk Kind = "unexpected_transparency_chunk"
	KindChecksumMismatch            Kind = "checksum_mismatch"

	KindInvalidChunkLength        Kind = "invalid_chunk_length"
	KindInvalidChunkTag           Kind = "invalid_chunk_tag"
	KindInvalidDimensions         Kind = "invalid_dimensions"
	KindDuplicateChunk            Kind = "duplicate_chunk"
	KindMisorderedChunk           Kind = "misordered_chunk"
	KindMissingImageData          Kind = "missing_image_data"
	KindInvalidBackgroundLength   Kind = "invalid_background_length"
	KindInvalidTransparencyLength Kind = "invalid_transparency_length"
	KindInvalidTrailerLength      Kind = "invalid_trailer_length"
	KindTrailingData              Kind = "trailing_data"
	KindUnknownCriticalChunk      Kind = "unknown_critical_chunk"
	KindDecoderUsed               Kind = "decoder_used"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrMissingSignature            = &Error{Kind: KindMissingSignature}
	ErrUnexpectedEOF               = &Error{Kind: KindUnexpectedEOF}
	ErrInvalidHeaderLength         = &Error{Kind: KindInvalidHeaderLength}
	ErrDuplicateHeader             = &Error{Kind: KindDuplicateHeader}
	ErrMisorderedHeader            = &Error{Kind: KindMisorderedHeader}
	ErrInvalidBitDepth             = &Error{Kind: KindInvalidBitDepth}
	ErrInvalidColorModel           = &Error{Kind: KindInvalidColorModel}
	ErrIncompatibleBitDepth        = &Error{Kind: KindIncompatibleBitDepth}
	ErrInvalidCompressionMethod    = &Error{Kind: KindInvalidCompressionMethod}
	ErrInvalidFilterMethod         = &Error{Kind: KindInvalidFilterMethod}
	ErrInvalidInterlaceMethod      = &Error{Kind: KindInvalidInterlaceMethod}
	ErrInvalidPaletteLength        = &Error{Kind: KindInvalidPaletteLength}
	ErrTooManyPaletteEntries       = &Error{Kind: KindTooManyPaletteEntries}
	ErrUnexpectedPaletteChunk      = &Error{Kind: KindUnexpectedPaletteChunk}
	ErrInvalidGammaLength          = &Error{Kind: KindInvalidGammaLength}
	ErrMissingHeaderState          = &Error{Kind: KindMissingHeaderState}
	ErrMissingPaletteState         = &Error{Kind: KindMissingPaletteState}
	ErrInvalidPaletteIndex         = &Error{Kind: KindInvalidPaletteIndex}
	ErrUnexpectedTransparencyChunk = &Error{Kind: KindUnexpectedTransparencyChunk}
	ErrChecksumMismatch            = &Error{Kind: KindChecksumMismatch}

	ErrInvalidChunkLength        = &Error{Kind: KindInvalidChunkLength}
	ErrInvalidChunkTag           = &Error{Kind: KindInvalidChunkTag}
	ErrInvalidDimensions         = &Error{Kind: KindInvalidDimensions}
	ErrDuplicateChunk            = &Error{Kind: KindDuplicateChunk}
	ErrMisorderedChunk           = &Error{Kind: KindMisorderedChunk}
	ErrMissingImageData          = &Error{Kind: KindMissingImageData}
	ErrInvalidBackgroundLength   = &Error{Kind: KindInvalidBackgroundLength}
	ErrInvalidTransparencyLength = &Error{Kind: KindInvalidTransparencyLength}
	ErrInvalidTrailerLength      = &Error{Kind: KindInvalidTrailerLength}
	ErrTrailingData              = &Error{Kind: KindTrailingData}
	ErrUnknownCriticalChunk      = &Error{Kind: KindUnknownCriticalChunk}
	ErrDecoderUsed               = &Error{Kind: KindDecoderUsed}
)

// Error is the structured error type returned by the decoder
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Chunk  string // 4-byte tag of the chunk being decoded, if any
	Detail string
	Offset int // byte offset in the input, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Chunk != "" {
		b.WriteString(" in ")
		b.WriteString(e.Chunk)
	}

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		fmt.Fprintf(&b, "%d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kind must match; Phase only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Chunk sets the chunk tag
func (b *Builder) Chunk(tag string) *Builder {
	b.err.Chunk = tag
	return b
}

// Offset sets the input offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	e := b.err
	return &e
}

// Convenience constructors for common error patterns

// UnexpectedEOF creates an end-of-input error for a read of want bytes
// at offset when only have bytes remain.
func UnexpectedEOF(offset, want, have int) *Error {
	return &Error{
		Phase:  PhaseFrame,
		Kind:   KindUnexpectedEOF,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", want, have),
		Value:  want,
	}
}

// MissingSignature creates a signature mismatch error
func MissingSignature(got []byte) *Error {
	preview := got
	if len(preview) > 8 {
		preview = preview[:8]
	}
	return &Error{
		Phase:  PhaseSignature,
		Kind:   KindMissingSignature,
		Offset: 0,
		Detail: fmt.Sprintf("got % x", preview),
	}
}

// InvalidEnum creates an error for a header field outside its closed set
func InvalidEnum(kind Kind, chunk string, offset int, field string, value any) *Error {
	return &Error{
		Phase:  PhaseHeader,
		Kind:   kind,
		Chunk:  chunk,
		Offset: offset,
		Detail: fmt.Sprintf("invalid %s %v", field, value),
		Value:  value,
	}
}

// InvalidLength creates an error for a declared length the chunk type forbids
func InvalidLength(phase Phase, kind Kind, chunk string, offset int, length uint32, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Chunk:  chunk,
		Offset: offset,
		Detail: fmt.Sprintf("declared length %d, want %s", length, want),
		Value:  length,
	}
}

// OutOfOrder creates an ordering error for a chunk that appears where it may not
func OutOfOrder(kind Kind, chunk string, offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseOrder,
		Kind:   kind,
		Chunk:  chunk,
		Offset: offset,
		Detail: detail,
	}
}

// MissingState creates an error for a chunk that depends on state an
// earlier chunk should have established
func MissingState(kind Kind, chunk string, offset int, what string) *Error {
	return &Error{
		Phase:  PhaseOrder,
		Kind:   kind,
		Chunk:  chunk,
		Offset: offset,
		Detail: fmt.Sprintf("%s has not been decoded", what),
	}
}

// ChecksumMismatch creates a CRC mismatch error
func ChecksumMismatch(chunk string, offset int, stored, computed uint32) *Error {
	return &Error{
		Phase:  PhaseFrame,
		Kind:   KindChecksumMismatch,
		Chunk:  chunk,
		Offset: offset,
		Detail: fmt.Sprintf("stored 0x%08x, computed 0x%08x", stored, computed),
		Value:  stored,
	}
}

// PaletteIndex creates an error for an index outside the decoded palette
func PaletteIndex(chunk string, offset int, index uint8, paletteLen int) *Error {
	return &Error{
		Phase:  PhasePayload,
		Kind:   KindInvalidPaletteIndex,
		Chunk:  chunk,
		Offset: offset,
		Detail: fmt.Sprintf("index %d out of bounds (palette length %d)", index, paletteLen),
		Value:  index,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}

// KindOf returns the Kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}

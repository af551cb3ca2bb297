// Package errors provides the structured error taxonomy of the PNG chunk decoder.
//
// Errors are categorized by Phase (where in the stream the error occurred) and
// Kind (one cause per variant). The Error type also carries the chunk tag, the
// byte offset in the input, the offending value and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHeader, errors.KindInvalidBitDepth).
//		Chunk("IHDR").
//		Offset(24).
//		Value(uint8(3)).
//		Detail("bit depth must be 1, 2, 4, 8 or 16").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEOF(offset, 13, 4)
//	err := errors.ChecksumMismatch("IDAT", offset, stored, computed)
//
// Match on kind with the exported sentinels:
//
//	if errors.Is(err, pngerrors.ErrChecksumMismatch) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

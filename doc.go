// Package pngchunks decodes the chunk layer of PNG datastreams.
//
// It verifies the signature, walks every length/tag/payload/CRC frame up to
// IEND, and decodes the payloads of the chunks that carry image metadata.
// Pixel data is returned still compressed; inflating and unfiltering it is
// left to the caller.
//
// # Architecture Overview
//
//	pngchunks/           Root package, documentation only
//	├── png/             Decoder, chunk types and header validation
//	│   └── internal/
//	│       └── binary/  Bounds-checked big-endian reader, writer and CRC
//	└── errors/          Structured error types with phase and kind
//
// # Quick Start
//
//	chunks, err := png.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	h, _ := chunks.Header()
//	fmt.Println(h.Width, h.Height, h.ColorType)
//
//	compressed := chunks.ImageData()
//
// # Errors
//
// Every failure is an *errors.Error carrying the phase, kind, chunk tag and
// input offset. Match on kind with the sentinels:
//
//	if errors.Is(err, pngerrors.ErrChecksumMismatch) {
//	    // corrupted chunk
//	}
//
// # Thread Safety
//
// A Decoder is single-use and must not be shared between goroutines.
// Decode and DecodeWithOptions create a fresh Decoder per call and are safe
// for concurrent use.
package pngchunks

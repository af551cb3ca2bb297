// Package png decodes the chunk layer of a PNG datastream.
//
// A datastream is the 8-byte signature followed by chunks, each framed as
// a big-endian length, a 4-byte tag, the payload and a CRC-32 over tag and
// payload. Decoding stops after IEND.
//
// # Supported Chunks
//
//	Critical:
//	  - IHDR  image header, validated field by field
//	  - PLTE  palette, 1..256 RGB entries
//	  - IDAT  compressed image data, kept as raw bytes
//	  - IEND  trailer
//
//	Ancillary:
//	  - gAMA  image gamma, scaled by 100000
//	  - bKGD  background color, shape depends on color type
//	  - tRNS  transparency, shape depends on color type
//
// Any other well-formed chunk is kept as *Unknown with its payload intact.
//
// # Decoding
//
//	chunks, err := png.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range chunks {
//	    fmt.Println(c.Type, c.Length, c.Offset)
//	}
//
// Decode with options:
//
//	opts := png.DefaultOptions()
//	opts.TrailingData = png.TrailingReject
//	opts.RejectUnknownCritical = true
//	chunks, err := png.DecodeWithOptions(data, opts)
//
// # Ordering
//
// The decoder enforces chunk placement as it goes: IHDR first and once,
// gAMA before PLTE, PLTE before bKGD and tRNS, all of them before the first
// IDAT, IDAT chunks consecutive, and at least one IDAT before IEND. Indexed
// images need PLTE before bKGD, tRNS or IDAT.
//
// # Logging
//
// The package logs through zap. It is silent until SetLogger is called.
package png

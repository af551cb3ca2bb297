package png_test

import (
	"testing"

	"github.com/wippyai/pngchunks/png"
)

func FuzzDecode(f *testing.F) {
	valid := minimal()
	f.Add(valid)

	// Truncated inside the IHDR payload
	f.Add(valid[:20])

	// Indexed image with palette, transparency and background
	f.Add(newStream().
		header(header(png.ColorIndexed, 2)).
		chunk(png.TagPalette, []byte{1, 2, 3, 4, 5, 6}).
		chunk(png.TagTransparency, []byte{1}).
		chunk(png.TagBackground, []byte{0}).
		data(0).
		end().bytes())

	// Signature followed by garbage
	f.Add([]byte("\x89PNG\r\n\x1a\n\xff\xff\xff\xff\xff\xff\xff\xff"))

	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		chunks, err := png.Decode(data)
		if err != nil {
			if chunks != nil {
				t.Fatalf("failed decode returned %d chunks", len(chunks))
			}
			return
		}
		if chunks[0].Type.Kind != png.KindImageHeader {
			t.Fatalf("first chunk is %v", chunks[0].Type)
		}
		if chunks[len(chunks)-1].Type.Kind != png.KindImageTrailer {
			t.Fatalf("last chunk is %v", chunks[len(chunks)-1].Type)
		}
	})
}

func FuzzIsPNG(f *testing.F) {
	f.Add([]byte(png.Signature))
	f.Add([]byte{})
	f.Add([]byte{0x89})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Fuzzing should not panic
		png.IsPNG(data)
	})
}

package spanpix

import "testing"

// renderRow pulls one run from a renderer and expands the resulting
// spans into a flat pixel slice.
func renderRow[P Pixel[P]](t *testing.T, r Renderer[P], x, y, length int) []P {
	t.Helper()
	var buf SpanBuffer[P]
	r.Render(x, y, length, &buf)
	if got := buf.TotalLength(); got != length {
		t.Fatalf("render(%d, %d, %d) produced %d pixels", x, y, length, got)
	}
	return expandSpans(&buf)
}

func expandSpans[P Pixel[P]](buf *SpanBuffer[P]) []P {
	out := make([]P, 0, buf.TotalLength())
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			for k := 0; k < s.Length; k++ {
				out = append(out, s.Pixels[0])
			}
		} else {
			out = append(out, s.Pixels[:s.Length]...)
		}
	}
	return out
}

// renderRowChunked renders the same run in pieces of the given chunk
// size, concatenating the pixels.
func renderRowChunked[P Pixel[P]](t *testing.T, r Renderer[P], x, y, length, chunk int) []P {
	t.Helper()
	out := make([]P, 0, length)
	for off := 0; off < length; off += chunk {
		n := min(chunk, length-off)
		out = append(out, renderRow(t, r, x+off, y, n)...)
	}
	return out
}

func mustRaster[P Pixel[P]](t *testing.T, bounds IntRect, opaque bool) *SelfContainedRaster[P] {
	t.Helper()
	r, err := NewSelfContainedRaster[P](bounds, opaque)
	if err != nil {
		t.Fatalf("NewSelfContainedRaster(%+v) = %v", bounds, err)
	}
	return r
}

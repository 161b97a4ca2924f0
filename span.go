package spanpix

// Span records a run of consecutive pixels produced by a renderer.
//
// A solid span repeats a single value for its whole length; its Pixels
// slice holds exactly one element. A variable span holds one element per
// position. The Opaque flag is a producer guarantee that every pixel in
// the run has full alpha, letting downstream operators skip per-pixel
// inspection.
type Span[P Pixel[P]] struct {
	Length int
	Solid  bool
	Opaque bool
	Pixels []P
}

// IsTransparent reports whether the span is a solid run of the
// transparent value.
func (s *Span[P]) IsTransparent() bool {
	return s.Solid && s.Pixels[0].IsTransparent()
}

// IsMaximum reports whether the span is a solid run of the saturated
// value.
func (s *Span[P]) IsMaximum() bool {
	return s.Solid && s.Pixels[0].IsMaximum()
}

// SolidPixel returns the repeated value of a solid span.
func (s *Span[P]) SolidPixel() P {
	if !s.Solid {
		panic("spanpix: SolidPixel on variable span")
	}
	return s.Pixels[0]
}

// SpanBuffer accumulates the spans deposited by one Render call. Pixel
// storage for variable spans comes from an internal arena; reference
// spans alias caller-owned raster memory instead.
//
// A SpanBuffer is a scratch structure: allocate one per render traversal
// (or reuse after Reset) and do not share it between goroutines.
type SpanBuffer[P Pixel[P]] struct {
	Spans []Span[P]

	arena []P
	used  int
}

// Reset empties the buffer, retaining allocated capacity.
func (b *SpanBuffer[P]) Reset() {
	b.Spans = b.Spans[:0]
	b.used = 0
}

// TotalLength returns the sum of all span lengths.
func (b *SpanBuffer[P]) TotalLength() int {
	total := 0
	for i := range b.Spans {
		total += b.Spans[i].Length
	}
	return total
}

// alloc reserves n pixels of arena storage. Starting a fresh chunk when
// the current one is exhausted keeps previously returned slices valid.
func (b *SpanBuffer[P]) alloc(n int) []P {
	if len(b.arena)-b.used < n {
		size := MaxRenderLength
		if n > size {
			size = n
		}
		b.arena = make([]P, size)
		b.used = 0
	}
	s := b.arena[b.used : b.used+n : b.used+n]
	b.used += n
	return s
}

func checkSpanLength(length int) {
	if length <= 0 || length > MaxRenderLength {
		panic("spanpix: span length out of range")
	}
}

// AddSolid appends a solid span of the given length.
func (b *SpanBuffer[P]) AddSolid(length int, pixel P) {
	checkSpanLength(length)
	px := b.alloc(1)
	px[0] = pixel
	b.Spans = append(b.Spans, Span[P]{
		Length: length,
		Solid:  true,
		Opaque: pixel.IsOpaque(),
		Pixels: px,
	})
}

// AddTransparent appends a solid span of the transparent value.
func (b *SpanBuffer[P]) AddTransparent(length int) {
	var zero P
	b.AddSolid(length, zero)
}

// AddVariable reserves storage for length pixels and returns the slice
// for the caller to fill. The opaque flag is the producer's promise that
// every written pixel will have full alpha.
func (b *SpanBuffer[P]) AddVariable(length int, opaque bool) []P {
	checkSpanLength(length)
	px := b.alloc(length)
	b.Spans = append(b.Spans, Span[P]{
		Length: length,
		Solid:  false,
		Opaque: opaque,
		Pixels: px,
	})
	return px
}

// AddReference appends a variable span aliasing externally owned pixels.
// The referenced memory must stay valid and unmodified until the buffer
// is consumed.
func (b *SpanBuffer[P]) AddReference(length int, pixels []P, opaque bool) {
	checkSpanLength(length)
	b.Spans = append(b.Spans, Span[P]{
		Length: length,
		Solid:  false,
		Opaque: opaque,
		Pixels: pixels[:length],
	})
}

// AddSpan appends a copy of an existing span header (the pixel data is
// shared).
func (b *SpanBuffer[P]) AddSpan(s Span[P]) {
	b.Spans = append(b.Spans, s)
}

// Split divides the span at index i into two adjacent spans of lengths
// k and length-k. Solid spans share their single pixel; variable spans
// split their pixel slice. Used to align two buffers during operator
// merging.
func (b *SpanBuffer[P]) Split(i, k int) {
	s := b.Spans[i]
	if k <= 0 || k >= s.Length {
		panic("spanpix: split point out of range")
	}
	first := s
	second := s
	first.Length = k
	second.Length = s.Length - k
	if !s.Solid {
		first.Pixels = s.Pixels[:k]
		second.Pixels = s.Pixels[k:]
	}
	b.Spans = append(b.Spans, Span[P]{})
	copy(b.Spans[i+1:], b.Spans[i:])
	b.Spans[i] = first
	b.Spans[i+1] = second
}

// mergeAlign splits whichever of spansA[i] and spansB[j] is longer so
// that the two spans end up with equal lengths. Binary operators call it
// while walking two buffers in lockstep.
func mergeAlign[A Pixel[A], B Pixel[B]](bufA *SpanBuffer[A], bufB *SpanBuffer[B], i, j int) {
	lengthA := bufA.Spans[i].Length
	lengthB := bufB.Spans[j].Length
	if lengthA < lengthB {
		bufB.Split(j, lengthA)
	} else if lengthB < lengthA {
		bufA.Split(i, lengthB)
	}
}

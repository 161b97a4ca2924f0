package spanpix

// RLERaster stores the output of a renderer as run-length-compressed
// spans, one index entry per row. It is itself a renderer, so expensive
// expressions can be evaluated once and replayed cheaply.
//
// Rendering keeps a sequential cursor per raster: walking rows top to
// bottom and spans left to right is O(1) per request, while random
// access restarts from the row index.
type RLERaster[P Pixel[P]] struct {
	bounds IntRect
	spans  []uint16 // length (low 14 bits) | solid 0x8000 | opaque 0x4000
	pixels []P
	rows   [][2]int // per row: first span index, first pixel index
	opaque bool

	lastX         int
	lastY         int
	lastSpanIndex int
	lastPixelIndex int
}

const (
	rleSolidFlag  = 0x8000
	rleOpaqueFlag = 0x4000
	rleLengthMask = 0x3FFF
)

// NewRLERaster evaluates source over bounds and compresses the result.
func NewRLERaster[P Pixel[P]](bounds IntRect, source Renderer[P]) *RLERaster[P] {
	r := &RLERaster[P]{bounds: bounds}
	r.fill(source)
	return r
}

// Bounds implements Renderer.
func (r *RLERaster[P]) Bounds() IntRect { return r.bounds }

// IsOpaque reports whether every stored span was opaque.
func (r *RLERaster[P]) IsOpaque() bool { return r.opaque }

// Rewind resets the sequential cursor.
func (r *RLERaster[P]) Rewind() {
	r.lastX = r.bounds.Left
	r.lastY = r.bounds.Top
	r.lastSpanIndex = 0
	r.lastPixelIndex = 0
}

// Refill re-evaluates the raster from a new source over the same bounds.
func (r *RLERaster[P]) Refill(source Renderer[P]) {
	r.spans = r.spans[:0]
	r.pixels = r.pixels[:0]
	r.rows = r.rows[:0]
	r.fill(source)
}

func (r *RLERaster[P]) fill(source Renderer[P]) {
	r.opaque = true
	right := r.bounds.Right()
	bottom := r.bounds.Bottom()
	var buf SpanBuffer[P]
	for y := r.bounds.Top; y < bottom; y++ {
		r.rows = append(r.rows, [2]int{len(r.spans), len(r.pixels)})
		first := true
		for x := r.bounds.Left; x < right; x += MaxRenderLength {
			length := min(right-x, MaxRenderLength)
			buf.Reset()
			source.Render(x, y, length, &buf)
			for i := range buf.Spans {
				s := &buf.Spans[i]
				flags := uint16(0)
				if s.Solid {
					flags |= rleSolidFlag
				}
				if s.Opaque {
					flags |= rleOpaqueFlag
				} else {
					r.opaque = false
				}
				span := uint16(s.Length) | flags

				// Merge with the previous span when compatible: same
				// flags, same color for solids, and combined length
				// still within 14 bits.
				last := len(r.spans) - 1
				if !first &&
					span&(rleSolidFlag|rleOpaqueFlag) == r.spans[last]&(rleSolidFlag|rleOpaqueFlag) &&
					(!s.Solid || s.Pixels[0] == r.pixels[len(r.pixels)-1]) &&
					int(r.spans[last]&rleLengthMask)+s.Length < 0x4000 {
					r.spans[last] += uint16(s.Length)
					if !s.Solid {
						r.pixels = append(r.pixels, s.Pixels...)
					}
				} else {
					r.spans = append(r.spans, span)
					if s.Solid {
						r.pixels = append(r.pixels, s.Pixels[0])
					} else {
						r.pixels = append(r.pixels, s.Pixels...)
					}
				}
				first = false
			}
		}
	}
	r.Rewind()
}

// Render implements Renderer.
func (r *RLERaster[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	if y >= r.bounds.Top && y < r.bounds.Bottom() {
		if x < r.bounds.Left {
			c := min(r.bounds.Left-x, length)
			out.AddTransparent(c)
			x += c
			length -= c
		}
		var spanIndex, pixelIndex, sx int
		if y != r.lastY || x < r.lastX {
			spanIndex = r.rows[y-r.bounds.Top][0]
			pixelIndex = r.rows[y-r.bounds.Top][1]
			sx = r.bounds.Left
		} else {
			spanIndex = r.lastSpanIndex
			pixelIndex = r.lastPixelIndex
			sx = r.lastX
		}
		for length > 0 && x < r.bounds.Right() {
			c := min(r.bounds.Right()-x, length)
			l := int(r.spans[spanIndex] & rleLengthMask)
			for x >= sx+l {
				sx += l
				if r.spans[spanIndex]&rleSolidFlag != 0 {
					pixelIndex++
				} else {
					pixelIndex += l
				}
				spanIndex++
				l = int(r.spans[spanIndex] & rleLengthMask)
			}
			c = min(c, sx+l-x)
			if r.spans[spanIndex]&rleSolidFlag != 0 {
				out.AddSolid(c, r.pixels[pixelIndex])
			} else {
				out.AddReference(c, r.pixels[pixelIndex+x-sx:], r.spans[spanIndex]&rleOpaqueFlag != 0)
			}
			x += c
			length -= c
		}
		r.lastX = sx
		r.lastY = y
		r.lastSpanIndex = spanIndex
		r.lastPixelIndex = pixelIndex
	}
	if length > 0 {
		out.AddTransparent(length)
	}
}

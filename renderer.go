package spanpix

// Renderer produces pixels on demand, one horizontal run at a time.
//
// Render appends spans totaling exactly length pixels for the run
// starting at (x, y) to out. length must be in 1..MaxRenderLength;
// violating this is a programming error and panics. Bounds returns a
// conservative rectangle outside of which the renderer only produces
// transparent pixels; renderers without a natural bound return FullRect.
//
// Renderers form a directed acyclic expression tree. A tree must be
// rendered by one goroutine at a time, but distinct trees over distinct
// rasters are independent.
type Renderer[P Pixel[P]] interface {
	Bounds() IntRect
	Render(x, y, length int, out *SpanBuffer[P])
}

func checkRenderLength(length int) {
	if length <= 0 || length > MaxRenderLength {
		panic("spanpix: render length out of range")
	}
}

// Fill renders source into the destination raster over the given area,
// pulling spans of at most MaxRenderLength pixels. The area must lie
// within the raster bounds.
func Fill[P Pixel[P]](dst *Raster[P], source Renderer[P], area IntRect) {
	if !area.IsEmpty() && dst.bounds.Union(area) != dst.bounds {
		panic("spanpix: fill area outside raster bounds")
	}
	right := area.Right()
	bottom := area.Bottom()
	var buf SpanBuffer[P]
	for y := area.Top; y < bottom; y++ {
		for x := area.Left; x < right; x += MaxRenderLength {
			length := min(right-x, MaxRenderLength)
			buf.Reset()
			source.Render(x, y, length, &buf)
			row := dst.rowSlice(x, y, length)
			pos := 0
			for i := range buf.Spans {
				s := &buf.Spans[i]
				if s.Solid {
					fillPixels(row[pos:pos+s.Length], s.Pixels[0])
				} else {
					copy(row[pos:pos+s.Length], s.Pixels)
				}
				pos += s.Length
			}
		}
	}
}

// fillPixels sets every element of target to color, doubling a copied
// prefix instead of writing element by element.
func fillPixels[P Pixel[P]](target []P, color P) {
	if len(target) == 0 {
		return
	}
	target[0] = color
	for filled := 1; filled < len(target); filled *= 2 {
		copy(target[filled:], target[:filled])
	}
}

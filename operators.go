package spanpix

// rowIntersects reports whether the run [x, x+length) on row y can touch
// the rectangle. Binary operators use it to skip pulling inputs that
// cannot contribute.
func rowIntersects(r IntRect, x, y, length int) bool {
	return y >= r.Top && y < r.Bottom() && x+length > r.Left && x < r.Right()
}

// Blender composites an overlay renderer over a background renderer with
// premultiplied source-over. Span-level short circuits: a transparent
// overlay span passes the background through untouched, and a fully
// opaque overlay span replaces it. Background rendering is skipped only
// for opaque overlay spans at the leading or trailing end of a request.
type Blender[P Pixel[P]] struct {
	a, b    Renderer[P]
	boundsA IntRect
	boundsB IntRect
}

// NewBlender creates a blend operator; a is the background, b the
// overlay.
func NewBlender[P Pixel[P]](a, b Renderer[P]) *Blender[P] {
	return &Blender[P]{a: a, b: b, boundsA: a.Bounds(), boundsB: b.Bounds()}
}

// Bounds implements Renderer.
func (bl *Blender[P]) Bounds() IntRect { return bl.boundsA.Union(bl.boundsB) }

// Render implements Renderer.
func (bl *Blender[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)

	intersectsA := rowIntersects(bl.boundsA, x, y, length)
	intersectsB := rowIntersects(bl.boundsB, x, y, length)
	switch {
	case !intersectsA && !intersectsB:
		out.AddTransparent(length)
		return
	case !intersectsB:
		bl.a.Render(x, y, length, out)
		return
	case !intersectsA:
		bl.b.Render(x, y, length, out)
		return
	}

	var bufB SpanBuffer[P]
	bl.b.Render(x, y, length, &bufB)
	if len(bufB.Spans) == 1 && bufB.Spans[0].IsTransparent() {
		bl.a.Render(x, y, length, out)
		return
	}

	right := x + length

	// Fully opaque leading and trailing overlay runs need no background.
	j := 0
	for j < len(bufB.Spans) && bufB.Spans[j].Opaque {
		out.AddSpan(bufB.Spans[j])
		x += bufB.Spans[j].Length
		j++
	}
	end := len(bufB.Spans)
	for end > j && bufB.Spans[end-1].Opaque {
		end--
		right -= bufB.Spans[end].Length
	}

	var bufA SpanBuffer[P]
	if x < right {
		bl.a.Render(x, y, right-x, &bufA)
	}

	for i := 0; i < len(bufA.Spans); i++ {
		mergeAlign(&bufA, &bufB, i, j)
		spanA := &bufA.Spans[i]
		spanB := &bufB.Spans[j]
		j++
		n := spanA.Length
		switch {
		case spanB.IsTransparent():
			out.AddSpan(*spanA)
		case spanB.Opaque:
			out.AddSpan(*spanB)
		case spanA.Solid && spanB.Solid:
			out.AddSolid(n, spanA.Pixels[0].Blend(spanB.Pixels[0]))
		default:
			px := out.AddVariable(n, spanA.Opaque)
			switch {
			case spanA.Solid:
				pa := spanA.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = pa.Blend(spanB.Pixels[k])
				}
			case spanB.Solid:
				pb := spanB.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = spanA.Pixels[k].Blend(pb)
				}
			default:
				for k := 0; k < n; k++ {
					px[k] = spanA.Pixels[k].Blend(spanB.Pixels[k])
				}
			}
		}
	}

	// The merge walk consumed every overlay span covering [x, right);
	// what remains are the trimmed trailing opaque spans.
	for ; j < len(bufB.Spans); j++ {
		out.AddSpan(bufB.Spans[j])
	}
}

// Adder adds two renderers channel by channel with saturation. Transparent
// spans on either side pass the other side through; saturated spans stay
// saturated.
type Adder[P Pixel[P]] struct {
	a, b Renderer[P]
}

// NewAdder creates an addition operator.
func NewAdder[P Pixel[P]](a, b Renderer[P]) *Adder[P] {
	return &Adder[P]{a: a, b: b}
}

// Bounds implements Renderer.
func (ad *Adder[P]) Bounds() IntRect {
	return ad.a.Bounds().Union(ad.b.Bounds())
}

// Render implements Renderer.
func (ad *Adder[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)

	var bufB SpanBuffer[P]
	ad.b.Render(x, y, length, &bufB)
	if len(bufB.Spans) == 1 && bufB.Spans[0].IsTransparent() {
		ad.a.Render(x, y, length, out)
		return
	}

	// Saturated leading and trailing runs stay saturated regardless of a.
	var maxPixel P
	maxPixel = maxPixel.Maximum()
	leftEdge := x
	rightEdge := x + length
	j := 0
	for j < len(bufB.Spans) && bufB.Spans[j].IsMaximum() {
		leftEdge += bufB.Spans[j].Length
		j++
	}
	end := len(bufB.Spans)
	for end > j && bufB.Spans[end-1].IsMaximum() {
		end--
		rightEdge -= bufB.Spans[end].Length
	}
	if leftEdge > x {
		out.AddSolid(leftEdge-x, maxPixel)
	}

	var bufA SpanBuffer[P]
	if leftEdge < rightEdge {
		ad.a.Render(leftEdge, y, rightEdge-leftEdge, &bufA)
	}

	for i := 0; i < len(bufA.Spans); i++ {
		mergeAlign(&bufA, &bufB, i, j)
		spanA := &bufA.Spans[i]
		spanB := &bufB.Spans[j]
		j++
		n := spanA.Length
		switch {
		case spanA.IsMaximum() || spanB.IsTransparent():
			out.AddSpan(*spanA)
		case spanB.IsMaximum() || spanA.IsTransparent():
			out.AddSpan(*spanB)
		case spanA.Solid && spanB.Solid:
			out.AddSolid(n, spanA.Pixels[0].Add(spanB.Pixels[0]))
		default:
			px := out.AddVariable(n, spanA.Opaque || spanB.Opaque)
			switch {
			case spanA.Solid:
				pa := spanA.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = pa.Add(spanB.Pixels[k])
				}
			case spanB.Solid:
				pb := spanB.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = spanA.Pixels[k].Add(pb)
				}
			default:
				for k := 0; k < n; k++ {
					px[k] = spanA.Pixels[k].Add(spanB.Pixels[k])
				}
			}
		}
	}

	if x+length > rightEdge {
		out.AddSolid(x+length-rightEdge, maxPixel)
	}
}

// Multiplier multiplies two renderers of the same pixel format channel by
// channel. A saturated span on one side passes the other through; a
// transparent span forces transparency.
type Multiplier[P Pixel[P]] struct {
	a, b Renderer[P]
}

// NewMultiplier creates a multiplication operator.
func NewMultiplier[P Pixel[P]](a, b Renderer[P]) *Multiplier[P] {
	return &Multiplier[P]{a: a, b: b}
}

// Bounds implements Renderer.
func (mu *Multiplier[P]) Bounds() IntRect {
	return mu.a.Bounds().Intersection(mu.b.Bounds())
}

// Render implements Renderer.
func (mu *Multiplier[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	renderMultiply[P, P](mu.a, mu.b, multiplySame[P], x, y, length, out)
}

// MaskMultiplier multiplies a renderer by a Mask8 coverage source. This
// is the masking operation of the pipeline: polygon coverage, gradient
// masks and clip masks all attach to color pipelines through it.
type MaskMultiplier[P Pixel[P]] struct {
	a Renderer[P]
	b Renderer[Mask8]
}

// NewMaskMultiplier creates a masking operator.
func NewMaskMultiplier[P Pixel[P]](a Renderer[P], b Renderer[Mask8]) *MaskMultiplier[P] {
	return &MaskMultiplier[P]{a: a, b: b}
}

// Bounds implements Renderer.
func (mu *MaskMultiplier[P]) Bounds() IntRect {
	return mu.a.Bounds().Intersection(mu.b.Bounds())
}

// Render implements Renderer.
func (mu *MaskMultiplier[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	renderMultiply[P, Mask8](mu.a, mu.b, func(a P, m Mask8) P { return a.ModulateMask(m) }, x, y, length, out)
}

func multiplySame[P Pixel[P]](a, b P) P { return a.Multiply(b) }

// renderMultiply implements the shared multiply walk for same-format and
// mask multiplication.
func renderMultiply[A Pixel[A], B Pixel[B]](ra Renderer[A], rb Renderer[B], op func(A, B) A, x, y, length int, out *SpanBuffer[A]) {
	var bufB SpanBuffer[B]
	rb.Render(x, y, length, &bufB)
	if len(bufB.Spans) == 1 && bufB.Spans[0].IsMaximum() {
		ra.Render(x, y, length, out)
		return
	}

	// Transparent leading and trailing factor runs force transparency.
	leftEdge := x
	rightEdge := x + length
	j := 0
	for j < len(bufB.Spans) && bufB.Spans[j].IsTransparent() {
		leftEdge += bufB.Spans[j].Length
		j++
	}
	end := len(bufB.Spans)
	for end > j && bufB.Spans[end-1].IsTransparent() {
		end--
		rightEdge -= bufB.Spans[end].Length
	}
	if leftEdge > x {
		out.AddTransparent(leftEdge - x)
	}

	var bufA SpanBuffer[A]
	if leftEdge < rightEdge {
		ra.Render(leftEdge, y, rightEdge-leftEdge, &bufA)
	}

	for i := 0; i < len(bufA.Spans); i++ {
		mergeAlign(&bufA, &bufB, i, j)
		spanA := &bufA.Spans[i]
		spanB := &bufB.Spans[j]
		j++
		n := spanA.Length
		switch {
		case spanA.IsTransparent() || spanB.IsMaximum():
			out.AddSpan(*spanA)
		case spanB.IsTransparent():
			out.AddTransparent(n)
		case spanA.Solid && spanB.Solid:
			out.AddSolid(n, op(spanA.Pixels[0], spanB.Pixels[0]))
		default:
			px := out.AddVariable(n, spanA.Opaque && spanB.Opaque)
			switch {
			case spanA.Solid:
				pa := spanA.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = op(pa, spanB.Pixels[k])
				}
			case spanB.Solid:
				pb := spanB.Pixels[0]
				for k := 0; k < n; k++ {
					px[k] = op(spanA.Pixels[k], pb)
				}
			default:
				for k := 0; k < n; k++ {
					px[k] = op(spanA.Pixels[k], spanB.Pixels[k])
				}
			}
		}
	}

	if x+length > rightEdge {
		out.AddTransparent(x + length - rightEdge)
	}
}

// Inverter complements every channel of its source. Because inversion
// turns transparency into a saturated value, its bounds are unbounded.
type Inverter[P Pixel[P]] struct {
	source Renderer[P]
}

// NewInverter creates an inversion operator.
func NewInverter[P Pixel[P]](source Renderer[P]) *Inverter[P] {
	return &Inverter[P]{source: source}
}

// Bounds implements Renderer.
func (in *Inverter[P]) Bounds() IntRect { return FullRect }

// Render implements Renderer.
func (in *Inverter[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	var buf SpanBuffer[P]
	in.source.Render(x, y, length, &buf)
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			out.AddSolid(s.Length, s.Pixels[0].Invert())
			continue
		}
		px := out.AddVariable(s.Length, false)
		for k := 0; k < s.Length; k++ {
			px[k] = s.Pixels[k].Invert()
		}
	}
}

// ColorToMask converts an ARGB32 source into its coverage by extracting
// the alpha channel.
type ColorToMask struct {
	Source Renderer[ARGB32]
}

// Bounds implements Renderer. Transparency converts to transparency, so
// the source bounds carry over.
func (c ColorToMask) Bounds() IntRect { return c.Source.Bounds() }

// Render implements Renderer.
func (c ColorToMask) Render(x, y, length int, out *SpanBuffer[Mask8]) {
	checkRenderLength(length)
	var buf SpanBuffer[ARGB32]
	c.Source.Render(x, y, length, &buf)
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			out.AddSolid(s.Length, s.Pixels[0].Mask())
			continue
		}
		px := out.AddVariable(s.Length, s.Opaque)
		for k := 0; k < s.Length; k++ {
			px[k] = s.Pixels[k].Mask()
		}
	}
}

// MaskToColor converts a Mask8 source into premultiplied white at the
// mask's opacity by broadcasting the coverage to every channel.
type MaskToColor struct {
	Source Renderer[Mask8]
}

// Bounds implements Renderer.
func (c MaskToColor) Bounds() IntRect { return c.Source.Bounds() }

// Render implements Renderer.
func (c MaskToColor) Render(x, y, length int, out *SpanBuffer[ARGB32]) {
	checkRenderLength(length)
	var buf SpanBuffer[Mask8]
	c.Source.Render(x, y, length, &buf)
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			out.AddSolid(s.Length, s.Pixels[0].ARGB())
			continue
		}
		px := out.AddVariable(s.Length, s.Opaque)
		for k := 0; k < s.Length; k++ {
			px[k] = s.Pixels[k].ARGB()
		}
	}
}

// Lookup maps a Mask8 source through a 256-entry table, typically a
// Gradient. Coverage 0 maps to table entry 0, full coverage to entry 255.
type Lookup[P Pixel[P]] struct {
	source Renderer[Mask8]
	table  *LookupTable[P]
}

// NewLookup creates a table-lookup renderer.
func NewLookup[P Pixel[P]](source Renderer[Mask8], table *LookupTable[P]) *Lookup[P] {
	return &Lookup[P]{source: source, table: table}
}

// Bounds implements Renderer. When entry 0 is transparent the source
// bounds carry over; otherwise the lookup produces color everywhere.
func (l *Lookup[P]) Bounds() IntRect {
	if l.table.table[0].IsTransparent() {
		return l.source.Bounds()
	}
	return FullRect
}

// Render implements Renderer.
func (l *Lookup[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	var buf SpanBuffer[Mask8]
	l.source.Render(x, y, length, &buf)
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			out.AddSolid(s.Length, l.table.table[s.Pixels[0]])
			continue
		}
		px := out.AddVariable(s.Length, l.table.opaque)
		for k := 0; k < s.Length; k++ {
			px[k] = l.table.table[s.Pixels[k]]
		}
	}
}

// Optimizer re-analyzes the spans of its source, recovering solid and
// opaque runs that the producer emitted as plain variable data. Useful in
// front of expensive downstream operators when the source is known to
// contain long uniform runs it does not flag.
type Optimizer[P Pixel[P]] struct {
	source Renderer[P]
}

// NewOptimizer creates a span-analyzing pass-through renderer.
func NewOptimizer[P Pixel[P]](source Renderer[P]) *Optimizer[P] {
	return &Optimizer[P]{source: source}
}

// Bounds implements Renderer.
func (o *Optimizer[P]) Bounds() IntRect { return o.source.Bounds() }

// Render implements Renderer.
func (o *Optimizer[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	var buf SpanBuffer[P]
	o.source.Render(x, y, length, &buf)
	for i := range buf.Spans {
		s := &buf.Spans[i]
		if s.Solid {
			out.AddSpan(*s)
			continue
		}
		if s.Opaque {
			analyzeOpaque(s.Pixels, out)
		} else {
			analyzeNonOpaque(s.Pixels, out)
		}
	}
}

// flushVariable emits the pending variable run px[b:e] as a reference
// span and returns e.
func flushVariable[P Pixel[P]](px []P, b, e int, opaque bool, out *SpanBuffer[P]) int {
	if e > b {
		out.AddReference(e-b, px[b:e], opaque)
	}
	return e
}

// solidRunAt reports whether a solid run of at least four pixels starts
// at p.
func solidRunAt[P Pixel[P]](px []P, p int) bool {
	return p+4 <= len(px) && px[p+1] == px[p] && px[p+2] == px[p] && px[p+3] == px[p]
}

// analyzeSolid consumes the solid run starting at p and emits it as a
// solid span, returning the first position past the run.
func analyzeSolid[P Pixel[P]](px []P, p int, out *SpanBuffer[P]) int {
	b := p
	p += 4
	for p < len(px) && px[p] == px[b] {
		p++
	}
	out.AddSolid(p-b, px[b])
	return p
}

func analyzeOpaque[P Pixel[P]](px []P, out *SpanBuffer[P]) {
	b := 0
	p := 0
	for p < len(px) {
		if solidRunAt(px, p) {
			b = flushVariable(px, b, p, true, out)
			p = analyzeSolid(px, b, out)
			b = p
		} else {
			p++
		}
	}
	flushVariable(px, b, p, true, out)
}

func analyzeNonOpaque[P Pixel[P]](px []P, out *SpanBuffer[P]) {
	b := 0
	p := 0
	for p < len(px) {
		switch {
		case solidRunAt(px, p):
			b = flushVariable(px, b, p, false, out)
			p = analyzeSolid(px, b, out)
			b = p
		case p+4 <= len(px) && px[p].IsOpaque() && px[p+1].IsOpaque() && px[p+2].IsOpaque() && px[p+3].IsOpaque():
			b = flushVariable(px, b, p, false, out)
			// Consume the opaque run, recovering solid sub-runs inside it.
			q := b
			for q < len(px) && px[q].IsOpaque() {
				if solidRunAt(px, q) {
					b = flushVariable(px, b, q, true, out)
					q = analyzeSolid(px, b, out)
					b = q
				} else {
					q++
				}
			}
			b = flushVariable(px, b, q, true, out)
			p = q
		default:
			p++
		}
	}
	flushVariable(px, b, p, false, out)
}

package spanpix

// Texture samples a raster under an affine transformation with bilinear
// filtering. With wrap enabled the source tiles infinitely; otherwise
// the surroundings are transparent and the output bounds are derived
// from the transformed source rectangle.
//
// Integer translations degrade to reference spans straight into the
// source raster; everything else goes through per-pixel sampling driven
// by fixed-point forward differences of the inverse transform.
type Texture[P Pixel[P]] struct {
	image        *Raster[P]
	imageBounds  IntRect
	wrap         bool
	opaque       bool
	outputBounds IntRect
	valid        bool
	identity     bool

	dxx, dxy Fixed32_32 // source step per destination x step
	dyx, dyy Fixed32_32 // source step per destination y step
	ox, oy   Fixed32_32 // source position of destination (0, 0)
}

// NewTexture creates a texture sampling image (restricted to sourceRect,
// pass FullRect for the whole raster) under the given transformation.
// A non-invertible transformation, which in practice means an extreme
// downscale, produces a texture that renders nothing.
func NewTexture[P Pixel[P]](image *Raster[P], wrap bool, transformation Matrix, sourceRect IntRect) *Texture[P] {
	t := &Texture[P]{
		image:        image,
		imageBounds:  image.Bounds().Intersection(sourceRect),
		wrap:         wrap,
		opaque:       image.IsOpaque(),
		outputBounds: FullRect,
	}

	inverse, ok := transformation.Inverse()
	if !ok {
		Logger().Debug("spanpix: texture transform not invertible")
		return t
	}
	t.valid = true

	if !wrap {
		// Transform the (slightly expanded) source rectangle to bound
		// the output.
		outline := NewPath()
		outline.AddRect(float64(t.imageBounds.Left-1), float64(t.imageBounds.Top-1),
			float64(t.imageBounds.Width+1), float64(t.imageBounds.Height+1))
		outline.Transform(transformation)
		b := outline.IntBounds()
		b.Left--
		b.Top--
		b.Width += 3
		b.Height += 3
		t.outputBounds = b
	}

	t.dxx = FixedFromFloat(inverse.A)
	t.dxy = FixedFromFloat(inverse.D)
	t.dyx = FixedFromFloat(inverse.B)
	t.dyy = FixedFromFloat(inverse.E)

	// Offset by the source top-left in integer space so clipping against
	// the source rectangle stays exact.
	t.ox = FixedFromFloat(inverse.C).Add(FixedFromInt32(int32(-t.imageBounds.Left), 0))
	t.oy = FixedFromFloat(inverse.F).Add(FixedFromInt32(int32(-t.imageBounds.Top), 0))

	t.identity = t.dxx == FixedFromInt32(1, 0) && t.dxy == 0 &&
		t.dyx == 0 && t.dyy == FixedFromInt32(1, 0) &&
		t.ox.Lo()>>24 == 0 && t.oy.Lo()>>24 == 0
	return t
}

// Bounds implements Renderer.
func (t *Texture[P]) Bounds() IntRect {
	if !t.valid {
		return IntRect{}
	}
	return t.outputBounds
}

// Render implements Renderer.
func (t *Texture[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	if !t.valid || y < t.outputBounds.Top || y >= t.outputBounds.Bottom() ||
		x+length <= t.outputBounds.Left || x >= t.outputBounds.Right() {
		out.AddTransparent(length)
		return
	}
	if t.identity {
		t.renderIdentity(x, y, length, out)
		return
	}
	t.renderSampled(x, y, length, out)
}

// renderIdentity copies source rows directly, tiling when wrapping.
func (t *Texture[P]) renderIdentity(x, y, length int, out *SpanBuffer[P]) {
	w := t.imageBounds.Width
	h := t.imageBounds.Height
	col := int(t.ox.Hi()) + x
	row := int(t.oy.Hi()) + y

	if t.wrap {
		row = wrapIndex(row, h)
		col = wrapIndex(col, w)
		for length > 0 {
			c := min(w-col, length)
			out.AddReference(c, t.image.rowSlice(t.imageBounds.Left+col, t.imageBounds.Top+row, c), t.opaque)
			length -= c
			col = 0
		}
		return
	}

	if row < 0 || row >= h || col >= w {
		out.AddTransparent(length)
		return
	}
	if col < 0 {
		c := min(-col, length)
		out.AddTransparent(c)
		col += c
		length -= c
	}
	if length > 0 && col < w {
		c := min(w-col, length)
		out.AddReference(c, t.image.rowSlice(t.imageBounds.Left+col, t.imageBounds.Top+row, c), t.opaque)
		col += c
		length -= c
	}
	if length > 0 {
		out.AddTransparent(length)
	}
}

// renderSampled walks the inverse-transformed span pixel by pixel,
// emitting transparent runs where the source cannot contribute and
// bilinear samples elsewhere.
func (t *Texture[P]) renderSampled(x, y, length int, out *SpanBuffer[P]) {
	sx := t.ox.Add(t.dxx.MulInt32(int32(x))).Add(t.dyx.MulInt32(int32(y)))
	sy := t.oy.Add(t.dxy.MulInt32(int32(x))).Add(t.dyy.MulInt32(int32(y)))

	w := t.imageBounds.Width
	h := t.imageBounds.Height
	var samples [MaxRenderLength]P

	i := 0
	for i < length {
		col := int(sx.Hi())
		row := int(sy.Hi())
		if !t.wrap && (col < -1 || col >= w || row < -1 || row >= h) {
			// Outside the source including its one-pixel filter skirt.
			run := 0
			for i < length {
				col = int(sx.Hi())
				row = int(sy.Hi())
				if col >= -1 && col < w && row >= -1 && row < h {
					break
				}
				run++
				i++
				sx = sx.Add(t.dxx)
				sy = sy.Add(t.dxy)
			}
			out.AddTransparent(run)
			continue
		}

		start := i
		for i < length {
			col = int(sx.Hi())
			row = int(sy.Hi())
			if !t.wrap && (col < -1 || col >= w || row < -1 || row >= h) {
				break
			}
			samples[i] = t.sample(col, row, sx.Lo()>>24, sy.Lo()>>24)
			i++
			sx = sx.Add(t.dxx)
			sy = sy.Add(t.dxy)
		}
		px := out.AddVariable(i-start, t.wrap && t.opaque)
		copy(px, samples[start:i])
	}
}

// sample bilinearly filters the four source pixels around (col, row)
// with fractions fx and fy in 0..256. Outside pixels wrap or read as
// transparent.
func (t *Texture[P]) sample(col, row int, fx, fy uint32) P {
	w := t.imageBounds.Width
	h := t.imageBounds.Height
	var c00, c10, c01, c11 P
	if t.wrap {
		x0 := wrapIndex(col, w)
		x1 := wrapIndex(col+1, w)
		y0 := wrapIndex(row, h)
		y1 := wrapIndex(row+1, h)
		c00 = t.image.Pixel(t.imageBounds.Left+x0, t.imageBounds.Top+y0)
		c10 = t.image.Pixel(t.imageBounds.Left+x1, t.imageBounds.Top+y0)
		c01 = t.image.Pixel(t.imageBounds.Left+x0, t.imageBounds.Top+y1)
		c11 = t.image.Pixel(t.imageBounds.Left+x1, t.imageBounds.Top+y1)
	} else {
		at := func(cx, cy int) P {
			var zero P
			if cx < 0 || cx >= w || cy < 0 || cy >= h {
				return zero
			}
			return t.image.Pixel(t.imageBounds.Left+cx, t.imageBounds.Top+cy)
		}
		c00 = at(col, row)
		c10 = at(col+1, row)
		c01 = at(col, row+1)
		c11 = at(col+1, row+1)
	}
	return Bilinear(c00, c10, c01, c11, fx, fy)
}

// wrapIndex folds v into [0, size).
func wrapIndex(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

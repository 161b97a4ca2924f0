package spanpix

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Raster is a renderer backed by a pixel buffer it does not own. The
// buffer is addressed through an origin index and a stride expressed in
// pixels; the stride may be negative for bottom-up layouts. The caller
// guarantees the buffer outlives the raster.
type Raster[P Pixel[P]] struct {
	pix    []P
	origin int // index of the pixel at (0, 0); may lie outside bounds
	stride int
	bounds IntRect
	opaque bool
}

// NewRaster wraps an existing pixel buffer. origin is the index of the
// pixel at coordinate (0, 0) and stride is the pixel distance between
// rows (negative for bottom-up buffers). opaque asserts that every pixel
// inside bounds has full alpha.
func NewRaster[P Pixel[P]](pix []P, origin, stride int, bounds IntRect, opaque bool) *Raster[P] {
	return &Raster[P]{pix: pix, origin: origin, stride: stride, bounds: bounds, opaque: opaque}
}

// Bounds implements Renderer.
func (r *Raster[P]) Bounds() IntRect { return r.bounds }

// IsOpaque reports the producer-supplied opacity guarantee.
func (r *Raster[P]) IsOpaque() bool { return r.opaque }

// Stride returns the row stride in pixels.
func (r *Raster[P]) Stride() int { return r.stride }

// rowSlice returns the buffer window for length pixels starting at (x, y).
func (r *Raster[P]) rowSlice(x, y, length int) []P {
	idx := r.origin + r.stride*y + x
	return r.pix[idx : idx+length]
}

// Pixel returns the pixel at (x, y), which must be inside the bounds.
func (r *Raster[P]) Pixel(x, y int) P {
	return r.pix[r.origin+r.stride*y+x]
}

// SetPixel stores a pixel at (x, y), which must be inside the bounds.
func (r *Raster[P]) SetPixel(x, y int, p P) {
	r.pix[r.origin+r.stride*y+x] = p
}

// Render implements Renderer. Pixels inside the bounds are emitted as
// reference spans aliasing the raster's storage; the surroundings are
// transparent.
func (r *Raster[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	if y >= r.bounds.Top && y < r.bounds.Bottom() {
		if x < r.bounds.Left {
			c := min(r.bounds.Left-x, length)
			out.AddTransparent(c)
			x += c
			length -= c
		}
		if length > 0 && x < r.bounds.Right() {
			c := min(r.bounds.Right()-x, length)
			out.AddReference(c, r.rowSlice(x, y, c), r.opaque)
			x += c
			length -= c
		}
	}
	if length > 0 {
		out.AddTransparent(length)
	}
}

// Fill renders source into this raster over area (which must lie within
// the raster bounds).
func (r *Raster[P]) Fill(source Renderer[P], area IntRect) {
	Fill(r, source, area)
}

// Draw renders source over the entire raster.
func (r *Raster[P]) Draw(source Renderer[P]) {
	Fill(r, source, r.bounds)
}

// BlendOver composites source over the current raster contents inside
// the intersection of the raster bounds and the source bounds.
func (r *Raster[P]) BlendOver(source Renderer[P]) {
	Fill(r, NewBlender[P](r, source), r.bounds.Intersection(source.Bounds()))
}

// AddOver adds source into the current raster contents inside the
// intersection of the raster bounds and the source bounds.
func (r *Raster[P]) AddOver(source Renderer[P]) {
	Fill(r, NewAdder[P](r, source), r.bounds.Intersection(source.Bounds()))
}

// SelfContainedRaster is a raster that owns its pixel buffer.
type SelfContainedRaster[P Pixel[P]] struct {
	Raster[P]
}

// NewSelfContainedRaster allocates a raster covering bounds. The bounds
// must satisfy the canvas domain (origin in [-32768, 32767], size in
// [1, 32767]); otherwise an error wrapping ErrBoundsDomain is returned.
// The opaque flag is a promise about the pixels the caller will store.
func NewSelfContainedRaster[P Pixel[P]](bounds IntRect, opaque bool) (*SelfContainedRaster[P], error) {
	if err := ValidateCanvasBounds(bounds); err != nil {
		return nil, err
	}
	r := &SelfContainedRaster[P]{}
	r.pix = make([]P, bounds.Width*bounds.Height)
	r.stride = bounds.Width
	r.origin = -(bounds.Top*r.stride + bounds.Left)
	r.bounds = bounds
	r.opaque = opaque
	return r, nil
}

// Clear resets every pixel to the zero (transparent) value.
func (r *SelfContainedRaster[P]) Clear() {
	var zero P
	fillPixels(r.pix, zero)
}

// ImageAdapter exposes an ARGB32 raster as a standard library image. It
// implements both image.Image and draw.Image, converting between the
// packed premultiplied ARGB32 layout and color.RGBA on access.
type ImageAdapter struct {
	R *Raster[ARGB32]
}

var (
	_ image.Image = ImageAdapter{}
	_ draw.Image  = ImageAdapter{}
)

// ColorModel implements image.Image.
func (a ImageAdapter) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (a ImageAdapter) Bounds() image.Rectangle {
	b := a.R.Bounds()
	return image.Rect(b.Left, b.Top, b.Right(), b.Bottom())
}

// At implements image.Image.
func (a ImageAdapter) At(x, y int) color.Color {
	if !a.R.Bounds().Contains(x, y) {
		return color.RGBA{}
	}
	p := a.R.Pixel(x, y)
	return color.RGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// Set implements draw.Image.
func (a ImageAdapter) Set(x, y int, c color.Color) {
	if !a.R.Bounds().Contains(x, y) {
		return
	}
	r, g, b, al := c.RGBA()
	a.R.SetPixel(x, y, ARGB32(al>>8<<24|r>>8<<16|g>>8<<8|b>>8))
}

// RasterFromImage copies an image into a new self-contained ARGB32
// raster positioned at the image's bounds.
func RasterFromImage(img image.Image) (*SelfContainedRaster[ARGB32], error) {
	b := img.Bounds()
	r, err := NewSelfContainedRaster[ARGB32](IntRectLTWH(b.Min.X, b.Min.Y, b.Dx(), b.Dy()), false)
	if err != nil {
		return nil, err
	}
	draw.Draw(ImageAdapter{R: &r.Raster}, b, img, b.Min, draw.Src)
	return r, nil
}

// RasterFromImageScaled resamples an image to width x height with
// bilinear filtering and returns it as an ARGB32 raster at origin (0, 0).
// Useful for preparing texture sources at the resolution they will be
// sampled at.
func RasterFromImageScaled(img image.Image, width, height int) (*SelfContainedRaster[ARGB32], error) {
	r, err := NewSelfContainedRaster[ARGB32](IntRectLTWH(0, 0, width, height), false)
	if err != nil {
		return nil, err
	}
	dst := ImageAdapter{R: &r.Raster}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return r, nil
}

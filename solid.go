package spanpix

// Solid renders a single color everywhere.
type Solid[P Pixel[P]] struct {
	pixel P
}

// NewSolid creates a solid renderer for the given pixel.
func NewSolid[P Pixel[P]](pixel P) *Solid[P] {
	return &Solid[P]{pixel: pixel}
}

// Bounds implements Renderer.
func (s *Solid[P]) Bounds() IntRect { return FullRect }

// Render implements Renderer.
func (s *Solid[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	out.AddSolid(length, s.pixel)
}

// SolidRect renders a single color inside a rectangle and transparency
// outside it.
type SolidRect[P Pixel[P]] struct {
	pixel P
	rect  IntRect
}

// NewSolidRect creates a rectangle-bounded solid renderer.
func NewSolidRect[P Pixel[P]](pixel P, rect IntRect) *SolidRect[P] {
	return &SolidRect[P]{pixel: pixel, rect: rect}
}

// Bounds implements Renderer.
func (s *SolidRect[P]) Bounds() IntRect { return s.rect }

// Render implements Renderer.
func (s *SolidRect[P]) Render(x, y, length int, out *SpanBuffer[P]) {
	checkRenderLength(length)
	if y >= s.rect.Top && y < s.rect.Bottom() {
		if x < s.rect.Left {
			c := min(s.rect.Left-x, length)
			out.AddTransparent(c)
			x += c
			length -= c
		}
		if length > 0 && x < s.rect.Right() {
			c := min(s.rect.Right()-x, length)
			out.AddSolid(c, s.pixel)
			x += c
			length -= c
		}
	}
	if length > 0 {
		out.AddTransparent(length)
	}
}

package spanpix

import "math"

// Point is a 2D coordinate in user space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// IntPoint is a 2D coordinate in pixel space.
type IntPoint struct {
	X, Y int
}

// IntRect is an axis-aligned pixel rectangle described by its top-left
// corner and its size. Right and Bottom are derived.
type IntRect struct {
	Left, Top     int
	Width, Height int
}

// Rect is the float64 counterpart of IntRect.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// IntRectLTWH builds an IntRect from position and size.
func IntRectLTWH(left, top, width, height int) IntRect {
	return IntRect{Left: left, Top: top, Width: width, Height: height}
}

// Right returns Left + Width.
func (r IntRect) Right() int { return r.Left + r.Width }

// Bottom returns Top + Height.
func (r IntRect) Bottom() int { return r.Top + r.Height }

// IsEmpty reports whether the rectangle has zero area.
func (r IntRect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r IntRect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Offset returns the rectangle translated by (x, y).
func (r IntRect) Offset(x, y int) IntRect {
	return IntRect{Left: r.Left + x, Top: r.Top + y, Width: r.Width, Height: r.Height}
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle acts as the identity.
func (r IntRect) Union(other IntRect) IntRect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	left := min(r.Left, other.Left)
	top := min(r.Top, other.Top)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return IntRect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Intersection returns the overlap of r and other, or an empty rectangle
// when they do not intersect.
func (r IntRect) Intersection(other IntRect) IntRect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return IntRect{}
	}
	return IntRect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Right returns Left + Width.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns Top + Height.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// ToIntRect returns the smallest IntRect covering r.
func (r Rect) ToIntRect() IntRect {
	left := int(math.Floor(r.Left))
	top := int(math.Floor(r.Top))
	return IntRect{
		Left:   left,
		Top:    top,
		Width:  int(math.Ceil(r.Right())) - left,
		Height: int(math.Ceil(r.Bottom())) - top,
	}
}

// FullRect encloses everything a renderer can address. Renderers whose
// output has no natural bound (solids, inverters) report it from Bounds.
var FullRect = IntRect{Left: -0x40000000, Top: -0x40000000, Width: 0x7FFFFFFF, Height: 0x7FFFFFFF}

// Canvas coordinate domain accepted by ValidateCanvasBounds.
const (
	minCanvasOrigin = -32768
	maxCanvasOrigin = 32767
	maxCanvasSize   = 32767
)

// ValidateCanvasBounds checks that a destination rectangle is inside the
// supported canvas domain: origin in [-32768, 32767] and size in
// [1, 32767]. It returns an error wrapping ErrBoundsDomain otherwise.
func ValidateCanvasBounds(r IntRect) error {
	if r.Left < minCanvasOrigin || r.Left > maxCanvasOrigin ||
		r.Top < minCanvasOrigin || r.Top > maxCanvasOrigin ||
		r.Width < 1 || r.Width > maxCanvasSize ||
		r.Height < 1 || r.Height > maxCanvasSize {
		return errBoundsf("canvas bounds %+v", r)
	}
	return nil
}

func errBoundsf(format string, args ...any) error {
	return wrapErrf(ErrBoundsDomain, format, args...)
}

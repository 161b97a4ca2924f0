package spanpix

import "math"

// DefaultCurveQuality is the curve quality used when callers have no
// specific requirement. Larger values flatten curves into more segments.
const DefaultCurveQuality = 1.0

// Circle subdivision limits. Beyond 200 divisions the angle between
// segments no longer changes visibly regardless of magnification; the
// lower limit keeps small circles from degenerating below an octagon.
const (
	maxCircleDivisions = 200.0
	minCircleDivisions = 8.0
)

const maxSplineSegments = 200

// circleRotationVector returns the per-step rotation (cos, sin) and the
// step angle for approximating a circle of the given diameter at the
// given quality.
func circleRotationVector(quality, diameter float64) (rx, ry, t float64) {
	if diameter < epsilon {
		t = 2 * math.Pi
	} else {
		t = min(max(1.0/math.Sqrt(quality*diameter), 2*math.Pi/maxCircleDivisions), 2*math.Pi/minCircleDivisions)
	}
	return math.Cos(t), math.Sin(t), t
}

// splineSegmentCount picks the flattening segment count from the norm of
// the second derivative, which measures how much the direction twists.
func splineSegmentCount(d, quality float64) int {
	return min(int(math.Sqrt(d*0.707*quality)+0.5)+1, maxSplineSegments)
}

// QuadraticTo flattens a quadratic Bezier from the current position over
// the control point to (x, y), advancing with forward differences.
func (p *Path) QuadraticTo(controlX, controlY, x, y, quality float64) *Path {
	p0 := p.Position()
	px := p0.X
	py := p0.Y

	c1x := 2.0 * (controlX - px)
	c1y := 2.0 * (controlY - py)
	c2x := 2.0 * (px - 2.0*controlX + x)
	c2y := 2.0 * (py - 2.0*controlY + y)

	d := math.Sqrt(c2x*c2x + c2y*c2y)
	n := splineSegmentCount(d, quality)

	m := 1.0 / float64(n)
	px2 := c2x * m * m
	py2 := c2y * m * m
	px1 := c1x*m + 0.5*px2
	py1 := c1y*m + 0.5*py2

	for i := 0; i < n; i++ {
		px += px1
		py += py1
		px1 += px2
		py1 += py2
		p.LineTo(px, py)
	}
	return p
}

// CubicTo flattens a cubic Bezier from the current position over two
// control points to (x, y). The segment count uses the larger of the
// second derivative's norms at the two endpoints, which bound the twist
// over the whole curve.
func (p *Path) CubicTo(control1X, control1Y, control2X, control2Y, x, y, quality float64) *Path {
	p0 := p.Position()
	px := p0.X
	py := p0.Y

	c1x := 3.0 * (control1X - px)
	c1y := 3.0 * (control1Y - py)
	c2x := 6.0 * (px - 2.0*control1X + control2X)
	c2y := 6.0 * (py - 2.0*control1Y + control2Y)
	c3x := 6.0 * (x - px + 3.0*(control1X-control2X))
	c3y := 6.0 * (y - py + 3.0*(control1Y-control2Y))

	k2x := 6.0 * (control1X - 2.0*control2X + x)
	k2y := 6.0 * (control1Y - 2.0*control2Y + y)
	d := math.Sqrt(math.Max(c2x*c2x+c2y*c2y, k2x*k2x+k2y*k2y))
	n := splineSegmentCount(d, quality)

	m := 1.0 / float64(n)
	px3 := c3x * m * m * m
	py3 := c3y * m * m * m
	px2 := c2x*m*m + px3
	py2 := c2y*m*m + py3
	px1 := c1x*m + 0.5*px2 - px3/3.0
	py1 := c1y*m + 0.5*py2 - py3/3.0

	for i := 0; i < n; i++ {
		px += px1
		py += py1
		px1 += px2
		py1 += py2
		px2 += px3
		py2 += py3
		p.LineTo(px, py)
	}
	return p
}

// ArcSweep draws an elliptical arc by rotating the vector from the arc
// center to the current position. aspectRatio is the width to height
// ratio of the ellipse; sweepRadians may be negative for clockwise
// sweeps and must be within a full turn. The final point lands exactly
// on the requested sweep.
func (p *Path) ArcSweep(centerX, centerY, sweepRadians, aspectRatio, quality float64) *Path {
	pos := p.Position()
	sx := (pos.X - centerX) / aspectRatio
	sy := pos.Y - centerY
	diameter := math.Max(2.0*math.Abs(aspectRatio), 2.0) * math.Sqrt(sx*sx+sy*sy)
	rx, ry, t := circleRotationVector(quality, diameter)
	s := sweepRadians
	if s < 0 {
		s = -s
		ry = -ry
	}
	px := sx
	py := sy
	for r := t; r < s-epsilon; r += t {
		px, py = px*rx-py*ry, px*ry+py*rx
		p.LineTo(centerX+px*aspectRatio, centerY+py)
	}
	rx = math.Cos(sweepRadians)
	ry = math.Sin(sweepRadians)
	px, py = sx*rx-sy*ry, sx*ry+sy*rx
	return p.LineTo(centerX+px*aspectRatio, centerY+py)
}

// ArcMove repositions the current point along an arc without drawing.
// When the last instruction is a move it is adjusted in place, so
// consecutive arc moves do not accumulate empty sub-paths.
func (p *Path) ArcMove(centerX, centerY, sweepRadians, aspectRatio float64) *Path {
	pos := p.Position()
	sx := (pos.X - centerX) / aspectRatio
	sy := pos.Y - centerY

	rx := math.Cos(sweepRadians)
	ry := math.Sin(sweepRadians)
	px := sx*rx - sy*ry
	py := sx*ry + sy*rx

	endX := centerX + px*aspectRatio
	endY := centerY + py

	if n := len(p.instructions); n > 0 && p.instructions[n-1].Op == OpMove {
		p.instructions[n-1].Vertex = Pt(endX, endY)
		return p
	}
	return p.MoveTo(endX, endY)
}

package spanpix

import (
	"math"
	"strconv"
)

// SVGCoordinateLimit is the largest coordinate magnitude accepted in SVG
// path data.
const SVGCoordinateLimit = 1e6

// ParseSVGPath builds a path from an SVG 1.1 path-data string. The
// supported command set is M/L/H/V/C/S/Q/T/A/Z, with lowercase letters
// taking relative coordinates. Curves are flattened at the given
// quality. The data must begin with a move command; malformed input
// returns a *SVGPathError naming the failing command.
func ParseSVGPath(data string, quality float64) (*Path, error) {
	p := NewPath()
	if err := p.AppendSVGPath(data, quality); err != nil {
		return nil, err
	}
	return p, nil
}

// AppendSVGPath appends SVG path data to the path. See ParseSVGPath.
func (p *Path) AppendSVGPath(data string, quality float64) error {
	s := svgScanner{data: data}
	var quadReflection Point
	var cubicReflection Point

	s.eatSpace()
	if s.atEnd() {
		return nil
	}
	if c := s.data[s.pos]; c != 'M' && c != 'm' {
		return &SVGPathError{Offset: s.pos, Reason: "path data must begin with 'M'"}
	}

	for !s.atEnd() {
		s.eatSpace()
		if s.atEnd() {
			break
		}
		cmdOffset := s.pos
		c := s.data[s.pos]
		s.pos++
		isRelative := c >= 'a' && c <= 'z'
		if isRelative {
			c -= 'a' - 'A'
		}
		if c != 'T' {
			quadReflection = Point{}
		}
		if c != 'S' {
			cubicReflection = Point{}
		}
		fail := func(reason string) error {
			cmd := c
			if isRelative {
				cmd += 'a' - 'A'
			}
			return &SVGPathError{Command: cmd, Offset: cmdOffset, Reason: reason}
		}
		first := true

		switch c {
		case 'M':
			v, ok := s.coordinatePair(false)
			if !ok {
				return fail("expected coordinate pair")
			}
			v = p.toAbsolute(isRelative, v)
			p.MoveTo(v.X, v.Y)
			for {
				v, ok = s.coordinatePair(true)
				if !ok {
					break
				}
				v = p.toAbsolute(isRelative, v)
				p.LineTo(v.X, v.Y)
			}

		case 'L':
			v, ok := s.coordinatePair(false)
			if !ok {
				return fail("expected coordinate pair")
			}
			for ok {
				v = p.toAbsolute(isRelative, v)
				p.LineTo(v.X, v.Y)
				v, ok = s.coordinatePair(true)
			}

		case 'H', 'V':
			pos := p.Position()
			for {
				mark := s.pos
				s.eatSpaceAndComma(first)
				v, ok := s.coordinate()
				if !ok {
					s.pos = mark
					break
				}
				first = false
				if c == 'H' {
					if isRelative {
						pos.X += v
					} else {
						pos.X = v
					}
				} else {
					if isRelative {
						pos.Y += v
					} else {
						pos.Y = v
					}
				}
				p.LineTo(pos.X, pos.Y)
			}

		case 'C':
			for {
				mark := s.pos
				bcp, ok := s.coordinatePair(!first)
				if !ok {
					s.pos = mark
					if first {
						return fail("expected coordinate pairs")
					}
					break
				}
				ecp, ok := s.coordinatePair(true)
				if !ok {
					return fail("expected second control point")
				}
				v, ok := s.coordinatePair(true)
				if !ok {
					return fail("expected end point")
				}
				first = false
				bcp = p.toAbsolute(isRelative, bcp)
				ecp = p.toAbsolute(isRelative, ecp)
				v = p.toAbsolute(isRelative, v)
				cubicReflection = Pt(v.X-ecp.X, v.Y-ecp.Y)
				p.CubicTo(bcp.X, bcp.Y, ecp.X, ecp.Y, v.X, v.Y, quality)
			}

		case 'S':
			for {
				mark := s.pos
				ecp, ok := s.coordinatePair(!first)
				if !ok {
					s.pos = mark
					if first {
						return fail("expected coordinate pairs")
					}
					break
				}
				v, ok := s.coordinatePair(true)
				if !ok {
					return fail("expected end point")
				}
				first = false
				pos := p.Position()
				bcp := Pt(pos.X+cubicReflection.X, pos.Y+cubicReflection.Y)
				ecp = p.toAbsolute(isRelative, ecp)
				v = p.toAbsolute(isRelative, v)
				cubicReflection = Pt(v.X-ecp.X, v.Y-ecp.Y)
				p.CubicTo(bcp.X, bcp.Y, ecp.X, ecp.Y, v.X, v.Y, quality)
			}

		case 'Q':
			for {
				mark := s.pos
				cp, ok := s.coordinatePair(!first)
				if !ok {
					s.pos = mark
					if first {
						return fail("expected coordinate pairs")
					}
					break
				}
				v, ok := s.coordinatePair(true)
				if !ok {
					return fail("expected end point")
				}
				first = false
				cp = p.toAbsolute(isRelative, cp)
				v = p.toAbsolute(isRelative, v)
				quadReflection = Pt(v.X-cp.X, v.Y-cp.Y)
				p.QuadraticTo(cp.X, cp.Y, v.X, v.Y, quality)
			}

		case 'T':
			for {
				mark := s.pos
				v, ok := s.coordinatePair(!first)
				if !ok {
					s.pos = mark
					if first {
						return fail("expected coordinate pair")
					}
					break
				}
				first = false
				pos := p.Position()
				cp := Pt(pos.X+quadReflection.X, pos.Y+quadReflection.Y)
				v = p.toAbsolute(isRelative, v)
				quadReflection = Pt(v.X-cp.X, v.Y-cp.Y)
				p.QuadraticTo(cp.X, cp.Y, v.X, v.Y, quality)
			}

		case 'A':
			for {
				mark := s.pos
				radii, ok := s.coordinatePair(!first)
				if !ok {
					s.pos = mark
					if first {
						return fail("expected radii")
					}
					break
				}
				s.eatSpaceAndComma(true)
				xAxisRotation, ok := s.coordinate()
				if !ok {
					return fail("expected x-axis rotation")
				}
				s.eatSpaceAndComma(true)
				largeArcFlag, ok := s.flag()
				if !ok {
					return fail("expected large-arc flag")
				}
				s.eatSpaceAndComma(true)
				sweepFlag, ok := s.flag()
				if !ok {
					return fail("expected sweep flag")
				}
				v, ok := s.coordinatePair(true)
				if !ok {
					return fail("expected end point")
				}
				first = false
				v = p.toAbsolute(isRelative, v)
				p.appendArc(radii, xAxisRotation, largeArcFlag, sweepFlag, v, quality)
			}

		case 'Z':
			p.Close()

		default:
			return fail("unknown command")
		}
	}
	return nil
}

// appendArc converts one SVG endpoint arc to a center-parameterized
// sweep. A non-zero x-axis rotation is handled by computing the arc in a
// rotated frame and transforming the result back.
func (p *Path) appendArc(radii Point, xAxisRotation float64, largeArc, sweep bool, v Point, quality float64) {
	radii.X = math.Abs(radii.X)
	radii.Y = math.Abs(radii.Y)
	if radii.X >= epsilon && radii.Y >= epsilon {
		startPos := p.Position()
		endPos := v
		var reverse Matrix
		rotated := xAxisRotation != 0.0
		if rotated {
			reverse = Rotate(xAxisRotation * math.Pi / 180.0)
			forward, _ := reverse.Inverse()
			startPos = forward.TransformPoint(startPos)
			endPos = forward.TransformPoint(endPos)
		}
		dx := endPos.X - startPos.X
		dy := endPos.Y - startPos.Y
		if math.Abs(dx) >= epsilon || math.Abs(dy) >= epsilon {
			largeArcSign := -1.0
			if largeArc {
				largeArcSign = 1.0
			}
			sweepSign := -largeArcSign
			if sweep {
				sweepSign = largeArcSign
			}
			aspectRatio := radii.X / radii.Y
			l := dx*dx + (aspectRatio*dy)*(aspectRatio*dy)
			b := math.Max(4.0*radii.X*radii.X/l-1.0, epsilon)
			a := sweepSign * math.Sqrt(b*0.25)
			centerX := startPos.X + dx*0.5 + a*dy*aspectRatio
			centerY := startPos.Y + dy*0.5 - a*dx/aspectRatio
			sweepRadians := sweepSign * (largeArcSign*math.Pi + math.Pi - math.Acos((b-1.0)/(1.0+b)))
			if rotated {
				temp := NewPath()
				temp.LineTo(startPos.X, startPos.Y)
				temp.ArcSweep(centerX, centerY, sweepRadians, aspectRatio, quality)
				temp.Transform(reverse)
				p.Append(temp)
			} else {
				p.ArcSweep(centerX, centerY, sweepRadians, aspectRatio, quality)
			}
		}
	}
	p.LineTo(v.X, v.Y)
}

// toAbsolute resolves a possibly relative vertex against the current
// position.
func (p *Path) toAbsolute(isRelative bool, v Point) Point {
	if !isRelative {
		return v
	}
	pos := p.Position()
	return Pt(pos.X+v.X, pos.Y+v.Y)
}

// svgScanner is a minimal cursor over SVG path data.
type svgScanner struct {
	data string
	pos  int
}

func (s *svgScanner) atEnd() bool { return s.pos >= len(s.data) }

func isSVGSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *svgScanner) eatSpace() {
	for s.pos < len(s.data) && isSVGSpace(s.data[s.pos]) {
		s.pos++
	}
}

// eatSpaceAndComma skips whitespace and at most one comma separator.
// When allowComma is false only whitespace is skipped.
func (s *svgScanner) eatSpaceAndComma(allowComma bool) {
	s.eatSpace()
	if allowComma && s.pos < len(s.data) && s.data[s.pos] == ',' {
		s.pos++
		s.eatSpace()
	}
}

// number scans a floating-point literal. It reports failure without
// consuming input.
func (s *svgScanner) number() (float64, bool) {
	start := s.pos
	i := s.pos
	n := len(s.data)
	if i < n && (s.data[i] == '+' || s.data[i] == '-') {
		i++
	}
	digits := 0
	for i < n && s.data[i] >= '0' && s.data[i] <= '9' {
		i++
		digits++
	}
	if i < n && s.data[i] == '.' {
		i++
		for i < n && s.data[i] >= '0' && s.data[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < n && (s.data[i] == 'e' || s.data[i] == 'E') {
		j := i + 1
		if j < n && (s.data[j] == '+' || s.data[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && s.data[j] >= '0' && s.data[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	v, err := strconv.ParseFloat(s.data[start:i], 64)
	if err != nil {
		return 0, false
	}
	s.pos = i
	return v, true
}

// coordinate scans a number and validates the coordinate domain.
func (s *svgScanner) coordinate() (float64, bool) {
	mark := s.pos
	v, ok := s.number()
	if !ok || !isFinite(v) || math.Abs(v) > SVGCoordinateLimit {
		s.pos = mark
		return 0, false
	}
	return v, true
}

// coordinatePair scans "x[,] y" with optional leading separators.
func (s *svgScanner) coordinatePair(acceptLeadingComma bool) (Point, bool) {
	mark := s.pos
	s.eatSpaceAndComma(acceptLeadingComma)
	x, ok := s.coordinate()
	if !ok {
		s.pos = mark
		return Point{}, false
	}
	s.eatSpaceAndComma(true)
	y, ok := s.coordinate()
	if !ok {
		s.pos = mark
		return Point{}, false
	}
	return Pt(x, y), true
}

// flag scans an arc flag digit.
func (s *svgScanner) flag() (bool, bool) {
	if s.pos < len(s.data) {
		switch s.data[s.pos] {
		case '0':
			s.pos++
			return false, true
		case '1':
			s.pos++
			return true, true
		}
	}
	return false, false
}

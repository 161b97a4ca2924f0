package spanpix

import "math"

// CapStyle selects how open sub-path ends are finished when stroking.
type CapStyle int

const (
	// CapButt cuts the stroke off straight at the endpoint.
	CapButt CapStyle = iota
	// CapRound finishes with a half circle around the endpoint.
	CapRound
	// CapSquare extends the stroke by half its width past the endpoint.
	CapSquare
)

// JoinStyle selects how segments are connected on the outside of a bend.
type JoinStyle int

const (
	// JoinBevel connects the two offset endpoints directly.
	JoinBevel JoinStyle = iota
	// JoinCurve rounds the corner with an arc.
	JoinCurve
	// JoinMiter extends the offset lines to their intersection, clipped
	// at the miter limit.
	JoinMiter
)

// strokeSegment is one segment of a sub-path prepared for stroking.
type strokeSegment struct {
	v Point   // start vertex
	d Point   // delta per width unit (delta / length * width/2)
	l float64 // length in width units (length / (width/2))
}

// strokeRounded traces an arc from the end of one offset segment to the
// start of the next by rotating a point around the joint. The loop runs
// until the rotated vector passes the target direction; arcs here are
// at most half a turn (round caps use exactly half a turn).
func strokeRounded(stroked *Path, ax1, ay1, bx0, by0, bdx, bdy, rx, ry float64) {
	px := ax1 - bx0 + bdy
	py := ay1 - by0 - bdx
	for {
		stroked.LineTo(bx0-bdy+px, by0+bdx+py)
		px, py = px*rx-py*ry, px*ry+py*rx
		if px*bdx+py*bdy >= 0 {
			break
		}
	}
	stroked.LineTo(bx0, by0)
}

// strokeEnd emits the cap at one end of an open sub-path. Square caps
// were already handled by pre-extending the end segments, so they share
// the butt code here.
func strokeEnd(stroked *Path, direction float64, seg []strokeSegment, caps CapStyle, rx, ry float64) {
	o := 0
	if direction < 0 {
		o = 1
	}
	adx := seg[0].d.X * direction
	ady := seg[0].d.Y * direction
	ax1 := seg[1-o].v.X + ady
	ay1 := seg[1-o].v.Y - adx

	bx0 := ax1 - ady*2
	by0 := ay1 + adx*2
	if caps == CapRound {
		strokeRounded(stroked, ax1, ay1, bx0, by0, -adx, -ady, rx, ry)
	} else {
		stroked.LineTo(ax1, ay1)
		stroked.LineTo(bx0, by0)
	}
}

// strokeOneSide offsets two consecutive segments and emits the outline
// for one side of the stroke. direction is +1 for the left side and -1
// for the right side when following the path. Inner joins collapse to
// the offset-line intersection when it exists; outer joins expand
// according to the join style, with miters clipped at miterLimitW.
func strokeOneSide(stroked *Path, direction float64, segA, segB []strokeSegment, joints JoinStyle, miterLimitW, rx, ry float64) {
	o := 0
	if direction < 0 {
		o = 1
	}

	al := segA[0].l
	adx := segA[0].d.X * direction
	ady := segA[0].d.Y * direction
	ax0 := segA[o].v.X + ady
	ay0 := segA[o].v.Y - adx
	ax1 := segA[1-o].v.X + ady
	ay1 := segA[1-o].v.Y - adx
	bl := segB[0].l
	bdx := segB[0].d.X * direction
	bdy := segB[0].d.Y * direction
	bx0 := segB[o].v.X + bdy
	by0 := segB[o].v.Y - bdx

	// Inner joint if B is inside the half-plane of A (virtually
	// collinear segments count as inner).
	if (bx0-ax1)*bdx < (ay1-by0)*bdy+epsilon*2 {
		d := bdx*ady - adx*bdy
		v := 0.0
		w := 0.0
		if math.Abs(d) >= epsilon {
			v = (bdy*(ax0-bx0) - bdx*(ay0-by0)) / d
			w = (ady*(ax0-bx0) - adx*(ay0-by0)) / d
		}
		if v >= 0.0 && v <= al && w >= 0.0 && w <= bl {
			// The offset lines cross before the segments end.
			stroked.LineTo(ax0+adx*v, ay0+ady*v)
		} else {
			// No crossing: emit a safe rhombus that fills correctly.
			stroked.LineTo(ax1, ay1)
			stroked.LineTo(bx0, by0)
		}
		return
	}

	switch joints {
	case JoinMiter:
		d := bdx*ady - adx*bdy
		w := 0.0
		if math.Abs(d) >= epsilon {
			w = (ady*(ax0-bx0) - adx*(ay0-by0)) / d
		}
		if w > miterLimitW {
			stroked.LineTo(bx0+bdx*w, by0+bdy*w)
		} else {
			// Clip the spike at the miter limit instead of falling back
			// to a bevel.
			stroked.LineTo(ax1-adx*miterLimitW, ay1-ady*miterLimitW)
			stroked.LineTo(bx0+bdx*miterLimitW, by0+bdy*miterLimitW)
		}

	case JoinBevel:
		stroked.LineTo(ax1, ay1)
		stroked.LineTo(bx0, by0)

	case JoinCurve:
		strokeRounded(stroked, ax1, ay1, bx0, by0, bdx, bdy, rx, ry)
	}
}

// Stroke replaces the path contents with the outline of its stroke. The
// outline is intended to be filled with the non-zero rule. width is the
// full stroke width; miterLimit is the maximum ratio of miter length to
// half-width and must be at least 1. An empty sub-path produces a single
// cap shape (a circle or square of the stroke width).
func (p *Path) Stroke(width float64, caps CapStyle, joints JoinStyle, miterLimit, quality float64) *Path {
	stroked := &Path{
		instructions: make([]Instruction, 0, len(p.instructions)*3),
		openIndex:    -1,
	}
	width = math.Max(width, epsilon)

	rcpWidth := 2.0 / width
	miterLimitW := 0.0
	if joints == JoinMiter {
		miterLimitW = -math.Sqrt(miterLimit*miterLimit - 1.0)
	}
	rx := 0.0
	ry := 0.0
	if joints == JoinCurve || caps == CapRound {
		rx, ry, _ = circleRotationVector(quality, width)
	}

	lv := Point{}
	var segs []strokeSegment
	insts := p.instructions

	for i := 0; i < len(insts); {
		segs = segs[:0]
		for ; i < len(insts) && insts[i].Op != OpLine; i++ {
			lv = insts[i].Vertex
		}
		isClosed := false
		for ; i < len(insts) && insts[i].Op != OpMove && !isClosed; i++ {
			isClosed = insts[i].Op == OpClose
			nv := insts[i].Vertex
			dx := nv.X - lv.X
			dy := nv.Y - lv.Y
			l := dx*dx + dy*dy
			if l >= epsilon {
				l = math.Sqrt(l) * rcpWidth
				segs = append(segs, strokeSegment{v: lv, d: Pt(dx/l, dy/l), l: l})
				lv = nv
			}
		}

		// An empty sub-path still draws a cap shape.
		if len(segs) == 0 {
			segs = append(segs, strokeSegment{v: lv, d: Pt(width*0.5, 0.0), l: 1.0})
		}

		count := len(segs)
		segs = append(segs, strokeSegment{v: lv}) // terminal segment

		firstVertexIndex := len(stroked.instructions)
		stroked.instructions = append(stroked.instructions, Instruction{}) // first vertex filled in later

		if isClosed {
			for k := 0; k < count-1; k++ {
				strokeOneSide(stroked, 1.0, segs[k:], segs[k+1:], joints, miterLimitW, rx, ry)
			}
			strokeOneSide(stroked, 1.0, segs[count-1:], segs[0:], joints, miterLimitW, rx, ry)
			// Close the left outline, begin the right one.
			stroked.instructions[len(stroked.instructions)-1].Op = OpClose
			stroked.instructions[firstVertexIndex] = Instruction{Op: OpMove, Vertex: stroked.Position()}
			firstVertexIndex = len(stroked.instructions)
			stroked.instructions = append(stroked.instructions, Instruction{})
			for k := count - 1; k > 0; k-- {
				strokeOneSide(stroked, -1.0, segs[k:], segs[k-1:], joints, miterLimitW, rx, ry)
			}
			strokeOneSide(stroked, -1.0, segs[0:], segs[count-1:], joints, miterLimitW, rx, ry)
		} else {
			if caps == CapSquare {
				// Extend the first and last segments up front; this also
				// improves the first and last inner joints.
				segs[0].v.X -= segs[0].d.X
				segs[0].v.Y -= segs[0].d.Y
				segs[0].l++
				segs[count].v.X += segs[count-1].d.X
				segs[count].v.Y += segs[count-1].d.Y
				segs[count-1].l++
			}
			for k := 0; k < count-1; k++ {
				strokeOneSide(stroked, 1.0, segs[k:], segs[k+1:], joints, miterLimitW, rx, ry)
			}
			strokeEnd(stroked, 1.0, segs[count-1:], caps, rx, ry)
			for k := count - 1; k >= 1; k-- {
				strokeOneSide(stroked, -1.0, segs[k:], segs[k-1:], joints, miterLimitW, rx, ry)
			}
			strokeEnd(stroked, -1.0, segs[0:], caps, rx, ry)
		}

		stroked.instructions[len(stroked.instructions)-1].Op = OpClose
		stroked.instructions[firstVertexIndex] = Instruction{Op: OpMove, Vertex: stroked.Position()}
	}

	p.instructions = stroked.instructions
	p.openIndex = stroked.openIndex
	return p
}

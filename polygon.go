package spanpix

import "sort"

// Rasterizer fixed-point layout: vertex positions carry 8 sub-pixel
// fraction bits, and per-pixel coverage is accumulated with 8 more bits,
// so a fully covered pixel contributes 1<<16 to the signed accumulator.
const (
	fractBits    = 8
	fractOne     = 1 << fractBits
	fractMask    = fractOne - 1
	coverageBits = 8
	coverageOne  = 1 << (coverageBits + fractBits)
)

// FillRule maps the signed winding accumulator of the rasterizer to
// coverage.
type FillRule int

const (
	// FillNonZero treats any non-zero winding as inside.
	FillNonZero FillRule = iota
	// FillEvenOdd toggles inside/outside at every crossing.
	FillEvenOdd
)

// coverage converts an accumulator value to an 8-bit coverage sample.
func (r FillRule) coverage(c int32) Mask8 {
	if r == FillEvenOdd {
		// Fold into [0, coverageOne) reflecting on the winding bit.
		if c&coverageOne != 0 {
			c = (^c & (coverageOne - 1)) + 1
		} else {
			c &= coverageOne - 1
		}
		return Mask8(min(c>>(coverageBits+fractBits-8), 0xFF))
	}
	if c < 0 {
		c = -c
	}
	return Mask8(min(c>>(coverageBits+fractBits-8), 0xFF))
}

// polySegment is one non-horizontal path edge prepared for rasterization.
type polySegment struct {
	topY        int32      // fixed-point row where the edge starts
	bottomY     int32      // fixed-point row where the edge ends
	x           Fixed32_32 // intersection with the top of the current row
	dx          Fixed32_32 // slope per full row
	coverageByX int32      // signed per-column coverage, sign = winding
	currentY    int32      // row the edge has been advanced to
	leftEdge    int        // column range touched in the last row
	rightEdge   int
}

type polyExtent struct {
	left, right int
}

// PolygonMask rasterizes a path into 8-bit coverage using analytic area
// integration. It renders rows top to bottom; within a row, spans may be
// requested in any horizontal order. Rendering a row above the last one
// rewinds automatically. Only one goroutine may render through a mask at
// a time.
type PolygonMask struct {
	segs     []polySegment
	order    []int // indexes into segs, sorted by (row, initial column)
	bounds   IntRect
	fillRule FillRule
	valid    bool

	row          int
	prepared     bool
	engagedStart int
	engagedEnd   int

	coverageDelta []int32
	extents       []polyExtent
	cursorCol     int
	cursorAcc     int32
}

// NewPolygonMask prepares a path for coverage rendering inside the clip
// rectangle. The clip must cover (or exceed) the area the pulling
// renderer will request. A path with a non-finite or out-of-range vertex
// produces a mask that is flagged invalid and renders fully transparent;
// check IsValid when that distinction matters.
func NewPolygonMask(path *Path, clip IntRect, fillRule FillRule) *PolygonMask {
	m := &PolygonMask{fillRule: fillRule, valid: true}

	// Clamp the clip rectangle to the numeric limits of the fixed-point
	// setup.
	const limit = 0x7FFFFFFF >> fractBits
	cb := clip
	cb.Left = max(-limit, min(cb.Left, limit))
	cb.Top = max(-limit, min(cb.Top, limit))
	rightBound := max(-limit, min(clip.Right(), limit))
	bottomBound := max(-limit, min(clip.Bottom(), limit))
	cb.Width = max(0, rightBound-cb.Left)
	cb.Height = max(0, bottomBound-cb.Top)
	if cb != clip {
		Logger().Warn("spanpix: polygon clip clamped", "requested", clip, "clamped", cb)
	}

	const vertexLimit = float64(0x7FFFFFFF >> fractBits)
	minY := 0x3FFFFFFF
	minX := 0x3FFFFFFF
	maxY := -0x3FFFFFFF
	maxX := -0x3FFFFFFF
	top := int32(cb.Top) << fractBits
	right := int32(rightBound) << fractBits
	bottom := int32(bottomBound) << fractBits

	reject := func(v Point) bool {
		if !isFinite(v.X) || !isFinite(v.Y) || absFloat(v.X) > vertexLimit || absFloat(v.Y) > vertexLimit {
			Logger().Debug("spanpix: polygon vertex out of range", "x", v.X, "y", v.Y)
			m.valid = false
			m.segs = nil
			m.bounds = IntRect{}
			return true
		}
		return false
	}

	m.segs = make([]polySegment, 0, len(path.instructions)+1)
	var lx, ly int32
	for i := 0; i < len(path.instructions); {
		for i < len(path.instructions) && path.instructions[i].Op == OpMove {
			v := path.instructions[i].Vertex
			if reject(v) {
				return m
			}
			lx = int32(roundToInt(v.X * fractOne))
			ly = int32(roundToInt(v.Y * fractOne))
			i++
		}
		for i < len(path.instructions) && path.instructions[i].Op != OpMove {
			x0 := lx
			y0 := ly
			v := path.instructions[i].Vertex
			if reject(v) {
				return m
			}
			x1 := int32(roundToInt(v.X * fractOne))
			y1 := int32(roundToInt(v.Y * fractOne))
			lx = x1
			ly = y1
			reversed := false
			if y0 > y1 {
				x0, y0, x1, y1 = x1, y1, x0, y0
				reversed = true
			}

			// Horizontal edges and edges fully outside the clip carry no
			// coverage.
			if y0 != y1 && y1 > top && y0 < bottom && min(x0, x1) < right {
				m.segs = append(m.segs, polySegment{})
				seg := &m.segs[len(m.segs)-1]
				seg.topY = y0
				seg.bottomY = y1
				seg.x = FixedFromInt32(x0, 0)
				seg.leftEdge = int(x0 >> fractBits)
				coverageByX := int32(coverageOne)
				if dx := x1 - x0; dx != 0 {
					dy := y1 - y0
					seg.dx = FixedDiv(dx, dy)
					dyByDx := FixedDiv(dy, int32(abs32(dx)))
					if dyByDx.Hi() == 0 {
						coverageByX = dyByDx.Shl(coverageBits + fractBits).Hi()
					}
				}
				if reversed {
					coverageByX = -coverageByX
				}
				seg.coverageByX = coverageByX
				if top > seg.topY {
					// The edge starts above the clip: catch up to the
					// first visible row.
					seg.x = seg.x.Add(seg.dx.MulUint32(uint32(top - seg.topY)))
					seg.topY = top
					seg.leftEdge = int(seg.x.Hi() >> fractBits)
				}
				seg.currentY = seg.topY
				seg.rightEdge = seg.leftEdge
			}

			minY = min(minY, int(y0))
			maxY = max(maxY, int(y1))
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			minX = min(minX, int(x0))
			maxX = max(maxX, int(x1))
			i++
		}
	}

	// Sentinel so the engage and advance loops need no bounds checks.
	m.segs = append(m.segs, polySegment{topY: 0x7FFFFFFF, currentY: 0x7FFFFFFF})

	b := IntRect{Left: minX >> fractBits, Top: minY >> fractBits}
	b.Width = (maxX+fractMask)>>fractBits - b.Left
	b.Height = (maxY+fractMask)>>fractBits - b.Top
	m.bounds = b.Intersection(cb)
	m.coverageDelta = make([]int32, m.bounds.Width+2)

	m.rewind()
	return m
}

// IsValid reports whether every path vertex was accepted. Invalid masks
// render fully transparent.
func (m *PolygonMask) IsValid() bool { return m.valid }

// Bounds implements Renderer.
func (m *PolygonMask) Bounds() IntRect {
	if !m.valid {
		return IntRect{}
	}
	return m.bounds
}

// Rewind resets the rasterizer so rendering can restart from the top
// row. Rendering a row above the last rendered one rewinds implicitly.
func (m *PolygonMask) Rewind() {
	if m.valid {
		m.rewind()
	}
}

func (m *PolygonMask) rewind() {
	m.row = m.bounds.Top
	m.prepared = false
	m.engagedStart = 0
	m.engagedEnd = 0
	clear(m.coverageDelta)
	for i := range m.segs {
		seg := &m.segs[i]
		if seg.currentY != seg.topY {
			dy := seg.currentY - seg.topY
			seg.x = seg.x.Add(seg.dx.MulInt32(-dy))
			seg.currentY = seg.topY
		}
		seg.leftEdge = int(seg.x.Hi() >> fractBits)
		seg.rightEdge = seg.leftEdge
	}
	if cap(m.order) < len(m.segs) {
		m.order = make([]int, len(m.segs))
	}
	m.order = m.order[:len(m.segs)]
	for i := range m.order {
		m.order[i] = i
	}
	sort.SliceStable(m.order, func(a, b int) bool {
		sa := &m.segs[m.order[a]]
		sb := &m.segs[m.order[b]]
		ra := sa.topY >> fractBits
		rb := sb.topY >> fractBits
		return ra < rb || (ra == rb && sa.leftEdge < sb.leftEdge)
	})
}

// Render implements Renderer.
func (m *PolygonMask) Render(x, y, length int, out *SpanBuffer[Mask8]) {
	checkRenderLength(length)
	if !m.valid {
		out.AddTransparent(length)
		return
	}

	clipLeft := m.bounds.Left
	clipRight := m.bounds.Right()
	if x+length <= clipLeft || x >= clipRight {
		out.AddTransparent(length)
		return
	}
	rightClip := 0
	if x < clipLeft {
		leftClip := clipLeft - x
		out.AddTransparent(leftClip)
		x = clipLeft
		length -= leftClip
	}
	if x+length > clipRight {
		rightClip = x + length - clipRight
		length -= rightClip
	}
	if length <= 0 {
		if rightClip > 0 {
			out.AddTransparent(rightClip)
		}
		return
	}
	if y < m.bounds.Top || y >= m.bounds.Bottom() {
		out.AddTransparent(length)
		if rightClip > 0 {
			out.AddTransparent(rightClip)
		}
		return
	}

	m.prepareRow(y)
	m.emit(x-clipLeft, x-clipLeft+length, out)

	if rightClip > 0 {
		out.AddTransparent(rightClip)
	}
}

// prepareRow advances the active edge list to row y and deposits the
// whole row's coverage deltas. Every request for the same row is then
// served from the same delta array, which keeps the output independent
// of the requested span lengths.
func (m *PolygonMask) prepareRow(y int) {
	if y < m.row {
		m.rewind()
	}
	if y == m.row && m.prepared {
		return
	}
	yFixed := int32(y) << fractBits

	// Advance every edge that has started by now to the top of this row.
	for idx := m.engagedStart; ; idx++ {
		seg := &m.segs[m.order[idx]]
		if seg.topY >= yFixed {
			break
		}
		if dy := yFixed - seg.currentY; dy > 0 {
			seg.x = seg.x.Add(seg.dx.MulUint32(uint32(dy)))
			seg.currentY = yFixed
		}
	}
	m.row = y

	// Engage edges whose top lies inside this row.
	for m.segs[m.order[m.engagedEnd]].topY < yFixed+fractOne {
		m.engagedEnd++
	}

	clear(m.coverageDelta)
	m.extents = m.extents[:0]
	width := m.bounds.Width

	integrate := m.engagedStart
	for drawIndex := m.engagedStart; drawIndex < m.engagedEnd; drawIndex++ {
		seg := &m.segs[m.order[drawIndex]]
		if yFixed >= seg.bottomY {
			// Retired; compact it out of the engaged window.
			m.order[integrate], m.order[drawIndex] = m.order[drawIndex], m.order[integrate]
			integrate++
			continue
		}
		m.depositSegment(seg, yFixed, width)
		if seg.leftEdge < seg.rightEdge {
			m.extents = append(m.extents, polyExtent{left: seg.leftEdge, right: seg.rightEdge})
		}
	}
	m.engagedStart = integrate

	// Merge extents that touch or nearly touch so each row integrates
	// over a few contiguous windows.
	sort.Slice(m.extents, func(a, b int) bool { return m.extents[a].left < m.extents[b].left })
	merged := m.extents[:0]
	for _, e := range m.extents {
		if n := len(merged); n > 0 && e.left <= merged[n-1].right+4 {
			merged[n-1].right = max(merged[n-1].right, e.right)
		} else {
			merged = append(merged, e)
		}
	}
	m.extents = merged

	m.prepared = true
	m.cursorCol = 0
	m.cursorAcc = 0
}

// depositSegment accumulates one edge's signed area contribution for the
// current row into the delta array. Columns are relative to the clip
// left edge and the array covers the full clip width.
func (m *PolygonMask) depositSegment(seg *polySegment, yFixed int32, width int) {
	coverageByX := seg.coverageByX
	var remaining int32
	var dxAdv Fixed32_32
	if yFixed < seg.topY || yFixed+fractOne > seg.bottomY {
		// Partial crossing: scale by the sub-pixel row overlap.
		dy := min(seg.bottomY-yFixed, fractOne) - max(seg.topY-yFixed, 0)
		remaining = int32(1<<coverageBits) * dy
		if coverageByX < 0 {
			remaining = -remaining
		}
		dxAdv = seg.dx.MulUint32(uint32(dy))
	} else {
		remaining = coverageOne
		if coverageByX < 0 {
			remaining = -remaining
		}
		dxAdv = seg.dx.Shl(fractBits)
	}

	leftX := seg.x.Hi()
	rightX := seg.x.Add(dxAdv).Hi()
	if leftX > rightX {
		leftX, rightX = rightX, leftX
	}
	leftCol := int(leftX>>fractBits) - m.bounds.Left
	rightCol := int(rightX>>fractBits) - m.bounds.Left
	leftSub := leftX & fractMask
	rightSub := rightX & fractMask
	delta := m.coverageDelta

	switch {
	case leftCol >= width:
		// Entirely right of the clip; nothing to accumulate.
		seg.leftEdge = width
		seg.rightEdge = width

	case rightCol < 0:
		// Entirely left of the clip; the whole area lands on column 0.
		seg.leftEdge = 0
		seg.rightEdge = 0
		delta[0] += remaining

	case leftCol == rightCol:
		// Both endpoints inside the same column: split the area between
		// the two boundaries by the x centroid.
		seg.leftEdge = leftCol
		coverage := (2*fractOne - leftSub - rightSub) * remaining >> (fractBits + 1)
		delta[leftCol] += coverage
		delta[leftCol+1] += remaining - coverage
		seg.rightEdge = leftCol + 1

	default:
		var covered int32
		if leftCol < 0 {
			// Enters from the clip left: precharge column 0 with the
			// area spent outside.
			seg.leftEdge = 0
			covered = int32(min(rightCol, 0)-leftCol) * coverageByX
			covered += -leftSub * coverageByX >> fractBits
			delta[0] += covered
			leftCol = 0
		} else {
			seg.leftEdge = leftCol
			lx := fractOne - leftSub
			covered = lx * coverageByX >> fractBits
			coverage := lx * covered >> (fractBits + 1)
			delta[leftCol] += coverage
			delta[leftCol+1] += covered - coverage
			leftCol++
		}
		colCount := rightCol - leftCol
		if colCount > 0 {
			// Interior columns have a uniform slope contribution, giving
			// the boundary deltas a half, full, ..., full, half pattern.
			delta[leftCol] += coverageByX >> 1
			end := min(leftCol+colCount, width)
			for col := leftCol + 1; col < end; col++ {
				delta[col] += coverageByX
			}
			delta[end] += coverageByX - coverageByX>>1
		}
		if rightCol < width {
			remaining -= covered + int32(colCount)*coverageByX
			coverage := (2*fractOne - rightSub) * remaining >> (fractBits + 1)
			delta[rightCol] += coverage
			delta[rightCol+1] += remaining - coverage
			seg.rightEdge = rightCol + 1
		} else {
			// Exits past the clip right; suppress the right partial.
			seg.rightEdge = width
		}
	}
}

// emit integrates the prepared delta array over columns [c0, c1)
// (relative to the clip left edge) and appends mask spans. Runs between
// edge extents produce solid spans; runs inside them produce per-pixel
// coverage.
func (m *PolygonMask) emit(c0, c1 int, out *SpanBuffer[Mask8]) {
	if c0 < m.cursorCol {
		m.cursorCol = 0
		m.cursorAcc = 0
	}
	for m.cursorCol < c0 {
		m.cursorAcc += m.coverageDelta[m.cursorCol]
		m.cursorCol++
	}

	col := c0
	ei := 0
	for ei < len(m.extents) && m.extents[ei].right <= col {
		ei++
	}
	for col < c1 {
		solidEnd := c1
		if ei < len(m.extents) && m.extents[ei].left < c1 {
			solidEnd = max(m.extents[ei].left, col)
		}
		if solidEnd > col {
			m.cursorAcc += m.coverageDelta[col]
			m.cursorCol = col + 1
			value := m.fillRule.coverage(m.cursorAcc)
			out.AddSolid(solidEnd-col, value)
			for m.cursorCol < solidEnd {
				m.cursorAcc += m.coverageDelta[m.cursorCol]
				m.cursorCol++
			}
			col = solidEnd
			continue
		}

		varEnd := min(m.extents[ei].right, c1)
		if varEnd > col {
			px := out.AddVariable(varEnd-col, false)
			for k := col; k < varEnd; k++ {
				m.cursorAcc += m.coverageDelta[k]
				px[k-col] = m.fillRule.coverage(m.cursorAcc)
			}
			m.cursorCol = varEnd
			col = varEnd
		}
		if ei < len(m.extents) && m.extents[ei].right <= col {
			ei++
		}
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

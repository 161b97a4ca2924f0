package spanpix

import "math"

// rotateInstructions rotates s left so the element at middle becomes the
// first element.
func rotateInstructions(s []Instruction, middle int) {
	reverseInstructions(s[:middle])
	reverseInstructions(s[middle:])
	reverseInstructions(s)
}

func reverseInstructions(s []Instruction) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Dash replaces the path contents with alternating dashes and gaps laid
// out along each sub-path's arc length. dashOffset shifts the pattern
// start and should be within one pattern period.
//
// When a closed sub-path both begins and ends pen-down, the dashed
// sub-path is rotated so it starts at the final dash's first vertex; the
// stripe crossing the closing joint then stays continuous.
func (p *Path) Dash(dashLength, gapLength, dashOffset float64) *Path {
	if gapLength < epsilon {
		return p
	}

	var dashed []Instruction
	initR := math.Mod(dashLength-dashOffset, dashLength+gapLength)
	lv := Point{}
	insts := p.instructions

	for i := 0; i < len(insts); {
		for ; i < len(insts) && insts[i].Op != OpLine; i++ {
			lv = insts[i].Vertex
		}
		if i >= len(insts) {
			break
		}

		firstPenDown := true
		r := initR
		if r < 0.0 {
			firstPenDown = false
			r += gapLength
		}
		firstDashIndex := len(dashed)
		lastDashIndex := firstDashIndex
		if firstPenDown {
			dashed = append(dashed, Instruction{Op: OpMove, Vertex: lv})
		}
		penDown := firstPenDown
		isClosed := false

		for ; i < len(insts) && insts[i].Op != OpMove && !isClosed; i++ {
			isClosed = insts[i].Op == OpClose
			dx := insts[i].Vertex.X - lv.X
			dy := insts[i].Vertex.Y - lv.Y
			l := dx*dx + dy*dy
			if l < epsilon {
				continue
			}
			l = math.Sqrt(l)
			dx /= l
			dy /= l
			for {
				n := math.Min(l, r)
				lv.X += n * dx
				lv.Y += n * dy
				l -= n
				r -= n
				if penDown {
					dashed = append(dashed, Instruction{Op: OpLine, Vertex: lv})
					if r <= 0.0 {
						penDown = false
						r += gapLength
					}
				} else if r <= 0.0 {
					penDown = true
					lastDashIndex = len(dashed)
					dashed = append(dashed, Instruction{Op: OpMove, Vertex: lv})
					r += dashLength
				}
				if l <= 0.0 {
					break
				}
			}
		}

		if firstDashIndex != lastDashIndex && isClosed && penDown && firstPenDown {
			// The sub-path was closed with pen down at both ends: start
			// the dashed sub-path at the last pen-down point so the
			// closing stripe joins without a seam.
			dashed[firstDashIndex].Op = OpLine
			rotateInstructions(dashed[firstDashIndex:], lastDashIndex-firstDashIndex)
		}
	}

	p.instructions = dashed
	p.openIndex = len(p.instructions) - 1
	return p
}

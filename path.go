package spanpix

import "math"

// PathOp identifies one path instruction.
type PathOp uint8

const (
	// OpMove starts a new sub-path at the instruction's vertex.
	OpMove PathOp = iota
	// OpLine draws a straight segment to the instruction's vertex.
	OpLine
	// OpClose ends the sub-path; its vertex repeats the opening vertex
	// so traversal never needs to look back.
	OpClose
)

// Instruction is one step of a path.
type Instruction struct {
	Op     PathOp
	Vertex Point
}

// Path is an ordered sequence of move/line/close instructions. Curves are
// flattened into line segments as they are added, so every consumer only
// deals with straight edges. Paths are built mutably and then handed to
// rasterizers, which never modify them.
type Path struct {
	instructions []Instruction
	openIndex    int // index of the open sub-path's move, -1 when none
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{openIndex: -1}
}

// Len returns the number of instructions.
func (p *Path) Len() int { return len(p.instructions) }

// IsEmpty reports whether the path has no instructions.
func (p *Path) IsEmpty() bool { return len(p.instructions) == 0 }

// Instructions exposes the instruction sequence for traversal.
func (p *Path) Instructions() []Instruction { return p.instructions }

// Reset removes all instructions, retaining capacity.
func (p *Path) Reset() *Path {
	p.instructions = p.instructions[:0]
	p.openIndex = -1
	return p
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := &Path{
		instructions: make([]Instruction, len(p.instructions)),
		openIndex:    p.openIndex,
	}
	copy(c.instructions, p.instructions)
	return c
}

// Position returns the current point: the vertex of the last
// instruction, or the origin for an empty path.
func (p *Path) Position() Point {
	if len(p.instructions) == 0 {
		return Point{}
	}
	return p.instructions[len(p.instructions)-1].Vertex
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.instructions = append(p.instructions, Instruction{Op: OpMove, Vertex: Pt(x, y)})
	p.openIndex = len(p.instructions) - 1
	return p
}

// LineTo draws a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.instructions = append(p.instructions, Instruction{Op: OpLine, Vertex: Pt(x, y)})
	return p
}

// Close ends the current sub-path. The close instruction repeats the
// coordinates of the opening move.
func (p *Path) Close() *Path {
	v := Point{}
	if p.openIndex >= 0 {
		v = p.instructions[p.openIndex].Vertex
	}
	p.instructions = append(p.instructions, Instruction{Op: OpClose, Vertex: v})
	return p
}

// Append concatenates another path, transferring its open sub-path
// bookkeeping.
func (p *Path) Append(other *Path) *Path {
	base := len(p.instructions)
	p.instructions = append(p.instructions, other.instructions...)
	if other.openIndex >= 0 {
		p.openIndex = other.openIndex + base
	}
	return p
}

// Transform applies an affine transformation to every vertex in place.
func (p *Path) Transform(m Matrix) *Path {
	if m.IsIdentity() {
		return p
	}
	for i := range p.instructions {
		p.instructions[i].Vertex = m.TransformPoint(p.instructions[i].Vertex)
	}
	return p
}

// FloatBounds returns the tight bounding box of all vertices. An empty
// path yields the zero rectangle.
func (p *Path) FloatBounds() Rect {
	var r Rect
	if len(p.instructions) == 0 {
		return r
	}
	v := p.instructions[0].Vertex
	r.Left = v.X
	r.Top = v.Y
	right := v.X
	bottom := v.Y
	for _, inst := range p.instructions[1:] {
		r.Left = math.Min(r.Left, inst.Vertex.X)
		r.Top = math.Min(r.Top, inst.Vertex.Y)
		right = math.Max(right, inst.Vertex.X)
		bottom = math.Max(bottom, inst.Vertex.Y)
	}
	r.Width = right - r.Left
	r.Height = bottom - r.Top
	return r
}

// IntBounds returns the smallest pixel rectangle covering FloatBounds.
func (p *Path) IntBounds() IntRect {
	return p.FloatBounds().ToIntRect()
}

// AddLine starts a new sub-path consisting of a single segment.
func (p *Path) AddLine(startX, startY, endX, endY float64) *Path {
	return p.MoveTo(startX, startY).LineTo(endX, endY)
}

// AddRect adds a closed axis-aligned rectangle.
func (p *Path) AddRect(left, top, width, height float64) *Path {
	return p.AddLine(left, top, left+width, top).
		LineTo(left+width, top+height).
		LineTo(left, top+height).
		Close()
}

// AddEllipse adds a closed ellipse. Degenerate radii collapse to a line.
func (p *Path) AddEllipse(centerX, centerY, radiusX, radiusY, quality float64) *Path {
	switch {
	case math.Abs(radiusX) < epsilon:
		p.AddLine(centerX, centerY-radiusY, centerX, centerY+radiusY)
	case math.Abs(radiusY) < epsilon:
		p.AddLine(centerX-radiusX, centerY, centerX+radiusX, centerY)
	default:
		sweepSign := 1.0
		if (radiusX < 0.0) != (radiusY < 0.0) {
			sweepSign = -1.0
		}
		p.MoveTo(centerX+radiusX, centerY)
		p.ArcSweep(centerX, centerY, sweepSign*2*math.Pi, sweepSign*radiusX/radiusY, quality)
	}
	return p.Close()
}

// AddCircle adds a closed circle.
func (p *Path) AddCircle(centerX, centerY, radius, quality float64) *Path {
	p.MoveTo(centerX+radius, centerY)
	p.ArcSweep(centerX, centerY, 2*math.Pi, 1.0, quality)
	return p.Close()
}

// AddRoundedRect adds a rectangle with elliptical corners. Corner radii
// close to zero fall back to a plain rectangle.
func (p *Path) AddRoundedRect(left, top, width, height, cornerWidth, cornerHeight, quality float64) *Path {
	if cornerWidth < epsilon || cornerHeight < epsilon {
		return p.AddRect(left, top, width, height)
	}
	ratio := cornerWidth / cornerHeight
	right := left + width
	bottom := top + height
	p.AddLine(left+cornerWidth, top, right-cornerWidth, top)
	p.ArcSweep(right-cornerWidth, top+cornerHeight, math.Pi*0.5, ratio, quality)
	p.LineTo(right, top+cornerHeight)
	p.LineTo(right, bottom-cornerHeight)
	p.ArcSweep(right-cornerWidth, bottom-cornerHeight, math.Pi*0.5, ratio, quality)
	p.LineTo(right-cornerWidth, bottom)
	p.LineTo(left+cornerWidth, bottom)
	p.ArcSweep(left+cornerWidth, bottom-cornerHeight, math.Pi*0.5, ratio, quality)
	p.LineTo(left, bottom-cornerHeight)
	p.LineTo(left, top+cornerHeight)
	p.ArcSweep(left+cornerWidth, top+cornerHeight, math.Pi*0.5, ratio, quality)
	return p.Close()
}

// AddStar adds a closed star polygon alternating between two radii.
// rotation orients the first point; points is the number of vertices,
// whose radii alternate starting with radius1.
func (p *Path) AddStar(centerX, centerY float64, points int, radius1, radius2, rotation float64) *Path {
	px := math.Sin(rotation)
	py := -math.Cos(rotation)
	t := 2 * math.Pi / float64(points)
	rx := math.Cos(t)
	ry := math.Sin(t)
	s := radius1
	p.MoveTo(centerX+px*s, centerY+py*s)
	for r := t; r < 2*math.Pi-epsilon; r += t {
		s = (radius1 + radius2) - s
		px, py = px*rx-py*ry, px*ry+py*rx
		p.LineTo(centerX+px*s, centerY+py*s)
	}
	return p.Close()
}

// CloseAll closes every open sub-path, leaving already-closed sub-paths
// untouched.
func (p *Path) CloseAll() *Path {
	closed := make([]Instruction, 0, len(p.instructions)+4)

	open := Point{}
	for i := 0; i < len(p.instructions); {
		b := i
		for {
			if p.instructions[i].Op != OpLine {
				open = p.instructions[i].Vertex
			}
			i++
			if i >= len(p.instructions) || (p.instructions[i-1].Op == OpLine && p.instructions[i].Op == OpMove) {
				break
			}
		}
		closed = append(closed, p.instructions[b:i]...)
		if p.instructions[i-1].Op != OpClose {
			closed = append(closed, Instruction{Op: OpClose, Vertex: open})
		}
	}

	p.instructions = closed
	p.openIndex = len(p.instructions) - 1
	return p
}

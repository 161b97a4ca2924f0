package spanpix

import (
	"math"
	"testing"
)

func TestPathCloseRepeatsOpenVertex(t *testing.T) {
	p := NewPath()
	p.MoveTo(3, 4).LineTo(10, 4).LineTo(10, 12).Close()

	insts := p.Instructions()
	last := insts[len(insts)-1]
	if last.Op != OpClose {
		t.Fatalf("last op = %v, want close", last.Op)
	}
	if last.Vertex != Pt(3, 4) {
		t.Errorf("close vertex = %+v, want the open vertex", last.Vertex)
	}
}

func TestPathCloseWithoutMove(t *testing.T) {
	p := NewPath()
	p.Close()
	if got := p.Instructions()[0].Vertex; got != (Point{}) {
		t.Errorf("close vertex = %+v, want origin", got)
	}
}

func TestPathAppendTransfersOpenIndex(t *testing.T) {
	a := NewPath()
	a.MoveTo(0, 0).LineTo(1, 0)
	b := NewPath()
	b.MoveTo(5, 5).LineTo(6, 5)

	a.Append(b)
	a.Close()
	insts := a.Instructions()
	if got := insts[len(insts)-1].Vertex; got != Pt(5, 5) {
		t.Errorf("close after append binds to %+v, want (5, 5)", got)
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2).LineTo(3, 4)
	p.Transform(Translate(10, 20).Multiply(Scale(2, 2)))

	insts := p.Instructions()
	if insts[0].Vertex != Pt(12, 24) {
		t.Errorf("vertex 0 = %+v, want (12, 24)", insts[0].Vertex)
	}
	if insts[1].Vertex != Pt(16, 28) {
		t.Errorf("vertex 1 = %+v, want (16, 28)", insts[1].Vertex)
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(-1.5, 2).LineTo(4.25, -3).LineTo(0, 7.75)

	fb := p.FloatBounds()
	if fb.Left != -1.5 || fb.Top != -3 || fb.Right() != 4.25 || fb.Bottom() != 7.75 {
		t.Errorf("float bounds = %+v", fb)
	}
	ib := p.IntBounds()
	if ib != IntRectLTWH(-2, -3, 7, 11) {
		t.Errorf("int bounds = %+v", ib)
	}
}

func TestQuadraticFlattening(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(50, 100, 100, 0, DefaultCurveQuality)

	insts := p.Instructions()
	if len(insts) < 4 {
		t.Fatalf("quadratic flattened into %d instructions", len(insts))
	}
	end := insts[len(insts)-1].Vertex
	if math.Abs(end.X-100) > 1e-6 || math.Abs(end.Y) > 1e-6 {
		t.Errorf("end vertex = %+v, want (100, 0)", end)
	}
	// The flattened curve must stay within the control polygon's box.
	for _, inst := range insts {
		if inst.Vertex.Y < -1e-6 || inst.Vertex.Y > 50+1e-6 {
			t.Errorf("vertex %+v outside curve hull", inst.Vertex)
		}
	}
}

func TestCubicFlattening(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(0, 50, 100, 50, 100, 0, DefaultCurveQuality)

	insts := p.Instructions()
	end := insts[len(insts)-1].Vertex
	if math.Abs(end.X-100) > 1e-6 || math.Abs(end.Y) > 1e-6 {
		t.Errorf("end vertex = %+v, want (100, 0)", end)
	}
}

func TestArcSweepTerminates(t *testing.T) {
	p := NewPath()
	p.MoveTo(10, 0)
	p.ArcSweep(0, 0, math.Pi/2, 1.0, DefaultCurveQuality)

	end := p.Position()
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y-10) > 1e-9 {
		t.Errorf("quarter arc ends at %+v, want (0, 10)", end)
	}
	// All intermediate vertices stay on the circle.
	for _, inst := range p.Instructions() {
		r := math.Hypot(inst.Vertex.X, inst.Vertex.Y)
		if math.Abs(r-10) > 1e-6 {
			t.Errorf("vertex %+v off circle (r = %v)", inst.Vertex, r)
		}
	}
}

func TestArcMoveAdjustsLastMove(t *testing.T) {
	p := NewPath()
	p.MoveTo(10, 0)
	p.ArcMove(0, 0, math.Pi, 1.0)
	if p.Len() != 1 {
		t.Fatalf("arc move after move should adjust in place, got %d instructions", p.Len())
	}
	pos := p.Position()
	if math.Abs(pos.X+10) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Errorf("position = %+v, want (-10, 0)", pos)
	}
}

func TestAddCircleClosed(t *testing.T) {
	p := NewPath()
	p.AddCircle(0, 0, 5, DefaultCurveQuality)
	insts := p.Instructions()
	if insts[0].Op != OpMove || insts[len(insts)-1].Op != OpClose {
		t.Fatalf("circle should be a closed sub-path")
	}
	if insts[len(insts)-1].Vertex != insts[0].Vertex {
		t.Errorf("close vertex %+v != open vertex %+v", insts[len(insts)-1].Vertex, insts[0].Vertex)
	}
}

func TestCloseAll(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0).LineTo(1, 0)
	p.MoveTo(5, 5).LineTo(6, 5).Close()
	p.MoveTo(9, 9).LineTo(10, 9)
	p.CloseAll()

	closes := 0
	for _, inst := range p.Instructions() {
		if inst.Op == OpClose {
			closes++
		}
	}
	if closes != 3 {
		t.Errorf("got %d closes, want 3", closes)
	}
}

func TestAddStar(t *testing.T) {
	p := NewPath()
	p.AddStar(0, 0, 5, 10, 4, 0)
	insts := p.Instructions()
	if insts[0].Op != OpMove || insts[len(insts)-1].Op != OpClose {
		t.Fatal("star should be one closed sub-path")
	}
	// One vertex per point: a move, four lines and a close.
	if len(insts) != 6 {
		t.Errorf("star has %d instructions, want 6", len(insts))
	}
}

package spanpix

import (
	"errors"
	"testing"
)

func TestIntRectOperations(t *testing.T) {
	a := IntRectLTWH(0, 0, 10, 10)
	b := IntRectLTWH(5, 5, 10, 10)

	if got := a.Union(b); got != IntRectLTWH(0, 0, 15, 15) {
		t.Errorf("union = %+v", got)
	}
	if got := a.Intersection(b); got != IntRectLTWH(5, 5, 5, 5) {
		t.Errorf("intersection = %+v", got)
	}
	if got := a.Intersection(IntRectLTWH(20, 20, 5, 5)); !got.IsEmpty() {
		t.Errorf("disjoint intersection = %+v, want empty", got)
	}
	if got := a.Union(IntRect{}); got != a {
		t.Errorf("union with empty = %+v, want %+v", got, a)
	}
	if !a.Contains(0, 0) || a.Contains(10, 10) {
		t.Errorf("contains is not half-open")
	}
	if got := a.Offset(3, -2); got != IntRectLTWH(3, -2, 10, 10) {
		t.Errorf("offset = %+v", got)
	}
}

func TestRectToIntRect(t *testing.T) {
	r := Rect{Left: -1.5, Top: 0.25, Width: 3.0, Height: 1.0}
	if got := r.ToIntRect(); got != IntRectLTWH(-2, 0, 4, 2) {
		t.Errorf("ToIntRect = %+v", got)
	}
}

func TestValidateCanvasBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds IntRect
		ok     bool
	}{
		{"typical", IntRectLTWH(0, 0, 640, 480), true},
		{"extremes", IntRectLTWH(-32768, -32768, 32767, 32767), true},
		{"zero width", IntRectLTWH(0, 0, 0, 10), false},
		{"too wide", IntRectLTWH(0, 0, 32768, 10), false},
		{"origin out of range", IntRectLTWH(32768, 0, 10, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvasBounds(tt.bounds)
			if tt.ok && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrBoundsDomain) {
					t.Errorf("error = %v, want ErrBoundsDomain", err)
				}
			}
		})
	}
}

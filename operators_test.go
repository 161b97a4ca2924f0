package spanpix

import "testing"

// rampRenderer emits a variable span of increasing coverage, for
// exercising the variable-span paths of the operators.
type rampRenderer struct{}

func (rampRenderer) Bounds() IntRect { return FullRect }

func (rampRenderer) Render(x, y, length int, out *SpanBuffer[Mask8]) {
	checkRenderLength(length)
	px := out.AddVariable(length, false)
	for i := range px {
		px[i] = Mask8((x + i) & 0xFF)
	}
}

func TestSolidRender(t *testing.T) {
	got := renderRow[ARGB32](t, NewSolid[ARGB32](0xFF123456), 0, 0, 8)
	for i, p := range got {
		if p != 0xFF123456 {
			t.Fatalf("pixel %d = %08X", i, uint32(p))
		}
	}
}

func TestSolidRectRender(t *testing.T) {
	r := NewSolidRect[Mask8](0xFF, IntRectLTWH(2, 0, 3, 1))
	got := renderRow[Mask8](t, r, 0, 0, 8)
	want := []Mask8{0, 0, 0xFF, 0xFF, 0xFF, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %02X, want %02X", i, got[i], want[i])
		}
	}
	if got := renderRow[Mask8](t, r, 0, 5, 8); got[3] != 0 {
		t.Errorf("row outside rect not transparent")
	}
}

func TestBlenderSolidOverRaster(t *testing.T) {
	// A half-transparent red blended over an opaque gray raster.
	raster := mustRaster[ARGB32](t, IntRectLTWH(0, 0, 4, 1), true)
	raster.Draw(NewSolid[ARGB32](0xFF808080))

	blend := NewBlender[ARGB32](&raster.Raster, NewSolid[ARGB32](0x80800000))
	got := renderRow[ARGB32](t, blend, 0, 0, 4)
	for i, p := range got {
		if p != 0xFFC04040 {
			t.Errorf("pixel %d = %08X, want FFC04040", i, uint32(p))
		}
	}
}

func TestBlenderIdentities(t *testing.T) {
	base := NewSolid[ARGB32](0xFF112233)

	t.Run("transparent overlay passes background", func(t *testing.T) {
		blend := NewBlender[ARGB32](base, NewSolid[ARGB32](0))
		got := renderRow[ARGB32](t, blend, 0, 0, 16)
		for _, p := range got {
			if p != 0xFF112233 {
				t.Fatalf("pixel = %08X", uint32(p))
			}
		}
	})

	t.Run("opaque overlay replaces background", func(t *testing.T) {
		blend := NewBlender[ARGB32](base, NewSolid[ARGB32](0xFFABCDEF))
		got := renderRow[ARGB32](t, blend, 0, 0, 16)
		for _, p := range got {
			if p != 0xFFABCDEF {
				t.Fatalf("pixel = %08X", uint32(p))
			}
		}
	})
}

func TestBlenderOutsideOverlayBounds(t *testing.T) {
	background := NewSolid[ARGB32](0xFF111111)
	overlay := NewSolidRect[ARGB32](0xFF222222, IntRectLTWH(0, 0, 4, 1))
	blend := NewBlender[ARGB32](background, overlay)

	got := renderRow[ARGB32](t, blend, 0, 10, 8)
	for i, p := range got {
		if p != 0xFF111111 {
			t.Errorf("pixel %d = %08X, want background", i, uint32(p))
		}
	}

	got = renderRow[ARGB32](t, blend, 0, 0, 8)
	for i := 0; i < 4; i++ {
		if got[i] != 0xFF222222 {
			t.Errorf("pixel %d = %08X, want overlay", i, uint32(got[i]))
		}
	}
	for i := 4; i < 8; i++ {
		if got[i] != 0xFF111111 {
			t.Errorf("pixel %d = %08X, want background", i, uint32(got[i]))
		}
	}
}

func TestAdderIdentities(t *testing.T) {
	ramp := rampRenderer{}

	t.Run("transparent is identity", func(t *testing.T) {
		add := NewAdder[Mask8](ramp, NewSolid[Mask8](0))
		got := renderRow[Mask8](t, add, 0, 0, 64)
		for i, m := range got {
			if m != Mask8(i) {
				t.Fatalf("pixel %d = %02X, want %02X", i, m, i)
			}
		}
	})

	t.Run("maximum absorbs", func(t *testing.T) {
		add := NewAdder[Mask8](ramp, NewSolid[Mask8](0xFF))
		got := renderRow[Mask8](t, add, 0, 0, 64)
		for i, m := range got {
			if m != 0xFF {
				t.Fatalf("pixel %d = %02X, want FF", i, m)
			}
		}
	})

	t.Run("variable saturating sum", func(t *testing.T) {
		add := NewAdder[Mask8](ramp, NewSolid[Mask8](0x80))
		got := renderRow[Mask8](t, add, 100, 0, 64)
		for i, m := range got {
			want := Mask8(min(100+i+0x80, 0xFF))
			if m != want {
				t.Fatalf("pixel %d = %02X, want %02X", i, m, want)
			}
		}
	})
}

func TestMultiplierIdentities(t *testing.T) {
	ramp := rampRenderer{}

	t.Run("maximum is identity", func(t *testing.T) {
		mul := NewMultiplier[Mask8](ramp, NewSolid[Mask8](0xFF))
		got := renderRow[Mask8](t, mul, 0, 0, 64)
		for i, m := range got {
			if m != Mask8(i) {
				t.Fatalf("pixel %d = %02X, want %02X", i, m, i)
			}
		}
	})

	t.Run("transparent annihilates", func(t *testing.T) {
		mul := NewMultiplier[Mask8](ramp, NewSolid[Mask8](0))
		got := renderRow[Mask8](t, mul, 0, 0, 64)
		for i, m := range got {
			if m != 0 {
				t.Fatalf("pixel %d = %02X, want 0", i, m)
			}
		}
	})
}

func TestMaskMultiplier(t *testing.T) {
	color := NewSolid[ARGB32](0xFFFF0000)
	half := NewSolid[Mask8](0x80)
	mul := NewMaskMultiplier[ARGB32](color, half)
	got := renderRow[ARGB32](t, mul, 0, 0, 4)
	want := ARGB32(0xFFFF0000).ModulateMask(0x80)
	for i, p := range got {
		if p != want {
			t.Errorf("pixel %d = %08X, want %08X", i, uint32(p), uint32(want))
		}
	}
	if !want.IsValid() {
		t.Errorf("masked pixel %08X violates premultiplication", uint32(want))
	}
}

func TestInverterRenderer(t *testing.T) {
	inv := NewInverter[Mask8](rampRenderer{})
	got := renderRow[Mask8](t, inv, 0, 0, 32)
	for i, m := range got {
		if m != ^Mask8(i) {
			t.Errorf("pixel %d = %02X, want %02X", i, m, ^Mask8(i))
		}
	}

	double := NewInverter[Mask8](inv)
	got = renderRow[Mask8](t, double, 0, 0, 32)
	for i, m := range got {
		if m != Mask8(i) {
			t.Errorf("double inversion pixel %d = %02X, want %02X", i, m, i)
		}
	}
	if b := double.Bounds(); b != FullRect {
		t.Errorf("inverter bounds = %+v, want FullRect", b)
	}
}

func TestConverterRoundTrip(t *testing.T) {
	src := rampRenderer{}
	round := ColorToMask{Source: MaskToColor{Source: src}}
	got := renderRow[Mask8](t, round, 0, 0, 256)
	for i, m := range got {
		if m != Mask8(i) {
			t.Errorf("pixel %d = %02X, want %02X", i, m, i)
		}
	}
}

func TestLookupBounds(t *testing.T) {
	src := NewSolidRect[Mask8](0xFF, IntRectLTWH(1, 2, 3, 4))

	transparentAtZero := NewTwoPointGradient[ARGB32](0, 0xFFFFFFFF)
	if b := NewLookup[ARGB32](src, transparentAtZero).Bounds(); b != src.Bounds() {
		t.Errorf("bounds = %+v, want source bounds", b)
	}

	opaqueAtZero := NewTwoPointGradient[ARGB32](0xFF000000, 0xFFFFFFFF)
	if b := NewLookup[ARGB32](src, opaqueAtZero).Bounds(); b != FullRect {
		t.Errorf("bounds = %+v, want FullRect", b)
	}
}

func TestLookupRender(t *testing.T) {
	table := NewTwoPointGradient[ARGB32](0, 0xFFFFFFFF)
	look := NewLookup[ARGB32](rampRenderer{}, table)
	got := renderRow[ARGB32](t, look, 0, 0, 256)
	if got[0] != table.At(0) || got[255] != table.At(255) {
		t.Errorf("lookup endpoints wrong: %08X, %08X", uint32(got[0]), uint32(got[255]))
	}
	for i, p := range got {
		if !p.IsValid() {
			t.Errorf("pixel %d = %08X not premultiplied", i, uint32(p))
		}
	}
}

func TestOptimizerRecoversSolidRuns(t *testing.T) {
	// A raster filled with a constant color renders as one variable
	// reference span; the optimizer should turn it back into a solid.
	raster := mustRaster[ARGB32](t, IntRectLTWH(0, 0, 64, 1), true)
	raster.Draw(NewSolid[ARGB32](0xFF112233))

	opt := NewOptimizer[ARGB32](&raster.Raster)
	var buf SpanBuffer[ARGB32]
	opt.Render(0, 0, 64, &buf)
	if len(buf.Spans) != 1 || !buf.Spans[0].Solid {
		t.Fatalf("optimizer produced %d spans, first solid=%v", len(buf.Spans), buf.Spans[0].Solid)
	}
	if buf.Spans[0].SolidPixel() != 0xFF112233 {
		t.Errorf("solid pixel = %08X", uint32(buf.Spans[0].SolidPixel()))
	}
}

func TestClipperAndOffsetter(t *testing.T) {
	src := NewSolid[Mask8](0xFF)
	clip := NewClipper[Mask8](src, IntRectLTWH(2, 0, 4, 2))
	got := renderRow[Mask8](t, clip, 0, 0, 8)
	want := []Mask8{0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("clip pixel %d = %02X, want %02X", i, got[i], want[i])
		}
	}

	off := NewOffsetter[Mask8](clip, 1, 0)
	got = renderRow[Mask8](t, off, 0, 0, 8)
	want = []Mask8{0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset pixel %d = %02X, want %02X", i, got[i], want[i])
		}
	}
	if b := off.Bounds(); b != IntRectLTWH(3, 0, 4, 2) {
		t.Errorf("offset bounds = %+v", b)
	}
}

func TestBlendSpanLengthInvariance(t *testing.T) {
	raster := mustRaster[ARGB32](t, IntRectLTWH(0, 0, 200, 1), true)
	raster.Draw(NewSolid[ARGB32](0xFF808080))
	mask := rampRenderer{}
	expr := NewBlender[ARGB32](&raster.Raster, NewMaskMultiplier[ARGB32](NewSolid[ARGB32](0xFF00FF00), mask))

	whole := renderRow[ARGB32](t, expr, 0, 0, 200)
	for _, chunk := range []int{1, 7, 64, 200} {
		got := renderRowChunked[ARGB32](t, expr, 0, 0, 200, chunk)
		for i := range whole {
			if got[i] != whole[i] {
				t.Fatalf("chunk %d pixel %d = %08X, want %08X", chunk, i, uint32(got[i]), uint32(whole[i]))
			}
		}
	}
}

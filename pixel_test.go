package spanpix

import "testing"

func TestARGB32IsValid(t *testing.T) {
	tests := []struct {
		name  string
		pixel ARGB32
		want  bool
	}{
		{"transparent", 0x00000000, true},
		{"opaque white", 0xFFFFFFFF, true},
		{"premultiplied half red", 0x80800000, true},
		{"red exceeding alpha", 0x80FF0000, false},
		{"green exceeding alpha", 0x00000100, false},
		{"blue equal to alpha", 0x40000040, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pixel.IsValid(); got != tt.want {
				t.Errorf("IsValid(%08X) = %v, want %v", uint32(tt.pixel), got, tt.want)
			}
		})
	}
}

func TestARGB32AddSaturates(t *testing.T) {
	tests := []struct {
		name string
		a, b ARGB32
		want ARGB32
	}{
		{"zero identity", 0x01020304, 0, 0x01020304},
		{"plain sum", 0x10203040, 0x01010101, 0x11213141},
		{"per channel clip", 0x80FF4080, 0x80018180, 0xFFFFC1FF},
		{"maximum absorbs", 0xFFFFFFFF, 0x12345678, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); got != tt.want {
				t.Errorf("Add(%08X, %08X) = %08X, want %08X", uint32(tt.a), uint32(tt.b), uint32(got), uint32(tt.want))
			}
			if got := tt.b.Add(tt.a); got != tt.want {
				t.Errorf("Add is not commutative for %08X, %08X", uint32(tt.a), uint32(tt.b))
			}
		})
	}
}

func TestARGB32BlendIdentities(t *testing.T) {
	pixels := []ARGB32{0x00000000, 0xFF123456, 0x80402010, 0xFFFFFFFF}
	for _, p := range pixels {
		if got := p.Blend(TransparentARGB32); got != p {
			t.Errorf("blend(%08X, transparent) = %08X", uint32(p), uint32(got))
		}
		opaque := ARGB32(0xFF00C080)
		if got := p.Blend(opaque); got != opaque {
			t.Errorf("blend(%08X, opaque) = %08X, want the opaque color", uint32(p), uint32(got))
		}
	}
}

func TestARGB32BlendPreservesPremultiplication(t *testing.T) {
	dests := []ARGB32{0x00000000, 0xFF808080, 0x40202020, 0xFFFFFFFF}
	fgs := []ARGB32{0x00000000, 0x80800000, 0x40004000, 0xFF123456}
	for _, d := range dests {
		for _, f := range fgs {
			got := d.Blend(f)
			if !got.IsValid() {
				t.Errorf("blend(%08X, %08X) = %08X violates premultiplication", uint32(d), uint32(f), uint32(got))
			}
		}
	}
}

func TestARGB32BlendHalfRedOverGray(t *testing.T) {
	// 50% premultiplied red over an opaque mid gray: the destination is
	// scaled by 64/128 per color channel and the red adds on top.
	got := ARGB32(0xFF808080).Blend(0x80800000)
	want := ARGB32(0xFFC04040)
	if got != want {
		t.Errorf("blend = %08X, want %08X", uint32(got), uint32(want))
	}
}

func TestARGB32MultiplyIdentities(t *testing.T) {
	pixels := []ARGB32{0x00000000, 0xFF123456, 0x80402010}
	for _, p := range pixels {
		if got := p.Multiply(p.Maximum()); got != p {
			t.Errorf("multiply(%08X, maximum) = %08X", uint32(p), uint32(got))
		}
		if got := p.Multiply(TransparentARGB32); got != TransparentARGB32 {
			t.Errorf("multiply(%08X, transparent) = %08X", uint32(p), uint32(got))
		}
	}
}

func TestInvertInvolution(t *testing.T) {
	for _, p := range []ARGB32{0x00000000, 0xFF123456, 0x80402010, 0xFFFFFFFF} {
		if got := p.Invert().Invert(); got != p {
			t.Errorf("invert(invert(%08X)) = %08X", uint32(p), uint32(got))
		}
	}
	for _, m := range []Mask8{0x00, 0x7F, 0xFF} {
		if got := m.Invert().Invert(); got != m {
			t.Errorf("invert(invert(%02X)) = %02X", uint8(m), uint8(got))
		}
	}
}

func TestConversionRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		m := Mask8(i)
		if got := m.ARGB().Mask(); got != m {
			t.Errorf("Mask8(%02X) round trip = %02X", i, uint8(got))
		}
	}
}

func TestARGB32Interpolate(t *testing.T) {
	from := ARGB32(0xFF000000)
	to := ARGB32(0xFFFFFFFF)
	if got := from.Interpolate(to, 0); got != from {
		t.Errorf("interpolate at 0 = %08X, want from", uint32(got))
	}
	if got := from.Interpolate(to, 256); got != to {
		t.Errorf("interpolate at 256 = %08X, want to", uint32(got))
	}
	// 255 * 128 >> 8 truncates to 127 per channel.
	if got := from.Interpolate(to, 128); got != 0xFF7F7F7F {
		t.Errorf("interpolate at 128 = %08X, want FF7F7F7F", uint32(got))
	}
}

func TestMask8Add(t *testing.T) {
	if got := Mask8(0x80).Add(0x90); got != 0xFF {
		t.Errorf("saturating add = %02X, want FF", uint8(got))
	}
	if got := Mask8(0x10).Add(0x20); got != 0x30 {
		t.Errorf("add = %02X, want 30", uint8(got))
	}
	if got := Mask8(0x42).Add(0); got != 0x42 {
		t.Errorf("add identity = %02X, want 42", uint8(got))
	}
}

func TestFromFloatRGBPremultiplies(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a float64
	}{
		{"opaque red", 1, 0, 0, 1},
		{"half red", 1, 0, 0, 0.5},
		{"half gray", 0.5, 0.5, 0.5, 0.5},
		{"transparent", 1, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFloatRGB(tt.r, tt.g, tt.b, tt.a)
			if !got.IsValid() {
				t.Errorf("FromFloatRGB(%v, %v, %v, %v) = %08X not premultiplied", tt.r, tt.g, tt.b, tt.a, uint32(got))
			}
		})
	}
	if got := FromFloatRGB(1, 0, 0, 1); got != 0xFFFF0000 {
		t.Errorf("opaque red = %08X, want FFFF0000", uint32(got))
	}
	if got := FromFloatRGB(1, 1, 1, 0); got != 0 {
		t.Errorf("fully transparent = %08X, want 0", uint32(got))
	}
}

func TestFromFloatHSVSectors(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    ARGB32
	}{
		{"red", 0, 1, 1, 0xFFFF0000},
		{"green", 1.0 / 3.0, 1, 1, 0xFF00FF00},
		{"blue", 2.0 / 3.0, 1, 1, 0xFF0000FF},
		{"white", 0, 0, 1, 0xFFFFFFFF},
		{"black", 0.5, 1, 0, 0xFF000000},
		{"hue wraps", 1, 1, 1, 0xFFFF0000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloatHSV(tt.h, tt.s, tt.v, 1); got != tt.want {
				t.Errorf("FromFloatHSV(%v, %v, %v, 1) = %08X, want %08X", tt.h, tt.s, tt.v, uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestBilinearEqualFastPath(t *testing.T) {
	p := ARGB32(0x80402010)
	if got := Bilinear(p, p, p, p, 100, 200); got != p {
		t.Errorf("bilinear of equal pixels = %08X, want %08X", uint32(got), uint32(p))
	}
}

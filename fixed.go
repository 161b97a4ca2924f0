package spanpix

// Fixed32_32 is a signed fixed-point number with 32 integer bits and 32
// fractional bits, stored in a native int64. The rasterizer and the
// texture sampler use it to track sub-pixel positions that are
// incremented many thousands of times per frame without accumulating
// floating-point error.
type Fixed32_32 int64

// FixedFromInt32 builds a fixed-point value from an integer part and a
// fractional part.
func FixedFromInt32(hi int32, lo uint32) Fixed32_32 {
	return Fixed32_32(int64(hi)<<32 | int64(lo))
}

// FixedFromFloat converts a float64 to fixed point, truncating toward
// zero.
func FixedFromFloat(v float64) Fixed32_32 {
	return Fixed32_32(v * (1 << 32))
}

// Hi returns the integer part (the high 32 bits).
func (f Fixed32_32) Hi() int32 { return int32(f >> 32) }

// Lo returns the fractional part (the low 32 bits).
func (f Fixed32_32) Lo() uint32 { return uint32(f) }

// Add returns f + g.
func (f Fixed32_32) Add(g Fixed32_32) Fixed32_32 { return f + g }

// Neg returns -f.
func (f Fixed32_32) Neg() Fixed32_32 { return -f }

// MulInt32 returns f scaled by the integer v.
func (f Fixed32_32) MulInt32(v int32) Fixed32_32 { return f * Fixed32_32(v) }

// MulUint32 returns f scaled by the unsigned integer v.
func (f Fixed32_32) MulUint32(v uint32) Fixed32_32 { return f * Fixed32_32(v) }

// Shl returns f shifted left by n bits.
func (f Fixed32_32) Shl(n uint) Fixed32_32 { return f << n }

// Float returns the value as a float64. Intended for diagnostics only.
func (f Fixed32_32) Float() float64 { return float64(f) / (1 << 32) }

// FixedDiv divides two 32-bit integers producing a full-precision
// fixed-point quotient, truncated toward zero.
func FixedDiv(v1, v2 int32) Fixed32_32 {
	neg := (v1 < 0) != (v2 < 0)
	a := uint64(abs32(v1))
	b := uint64(abs32(v2))
	q := (a << 32) / b
	if neg {
		return Fixed32_32(-int64(q))
	}
	return Fixed32_32(q)
}

func abs32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}

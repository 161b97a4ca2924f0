// Package text converts font glyph outlines into spanpix paths.
//
// The package deliberately stops at glyph path composition: glyphs are
// extracted from OpenType fonts via golang.org/x/image/font/sfnt,
// flattened into paths, and positioned by advance and kerning. Shaping,
// bidirectional layout and hinting are out of scope.
package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/spanpix"
)

// Extractor loads glyph outlines from fonts and appends them to paths.
// It owns an sfnt.Buffer, so it is cheap to reuse but not safe for
// concurrent use; create one Extractor per goroutine.
type Extractor struct {
	buffer sfnt.Buffer
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// AppendGlyph appends the outline of one glyph, rendered at the given
// pixel size and translated by (dx, dy), to the path. The glyph's y axis
// increases downward, matching raster coordinates.
func (e *Extractor) AppendGlyph(p *spanpix.Path, f *sfnt.Font, gid sfnt.GlyphIndex, size, dx, dy, quality float64) error {
	ppem := floatToFixed(size)
	segments, err := f.LoadGlyph(&e.buffer, gid, ppem, nil)
	if err != nil {
		return fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	for _, seg := range segments {
		p0 := spanpix.Pt(fixedToFloat(seg.Args[0].X)+dx, fixedToFloat(seg.Args[0].Y)+dy)
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p.MoveTo(p0.X, p0.Y)
		case sfnt.SegmentOpLineTo:
			p.LineTo(p0.X, p0.Y)
		case sfnt.SegmentOpQuadTo:
			p1 := spanpix.Pt(fixedToFloat(seg.Args[1].X)+dx, fixedToFloat(seg.Args[1].Y)+dy)
			p.QuadraticTo(p0.X, p0.Y, p1.X, p1.Y, quality)
		case sfnt.SegmentOpCubeTo:
			p1 := spanpix.Pt(fixedToFloat(seg.Args[1].X)+dx, fixedToFloat(seg.Args[1].Y)+dy)
			p2 := spanpix.Pt(fixedToFloat(seg.Args[2].X)+dx, fixedToFloat(seg.Args[2].Y)+dy)
			p.CubicTo(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y, quality)
		}
	}
	// Sub-paths from LoadGlyph end without an explicit close.
	if len(segments) > 0 {
		p.CloseAll()
	}
	return nil
}

// AppendString composes the glyphs of s into the path, starting the
// baseline at (x, y) and advancing with glyph advances and kerning.
// It returns the x coordinate after the final glyph. Runes without a
// glyph are skipped.
func (e *Extractor) AppendString(p *spanpix.Path, f *sfnt.Font, s string, size, x, y, quality float64) (float64, error) {
	ppem := floatToFixed(size)
	prev := sfnt.GlyphIndex(0)
	hasPrev := false
	for _, r := range s {
		gid, err := f.GlyphIndex(&e.buffer, r)
		if err != nil {
			return x, fmt.Errorf("text: glyph index for %q: %w", r, err)
		}
		if gid == 0 {
			hasPrev = false
			continue
		}
		if hasPrev {
			if kern, err := f.Kern(&e.buffer, prev, gid, ppem, font.HintingNone); err == nil {
				x += fixedToFloat(kern)
			}
		}
		if err := e.AppendGlyph(p, f, gid, size, x, y, quality); err != nil {
			return x, err
		}
		advance, err := f.GlyphAdvance(&e.buffer, gid, ppem, font.HintingNone)
		if err != nil {
			return x, fmt.Errorf("text: advance for glyph %d: %w", gid, err)
		}
		x += fixedToFloat(advance)
		prev = gid
		hasPrev = true
	}
	return x, nil
}

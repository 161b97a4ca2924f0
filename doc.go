// Package spanpix is a software 2D vector-graphics rasterization core.
//
// The package is built around a pull-based span pipeline: a destination
// raster asks a renderer expression for horizontal runs of pixels, and the
// expression recursively pulls spans from its inputs. Leaf renderers
// (solids, gradients, textures, rasters, polygon coverage masks) produce
// span buffers; operator renderers (blend, add, multiply, invert, clip,
// offset, lookup) combine them span by span, short-circuiting runs that
// are fully transparent or fully opaque.
//
// Two pixel formats are supported: ARGB32, a 32-bit premultiplied-alpha
// color, and Mask8, an 8-bit coverage value. The renderer algebra is
// generic over both, so masking is ordinary multiplication and coverage
// masks compose like images.
//
// Vector shapes enter the pipeline through Path, which records move/line/
// close instructions. Curves (quadratic, cubic, elliptical arcs) are
// flattened at construction time, and paths can be stroked, dashed and
// transformed before being rasterized by PolygonMask, an analytic
// scanline coverage rasterizer with non-zero and even-odd fill rules.
//
// The package performs no I/O and spawns no goroutines. Distinct renderer
// expressions may be used from distinct goroutines as long as they do not
// share mutable rasters or polygon masks.
package spanpix

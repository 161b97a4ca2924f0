package spanpix

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by constructors. Errors returned by this
// package wrap one of these, so callers can classify failures with
// errors.Is; the exception is SVG path parsing, which returns an
// *SVGPathError that wraps no sentinel.
var (
	// ErrBoundsDomain reports a canvas or sub-rectangle whose position or
	// size is outside the supported domain (see ValidateCanvasBounds).
	ErrBoundsDomain = errors.New("spanpix: bounds outside supported domain")

	// ErrInvalidVertex reports a non-finite or out-of-range coordinate:
	// a path vertex, a gradient stop, or a radial gradient center or
	// radius.
	ErrInvalidVertex = errors.New("spanpix: invalid path vertex")

	// ErrGradientOverflow reports a radial gradient whose radii exceed
	// the fixed-point headroom of the incremental evaluator.
	ErrGradientOverflow = errors.New("spanpix: gradient radius overflow")
)

// wrapErrf prefixes a formatted description onto a sentinel error while
// keeping errors.Is classification intact.
func wrapErrf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// SVGPathError describes a malformed command in SVG path data.
type SVGPathError struct {
	// Command is the command letter being parsed when the error was
	// detected, or 0 when the data does not begin with a move command.
	Command byte

	// Offset is the byte offset into the source string.
	Offset int

	// Reason is a short human-readable description.
	Reason string
}

func (e *SVGPathError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("spanpix: svg path data at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("spanpix: svg path data command %q at offset %d: %s", e.Command, e.Offset, e.Reason)
}

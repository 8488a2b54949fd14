package geometry

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when a loop cannot be assembled because two
// consecutive corners coincide.
var ErrDegenerate = errors.New("degenerate segment")

// CurveLoop is an ordered, closed sequence of line segments describing a
// planar footprint.
type CurveLoop struct {
	Segments []Line `json:"segments"`
}

// Closed reports whether consecutive segments are continuous and the last
// segment's end point equals the first segment's start point exactly.
func (c CurveLoop) Closed() bool {
	n := len(c.Segments)
	if n == 0 {
		return false
	}
	for i, seg := range c.Segments {
		next := c.Segments[(i+1)%n]
		if seg.End != next.Start {
			return false
		}
	}
	return true
}

// AssembleLoop connects the given corners in order into a closed loop,
// wrapping the last corner back to the first. Coincident consecutive corners
// are rejected eagerly so that a zero-width or zero-length footprint fails
// here instead of surfacing as an ambiguous creation error downstream.
func AssembleLoop(corners []Point) (CurveLoop, error) {
	if len(corners) < 3 {
		return CurveLoop{}, fmt.Errorf("loop requires at least 3 corners, got %d", len(corners))
	}
	segments := make([]Line, 0, len(corners))
	for i, start := range corners {
		end := corners[(i+1)%len(corners)]
		seg := Line{Start: start, End: end}
		if seg.Degenerate() {
			return CurveLoop{}, fmt.Errorf("corner %d: %w", i, ErrDegenerate)
		}
		segments = append(segments, seg)
	}
	loop := CurveLoop{Segments: segments}
	if !loop.Closed() {
		return CurveLoop{}, fmt.Errorf("assembled loop is not closed")
	}
	return loop, nil
}

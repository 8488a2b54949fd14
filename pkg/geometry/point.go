// Package geometry defines the planar primitives used to describe room
// footprints: points, bounded line segments, closed curve loops, and the
// metric-to-internal unit conversion applied to incoming room dimensions.
package geometry

import "math"

// Point is a position in document length units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Line is a bounded segment between two points.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Length returns the euclidean length of the segment.
func (l Line) Length() float64 {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	dz := l.End.Z - l.Start.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Degenerate reports whether the segment's endpoints coincide.
func (l Line) Degenerate() bool {
	return l.Start == l.End
}

package geometry

// RectangleCorners synthesizes the four footprint corners of an axis-aligned
// rectangle of the given length and width, counter-clockwise starting at the
// origin, all on the z=0 plane.
func RectangleCorners(length, width float64) [4]Point {
	return [4]Point{
		{X: 0, Y: 0, Z: 0},
		{X: length, Y: 0, Z: 0},
		{X: length, Y: width, Z: 0},
		{X: 0, Y: width, Z: 0},
	}
}

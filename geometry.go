package meshwarp

import "github.com/gogpu/meshwarp/internal/geom"

// Point is a position in image space.
type Point = geom.Point

// Matrix is a 2x3 affine transform.
type Matrix = geom.Matrix

// Rect is an axis-aligned rectangle in floating-point coordinates.
type Rect = geom.Rect

// Polygon is a closed polygon; the last vertex connects to the first.
type Polygon = geom.Polygon

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return geom.Pt(x, y)
}

// Identity returns the identity transform.
func Identity() Matrix {
	return geom.Identity()
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix {
	return geom.Translate(x, y)
}

// Scale returns a scale by (x, y) about the origin.
func Scale(x, y float64) Matrix {
	return geom.Scale(x, y)
}

// Rotate returns a rotation by angle radians about the origin.
func Rotate(angle float64) Matrix {
	return geom.Rotate(angle)
}

func mapPoints(m Matrix, pts []Point) []Point {
	out := append([]Point(nil), pts...)
	if !m.IsIdentity() {
		m.TransformPoints(out)
	}
	return out
}

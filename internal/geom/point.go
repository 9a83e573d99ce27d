// Package geom provides the planar geometry shared by the deformation
// strategies and the grid resampler: points, affine matrices, float
// rectangles and polygons.
package geom

import (
	"image"
	"math"
)

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{X: 0, Y: 0}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Round returns the nearest integer pixel position.
func (p Point) Round() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// FromImage converts an integer point to a Point.
func FromImage(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// TransformAsBase expresses pt, given in the frame spanned by base1, in the
// frame spanned by base2. The two frames differ by a rotation and a uniform
// scale; a degenerate base1 leaves pt unchanged and a degenerate base2
// collapses it to the origin.
func TransformAsBase(pt, base1, base2 Point) Point {
	const eps = 1e-5

	len1 := base1.Length()
	if len1 < eps {
		return pt
	}
	sin1 := base1.Y / len1
	cos1 := base1.X / len1

	len2 := base2.Length()
	if len2 < eps {
		return Point{}
	}
	sin2 := base2.Y / len2
	cos2 := base2.X / len2

	sinD := sin2*cos1 - cos2*sin1
	cosD := cos1*cos2 + sin1*sin2
	scale := len2 / len1

	return Point{
		X: scale * (cosD*pt.X - sinD*pt.Y),
		Y: scale * (sinD*pt.X + cosD*pt.Y),
	}
}

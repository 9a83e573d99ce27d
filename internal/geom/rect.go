package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with float64 coordinates.
// A Rect whose Min exceeds its Max on either axis is empty.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle that any point or rectangle will replace
// when accumulated into it.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// RectFromImage converts an integer pixel rectangle.
func RectFromImage(r image.Rectangle) Rect {
	if r.Empty() {
		return EmptyRect()
	}
	return Rect{Min: FromImage(r.Min), Max: FromImage(r.Max)}
}

// BoundsOf returns the bounding rectangle of pts.
func BoundsOf(pts []Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Extend grows the rectangle to include p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return r.Extend(other.Min).Extend(other.Max)
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Aligned returns the smallest integer rectangle covering r.
func (r Rect) Aligned() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

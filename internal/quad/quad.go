// Package quad maps points between an axis-aligned source cell and an
// arbitrary destination quadrilateral using a bilinear patch.
//
// Forward evaluates the patch. Backward inverts it: given a point in the
// destination quadrilateral it recovers the parametric (mu, nu) coordinates
// by solving a quadratic in nu and returns the matching source position.
// Neither direction can fail; degenerate patches resolve through the
// fallback branches documented on Backward.
package quad

import "github.com/gogpu/meshwarp/internal/geom"

// Quad holds four corners in top-left, top-right, bottom-right, bottom-left
// order.
type Quad [4]geom.Point

// Polygon returns the corners as a polygon.
func (q Quad) Polygon() geom.Polygon {
	return geom.Polygon{q[0], q[1], q[2], q[3]}
}

// Rect returns the axis-aligned quad spanning r.
func Rect(r geom.Rect) Quad {
	return Quad{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Forward maps points of an axis-aligned source quad into a destination
// quad.
type Forward struct {
	srcBase, dstBase geom.Point
	coeffX, coeffY   float64

	top    geom.Point // dst[1] - dst[0]
	bottom geom.Point // dst[2] - dst[3]
	left   geom.Point // dst[3] - dst[0]
}

// NewForward creates a forward interpolator. src must be axis-aligned.
func NewForward(src, dst Quad) *Forward {
	return &Forward{
		srcBase: src[0],
		dstBase: dst[0],
		coeffX:  1 / src[0].Distance(src[1]),
		coeffY:  1 / src[0].Distance(src[3]),
		top:     dst[1].Sub(dst[0]),
		bottom:  dst[2].Sub(dst[3]),
		left:    dst[3].Sub(dst[0]),
	}
}

// Map returns the destination position of pt. Points outside the source
// quad are extrapolated.
func (f *Forward) Map(pt geom.Point) geom.Point {
	rel := pt.Sub(f.srcBase)
	x := rel.X * f.coeffX
	y := rel.Y * f.coeffY

	edge := f.top.Mul(1 - y).Add(f.bottom.Mul(y))
	return f.dstBase.Add(f.left.Mul(y)).Add(edge.Mul(x))
}

// MapPolygon maps every vertex of pg.
func (f *Forward) MapPolygon(pg geom.Polygon) geom.Polygon {
	out := make(geom.Polygon, len(pg))
	for i, p := range pg {
		out[i] = f.Map(p)
	}
	return out
}

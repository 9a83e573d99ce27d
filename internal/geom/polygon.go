package geom

import "math"

// Polygon is a closed polygon; the last vertex connects back to the first.
type Polygon []Point

// boundaryEps is the distance below which a point counts as lying on an
// edge of the polygon.
const boundaryEps = 1e-9

// boundaryNudge is how far AdjustIfOnBoundary moves a point off the outline.
const boundaryNudge = 1e-3

// SignedArea returns the shoelace area; positive when the vertices run
// counter-clockwise in a y-up frame.
func (pg Polygon) SignedArea() float64 {
	n := len(pg)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		sum += pg[i].Cross(pg[(i+1)%n])
	}
	return sum / 2
}

// Direction returns +1 or -1 depending on the polygon winding, or 0 for a
// polygon without area.
func (pg Polygon) Direction() float64 {
	a := pg.SignedArea()
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// Bounds returns the bounding rectangle of the vertices.
func (pg Polygon) Bounds() Rect {
	return BoundsOf(pg)
}

// ContainsPoint reports whether p is inside the polygon using the even-odd
// rule. Edges are half-open, so a point shared by two adjacent polygons is
// claimed by exactly one of them.
func (pg Polygon) ContainsPoint(p Point) bool {
	n := len(pg)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := range n {
		pi, pj := pg[i], pg[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pj.X + (p.Y-pj.Y)*(pi.X-pj.X)/(pi.Y-pj.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// OnBoundary reports whether p lies on one of the polygon edges.
func (pg Polygon) OnBoundary(p Point) bool {
	n := len(pg)
	for i := range n {
		if distToSegment(p, pg[i], pg[(i+1)%n]) <= boundaryEps {
			return true
		}
	}
	return false
}

// ContainsPointInclusive is ContainsPoint with points on the outline
// counted as inside.
func (pg Polygon) ContainsPointInclusive(p Point) bool {
	return pg.ContainsPoint(p) || pg.OnBoundary(p)
}

// AdjustIfOnBoundary moves p slightly towards the interior for every edge
// it lies on. direction is the polygon winding as returned by Direction.
func (pg Polygon) AdjustIfOnBoundary(direction float64, p Point) Point {
	if direction == 0 {
		return p
	}
	n := len(pg)
	result := p
	for i := range n {
		p0, p1 := pg[i], pg[(i+1)%n]
		if distToSegment(p, p0, p1) > boundaryEps {
			continue
		}
		edge := p1.Sub(p0)
		inward := Point{X: -edge.Y, Y: edge.X}.Normalize().Mul(direction)
		result = result.Add(inward.Mul(boundaryNudge))
	}
	return result
}

// Translate returns a copy of the polygon shifted by d.
func (pg Polygon) Translate(d Point) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.Add(d)
	}
	return out
}

// ClipToRect returns the part of the polygon inside r (Sutherland-Hodgman).
// The rectangle edges are part of the clip region. A concave polygon may
// produce zero-width bridges along the rectangle border; they do not change
// even-odd containment of interior points.
func (pg Polygon) ClipToRect(r Rect) Polygon {
	if len(pg) < 3 || r.IsEmpty() {
		return nil
	}
	out := pg
	planes := [4]struct {
		inside func(Point) bool
		cut    func(a, b Point) Point
	}{
		{
			inside: func(p Point) bool { return p.X >= r.Min.X },
			cut:    func(a, b Point) Point { return intersectX(a, b, r.Min.X) },
		},
		{
			inside: func(p Point) bool { return p.X <= r.Max.X },
			cut:    func(a, b Point) Point { return intersectX(a, b, r.Max.X) },
		},
		{
			inside: func(p Point) bool { return p.Y >= r.Min.Y },
			cut:    func(a, b Point) Point { return intersectY(a, b, r.Min.Y) },
		},
		{
			inside: func(p Point) bool { return p.Y <= r.Max.Y },
			cut:    func(a, b Point) Point { return intersectY(a, b, r.Max.Y) },
		},
	}
	for _, plane := range planes {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make(Polygon, 0, len(in)+4)
		prev := in[len(in)-1]
		prevInside := plane.inside(prev)
		for _, cur := range in {
			curInside := plane.inside(cur)
			switch {
			case curInside && prevInside:
				out = append(out, cur)
			case curInside && !prevInside:
				out = append(out, plane.cut(prev, cur), cur)
			case !curInside && prevInside:
				out = append(out, plane.cut(prev, cur))
			}
			prev, prevInside = cur, curInside
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func intersectX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func intersectY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}

func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Distance(a.Add(ab.Mul(t)))
}

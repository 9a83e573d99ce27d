package quad

import (
	"math"

	"github.com/gogpu/meshwarp/internal/geom"
)

// eps is the magnitude below which a coefficient is treated as zero.
const eps = 1e-10

// Backward maps points of a destination quad back into an axis-aligned
// source quad.
//
// Writing the destination patch as P = A + mu*a + nu*c + mu*nu*d, with
// a = AB, c = AD and d = BC - AD, the row parameter nu solves
//
//	qA*nu^2 + qB*nu + qC = 0
//
// where qA depends only on the quad and qB, qC split into a constant part
// plus terms linear in x and in y. SetX and SetY update only their part so
// a scanline walk recomputes one term per pixel.
type Backward struct {
	a, b, c, d geom.Point
	base       geom.Point

	qA     float64
	qBBase float64

	qBX, qBY float64
	qCX, qCY float64
	px, py   float64

	srcBase geom.Point
	srcW    float64
	srcH    float64
}

// NewBackward creates a backward interpolator for the src/dst quad pair.
// src must be axis-aligned.
func NewBackward(src, dst Quad) *Backward {
	bw := &Backward{
		a:       dst[1].Sub(dst[0]),
		base:    dst[0],
		b:       dst[2].Sub(dst[1]),
		c:       dst[3].Sub(dst[0]),
		srcBase: src[0],
		srcW:    src[1].X - src[0].X,
		srcH:    src[3].Y - src[0].Y,
	}
	bw.d = bw.b.Sub(bw.c)
	bw.qA = bw.c.Cross(bw.d)
	bw.qBBase = bw.c.Cross(bw.a)
	return bw
}

// SetX sets the x coordinate of the next query.
func (bw *Backward) SetX(x float64) {
	x -= bw.base.X
	bw.qBX = -x * bw.d.Y
	bw.qCX = -x * bw.a.Y
	bw.px = x
}

// SetY sets the y coordinate of the next query.
func (bw *Backward) SetY(y float64) {
	y -= bw.base.Y
	bw.qBY = y * bw.d.X
	bw.qCY = y * bw.a.X
	bw.py = y
}

// Map returns the source position of pt.
func (bw *Backward) Map(pt geom.Point) geom.Point {
	bw.SetX(pt.X)
	bw.SetY(pt.Y)
	return bw.Value()
}

// Value returns the source position of the point set by SetX and SetY.
func (bw *Backward) Value() geom.Point {
	qB := bw.qBBase + bw.qBX + bw.qBY
	qC := bw.qCX + bw.qCY

	var nu float64
	if math.Abs(bw.qA) < eps {
		nu = solveLinear(qB, qC)
	} else {
		nu = selectRoot(bw.qA, qB, qC)
	}
	mu := bw.solveMu(nu)

	return geom.Point{
		X: bw.srcBase.X + mu*bw.srcW,
		Y: bw.srcBase.Y + nu*bw.srcH,
	}
}

// solveLinear handles a patch whose opposite edges are parallel: the
// quadratic term vanishes and nu = -qC/qB. A patch that has collapsed
// completely resolves to the first row.
func solveLinear(qB, qC float64) float64 {
	if math.Abs(qB) < eps {
		return 0
	}
	return -qC / qB
}

// selectRoot picks the root of qA*nu^2 + qB*nu + qC that lies in [0, 1],
// preferring the -sqrt root. When neither root is in range the -sqrt root
// is clamped; a negative discriminant yields 0.
func selectRoot(qA, qB, qC float64) float64 {
	disc := qB*qB - 4*qA*qC
	if disc < 0 {
		return 0
	}
	sqrtD := math.Sqrt(disc)
	div := 1 / (2 * qA)

	nu := (-qB - sqrtD) * div
	if inUnit(nu) {
		return nu
	}
	if nu2 := (-qB + sqrtD) * div; inUnit(nu2) {
		return nu2
	}
	return math.Max(0, math.Min(1, nu))
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// solveMu recovers the column parameter from whichever axis equation has
// the larger denominator.
func (bw *Backward) solveMu(nu float64) float64 {
	denX := bw.a.X + nu*bw.d.X
	denY := bw.a.Y + nu*bw.d.Y

	if math.Abs(denX) >= math.Abs(denY) {
		if math.Abs(denX) < eps {
			return 0
		}
		return (bw.px - nu*bw.c.X) / denX
	}
	return (bw.py - nu*bw.c.Y) / denY
}

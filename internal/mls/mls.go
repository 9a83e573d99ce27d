// Package mls implements moving least squares point deformation.
//
// Given control points p that are dragged to q, the position of any query
// point v is found by fitting, for that v alone, the best transform taking
// p to q where every pair is weighted by w_i = 1/|p_i - v|^(2*alpha).
// Mode selects the family of fitted transforms.
package mls

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/meshwarp/internal/geom"
)

// Errors returned by Validate.
var (
	// ErrNoControlPoints is returned when no control points are given.
	ErrNoControlPoints = errors.New("mls: no control points")

	// ErrControlPointMismatch is returned when the original and target
	// control point counts differ.
	ErrControlPointMismatch = errors.New("mls: control point count mismatch")
)

// Mode selects the transform family fitted around each query point.
type Mode uint8

const (
	// Affine fits an unconstrained linear map.
	Affine Mode = iota

	// Similitude fits rotation with uniform scale.
	Similitude

	// Rigid fits rotation only.
	Rigid
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Affine:
		return "affine"
	case Similitude:
		return "similitude"
	case Rigid:
		return "rigid"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name as returned by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "affine":
		return Affine, nil
	case "similitude", "similarity":
		return Similitude, nil
	case "rigid":
		return Rigid, nil
	default:
		return Affine, fmt.Errorf("mls: unknown mode %q", s)
	}
}

// Validate checks that p and q can be used as control points.
func Validate(p, q []geom.Point) error {
	if len(p) == 0 {
		return ErrNoControlPoints
	}
	if len(p) != len(q) {
		return fmt.Errorf("%w: %d original, %d target", ErrControlPointMismatch, len(p), len(q))
	}
	return nil
}

// Transform returns the deformed position of v. p and q must be valid
// according to Validate.
func Transform(mode Mode, v geom.Point, p, q []geom.Point, alpha float64) geom.Point {
	if len(p) == 1 {
		return v.Add(q[0].Sub(p[0]))
	}

	w := make([]float64, len(p))
	var sumW float64
	var pStar, qStar geom.Point
	for i := range p {
		if v == p[i] {
			return q[i]
		}
		w[i] = 1 / math.Pow(p[i].Sub(v).LengthSquared(), alpha)
		pStar = pStar.Add(p[i].Mul(w[i]))
		qStar = qStar.Add(q[i].Mul(w[i]))
		sumW += w[i]
	}
	pStar = pStar.Div(sumW)
	qStar = qStar.Div(sumW)

	switch mode {
	case Similitude:
		return similitude(v, p, q, w, pStar, qStar)
	case Rigid:
		return rigid(v, p, q, w, pStar, qStar)
	default:
		return affine(v, p, q, w, pStar, qStar)
	}
}

func affine(v geom.Point, p, q []geom.Point, w []float64, pStar, qStar geom.Point) geom.Point {
	var a00, a01, a11 float64
	for i := range p {
		ph := p[i].Sub(pStar)
		a00 += w[i] * ph.X * ph.X
		a01 += w[i] * ph.X * ph.Y
		a11 += w[i] * ph.Y * ph.Y
	}
	det := a00*a11 - a01*a01
	if det == 0 {
		return v
	}

	t := v.Sub(pStar)
	pre := geom.Point{
		X: (t.X*a11 - t.Y*a01) / det,
		Y: (-t.X*a01 + t.Y*a00) / det,
	}
	res := qStar
	for i := range p {
		aj := pre.Dot(p[i].Sub(pStar))
		res = res.Add(q[i].Sub(qStar).Mul(w[i] * aj))
	}
	return res
}

// rotated accumulates sum w_i * R_i * qHat_i, where R_i is the rotation and
// scale carrying pHat_i onto v - p*.
func rotated(v geom.Point, p, q []geom.Point, w []float64, pStar, qStar geom.Point) (f geom.Point, muS float64) {
	b := v.Sub(pStar)
	for i := range p {
		ph := p[i].Sub(pStar)
		qh := q[i].Sub(qStar)
		dot := ph.Dot(b)
		cross := ph.Cross(b)
		f = f.Add(geom.Point{
			X: qh.X*dot - qh.Y*cross,
			Y: qh.X*cross + qh.Y*dot,
		}.Mul(w[i]))
		muS += w[i] * ph.LengthSquared()
	}
	return f, muS
}

func similitude(v geom.Point, p, q []geom.Point, w []float64, pStar, qStar geom.Point) geom.Point {
	f, muS := rotated(v, p, q, w, pStar, qStar)
	if muS == 0 {
		return v.Sub(pStar).Add(qStar)
	}
	return qStar.Add(f.Div(muS))
}

func rigid(v geom.Point, p, q []geom.Point, w []float64, pStar, qStar geom.Point) geom.Point {
	f, _ := rotated(v, p, q, w, pStar, qStar)
	n := f.Length()
	if n == 0 {
		return v.Sub(pStar).Add(qStar)
	}
	return qStar.Add(f.Mul(v.Sub(pStar).Length() / n))
}

// Package liquify implements brush-driven deformation of a sampling grid.
//
// A State pairs the undeformed grid points with their current positions.
// Brush operations push the current positions around a center with a
// Gaussian falloff; resampling the grid then moves the pixels along.
package liquify

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
	"github.com/gogpu/meshwarp/internal/resample"
)

// ErrNotAxisAligned is returned by TransformSrcAndDst for matrices that
// rotate or shear.
var ErrNotAxisAligned = errors.New("liquify: transform must only scale and translate")

// identityTolerance is the largest coordinate difference IsIdentity ignores.
const identityTolerance = 1e-6

// State is the deformation grid of one liquify session.
type State struct {
	bounds      image.Rectangle
	precision   int
	size        grid.Size
	original    []geom.Point
	transformed []geom.Point
}

// New creates an undeformed state covering bounds.
func New(bounds image.Rectangle, precision int) (*State, error) {
	pts, size, err := grid.Points(bounds, precision)
	if err != nil {
		return nil, err
	}
	return &State{
		bounds:      bounds,
		precision:   precision,
		size:        size,
		original:    pts,
		transformed: append([]geom.Point(nil), pts...),
	}, nil
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	c.original = append([]geom.Point(nil), s.original...)
	c.transformed = append([]geom.Point(nil), s.transformed...)
	return &c
}

// Bounds returns the source rectangle the grid was built for.
func (s *State) Bounds() image.Rectangle { return s.bounds }

// Precision returns the grid spacing in pixels.
func (s *State) Precision() int { return s.precision }

// Size returns the grid size.
func (s *State) Size() grid.Size { return s.size }

// OriginalPoints returns the undeformed grid points.
func (s *State) OriginalPoints() []geom.Point { return s.original }

// TransformedPoints returns the current grid positions.
func (s *State) TransformedPoints() []geom.Point { return s.transformed }

// kernel computes the displaced position of pt for a brush at base. diff is
// pt - base and lambda the falloff weight.
type kernel func(pt, base, diff geom.Point, lambda float64) geom.Point

func translateKernel(offset geom.Point) kernel {
	return func(pt, _, _ geom.Point, lambda float64) geom.Point {
		return pt.Add(offset.Mul(lambda))
	}
}

func scaleKernel(scale float64) kernel {
	return func(_, base, diff geom.Point, lambda float64) geom.Point {
		return base.Add(diff.Mul(1 + scale*lambda))
	}
}

func rotateKernel(angle float64) kernel {
	return func(_, base, diff geom.Point, lambda float64) geom.Point {
		sin, cos := math.Sincos(angle * lambda)
		return base.Add(geom.Point{
			X: cos*diff.X + sin*diff.Y,
			Y: -sin*diff.X + cos*diff.Y,
		})
	}
}

// apply runs op on every current point within 3*sigma of base.
//
// In build-up mode the kernel moves the current point, so repeated strokes
// compound. In wash mode the kernel is applied to the original point; the
// result is accepted only when it lies strictly farther from the original
// than the current point, and the current point then moves towards it by
// flow.
func (s *State) apply(op kernel, base geom.Point, sigma float64, wash bool, flow float64) {
	maxDist := 3 * sigma
	clip := geom.Rect{
		Min: base.Sub(geom.Pt(maxDist, maxDist)),
		Max: base.Add(geom.Pt(maxDist, maxDist)),
	}

	for i, pt := range s.transformed {
		if !clip.Contains(pt) {
			continue
		}
		diff := pt.Sub(base)
		dist := diff.Length()
		if dist > maxDist {
			continue
		}
		lambda := falloff(dist, sigma)

		if !wash {
			s.transformed[i] = op(pt, base, diff, lambda)
			continue
		}
		ref := s.original[i]
		dst := op(ref, base, ref.Sub(base), lambda)
		if dst.Distance(ref) > pt.Distance(ref) {
			s.transformed[i] = pt.Mul(1 - flow).Add(dst.Mul(flow))
		}
	}
}

func falloff(dist, sigma float64) float64 {
	r := dist / sigma
	return math.Exp(-0.5 * r * r)
}

// TranslatePoints drags points near base by offset.
func (s *State) TranslatePoints(base, offset geom.Point, sigma float64, wash bool, flow float64) {
	s.apply(translateKernel(offset), base, sigma, wash, flow)
}

// ScalePoints pushes points near base away from it (scale > 0) or pulls
// them in (scale < 0).
func (s *State) ScalePoints(base geom.Point, scale, sigma float64, wash bool, flow float64) {
	s.apply(scaleKernel(scale), base, sigma, wash, flow)
}

// RotatePoints twirls points near base by up to angle radians.
func (s *State) RotatePoints(base geom.Point, angle, sigma float64, wash bool, flow float64) {
	s.apply(rotateKernel(angle), base, sigma, wash, flow)
}

// UndoPoints blends points near base back towards their original
// positions by amount times the falloff.
func (s *State) UndoPoints(base geom.Point, amount, sigma float64) {
	maxDist := 3 * sigma
	clip := geom.Rect{
		Min: base.Sub(geom.Pt(maxDist, maxDist)),
		Max: base.Add(geom.Pt(maxDist, maxDist)),
	}
	for i, pt := range s.transformed {
		if !clip.Contains(pt) {
			continue
		}
		dist := pt.Distance(base)
		if dist > maxDist {
			continue
		}
		lambda := falloff(dist, sigma) * amount
		s.transformed[i] = s.original[i].Mul(lambda).Add(pt.Mul(1 - lambda))
	}
}

// Translate moves the whole grid, source and destination, by offset.
func (s *State) Translate(offset geom.Point) {
	s.bounds = s.bounds.Add(offset.Round())
	for i := range s.original {
		s.original[i] = s.original[i].Add(offset)
		s.transformed[i] = s.transformed[i].Add(offset)
	}
}

// TranslateDst moves only the deformed positions by offset.
func (s *State) TranslateDst(offset geom.Point) {
	for i := range s.transformed {
		s.transformed[i] = s.transformed[i].Add(offset)
	}
}

// TransformSrcAndDst maps the bounds and both point arrays through m,
// which may only scale and translate.
func (s *State) TransformSrcAndDst(m geom.Matrix) error {
	if m.B != 0 || m.D != 0 {
		return ErrNotAxisAligned
	}
	r := geom.RectFromImage(s.bounds)
	r = geom.BoundsOf([]geom.Point{m.TransformPoint(r.Min), m.TransformPoint(r.Max)})
	s.bounds = r.Aligned()
	m.TransformPoints(s.original)
	m.TransformPoints(s.transformed)
	return nil
}

// ChangeRect returns the pixel rectangle affected by resampling: the
// source bounds united with the bounds of the deformed points.
func (s *State) ChangeRect() image.Rectangle {
	return s.bounds.Union(geom.BoundsOf(s.transformed).Aligned())
}

// IsIdentity reports whether no point has moved.
func (s *State) IsIdentity() bool {
	for i, p := range s.transformed {
		o := s.original[i]
		if math.Abs(p.X-o.X) > identityTolerance || math.Abs(p.Y-o.Y) > identityTolerance {
			return false
		}
	}
	return true
}

// Equal reports whether two states describe the same deformation.
func (s *State) Equal(other *State) bool {
	if s.bounds != other.bounds || s.precision != other.precision || s.size != other.size {
		return false
	}
	if len(s.original) != len(other.original) || len(s.transformed) != len(other.transformed) {
		return false
	}
	for i := range s.original {
		if s.original[i] != other.original[i] || s.transformed[i] != other.transformed[i] {
			return false
		}
	}
	return true
}

// Resample runs op over every grid cell. m maps image space to the space
// op works in.
func (s *State) Resample(op resample.PolygonOp, m geom.Matrix) resample.Stats {
	orig := append([]geom.Point(nil), s.original...)
	transformed := append([]geom.Point(nil), s.transformed...)
	if !m.IsIdentity() {
		m.TransformPoints(orig)
		m.TransformPoints(transformed)
	}
	return resample.IterateComplete(op, resample.NewRegularMapper(s.size, orig), orig, transformed)
}

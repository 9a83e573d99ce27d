// Package cage deforms the content of a polygon by dragging its vertices.
//
// Grid points inside the original cage are expressed in Green coordinates
// once, during Prepare. Every new cage position then yields the deformed
// grid by recombining the coordinates with the moved cage, and the grid
// drives the resampler. Grid cells straddling the cage outline are
// completed by corner approximation and clipped to the cage.
package cage

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
	"github.com/gogpu/meshwarp/internal/resample"
)

// Errors reported by Deformer.
var (
	// ErrCageTooSmall is returned for a cage with fewer than three vertices.
	ErrCageTooSmall = errors.New("cage: cage needs at least three vertices")

	// ErrCageSizeMismatch is returned when the transformed cage does not
	// have as many vertices as the original one.
	ErrCageSizeMismatch = errors.New("cage: transformed cage size mismatch")

	// ErrNotPrepared is returned when a deformer is used before Prepare.
	ErrNotPrepared = errors.New("cage: deformer not prepared")

	// ErrNaNPoint is returned when the transformed cage produces a NaN
	// grid position.
	ErrNaNPoint = errors.New("cage: transformed point is NaN")
)

// State is the lifecycle stage of a Deformer.
type State uint8

const (
	// Unprepared deformers have no grid yet.
	Unprepared State = iota
	// Prepared deformers hold the grid and the cage coordinates.
	Prepared
	// Transformed deformers hold grid positions for a transformed cage.
	Transformed
	// Executed deformers have been resampled at least once.
	Executed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unprepared:
		return "unprepared"
	case Prepared:
		return "prepared"
	case Transformed:
		return "transformed"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// Deformer computes the grid deformation induced by moving a cage.
type Deformer struct {
	cage      geom.Polygon
	precision int
	state     State

	bounds   image.Rectangle
	all      []geom.Point
	validity *grid.Validity
	green    GreenCoordinates

	transformedCage geom.Polygon
	transformed     []geom.Point
}

// New creates a deformer for the original cage.
func New(cage geom.Polygon, precision int) (*Deformer, error) {
	if len(cage) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrCageTooSmall, len(cage))
	}
	if !grid.ValidPrecision(precision) {
		return nil, grid.ErrInvalidPrecision
	}
	return &Deformer{
		cage:      append(geom.Polygon(nil), cage...),
		precision: precision,
	}, nil
}

// Cage returns the original cage.
func (d *Deformer) Cage() geom.Polygon {
	return d.cage
}

// State returns the lifecycle stage.
func (d *Deformer) State() State {
	return d.state
}

// Bounds returns the pixel rectangle covered by the grid.
func (d *Deformer) Bounds() image.Rectangle {
	return d.bounds
}

// Prepare builds the grid over the part of content covered by the cage
// and precomputes the cage coordinates of every grid point inside it.
// Points lying exactly on the outline are moved slightly inwards first.
func (d *Deformer) Prepare(content image.Rectangle) error {
	d.bounds = content.Intersect(d.cage.Bounds().Aligned())

	all, size, err := grid.Points(d.bounds, d.precision)
	if err != nil {
		return err
	}
	dir := d.cage.Direction()
	d.all = all
	d.validity = grid.NewValidity(size, all, d.cage.ContainsPointInclusive, func(p geom.Point) geom.Point {
		return d.cage.AdjustIfOnBoundary(dir, p)
	})
	d.green.Precalculate(d.cage, d.validity.Points())

	d.transformedCage = nil
	d.transformed = nil
	d.state = Prepared
	return nil
}

// ValidCount returns the number of grid points inside the cage.
func (d *Deformer) ValidCount() int {
	if d.validity == nil {
		return 0
	}
	return d.validity.Count()
}

// Transform computes the grid positions for the transformed cage. On error
// the previously transformed positions are kept.
func (d *Deformer) Transform(transformedCage geom.Polygon) error {
	if d.state == Unprepared {
		return ErrNotPrepared
	}
	if len(transformedCage) != len(d.cage) {
		return fmt.Errorf("%w: original %d, transformed %d", ErrCageSizeMismatch, len(d.cage), len(transformedCage))
	}

	d.green.RegenerateNormals(transformedCage)
	pts := make([]geom.Point, d.validity.Count())
	for i := range pts {
		pts[i] = d.green.TransformedPoint(i, transformedCage)
		if pts[i].IsNaN() {
			return fmt.Errorf("%w: grid point %v", ErrNaNPoint, d.validity.Points()[i])
		}
	}
	d.transformedCage = append(geom.Polygon(nil), transformedCage...)
	d.transformed = pts
	d.state = Transformed
	return nil
}

// TransformedPoints returns the grid positions computed by Transform.
func (d *Deformer) TransformedPoints() []geom.Point {
	return d.transformed
}

// TransformedCage returns the cage passed to the last successful Transform.
func (d *Deformer) TransformedCage() geom.Polygon {
	return d.transformedCage
}

// Resample runs op over the deformed grid: first the cells fully inside
// the cage, then the cells crossing its outline. m maps image space to the
// space op works in, such as a thumbnail.
func (d *Deformer) Resample(op resample.PolygonOp, m geom.Matrix) (complete, incomplete resample.Stats, err error) {
	if d.state < Transformed {
		return complete, incomplete, ErrNotPrepared
	}
	orig := mapPoints(m, d.validity.Points())
	transformed := mapPoints(m, d.transformed)
	mapper := resample.NewDomainMapper(d.validity, mapPoints(m, d.all), geom.Polygon(mapPoints(m, d.cage)))

	complete = resample.IterateComplete(op, mapper, orig, transformed)
	incomplete = resample.IterateIncomplete(op, mapper, orig, transformed)
	d.state = Executed
	return complete, incomplete, nil
}

func mapPoints(m geom.Matrix, pts []geom.Point) []geom.Point {
	out := append([]geom.Point(nil), pts...)
	if !m.IsIdentity() {
		m.TransformPoints(out)
	}
	return out
}

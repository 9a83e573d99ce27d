package meshwarp

import (
	"fmt"
	"image"

	"github.com/gogpu/meshwarp/internal/cage"
	"github.com/gogpu/meshwarp/internal/grid"
	intImage "github.com/gogpu/meshwarp/internal/image"
	"github.com/gogpu/meshwarp/internal/resample"
)

// CageState is the lifecycle stage of a CageWorker.
type CageState = cage.State

// Cage worker lifecycle stages.
const (
	CageUnprepared  = cage.Unprepared
	CagePrepared    = cage.Prepared
	CageTransformed = cage.Transformed
	CageExecuted    = cage.Executed
)

// CageWorker deforms the content enclosed by a polygonal cage.
//
// Typical use: create the worker from the original cage, call Prepare
// once with the content rectangle, then any number of times set a
// transformed cage and Run or RunOnBitmap. Prepare is the expensive step;
// it precomputes the cage coordinates of every grid point.
type CageWorker struct {
	d    *cage.Deformer
	opts options

	transformedCage Polygon
}

// NewCageWorker creates a worker for the original cage. The cage needs at
// least three vertices.
func NewCageWorker(origCage Polygon, opts ...Option) (*CageWorker, error) {
	o := newOptions(opts)
	d, err := cage.New(origCage, o.precisionOr(DefaultPrecision))
	if err != nil {
		Logger().Warn("meshwarp: cage rejected", "vertices", len(origCage), "err", err)
		return nil, err
	}
	return &CageWorker{d: d, opts: o}, nil
}

// Cage returns the original cage.
func (w *CageWorker) Cage() Polygon {
	return w.d.Cage()
}

// State returns the lifecycle stage of the underlying deformer.
func (w *CageWorker) State() CageState {
	return w.d.State()
}

// Prepare builds the sampling grid over the part of content covered by the
// cage. content is in image space, usually the Extent of the surface to
// deform; previews reuse the full-resolution rectangle.
func (w *CageWorker) Prepare(content image.Rectangle) error {
	if err := w.d.Prepare(content); err != nil {
		Logger().Warn("meshwarp: cage prepare failed", "content", content, "err", err)
		return err
	}
	Logger().Debug("meshwarp: cage grid prepared",
		"bounds", w.d.Bounds(),
		"precision", w.opts.precisionOr(DefaultPrecision),
		"valid_points", w.d.ValidCount())
	return nil
}

// SetTransformedCage stores the edited cage used by the next run. Its
// vertex count is checked when the worker runs.
func (w *CageWorker) SetTransformedCage(transformed Polygon) {
	w.transformedCage = append(Polygon(nil), transformed...)
}

// TransformedPoints returns the grid positions computed by the last run.
func (w *CageWorker) TransformedPoints() []Point {
	return w.d.TransformedPoints()
}

// transform computes the deformed grid for the stored cage. The target is
// not touched when it fails.
func (w *CageWorker) transform() error {
	if err := w.d.Transform(w.transformedCage); err != nil {
		Logger().Warn("meshwarp: cage transform rejected",
			"original_vertices", len(w.d.Cage()),
			"transformed_vertices", len(w.transformedCage),
			"err", err)
		return fmt.Errorf("meshwarp: cage transform: %w", err)
	}
	Logger().Debug("meshwarp: cage points computed", "points", len(w.d.TransformedPoints()))
	return nil
}

func (w *CageWorker) resample(op resample.PolygonOp, m Matrix, cells int) error {
	s := newStepper(w.opts.progress, cells)
	complete, incomplete, err := w.d.Resample(progressOp{op: op, s: s}, m)
	if err != nil {
		return err
	}
	s.finish()
	Logger().Debug("meshwarp: cage resampled",
		"complete_cells", complete.Processed,
		"incomplete_cells", incomplete.Processed,
		"skipped_cells", complete.Skipped+incomplete.Skipped)
	return nil
}

// Run deforms s in place. The cage area is erased and the deformed
// content is composited over the result, so content outside the cage is
// kept.
func (w *CageWorker) Run(s *Surface) error {
	if err := w.transform(); err != nil {
		return err
	}

	snapshot := s.Clone()
	temp := intImage.NewSurface(s.Bounds())
	if err := w.resample(resample.NewSurfaceOp(snapshot, temp), Identity(), w.cells()); err != nil {
		return err
	}

	s.ClearMask(cage.Mask(w.d.Cage(), s.Bounds()))
	s.DrawOver(temp)
	return nil
}

// RunOnBitmap renders a deformed preview of src. m maps image space to the
// bitmap's space; the cages and grid are mapped through it. The result
// covers src's placement united with the deformed grid and carries its
// placement in Offset. src is not modified.
func (w *CageWorker) RunOnBitmap(src *Bitmap, m Matrix) (*Bitmap, error) {
	if err := checkBitmap(src); err != nil {
		Logger().Warn("meshwarp: cage preview rejected", "err", err)
		return nil, err
	}
	if err := w.transform(); err != nil {
		return nil, err
	}

	dst, err := newResultBitmap(src, mapPoints(m, w.d.TransformedPoints()), true)
	if err != nil {
		return nil, err
	}
	dst.DrawOver(src)
	dst.ClearMask(cage.Mask(mapPoints(m, w.d.Cage()), dst.Placement()))

	temp, err := intImage.NewBitmap(dst.Width(), dst.Height(), FormatARGB32)
	if err != nil {
		return nil, err
	}
	temp.SetOffset(dst.Offset())
	if err := w.resample(resample.NewBitmapOp(src, temp), m, w.cells()); err != nil {
		return nil, err
	}
	dst.DrawOver(temp)
	return dst, nil
}

// cells counts the steps reported while resampling: every cell can be
// visited by the complete pass or by the incomplete pass.
func (w *CageWorker) cells() int {
	return cellCount(grid.CalcSize(w.d.Bounds(), w.opts.precisionOr(DefaultPrecision)))
}

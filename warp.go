package meshwarp

import (
	"github.com/gogpu/meshwarp/internal/grid"
	intImage "github.com/gogpu/meshwarp/internal/image"
	"github.com/gogpu/meshwarp/internal/mls"
	"github.com/gogpu/meshwarp/internal/resample"
)

// WarpWorker deforms an image so that every original control point lands
// on its transformed counterpart, using a moving-least-squares transform.
//
// Surface runs default to precision 1: every destination pixel is mapped
// back into the source by the transform with the control point roles
// swapped. Coarser precisions, and bitmap previews (default precision 8),
// map a grid forward and resample its cells instead.
type WarpWorker struct {
	orig, transformed []Point
	opts              options
}

// NewWarpWorker creates a worker for the control point pairs orig[i] ->
// transformed[i].
func NewWarpWorker(orig, transformed []Point, opts ...Option) (*WarpWorker, error) {
	o := newOptions(opts)
	if err := mls.Validate(orig, transformed); err != nil {
		Logger().Warn("meshwarp: warp control points rejected",
			"original", len(orig), "transformed", len(transformed), "err", err)
		return nil, err
	}
	if o.precision != 0 && !grid.ValidPrecision(o.precision) {
		Logger().Warn("meshwarp: warp precision rejected", "precision", o.precision)
		return nil, ErrInvalidPrecision
	}
	return &WarpWorker{
		orig:        append([]Point(nil), orig...),
		transformed: append([]Point(nil), transformed...),
		opts:        o,
	}, nil
}

// Mode returns the transform family.
func (w *WarpWorker) Mode() WarpMode { return w.opts.mode }

// Transform returns the deformed position of v.
func (w *WarpWorker) Transform(v Point) Point {
	return mls.Transform(w.opts.mode, v, w.orig, w.transformed, w.opts.alpha)
}

// Inverse approximates the source position of a deformed point v by
// running the transform with the control points swapped.
func (w *WarpWorker) Inverse(v Point) Point {
	return mls.Transform(w.opts.mode, v, w.transformed, w.orig, w.opts.alpha)
}

// Run deforms s in place.
func (w *WarpWorker) Run(s *Surface) error {
	precision := w.opts.precisionOr(1)
	snapshot := s.Clone()
	temp := intImage.NewSurface(s.Bounds())

	if precision == 1 {
		w.runPerPixel(snapshot, temp)
	} else {
		extent := snapshot.Extent()
		st := newStepper(w.opts.progress, cellCount(grid.CalcSize(extent, precision)))
		op := progressOp{op: resample.NewSurfaceOp(snapshot, temp), s: st}
		if err := resample.ProcessGrid(op, w.Transform, extent, precision); err != nil {
			return err
		}
		st.finish()
	}

	s.Clear()
	s.DrawOver(temp)
	Logger().Debug("meshwarp: warp applied",
		"mode", w.opts.mode,
		"control_points", len(w.orig),
		"precision", precision)
	return nil
}

func (w *WarpWorker) runPerPixel(src, dst *Surface) {
	r := dst.Bounds()
	st := newStepper(w.opts.progress, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := w.Inverse(Pt(float64(x), float64(y)))
			dst.SetRGBA(x, y, intImage.SampleBilinear(src, p.X, p.Y))
		}
		st.step()
	}
	st.finish()
}

// RunOnBitmap renders a deformed preview of src. m maps image space to the
// bitmap's space; the control points are mapped through it. The result
// covers the deformed grid and carries its placement in Offset. src is not
// modified.
func (w *WarpWorker) RunOnBitmap(src *Bitmap, m Matrix) (*Bitmap, error) {
	if err := checkBitmap(src); err != nil {
		Logger().Warn("meshwarp: warp preview rejected", "err", err)
		return nil, err
	}
	precision := w.opts.precisionOr(DefaultPrecision)
	orig := mapPoints(m, w.orig)
	transformed := mapPoints(m, w.transformed)
	fn := func(v Point) Point {
		return mls.Transform(w.opts.mode, v, orig, transformed, w.opts.alpha)
	}

	bounds := src.Placement()
	pts, size, err := grid.Points(bounds, precision)
	if err != nil {
		return nil, err
	}
	for i := range pts {
		pts[i] = fn(pts[i])
	}
	dst, err := newResultBitmap(src, pts, false)
	if err != nil {
		return nil, err
	}

	st := newStepper(w.opts.progress, cellCount(size))
	if err := resample.ProcessGrid(progressOp{op: resample.NewBitmapOp(src, dst), s: st}, fn, bounds, precision); err != nil {
		return nil, err
	}
	st.finish()
	return dst, nil
}

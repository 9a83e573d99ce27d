package meshwarp

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/meshwarp/internal/liquify"
	"github.com/gogpu/meshwarp/internal/resample"
)

// LiquifyWorker accumulates brush strokes on a grid and applies the
// resulting deformation.
//
// Brush operations take the brush center base, the falloff radius sigma
// and, for the painting operations, a wash flag and a flow. Points farther
// than 3*sigma from base are not touched. In build-up mode repeated
// strokes compound; in wash mode the deformation saturates at one stroke
// applied to the original grid, and flow sets how fast it gets there.
type LiquifyWorker struct {
	state *liquify.State
	opts  options
}

// NewLiquifyWorker creates an identity deformation over bounds.
func NewLiquifyWorker(bounds image.Rectangle, opts ...Option) (*LiquifyWorker, error) {
	o := newOptions(opts)
	st, err := liquify.New(bounds, o.precisionOr(DefaultPrecision))
	if err != nil {
		Logger().Warn("meshwarp: liquify grid rejected", "bounds", bounds, "err", err)
		return nil, err
	}
	Logger().Debug("meshwarp: liquify grid built",
		"bounds", bounds,
		"precision", st.Precision(),
		"points", st.Size().Len())
	return &LiquifyWorker{state: st, opts: o}, nil
}

// Clone returns an independent copy of the worker.
func (w *LiquifyWorker) Clone() *LiquifyWorker {
	return &LiquifyWorker{state: w.state.Clone(), opts: w.opts}
}

// Bounds returns the pixel rectangle the grid was built over.
func (w *LiquifyWorker) Bounds() image.Rectangle { return w.state.Bounds() }

// Precision returns the grid spacing.
func (w *LiquifyWorker) Precision() int { return w.state.Precision() }

// GridSize returns the number of grid columns and rows.
func (w *LiquifyWorker) GridSize() (cols, rows int) {
	s := w.state.Size()
	return s.Width, s.Height
}

// OriginalPoints returns the undeformed grid points.
func (w *LiquifyWorker) OriginalPoints() []Point { return w.state.OriginalPoints() }

// TransformedPoints returns the deformed grid points.
func (w *LiquifyWorker) TransformedPoints() []Point { return w.state.TransformedPoints() }

// TranslatePoints drags the points around base by offset.
func (w *LiquifyWorker) TranslatePoints(base, offset Point, sigma float64, wash bool, flow float64) {
	w.state.TranslatePoints(base, offset, sigma, wash, flow)
}

// ScalePoints pushes the points around base outwards (scale > 0) or pulls
// them in (scale < 0).
func (w *LiquifyWorker) ScalePoints(base Point, scale, sigma float64, wash bool, flow float64) {
	w.state.ScalePoints(base, scale, sigma, wash, flow)
}

// RotatePoints twirls the points around base by up to angle radians.
func (w *LiquifyWorker) RotatePoints(base Point, angle, sigma float64, wash bool, flow float64) {
	w.state.RotatePoints(base, angle, sigma, wash, flow)
}

// UndoPoints moves the points around base back towards their original
// positions. With amount 1 the point under base is fully restored.
func (w *LiquifyWorker) UndoPoints(base Point, amount, sigma float64) {
	w.state.UndoPoints(base, amount, sigma)
}

// Translate moves the whole deformation, grid included, by offset.
func (w *LiquifyWorker) Translate(offset Point) { w.state.Translate(offset) }

// TranslateDst moves only the deformed points by offset.
func (w *LiquifyWorker) TranslateDst(offset Point) { w.state.TranslateDst(offset) }

// TransformSrcAndDst maps both the grid and the deformed points through
// m, which may only scale and translate.
func (w *LiquifyWorker) TransformSrcAndDst(m Matrix) error {
	if err := w.state.TransformSrcAndDst(m); err != nil {
		Logger().Warn("meshwarp: liquify transform rejected", "err", err)
		return err
	}
	return nil
}

// ChangeRect returns the pixel rectangle a run may modify.
func (w *LiquifyWorker) ChangeRect() image.Rectangle { return w.state.ChangeRect() }

// IsIdentity reports whether no grid point has moved.
func (w *LiquifyWorker) IsIdentity() bool { return w.state.IsIdentity() }

// Equal reports whether both workers hold the same deformation.
func (w *LiquifyWorker) Equal(other *LiquifyWorker) bool {
	return w.state.Equal(other.state)
}

func (w *LiquifyWorker) resample(op resample.PolygonOp, m Matrix) {
	s := newStepper(w.opts.progress, cellCount(w.state.Size()))
	stats := w.state.Resample(progressOp{op: op, s: s}, m)
	s.finish()
	Logger().Debug("meshwarp: liquify resampled",
		"cells", stats.Processed,
		"skipped_cells", stats.Skipped)
}

// Run deforms s in place. The surface is cleared first, so only the
// resampled grid cells carry content afterwards.
func (w *LiquifyWorker) Run(s *Surface) {
	snapshot := s.Clone()
	s.Clear()
	w.resample(resample.NewSurfaceOp(snapshot, s), Identity())
}

// RunOnBitmap renders a deformed preview of src. m maps image space to the
// bitmap's space. The result covers src's placement united with the
// deformed grid and carries its placement in Offset. src is not modified.
func (w *LiquifyWorker) RunOnBitmap(src *Bitmap, m Matrix) (*Bitmap, error) {
	if err := checkBitmap(src); err != nil {
		Logger().Warn("meshwarp: liquify preview rejected", "err", err)
		return nil, err
	}
	dst, err := newResultBitmap(src, mapPoints(m, w.state.TransformedPoints()), true)
	if err != nil {
		return nil, err
	}
	w.resample(resample.NewBitmapOp(src, dst), m)
	return dst, nil
}

// Save writes the deformation as YAML.
func (w *LiquifyWorker) Save(out io.Writer) error {
	data, err := w.state.Marshal()
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("meshwarp: save liquify state: %w", err)
	}
	return nil
}

// LoadLiquifyWorker reads a deformation written by Save.
//
// A record whose grid description does not match its bounds and precision
// is replaced by an identity deformation over a default 1024x1024 area at
// precision 8: the returned worker is usable and the error wraps
// ErrInconsistentState.
func LoadLiquifyWorker(in io.Reader, opts ...Option) (*LiquifyWorker, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("meshwarp: load liquify state: %w", err)
	}
	st, err := liquify.Unmarshal(data)
	if st == nil {
		return nil, err
	}
	if errors.Is(err, ErrInconsistentState) {
		Logger().Warn("meshwarp: persisted liquify state replaced", "err", err)
	}
	return &LiquifyWorker{state: st, opts: newOptions(opts)}, err
}

package meshwarp

import (
	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
	"github.com/gogpu/meshwarp/internal/quad"
	"github.com/gogpu/meshwarp/internal/resample"
)

// Progress receives completion updates from a running worker, as a
// percentage in [0, 100]. Updates are delivered on the worker's goroutine.
type Progress interface {
	SetProgress(percent int)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(percent int)

// SetProgress implements Progress.
func (f ProgressFunc) SetProgress(percent int) {
	f(percent)
}

type nopProgress struct{}

func (nopProgress) SetProgress(int) {}

// stepper spreads a fixed number of steps over the 0..100 range and only
// reports when the percentage changes.
type stepper struct {
	p     Progress
	total int
	done  int
	last  int
}

func newStepper(p Progress, total int) *stepper {
	p.SetProgress(0)
	return &stepper{p: p, total: max(total, 1)}
}

func (s *stepper) step() {
	s.done++
	if pct := min(100, s.done*100/s.total); pct != s.last {
		s.last = pct
		s.p.SetProgress(pct)
	}
}

func (s *stepper) finish() {
	if s.last != 100 {
		s.last = 100
		s.p.SetProgress(100)
	}
}

// progressOp forwards to op and steps the reporter once per cell.
type progressOp struct {
	op resample.PolygonOp
	s  *stepper
}

func (p progressOp) Process(src, dst quad.Quad, clip geom.Polygon) {
	p.op.Process(src, dst, clip)
	p.s.step()
}

func cellCount(size grid.Size) int {
	return max(size.Width-1, 0) * max(size.Height-1, 0)
}

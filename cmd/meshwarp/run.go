package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/meshwarp"
)

// runner applies one configured deformation to either target kind.
type runner struct {
	run         func(s *meshwarp.Surface) error
	runOnBitmap func(b *meshwarp.Bitmap, m meshwarp.Matrix) (*meshwarp.Bitmap, error)
}

type result struct {
	bounds  image.Rectangle
	elapsed time.Duration
}

func runJob(job *Job) (*result, error) {
	start := time.Now()
	img, err := meshwarp.LoadImage(job.Input)
	if err != nil {
		return nil, err
	}

	r, err := newRunner(job, img.Bounds())
	if err != nil {
		return nil, err
	}

	var out image.Image
	if job.Preview > 0 {
		bmp, m := thumbnail(img, job.Preview)
		preview, err := r.runOnBitmap(bmp, m)
		if err != nil {
			return nil, err
		}
		out = preview.RGBA()
	} else {
		s := meshwarp.SurfaceFromImage(img)
		if err := r.run(s); err != nil {
			return nil, err
		}
		out = s
	}

	if err := meshwarp.SaveImage(job.Output, out); err != nil {
		return nil, err
	}
	return &result{bounds: out.Bounds(), elapsed: time.Since(start)}, nil
}

// thumbnail downsizes img by scale and returns it as a bitmap together
// with the matrix mapping image space onto it.
func thumbnail(img image.Image, scale float64) (*meshwarp.Bitmap, meshwarp.Matrix) {
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	sx := float64(w) / float64(b.Dx())
	sy := float64(h) / float64(b.Dy())

	bmp := meshwarp.BitmapFromImage(transform.Resize(img, w, h, transform.Linear))
	bmp.SetOffset(image.Pt(int(math.Round(float64(b.Min.X)*sx)), int(math.Round(float64(b.Min.Y)*sy))))
	return bmp, meshwarp.Scale(sx, sy)
}

func newRunner(job *Job, bounds image.Rectangle) (*runner, error) {
	switch {
	case job.Cage != nil:
		return cageRunner(job, bounds)
	case job.Liquify != nil:
		return liquifyRunner(job, bounds)
	default:
		return warpRunner(job)
	}
}

func cageRunner(job *Job, bounds image.Rectangle) (*runner, error) {
	w, err := meshwarp.NewCageWorker(points(job.Cage.Original), job.options()...)
	if err != nil {
		return nil, err
	}
	w.SetTransformedCage(points(job.Cage.Transformed))
	return &runner{
		run: func(s *meshwarp.Surface) error {
			if err := w.Prepare(s.Extent()); err != nil {
				return err
			}
			return w.Run(s)
		},
		runOnBitmap: func(b *meshwarp.Bitmap, m meshwarp.Matrix) (*meshwarp.Bitmap, error) {
			if err := w.Prepare(bounds); err != nil {
				return nil, err
			}
			return w.RunOnBitmap(b, m)
		},
	}, nil
}

func liquifyRunner(job *Job, bounds image.Rectangle) (*runner, error) {
	lj := job.Liquify
	w, err := loadLiquify(lj.Load, bounds, job.options())
	if err != nil {
		return nil, err
	}
	for i, s := range lj.Strokes {
		if err := applyStroke(w, s); err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	if lj.Save != "" {
		if err := saveLiquify(w, lj.Save); err != nil {
			return nil, err
		}
	}
	return &runner{
		run: func(s *meshwarp.Surface) error {
			w.Run(s)
			return nil
		},
		runOnBitmap: w.RunOnBitmap,
	}, nil
}

func loadLiquify(path string, bounds image.Rectangle, opts []meshwarp.Option) (*meshwarp.LiquifyWorker, error) {
	if path == "" {
		return meshwarp.NewLiquifyWorker(bounds, opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return meshwarp.LoadLiquifyWorker(f, opts...)
}

func saveLiquify(w *meshwarp.LiquifyWorker, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return w.Save(f)
}

var errStrokeSigma = errors.New("sigma must be positive")

func applyStroke(w *meshwarp.LiquifyWorker, s Stroke) error {
	if s.Sigma <= 0 {
		return errStrokeSigma
	}
	flow := s.Flow
	if flow == 0 {
		flow = 1
	}
	at := meshwarp.Pt(s.At[0], s.At[1])
	switch s.Op {
	case "translate":
		w.TranslatePoints(at, meshwarp.Pt(s.Offset[0], s.Offset[1]), s.Sigma, s.Wash, flow)
	case "scale":
		w.ScalePoints(at, s.Amount, s.Sigma, s.Wash, flow)
	case "rotate":
		w.RotatePoints(at, s.Amount, s.Sigma, s.Wash, flow)
	case "undo":
		w.UndoPoints(at, s.Amount, s.Sigma)
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

func warpRunner(job *Job) (*runner, error) {
	wj := job.Warp
	opts := job.options()
	if wj.Mode != "" {
		mode, err := meshwarp.ParseWarpMode(wj.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, meshwarp.WithWarpMode(mode))
	}
	if wj.Alpha != 0 {
		opts = append(opts, meshwarp.WithAlpha(wj.Alpha))
	}
	w, err := meshwarp.NewWarpWorker(points(wj.Original), points(wj.Transformed), opts...)
	if err != nil {
		return nil, err
	}
	return &runner{run: w.Run, runOnBitmap: w.RunOnBitmap}, nil
}

func printSummary(out io.Writer, job *Job, res *result) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "%s: wrote %s, %d×%d at (%d,%d), %d pixels in %v\n",
		job.Kind(), job.Output,
		res.bounds.Dx(), res.bounds.Dy(),
		res.bounds.Min.X, res.bounds.Min.Y,
		res.bounds.Dx()*res.bounds.Dy(),
		res.elapsed.Round(time.Millisecond))
}

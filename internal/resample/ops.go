package resample

import (
	"image"

	"github.com/gogpu/meshwarp/internal/geom"
	intImage "github.com/gogpu/meshwarp/internal/image"
	"github.com/gogpu/meshwarp/internal/quad"
)

// SurfaceOp resamples from a snapshot surface into a destination surface
// using bilinear sub-pixel sampling. Destination pixels outside the
// destination surface are dropped.
type SurfaceOp struct {
	src *intImage.Surface
	dst *intImage.Surface
}

// NewSurfaceOp creates an op reading src and writing dst. src and dst must
// be distinct surfaces.
func NewSurfaceOp(src, dst *intImage.Surface) *SurfaceOp {
	return &SurfaceOp{src: src, dst: dst}
}

// Process implements PolygonOp.
func (op *SurfaceOp) Process(src, dst quad.Quad, clip geom.Polygon) {
	scan(src, dst, clip, func(x, y int, p geom.Point) {
		op.dst.SetRGBA(x, y, intImage.SampleBilinear(op.src, p.X, p.Y))
	})
}

// BitmapOp resamples between bitmaps using the nearest source pixel.
// Source positions are clamped into the source bitmap; destination pixels
// outside the destination bitmap are skipped. Both bitmaps are addressed
// in image space through their offsets.
type BitmapOp struct {
	src       *intImage.Bitmap
	dst       *intImage.Bitmap
	srcOffset geom.Point
	dstOffset image.Point
}

// NewBitmapOp creates an op copying pixels of src into dst. src must not
// be empty.
func NewBitmapOp(src, dst *intImage.Bitmap) *BitmapOp {
	return &BitmapOp{
		src:       src,
		dst:       dst,
		srcOffset: geom.FromImage(src.Offset()),
		dstOffset: dst.Offset(),
	}
}

// Process implements PolygonOp.
func (op *BitmapOp) Process(src, dst quad.Quad, clip geom.Polygon) {
	w, h := op.dst.Width(), op.dst.Height()
	scan(src, dst, clip, func(x, y int, p geom.Point) {
		dx, dy := x-op.dstOffset.X, y-op.dstOffset.Y
		if dx < 0 || dy < 0 || dx >= w || dy >= h {
			return
		}
		local := p.Sub(op.srcOffset)
		sp := intImage.ClampedPixel(op.src, local.X, local.Y)
		op.dst.CopyPixel(dx, dy, op.src, sp.X, sp.Y)
	})
}

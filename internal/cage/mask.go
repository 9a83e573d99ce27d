package cage

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/meshwarp/internal/geom"
)

// Mask rasterizes pg into an anti-aliased coverage mask covering r.
func Mask(pg geom.Polygon, r image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(r)
	if len(pg) < 3 || r.Empty() {
		return mask
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	origin := geom.FromImage(r.Min)
	for i, p := range pg {
		p = p.Sub(origin)
		if i == 0 {
			z.MoveTo(float32(p.X), float32(p.Y))
			continue
		}
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

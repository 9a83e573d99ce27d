// Package resample moves pixels from a source raster to a destination
// raster cell by cell, following a pair of point grids: the positions of
// the grid points before and after a deformation.
//
// Every cell of four grid points defines a bilinear patch. A PolygonOp
// walks the destination pixels covered by the patch and inverts the patch
// to find the source pixel to read. Cells whose corners fall outside the
// deformation domain are completed by extrapolating the missing corners
// from their neighbours and are then clipped against the domain outline.
package resample

import (
	"image"
	"math"

	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
	"github.com/gogpu/meshwarp/internal/quad"
)

// PolygonOp resamples the pixels of one cell.
//
// src is the axis-aligned cell before deformation and dst the same cell
// after it. Only destination pixels inside clip are written; clip is in
// destination space and is usually dst itself.
type PolygonOp interface {
	Process(src, dst quad.Quad, clip geom.Polygon)
}

// scan calls fn for every integer destination position inside clip
// together with the source position it maps back to.
func scan(src, dst quad.Quad, clip geom.Polygon, fn func(x, y int, srcPt geom.Point)) {
	r := clip.Bounds().Aligned()
	if r.Empty() {
		return
	}
	bw := quad.NewBackward(src, dst)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		bw.SetY(float64(y))
		for x := r.Min.X; x < r.Max.X; x++ {
			if !clip.ContainsPoint(geom.Pt(float64(x), float64(y))) {
				continue
			}
			bw.SetX(float64(x))
			fn(x, y, bw.Value())
		}
	}
}

// cellRect returns the source quad of the cell spanned by the grid
// positions (x0, y0) and (x1, y1).
func cellRect(x0, y0, x1, y1 float64) quad.Quad {
	return quad.Rect(geom.Rect{Min: geom.Pt(x0, y0), Max: geom.Pt(x1, y1)})
}

// ProcessGrid samples bounds with a grid of the given precision, maps
// every grid point through transform and resamples each cell with op.
// Only the current and the previous grid line are kept in memory.
func ProcessGrid(op PolygonOp, transform func(geom.Point) geom.Point, bounds image.Rectangle, precision int) error {
	if !grid.ValidPrecision(precision) {
		return grid.ErrInvalidPrecision
	}
	var prev, curr []geom.Point
	grid.Traverse(bounds, precision, func(v grid.Visit) {
		curr = append(curr, transform(geom.Pt(float64(v.Col), float64(v.Row))))
		col := v.Index.Col
		if col == 0 || v.Index.Row == 0 {
			return
		}
		src := cellRect(float64(v.PrevCol), float64(v.PrevRow), float64(v.Col), float64(v.Row))
		dst := quad.Quad{prev[col-1], prev[col], curr[col], curr[col-1]}
		op.Process(src, dst, dst.Polygon())
	}, func() {
		prev, curr = curr, prev[:0]
	})
	return nil
}

// finite reports whether both coordinates of p are finite.
func finite(p geom.Point) bool {
	return !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0) && !p.IsNaN()
}

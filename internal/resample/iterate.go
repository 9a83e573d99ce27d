package resample

import (
	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
	"github.com/gogpu/meshwarp/internal/quad"
)

// Mapper resolves grid indexes to positions in the point arrays handed to
// the iteration functions.
type Mapper interface {
	// Size returns the grid size.
	Size() grid.Size
	// ValidIndex returns the array position of the point at idx, or -1
	// when idx lies outside the grid or the deformation domain.
	ValidIndex(idx grid.Index) int
	// GridPoint returns the undeformed position of the point at idx,
	// whether or not it is valid.
	GridPoint(idx grid.Index) geom.Point
}

// RegularMapper maps a grid whose points are all valid. The point arrays
// are the full row-major grid.
type RegularMapper struct {
	size grid.Size
	pts  []geom.Point
}

// NewRegularMapper creates a mapper over the row-major grid points pts.
func NewRegularMapper(size grid.Size, pts []geom.Point) *RegularMapper {
	return &RegularMapper{size: size, pts: pts}
}

// Size implements Mapper.
func (m *RegularMapper) Size() grid.Size { return m.size }

// ValidIndex implements Mapper.
func (m *RegularMapper) ValidIndex(idx grid.Index) int {
	if !m.size.Contains(idx) {
		return -1
	}
	return m.size.Offset(idx)
}

// GridPoint implements Mapper.
func (m *RegularMapper) GridPoint(idx grid.Index) geom.Point {
	return m.pts[m.size.Offset(idx)]
}

// DomainMapper maps a grid restricted to a polygonal domain. The point
// arrays hold only the valid points, compacted in grid order.
type DomainMapper struct {
	validity *grid.Validity
	all      []geom.Point
	domain   geom.Polygon
}

// NewDomainMapper creates a mapper from the validity map of the full grid
// points all, restricted to domain.
func NewDomainMapper(v *grid.Validity, all []geom.Point, domain geom.Polygon) *DomainMapper {
	return &DomainMapper{validity: v, all: all, domain: domain}
}

// Size implements Mapper.
func (m *DomainMapper) Size() grid.Size { return m.validity.Size() }

// ValidIndex implements Mapper.
func (m *DomainMapper) ValidIndex(idx grid.Index) int {
	return m.validity.ValidIndex(idx)
}

// GridPoint implements Mapper.
func (m *DomainMapper) GridPoint(idx grid.Index) geom.Point {
	return m.all[m.validity.Size().Offset(idx)]
}

// Domain returns the polygon cells are clipped against.
func (m *DomainMapper) Domain() geom.Polygon {
	return m.domain
}

// Stats counts the cells handled by one iteration pass.
type Stats struct {
	Processed int
	Skipped   int
}

// cellPoints returns the array positions of the corners of cell and the
// number of valid ones.
func cellPoints(m Mapper, cell grid.Index) ([4]int, int) {
	var idx [4]int
	n := 0
	for i := range idx {
		idx[i] = m.ValidIndex(grid.Corner(cell, i))
		if idx[i] >= 0 {
			n++
		}
	}
	return idx, n
}

// forEachCell calls fn for the top-left index of every cell of size.
func forEachCell(size grid.Size, fn func(cell grid.Index)) {
	for row := 0; row < size.Height-1; row++ {
		for col := 0; col < size.Width-1; col++ {
			fn(grid.Index{Col: col, Row: row})
		}
	}
}

// IterateComplete resamples every cell whose four corners are valid and
// ignores the others.
func IterateComplete(op PolygonOp, m Mapper, orig, transformed []geom.Point) Stats {
	var st Stats
	forEachCell(m.Size(), func(cell grid.Index) {
		idx, n := cellPoints(m, cell)
		if n != 4 {
			return
		}
		var src, dst quad.Quad
		for i, k := range idx {
			src[i] = orig[k]
			dst[i] = transformed[k]
		}
		op.Process(src, dst, dst.Polygon())
		st.Processed++
	})
	return st
}

// IterateIncomplete resamples the cells with one to three valid corners.
// Missing destination corners are approximated from neighbouring valid
// points; a cell for which some corner cannot be approximated is skipped.
// The processed region is clipped to the mapper's domain.
func IterateIncomplete(op PolygonOp, m *DomainMapper, orig, transformed []geom.Point) Stats {
	var st Stats
	forEachCell(m.Size(), func(cell grid.Index) {
		idx, n := cellPoints(m, cell)
		if n == 0 || n == 4 {
			return
		}
		var src, dst quad.Quad
		for i, k := range idx {
			if k >= 0 {
				src[i] = orig[k]
				dst[i] = transformed[k]
				continue
			}
			corner := grid.Corner(cell, i)
			src[i] = m.GridPoint(corner)
			pt, ok := OrthogonalApproximation(m, corner, src[i], orig, transformed)
			if !ok {
				st.Skipped++
				return
			}
			dst[i] = pt
		}

		srcClip := m.domain.ClipToRect(geom.BoundsOf(src[:]))
		if srcClip == nil {
			st.Skipped++
			return
		}
		clip := quad.NewForward(src, dst).MapPolygon(srcClip)
		op.Process(src, dst, clip)
		st.Processed++
	})
	return st
}

// axisDirections are searched first; diagonalDirections only when no axis
// yields a usable pair.
var (
	axisDirections = [4]grid.Index{{Col: -1}, {Row: -1}, {Col: 1}, {Row: 1}}

	diagonalDirections = [4]grid.Index{
		{Col: -1, Row: -1}, {Col: 1, Row: -1}, {Col: 1, Row: 1}, {Col: -1, Row: 1},
	}
)

// OrthogonalApproximation estimates the deformed position of the invalid
// grid point at idx, whose undeformed position is srcPt.
//
// For every direction with two consecutive valid neighbours, near and far,
// the offset of srcPt from near is carried into deformed space by the
// rotation and scale that take near-far before the deformation to near-far
// after it. The estimates are averaged. ok is false when no direction has
// a valid pair.
func OrthogonalApproximation(m Mapper, idx grid.Index, srcPt geom.Point, orig, transformed []geom.Point) (pt geom.Point, ok bool) {
	pt, ok = approximate(m, idx, srcPt, orig, transformed, axisDirections[:])
	if ok {
		return pt, true
	}
	return approximate(m, idx, srcPt, orig, transformed, diagonalDirections[:])
}

func approximate(m Mapper, idx grid.Index, srcPt geom.Point, orig, transformed []geom.Point, dirs []grid.Index) (geom.Point, bool) {
	var sum geom.Point
	found := 0
	for _, d := range dirs {
		near := m.ValidIndex(idx.Add(d))
		far := m.ValidIndex(idx.Add(d).Add(d))
		if near < 0 || far < 0 {
			continue
		}
		nearSrc, farSrc := orig[near], orig[far]
		nearDst, farDst := transformed[near], transformed[far]

		est := nearDst.Add(geom.TransformAsBase(srcPt.Sub(nearSrc), nearSrc.Sub(farSrc), nearDst.Sub(farDst)))
		if !finite(est) {
			continue
		}
		sum = sum.Add(est)
		found++
	}
	if found == 0 {
		return geom.Point{}, false
	}
	return sum.Div(float64(found)), true
}

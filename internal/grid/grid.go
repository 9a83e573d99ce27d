// Package grid builds the adaptive sampling grid used by every deformation
// strategy.
//
// A grid covers a pixel rectangle with points spaced precision pixels
// apart. Interior points are snapped to multiples of the precision while
// both boundary pixels of the rectangle are always sampled exactly once,
// so neighbouring deformations of adjacent regions share their seams.
package grid

import (
	"errors"
	"image"

	"github.com/gogpu/meshwarp/internal/geom"
)

// ErrInvalidPrecision is returned when the precision is not a positive
// power of two.
var ErrInvalidPrecision = errors.New("grid: precision must be a positive power of two")

// ValidPrecision reports whether p can be used as a grid precision.
func ValidPrecision(p int) bool {
	return p > 0 && p&(p-1) == 0
}

// Size is the number of grid points along each axis.
type Size struct {
	Width, Height int
}

// Len returns the total number of points.
func (s Size) Len() int {
	return s.Width * s.Height
}

// Contains reports whether idx addresses a point of the grid.
func (s Size) Contains(idx Index) bool {
	return idx.Col >= 0 && idx.Row >= 0 && idx.Col < s.Width && idx.Row < s.Height
}

// Offset returns the position of idx in a row-major point array.
func (s Size) Offset(idx Index) int {
	return idx.Col + idx.Row*s.Width
}

// IndexOf is the inverse of Offset.
func (s Size) IndexOf(offset int) Index {
	return Index{Col: offset % s.Width, Row: offset / s.Width}
}

// Index addresses a grid point by column and row.
type Index struct {
	Col, Row int
}

// Add returns the index shifted by d.
func (i Index) Add(d Index) Index {
	return Index{Col: i.Col + d.Col, Row: i.Row + d.Row}
}

// Dimension returns the number of samples taken along one axis for the
// inclusive pixel interval [start, end] at precision p.
func Dimension(start, end, p int) int {
	if end <= start {
		return 1
	}
	mask := ^(p - 1)
	alignedStart := (start + p - 1) & mask
	alignedEnd := end & mask

	if alignedEnd > alignedStart {
		size := (alignedEnd-alignedStart)/p + 1
		if alignedStart != start {
			size++
		}
		if alignedEnd != end {
			size++
		}
		return size
	}
	if end-start >= p {
		return 3
	}
	return 2
}

// CalcSize returns the grid size covering the pixels of bounds.
func CalcSize(bounds image.Rectangle, p int) Size {
	if bounds.Empty() {
		return Size{}
	}
	return Size{
		Width:  Dimension(bounds.Min.X, bounds.Max.X-1, p),
		Height: Dimension(bounds.Min.Y, bounds.Max.Y-1, p),
	}
}

// Visit describes one step of Traverse.
type Visit struct {
	// Col and Row are the pixel coordinates of the current sample.
	Col, Row int
	// PrevCol and PrevRow are the coordinates of the previous sample on
	// the same line and of the previous line. They are only meaningful
	// when Index.Col > 0 and Index.Row > 0 respectively.
	PrevCol, PrevRow int
	// Index is the position of the sample in the grid.
	Index Index
}

// next advances one sample along an axis ending at end.
func next(cur, end, p int) int {
	n := cur + p
	if n > end && n <= end+p-1 {
		return end
	}
	return n & ^(p - 1)
}

// Traverse visits every grid point of bounds row by row. fn is called once
// per point; lineDone, when non-nil, is called after the last point of
// every row.
func Traverse(bounds image.Rectangle, p int, fn func(v Visit), lineDone func()) {
	if bounds.Empty() || !ValidPrecision(p) {
		return
	}
	right := bounds.Max.X - 1
	bottom := bounds.Max.Y - 1

	v := Visit{}
	for row := bounds.Min.Y; row <= bottom; {
		v.Index.Col = 0
		for col := bounds.Min.X; col <= right; {
			v.Col, v.Row = col, row
			fn(v)

			v.PrevCol = col
			col = next(col, right, p)
			v.Index.Col++
		}
		if lineDone != nil {
			lineDone()
		}

		v.PrevRow = row
		row = next(row, bottom, p)
		v.Index.Row++
	}
}

// Points returns the grid points of bounds in row-major order together
// with the grid size.
func Points(bounds image.Rectangle, p int) ([]geom.Point, Size, error) {
	if !ValidPrecision(p) {
		return nil, Size{}, ErrInvalidPrecision
	}
	size := CalcSize(bounds, p)
	pts := make([]geom.Point, 0, size.Len())
	Traverse(bounds, p, func(v Visit) {
		pts = append(pts, geom.Pt(float64(v.Col), float64(v.Row)))
	}, nil)
	return pts, size, nil
}

// CellCorners returns the offsets of the four corners of the cell whose
// top-left point is idx, in top-left, top-right, bottom-right, bottom-left
// order.
func (s Size) CellCorners(idx Index) [4]int {
	tl := s.Offset(idx)
	bl := tl + s.Width
	return [4]int{tl, tl + 1, bl + 1, bl}
}

// cornerOffsets maps a corner number of a cell to its index offset.
var cornerOffsets = [4]Index{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Corner returns the index of corner i of the cell whose top-left point is
// cell.
func Corner(cell Index, i int) Index {
	return cell.Add(cornerOffsets[i])
}

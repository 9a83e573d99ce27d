package grid

import "github.com/gogpu/meshwarp/internal/geom"

// Validity marks which points of a grid belong to a deformation domain and
// remaps grid offsets to positions in the compacted array of valid points.
type Validity struct {
	size  Size
	remap []int
	valid []geom.Point
}

// NewValidity classifies pts (row-major, size.Len() long) with inside. The
// point stored for a valid entry is the one returned by adjust, which may
// nudge it; adjust may be nil.
func NewValidity(size Size, pts []geom.Point, inside func(geom.Point) bool, adjust func(geom.Point) geom.Point) *Validity {
	v := &Validity{
		size:  size,
		remap: make([]int, len(pts)),
	}
	for i, pt := range pts {
		if !inside(pt) {
			v.remap[i] = -1
			continue
		}
		if adjust != nil {
			pt = adjust(pt)
		}
		v.remap[i] = len(v.valid)
		v.valid = append(v.valid, pt)
	}
	return v
}

// Size returns the grid size the map was built for.
func (v *Validity) Size() Size {
	return v.size
}

// Points returns the compacted valid points in grid order.
func (v *Validity) Points() []geom.Point {
	return v.valid
}

// Count returns the number of valid points.
func (v *Validity) Count() int {
	return len(v.valid)
}

// ValidIndex returns the compacted position of the point at idx, or -1
// when idx is outside the grid or not part of the domain.
func (v *Validity) ValidIndex(idx Index) int {
	if !v.size.Contains(idx) {
		return -1
	}
	return v.remap[v.size.Offset(idx)]
}

// Remap converts a row-major grid offset into a compacted position.
func (v *Validity) Remap(offset int) int {
	return v.remap[offset]
}

package grid

import (
	"image"
	"testing"

	"github.com/gogpu/meshwarp/internal/geom"
)

func TestDimension(t *testing.T) {
	tests := []struct {
		start, end, p int
		want          int
	}{
		{0, 0, 4, 1},
		{0, 3, 4, 2},
		{0, 4, 4, 2},
		{0, 8, 4, 3},
		{1, 3, 4, 2},
		{1, 5, 4, 3},
		{2, 5, 4, 2},
		{2, 8, 4, 3},
		{2, 9, 4, 4},
		{1, 13, 4, 5},
		{-3, 5, 4, 4},
		{0, 99, 8, 14},
		{5, 9, 1, 5},
	}
	for _, tt := range tests {
		if got := Dimension(tt.start, tt.end, tt.p); got != tt.want {
			t.Errorf("Dimension(%d, %d, %d) = %d, want %d", tt.start, tt.end, tt.p, got, tt.want)
		}
	}
}

// axisSamples collects the column positions of the first grid row.
func axisSamples(start, end, p int) []int {
	var cols []int
	Traverse(image.Rect(start, 0, end+1, 1), p, func(v Visit) {
		cols = append(cols, v.Col)
	}, nil)
	return cols
}

func TestTraverseMatchesDimension(t *testing.T) {
	for _, p := range []int{1, 2, 4, 8, 16} {
		for start := -20; start <= 20; start++ {
			for end := start; end <= start+40; end++ {
				cols := axisSamples(start, end, p)
				if len(cols) != Dimension(start, end, p) {
					t.Fatalf("p=%d [%d,%d]: traversal gave %d samples, Dimension %d",
						p, start, end, len(cols), Dimension(start, end, p))
				}
				if cols[0] != start || cols[len(cols)-1] != end {
					t.Fatalf("p=%d [%d,%d]: samples %v do not hit both edges", p, start, end, cols)
				}
				for i := 1; i < len(cols); i++ {
					if cols[i] <= cols[i-1] {
						t.Fatalf("p=%d [%d,%d]: samples %v not strictly increasing", p, start, end, cols)
					}
					if i < len(cols)-1 && cols[i]%p != 0 {
						t.Fatalf("p=%d [%d,%d]: interior sample %d not aligned", p, start, end, cols[i])
					}
				}
			}
		}
	}
}

func TestTraverseVisits(t *testing.T) {
	bounds := image.Rect(1, 2, 10, 7)
	var visits []Visit
	lines := 0
	Traverse(bounds, 4, func(v Visit) { visits = append(visits, v) }, func() { lines++ })

	size := CalcSize(bounds, 4)
	if len(visits) != size.Len() {
		t.Fatalf("visited %d points, want %d", len(visits), size.Len())
	}
	if lines != size.Height {
		t.Errorf("lineDone called %d times, want %d", lines, size.Height)
	}
	for i, v := range visits {
		if size.Offset(v.Index) != i {
			t.Errorf("visit %d has index %v", i, v.Index)
		}
		if v.Index.Col > 0 && v.PrevCol != visits[i-1].Col {
			t.Errorf("visit %d PrevCol = %d, want %d", i, v.PrevCol, visits[i-1].Col)
		}
		if v.Index.Row > 0 && v.PrevRow != visits[i-size.Width].Row {
			t.Errorf("visit %d PrevRow = %d, want %d", i, v.PrevRow, visits[i-size.Width].Row)
		}
	}
}

func TestPoints(t *testing.T) {
	pts, size, err := Points(image.Rect(0, 0, 10, 10), 4)
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	if size != (Size{Width: 4, Height: 4}) {
		t.Errorf("size = %v, want 4x4", size)
	}
	if len(pts) != size.Len() {
		t.Fatalf("len(pts) = %d, want %d", len(pts), size.Len())
	}
	if pts[size.Offset(Index{Col: 3, Row: 3})] != geom.Pt(9, 9) {
		t.Errorf("last point = %v, want (9,9)", pts[len(pts)-1])
	}
	if pts[size.Offset(Index{Col: 1, Row: 2})] != geom.Pt(4, 8) {
		t.Errorf("point (1,2) = %v, want (4,8)", pts[size.Offset(Index{Col: 1, Row: 2})])
	}

	if _, _, err := Points(image.Rect(0, 0, 10, 10), 3); err != ErrInvalidPrecision {
		t.Errorf("precision 3: err = %v, want ErrInvalidPrecision", err)
	}
}

func TestCellCorners(t *testing.T) {
	s := Size{Width: 5, Height: 3}
	got := s.CellCorners(Index{Col: 1, Row: 1})
	want := [4]int{6, 7, 12, 11}
	if got != want {
		t.Errorf("CellCorners = %v, want %v", got, want)
	}
	for i, off := range want {
		if s.Offset(Corner(Index{Col: 1, Row: 1}, i)) != off {
			t.Errorf("Corner %d disagrees with CellCorners", i)
		}
	}
	if s.IndexOf(12) != (Index{Col: 2, Row: 2}) {
		t.Errorf("IndexOf(12) = %v", s.IndexOf(12))
	}
}

func TestValidity(t *testing.T) {
	pts, size, err := Points(image.Rect(0, 0, 9, 9), 4)
	if err != nil {
		t.Fatal(err)
	}
	tri := geom.Polygon{geom.Pt(0, 0), geom.Pt(8, 0), geom.Pt(0, 8)}
	v := NewValidity(size, pts, tri.ContainsPointInclusive, nil)

	var want []geom.Point
	for _, p := range pts {
		if tri.ContainsPointInclusive(p) {
			want = append(want, p)
		}
	}
	if v.Count() != len(want) {
		t.Fatalf("Count() = %d, want %d", v.Count(), len(want))
	}
	for i, p := range v.Points() {
		if p != want[i] {
			t.Errorf("valid point %d = %v, want %v", i, p, want[i])
		}
	}
	for off, p := range pts {
		idx := size.IndexOf(off)
		got := v.ValidIndex(idx)
		if tri.ContainsPointInclusive(p) != (got >= 0) {
			t.Errorf("ValidIndex(%v) = %d for point %v", idx, got, p)
		}
		if got >= 0 && v.Points()[got] != p {
			t.Errorf("ValidIndex(%v) points to %v, want %v", idx, v.Points()[got], p)
		}
	}
	if v.ValidIndex(Index{Col: -1, Row: 0}) != -1 || v.ValidIndex(Index{Col: 0, Row: size.Height}) != -1 {
		t.Error("out-of-grid indexes must be invalid")
	}
}

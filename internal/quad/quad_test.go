package quad

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/meshwarp/internal/geom"
)

const tolerance = 1e-9

func near(a, b geom.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

var cell = Quad{geom.Pt(10, 20), geom.Pt(18, 20), geom.Pt(18, 28), geom.Pt(10, 28)}

func TestForwardCorners(t *testing.T) {
	dst := Quad{geom.Pt(3, 4), geom.Pt(15, 2), geom.Pt(17, 16), geom.Pt(1, 13)}
	f := NewForward(cell, dst)
	for i := range 4 {
		if got := f.Map(cell[i]); !near(got, dst[i], tolerance) {
			t.Errorf("corner %d maps to %v, want %v", i, got, dst[i])
		}
	}
	mid := f.Map(geom.Pt(14, 24))
	want := dst[0].Add(dst[1]).Add(dst[2]).Add(dst[3]).Div(4)
	if !near(mid, want, tolerance) {
		t.Errorf("centre maps to %v, want %v", mid, want)
	}
}

func TestForwardExtrapolates(t *testing.T) {
	dst := Quad{geom.Pt(0, 0), geom.Pt(16, 0), geom.Pt(16, 16), geom.Pt(0, 16)}
	f := NewForward(cell, dst)
	if got := f.Map(geom.Pt(22, 20)); !near(got, geom.Pt(24, 0), tolerance) {
		t.Errorf("Map outside = %v, want (24,0)", got)
	}
}

func TestBackwardIdentity(t *testing.T) {
	bw := NewBackward(cell, cell)
	var probes []geom.Point
	probes = append(probes, cell[:]...)
	probes = append(probes,
		geom.Pt(14, 20), geom.Pt(14, 28), geom.Pt(10, 24), geom.Pt(18, 24), geom.Pt(14, 24))
	for y := 20.0; y <= 28; y += 0.5 {
		for x := 10.0; x <= 18; x += 0.5 {
			probes = append(probes, geom.Pt(x, y))
		}
	}
	for _, p := range probes {
		if got := bw.Map(p); !near(got, p, tolerance) {
			t.Errorf("identity Map(%v) = %v", p, got)
		}
	}
}

func randomQuad(r *rand.Rand) Quad {
	// Jittered square keeps the quad convex and non-degenerate.
	j := func() float64 { return r.Float64()*4 - 2 }
	return Quad{
		geom.Pt(0+j(), 0+j()),
		geom.Pt(12+j(), 0+j()),
		geom.Pt(12+j(), 12+j()),
		geom.Pt(0+j(), 12+j()),
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		dst := randomQuad(r)
		f := NewForward(cell, dst)
		bw := NewBackward(cell, dst)
		for range 20 {
			p := geom.Pt(10.01+r.Float64()*7.98, 20.01+r.Float64()*7.98)
			if got := bw.Map(f.Map(p)); !near(got, p, 1e-7) {
				t.Fatalf("dst %v: backward(forward(%v)) = %v", dst, p, got)
			}
		}
	}
}

func TestBackwardScanline(t *testing.T) {
	dst := Quad{geom.Pt(3, 4), geom.Pt(15, 2), geom.Pt(17, 16), geom.Pt(1, 13)}
	scan := NewBackward(cell, dst)
	fresh := NewBackward(cell, dst)
	for y := 4.0; y < 14; y++ {
		scan.SetY(y)
		for x := 3.0; x < 15; x++ {
			scan.SetX(x)
			if got, want := scan.Value(), fresh.Map(geom.Pt(x, y)); got != want {
				t.Fatalf("SetX/SetY at (%v,%v) = %v, Map = %v", x, y, got, want)
			}
		}
	}
}

func TestBackwardParallelogram(t *testing.T) {
	// Opposite edges parallel: the quadratic term vanishes.
	dst := Quad{geom.Pt(0, 0), geom.Pt(8, 2), geom.Pt(11, 10), geom.Pt(3, 8)}
	bw := NewBackward(cell, dst)
	if math.Abs(bw.qA) >= eps {
		t.Fatalf("qA = %v, want ~0", bw.qA)
	}
	f := NewForward(cell, dst)
	p := geom.Pt(13, 25)
	if got := bw.Map(f.Map(p)); !near(got, p, tolerance) {
		t.Errorf("parallelogram round trip = %v, want %v", got, p)
	}
}

func TestBackwardCollapsed(t *testing.T) {
	pt := geom.Pt(5, 5)
	dst := Quad{pt, pt, pt, pt}
	bw := NewBackward(cell, dst)
	if got := bw.Map(geom.Pt(7, 9)); got != cell[0] {
		t.Errorf("collapsed quad maps to %v, want %v", got, cell[0])
	}
}

func TestSolveLinear(t *testing.T) {
	if got := solveLinear(2, -1); got != 0.5 {
		t.Errorf("solveLinear(2,-1) = %v, want 0.5", got)
	}
	if got := solveLinear(0, 5); got != 0 {
		t.Errorf("solveLinear(0,5) = %v, want 0", got)
	}
}

func TestSelectRoot(t *testing.T) {
	tests := []struct {
		name       string
		qA, qB, qC float64
		want       float64
	}{
		{"minus root in range", 1, -1.5, 0.5, 0.5},
		{"plus root in range", 1, 0.25, -0.125, 0.25},
		{"no root in range clamps", 1, -3.5, 3, 1},
		{"no root below range clamps", 1, 3.5, 3, 0},
		{"double root", 1, -1, 0.25, 0.5},
		{"negative discriminant", 1, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectRoot(tt.qA, tt.qB, tt.qC); math.Abs(got-tt.want) > tolerance {
				t.Errorf("selectRoot(%v, %v, %v) = %v, want %v", tt.qA, tt.qB, tt.qC, got, tt.want)
			}
		})
	}
}

func TestRectQuad(t *testing.T) {
	q := Rect(geom.Rect{Min: geom.Pt(1, 2), Max: geom.Pt(5, 7)})
	want := Quad{geom.Pt(1, 2), geom.Pt(5, 2), geom.Pt(5, 7), geom.Pt(1, 7)}
	if q != want {
		t.Errorf("Rect() = %v, want %v", q, want)
	}
}

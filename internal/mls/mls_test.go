package mls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/meshwarp/internal/geom"
)

var modes = []Mode{Affine, Similitude, Rigid}

var controls = []geom.Point{
	geom.Pt(10, 10), geom.Pt(90, 12), geom.Pt(85, 95), geom.Pt(12, 80), geom.Pt(50, 45),
}

func mapAll(m geom.Matrix, pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

func assertNear(t *testing.T, want, got geom.Point, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "y of %v", got)
}

func TestSinglePairTranslates(t *testing.T) {
	p := []geom.Point{geom.Pt(3, 4)}
	q := []geom.Point{geom.Pt(10, -2)}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			for _, v := range []geom.Point{geom.Pt(0, 0), geom.Pt(3, 4), geom.Pt(-50, 17.5)} {
				assert.Equal(t, v.Add(geom.Pt(7, -6)), Transform(mode, v, p, q, 1))
			}
		})
	}
}

func TestExactControlPoint(t *testing.T) {
	q := mapAll(geom.Rotate(0.4).Multiply(geom.Scale(1.3, 0.8)), controls)
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			for i, p := range controls {
				assert.Equal(t, q[i], Transform(mode, p, controls, q, 1))
			}
		})
	}
}

func TestAffineSingular(t *testing.T) {
	p := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)}
	q := []geom.Point{geom.Pt(5, 0), geom.Pt(6, 3), geom.Pt(9, 1)}
	v := geom.Pt(5, 0.5)
	assert.Equal(t, v, Transform(Affine, v, p, q, 1))
}

func TestReproducesOwnFamily(t *testing.T) {
	tests := []struct {
		mode Mode
		m    geom.Matrix
	}{
		{Affine, geom.Matrix{A: 1.2, B: 0.3, C: 4, D: -0.2, E: 0.9, F: -7}},
		{Similitude, geom.Translate(5, -3).Multiply(geom.Rotate(0.7)).Multiply(geom.Scale(1.6, 1.6))},
		{Rigid, geom.Translate(-8, 2).Multiply(geom.Rotate(-1.1))},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			q := mapAll(tt.m, controls)
			for _, v := range []geom.Point{geom.Pt(40, 40), geom.Pt(0, 100), geom.Pt(70.5, 20.25)} {
				for _, alpha := range []float64{0.5, 1, 2} {
					assertNear(t, tt.m.TransformPoint(v), Transform(tt.mode, v, controls, q, alpha), 1e-6)
				}
			}
		})
	}
}

func TestRigidKeepsDistanceFromCentroid(t *testing.T) {
	q := mapAll(geom.Scale(2, 2), controls)
	v := geom.Pt(30, 60)
	got := Transform(Rigid, v, controls, q, 1)
	sim := Transform(Similitude, v, controls, q, 1)

	// A pure scale has no rotation: rigid keeps the direction of the
	// similitude result but not its stretch.
	assertNear(t, geom.Pt(60, 120), sim, 1e-6)
	assert.False(t, math.Abs(got.X-sim.X) < 1e-3 && math.Abs(got.Y-sim.Y) < 1e-3)
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(nil, nil), ErrNoControlPoints)
	require.ErrorIs(t, Validate(controls, controls[:2]), ErrControlPointMismatch)
	require.NoError(t, Validate(controls, controls))
}

func TestParseMode(t *testing.T) {
	for _, mode := range modes {
		got, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseMode("bogus")
	assert.Error(t, err)
}

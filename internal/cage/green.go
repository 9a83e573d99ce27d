package cage

import (
	"math"

	"github.com/gogpu/meshwarp/internal/geom"
)

// degenerateRatio bounds 4SQ - R^2 relative to SQ below which a point is
// treated as lying on the line of an edge.
const degenerateRatio = 1e-12

// GreenCoordinates holds the Green coordinates of a set of points with
// respect to a cage polygon.
//
// Every point is expressed as a combination of the cage vertices (phi) and
// of the outward edge normals (psi). Moving the cage and recombining with
// the moved vertices and normals reproduces similarity transforms of the
// cage exactly and deforms the interior smoothly otherwise.
type GreenCoordinates struct {
	phi       [][]float64
	psi       [][]float64
	edgeLen   []float64
	direction float64

	normals []geom.Point
	scales  []float64
}

// Precalculate computes the coordinates of pts inside cage.
func (g *GreenCoordinates) Precalculate(cage geom.Polygon, pts []geom.Point) {
	n := len(cage)
	g.direction = cage.Direction()
	g.edgeLen = make([]float64, n)
	for j := range n {
		g.edgeLen[j] = cage[(j+1)%n].Sub(cage[j]).Length()
	}

	g.phi = make([][]float64, len(pts))
	g.psi = make([][]float64, len(pts))
	for i, pt := range pts {
		g.phi[i], g.psi[i] = g.coordinates(cage, pt)
	}
}

func (g *GreenCoordinates) coordinates(cage geom.Polygon, eta geom.Point) (phi, psi []float64) {
	n := len(cage)
	phi = make([]float64, n)
	psi = make([]float64, n)

	for j := range n {
		next := (j + 1) % n
		a := cage[next].Sub(cage[j])
		b := cage[j].Sub(eta)

		q := a.Dot(a)
		s := b.Dot(b)
		r := 2 * a.Dot(b)
		ba := b.Dot(geom.Point{X: a.Y, Y: -a.X}.Mul(-g.direction))

		l0 := math.Log(s)
		l1 := math.Log(s + q + r)
		l10 := l1 - l0

		disc := 4*s*q - r*r
		if disc <= degenerateRatio*s*q {
			psi[j] = -math.Sqrt(q) / (4 * math.Pi) * (r/(2*q)*l10 + l1 - 2)
			continue
		}
		srt := math.Sqrt(disc)
		a0 := math.Atan(r/srt) / srt
		a1 := math.Atan((2*q+r)/srt) / srt
		a10 := a1 - a0

		psi[j] = -math.Sqrt(q) / (4 * math.Pi) * ((4*s-r*r/q)*a10 + r/(2*q)*l10 + l1 - 2)
		phi[next] -= ba / (2 * math.Pi) * (l10/(2*q) - a10*r/q)
		phi[j] += ba / (2 * math.Pi) * (l10/(2*q) - a10*(2+r/q))
	}
	return phi, psi
}

// RegenerateNormals prepares the edge normals of the transformed cage.
// It must be called before TransformedPoint whenever the cage moves.
func (g *GreenCoordinates) RegenerateNormals(transformed geom.Polygon) {
	n := len(transformed)
	g.normals = make([]geom.Point, n)
	g.scales = make([]float64, n)
	for j := range n {
		a := transformed[(j+1)%n].Sub(transformed[j])
		l := a.Length()
		if l == 0 || g.edgeLen[j] == 0 {
			continue
		}
		g.normals[j] = geom.Point{X: a.Y, Y: -a.X}.Mul(g.direction / l)
		g.scales[j] = l / g.edgeLen[j]
	}
}

// TransformedPoint returns the position of point i under the transformed
// cage.
func (g *GreenCoordinates) TransformedPoint(i int, transformed geom.Polygon) geom.Point {
	var res geom.Point
	for k, v := range transformed {
		res = res.Add(v.Mul(g.phi[i][k]))
	}
	for j, nrm := range g.normals {
		res = res.Add(nrm.Mul(g.psi[i][j] * g.scales[j]))
	}
	return res
}

package gochart

import (
	"math"
	"sort"
)

// View angles of the 3-D projection, in degrees.
const (
	viewAzimuth   = -60
	viewElevation = 30
)

// projectedQuad is one surface cell in screen space (y up).
type projectedQuad struct {
	Pts   [4]Point
	Depth float64
	Color Color
}

type viewProjector struct {
	ca, sa, ce, se float64
}

func newViewProjector() viewProjector {
	az, el := viewAzimuth*math.Pi/180, viewElevation*math.Pi/180
	return viewProjector{ca: math.Cos(az), sa: math.Sin(az), ce: math.Cos(el), se: math.Sin(el)}
}

// project maps a point of the [-1,1] cube to screen space and a depth where
// larger means farther from the viewer.
func (v viewProjector) project(x, y, z float64) (Point, float64) {
	xr := x*v.ca - y*v.sa
	yr := x*v.sa + y*v.ca
	return Point{xr, z*v.ce + yr*v.se}, yr*v.ce - z*v.se
}

func normalize(val, lo, hi float64) float64 { return 2*fraction(val, lo, hi) - 1 }

// projectSurface returns the cells of s sorted back to front.
func projectSurface(s *Surface) []projectedQuad {
	cm, ok := LookupColormap(s.Cmap)
	if !ok {
		cm, _ = LookupColormap("viridis")
	}
	view := newViewProjector()
	xlo, xhi, _ := finiteRange(s.X)
	ylo, yhi, _ := finiteRange(s.Y)
	var quads []projectedQuad
	for i := 0; i+1 < len(s.Z); i++ {
		for j := 0; j+1 < len(s.Z[i]); j++ {
			corners := [4][2]int{{i, j}, {i, j + 1}, {i + 1, j + 1}, {i + 1, j}}
			var q projectedQuad
			z := 0.0
			valid := true
			for k, c := range corners {
				zv := s.Z[c[0]][c[1]]
				if !finite(zv) {
					valid = false
					break
				}
				p, d := view.project(normalize(s.X[c[1]], xlo, xhi), normalize(s.Y[c[0]], ylo, yhi), 0.8*normalize(zv, s.ZMin, s.ZMax))
				q.Pts[k] = p
				q.Depth += d / 4
				z += zv / 4
			}
			if !valid {
				continue
			}
			q.Color = cm.Map(z, s.ZMin, s.ZMax)
			quads = append(quads, q)
		}
	}
	sort.SliceStable(quads, func(a, b int) bool { return quads[a].Depth > quads[b].Depth })
	return quads
}

// surfaceFrame returns the three back edges of the bounding box.
func surfaceFrame() [][2]Point {
	view := newViewProjector()
	edges := [][2][3]float64{
		{{-1, -1, -0.8}, {1, -1, -0.8}},
		{{-1, -1, -0.8}, {-1, 1, -0.8}},
		{{-1, 1, -0.8}, {-1, 1, 0.8}},
	}
	out := make([][2]Point, len(edges))
	for i, e := range edges {
		a, _ := view.project(e[0][0], e[0][1], e[0][2])
		b, _ := view.project(e[1][0], e[1][1], e[1][2])
		out[i] = [2]Point{a, b}
	}
	return out
}

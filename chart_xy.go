package gochart

import "math"

type scatterChart struct{}

func (scatterChart) Kind() Kind { return KindScatter }

func (scatterChart) Constraints() Constraints { return scatterConstraints }

// Render places one marker per point. With a colormap the markers are
// colored by their y value.
func (scatterChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	pts := make([]Point, len(a.X))
	for i := range a.X {
		pts[i] = Point{a.X[i], a.Y[i]}
	}
	coll := &Collection{
		Kind:   CollectionScatter,
		Points: pts,
		Sizes:  repeat(36, len(pts)),
		Alpha:  1,
		Colors: []Color{a.colorOr(CycleColor(0))},
	}
	if cm, ok := LookupColormap(a.Cmap); ok && a.Cmap != "" {
		lo, hi, _ := finiteRange(a.Y)
		coll.Colors = make([]Color, len(pts))
		for i, p := range pts {
			coll.Colors[i] = cm.Map(p.Y, lo, hi)
		}
		ax.Colorbar = &Colorbar{Cmap: cm.Name, Min: lo, Max: hi, Ticks: niceTicks(lo, hi, 6)}
	}
	ax.Collections = append(ax.Collections, coll)
	ax.XAxis = valueAxis(a.X)
	ax.YAxis = valueAxis(a.Y)
	return fig, nil
}

type errorBarChart struct{}

func (errorBarChart) Kind() Kind { return KindErrorBar }

func (errorBarChart) Constraints() Constraints { return errorBarConstraints }

// Render draws the data points as markers and one vertical segment per
// point spanning y-yerr to y+yerr, plus horizontal segments for xerr.
func (errorBarChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	c := a.colorOr(CycleColor(0))
	marker := a.Marker
	if marker == "" {
		marker = "o"
	}
	ax.Lines = append(ax.Lines, &Line2D{X: a.X, Y: a.Y, Color: c, Style: LineNone, Marker: marker, MarkerSize: 6})

	lows, highs := make([]float64, len(a.Y)), make([]float64, len(a.Y))
	ysegs := make([][2]Point, len(a.X))
	for i := range a.X {
		lows[i], highs[i] = a.Y[i]-a.YErr[i], a.Y[i]+a.YErr[i]
		ysegs[i] = [2]Point{{a.X[i], lows[i]}, {a.X[i], highs[i]}}
	}
	ax.Collections = append(ax.Collections, &Collection{Kind: CollectionSegments, Segments: ysegs, Colors: []Color{c}, Width: 1.5, Alpha: 1})

	xlo, xhi := a.X, a.X
	if len(a.XErr) > 0 {
		xlo, xhi = make([]float64, len(a.X)), make([]float64, len(a.X))
		xsegs := make([][2]Point, len(a.X))
		for i := range a.X {
			xlo[i], xhi[i] = a.X[i]-a.XErr[i], a.X[i]+a.XErr[i]
			xsegs[i] = [2]Point{{xlo[i], a.Y[i]}, {xhi[i], a.Y[i]}}
		}
		ax.Collections = append(ax.Collections, &Collection{Kind: CollectionSegments, Segments: xsegs, Colors: []Color{c}, Width: 1.5, Alpha: 1})
	}
	ax.XAxis = valueAxis(xlo, xhi)
	ax.YAxis = valueAxis(lows, highs)
	return fig, nil
}

type polarChart struct{}

func (polarChart) Kind() Kind { return KindPolar }

func (polarChart) Constraints() Constraints { return polarConstraints }

// Render plots r against theta (radians) on a polar projection. XAxis holds
// the angular ticks in degrees and YAxis the radial range.
func (polarChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	ax.Projection = ProjectionPolar
	ax.Aspect = "equal"
	ax.Lines = append(ax.Lines, &Line2D{
		X:          a.Theta,
		Y:          a.R,
		Color:      a.Color,
		Width:      a.LineWidth,
		Style:      LineSolid,
		Marker:     a.Marker,
		MarkerSize: 6,
	})
	ax.XAxis = Axis{Min: 0, Max: 2 * math.Pi}
	for deg := 0; deg < 360; deg += 45 {
		ax.XAxis.Ticks = append(ax.XAxis.Ticks, Tick{
			Value: float64(deg) * math.Pi / 180,
			Label: formatNumber(float64(deg)) + "°",
		})
	}
	lo, hi, _ := finiteRange(a.R)
	lo = math.Min(lo, 0)
	if hi <= lo {
		hi = lo + 1
	}
	ticks := niceTicks(lo, hi, 6)
	if last := ticks[len(ticks)-1].Value; last < hi {
		hi = last + niceStep(lo, hi, 6)
		ticks = append(ticks, Tick{Value: hi, Label: formatNumber(hi)})
	} else {
		hi = last
	}
	ax.YAxis = Axis{Min: lo, Max: hi, Ticks: ticks}
	return fig, nil
}

// PolarToCartesian converts angle/radius pairs to x/y coordinates.
func PolarToCartesian(theta, r []float64) (xs, ys []float64) {
	xs, ys = make([]float64, len(theta)), make([]float64, len(theta))
	for i := range theta {
		xs[i] = r[i] * math.Cos(theta[i])
		ys[i] = r[i] * math.Sin(theta[i])
	}
	return xs, ys
}

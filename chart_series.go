package gochart

import "math"

// barWidth is the width of a bar in category units.
const barWidth = 0.8

type lineChart struct{}

func (lineChart) Kind() Kind               { return KindLine }
func (lineChart) Constraints() Constraints { return lineConstraints }

func (lineChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	ax.Lines = append(ax.Lines, &Line2D{
		X:          positions(len(a.Values)),
		Y:          a.Values,
		Color:      a.colorOr(CycleColor(0)),
		Width:      a.lineWidthOr(1.5),
		Style:      LineSolid,
		Marker:     a.Marker,
		MarkerSize: 6,
	})
	ax.XAxis = categoryAxis(a.Labels)
	ax.YAxis = valueAxis(a.Values)
	return fig, nil
}

type barChart struct{}

func (barChart) Kind() Kind               { return KindBar }
func (barChart) Constraints() Constraints { return barConstraints }

func (barChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	face := a.colorOr(CycleColor(0))
	for i, v := range a.Values {
		p := &Patch{Kind: PatchRect, Label: a.Labels[i], FaceColor: face}
		base, extent := math.Min(0, v), math.Abs(v)
		if a.Horizontal {
			p.X, p.Width = base, extent
			p.Y, p.Height = float64(i)-barWidth/2, barWidth
		} else {
			p.X, p.Width = float64(i)-barWidth/2, barWidth
			p.Y, p.Height = base, extent
		}
		ax.Patches = append(ax.Patches, p)
	}
	cat, val := categoryAxis(a.Labels), barValueAxis(a.Values)
	if a.Horizontal {
		ax.XAxis, ax.YAxis = val, cat
		ax.YAxis.Inverted = true
	} else {
		ax.XAxis, ax.YAxis = cat, val
	}
	return fig, nil
}

func barValueAxis(vals ...[]float64) Axis {
	lo, hi, _ := finiteRange(vals...)
	lo, hi = stickyZero(lo, hi)
	return Axis{Min: lo, Max: hi, Ticks: niceTicks(lo, hi, 8)}
}

type areaChart struct{}

func (areaChart) Kind() Kind               { return KindArea }
func (areaChart) Constraints() Constraints { return areaConstraints }

func (areaChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	xs := positions(len(a.Values))
	poly := make([]Point, 0, 2*len(xs))
	for i, x := range xs {
		poly = append(poly, Point{x, a.Values[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		poly = append(poly, Point{xs[i], 0})
	}
	ax.Collections = append(ax.Collections, &Collection{
		Kind:   CollectionFill,
		Points: poly,
		Colors: []Color{a.colorOr(CycleColor(0))},
		Alpha:  0.5,
	})
	ax.XAxis = categoryAxis(a.Labels)
	ax.YAxis = barValueAxis(a.Values)
	return fig, nil
}

type stemChart struct{}

func (stemChart) Kind() Kind               { return KindStem }
func (stemChart) Constraints() Constraints { return stemConstraints }

func (stemChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	xs := positions(len(a.Values))
	c := a.colorOr(CycleColor(0))
	marker := a.Marker
	if marker == "" {
		marker = "o"
	}
	segs := make([][2]Point, len(xs))
	for i, x := range xs {
		segs[i] = [2]Point{{x, 0}, {x, a.Values[i]}}
	}
	ax.Collections = append(ax.Collections, &Collection{
		Kind:     CollectionSegments,
		Segments: segs,
		Colors:   []Color{c},
		Width:    1.5,
		Alpha:    1,
	})
	ax.Lines = append(ax.Lines,
		&Line2D{X: xs, Y: a.Values, Color: c, Style: LineNone, Marker: marker, MarkerSize: 6},
		&Line2D{X: []float64{xs[0], xs[len(xs)-1]}, Y: []float64{0, 0}, Color: CycleColor(3), Width: 1.5, Style: LineSolid},
	)
	ax.XAxis = categoryAxis(a.Labels)
	ax.YAxis = valueAxis(a.Values, []float64{0})
	return fig, nil
}

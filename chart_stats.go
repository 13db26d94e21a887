package gochart

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Box plot geometry in category units.
const (
	boxHalfWidth = 0.25
	capHalfWidth = 0.125
)

type boxChart struct{}

func (boxChart) Kind() Kind { return KindBox }

func (boxChart) Constraints() Constraints { return boxConstraints }

// Render draws one box per group at positions 1..n. Each box contributes
// seven lines: the box outline, the median, two whiskers, two caps and the
// fliers.
func (boxChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	boxColor := a.colorOr(ColorBlack)
	for i, g := range a.Groups {
		x := float64(i + 1)
		s := ComputeBoxStats(g)
		l, r := x-boxHalfWidth, x+boxHalfWidth
		ax.Lines = append(ax.Lines,
			&Line2D{X: []float64{l, r, r, l, l}, Y: []float64{s.Q1, s.Q1, s.Q3, s.Q3, s.Q1}, Color: boxColor, Width: 1, Style: LineSolid, Label: a.Labels[i]},
			&Line2D{X: []float64{l, r}, Y: []float64{s.Median, s.Median}, Color: CycleColor(1), Width: 1, Style: LineSolid},
			&Line2D{X: []float64{x, x}, Y: []float64{s.Q1, s.WhiskerLo}, Color: boxColor, Width: 1, Style: LineSolid},
			&Line2D{X: []float64{x, x}, Y: []float64{s.Q3, s.WhiskerHi}, Color: boxColor, Width: 1, Style: LineSolid},
			&Line2D{X: []float64{x - capHalfWidth, x + capHalfWidth}, Y: []float64{s.WhiskerLo, s.WhiskerLo}, Color: boxColor, Width: 1, Style: LineSolid},
			&Line2D{X: []float64{x - capHalfWidth, x + capHalfWidth}, Y: []float64{s.WhiskerHi, s.WhiskerHi}, Color: boxColor, Width: 1, Style: LineSolid},
			&Line2D{X: repeat(x, len(s.Fliers)), Y: s.Fliers, Color: boxColor, Style: LineNone, Marker: "o", MarkerSize: 6},
		)
	}
	ax.XAxis = Axis{Min: 0.5, Max: float64(len(a.Groups)) + 0.5, Categorical: true}
	for i, l := range a.Labels {
		ax.XAxis.Ticks = append(ax.XAxis.Ticks, Tick{Value: float64(i + 1), Label: l})
	}
	ax.YAxis = valueAxis(a.Groups...)
	return fig, nil
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

type histogramChart struct{}

func (histogramChart) Kind() Kind { return KindHistogram }

func (histogramChart) Constraints() Constraints { return histogramConstraints }

func (histogramChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	counts, edges := Histogram(a.Values, a.Bins, a.Density)
	face := a.colorOr(CycleColor(0))
	for i, c := range counts {
		ax.Patches = append(ax.Patches, &Patch{
			Kind:      PatchRect,
			FaceColor: face,
			EdgeColor: ColorBlack,
			X:         edges[i],
			Width:     edges[i+1] - edges[i],
			Height:    c,
		})
	}
	ax.XAxis = valueAxis(edges)
	ax.YAxis = barValueAxis(counts)
	return fig, nil
}

type stackedBarChart struct{}

func (stackedBarChart) Kind() Kind { return KindStackedBar }

func (stackedBarChart) Constraints() Constraints { return stackedBarConstraints }

// Render stacks layer j of every category on top of layers 0..j-1. Data is
// indexed [category][layer].
func (stackedBarChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	depth := a.Depth()
	bottoms := make([]float64, len(a.Groups))
	tops := make([]float64, 0, len(a.Groups)*depth)
	ax.Legend = &Legend{}
	for j := 0; j < depth; j++ {
		face := CycleColor(j)
		name := a.SeriesName(j)
		for i, stack := range a.Groups {
			v := stack[j]
			ax.Patches = append(ax.Patches, &Patch{
				Kind:      PatchRect,
				Label:     name,
				FaceColor: face,
				X:         float64(i) - barWidth/2,
				Width:     barWidth,
				Y:         bottoms[i],
				Height:    v,
			})
			bottoms[i] += v
			tops = append(tops, bottoms[i])
		}
		ax.Legend.Entries = append(ax.Legend.Entries, LegendEntry{Label: name, Color: face})
	}
	ax.XAxis = categoryAxis(a.Labels)
	ax.YAxis = barValueAxis(tops)
	return fig, nil
}

// StackTotals returns the height of every stack.
func StackTotals(groups [][]float64) []float64 {
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i] = floats.Sum(g)
	}
	return out
}

// Layer returns layer j of every stack, i.e. one series across categories.
func Layer(groups [][]float64, j int) []float64 {
	out := make([]float64, len(groups))
	for i, g := range groups {
		if j < len(g) {
			out[i] = g[j]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

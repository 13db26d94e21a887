package gochart

type heatmapChart struct{}

func (heatmapChart) Kind() Kind { return KindHeatmap }

func (heatmapChart) Constraints() Constraints { return heatmapConstraints }

// Render shows the grid as an image with row 0 at the top and a colorbar
// spanning the data range.
func (heatmapChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	ax.Aspect = a.Aspect
	rows, cols := len(a.Grid), len(a.Grid[0])
	lo, hi, _ := finiteRange(a.Grid...)
	ax.Images = append(ax.Images, &Image{
		Data:   a.Grid,
		Cmap:   a.Cmap,
		VMin:   lo,
		VMax:   hi,
		Extent: [4]float64{-0.5, float64(cols) - 0.5, float64(rows) - 0.5, -0.5},
	})
	ax.XAxis = Axis{Min: -0.5, Max: float64(cols) - 0.5, Ticks: indexTicks(cols)}
	ax.YAxis = Axis{Min: -0.5, Max: float64(rows) - 0.5, Ticks: indexTicks(rows), Inverted: true}
	ax.Colorbar = &Colorbar{Cmap: a.Cmap, Min: lo, Max: hi, Ticks: niceTicks(lo, hi, 6)}
	return fig, nil
}

// indexTicks returns integer ticks over 0..n-1, thinned to at most 10.
func indexTicks(n int) []Tick {
	step := 1
	for n/step > 10 {
		step *= 2
	}
	var ticks []Tick
	for i := 0; i < n; i += step {
		ticks = append(ticks, Tick{Value: float64(i), Label: formatNumber(float64(i))})
	}
	return ticks
}

type surfaceChart struct{}

func (surfaceChart) Kind() Kind { return KindSurface }

func (surfaceChart) Constraints() Constraints { return surfaceConstraints }

// Render builds a 3-D surface. Missing X and Y coordinates default to the
// column and row indices.
func (surfaceChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	ax.Projection = Projection3D
	rows, cols := len(a.Grid), len(a.Grid[0])
	xs, ys := a.X, a.Y
	if len(xs) == 0 {
		xs = positions(cols)
	}
	if len(ys) == 0 {
		ys = positions(rows)
	}
	lo, hi, _ := finiteRange(a.Grid...)
	ax.Surfaces = append(ax.Surfaces, &Surface{X: xs, Y: ys, Z: a.Grid, Cmap: a.Cmap, ZMin: lo, ZMax: hi})
	ax.XAxis = valueAxis(xs)
	ax.YAxis = valueAxis(ys)
	ax.ZAxis = valueAxis(a.Grid...)
	ax.Colorbar = &Colorbar{Cmap: a.Cmap, Min: lo, Max: hi, Ticks: niceTicks(lo, hi, 6)}
	return fig, nil
}

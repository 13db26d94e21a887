package gochart

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLWriter writes an interactive ECharts page through go-echarts.
type HTMLWriter struct {
	figure *Figure
	opts   *RenderOptions
}

// echartsRenderer is satisfied by every go-echarts chart.
type echartsRenderer interface {
	Render(w io.Writer) error
}

// Save writes the page to a file.
func (w *HTMLWriter) Save(path string) error { return saveFile(path, w.WriteTo) }

// WriteTo renders the page to a writer.
func (w *HTMLWriter) WriteTo(out io.Writer) error {
	chart, err := w.build()
	if err != nil {
		return err
	}
	if err := chart.Render(out); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (w *HTMLWriter) globals(legend bool) []charts.GlobalOpts {
	fig := w.figure
	px := func(in float64) string { return fmt.Sprintf("%dpx", Inch(in, w.opts.DPI)) }
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title(),
			ChartID:   "chart_" + strings.ReplaceAll(fig.ID, "-", ""),
			Width:     px(w.opts.Width),
			Height:    px(w.opts.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend)}),
	}
}

func (w *HTMLWriter) build() (echartsRenderer, error) {
	fig := w.figure
	a := fig.Args
	if a == nil {
		return nil, fmt.Errorf("figure %s carries no data", fig.ID)
	}
	name := fig.Kind.DisplayName()
	switch fig.Kind {
	case KindLine, KindArea:
		line := charts.NewLine()
		line.SetGlobalOptions(w.globals(false)...)
		series := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: a.colorOr(CycleColor(0)).Hex(), Width: float32(a.lineWidthOr(1.5))}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: a.colorOr(CycleColor(0)).Hex()}),
		}
		if fig.Kind == KindArea {
			series = append(series, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.5)}))
		}
		line.SetXAxis(a.Labels).AddSeries(name, lineData(a.Values), series...)
		return line, nil

	case KindBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(w.globals(false)...)
		bar.SetXAxis(a.Labels).AddSeries(name, barData(a.Values, a.colorOr(CycleColor(0))))
		if a.Horizontal {
			bar.XYReversal()
		}
		return bar, nil

	case KindStem:
		bar := charts.NewBar()
		bar.SetGlobalOptions(w.globals(false)...)
		bar.SetXAxis(a.Labels).AddSeries("stems", barData(a.Values, a.colorOr(CycleColor(0))),
			charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "95%"}))
		heads := charts.NewScatter()
		heads.SetXAxis(a.Labels).AddSeries(name, scatterValues(a.Values))
		bar.Overlap(heads)
		return bar, nil

	case KindStackedBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(w.globals(true)...)
		bar.SetXAxis(a.Labels)
		for j := 0; j < a.Depth(); j++ {
			bar.AddSeries(a.SeriesName(j), barData(Layer(a.Groups, j), CycleColor(j)),
				charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		}
		return bar, nil

	case KindHistogram:
		counts, edges := Histogram(a.Values, a.Bins, a.Density)
		cats := make([]string, len(counts))
		for i := range counts {
			cats[i] = formatNumber(edges[i]) + " - " + formatNumber(edges[i+1])
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(w.globals(false)...)
		bar.SetXAxis(cats).AddSeries(name, barData(counts, a.colorOr(CycleColor(0))),
			charts.WithBarChartOpts(opts.BarChart{BarGap: "0%", BarCategoryGap: "0%"}))
		return bar, nil

	case KindPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(w.globals(true)...)
		items := make([]opts.PieData, len(a.Values))
		for i, v := range a.Values {
			face := CycleColor(i)
			if len(a.Colors) > 0 {
				face = a.Colors[i%len(a.Colors)]
			}
			items[i] = opts.PieData{Name: a.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: face.Hex()}}
		}
		pie.AddSeries(name, items, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
		return pie, nil

	case KindBox:
		box := charts.NewBoxPlot()
		box.SetGlobalOptions(w.globals(false)...)
		items := make([]opts.BoxPlotData, len(a.Groups))
		for i, g := range a.Groups {
			s := ComputeBoxStats(g)
			items[i] = opts.BoxPlotData{Name: a.Labels[i], Value: []float64{s.WhiskerLo, s.Q1, s.Median, s.Q3, s.WhiskerHi}}
		}
		box.SetXAxis(a.Labels).AddSeries(name, items)
		return box, nil

	case KindHeatmap:
		hm := charts.NewHeatMap()
		lo, hi, _ := finiteRange(a.Grid...)
		cm, _ := LookupColormap(a.Cmap)
		hm.SetGlobalOptions(append(w.globals(false),
			charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: indexLabels(len(a.Grid))}),
			charts.WithVisualMapOpts(opts.VisualMap{
				Calculable: opts.Bool(true),
				Min:        float32(lo),
				Max:        float32(hi),
				InRange:    &opts.VisualMapInRange{Color: cm.Hexes(9)},
			}),
		)...)
		var items []opts.HeatMapData
		for r, row := range a.Grid {
			for c, v := range row {
				items = append(items, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
			}
		}
		hm.SetXAxis(indexLabels(len(a.Grid[0]))).AddSeries(name, items)
		return hm, nil

	case KindScatter:
		sc := charts.NewScatter()
		sc.SetGlobalOptions(append(w.globals(false), charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)
		sc.AddSeries(name, scatterPoints(a.X, a.Y), charts.WithItemStyleOpts(opts.ItemStyle{Color: a.colorOr(CycleColor(0)).Hex()}))
		return sc, nil

	case KindErrorBar:
		sc := charts.NewScatter()
		sc.SetGlobalOptions(append(w.globals(false), charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)
		color := a.colorOr(CycleColor(0)).Hex()
		sc.AddSeries(name, scatterPoints(a.X, a.Y), charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		for i := range a.X {
			sc.Overlap(errorSegment("yerr", color, a.X[i], a.Y[i]-a.YErr[i], a.X[i], a.Y[i]+a.YErr[i]))
			if a.XErr != nil {
				sc.Overlap(errorSegment("xerr", color, a.X[i]-a.XErr[i], a.Y[i], a.X[i]+a.XErr[i], a.Y[i]))
			}
		}
		return sc, nil

	case KindPolar:
		xs, ys := PolarToCartesian(a.Theta, a.R)
		line := charts.NewLine()
		line.SetGlobalOptions(append(w.globals(false),
			charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		)...)
		data := make([]opts.LineData, len(xs))
		for i := range xs {
			data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
		}
		line.AddSeries(name, data, charts.WithLineStyleOpts(opts.LineStyle{Color: a.Color.Hex(), Width: float32(a.LineWidth)}))
		return line, nil

	case KindSurface:
		ax := fig.Ax()
		s := ax.Surfaces[0]
		cm, _ := LookupColormap(a.Cmap)
		surf := charts.NewSurface3D()
		surf.SetGlobalOptions(append(w.globals(false),
			charts.WithVisualMapOpts(opts.VisualMap{
				Calculable: opts.Bool(true),
				Min:        float32(s.ZMin),
				Max:        float32(s.ZMax),
				InRange:    &opts.VisualMapInRange{Color: cm.Hexes(9)},
			}),
		)...)
		var items []opts.Chart3DData
		for r, row := range s.Z {
			for c, z := range row {
				items = append(items, opts.Chart3DData{Value: []interface{}{s.X[c], s.Y[r], z}})
			}
		}
		surf.AddSeries(name, items)
		return surf, nil
	}
	return nil, fmt.Errorf("%w: html for %s", ErrUnsupportedFormat, fig.Kind)
}

func lineData(vals []float64) []opts.LineData {
	out := make([]opts.LineData, len(vals))
	for i, v := range vals {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func barData(vals []float64, c Color) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: c.Hex()}}
	}
	return out
}

func scatterValues(vals []float64) []opts.ScatterData {
	out := make([]opts.ScatterData, len(vals))
	for i, v := range vals {
		out[i] = opts.ScatterData{Value: v, SymbolSize: 8}
	}
	return out
}

func scatterPoints(xs, ys []float64) []opts.ScatterData {
	out := make([]opts.ScatterData, len(xs))
	for i := range xs {
		out[i] = opts.ScatterData{Value: []interface{}{xs[i], ys[i]}, SymbolSize: 8}
	}
	return out
}

func indexLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = formatNumber(float64(i))
	}
	return out
}

// errorSegment is a two-point line drawn over an error bar chart.
func errorSegment(name, color string, x0, y0, x1, y1 float64) *charts.Line {
	seg := charts.NewLine()
	seg.AddSeries(name, []opts.LineData{
		{Value: []interface{}{x0, y0}},
		{Value: []interface{}{x1, y1}},
	}, charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1.5}))
	return seg
}

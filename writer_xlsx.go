package gochart

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const dataSheet = "Data"

// XLSXWriter writes the chart data to a workbook with a native Excel chart
// where Excel has an equivalent one.
type XLSXWriter struct {
	figure *Figure
}

// Save writes the workbook to a file.
func (w *XLSXWriter) Save(path string) error { return saveFile(path, w.WriteTo) }

// WriteTo writes the workbook to a writer.
func (w *XLSXWriter) WriteTo(out io.Writer) error {
	f, err := w.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// sheetTable accumulates rows of the data sheet.
type sheetTable struct {
	header []any
	rows   [][]any
}

func (t *sheetTable) add(row ...any) { t.rows = append(t.rows, row) }

// ref returns an absolute range of column col over the data rows.
func (t *sheetTable) ref(col int) string {
	from, _ := excelize.CoordinatesToCellName(col, 2, true)
	to, _ := excelize.CoordinatesToCellName(col, len(t.rows)+1, true)
	return fmt.Sprintf("%s!%s:%s", dataSheet, from, to)
}

func (t *sheetTable) write(f *excelize.File) error {
	for i, row := range append([][]any{t.header}, t.rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *XLSXWriter) build() (*excelize.File, error) {
	fig := w.figure
	a := fig.Args
	if a == nil {
		return nil, fmt.Errorf("figure %s carries no data", fig.ID)
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		f.Close()
		return nil, err
	}

	t := &sheetTable{}
	var chart *excelize.Chart
	single := func(typ excelize.ChartType, name string) *excelize.Chart {
		return &excelize.Chart{
			Type:   typ,
			Series: []excelize.ChartSeries{{Name: name, Categories: t.ref(1), Values: t.ref(2)}},
		}
	}

	switch fig.Kind {
	case KindLine, KindArea, KindStem, KindBar, KindPie:
		t.header = []any{"label", "value"}
		for i, v := range a.Values {
			t.add(a.Labels[i], v)
		}
		typ := map[Kind]excelize.ChartType{
			KindLine: excelize.Line, KindArea: excelize.Area, KindStem: excelize.Col,
			KindBar: excelize.Col, KindPie: excelize.Pie,
		}[fig.Kind]
		if fig.Kind == KindBar && a.Horizontal {
			typ = excelize.Bar
		}
		chart = single(typ, "value")

	case KindHistogram:
		counts, edges := Histogram(a.Values, a.Bins, a.Density)
		t.header = []any{"bin_start", "bin_end", "count"}
		for i, c := range counts {
			t.add(edges[i], edges[i+1], c)
		}
		chart = &excelize.Chart{
			Type:   excelize.Col,
			Series: []excelize.ChartSeries{{Name: "count", Categories: t.ref(1), Values: t.ref(3)}},
		}

	case KindStackedBar:
		t.header = []any{"label"}
		for j := 0; j < a.Depth(); j++ {
			t.header = append(t.header, a.SeriesName(j))
		}
		for i, g := range a.Groups {
			row := []any{a.Labels[i]}
			for _, v := range g {
				row = append(row, v)
			}
			t.add(row...)
		}
		chart = &excelize.Chart{Type: excelize.ColStacked}
		for j := 0; j < a.Depth(); j++ {
			chart.Series = append(chart.Series, excelize.ChartSeries{
				Name: a.SeriesName(j), Categories: t.ref(1), Values: t.ref(j + 2),
			})
		}

	case KindBox:
		t.header = []any{"label", "whisker_lo", "q1", "median", "q3", "whisker_hi", "n"}
		for i, g := range a.Groups {
			s := ComputeBoxStats(g)
			t.add(a.Labels[i], s.WhiskerLo, s.Q1, s.Median, s.Q3, s.WhiskerHi, len(g))
		}

	case KindScatter, KindErrorBar:
		t.header = []any{"x", "y"}
		if fig.Kind == KindErrorBar {
			t.header = append(t.header, "yerr")
			if a.XErr != nil {
				t.header = append(t.header, "xerr")
			}
		}
		for i := range a.X {
			row := []any{a.X[i], a.Y[i]}
			if fig.Kind == KindErrorBar {
				row = append(row, a.YErr[i])
				if a.XErr != nil {
					row = append(row, a.XErr[i])
				}
			}
			t.add(row...)
		}
		chart = single(excelize.Scatter, "y")

	case KindPolar:
		xs, ys := PolarToCartesian(a.Theta, a.R)
		t.header = []any{"theta", "r", "x", "y"}
		for i := range a.Theta {
			t.add(a.Theta[i], a.R[i], xs[i], ys[i])
		}
		chart = &excelize.Chart{
			Type:   excelize.Scatter,
			Series: []excelize.ChartSeries{{Name: "r", Categories: t.ref(3), Values: t.ref(4)}},
		}

	case KindHeatmap, KindSurface:
		return w.buildGrid(f, t)

	default:
		f.Close()
		return nil, fmt.Errorf("%w: xlsx for %s", ErrUnsupportedFormat, fig.Kind)
	}

	if err := t.write(f); err != nil {
		f.Close()
		return nil, err
	}
	if chart != nil {
		chart.Title = []excelize.RichTextRun{{Text: fig.Title()}}
		anchor, _ := excelize.CoordinatesToCellName(len(t.header)+2, 2)
		if err := f.AddChart(dataSheet, anchor, chart); err != nil {
			f.Close()
			return nil, fmt.Errorf("add chart: %w", err)
		}
	}
	return f, nil
}

// buildGrid lays a 2-D grid out with column coordinates in the first row
// and row coordinates in the first column.
func (w *XLSXWriter) buildGrid(f *excelize.File, t *sheetTable) (*excelize.File, error) {
	fig := w.figure
	a := fig.Args
	xs := positions(len(a.Grid[0]))
	ys := positions(len(a.Grid))
	if fig.Kind == KindSurface {
		s := fig.Ax().Surfaces[0]
		xs, ys = s.X, s.Y
	}
	t.header = []any{""}
	for _, x := range xs {
		t.header = append(t.header, x)
	}
	for r, row := range a.Grid {
		line := []any{ys[r]}
		for _, v := range row {
			line = append(line, v)
		}
		t.add(line...)
	}
	if err := t.write(f); err != nil {
		f.Close()
		return nil, err
	}

	cols := len(xs)
	first, _ := excelize.CoordinatesToCellName(2, 2)
	last, _ := excelize.CoordinatesToCellName(cols+1, len(ys)+1)
	if fig.Kind == KindHeatmap {
		cm, _ := LookupColormap(a.Cmap)
		hexes := cm.Hexes(3)
		err := f.SetConditionalFormat(dataSheet, first+":"+last, []excelize.ConditionalFormatOptions{{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MidType:  "percentile",
			MidValue: "50",
			MaxType:  "max",
			MinColor: hexes[0],
			MidColor: hexes[1],
			MaxColor: hexes[2],
		}})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("set color scale: %w", err)
		}
		return f, nil
	}

	chart := &excelize.Chart{
		Type:  excelize.Surface3D,
		Title: []excelize.RichTextRun{{Text: fig.Title()}},
	}
	headFrom, _ := excelize.CoordinatesToCellName(2, 1, true)
	headTo, _ := excelize.CoordinatesToCellName(cols+1, 1, true)
	for r := range ys {
		from, _ := excelize.CoordinatesToCellName(2, r+2, true)
		to, _ := excelize.CoordinatesToCellName(cols+1, r+2, true)
		name, _ := excelize.CoordinatesToCellName(1, r+2, true)
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       dataSheet + "!" + name,
			Categories: dataSheet + "!" + headFrom + ":" + headTo,
			Values:     dataSheet + "!" + from + ":" + to,
		})
	}
	anchor, _ := excelize.CoordinatesToCellName(cols+3, 2)
	if err := f.AddChart(dataSheet, anchor, chart); err != nil {
		f.Close()
		return nil, fmt.Errorf("add chart: %w", err)
	}
	return f, nil
}

package gochart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ExportData returns the arrays a figure was drawn from, keyed the way the
// companion data files name them. Category labels that all parse as numbers
// are exported as numbers.
func ExportData(fig *Figure, chartType string, version int) map[string]any {
	if chartType == "" {
		chartType = fig.Kind.FileStem()
	}
	out := map[string]any{"chart_type": chartType, "version": version}
	a := fig.Args
	if a == nil {
		return out
	}
	switch fig.Kind {
	case KindLine, KindBar, KindArea, KindStem:
		out["x"] = axisValues(a.Labels)
		out["y"] = a.Values
	case KindPie:
		out["data"] = a.Values
		out["labels"] = a.Labels
	case KindScatter:
		out["x"] = a.X
		out["y"] = a.Y
	case KindHistogram:
		counts, edges := Histogram(a.Values, a.Bins, a.Density)
		out["data"] = a.Values
		out["counts"] = counts
		out["bins"] = edges
	case KindBox:
		out["data"] = a.Groups
	case KindHeatmap:
		out["data"] = a.Grid
	case KindStackedBar:
		out["x"] = axisValues(a.Labels)
		for j := 0; j < a.Depth(); j++ {
			out[fmt.Sprintf("y%d", j+1)] = Layer(a.Groups, j)
		}
	case KindPolar:
		out["theta"] = a.Theta
		out["r"] = a.R
	case KindErrorBar:
		out["x"] = a.X
		out["y"] = a.Y
		out["yerr"] = a.YErr
		if a.XErr != nil {
			out["xerr"] = a.XErr
		}
	case KindSurface:
		s := fig.Ax().Surfaces[0]
		out["x"] = s.X
		out["y"] = s.Y
		out["z"] = s.Z
	}
	return out
}

func axisValues(labels []string) any {
	nums := make([]float64, len(labels))
	for i, l := range labels {
		v, err := strconv.ParseFloat(l, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return labels
		}
		nums[i] = v
	}
	return nums
}

// WriteData writes ExportData as indented JSON. Non-finite values, such as
// masked heatmap cells, are written as null.
func WriteData(w io.Writer, fig *Figure, chartType string, version int) error {
	data := ExportData(fig, chartType, version)
	for k, v := range data {
		data[k] = nullable(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	return nil
}

// SaveData writes ExportData to path, creating its directory as needed.
func SaveData(fig *Figure, path, chartType string, version int) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteData(w, fig, chartType, version)
	})
}

// nullable replaces non-finite numbers with nil so encoding/json accepts
// them. Slices without such numbers are returned unchanged.
func nullable(v any) any {
	switch vs := v.(type) {
	case []float64:
		if !finite(vs...) {
			out := make([]any, len(vs))
			for i, x := range vs {
				if finite(x) {
					out[i] = x
				}
			}
			return out
		}
	case [][]float64:
		out := make([]any, len(vs))
		for i, row := range vs {
			out[i] = nullable(row)
		}
		return out
	}
	return v
}

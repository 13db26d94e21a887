package gallery

import (
	"math"
	"strconv"

	"github.com/VantageDataChat/GoChart"
)

// Sample is one chart of the versioned sample set.
type Sample struct {
	// Name is the chart type recorded in the data file, e.g.
	// "horizontal_bar_chart". Output files are named <Name>_<Version>.
	Name    string
	Version int
	Request gochart.Request
}

// SampleVersions are the dataset sizes of the sample set: 1 is small and 2
// is large.
var SampleVersions = []int{1, 2}

// SampleRequests builds the versioned sample set from seed. Equal seeds
// yield identical requests.
func SampleRequests(seed uint64) []Sample {
	s := NewSampler(seed)
	var out []Sample
	add := func(name string, version int, req gochart.Request) {
		out = append(out, Sample{Name: name, Version: version, Request: req})
	}
	size := func(version, small, large int) int {
		if version == 1 {
			return small
		}
		return large
	}

	for _, v := range SampleVersions {
		x := Linspace(0, 10, size(v, 10, 100))
		add("line_chart", v, gochart.Request{
			Kind: gochart.KindLine, Title: "Line Chart",
			Data: apply(x, math.Sin), Labels: numberLabels(x),
		})
	}
	for _, v := range SampleVersions {
		x := arange(size(v, 5, 20))
		add("bar_chart", v, gochart.Request{
			Kind: gochart.KindBar, Title: "Bar Chart",
			Data: s.RandInt(1, 10, len(x)), Labels: numberLabels(x),
		})
	}
	for _, v := range SampleVersions {
		x := arange(size(v, 5, 20))
		add("horizontal_bar_chart", v, gochart.Request{
			Kind: gochart.KindBar, Title: "Horizontal Bar Chart", Horizontal: true,
			Data: s.RandInt(1, 10, len(x)), Labels: numberLabels(x),
		})
	}
	for _, v := range SampleVersions {
		data := s.RandInt(1, 10, size(v, 4, 8))
		labels := make([]string, len(data))
		for j := range labels {
			labels[j] = "Slice " + strconv.Itoa(j)
		}
		add("pie_chart", v, gochart.Request{
			Kind: gochart.KindPie, Title: "Pie Chart", Data: data, Labels: labels,
		})
	}
	for _, v := range SampleVersions {
		n := size(v, 10, 100)
		add("scatter_plot", v, gochart.Request{
			Kind: gochart.KindScatter, Title: "Scatter Plot",
			X: s.Uniform(0, 1, n), Y: s.Uniform(0, 1, n),
		})
	}
	for _, v := range SampleVersions {
		add("histogram", v, gochart.Request{
			Kind: gochart.KindHistogram, Title: "Histogram",
			Data: s.Normal(0, 1, size(v, 100, 1000)), Bins: 10,
		})
	}
	for _, v := range SampleVersions {
		groups := make([][]float64, 4)
		for j := range groups {
			groups[j] = s.Normal(0, 1, size(v, 10, 100))
		}
		add("box_plot", v, gochart.Request{
			Kind: gochart.KindBox, Title: "Box Plot",
			Data: groups, Labels: []string{"1", "2", "3", "4"},
		})
	}
	for _, v := range SampleVersions {
		x := Linspace(0, 10, size(v, 10, 100))
		add("area_chart", v, gochart.Request{
			Kind: gochart.KindArea, Title: "Area Chart",
			Data: apply(x, func(t float64) float64 { return math.Abs(math.Sin(t)) }), Labels: numberLabels(x),
		})
	}
	for _, v := range SampleVersions {
		x := arange(size(v, 10, 50))
		add("stem_plot", v, gochart.Request{
			Kind: gochart.KindStem, Title: "Stem Plot",
			Data: s.Uniform(0, 1, len(x)), Labels: numberLabels(x),
		})
	}
	for _, v := range SampleVersions {
		n := size(v, 5, 20)
		grid := make([][]float64, n)
		for r := range grid {
			grid[r] = s.Uniform(0, 1, n)
		}
		add("heatmap", v, gochart.Request{
			Kind: gochart.KindHeatmap, Title: "Heatmap", Data: grid, Cmap: "viridis",
		})
	}
	for _, v := range SampleVersions {
		x := arange(size(v, 5, 20))
		y1 := s.RandInt(1, 5, len(x))
		y2 := s.RandInt(1, 5, len(x))
		stacks := make([][]float64, len(x))
		for i := range stacks {
			stacks[i] = []float64{y1[i], y2[i]}
		}
		add("stacked_bar_chart", v, gochart.Request{
			Kind: gochart.KindStackedBar, Title: "Stacked Bar Chart",
			Data: stacks, Labels: numberLabels(x), Series: []string{"A", "B"},
		})
	}
	for _, v := range SampleVersions {
		theta := Linspace(0, 2*math.Pi, size(v, 10, 100))
		noise := s.Normal(0, 1, len(theta))
		r := make([]float64, len(theta))
		for i, t := range theta {
			r[i] = math.Abs(math.Sin(t) * (1 + 0.1*noise[i]))
		}
		add("polar_plot", v, gochart.Request{
			Kind: gochart.KindPolar, Title: "Polar Plot", Theta: theta, R: r,
		})
	}
	return out
}

func arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func apply(xs []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}

// numberLabels formats values with the shortest exact representation so
// exported data files read them back unchanged.
func numberLabels(xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return out
}

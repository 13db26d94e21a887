package gochart

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func requireClass(t *testing.T, err error, class ErrorClass, field string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T: %v", err, err)
	assert.Equal(t, class, ve.Class, "reason: %s", ve.Reason)
	if field != "" {
		assert.Equal(t, field, ve.Field)
	}
	if class == ClassType {
		assert.ErrorIs(t, err, ErrType)
		assert.NotErrorIs(t, err, ErrValue)
	} else {
		assert.ErrorIs(t, err, ErrValue)
		assert.NotErrorIs(t, err, ErrType)
	}
}

func TestValidate_BarScenario(t *testing.T) {
	args, err := Validate(Request{
		Kind:   KindBar,
		Data:   []int{5, 15, 25},
		Labels: []string{"First", "Second", "Third"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 15, 25}, args.Values)
	assert.Equal(t, []string{"First", "Second", "Third"}, args.Labels)
	assert.Equal(t, "Bar Chart", args.Title)
}

func TestValidate_TypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"string data", Request{Kind: KindBar, Data: "bad", Labels: []string{"A"}}, "data"},
		{"map data", Request{Kind: KindLine, Data: map[string]int{"a": 1}, Labels: []string{"A"}}, "data"},
		{"scalar data", Request{Kind: KindArea, Data: 3.5, Labels: []string{"A"}}, "data"},
		{"nil data", Request{Kind: KindStem, Labels: []string{"A"}}, "data"},
		{"string labels", Request{Kind: KindBar, Data: []int{1}, Labels: "A"}, "labels"},
		{"struct labels", Request{Kind: KindPie, Data: []int{1}, Labels: struct{}{}}, "labels"},
		{"non numeric element", Request{Kind: KindLine, Data: []any{1, "two"}, Labels: []string{"A", "B"}}, "data"},
		{"bool element", Request{Kind: KindBar, Data: []any{true}, Labels: []string{"A"}}, "data"},
		{"box not nested numbers", Request{Kind: KindBox, Data: []any{[]any{"x"}}, Labels: []string{"A"}}, "data"},
		{"heatmap string cell", Request{Kind: KindHeatmap, Data: [][]any{{1, "x"}}}, "data"},
		{"heatmap string", Request{Kind: KindHeatmap, Data: "grid"}, "data"},
		{"polar string theta", Request{Kind: KindPolar, Theta: "0", R: []float64{1}}, "theta"},
		{"scatter missing y", Request{Kind: KindScatter, X: []float64{1}}, "y"},
		{"histogram float bins", Request{Kind: KindHistogram, Data: []float64{1, 2}, Bins: 2.5}, "bins"},
		{"histogram string bins", Request{Kind: KindHistogram, Data: []float64{1, 2}, Bins: "10"}, "bins"},
		{"pie colors string", Request{Kind: KindPie, Data: []int{1}, Labels: []string{"A"}, Colors: "red"}, "colors"},
		{"pie colors numbers", Request{Kind: KindPie, Data: []int{1}, Labels: []string{"A"}, Colors: []int{1}}, "colors"},
		{"stacked series numbers", Request{Kind: KindStackedBar, Data: [][]int{{1}}, Labels: []string{"A"}, Series: []int{1}}, "series"},
		{"error bar yerr string", Request{Kind: KindErrorBar, X: []int{1}, Y: []int{1}, YErr: "0.1"}, "yerr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.req)
			requireClass(t, err, ClassType, tt.field)
		})
	}
}

func TestValidate_ValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"empty bar", Request{Kind: KindBar, Data: []int{}, Labels: []string{}}, "data"},
		{"length mismatch", Request{Kind: KindBar, Data: []int{1, 2}, Labels: []string{"A"}}, "labels"},
		{"line mismatch", Request{Kind: KindLine, Data: []int{1}, Labels: []string{"A", "B"}}, "labels"},
		{"pie all zero", Request{Kind: KindPie, Data: []int{0, 0}, Labels: []string{"A", "B"}}, "data"},
		{"pie negative", Request{Kind: KindPie, Data: []int{1, -1}, Labels: []string{"A", "B"}}, "data"},
		{"pie nan", Request{Kind: KindPie, Data: []float64{1, math.NaN()}, Labels: []string{"A", "B"}}, "data"},
		{"pie bad color", Request{Kind: KindPie, Data: []int{1}, Labels: []string{"A"}, Colors: []string{"nope"}}, "colors"},
		{"heatmap [[]]", Request{Kind: KindHeatmap, Data: [][]float64{{}}}, "data"},
		{"heatmap []", Request{Kind: KindHeatmap, Data: [][]float64{}}, "data"},
		{"heatmap 1-D", Request{Kind: KindHeatmap, Data: []float64{1, 2, 3}}, "data"},
		{"heatmap ragged", Request{Kind: KindHeatmap, Data: [][]float64{{1, 2}, {3}}}, "data"},
		{"heatmap 3-D", Request{Kind: KindHeatmap, Data: [][][]float64{{{1}}}}, "data"},
		{"heatmap cmap", Request{Kind: KindHeatmap, Data: [][]float64{{1}}, Cmap: "rainbowish"}, "cmap"},
		{"heatmap aspect", Request{Kind: KindHeatmap, Data: [][]float64{{1}}, Aspect: "-2"}, "aspect"},
		{"box flat", Request{Kind: KindBox, Data: []float64{1, 2}, Labels: []string{"A", "B"}}, "data"},
		{"box empty group", Request{Kind: KindBox, Data: [][]float64{{1}, {}}, Labels: []string{"A", "B"}}, "data"},
		{"stacked flat", Request{Kind: KindStackedBar, Data: []int{1, 2}, Labels: []string{"A", "B"}}, "data"},
		{"stacked ragged", Request{Kind: KindStackedBar, Data: [][]int{{1, 2}, {3}}, Labels: []string{"A", "B"}}, "data"},
		{"stacked series", Request{Kind: KindStackedBar, Data: [][]int{{1, 2}}, Labels: []string{"A"}, Series: []string{"s"}}, "series"},
		{"histogram zero bins", Request{Kind: KindHistogram, Data: []float64{1}, Bins: 0}, "bins"},
		{"histogram negative bins", Request{Kind: KindHistogram, Data: []float64{1}, Bins: -3}, "bins"},
		{"histogram empty", Request{Kind: KindHistogram, Data: []float64{}}, "data"},
		{"histogram inf", Request{Kind: KindHistogram, Data: []float64{1, math.Inf(1)}}, "data"},
		{"line nan", Request{Kind: KindLine, Data: []float64{1, math.NaN(), 3}, Labels: []string{"a", "b", "c"}}, "data"},
		{"bar inf", Request{Kind: KindBar, Data: []float64{math.Inf(-1)}, Labels: []string{"a"}}, "data"},
		{"box nan", Request{Kind: KindBox, Data: [][]float64{{1, math.NaN()}}, Labels: []string{"a"}}, "data"},
		{"stacked inf", Request{Kind: KindStackedBar, Data: [][]float64{{1, math.Inf(1)}}, Labels: []string{"a"}}, "data"},
		{"polar nan radius", Request{Kind: KindPolar, Theta: []float64{0, 1}, R: []float64{1, math.NaN()}}, "r"},
		{"polar inf angle", Request{Kind: KindPolar, Theta: []float64{math.Inf(1)}, R: []float64{1}}, "theta"},
		{"scatter inf", Request{Kind: KindScatter, X: []float64{1, math.Inf(1)}, Y: []float64{1, 2}}, "x"},
		{"error bar inf", Request{Kind: KindErrorBar, X: []float64{1}, Y: []float64{1}, YErr: []float64{math.Inf(1)}}, "yerr"},
		{"error bar nan xerr", Request{Kind: KindErrorBar, X: []float64{1}, Y: []float64{1}, YErr: []float64{1}, XErr: []float64{math.NaN()}}, "xerr"},
		{"surface inf axis", Request{Kind: KindSurface, Data: [][]float64{{1, 2}}, X: []float64{0, math.Inf(1)}}, "x"},
		{"polar mismatch", Request{Kind: KindPolar, Theta: []float64{0, 1}, R: []float64{1}}, "r"},
		{"polar color", Request{Kind: KindPolar, Theta: []float64{0}, R: []float64{1}, Color: "notacolor"}, "color"},
		{"scatter mismatch", Request{Kind: KindScatter, X: []float64{1, 2}, Y: []float64{1}}, "y"},
		{"scatter marker", Request{Kind: KindScatter, X: []float64{1}, Y: []float64{1}, Marker: "@"}, "marker"},
		{"error bar negative", Request{Kind: KindErrorBar, X: []int{1}, Y: []int{1}, YErr: []float64{-1}}, "yerr"},
		{"error bar xerr mismatch", Request{Kind: KindErrorBar, X: []int{1}, Y: []int{1}, YErr: []int{1}, XErr: []int{1, 2}}, "xerr"},
		{"surface x", Request{Kind: KindSurface, Data: [][]float64{{1, 2}}, X: []float64{1}}, "x"},
		{"surface y", Request{Kind: KindSurface, Data: [][]float64{{1, 2}}, Y: []float64{1, 2}}, "y"},
		{"unknown kind", Request{Kind: Kind(99), Data: []int{1}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.req)
			if tt.req.Kind.Valid() {
				requireClass(t, err, ClassValue, tt.field)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownKind)
			assert.ErrorIs(t, err, ErrValue)
		})
	}
}

func TestValidate_PhaseOrder(t *testing.T) {
	// type beats length
	_, err := Validate(Request{Kind: KindBar, Data: []int{1, 2}, Labels: "A"})
	requireClass(t, err, ClassType, "labels")

	// length beats emptiness
	_, err = Validate(Request{Kind: KindBar, Data: []int{}, Labels: []string{"A"}})
	requireClass(t, err, ClassValue, "labels")

	// type beats heatmap shape
	_, err = Validate(Request{Kind: KindHeatmap, Data: [][]any{{1, 2}, {"x"}}})
	requireClass(t, err, ClassType, "data")

	// emptiness beats pie domain
	_, err = Validate(Request{Kind: KindPie, Data: []int{}, Labels: []string{}})
	requireClass(t, err, ClassValue, "data")
	assert.Contains(t, err.Error(), "empty")
}

func TestValidate_Defaults(t *testing.T) {
	args, err := Validate(Request{Kind: KindPolar, Theta: []float64{0, 1}, R: []float64{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, "Polar Plot", args.Title)
	assert.Equal(t, ColorBlue, args.Color)
	assert.Equal(t, 1.5, args.LineWidth)

	args, err = Validate(Request{Kind: KindHistogram, Data: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 10, args.Bins)

	args, err = Validate(Request{Kind: KindHeatmap, Data: [][]float64{{1, 2}}, Cmap: "Plasma", Title: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, "plasma", args.Cmap)
	assert.Equal(t, "auto", args.Aspect)
	assert.Equal(t, "Mine", args.Title)
}

func TestValidate_ScalarDefaultsBeforeDomain(t *testing.T) {
	args, err := Validate(Request{Kind: KindHistogram, Data: []float64{1, 2, 3}, Density: true})
	require.NoError(t, err)
	assert.Equal(t, 10, args.Bins)
	assert.True(t, args.Density)

	args, err = Validate(Request{Kind: KindHistogram, Data: []float64{1, 2, 3}, Bins: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, args.Bins, "explicit bins beat the default")

	_, err = Validate(Request{Kind: KindHistogram, Data: []float64{1, 2, 3}, Bins: 0})
	requireClass(t, err, ClassValue, "bins")

	fig, err := New(Request{Kind: KindHistogram, Data: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.Len(t, fig.Ax().Patches, 10)
}

func TestValidate_NonFiniteGrids(t *testing.T) {
	fig, err := New(Request{Kind: KindHeatmap, Data: [][]float64{{1, math.NaN()}, {3, 4}}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, fig.Ax().Images[0].VMin)
	assert.Equal(t, 4.0, fig.Ax().Images[0].VMax)

	var buf bytes.Buffer
	require.NoError(t, WriteData(&buf, fig, "heatmap", 1))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{[]any{1.0, nil}, []any{3.0, 4.0}}, decoded["data"])

	buf.Reset()
	require.NoError(t, Write(&buf, fig, FormatPNG, &RenderOptions{DPI: 40}))
}

func TestValidate_Coercion(t *testing.T) {
	args, err := Validate(Request{
		Kind:   KindLine,
		Data:   [3]int8{1, 2, 3},
		Labels: []any{2020, 2021.5, "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, args.Values)
	assert.Equal(t, []string{"2020", "2021.5", "x"}, args.Labels)

	args, err = Validate(Request{Kind: KindHistogram, Data: []float64{1, 2}, Bins: 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4, args.Bins)
}

func TestValidate_DecodedRequests(t *testing.T) {
	var fromJSON Request
	require.NoError(t, json.Unmarshal([]byte(`{
		"kind": "stacked_bar",
		"data": [[1, 2], [3, 4]],
		"labels": ["Q1", "Q2"],
		"series": ["North", "South"]
	}`), &fromJSON))
	args, err := Validate(fromJSON)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, args.Groups)
	assert.Equal(t, []string{"North", "South"}, args.Series)

	var fromYAML Request
	require.NoError(t, yaml.Unmarshal([]byte("kind: histogram\ndata: [1, 2, 3]\nbins: 3\n"), &fromYAML))
	args, err = Validate(fromYAML)
	require.NoError(t, err)
	assert.Equal(t, 3, args.Bins)

	var bad Request
	require.NoError(t, json.Unmarshal([]byte(`{"kind": "bar", "data": "bad", "labels": ["A"]}`), &bad))
	_, err = Validate(bad)
	requireClass(t, err, ClassType, "data")
}

func TestValidationError_Message(t *testing.T) {
	_, err := Validate(Request{Kind: KindBar, Data: []int{1, 2}, Labels: []string{"A"}})
	require.Error(t, err)
	assert.Equal(t, "bar chart: value error on labels: data and labels must have the same length (2 != 1)", err.Error())
}

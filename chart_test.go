package gochart

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_ParseAndNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.DefaultTitle())
		assert.NotEmpty(t, k.FileStem())
	}
	assert.Len(t, Kinds(), 13)

	k, err := ParseKind("Stacked-Bar")
	require.NoError(t, err)
	assert.Equal(t, KindStackedBar, k)
	k, err = ParseKind("boxplot")
	require.NoError(t, err)
	assert.Equal(t, KindBox, k)

	_, err = ParseKind("donut")
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.Equal(t, "Stacked Bar", KindStackedBar.DisplayName())
	assert.Equal(t, "box_plot", KindBox.FileStem())
	assert.Equal(t, "3D Surface Plot", KindSurface.DefaultTitle())

	b, err := json.Marshal(KindErrorBar)
	require.NoError(t, err)
	assert.Equal(t, `"error_bar"`, string(b))
}

func TestNew_BarScenario(t *testing.T) {
	fig, err := New(Request{
		Kind:   KindBar,
		Data:   []float64{5, 15, 25},
		Labels: []string{"First", "Second", "Third"},
	})
	require.NoError(t, err)
	ax := fig.Ax()
	require.Len(t, ax.Patches, 3)
	assert.Equal(t, []string{"First", "Second", "Third"}, ax.XTickLabels())
	assert.Equal(t, "Bar Chart", fig.Title())
	for i, want := range []float64{5, 15, 25} {
		assert.Equal(t, want, ax.Patches[i].Height)
		assert.Equal(t, 0.0, ax.Patches[i].Y)
	}
}

func TestNew_NothingRenderedOnFailure(t *testing.T) {
	fig, err := New(Request{Kind: KindBar, Data: []int{1, 2}, Labels: []string{"A"}})
	assert.Nil(t, fig)
	assert.ErrorIs(t, err, ErrValue)

	assert.Panics(t, func() { MustNew(Request{Kind: KindPie, Data: "bad"}) })
}

func TestNew_TitleAndLabelRoundTrip(t *testing.T) {
	labels := []string{"zeta", "alpha", "mu", "beta"}
	data := []int{4, 3, 2, 1}
	for _, kind := range []Kind{KindLine, KindBar, KindArea, KindStem} {
		t.Run(kind.String(), func(t *testing.T) {
			fig, err := New(Request{Kind: kind, Title: "Custom", Data: data, Labels: labels})
			require.NoError(t, err)
			assert.Equal(t, "Custom", fig.Title())
			assert.Equal(t, labels, fig.Ax().XTickLabels())

			fig, err = New(Request{Kind: kind, Data: data, Labels: labels})
			require.NoError(t, err)
			assert.Equal(t, kind.DefaultTitle(), fig.Title())
		})
	}
}

func TestNew_StructureIsIdempotent(t *testing.T) {
	req := Request{Kind: KindStackedBar, Data: [][]int{{1, 2}, {3, 4}, {5, 6}}, Labels: []string{"a", "b", "c"}}
	first := MustNew(req)
	second := MustNew(req)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Ax().ArtistCount(), second.Ax().ArtistCount())
	assert.Equal(t, first.Ax().XTickLabels(), second.Ax().XTickLabels())
	assert.Equal(t, first.Ax().Legend.Labels(), second.Ax().Legend.Labels())
}

func TestRender_PerKind(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindLine, Data: []int{1, 3, 2}, Labels: []string{"a", "b", "c"}, Color: "r", LineWidth: 2})
		ax := fig.Ax()
		require.Len(t, ax.Lines, 1)
		assert.Equal(t, []float64{1, 3, 2}, ax.Lines[0].Y)
		assert.Equal(t, ColorRed, ax.Lines[0].Color)
		assert.Equal(t, 2.0, ax.Lines[0].Width)
	})

	t.Run("horizontal bar", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindBar, Data: []int{1, 2}, Labels: []string{"a", "b"}, Horizontal: true})
		ax := fig.Ax()
		assert.Equal(t, []string{"a", "b"}, ax.YTickLabels())
		assert.True(t, ax.YAxis.Inverted)
		assert.Equal(t, 2.0, ax.Patches[1].Width)
	})

	t.Run("pie", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindPie, Data: []int{1, 1, 2}, Labels: []string{"A", "B", "C"}, Colors: []string{"red", "#00f"}})
		ax := fig.Ax()
		require.Len(t, ax.Patches, 3)
		assert.Equal(t, 360.0, ax.Patches[2].Theta2)
		assert.Equal(t, ColorRed, ax.Patches[0].FaceColor)
		assert.Equal(t, ColorBlue, ax.Patches[1].FaceColor)
		assert.Equal(t, ColorRed, ax.Patches[2].FaceColor)
		require.Len(t, ax.Texts, 6)
		assert.Equal(t, "A", ax.Texts[0].Text)
		assert.Equal(t, "25.0%", ax.Texts[1].Text)
		assert.Equal(t, "50.0%", ax.Texts[5].Text)
		assert.Equal(t, "equal", ax.Aspect)
	})

	t.Run("box", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindBox, Data: [][]float64{{1, 2, 3, 4, 100}, {2, 3}}, Labels: []string{"g1", "g2"}})
		ax := fig.Ax()
		assert.Len(t, ax.Lines, 14)
		assert.Equal(t, []string{"g1", "g2"}, ax.XTickLabels())
		assert.Equal(t, []float64{100}, ax.Lines[6].Y)
	})

	t.Run("heatmap", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindHeatmap, Data: [][]float64{{1, 2, 3}, {4, 5, 6}}})
		ax := fig.Ax()
		require.Len(t, ax.Images, 1)
		assert.Equal(t, 1.0, ax.Images[0].VMin)
		assert.Equal(t, 6.0, ax.Images[0].VMax)
		assert.Equal(t, "viridis", ax.Images[0].Cmap)
		require.NotNil(t, ax.Colorbar)
		assert.Equal(t, []string{"0", "1", "2"}, ax.XTickLabels())
	})

	t.Run("polar", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindPolar, Theta: []float64{0, math.Pi / 2}, R: []float64{1, 2}})
		ax := fig.Ax()
		assert.Equal(t, ProjectionPolar, ax.Projection)
		require.Len(t, ax.Lines, 1)
		assert.Equal(t, ColorBlue, ax.Lines[0].Color)
		assert.Equal(t, 1.5, ax.Lines[0].Width)
		assert.Equal(t, "0°", ax.XTickLabels()[0])
		assert.Len(t, ax.XTickLabels(), 8)
	})

	t.Run("histogram", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindHistogram, Data: []float64{1, 2, 2, 3, 3, 3}, Bins: 3})
		ax := fig.Ax()
		require.Len(t, ax.Patches, 3)
		assert.Equal(t, []float64{1, 2, 3}, []float64{ax.Patches[0].Height, ax.Patches[1].Height, ax.Patches[2].Height})
	})

	t.Run("scatter with cmap", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindScatter, X: []float64{1, 2, 3}, Y: []float64{3, 1, 2}, Cmap: "plasma"})
		ax := fig.Ax()
		require.Len(t, ax.Collections, 1)
		assert.Len(t, ax.Collections[0].Colors, 3)
		require.NotNil(t, ax.Colorbar)
	})

	t.Run("stacked bar", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindStackedBar, Data: [][]int{{1, 2}, {3, 4}}, Labels: []string{"a", "b"}, Series: []string{"low", "high"}})
		ax := fig.Ax()
		require.Len(t, ax.Patches, 4)
		assert.Equal(t, []string{"low", "high"}, ax.Legend.Labels())
		assert.Equal(t, 3.0, ax.Patches[3].Y)
		assert.Equal(t, []float64{3, 7}, StackTotals([][]float64{{1, 2}, {3, 4}}))
	})

	t.Run("area", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindArea, Data: []int{1, 2}, Labels: []string{"a", "b"}})
		ax := fig.Ax()
		require.Len(t, ax.Collections, 1)
		assert.Equal(t, CollectionFill, ax.Collections[0].Kind)
		assert.Equal(t, 0.5, ax.Collections[0].Alpha)
	})

	t.Run("stem", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindStem, Data: []int{1, -2, 3}, Labels: []string{"a", "b", "c"}})
		ax := fig.Ax()
		require.Len(t, ax.Collections, 1)
		assert.Len(t, ax.Collections[0].Segments, 3)
		assert.Len(t, ax.Lines, 2)
	})

	t.Run("error bar", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindErrorBar, X: []int{1, 2}, Y: []int{3, 4}, YErr: []float64{0.5, 1}, XErr: []float64{0.1, 0.1}})
		ax := fig.Ax()
		require.Len(t, ax.Collections, 2)
		assert.Equal(t, [2]Point{{1, 2.5}, {1, 3.5}}, ax.Collections[0].Segments[0])
	})

	t.Run("surface", func(t *testing.T) {
		fig := MustNew(Request{Kind: KindSurface, Data: [][]float64{{0, 1}, {2, 3}, {4, 5}}})
		ax := fig.Ax()
		assert.Equal(t, Projection3D, ax.Projection)
		require.Len(t, ax.Surfaces, 1)
		assert.Equal(t, []float64{0, 1}, ax.Surfaces[0].X)
		assert.Equal(t, []float64{0, 1, 2}, ax.Surfaces[0].Y)
		assert.Equal(t, 5.0, ax.Surfaces[0].ZMax)
	})
}

func TestStatistics(t *testing.T) {
	s := ComputeBoxStats([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 4.0, s.Q3)
	assert.Empty(t, s.Fliers)

	counts, edges := Histogram([]float64{0, 0.5, 1}, 2, false)
	assert.Equal(t, []float64{1, 2}, counts)
	assert.Equal(t, []float64{0, 0.5, 1}, edges)

	density, _ := Histogram([]float64{0, 0.5, 1}, 2, true)
	assert.InDelta(t, 1.0, (density[0]+density[1])*0.5, 1e-12)

	counts, edges = Histogram([]float64{7, 7}, 1, false)
	assert.Equal(t, []float64{2}, counts)
	assert.Equal(t, []float64{6.5, 7.5}, edges)
}

func TestColors(t *testing.T) {
	c, err := ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, ColorRed, c)
	c, err = ParseColor("C1")
	require.NoError(t, err)
	assert.Equal(t, "#FF7F0E", c.Hex())
	c, err = ParseColor("#11223380")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.GetAlpha())
	_, err = ParseColor("nope")
	assert.Error(t, err)

	for spec, want := range map[string]string{
		"navy":           "#000080",
		"rgb(255, 0, 0)": "#FF0000",
		"tab:orange":     "#FF7F0E",
		"k":              "#000000",
	} {
		c, err := ParseColor(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, want, c.Hex(), spec)
	}
	for _, spec := range []string{"", "bad", "f00", "#ggg"} {
		_, err := ParseColor(spec)
		assert.Error(t, err, spec)
	}

	cm, ok := LookupColormap("viridis_r")
	require.True(t, ok)
	assertNearColor(t, NewColor("FFFDE725"), cm.At(0))
	assertNearColor(t, NewColor("FF440154"), cm.At(1))
	assert.Equal(t, uint8(0), cm.At(math.NaN()).GetAlpha())
	assert.Equal(t, cm.At(1), cm.At(7), "t is clamped")

	cm, ok = LookupColormap("coolwarm")
	require.True(t, ok)
	assertNearColor(t, NewColor("FF3B4CC0"), cm.Map(-1e300, -1e300, 1e300))
	assertNearColor(t, NewColor("FFB40426"), cm.Map(math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64))

	_, ok = LookupColormap("jet")
	assert.False(t, ok)
}

func assertNearColor(t *testing.T, want, got Color) {
	t.Helper()
	assert.InDelta(t, want.GetRed(), got.GetRed(), 3, "red of %s", got.Hex())
	assert.InDelta(t, want.GetGreen(), got.GetGreen(), 3, "green of %s", got.Hex())
	assert.InDelta(t, want.GetBlue(), got.GetBlue(), 3, "blue of %s", got.Hex())
}

func TestStatistics_Overflow(t *testing.T) {
	maxF := math.MaxFloat64
	counts, edges := Histogram([]float64{-maxF, maxF}, 3, false)
	assert.Equal(t, []float64{1, 0, 1}, counts)
	require.Len(t, edges, 4)
	assert.Equal(t, -maxF, edges[0])
	assert.Equal(t, maxF, edges[3])
	assert.True(t, finite(edges...))

	density, _ := Histogram([]float64{-maxF, maxF}, 3, true)
	assert.True(t, finite(density...))
	assert.Positive(t, density[0])

	s := ComputeBoxStats([]float64{-maxF, maxF})
	assert.InEpsilon(t, -maxF/2, s.Q1, 1e-12)
	assert.Equal(t, 0.0, s.Median)
	assert.InEpsilon(t, maxF/2, s.Q3, 1e-12)

	assert.Equal(t, []float64{0.5, 0.5}, PieFractions([]float64{maxF, maxF}))
	assert.Equal(t, []float64{0.25, 0.75}, PieFractions([]float64{1, 3}))
	assert.Equal(t, []float64{0, 0}, PieFractions([]float64{0, 0}))
	assert.Empty(t, PieFractions(nil))
}

func TestNew_OverflowingSpans(t *testing.T) {
	maxF := math.MaxFloat64

	fig := MustNew(Request{Kind: KindHistogram, Data: []float64{-maxF, maxF}, Bins: 3})
	ax := fig.Ax()
	require.Len(t, ax.Patches, 3)
	for _, p := range ax.Patches {
		assert.True(t, finite(p.X, p.Width, p.Height))
	}
	assertFiniteAxis(t, ax.XAxis)
	_, err := fig.ToImage(&RenderOptions{DPI: 40})
	require.NoError(t, err)

	fig = MustNew(Request{Kind: KindPie, Data: []float64{maxF, maxF}, Labels: []string{"a", "b"}})
	ax = fig.Ax()
	require.Len(t, ax.Patches, 2)
	assert.Equal(t, 0.0, ax.Patches[0].Theta1)
	assert.Equal(t, 180.0, ax.Patches[0].Theta2)
	assert.Equal(t, 360.0, ax.Patches[1].Theta2)
	assert.Equal(t, "50.0%", ax.Texts[1].Text)
	assert.Equal(t, "50.0%", ax.Texts[3].Text)
	_, err = fig.ToImage(&RenderOptions{DPI: 40})
	require.NoError(t, err)
}

func assertFiniteAxis(t *testing.T, a Axis) {
	t.Helper()
	assert.True(t, finite(a.Min, a.Max), "limits %v..%v", a.Min, a.Max)
	require.NotEmpty(t, a.Ticks)
	for _, tk := range a.Ticks {
		assert.True(t, finite(tk.Value), "tick %v", tk.Value)
	}
}

func TestNew_ExtremeValues(t *testing.T) {
	maxF := math.MaxFloat64
	tests := []struct {
		name    string
		req     Request
		patches int
		lines   int
		yTicks  int // zero skips the exact count
		check   func(t *testing.T, ax *Axes)
	}{
		{
			name:    "histogram wide magnitudes",
			req:     Request{Kind: KindHistogram, Data: []float64{1e10, 1e12, 1e14}, Bins: 3},
			patches: 3,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, 2.0, ax.Patches[0].Height)
				assert.Equal(t, 1.0, ax.Patches[2].Height)
				assertFiniteAxis(t, ax.XAxis)
			},
		},
		{
			name:    "histogram negative",
			req:     Request{Kind: KindHistogram, Data: []float64{-5, -3, -1}, Bins: 2},
			patches: 2,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, -5.0, ax.Patches[0].X)
				assert.Equal(t, []float64{1, 2}, []float64{ax.Patches[0].Height, ax.Patches[1].Height})
			},
		},
		{
			name:    "histogram constant",
			req:     Request{Kind: KindHistogram, Data: []float64{0, 0, 0}, Bins: 3},
			patches: 3,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, -0.5, ax.Patches[0].X)
				assert.Equal(t, 3.0, ax.Patches[1].Height)
				assert.Equal(t, 0.0, ax.Patches[0].Height+ax.Patches[2].Height)
			},
		},
		{
			name:    "pie wide magnitudes",
			req:     Request{Kind: KindPie, Data: []float64{1e10, 1e12, 1e14}, Labels: []string{"a", "b", "c"}},
			patches: 3,
			check: func(t *testing.T, ax *Axes) {
				assert.InDelta(t, 360.0, ax.Patches[2].Theta2, 1e-9)
				assert.Equal(t, "99.0%", ax.Texts[5].Text)
			},
		},
		{
			name:  "box negative",
			req:   Request{Kind: KindBox, Data: [][]float64{{-5, -3, -1}, {-100, -2}}, Labels: []string{"a", "b"}},
			lines: 14,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, []float64{-3, -3}, ax.Lines[1].Y)
				assertFiniteAxis(t, ax.YAxis)
				assert.Less(t, ax.YAxis.Min, -100.0)
			},
		},
		{
			name:  "box extremes",
			req:   Request{Kind: KindBox, Data: [][]float64{{-maxF, 0, maxF}}, Labels: []string{"a"}},
			lines: 7,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, []float64{0, 0}, ax.Lines[1].Y)
				assertFiniteAxis(t, ax.YAxis)
			},
		},
		{
			name:   "polar negative radius",
			req:    Request{Kind: KindPolar, Theta: []float64{0, 1, 2}, R: []float64{-10, 0, 10}},
			lines:  1,
			yTicks: 5,
			check: func(t *testing.T, ax *Axes) {
				assert.Equal(t, -10.0, ax.YAxis.Min)
				assert.Equal(t, 10.0, ax.YAxis.Max)
				assert.Len(t, ax.XAxis.Ticks, 8)
			},
		},
		{
			name:  "line wide magnitudes",
			req:   Request{Kind: KindLine, Data: []float64{1e10, 1e12, 1e14}, Labels: []string{"a", "b", "c"}},
			lines: 1,
			check: func(t *testing.T, ax *Axes) {
				assertFiniteAxis(t, ax.YAxis)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := New(tt.req)
			require.NoError(t, err)
			ax := fig.Ax()
			assert.Len(t, ax.Patches, tt.patches)
			assert.Len(t, ax.Lines, tt.lines)
			if tt.yTicks > 0 {
				assert.Len(t, ax.YAxis.Ticks, tt.yTicks)
			}
			tt.check(t, ax)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, fig, FormatPNG, &RenderOptions{DPI: 40}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

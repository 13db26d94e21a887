package gochart

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type pieChart struct{}

func (pieChart) Kind() Kind { return KindPie }

func (pieChart) Constraints() Constraints { return pieConstraints }

// Render lays wedges out counterclockwise from the positive x axis. Each
// wedge carries its label outside the circle and its percentage inside.
func (pieChart) Render(a *Args) (*Figure, error) {
	fig := newFigure(a)
	ax := fig.Ax()
	ax.Aspect = "equal"
	ax.Frame = false
	ax.XAxis = Axis{Min: -1.25, Max: 1.25}
	ax.YAxis = Axis{Min: -1.25, Max: 1.25}

	start := 0.0
	for i, frac := range PieFractions(a.Values) {
		end := start + frac*360
		face := CycleColor(i)
		if len(a.Colors) > 0 {
			face = a.Colors[i%len(a.Colors)]
		}
		ax.Patches = append(ax.Patches, &Patch{
			Kind:      PatchWedge,
			Label:     a.Labels[i],
			FaceColor: face,
			Radius:    1,
			Theta1:    start,
			Theta2:    end,
		})
		mid := (start + end) / 2 * math.Pi / 180
		cos, sin := math.Cos(mid), math.Sin(mid)
		align := "left"
		if cos < 0 {
			align = "right"
		}
		ax.Texts = append(ax.Texts,
			&Text{X: 1.1 * cos, Y: 1.1 * sin, Text: a.Labels[i], HAlign: align},
			&Text{X: 0.6 * cos, Y: 0.6 * sin, Text: formatPercent(frac), HAlign: "center"},
		)
		start = end
	}
	return fig, nil
}

// PieFractions returns each value's share of the total. Values are scaled
// by their maximum first so sums beyond the float64 range still split
// correctly.
func PieFractions(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	m := floats.Max(values)
	if m <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / m
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

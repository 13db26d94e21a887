package gochart

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/mazznoer/colorgrad"
)

// Colormap maps a scalar in [0,1] to a color along a gradient.
type Colormap struct {
	Name     string
	grad     colorgrad.Gradient
	reversed bool
}

// customGradient builds a gradient for the maps colorgrad has no preset for.
func customGradient(hexes ...string) colorgrad.Gradient {
	g, err := colorgrad.NewGradient().HtmlColors(hexes...).Build()
	if err != nil {
		panic("gochart: bad colormap stops: " + err.Error())
	}
	return g
}

var colormaps = map[string]colorgrad.Gradient{
	"viridis":  colorgrad.Viridis(),
	"plasma":   colorgrad.Plasma(),
	"inferno":  colorgrad.Inferno(),
	"magma":    colorgrad.Magma(),
	"cividis":  colorgrad.Cividis(),
	"greys":    colorgrad.Greys(),
	"coolwarm": customGradient("#3B4CC0", "#6F92F3", "#AAC7FD", "#DDDDDD", "#F7B89C", "#E7745B", "#B40426"),
	"hot":      customGradient("#0B0000", "#FF0000", "#FFFF00", "#FFFFFF"),
}

// LookupColormap returns the named colormap. A "_r" suffix reverses it.
func LookupColormap(name string) (*Colormap, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	base, reversed := strings.CutSuffix(n, "_r")
	g, ok := colormaps[base]
	if !ok {
		return nil, false
	}
	return &Colormap{Name: n, grad: g, reversed: reversed}, true
}

// ColormapNames lists the supported colormaps in sorted order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// At returns the color for t in [0,1]. Values outside are clamped and NaN
// maps to transparent.
func (cm *Colormap) At(t float64) Color {
	if math.IsNaN(t) {
		return Color{ARGB: "00000000"}
	}
	t = math.Max(0, math.Min(1, t))
	if cm.reversed {
		t = 1 - t
	}
	r, g, b := cm.grad.At(t).Clamped().RGB255()
	return FromRGBA(color.NRGBA{R: r, G: g, B: b, A: 255})
}

// Map normalizes v into [lo,hi] and returns its color.
func (cm *Colormap) Map(v, lo, hi float64) Color {
	if hi == lo {
		return cm.At(0.5)
	}
	return cm.At(fraction(v, lo, hi))
}

// Colors samples n evenly spaced colors. It satisfies gonum's
// palette.Palette interface.
func (cm *Colormap) Colors() []color.Color {
	return cm.sample(64)
}

func (cm *Colormap) sample(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cm.At(float64(i) / float64(n-1)).RGBA()
	}
	return out
}

// Hexes samples n evenly spaced colors as "#RRGGBB" strings.
func (cm *Colormap) Hexes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = cm.At(float64(i) / float64(n-1)).Hex()
	}
	return out
}

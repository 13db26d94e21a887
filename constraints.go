package gochart

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Shape is the structural form a request field must take.
type Shape int

const (
	ShapeVector Shape = iota + 1 // flat numeric sequence
	ShapeNested                  // sequence of numeric sequences
	ShapeGrid                    // rectangular 2-D numeric grid
	ShapeLabels                  // sequence of labels
	ShapeNames                   // sequence of strings
	ShapeInt                     // integer scalar
)

func (s Shape) String() string {
	switch s {
	case ShapeVector:
		return "sequence of numbers"
	case ShapeNested:
		return "sequence of numeric sequences"
	case ShapeGrid:
		return "2-D grid of numbers"
	case ShapeLabels:
		return "sequence of labels"
	case ShapeNames:
		return "sequence of strings"
	case ShapeInt:
		return "integer"
	}
	return "unknown"
}

// FieldSpec declares one request field a kind reads.
type FieldSpec struct {
	Name     string
	Shape    Shape
	Required bool
}

// Rule is a domain check run after type, length and emptiness checks pass.
type Rule struct {
	Field  string
	Reason string
	Check  func(a *Args) bool
}

// Option names a kind may honor.
const (
	OptColor      = "color"
	OptLineWidth  = "linewidth"
	OptCmap       = "cmap"
	OptAspect     = "aspect"
	OptMarker     = "marker"
	OptHorizontal = "horizontal"
	OptDensity    = "density"
)

// Constraints is the declarative validation contract of a chart kind.
type Constraints struct {
	Fields   []FieldSpec
	Match    [][]string // groups of fields whose lengths must agree
	Rules    []Rule
	Options  []string
	Defaults Args
}

// Field returns the spec of the named field.
func (c Constraints) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Honors reports whether the kind reads the named option.
func (c Constraints) Honors(opt string) bool {
	for _, o := range c.Options {
		if o == opt {
			return true
		}
	}
	return false
}

func required(name string, shape Shape) FieldSpec {
	return FieldSpec{Name: name, Shape: shape, Required: true}
}

func optional(name string, shape Shape) FieldSpec {
	return FieldSpec{Name: name, Shape: shape}
}

func each(field, reason string, get func(*Args) []float64, ok func(float64) bool) Rule {
	return Rule{Field: field, Reason: reason, Check: func(a *Args) bool {
		for _, v := range get(a) {
			if !ok(v) {
				return false
			}
		}
		return true
	}}
}

// eachGroup applies ok to every value of every nested group.
func eachGroup(field, reason string, ok func(float64) bool) Rule {
	return Rule{Field: field, Reason: reason, Check: func(a *Args) bool {
		for _, g := range a.Groups {
			for _, v := range g {
				if !ok(v) {
					return false
				}
			}
		}
		return true
	}}
}

func isFinite(v float64) bool      { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func isNonNegative(v float64) bool { return v >= 0 }

func argValues(a *Args) []float64 { return a.Values }
func argYErr(a *Args) []float64   { return a.YErr }
func argXErr(a *Args) []float64   { return a.XErr }
func argX(a *Args) []float64      { return a.X }
func argY(a *Args) []float64      { return a.Y }
func argTheta(a *Args) []float64  { return a.Theta }
func argR(a *Args) []float64      { return a.R }

// seriesConstraints covers the kinds that plot one value per label.
func seriesConstraints(opts ...string) Constraints {
	return Constraints{
		Fields: []FieldSpec{
			required("data", ShapeVector),
			required("labels", ShapeLabels),
		},
		Match:   [][]string{{"data", "labels"}},
		Rules:   []Rule{each("data", "values must be finite", argValues, isFinite)},
		Options: opts,
	}
}

var (
	lineConstraints = seriesConstraints(OptColor, OptLineWidth, OptMarker)
	barConstraints  = seriesConstraints(OptColor, OptHorizontal)
	areaConstraints = seriesConstraints(OptColor)
	stemConstraints = seriesConstraints(OptColor, OptMarker)

	pieConstraints = Constraints{
		Fields: []FieldSpec{
			required("data", ShapeVector),
			required("labels", ShapeLabels),
			optional("colors", ShapeNames),
		},
		Match: [][]string{{"data", "labels"}},
		Rules: []Rule{
			each("data", "wedge sizes must be finite", argValues, isFinite),
			each("data", "wedge sizes must be non-negative", argValues, isNonNegative),
			{Field: "data", Reason: "wedge sizes must not all be zero", Check: func(a *Args) bool {
				return len(a.Values) > 0 && floats.Max(a.Values) > 0
			}},
		},
	}

	boxConstraints = Constraints{
		Fields: []FieldSpec{
			required("data", ShapeNested),
			required("labels", ShapeLabels),
		},
		Match: [][]string{{"data", "labels"}},
		Rules: []Rule{
			eachGroup("data", "values must be finite", isFinite),
			{Field: "data", Reason: "every group must contain at least one value", Check: func(a *Args) bool {
				for _, g := range a.Groups {
					if len(g) == 0 {
						return false
					}
				}
				return true
			}},
		},
	}

	stackedBarConstraints = Constraints{
		Fields: []FieldSpec{
			required("data", ShapeNested),
			required("labels", ShapeLabels),
			optional("series", ShapeNames),
		},
		Match: [][]string{{"data", "labels"}},
		Rules: []Rule{
			eachGroup("data", "values must be finite", isFinite),
			{Field: "data", Reason: "every stack must have the same non-zero depth", Check: func(a *Args) bool {
				d := a.Depth()
				for _, g := range a.Groups {
					if len(g) != d || d == 0 {
						return false
					}
				}
				return true
			}},
			{Field: "series", Reason: "series names must match the stack depth", Check: func(a *Args) bool {
				return len(a.Series) == 0 || len(a.Series) == a.Depth()
			}},
		},
	}

	heatmapConstraints = Constraints{
		Fields:   []FieldSpec{required("data", ShapeGrid)},
		Options:  []string{OptCmap, OptAspect},
		Defaults: Args{Cmap: "viridis", Aspect: "auto"},
	}

	polarConstraints = Constraints{
		Fields: []FieldSpec{
			required("theta", ShapeVector),
			required("r", ShapeVector),
		},
		Match: [][]string{{"theta", "r"}},
		Rules: []Rule{
			each("theta", "angles must be finite", argTheta, isFinite),
			each("r", "radii must be finite", argR, isFinite),
		},
		Options:  []string{OptColor, OptLineWidth, OptMarker},
		Defaults: Args{Color: ColorBlue, LineWidth: 1.5},
	}

	histogramConstraints = Constraints{
		Fields: []FieldSpec{
			required("data", ShapeVector),
			optional("bins", ShapeInt),
		},
		Rules: []Rule{
			{Field: "bins", Reason: "bins must be a positive integer", Check: func(a *Args) bool {
				return a.Bins > 0
			}},
			each("data", "values must be finite", argValues, isFinite),
		},
		Options:  []string{OptColor, OptDensity},
		Defaults: Args{Bins: 10},
	}

	scatterConstraints = Constraints{
		Fields: []FieldSpec{
			required("x", ShapeVector),
			required("y", ShapeVector),
		},
		Match: [][]string{{"x", "y"}},
		Rules: []Rule{
			each("x", "values must be finite", argX, isFinite),
			each("y", "values must be finite", argY, isFinite),
		},
		Options: []string{OptColor, OptCmap, OptMarker},
	}

	errorBarConstraints = Constraints{
		Fields: []FieldSpec{
			required("x", ShapeVector),
			required("y", ShapeVector),
			required("yerr", ShapeVector),
			optional("xerr", ShapeVector),
		},
		Match: [][]string{{"x", "y", "yerr", "xerr"}},
		Rules: []Rule{
			each("x", "values must be finite", argX, isFinite),
			each("y", "values must be finite", argY, isFinite),
			each("yerr", "error magnitudes must be finite", argYErr, isFinite),
			each("xerr", "error magnitudes must be finite", argXErr, isFinite),
			each("yerr", "error magnitudes must not be negative", argYErr, isNonNegative),
			each("xerr", "error magnitudes must not be negative", argXErr, isNonNegative),
		},
		Options: []string{OptColor, OptMarker},
	}

	surfaceConstraints = Constraints{
		Fields: []FieldSpec{
			required("data", ShapeGrid),
			optional("x", ShapeVector),
			optional("y", ShapeVector),
		},
		Rules: []Rule{
			each("x", "values must be finite", argX, isFinite),
			each("y", "values must be finite", argY, isFinite),
			{Field: "x", Reason: "x must have one value per grid column", Check: func(a *Args) bool {
				return len(a.X) == 0 || len(a.Grid) == 0 || len(a.X) == len(a.Grid[0])
			}},
			{Field: "y", Reason: "y must have one value per grid row", Check: func(a *Args) bool {
				return len(a.Y) == 0 || len(a.Y) == len(a.Grid)
			}},
		},
		Options:  []string{OptCmap},
		Defaults: Args{Cmap: "viridis"},
	}
)

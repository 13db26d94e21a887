package gochart

import "fmt"

// Chart is implemented by every chart kind. Render receives arguments that
// already passed Validate against Constraints.
type Chart interface {
	Kind() Kind
	Constraints() Constraints
	Render(a *Args) (*Figure, error)
}

var registry = map[Kind]Chart{
	KindLine:       lineChart{},
	KindBar:        barChart{},
	KindPie:        pieChart{},
	KindBox:        boxChart{},
	KindHeatmap:    heatmapChart{},
	KindPolar:      polarChart{},
	KindHistogram:  histogramChart{},
	KindScatter:    scatterChart{},
	KindStackedBar: stackedBarChart{},
	KindArea:       areaChart{},
	KindStem:       stemChart{},
	KindErrorBar:   errorBarChart{},
	KindSurface:    surfaceChart{},
}

// Lookup returns the chart implementation for a kind.
func Lookup(k Kind) (Chart, error) {
	c, ok := registry[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	return c, nil
}

// New validates a request and renders it into a new figure. Nothing is
// rendered when validation fails.
func New(req Request) (*Figure, error) {
	chart, err := Lookup(req.Kind)
	if err != nil {
		return nil, err
	}
	args, err := validateWith(req, chart.Constraints())
	if err != nil {
		return nil, err
	}
	fig, err := chart.Render(args)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", req.Kind, err)
	}
	return fig, nil
}

// MustNew is like New but panics on error. It is meant for examples and
// static chart definitions.
func MustNew(req Request) *Figure {
	fig, err := New(req)
	if err != nil {
		panic(err)
	}
	return fig
}

package gochart

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a chart type.
type Kind int

// Chart kind constants.
const (
	KindLine Kind = iota + 1
	KindBar
	KindPie
	KindBox
	KindHeatmap
	KindPolar
	KindHistogram
	KindScatter
	KindStackedBar
	KindArea
	KindStem
	KindErrorBar
	KindSurface
)

type kindInfo struct {
	tag   string
	title string
	stem  string
}

var kindTable = map[Kind]kindInfo{
	KindLine:       {"line", "Line Chart", "line_chart"},
	KindBar:        {"bar", "Bar Chart", "bar_chart"},
	KindPie:        {"pie", "Pie Chart", "pie_chart"},
	KindBox:        {"box", "Box Plot Chart", "box_plot"},
	KindHeatmap:    {"heatmap", "Heatmap", "heatmap"},
	KindPolar:      {"polar", "Polar Plot", "polar_plot"},
	KindHistogram:  {"histogram", "Histogram Chart", "histogram"},
	KindScatter:    {"scatter", "Scatter Plot", "scatter_plot"},
	KindStackedBar: {"stacked_bar", "Stacked Bar Chart", "stacked_bar_chart"},
	KindArea:       {"area", "Area Chart", "area_chart"},
	KindStem:       {"stem", "Stem Plot", "stem_plot"},
	KindErrorBar:   {"error_bar", "Error Bar Chart", "error_bar_chart"},
	KindSurface:    {"surface", "3D Surface Plot", "surface_plot"},
}

var kindAliases = map[string]Kind{
	"boxplot":    KindBox,
	"box_plot":   KindBox,
	"hist":       KindHistogram,
	"stacked":    KindStackedBar,
	"stackedbar": KindStackedBar,
	"errorbar":   KindErrorBar,
	"3d":         KindSurface,
	"3d_plot":    KindSurface,
	"surface3d":  KindSurface,
}

// Kinds returns every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindTable))
	for k := KindLine; k <= KindSurface; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind converts a tag such as "stacked_bar" or "stacked-bar" to a Kind.
func ParseKind(s string) (Kind, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	tag = strings.ReplaceAll(tag, "-", "_")
	tag = strings.ReplaceAll(tag, " ", "_")
	for k, info := range kindTable {
		if info.tag == tag {
			return k, nil
		}
	}
	if k, ok := kindAliases[tag]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.tag
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DefaultTitle returns the title used when a request leaves Title empty.
func (k Kind) DefaultTitle() string { return kindTable[k].title }

// FileStem returns the base output file name for the kind, e.g. "box_plot".
func (k Kind) FileStem() string { return kindTable[k].stem }

// DisplayName returns a human readable name, e.g. "Stacked Bar".
func (k Kind) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(k.String(), "_", " "))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Request is a chart request as supplied by a caller or decoded from JSON
// or YAML. Payload fields are dynamically typed so that wrongly typed input
// reaches the validator and is classified instead of failing to decode.
type Request struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Data   any    `json:"data,omitempty" yaml:"data,omitempty"`
	Labels any    `json:"labels,omitempty" yaml:"labels,omitempty"`
	X      any    `json:"x,omitempty" yaml:"x,omitempty"`
	Y      any    `json:"y,omitempty" yaml:"y,omitempty"`
	Theta  any    `json:"theta,omitempty" yaml:"theta,omitempty"`
	R      any    `json:"r,omitempty" yaml:"r,omitempty"`
	YErr   any    `json:"yerr,omitempty" yaml:"yerr,omitempty"`
	XErr   any    `json:"xerr,omitempty" yaml:"xerr,omitempty"`
	Bins   any    `json:"bins,omitempty" yaml:"bins,omitempty"`
	Colors any    `json:"colors,omitempty" yaml:"colors,omitempty"`
	Series any    `json:"series,omitempty" yaml:"series,omitempty"`

	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth  float64 `json:"linewidth,omitempty" yaml:"linewidth,omitempty"`
	Cmap       string  `json:"cmap,omitempty" yaml:"cmap,omitempty"`
	Aspect     string  `json:"aspect,omitempty" yaml:"aspect,omitempty"`
	Marker     string  `json:"marker,omitempty" yaml:"marker,omitempty"`
	Horizontal bool    `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Density    bool    `json:"density,omitempty" yaml:"density,omitempty"`
}

// Args holds the normalized arguments a validated request produced. Only
// the fields relevant to Kind are populated.
type Args struct {
	Kind  Kind
	Title string

	Values []float64   // line, bar, pie, area, stem, histogram, error_bar (y)
	Groups [][]float64 // box groups or stacked_bar stacks
	Grid   [][]float64 // heatmap and surface, row major
	Labels []string

	X, Y       []float64
	Theta, R   []float64
	YErr, XErr []float64
	Bins       int

	Colors []Color
	Series []string

	Color      Color
	LineWidth  float64
	Cmap       string
	Aspect     string
	Marker     string
	Horizontal bool
	Density    bool
}

// Depth returns the number of layers in a stacked bar request.
func (a *Args) Depth() int {
	if len(a.Groups) == 0 {
		return 0
	}
	return len(a.Groups[0])
}

// SeriesName returns the legend name of stacked layer j.
func (a *Args) SeriesName(j int) string {
	if j < len(a.Series) {
		return a.Series[j]
	}
	return fmt.Sprintf("Series %d", j+1)
}

func (a *Args) colorOr(def Color) Color {
	if a.Color.IsZero() {
		return def
	}
	return a.Color
}

func (a *Args) lineWidthOr(def float64) float64 {
	if a.LineWidth <= 0 {
		return def
	}
	return a.LineWidth
}

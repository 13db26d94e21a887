package gochart

import (
	"github.com/google/uuid"
)

// Default figure geometry, in inches and dots per inch.
const (
	DefaultWidth  = 6.4
	DefaultHeight = 4.8
	DefaultDPI    = 100
)

// Projection is the coordinate system of an Axes.
type Projection string

const (
	ProjectionRectilinear Projection = "rectilinear"
	ProjectionPolar       Projection = "polar"
	Projection3D          Projection = "3d"
)

// Figure is the in-memory result of rendering a chart request. It is owned
// by the caller and is not shared between requests.
type Figure struct {
	ID     string
	Kind   Kind
	Width  float64 // inches
	Height float64 // inches
	DPI    float64
	Axes   []*Axes
	Args   *Args // validated arguments the figure was built from
}

func newFigure(a *Args) *Figure {
	return &Figure{
		ID:     uuid.NewString(),
		Kind:   a.Kind,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
		Args:   a,
		Axes: []*Axes{{
			Title:      a.Title,
			Projection: ProjectionRectilinear,
			Aspect:     "auto",
			Frame:      true,
		}},
	}
}

// Ax returns the first axes of the figure.
func (f *Figure) Ax() *Axes {
	if len(f.Axes) == 0 {
		return nil
	}
	return f.Axes[0]
}

// Title returns the title of the first axes.
func (f *Figure) Title() string {
	if ax := f.Ax(); ax != nil {
		return ax.Title
	}
	return ""
}

// Tick is a labelled position on an axis.
type Tick struct {
	Value float64
	Label string
}

// Axis holds limits and ticks for one dimension of an Axes.
type Axis struct {
	Label       string
	Min, Max    float64
	Ticks       []Tick
	Categorical bool
	Inverted    bool
}

// TickLabels returns the tick label strings in order.
func (a *Axis) TickLabels() []string {
	out := make([]string, len(a.Ticks))
	for i, t := range a.Ticks {
		out[i] = t.Label
	}
	return out
}

// Axes is one plotting area and the artists drawn into it.
type Axes struct {
	Title      string
	Projection Projection
	Aspect     string // "auto", "equal" or a numeric ratio
	XAxis      Axis
	YAxis      Axis
	ZAxis      Axis // 3d projection only

	Patches     []*Patch
	Lines       []*Line2D
	Collections []*Collection
	Images      []*Image
	Surfaces    []*Surface
	Texts       []*Text
	Legend      *Legend
	Colorbar    *Colorbar
	Frame       bool
}

// XTickLabels returns the x tick labels.
func (ax *Axes) XTickLabels() []string { return ax.XAxis.TickLabels() }

// YTickLabels returns the y tick labels.
func (ax *Axes) YTickLabels() []string { return ax.YAxis.TickLabels() }

// ArtistCount returns the number of drawable artists.
func (ax *Axes) ArtistCount() int {
	return len(ax.Patches) + len(ax.Lines) + len(ax.Collections) +
		len(ax.Images) + len(ax.Surfaces) + len(ax.Texts)
}

// PatchKind distinguishes the shapes a Patch can describe.
type PatchKind int

const (
	PatchRect PatchKind = iota + 1
	PatchWedge
)

// Patch is a filled shape: a bar rectangle or a pie wedge.
type Patch struct {
	Kind      PatchKind
	Label     string
	FaceColor Color
	EdgeColor Color

	// Rectangle geometry in data coordinates.
	X, Y, Width, Height float64

	// Wedge geometry; angles in degrees, counterclockwise from +x.
	CenterX, CenterY, Radius float64
	Theta1, Theta2           float64
}

// LineStyle is the dash pattern of a Line2D.
type LineStyle string

const (
	LineSolid  LineStyle = "-"
	LineDashed LineStyle = "--"
	LineNone   LineStyle = "None"
)

// Line2D is a polyline with optional markers.
type Line2D struct {
	X, Y       []float64
	Color      Color
	Width      float64 // points
	Style      LineStyle
	Marker     string
	MarkerSize float64 // points
	Label      string
}

// Point is a position in data coordinates.
type Point struct{ X, Y float64 }

// CollectionKind distinguishes collection artists.
type CollectionKind int

const (
	CollectionFill CollectionKind = iota + 1
	CollectionScatter
	CollectionSegments
)

// Collection groups many similar primitives: a filled polygon, scatter
// markers or line segments.
type Collection struct {
	Kind     CollectionKind
	Points   []Point    // polygon vertices or marker offsets
	Segments [][2]Point // segment endpoints
	Colors   []Color    // one per element, or a single color for all
	Sizes    []float64  // marker areas in points squared
	Alpha    float64
	Width    float64 // line width in points
	Label    string
}

// ColorAt returns the color of element i.
func (c *Collection) ColorAt(i int) Color {
	if len(c.Colors) == 0 {
		return CycleColor(0)
	}
	if i < len(c.Colors) {
		return c.Colors[i]
	}
	return c.Colors[len(c.Colors)-1]
}

// Image is a colormapped 2-D grid.
type Image struct {
	Data       [][]float64
	Cmap       string
	VMin, VMax float64
	// Extent is left, right, bottom, top in data coordinates.
	Extent [4]float64
}

// Surface is a 3-D surface over a rectangular grid.
type Surface struct {
	X, Y       []float64
	Z          [][]float64
	Cmap       string
	ZMin, ZMax float64
}

// Text is a string anchored at a data position.
type Text struct {
	X, Y   float64
	Text   string
	HAlign string // "left", "center" or "right"
}

// LegendEntry associates a label with a color swatch.
type LegendEntry struct {
	Label string
	Color Color
}

// Legend lists the labelled artists of an Axes.
type Legend struct {
	Entries []LegendEntry
}

// Labels returns the legend labels in order.
func (l *Legend) Labels() []string {
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Label
	}
	return out
}

// Colorbar describes the scale drawn beside an image.
type Colorbar struct {
	Cmap     string
	Min, Max float64
	Ticks    []Tick
}

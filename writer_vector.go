package gochart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// VectorWriter writes SVG, PDF or EPS through gonum/plot.
type VectorWriter struct {
	figure *Figure
	format Format
	opts   *RenderOptions
}

// Save writes the document to a file.
func (w *VectorWriter) Save(path string) error { return saveFile(path, w.WriteTo) }

// WriteTo renders the document to a writer.
func (w *VectorWriter) WriteTo(out io.Writer) error {
	p, err := NewPlot(w.figure)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(w.opts.Width)*vg.Inch, vg.Length(w.opts.Height)*vg.Inch, string(w.format))
	if err != nil {
		return fmt.Errorf("create %s writer: %w", w.format, err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("write %s: %w", w.format, err)
	}
	return nil
}

// NewPlot converts the first axes of a figure into a gonum plot.
func NewPlot(fig *Figure) (*plot.Plot, error) {
	ax := fig.Ax()
	if ax == nil {
		return nil, fmt.Errorf("figure %s has no axes", fig.ID)
	}
	p := plot.New()
	p.Title.Text = ax.Title
	p.X.Label.Text = ax.XAxis.Label
	p.Y.Label.Text = ax.YAxis.Label

	var err error
	switch ax.Projection {
	case ProjectionPolar:
		err = addPolar(p, ax)
	case Projection3D:
		err = addSurface(p, ax)
	default:
		err = addCartesian(p, ax)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s plot: %w", fig.Kind, err)
	}
	return p, nil
}

func addCartesian(p *plot.Plot, ax *Axes) error {
	for _, im := range ax.Images {
		cm, ok := LookupColormap(im.Cmap)
		if !ok {
			cm, _ = LookupColormap("viridis")
		}
		hm := plotter.NewHeatMap(imageGrid{im}, cm)
		hm.Min, hm.Max = im.VMin, im.VMax
		if hm.Max == hm.Min {
			hm.Max = hm.Min + 1
		}
		p.Add(hm)
	}
	for _, patch := range ax.Patches {
		poly, err := plotter.NewPolygon(patchXYs(patch))
		if err != nil {
			return err
		}
		poly.Color = patch.FaceColor.RGBA()
		poly.LineStyle.Width = 0
		if !patch.EdgeColor.IsZero() {
			poly.LineStyle.Width = vg.Points(0.5)
			poly.LineStyle.Color = patch.EdgeColor.RGBA()
		}
		p.Add(poly)
	}
	for _, c := range ax.Collections {
		if err := addCollection(p, c); err != nil {
			return err
		}
	}
	for _, l := range ax.Lines {
		if err := addLine(p, l.X, l.Y, l); err != nil {
			return err
		}
	}
	if len(ax.Texts) > 0 {
		labels := plotter.XYLabels{}
		for _, t := range ax.Texts {
			labels.XYs = append(labels.XYs, plotter.XY{X: t.X, Y: t.Y})
			labels.Labels = append(labels.Labels, t.Text)
		}
		lp, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(lp)
	}
	if ax.Legend != nil {
		for _, e := range ax.Legend.Entries {
			p.Legend.Add(e.Label, swatch(e.Color))
		}
		p.Legend.Top = true
	}

	applyAxis(&p.X, ax.XAxis)
	applyAxis(&p.Y, ax.YAxis)
	if !ax.Frame {
		p.HideAxes()
	}
	return nil
}

func applyAxis(a *plot.Axis, src Axis) {
	a.Min, a.Max = src.Min, src.Max
	if src.Inverted {
		a.Scale = invertedScale{}
	}
	if len(src.Ticks) == 0 {
		return
	}
	ticks := make(plot.ConstantTicks, len(src.Ticks))
	for i, t := range src.Ticks {
		ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	a.Tick.Marker = ticks
}

// invertedScale flips an axis so that Min is drawn at the far end.
type invertedScale struct{}

func (invertedScale) Normalize(min, max, x float64) float64 {
	return plot.LinearScale{}.Normalize(max, min, x)
}

func addCollection(p *plot.Plot, c *Collection) error {
	alpha := c.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	switch c.Kind {
	case CollectionFill:
		xys := make(plotter.XYs, 0, len(c.Points))
		for _, pt := range c.Points {
			if finite(pt.X, pt.Y) {
				xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
			}
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return err
		}
		poly.Color = c.ColorAt(0).WithAlpha(alpha).RGBA()
		poly.LineStyle.Width = 0
		p.Add(poly)
	case CollectionScatter:
		xys := make(plotter.XYs, 0, len(c.Points))
		idx := make([]int, 0, len(c.Points))
		for i, pt := range c.Points {
			if finite(pt.X, pt.Y) {
				xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
				idx = append(idx, i)
			}
		}
		if len(xys) == 0 {
			return nil
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			size := 36.0
			if idx[i] < len(c.Sizes) {
				size = c.Sizes[idx[i]]
			}
			return draw.GlyphStyle{
				Color:  c.ColorAt(idx[i]).WithAlpha(alpha).RGBA(),
				Radius: vg.Points(math.Sqrt(size) / 2),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(s)
	case CollectionSegments:
		for i, seg := range c.Segments {
			if !finite(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y) {
				continue
			}
			l, err := plotter.NewLine(plotter.XYs{{X: seg[0].X, Y: seg[0].Y}, {X: seg[1].X, Y: seg[1].Y}})
			if err != nil {
				return err
			}
			l.LineStyle.Color = c.ColorAt(i).WithAlpha(alpha).RGBA()
			l.LineStyle.Width = vg.Points(c.Width)
			p.Add(l)
		}
	}
	return nil
}

// addLine adds l drawn through the given coordinates. Non-finite points
// split the line into runs.
func addLine(p *plot.Plot, xs, ys []float64, l *Line2D) error {
	var runs []plotter.XYs
	var cur plotter.XYs
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if !finite(xs[i], ys[i]) {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	for _, run := range runs {
		if l.Style != LineNone && l.Width > 0 && len(run) > 1 {
			line, err := plotter.NewLine(run)
			if err != nil {
				return err
			}
			line.LineStyle.Color = l.Color.RGBA()
			line.LineStyle.Width = vg.Points(l.Width)
			if l.Style == LineDashed {
				line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			}
			p.Add(line)
		}
		if l.Marker != "" {
			s, err := plotter.NewScatter(run)
			if err != nil {
				return err
			}
			size := l.MarkerSize
			if size <= 0 {
				size = 6
			}
			s.GlyphStyle = draw.GlyphStyle{Color: l.Color.RGBA(), Radius: vg.Points(size / 2), Shape: glyph(l.Marker)}
			p.Add(s)
		}
	}
	return nil
}

func glyph(marker string) draw.GlyphDrawer {
	switch marker {
	case "s":
		return draw.BoxGlyph{}
	case "^", "v":
		return draw.TriangleGlyph{}
	case "x":
		return draw.CrossGlyph{}
	case "+":
		return draw.PlusGlyph{}
	case "d", "D":
		return draw.PyramidGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

// patchXYs returns the outline of a rectangle or an arc-approximated wedge.
func patchXYs(p *Patch) plotter.XYs {
	if p.Kind == PatchRect {
		return plotter.XYs{
			{X: p.X, Y: p.Y},
			{X: p.X + p.Width, Y: p.Y},
			{X: p.X + p.Width, Y: p.Y + p.Height},
			{X: p.X, Y: p.Y + p.Height},
		}
	}
	steps := int(math.Max(2, math.Ceil((p.Theta2-p.Theta1)/2)))
	xys := plotter.XYs{{X: p.CenterX, Y: p.CenterY}}
	for i := 0; i <= steps; i++ {
		a := (p.Theta1 + (p.Theta2-p.Theta1)*float64(i)/float64(steps)) * math.Pi / 180
		xys = append(xys, plotter.XY{X: p.CenterX + p.Radius*math.Cos(a), Y: p.CenterY + p.Radius*math.Sin(a)})
	}
	return xys
}

func swatch(c Color) plot.Thumbnailer {
	poly, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil
	}
	poly.Color = c.RGBA()
	return poly
}

// addPolar draws the polar grid and lines in cartesian coordinates on a
// square, axis-free plot.
func addPolar(p *plot.Plot, ax *Axes) error {
	rmin, rmax := ax.YAxis.Min, ax.YAxis.Max
	radial := func(v float64) float64 { return fraction(v, rmin, rmax) }
	grey := color.NRGBA{R: 176, G: 176, B: 176, A: 255}

	circle := func(rad float64, c color.Color) error {
		xys := make(plotter.XYs, 0, 121)
		for i := 0; i <= 120; i++ {
			a := 2 * math.Pi * float64(i) / 120
			xys = append(xys, plotter.XY{X: rad * math.Cos(a), Y: rad * math.Sin(a)})
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle.Color = c
		p.Add(l)
		return nil
	}
	for _, t := range ax.YAxis.Ticks {
		if d := radial(t.Value); d > 0 && d < 1 {
			if err := circle(d, grey); err != nil {
				return err
			}
		}
	}
	labels := plotter.XYLabels{}
	for _, t := range ax.XAxis.Ticks {
		spoke, err := plotter.NewLine(plotter.XYs{{}, {X: math.Cos(t.Value), Y: math.Sin(t.Value)}})
		if err != nil {
			return err
		}
		spoke.LineStyle.Color = grey
		p.Add(spoke)
		labels.XYs = append(labels.XYs, plotter.XY{X: 1.1 * math.Cos(t.Value), Y: 1.1 * math.Sin(t.Value)})
		labels.Labels = append(labels.Labels, t.Label)
	}
	if err := circle(1, color.Black); err != nil {
		return err
	}
	if lp, err := plotter.NewLabels(labels); err == nil && len(labels.Labels) > 0 {
		p.Add(lp)
	}
	for _, l := range ax.Lines {
		xs, ys := make([]float64, len(l.X)), make([]float64, len(l.X))
		for i := range l.X {
			d := radial(l.Y[i])
			xs[i], ys[i] = d*math.Cos(l.X[i]), d*math.Sin(l.X[i])
		}
		if err := addLine(p, xs, ys, l); err != nil {
			return err
		}
	}
	p.X.Min, p.X.Max = -1.2, 1.2
	p.Y.Min, p.Y.Max = -1.2, 1.2
	p.HideAxes()
	return nil
}

func addSurface(p *plot.Plot, ax *Axes) error {
	for _, e := range surfaceFrame() {
		l, err := plotter.NewLine(plotter.XYs{{X: e[0].X, Y: e[0].Y}, {X: e[1].X, Y: e[1].Y}})
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.Gray{Y: 128}
		p.Add(l)
	}
	for _, s := range ax.Surfaces {
		for _, q := range projectSurface(s) {
			xys := make(plotter.XYs, len(q.Pts))
			for i, pt := range q.Pts {
				xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return err
			}
			poly.Color = q.Color.RGBA()
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
	}
	p.X.Min, p.X.Max = -1.6, 1.6
	p.Y.Min, p.Y.Max = -1.6, 1.6
	p.HideAxes()
	return nil
}

// imageGrid adapts an Image to plotter.GridXYZ. Row 0 is drawn at the top.
type imageGrid struct{ im *Image }

func (g imageGrid) Dims() (c, r int) {
	if len(g.im.Data) == 0 {
		return 0, 0
	}
	return len(g.im.Data[0]), len(g.im.Data)
}

func (g imageGrid) Z(c, r int) float64 { return g.im.Data[r][c] }

func (g imageGrid) X(c int) float64 { return float64(c) }

func (g imageGrid) Y(r int) float64 { return float64(r) }

package gochart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageFormat represents the raster output format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures figure rendering.
type RenderOptions struct {
	// DPI is the output resolution. Default: 100.
	DPI float64
	// Width and Height override the figure size in inches when positive.
	Width, Height float64
	// Format is the raster format used by WriteImage.
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the white figure background.
	BackgroundColor *color.RGBA
	// FontDirs specifies additional directories to search for fonts.
	// System font directories are always searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		DPI:         DefaultDPI,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

func (o *RenderOptions) normalized(f *Figure) *RenderOptions {
	out := DefaultRenderOptions()
	if o != nil {
		*out = *o
	}
	if out.DPI <= 0 {
		out.DPI = f.DPI
	}
	if out.DPI <= 0 {
		out.DPI = DefaultDPI
	}
	if out.Width <= 0 {
		out.Width = f.Width
	}
	if out.Height <= 0 {
		out.Height = f.Height
	}
	if out.JPEGQuality <= 0 || out.JPEGQuality > 100 {
		out.JPEGQuality = 90
	}
	return out
}

// ToImage rasterizes the figure.
func (f *Figure) ToImage(opts *RenderOptions) (image.Image, error) {
	if len(f.Axes) == 0 {
		return nil, fmt.Errorf("figure %s has no axes", f.ID)
	}
	opts = opts.normalized(f)
	w, h := Inch(opts.Width, opts.DPI), Inch(opts.Height, opts.DPI)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	r := &renderer{img: img, fontCache: opts.FontCache, dpi: opts.DPI}
	if r.fontCache == nil {
		r.fontCache = NewFontCache(opts.FontDirs...)
	}
	for _, ax := range f.Axes {
		r.renderAxes(ax, float64(w), float64(h))
	}
	return img, nil
}

// WriteImage rasterizes the figure and encodes it to w.
func (f *Figure) WriteImage(w io.Writer, opts *RenderOptions) error {
	img, err := f.ToImage(opts)
	if err != nil {
		return err
	}
	opts = opts.normalized(f)
	return encodeImage(w, img, opts.Format, opts.JPEGQuality)
}

func encodeImage(w io.Writer, img image.Image, format ImageFormat, quality int) error {
	switch format {
	case ImageFormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// --- renderer ---

type renderer struct {
	img       *image.RGBA
	fontCache *FontCache
	dpi       float64

	// plot area in pixels
	left, top, right, bottom float64
	ax                       *Axes
}

func (r *renderer) px(pt float64) float64 { return PointsToPixels(pt, r.dpi) }

func (r *renderer) renderAxes(ax *Axes, w, h float64) {
	r.ax = ax
	r.left, r.right = 0.125*w, 0.9*w
	r.top, r.bottom = 0.12*h, 0.89*h
	if ax.Colorbar != nil {
		r.right = 0.78 * w
	}
	if ax.Aspect == "equal" || ax.Projection != ProjectionRectilinear {
		side := math.Min(r.right-r.left, r.bottom-r.top)
		cx, cy := (r.left+r.right)/2, (r.top+r.bottom)/2
		r.left, r.right = cx-side/2, cx+side/2
		r.top, r.bottom = cy-side/2, cy+side/2
	}

	switch ax.Projection {
	case ProjectionPolar:
		r.renderPolar(ax)
	case Projection3D:
		r.renderSurface(ax)
	default:
		r.renderCartesian(ax)
	}

	if ax.Title != "" {
		r.drawText(ax.Title, (r.left+r.right)/2, r.top-r.px(6), "center", "bottom", TitleStyle)
	}
	if ax.Colorbar != nil {
		r.renderColorbar(ax.Colorbar, w)
	}
	if ax.Legend != nil && len(ax.Legend.Entries) > 0 {
		r.renderLegend(ax.Legend)
	}
}

// toPixel maps data coordinates to pixel coordinates in the plot area.
func (r *renderer) toPixel(x, y float64) (float64, float64) {
	xa, ya := r.ax.XAxis, r.ax.YAxis
	fx := fraction(x, xa.Min, xa.Max)
	fy := fraction(y, ya.Min, ya.Max)
	if xa.Inverted {
		fx = 1 - fx
	}
	if ya.Inverted {
		fy = 1 - fy
	}
	return r.left + fx*(r.right-r.left), r.bottom - fy*(r.bottom-r.top)
}

func (r *renderer) renderCartesian(ax *Axes) {
	for _, im := range ax.Images {
		r.renderImage(im)
	}
	for _, p := range ax.Patches {
		r.renderPatch(p)
	}
	for _, c := range ax.Collections {
		r.renderCollection(c)
	}
	for _, l := range ax.Lines {
		r.renderLine2D(l, r.toPixel)
	}
	for _, t := range ax.Texts {
		x, y := r.toPixel(t.X, t.Y)
		r.drawText(t.Text, x, y, t.HAlign, "center", LabelStyle)
	}
	if !ax.Frame {
		return
	}
	black := ColorBlack.RGBA()
	r.strokeRect(r.left, r.top, r.right, r.bottom, black)
	tick := r.px(3.5)
	for _, t := range ax.XAxis.Ticks {
		if !within(t.Value, ax.XAxis.Min, ax.XAxis.Max) {
			continue
		}
		x, _ := r.toPixel(t.Value, ax.YAxis.Min)
		r.drawLine(x, r.bottom, x, r.bottom+tick, 1, black)
		r.drawText(t.Label, x, r.bottom+tick+r.px(2), "center", "top", TickStyle)
	}
	for _, t := range ax.YAxis.Ticks {
		if !within(t.Value, ax.YAxis.Min, ax.YAxis.Max) {
			continue
		}
		_, y := r.toPixel(ax.XAxis.Min, t.Value)
		r.drawLine(r.left-tick, y, r.left, y, 1, black)
		r.drawText(t.Label, r.left-tick-r.px(2), y, "right", "center", TickStyle)
	}
}

func within(v, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	eps := (hi/2 - lo/2) * 2e-9
	return v >= lo-eps && v <= hi+eps
}

func (r *renderer) renderImage(im *Image) {
	rows := len(im.Data)
	if rows == 0 {
		return
	}
	cols := len(im.Data[0])
	cm, ok := LookupColormap(im.Cmap)
	if !ok {
		cm, _ = LookupColormap("viridis")
	}
	l, rt, b, t := im.Extent[0], im.Extent[1], im.Extent[2], im.Extent[3]
	x0, y0 := r.toPixel(l, t)
	x1, y1 := r.toPixel(rt, b)
	if !finite(x0, y0, x1, y1) {
		return
	}
	bounds := r.img.Bounds()
	minX, maxX := math.Max(math.Min(x0, x1), float64(bounds.Min.X)), math.Min(math.Max(x0, x1), float64(bounds.Max.X))
	minY, maxY := math.Max(math.Min(y0, y1), float64(bounds.Min.Y)), math.Min(math.Max(y0, y1), float64(bounds.Max.Y))
	for py := int(minY); py < int(math.Ceil(maxY)); py++ {
		row := int((float64(py) + 0.5 - y0) / (y1 - y0) * float64(rows))
		if row < 0 || row >= rows {
			continue
		}
		for px := int(minX); px < int(math.Ceil(maxX)); px++ {
			col := int((float64(px) + 0.5 - x0) / (x1 - x0) * float64(cols))
			if col < 0 || col >= cols {
				continue
			}
			r.blend(px, py, cm.Map(im.Data[row][col], im.VMin, im.VMax).RGBA())
		}
	}
}

func (r *renderer) renderPatch(p *Patch) {
	face := p.FaceColor.RGBA()
	switch p.Kind {
	case PatchRect:
		x0, y0 := r.toPixel(p.X, p.Y)
		x1, y1 := r.toPixel(p.X+p.Width, p.Y+p.Height)
		r.fillRect(x0, y0, x1, y1, face)
		if !p.EdgeColor.IsZero() {
			r.strokeRect(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1), p.EdgeColor.RGBA())
		}
	case PatchWedge:
		cx, cy := r.toPixel(p.CenterX, p.CenterY)
		ex, _ := r.toPixel(p.CenterX+p.Radius, p.CenterY)
		r.fillWedge(cx, cy, math.Abs(ex-cx), p.Theta1, p.Theta2, face)
	}
}

func (r *renderer) renderCollection(c *Collection) {
	alpha := c.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	switch c.Kind {
	case CollectionFill:
		pts := make([][2]float64, len(c.Points))
		for i, p := range c.Points {
			x, y := r.toPixel(p.X, p.Y)
			pts[i] = [2]float64{x, y}
		}
		r.fillPolygon(pts, c.ColorAt(0).WithAlpha(alpha).RGBA())
	case CollectionScatter:
		for i, p := range c.Points {
			if !finite(p.X, p.Y) {
				continue
			}
			x, y := r.toPixel(p.X, p.Y)
			size := 36.0
			if i < len(c.Sizes) {
				size = c.Sizes[i]
			}
			r.fillCircle(x, y, r.px(math.Sqrt(size)/2), c.ColorAt(i).WithAlpha(alpha).RGBA())
		}
	case CollectionSegments:
		width := math.Max(1, r.px(c.Width))
		for i, s := range c.Segments {
			if !finite(s[0].X, s[0].Y, s[1].X, s[1].Y) {
				continue
			}
			x0, y0 := r.toPixel(s[0].X, s[0].Y)
			x1, y1 := r.toPixel(s[1].X, s[1].Y)
			r.drawLine(x0, y0, x1, y1, width, c.ColorAt(i).WithAlpha(alpha).RGBA())
		}
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (r *renderer) renderLine2D(l *Line2D, project func(x, y float64) (float64, float64)) {
	c := l.Color.RGBA()
	if l.Style != LineNone && l.Width > 0 {
		width := math.Max(1, r.px(l.Width))
		for i := 1; i < len(l.X) && i < len(l.Y); i++ {
			if !finite(l.X[i-1], l.Y[i-1], l.X[i], l.Y[i]) {
				continue
			}
			x0, y0 := project(l.X[i-1], l.Y[i-1])
			x1, y1 := project(l.X[i], l.Y[i])
			r.drawLine(x0, y0, x1, y1, width, c)
		}
	}
	if l.Marker == "" {
		return
	}
	size := l.MarkerSize
	if size <= 0 {
		size = 6
	}
	rad := r.px(size) / 2
	for i := 0; i < len(l.X) && i < len(l.Y); i++ {
		if !finite(l.X[i], l.Y[i]) {
			continue
		}
		x, y := project(l.X[i], l.Y[i])
		r.drawMarker(l.Marker, x, y, rad, c)
	}
}

func (r *renderer) drawMarker(marker string, x, y, rad float64, c color.NRGBA) {
	switch marker {
	case "s":
		r.fillRect(x-rad, y-rad, x+rad, y+rad, c)
	case "^":
		r.fillPolygon([][2]float64{{x, y - rad}, {x + rad, y + rad}, {x - rad, y + rad}}, c)
	case "v":
		r.fillPolygon([][2]float64{{x, y + rad}, {x + rad, y - rad}, {x - rad, y - rad}}, c)
	case "d", "D":
		r.fillPolygon([][2]float64{{x, y - rad}, {x + rad, y}, {x, y + rad}, {x - rad, y}}, c)
	case "x":
		r.drawLine(x-rad, y-rad, x+rad, y+rad, 1.5, c)
		r.drawLine(x-rad, y+rad, x+rad, y-rad, 1.5, c)
	case "+":
		r.drawLine(x-rad, y, x+rad, y, 1.5, c)
		r.drawLine(x, y-rad, x, y+rad, 1.5, c)
	case ".":
		r.fillCircle(x, y, rad/2, c)
	default:
		r.fillCircle(x, y, rad, c)
	}
}

// renderPolar draws the circular grid and the lines in polar coordinates.
// Angles are in radians counterclockwise from the right.
func (r *renderer) renderPolar(ax *Axes) {
	cx, cy := (r.left+r.right)/2, (r.top+r.bottom)/2
	radius := (r.right - r.left) / 2
	rmin, rmax := ax.YAxis.Min, ax.YAxis.Max
	project := func(theta, rv float64) (float64, float64) {
		d := fraction(rv, rmin, rmax) * radius
		return cx + d*math.Cos(theta), cy - d*math.Sin(theta)
	}
	grid := color.NRGBA{R: 176, G: 176, B: 176, A: 255}
	for _, t := range ax.YAxis.Ticks {
		d := fraction(t.Value, rmin, rmax) * radius
		if d <= 0 {
			continue
		}
		r.strokeCircle(cx, cy, d, grid)
		r.drawText(t.Label, cx+d*math.Cos(math.Pi/8), cy-d*math.Sin(math.Pi/8), "left", "bottom", TickStyle)
	}
	for _, t := range ax.XAxis.Ticks {
		ex, ey := cx+radius*math.Cos(t.Value), cy-radius*math.Sin(t.Value)
		r.drawLine(cx, cy, ex, ey, 1, grid)
		lx, ly := cx+(radius+r.px(12))*math.Cos(t.Value), cy-(radius+r.px(12))*math.Sin(t.Value)
		r.drawText(t.Label, lx, ly, "center", "center", TickStyle)
	}
	r.strokeCircle(cx, cy, radius, ColorBlack.RGBA())
	for _, l := range ax.Lines {
		r.renderLine2D(l, project)
	}
}

// renderSurface paints the projected surface cells back to front.
func (r *renderer) renderSurface(ax *Axes) {
	cx, cy := (r.left+r.right)/2, (r.top+r.bottom)/2
	scale := (r.right - r.left) / 3.2
	toPixel := func(p Point) [2]float64 { return [2]float64{cx + p.X*scale, cy - p.Y*scale} }

	grey := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	for _, e := range surfaceFrame() {
		a, b := toPixel(e[0]), toPixel(e[1])
		r.drawLine(a[0], a[1], b[0], b[1], 1, grey)
	}
	for _, s := range ax.Surfaces {
		for _, q := range projectSurface(s) {
			pts := make([][2]float64, len(q.Pts))
			for i, p := range q.Pts {
				pts[i] = toPixel(p)
			}
			r.fillPolygon(pts, q.Color.RGBA())
		}
	}
}

func (r *renderer) renderColorbar(cb *Colorbar, w float64) {
	cm, ok := LookupColormap(cb.Cmap)
	if !ok {
		return
	}
	x0, x1 := 0.81*w, 0.835*w
	top, bottom := 0.12*float64(r.img.Bounds().Dy()), 0.89*float64(r.img.Bounds().Dy())
	for py := int(top); py < int(bottom); py++ {
		t := 1 - (float64(py)+0.5-top)/(bottom-top)
		c := cm.At(t).RGBA()
		for px := int(x0); px < int(x1); px++ {
			r.blend(px, py, c)
		}
	}
	black := ColorBlack.RGBA()
	r.strokeRect(x0, top, x1, bottom, black)
	for _, t := range cb.Ticks {
		if !within(t.Value, cb.Min, cb.Max) {
			continue
		}
		y := bottom - fraction(t.Value, cb.Min, cb.Max)*(bottom-top)
		r.drawLine(x1, y, x1+r.px(3.5), y, 1, black)
		r.drawText(t.Label, x1+r.px(5), y, "left", "center", TickStyle)
	}
}

func (r *renderer) renderLegend(l *Legend) {
	face := r.fontCache.Face(r.px(LabelStyle.Size), false)
	lineH := float64(face.Metrics().Height.Ceil()) + r.px(2)
	maxW := 0
	for _, e := range l.Entries {
		if w := font.MeasureString(face, e.Label).Ceil(); w > maxW {
			maxW = w
		}
	}
	sw := r.px(10)
	pad := r.px(4)
	boxW := pad*3 + sw + float64(maxW)
	boxH := pad*2 + lineH*float64(len(l.Entries))
	x1, y0 := r.right-pad, r.top+pad
	x0, y1 := x1-boxW, y0+boxH
	r.fillRect(x0, y0, x1, y1, color.NRGBA{R: 255, G: 255, B: 255, A: 204})
	r.strokeRect(x0, y0, x1, y1, color.NRGBA{R: 204, G: 204, B: 204, A: 255})
	for i, e := range l.Entries {
		y := y0 + pad + lineH*float64(i)
		r.fillRect(x0+pad, y+(lineH-sw)/2, x0+pad+sw, y+(lineH+sw)/2, e.Color.RGBA())
		r.drawText(e.Label, x0+pad*2+sw, y+lineH/2, "left", "center", LabelStyle)
	}
}

// --- Drawing primitives ---

// blend composites c over the pixel at (x,y).
func (r *renderer) blend(x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(r.img.Bounds())) || c.A == 0 {
		return
	}
	if c.A == 255 {
		r.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		return
	}
	dst := r.img.RGBAAt(x, y)
	a := float64(c.A) / 255
	mix := func(s, d uint8) uint8 { return uint8(float64(s)*a + float64(d)*(1-a) + 0.5) }
	r.img.SetRGBA(x, y, color.RGBA{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(math.Min(255, float64(dst.A)+float64(c.A)*(1-float64(dst.A)/255))),
	})
}

func (r *renderer) fillRect(x0, y0, x1, y1 float64, c color.NRGBA) {
	if !finite(x0, y0, x1, y1) {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	b := r.img.Bounds()
	x0, x1 = math.Max(x0, float64(b.Min.X)), math.Min(x1, float64(b.Max.X))
	y0, y1 = math.Max(y0, float64(b.Min.Y)), math.Min(y1, float64(b.Max.Y))
	for y := int(math.Round(y0)); y < int(math.Round(y1)); y++ {
		for x := int(math.Round(x0)); x < int(math.Round(x1)); x++ {
			r.blend(x, y, c)
		}
	}
}

func (r *renderer) strokeRect(x0, y0, x1, y1 float64, c color.NRGBA) {
	r.drawLine(x0, y0, x1, y0, 1, c)
	r.drawLine(x1, y0, x1, y1, 1, c)
	r.drawLine(x1, y1, x0, y1, 1, c)
	r.drawLine(x0, y1, x0, y0, 1, c)
}

// drawLine draws a line with Bresenham's algorithm, stamping a disc at each
// step when the width exceeds one pixel.
func (r *renderer) drawLine(fx1, fy1, fx2, fy2, width float64, c color.NRGBA) {
	b := r.img.Bounds()
	pad := width + 1
	var ok bool
	fx1, fy1, fx2, fy2, ok = clipSegment(fx1, fy1, fx2, fy2,
		float64(b.Min.X)-pad, float64(b.Min.Y)-pad, float64(b.Max.X)+pad, float64(b.Max.Y)+pad)
	if !ok {
		return
	}
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 := int(math.Round(fx2)), int(math.Round(fy2))
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	half := width / 2
	for {
		if width <= 1.5 {
			r.blend(x1, y1, c)
		} else {
			r.fillCircle(float64(x1), float64(y1), half, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// clipSegment clips a segment to a rectangle with the Liang-Barsky
// algorithm. ok is false when the segment misses the rectangle or has a
// non-finite endpoint.
func clipSegment(x1, y1, x2, y2, xmin, ymin, xmax, ymax float64) (cx1, cy1, cx2, cy2 float64, ok bool) {
	if !finite(x1, y1, x2, y2) {
		return 0, 0, 0, 0, false
	}
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, x1 - xmin}, {dx, xmax - x1}, {-dy, y1 - ymin}, {dy, ymax - y1}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	cx1, cy1, cx2, cy2 = x1+t0*dx, y1+t0*dy, x1+t1*dx, y1+t1*dy
	return cx1, cy1, cx2, cy2, finite(cx1, cy1, cx2, cy2)
}

func (r *renderer) fillCircle(cx, cy, rad float64, c color.NRGBA) {
	for y := int(cy - rad); y <= int(cy+rad); y++ {
		for x := int(cx - rad); x <= int(cx+rad); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= rad*rad {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *renderer) strokeCircle(cx, cy, rad float64, c color.NRGBA) {
	steps := int(math.Max(64, rad*4))
	px, py := cx+rad, cy
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := cx+rad*math.Cos(a), cy-rad*math.Sin(a)
		r.drawLine(px, py, x, y, 1, c)
		px, py = x, y
	}
}

// fillWedge fills the sector between theta1 and theta2 degrees,
// counterclockwise from the positive x axis.
func (r *renderer) fillWedge(cx, cy, rad, theta1, theta2 float64, c color.NRGBA) {
	if theta2-theta1 <= 0 {
		return
	}
	full := theta2-theta1 >= 360
	for y := int(cy - rad); y <= int(cy+rad); y++ {
		for x := int(cx - rad); x <= int(cx+rad); x++ {
			dx, dy := float64(x)+0.5-cx, cy-(float64(y)+0.5)
			if dx*dx+dy*dy > rad*rad {
				continue
			}
			if !full {
				ang := math.Atan2(dy, dx) * 180 / math.Pi
				if ang < 0 {
					ang += 360
				}
				if ang < theta1 {
					ang += 360
				}
				if ang > theta2 {
					continue
				}
			}
			r.blend(x, y, c)
		}
	}
}

// fillPolygon fills a polygon with the even-odd scanline rule.
func (r *renderer) fillPolygon(pts [][2]float64, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts {
		if !finite(p[0], p[1]) {
			return
		}
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	bounds := r.img.Bounds()
	lo, hi := int(math.Max(math.Floor(minY), float64(bounds.Min.Y))), int(math.Min(math.Ceil(maxY), float64(bounds.Max.Y)))
	xs := make([]float64, 0, 8)
	for y := lo; y < hi; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a[1] <= sy && b[1] > sy) || (b[1] <= sy && a[1] > sy) {
				xs = append(xs, a[0]+(sy-a[1])/(b[1]-a[1])*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			for x := int(math.Round(xs[k])); x < int(math.Round(xs[k+1])); x++ {
				r.blend(x, y, c)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// --- Text rendering ---

// drawText draws s anchored at (x,y). halign is left, center or right;
// valign is top, center or bottom.
func (r *renderer) drawText(s string, x, y float64, halign, valign string, style TextStyle) {
	if s == "" {
		return
	}
	face := r.fontCache.Face(r.px(style.Size), style.Bold)
	width := float64(font.MeasureString(face, s).Ceil())
	m := face.Metrics()
	ascent, descent := float64(m.Ascent.Ceil()), float64(m.Descent.Ceil())
	switch halign {
	case "center":
		x -= width / 2
	case "right":
		x -= width
	}
	switch valign {
	case "top":
		y += ascent
	case "center":
		y += (ascent - descent) / 2
	default:
		y -= descent
	}
	col := style.Color
	if col.IsZero() {
		col = ColorBlack
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  &image.Uniform{col.RGBA()},
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(s)
}

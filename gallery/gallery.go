package gallery

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// Generator writes gallery and sample charts as configured.
type Generator struct {
	cfg     *Config
	opts    *gochart.RenderOptions
	formats []gochart.Format
}

// NewGenerator creates a generator for a validated configuration.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{
		cfg:     cfg,
		opts:    cfg.RenderOptions(),
		formats: cfg.OutputFormats(),
	}
}

// Skipped records a chart that was not produced.
type Skipped struct {
	Name string
	Err  error
}

// Report summarizes a run.
type Report struct {
	Written []string
	Skipped []Skipped
	Elapsed time.Duration
}

func (r *Report) skip(name string, err error) {
	r.Skipped = append(r.Skipped, Skipped{Name: name, Err: err})
}

// Run builds every formula of every configured entry. A formula that fails
// to evaluate or whose request fails validation is logged and skipped;
// write failures and cancellation stop the run.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}
	sampler := NewSampler(g.cfg.Seed)

	for i := range g.cfg.Charts {
		e := &g.cfg.Charts[i]
		for j, f := range e.Formulas {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			n := j + 1
			name := fmt.Sprintf("%s_%02d", e.Prefix, n)

			req, err := e.Request(f, n, sampler)
			if err != nil {
				logging.Warn().
					Add(logging.Chart(name)).
					Add(logging.Formula(f.Expr)).
					Add(logging.ErrorField(err)).
					Msg("formula skipped")
				report.skip(name, err)
				continue
			}
			fig, err := gochart.New(req)
			if err != nil {
				logging.Error().
					Add(logging.Chart(name)).
					Add(logging.Kind(req.Kind.String())).
					Add(logging.ErrorField(err)).
					Msg("request rejected")
				report.skip(name, err)
				continue
			}
			if err := g.save(fig, name, report); err != nil {
				return report, err
			}
		}
	}

	report.Elapsed = time.Since(start)
	logging.Info().
		Add(logging.Count("written", len(report.Written))).
		Add(logging.Count("skipped", len(report.Skipped))).
		Add(logging.Duration(report.Elapsed)).
		Msg("gallery complete")
	return report, nil
}

// Samples writes the versioned sample set and a JSON data file for each
// chart into DataDir.
func (g *Generator) Samples(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}
	for _, s := range SampleRequests(g.cfg.Seed) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fig, err := gochart.New(s.Request)
		if err != nil {
			return report, fmt.Errorf("sample %s_%d: %w", s.Name, s.Version, err)
		}
		stem := s.Name + "_" + strconv.Itoa(s.Version)
		if err := g.save(fig, stem, report); err != nil {
			return report, err
		}
		if g.cfg.DataDir == "" {
			continue
		}
		path := filepath.Join(g.cfg.DataDir, stem+".json")
		if err := gochart.SaveData(fig, path, s.Name, s.Version); err != nil {
			return report, fmt.Errorf("save data %s: %w", path, err)
		}
		logging.Debug().Add(logging.Chart(s.Name)).Add(logging.Version(s.Version)).Add(logging.Path(path)).Msg("data saved")
		report.Written = append(report.Written, path)
	}

	report.Elapsed = time.Since(start)
	logging.Info().
		Add(logging.Count("written", len(report.Written))).
		Add(logging.Duration(report.Elapsed)).
		Msg("samples complete")
	return report, nil
}

func (g *Generator) save(fig *gochart.Figure, stem string, report *Report) error {
	for _, format := range g.formats {
		path := filepath.Join(g.cfg.OutputDir, stem+"."+format.Ext())
		if err := gochart.Save(fig, path, g.opts); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		logging.Debug().
			Add(logging.Chart(stem)).
			Add(logging.Format(string(format))).
			Add(logging.Path(path)).
			Msg("chart saved")
		report.Written = append(report.Written, path)
	}
	return nil
}

// TitleFor expands the entry's title template for chart n. "{n}" becomes the
// chart number and "{label}" the formula label, or its expression when
// the label is empty.
func (e *Entry) TitleFor(f Formula, n int) string {
	tmpl := e.Title
	if tmpl == "" {
		tmpl = e.kind().DisplayName() + " {n}: {label}"
	}
	label := f.Label
	if label == "" {
		label = f.Expr
	}
	return strings.NewReplacer("{n}", strconv.Itoa(n), "{label}", label).Replace(tmpl)
}

// Request builds the chart request for formula f, the n-th of the entry.
// Random data is drawn from s.
func (e *Entry) Request(f Formula, n int, s *Sampler) (gochart.Request, error) {
	kind := e.kind()
	req := gochart.Request{Kind: kind, Title: e.TitleFor(f, n), Color: e.Color, Cmap: e.Cmap}

	switch kind {
	case gochart.KindLine, gochart.KindArea, gochart.KindStem, gochart.KindScatter,
		gochart.KindErrorBar, gochart.KindPolar:
		variable := "x"
		if kind == gochart.KindPolar {
			variable = "theta"
		}
		xs, ys, err := e.curve(f, variable)
		if err != nil {
			return req, err
		}
		switch kind {
		case gochart.KindScatter:
			req.X, req.Y = xs, ys
		case gochart.KindErrorBar:
			lo, hi := e.ErrorRange[0], e.ErrorRange[1]
			if hi <= lo {
				lo, hi = 0.1, 0.3
			}
			req.X, req.Y = xs, ys
			req.XErr = s.Uniform(lo, hi, len(xs))
			req.YErr = s.Uniform(lo, hi, len(xs))
		case gochart.KindPolar:
			req.Theta, req.R = xs, ys
		default:
			req.Data, req.Labels = ys, shortLabels(xs)
		}

	case gochart.KindBar, gochart.KindPie:
		labels := e.labelsFor(f)
		values, err := e.categoryValues(f, f.Expr, len(labels), s)
		if err != nil {
			return req, err
		}
		if len(labels) == 0 {
			labels = numberLabels(arange(len(values)))
		}
		req.Data, req.Labels = values, labels

	case gochart.KindStackedBar:
		labels := e.labelsFor(f)
		if len(labels) == 0 {
			labels = numberLabels(arange(10))
		}
		var layers [][]float64
		var names []string
		for _, src := range f.Series {
			layer, err := e.categoryValues(Formula{}, src, len(labels), s)
			if err != nil {
				return req, err
			}
			layers = append(layers, layer)
			names = append(names, src)
		}
		for _, d := range f.Dists {
			d.N = len(labels)
			layer, err := s.Draw(d, len(labels))
			if err != nil {
				return req, err
			}
			layers = append(layers, layer)
			names = append(names, distLabel(d))
		}
		if len(layers) == 0 {
			return req, fmt.Errorf("stacked bar needs series or dists")
		}
		stacks := make([][]float64, len(labels))
		for i := range stacks {
			stacks[i] = make([]float64, len(layers))
			for j, layer := range layers {
				stacks[i][j] = layer[i]
			}
		}
		req.Data, req.Labels, req.Series = stacks, labels, names

	case gochart.KindHistogram:
		switch {
		case len(f.Dists) > 0:
			data, err := s.Draw(f.Dists[0], e.Samples)
			if err != nil {
				return req, err
			}
			req.Data = data
		case len(f.Values) > 0:
			req.Data = f.Values
		default:
			return req, fmt.Errorf("histogram needs dists or values")
		}
		if e.Bins > 0 {
			req.Bins = e.Bins
		}
		req.Density = e.Density

	case gochart.KindBox:
		var groups [][]float64
		for _, d := range f.Dists {
			g, err := s.Draw(d, e.Samples)
			if err != nil {
				return req, err
			}
			groups = append(groups, g)
		}
		if len(f.Values) > 0 {
			groups = append(groups, f.Values)
		}
		if len(groups) == 0 {
			return req, fmt.Errorf("box plot needs dists or values")
		}
		labels := e.labelsFor(f)
		if len(labels) != len(groups) {
			labels = make([]string, len(groups))
			for i := range labels {
				labels[i] = "Dataset " + strconv.Itoa(i+1)
			}
		}
		req.Data, req.Labels = groups, labels

	case gochart.KindHeatmap, gochart.KindSurface:
		if f.Expr == "" {
			return req, fmt.Errorf("%s needs an expr in X and Y", kind)
		}
		axis := Linspace(e.Domain[0], e.Domain[1], e.Samples)
		grid, err := EvalGrid(f.Expr, axis, axis)
		if err != nil {
			return req, err
		}
		req.Data = grid
		if kind == gochart.KindSurface {
			req.X, req.Y = axis, axis
		}

	default:
		return req, fmt.Errorf("%w: %q", gochart.ErrUnknownKind, e.Kind)
	}
	return req, nil
}

// curve evaluates a formula over the entry's domain, or takes its literal
// values against their indices.
func (e *Entry) curve(f Formula, variable string) (xs, ys []float64, err error) {
	if f.Expr != "" {
		return EvalCurve(f.Expr, variable, Linspace(e.Domain[0], e.Domain[1], e.Samples))
	}
	if len(f.Values) > 0 {
		return arange(len(f.Values)), f.Values, nil
	}
	return nil, nil, fmt.Errorf("formula needs an expr or values")
}

// categoryValues produces one value per category: literal values, a draw
// from the first distribution, or src evaluated at each category index.
func (e *Entry) categoryValues(f Formula, src string, n int, s *Sampler) ([]float64, error) {
	switch {
	case len(f.Values) > 0:
		return f.Values, nil
	case len(f.Dists) > 0:
		if n == 0 {
			n = e.Samples
		}
		d := f.Dists[0]
		d.N = n
		return s.Draw(d, n)
	case src != "":
		if n == 0 {
			n = 10
		}
		_, ys, err := EvalCurve(src, "x", arange(n))
		if err != nil {
			return nil, err
		}
		if len(ys) != n {
			return nil, fmt.Errorf("%q is not finite at every category", src)
		}
		return ys, nil
	}
	return nil, fmt.Errorf("formula needs values, dists or an expr")
}

func (e *Entry) labelsFor(f Formula) []string {
	if len(f.Labels) > 0 {
		return f.Labels
	}
	return e.Labels
}

func distLabel(d Distribution) string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return d.Name + "(" + strings.Join(parts, ",") + ")"
}

func shortLabels(xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	return out
}

// Package gallery generates batches of charts: the versioned sample set
// with its companion data files, and the formula gallery driven by a
// configuration file.
package gallery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig indicates a configuration that failed to parse or
	// validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingEnvVar indicates a ${VAR:?message} reference to an unset
	// variable.
	ErrMissingEnvVar = errors.New("required environment variable not set")
)

// Config drives a gallery run.
type Config struct {
	OutputDir string    `yaml:"output_dir" json:"output_dir"`
	DataDir   string    `yaml:"data_dir" json:"data_dir"`
	Formats   []string  `yaml:"formats" json:"formats"`
	Seed      uint64    `yaml:"seed" json:"seed"`
	Width     float64   `yaml:"width" json:"width"`
	Height    float64   `yaml:"height" json:"height"`
	DPI       float64   `yaml:"dpi" json:"dpi"`
	FontDirs  []string  `yaml:"font_dirs" json:"font_dirs"`
	Log       LogConfig `yaml:"log" json:"log"`
	Charts    []Entry   `yaml:"charts" json:"charts"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Entry is one family of gallery charts sharing a kind and a domain. Each
// formula produces one chart named <prefix>_<NN>.
type Entry struct {
	Kind    string     `yaml:"kind" json:"kind"`
	Prefix  string     `yaml:"prefix" json:"prefix"`
	Title   string     `yaml:"title" json:"title"`
	Domain  [2]float64 `yaml:"domain" json:"domain"`
	Samples int        `yaml:"samples" json:"samples"`
	Labels  []string   `yaml:"labels" json:"labels"`
	Cmap    string     `yaml:"cmap" json:"cmap"`
	Color   string     `yaml:"color" json:"color"`
	Bins    int        `yaml:"bins" json:"bins"`
	Density bool       `yaml:"density" json:"density"`
	// ErrorRange bounds the uniform error magnitudes of error_bar charts.
	ErrorRange [2]float64 `yaml:"error_range" json:"error_range"`
	Formulas   []Formula  `yaml:"formulas" json:"formulas"`
}

// Formula is the data source of one chart: an expression, literal values or
// random distributions.
type Formula struct {
	Label  string         `yaml:"label" json:"label"`
	Expr   string         `yaml:"expr" json:"expr"`
	Series []string       `yaml:"series" json:"series"`
	Values []float64      `yaml:"values" json:"values"`
	Labels []string       `yaml:"labels" json:"labels"`
	Dists  []Distribution `yaml:"dists" json:"dists"`
}

// Distribution names a random generator and its parameters.
type Distribution struct {
	Name   string    `yaml:"name" json:"name"`
	Params []float64 `yaml:"params" json:"params"`
	N      int       `yaml:"n" json:"n"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "output",
		DataDir:   "test_data",
		Formats:   []string{"html"},
		Seed:      42,
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks the configuration and fills per-entry defaults.
func (c *Config) Validate() error {
	var problems []string
	if c.OutputDir == "" {
		problems = append(problems, "output_dir is required")
	}
	if len(c.Formats) == 0 {
		problems = append(problems, "at least one format is required")
	}
	for _, f := range c.Formats {
		if _, err := gochart.ParseFormat(f); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if c.Width < 0 || c.Height < 0 || c.DPI < 0 {
		problems = append(problems, "width, height and dpi must not be negative")
	}
	if !logging.ValidLevel(c.Log.Level) {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	for i := range c.Charts {
		problems = append(problems, c.Charts[i].validate(i)...)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (e *Entry) validate(i int) []string {
	var problems []string
	kind, err := gochart.ParseKind(e.Kind)
	if err != nil {
		return []string{fmt.Sprintf("charts[%d]: %v", i, err)}
	}
	if e.Prefix == "" {
		e.Prefix = kind.String()
	}
	if e.Samples == 0 {
		e.Samples = 100
	}
	if e.Samples < 2 {
		problems = append(problems, fmt.Sprintf("charts[%d]: samples must be at least 2", i))
	}
	if e.Domain == [2]float64{} {
		e.Domain = [2]float64{0, 10}
	}
	if e.Domain[0] >= e.Domain[1] {
		problems = append(problems, fmt.Sprintf("charts[%d]: domain must be increasing", i))
	}
	if len(e.Formulas) == 0 {
		problems = append(problems, fmt.Sprintf("charts[%d]: no formulas", i))
	}
	for j, f := range e.Formulas {
		if f.Expr == "" && len(f.Series) == 0 && len(f.Values) == 0 && len(f.Dists) == 0 {
			problems = append(problems, fmt.Sprintf("charts[%d].formulas[%d]: needs expr, series, values or dists", i, j))
		}
		for _, d := range f.Dists {
			if !KnownDistribution(d.Name) {
				problems = append(problems, fmt.Sprintf("charts[%d].formulas[%d]: unknown distribution %q", i, j, d.Name))
			}
		}
	}
	return problems
}

// kind returns the parsed chart kind of a validated entry.
func (e *Entry) kind() gochart.Kind {
	k, _ := gochart.ParseKind(e.Kind)
	return k
}

// RenderOptions builds the rendering options shared by every chart of a run.
func (c *Config) RenderOptions() *gochart.RenderOptions {
	opts := gochart.DefaultRenderOptions()
	if c.DPI > 0 {
		opts.DPI = c.DPI
	}
	opts.Width, opts.Height = c.Width, c.Height
	opts.FontDirs = c.FontDirs
	opts.FontCache = gochart.NewFontCache(c.FontDirs...)
	return opts
}

// OutputFormats returns the parsed output formats.
func (c *Config) OutputFormats() []gochart.Format {
	out := make([]gochart.Format, 0, len(c.Formats))
	for _, f := range c.Formats {
		if parsed, err := gochart.ParseFormat(f); err == nil {
			out = append(out, parsed)
		}
	}
	return out
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoChart/gallery"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// batchOptions holds the flags shared by the samples and gallery commands.
type batchOptions struct {
	configPath string
	outputDir  string
	dataDir    string
	formats    []string
	seed       uint64
	dpi        float64
}

func (o *batchOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "Gallery configuration file (default: built-in gallery)")
	f.StringVarP(&o.outputDir, "out", "o", "", "Output directory (overrides config)")
	f.StringSliceVarP(&o.formats, "formats", "f", nil, "Output formats, e.g. html,png (overrides config)")
	f.Uint64Var(&o.seed, "seed", 0, "Random seed (overrides config)")
	f.Float64Var(&o.dpi, "dpi", 0, "Raster resolution (overrides config)")
}

// load reads the configuration and applies flag overrides.
func (o *batchOptions) load(cmd *cobra.Command) (*gallery.Config, error) {
	loader := gallery.NewLoader()
	var (
		cfg *gallery.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = loader.LoadFile(o.configPath)
	} else {
		cfg, err = loader.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	o.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *batchOptions) apply(cmd *cobra.Command, cfg *gallery.Config) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Lookup("data-dir") != nil && flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("formats") {
		cfg.Formats = o.formats
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("dpi") {
		cfg.DPI = o.dpi
	}
	if flags.Changed("log-level") {
		return
	}
	if cfg.Log.Level != "" {
		logging.SetLevel(cfg.Log.Level)
	}
}

func (a *App) newSamplesCmd() *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Write the versioned sample charts with their data files",
		Long: `Write two versions of twelve sample charts, a small and a large dataset
each, together with a JSON file holding the data behind every chart.

Examples:
  chartgen samples
  chartgen samples -o output --data-dir test_data -f html,png --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := gallery.NewGenerator(cfg).Samples(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Wrote %d files to %s and %s\n", len(report.Written), cfg.OutputDir, cfg.DataDir)
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory for the JSON data files (overrides config)")
	return cmd
}

func (a *App) newGalleryCmd() *cobra.Command {
	opts := &batchOptions{}
	var watch bool
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render the formula gallery",
		Long: `Render every formula of the gallery configuration, one chart per formula.
Formulas that cannot be evaluated are reported and skipped.

Examples:
  chartgen gallery
  chartgen gallery -c gallery.yaml -f html,svg
  chartgen gallery -c gallery.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && opts.configPath == "" {
				return fmt.Errorf("--watch needs a configuration file (-c)")
			}
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := a.runGallery(cmd.Context(), cfg); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			fmt.Fprintf(a.stdout, "Watching %s for changes\n", opts.configPath)
			return gallery.Watch(cmd.Context(), opts.configPath, gallery.NewLoader(), 0, func(next *gallery.Config) {
				opts.apply(cmd, next)
				if err := next.Validate(); err != nil {
					logging.Warn().Add(logging.ErrorField(err)).Msg("config rejected")
					return
				}
				if err := a.runGallery(cmd.Context(), next); err != nil {
					logging.Error().Add(logging.ErrorField(err)).Msg("gallery run failed")
				}
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the configuration file changes")
	return cmd
}

func (a *App) runGallery(ctx context.Context, cfg *gallery.Config) error {
	report, err := gallery.NewGenerator(cfg).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %d files to %s", len(report.Written), cfg.OutputDir)
	if n := len(report.Skipped); n > 0 {
		fmt.Fprintf(a.stdout, ", skipped %d:", n)
		for _, s := range report.Skipped {
			fmt.Fprintf(a.stdout, "\n  %s: %v", s.Name, s.Err)
		}
	}
	fmt.Fprintln(a.stdout)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// Build information set at link time.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App is the chartgen command line application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	logLevel  string
	logFormat string
}

// New creates the application with all subcommands.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "chartgen",
		Short: "Validate chart requests and render charts",
		Long: `chartgen checks a chart request against the rules of its kind and, when
it is valid, renders it to PNG, JPEG, SVG, PDF, EPS, HTML or XLSX.

Supported kinds: line, bar, pie, box, heatmap, polar, histogram, scatter,
stacked_bar, area, stem, error_bar and surface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initLogging()
		},
	}
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	app.root.PersistentFlags().StringVar(&app.logFormat, "log-format", "console", "Log format (console or json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newKindsCmd(),
		app.newRenderCmd(),
		app.newValidateCmd(),
		app.newSamplesCmd(),
		app.newGalleryCmd(),
	)
	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the application until it finishes or is interrupted.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the application with specific arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) initLogging() {
	cfg := logging.DefaultConfig()
	cfg.Format = a.logFormat
	cfg.Output = a.stderr
	logging.Init(cfg)
	if a.logLevel != "" {
		logging.SetLevel(a.logLevel)
	}
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "chartgen version %s\n", gochart.Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

func (a *App) newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List chart kinds with their default titles and file names",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%-12s %-18s %s\n", "KIND", "DEFAULT TITLE", "FILE STEM")
			for _, k := range gochart.Kinds() {
				fmt.Fprintf(a.stdout, "%-12s %-18s %s\n", k, k.DefaultTitle(), k.FileStem())
			}
		},
	}
}

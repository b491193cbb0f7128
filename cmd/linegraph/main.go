// Command linegraph renders data files as line charts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chart"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	outputPath string
	outputDir  string
	format     string
	width      int
	height     int
	configPath string
	sheet      string
	legacy     bool
	watch      bool
	logLevel   string
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "linegraph [data files...]",
		Short: "Render data files as line charts",
		Long: `linegraph draws every numeric column of a CSV, JSON or XLSX file as a
smoothed line series and writes the chart as PNG or SVG.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PreRunE:      setup,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (single input only; default: input name with the format extension)")
	rootCmd.Flags().StringVar(&outputDir, "out-dir", "", "Directory for output files (default: next to each input)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: png or svg (default: from --output, else png)")
	rootCmd.Flags().IntVar(&width, "width", 800, "Chart width in pixels")
	rootCmd.Flags().IntVar(&height, "height", 400, "Chart height in pixels")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML chart options file")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read from XLSX inputs (default: first)")
	rootCmd.Flags().BoolVar(&legacy, "legacy", false, "Start from the legacy option profile instead of the defaults")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Render again whenever the input changes (single input only)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	chart.SetLogger(log)
	backend.SetLogger(log)
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) > 1 && (outputPath != "" || watch) {
		return errors.New("--output and --watch take a single input")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if watch {
		return watchAndRender(ctx, args[0], cfg)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, input := range args {
		g.Go(func() error {
			out, err := render(input, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			log.WithField("input", input).WithField("output", out).Info("chart written")
			return nil
		})
	}
	return g.Wait()
}

// loadConfig applies the options file, if any, on top of the profile
// selected by --legacy.
func loadConfig() (backend.Config, error) {
	profile := ""
	if legacy {
		profile = backend.ProfileLegacy
	}
	if configPath != "" {
		return backend.LoadProfileOptions(configPath, profile)
	}
	o, err := backend.ProfileOptions(profile)
	return backend.Config{Options: o}, err
}

func job(input string) renderJob {
	f := strings.ToLower(format)
	out := outputPath
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		if f != "svg" {
			f = "png"
		}
	}
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + f
		dir := outputDir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		out = filepath.Join(dir, base)
	}
	return renderJob{
		output: out,
		format: f,
		width:  width,
		height: height,
	}
}

func load(input string) (backend.Dataset, error) {
	if sheet != "" && backend.FormatOf(input) == backend.FormatXLSX {
		return backend.LoadXLSX(input, sheet)
	}
	return backend.Load(input)
}

func render(input string, cfg backend.Config) (string, error) {
	d, err := load(input)
	if err != nil {
		return "", err
	}
	for _, s := range d.Series {
		entry := log.WithField("input", input).WithField("series", s.Name()).WithField("len", s.Len())
		if lo, hi, ok := s.Range(); ok {
			entry = entry.WithFields(logrus.Fields{"min": lo, "max": hi, "mean": s.Mean()})
		}
		entry.Debug("series loaded")
	}
	j := job(input)
	return j.output, j.run(d, cfg)
}

func watchAndRender(ctx context.Context, input string, cfg backend.Config) error {
	ds, err := backend.NewDatasource(ctx)
	if err != nil {
		return err
	}
	if err := ds.Open(input); err != nil {
		log.WithError(err).Warn("initial load failed, waiting for changes")
	}
	j := job(input)
	last := 0
	for session := range ds.Stream(ctx) {
		if session.Version == last {
			continue
		}
		last = session.Version
		if session.Err != nil {
			log.WithError(session.Err).Warn("failed loading data")
			continue
		}
		if err := j.run(session.Data, cfg); err != nil {
			log.WithError(err).Error("failed rendering chart")
			continue
		}
		log.WithField("output", j.output).WithField("version", session.Version).Info("chart written")
	}
	return nil
}

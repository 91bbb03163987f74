package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/difr/internal/config"
	"github.com/Sumatoshi-tech/difr/internal/observability"
	"github.com/Sumatoshi-tech/difr/internal/render"
	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/internal/source"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
	"github.com/Sumatoshi-tech/difr/pkg/version"
)

// Flag names used to detect explicit overrides of config values.
const (
	flagExcludeEmpty = "exclude-empty-lines"
	flagFrom         = "from"
	flagTo           = "to"
	flagFormat       = "format"
	flagHighlight    = "highlight"
	flagShowMatches  = "show-matches"
	flagExitCode     = "exit-code"
	flagMetricsFile  = "metrics-file"
	flagLogJSON      = "log-json"
)

// Log levels selected by --verbose and --quiet.
const (
	levelVerbose = "debug"
	levelQuiet   = "error"
)

// outputFileMode is the permission of report files written with --output.
const outputFileMode = 0o644

// compareFlags holds the flags of the root compare command.
type compareFlags struct {
	excludeEmpty bool
	from         int
	to           int
	format       string
	output       string
	noColor      bool
	highlight    bool
	showMatches  bool
	exitCode     bool
	metricsFile  string
}

func (f *compareFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.excludeEmpty, flagExcludeEmpty, false, "ignore empty and whitespace-only lines")
	cmd.Flags().IntVar(&f.from, flagFrom, 1, "first source line to compare (1-based)")
	cmd.Flags().IntVar(&f.to, flagTo, 0, "source line where comparison stops, exclusive (0 = end of file)")
	cmd.Flags().StringVarP(&f.format, flagFormat, "f", config.DefaultFormat, "output format (text, json, yaml, summary)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&f.highlight, flagHighlight, false, "highlight differing characters inside mismatched lines")
	cmd.Flags().BoolVar(&f.showMatches, flagShowMatches, false, "include matching lines in the report")
	cmd.Flags().BoolVar(&f.exitCode, flagExitCode, false, "exit with status 1 when the files differ")
	cmd.Flags().StringVar(&f.metricsFile, flagMetricsFile, "", "write Prometheus metrics to this file on exit")
}

// loadSettings reads the configuration and applies explicitly set flags on top.
func loadSettings(cmd *cobra.Command, globals *globalFlags, flags *compareFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(globals.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	if flags != nil {
		if changed(flagExcludeEmpty) {
			cfg.Compare.ExcludeEmptyLines = flags.excludeEmpty
		}

		if changed(flagFormat) {
			cfg.Output.Format = flags.format
		}

		if changed(flagHighlight) {
			cfg.Output.Highlight = flags.highlight
		}

		if changed(flagShowMatches) {
			cfg.Output.ShowMatches = flags.showMatches
		}

		if changed(flagExitCode) {
			cfg.Compare.ExitCode = flags.exitCode
		}

		if changed(flagMetricsFile) {
			cfg.Telemetry.MetricsFile = flags.metricsFile
		}

		if flags.noColor {
			cfg.Output.Color = false
		}
	}

	if changed(flagLogJSON) && globals.logJSON {
		cfg.Logging.Format = config.LogFormatJSON
	}

	switch {
	case globals.verbose:
		cfg.Logging.Level = levelVerbose
	case globals.quiet:
		cfg.Logging.Level = levelQuiet
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// comparatorOptions combines the configured filters with the range flags.
func comparatorOptions(cmd *cobra.Command, cfg *config.Config, flags *compareFlags) linecmp.Config {
	options := cfg.Comparator()

	if cmd.Flags().Changed(flagFrom) || cmd.Flags().Changed(flagTo) {
		options.Range = &linecmp.Range{From: flags.from, To: flags.to}
	}

	return options
}

// observabilityConfig maps the difr configuration onto the telemetry setup.
func observabilityConfig(cfg *config.Config, mode observability.AppMode, logOutput io.Writer) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogOutput = logOutput

	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	return obsCfg
}

func runCompare(cmd *cobra.Command, globals *globalFlags, flags *compareFlags, leftPath, rightPath string) error {
	cfg, err := loadSettings(cmd, globals, flags)
	if err != nil {
		return err
	}

	renderOpts := cfg.RenderOptions()
	renderOpts.Color = cfg.Output.Color && !color.NoColor && flags.output == ""

	renderer, err := render.New(cfg.Output.Format, renderOpts)
	if err != nil {
		return err
	}

	providers, err := observability.Init(observabilityConfig(cfg, observability.ModeCLI, cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(cmd.Context()))
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	comparisons, err := observability.NewComparisonMetrics(providers.Meter)
	if err != nil {
		return err
	}

	loader, err := source.NewOSLoader()
	if err != nil {
		return err
	}

	runner, err := session.NewRunner(loader, comparatorOptions(cmd, cfg, flags), session.Deps{
		Logger:  providers.Logger,
		Tracer:  providers.Tracer,
		Metrics: comparisons,
	})
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context(), leftPath, rightPath)
	if err != nil {
		return err
	}

	// Quiet silences stdout only; an explicit output file is still written.
	if flags.output != "" || !globals.quiet {
		err = writeReport(cmd.OutOrStdout(), flags.output, renderer, res, providers.Logger)
		if err != nil {
			return err
		}
	}

	if !res.Equal && cfg.Compare.ExitCode {
		return session.ErrFilesDiffer
	}

	return nil
}

// writeReport renders res to the output file, or to stdout when path is empty.
func writeReport(stdout io.Writer, path string, renderer render.Renderer, res *session.Result, logger *slog.Logger) (err error) {
	if path == "" {
		return renderer.Render(stdout, res)
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFileMode)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	err = renderer.Render(file, res)
	if err != nil {
		return err
	}

	logger.Debug("report written", "path", path)

	return nil
}

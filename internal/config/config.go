// Package config provides YAML-based configuration for difr.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Sumatoshi-tech/difr/internal/render"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidSample    = errors.New("invalid trace sample ratio")
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default values.
const (
	DefaultExcludeEmptyLines = false
	DefaultExitCode          = false
	DefaultFormat            = render.FormatText
	DefaultColor             = true
	DefaultHighlight         = false
	DefaultShowMatches       = false
	DefaultLogLevel          = "warn"
	DefaultLogFormat         = LogFormatText
	DefaultOTLPEndpoint      = ""
	DefaultOTLPInsecure      = false
	DefaultMetricsFile       = ""
	DefaultSampleRatio       = 0.0
	DefaultEnvironment       = ""
)

// Config holds all difr settings.
type Config struct {
	Compare   CompareConfig   `mapstructure:"compare"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// CompareConfig holds comparator settings.
type CompareConfig struct {
	ExcludeEmptyLines bool `mapstructure:"exclude_empty_lines"`
	ExitCode          bool `mapstructure:"exit_code"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	Color       bool   `mapstructure:"color"`
	Highlight   bool   `mapstructure:"highlight"`
	ShowMatches bool   `mapstructure:"show_matches"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry and metrics export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains(render.Formats(), c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(c.Logging.Level))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	// Zero keeps every trace; anything else must be a probability.
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSample, c.Telemetry.SampleRatio)
	}

	return nil
}

// Comparator returns the comparator settings carried by the file. Line
// ranges are per invocation and never come from configuration.
func (c *Config) Comparator() linecmp.Config {
	return linecmp.Config{ExcludeEmptyLines: c.Compare.ExcludeEmptyLines}
}

// RenderOptions returns the renderer settings.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Color:       c.Output.Color,
		Highlight:   c.Output.Highlight,
		ShowMatches: c.Output.ShowMatches,
	}
}

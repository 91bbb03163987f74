package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/difr/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".difr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `compare:
  exclude_empty_lines: true
  exit_code: true
output:
  format: json
  color: false
  highlight: true
  show_matches: true
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  metrics_file: /tmp/difr.prom
  sample_ratio: 0.25
  environment: staging
`

	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.True(t, cfg.Compare.ExcludeEmptyLines)
	assert.True(t, cfg.Compare.ExitCode)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.True(t, cfg.Output.Highlight)
	assert.True(t, cfg.Output.ShowMatches)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, config.LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, "/tmp/difr.prom", cfg.Telemetry.MetricsFile)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 1e-9)
	assert.Equal(t, "staging", cfg.Telemetry.Environment)

	assert.True(t, cfg.Comparator().ExcludeEmptyLines)
	assert.Nil(t, cfg.Comparator().Range)
	assert.True(t, cfg.RenderOptions().Highlight)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "output:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "logging:\n  level: loud\n"))
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestLoadConfig_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "logging:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrInvalidLogFormat)
}

func TestLoadConfig_InvalidSampleRatio(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "telemetry:\n  sample_ratio: 1.5\n"))
	require.ErrorIs(t, err, config.ErrInvalidSample)

	_, err = config.LoadConfig(writeConfig(t, "telemetry:\n  sample_ratio: -0.1\n"))
	require.ErrorIs(t, err, config.ErrInvalidSample)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "output: [unclosed\n"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DIFR_OUTPUT_FORMAT", "summary")
	t.Setenv("DIFR_COMPARE_EXIT_CODE", "true")

	cfg, err := config.LoadConfig(writeConfig(t, "output:\n  format: yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "summary", cfg.Output.Format)
	assert.True(t, cfg.Compare.ExitCode)
}

func TestLoadConfig_TelemetryEnvOverride(t *testing.T) {
	t.Setenv("DIFR_TELEMETRY_SAMPLE_RATIO", "0.1")
	t.Setenv("DIFR_TELEMETRY_ENVIRONMENT", "ci")

	cfg, err := config.LoadConfig(writeConfig(t, "telemetry:\n  environment: dev\n"))
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Telemetry.SampleRatio, 1e-9)
	assert.Equal(t, "ci", cfg.Telemetry.Environment)
}

func TestLoadConfig_SearchPathWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

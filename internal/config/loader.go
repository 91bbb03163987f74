package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".difr"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for difr settings.
const envPrefix = "DIFR"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or env var is set.
// It is also the source of every viper default.
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			ExcludeEmptyLines: DefaultExcludeEmptyLines,
			ExitCode:          DefaultExitCode,
		},
		Output: OutputConfig{
			Format:      DefaultFormat,
			Color:       DefaultColor,
			Highlight:   DefaultHighlight,
			ShowMatches: DefaultShowMatches,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: DefaultOTLPEndpoint,
			OTLPInsecure: DefaultOTLPInsecure,
			MetricsFile:  DefaultMetricsFile,
			SampleRatio:  DefaultSampleRatio,
			Environment:  DefaultEnvironment,
		},
	}
}

// applyDefaults registers every key of Default with viper. A key needs a
// default to be visible to AutomaticEnv during Unmarshal.
func applyDefaults(viperCfg *viper.Viper) {
	def := Default()

	defaults := map[string]any{
		"compare.exclude_empty_lines": def.Compare.ExcludeEmptyLines,
		"compare.exit_code":           def.Compare.ExitCode,
		"output.format":               def.Output.Format,
		"output.color":                def.Output.Color,
		"output.highlight":            def.Output.Highlight,
		"output.show_matches":         def.Output.ShowMatches,
		"logging.level":               def.Logging.Level,
		"logging.format":              def.Logging.Format,
		"telemetry.otlp_endpoint":     def.Telemetry.OTLPEndpoint,
		"telemetry.otlp_insecure":     def.Telemetry.OTLPInsecure,
		"telemetry.metrics_file":      def.Telemetry.MetricsFile,
		"telemetry.sample_ratio":      def.Telemetry.SampleRatio,
		"telemetry.environment":       def.Telemetry.Environment,
	}

	for key, value := range defaults {
		viperCfg.SetDefault(key, value)
	}
}

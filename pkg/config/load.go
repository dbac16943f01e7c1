package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration, used when no file is given.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow the
// naming convention STRATA_SECTION_FIELD (e.g. STRATA_PARSER_MAX_DEPTH) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format STRATA_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Import overrides
	if val := os.Getenv("STRATA_IMPORT_BRUSHES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Import.Brushes = b
		}
	}
	if val := os.Getenv("STRATA_IMPORT_WORLD_BRUSHES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Import.WorldBrushes = b
		}
	}
	if val := os.Getenv("STRATA_IMPORT_DETAIL_BRUSHES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Import.DetailBrushes = b
		}
	}
	if val := os.Getenv("STRATA_IMPORT_LIGHTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Import.Lights = b
		}
	}
	if val := os.Getenv("STRATA_IMPORT_MATERIAL_PATH"); val != "" {
		cfg.Import.MaterialPath = val
	}

	// Parser overrides
	if val := os.Getenv("STRATA_PARSER_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Parser.MaxFileSize = i
		}
	}
	if val := os.Getenv("STRATA_PARSER_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Parser.MaxDepth = i
		}
	}

	// Assets overrides
	if val := os.Getenv("STRATA_ASSETS_BACKEND"); val != "" {
		cfg.Assets.Backend = val
	}
	if val := os.Getenv("STRATA_ASSETS_MANIFEST_PATH"); val != "" {
		cfg.Assets.ManifestPath = val
	}
	if val := os.Getenv("STRATA_ASSETS_CATALOG_PATH"); val != "" {
		cfg.Assets.CatalogPath = val
	}
	if val := os.Getenv("STRATA_ASSETS_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Assets.BusyTimeout = d
		}
	}

	// Journal overrides
	if val := os.Getenv("STRATA_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("STRATA_JOURNAL_BACKEND"); val != "" {
		cfg.Journal.Backend = val
	}
	if val := os.Getenv("STRATA_JOURNAL_PATH"); val != "" {
		cfg.Journal.Path = val
	}
	if val := os.Getenv("STRATA_JOURNAL_QUERY_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Journal.QueryLimit = i
		}
	}

	// Watch overrides
	if val := os.Getenv("STRATA_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv("STRATA_WATCH_RESCAN_SCHEDULE"); val != "" {
		cfg.Watch.RescanSchedule = val
	}
	if val := os.Getenv("STRATA_WATCH_EXPORT_PATH"); val != "" {
		cfg.Watch.ExportPath = val
	}
	if val := os.Getenv("STRATA_WATCH_METRICS_ADDRESS"); val != "" {
		cfg.Watch.MetricsAddress = val
	}

	// Telemetry overrides
	if val := os.Getenv("STRATA_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("STRATA_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("STRATA_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("STRATA_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("STRATA_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("STRATA_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("STRATA_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

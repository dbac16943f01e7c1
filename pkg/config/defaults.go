package config

import "time"

// Default values for configuration fields.
const (
	// Import defaults
	DefaultImportBrushes       = true
	DefaultImportWorldBrushes  = true
	DefaultImportDetailBrushes = true
	DefaultImportLights        = true
	DefaultMaterialPath        = "dev/placeholder"

	// Parser defaults
	DefaultMaxFileSize = int64(64 << 20) // 64MB
	DefaultMaxDepth    = 32

	// Assets defaults
	DefaultAssetsBackend     = "memory"
	DefaultAssetsCatalogPath = "data/materials.db"
	DefaultAssetsBusyTimeout = 5 * time.Second

	// Journal defaults
	DefaultJournalEnabled     = true
	DefaultJournalBackend     = "sqlite"
	DefaultJournalPath        = "data/journal.db"
	DefaultJournalBusyTimeout = 5 * time.Second
	DefaultJournalQueryLimit  = 100

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "strata"
	DefaultMetricsSubsystem   = "import"
	DefaultTracingEnabled     = false
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingInsecure    = true
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "strata"
)

// DefaultDurationBuckets are the histogram buckets for parse and import
// durations, in seconds.
var DefaultDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0}

// ApplyDefaults fills in default values for any unset configuration fields.
// It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	applyImportDefaults(&cfg.Import)

	// Parser defaults
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultMaxDepth
	}

	// Assets defaults
	if cfg.Assets.Backend == "" {
		cfg.Assets.Backend = DefaultAssetsBackend
	}
	if cfg.Assets.CatalogPath == "" {
		cfg.Assets.CatalogPath = DefaultAssetsCatalogPath
	}
	if cfg.Assets.BusyTimeout == 0 {
		cfg.Assets.BusyTimeout = DefaultAssetsBusyTimeout
	}

	applyJournalDefaults(&cfg.Journal)

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

// applyImportDefaults turns on every import step when the section is absent
// from the file. A section with any field set is taken as authored and its
// false flags are respected.
func applyImportDefaults(cfg *ImportConfig) {
	hasAnyConfig := cfg.Brushes || cfg.WorldBrushes || cfg.DetailBrushes ||
		cfg.Lights || cfg.MaterialPath != ""

	if !hasAnyConfig {
		cfg.Brushes = DefaultImportBrushes
		cfg.WorldBrushes = DefaultImportWorldBrushes
		cfg.DetailBrushes = DefaultImportDetailBrushes
		cfg.Lights = DefaultImportLights
	}
	if cfg.MaterialPath == "" {
		cfg.MaterialPath = DefaultMaterialPath
	}
}

// applyJournalDefaults enables the journal when the section is absent from
// the file, mirroring the import-section treatment of true defaults.
func applyJournalDefaults(cfg *JournalConfig) {
	if !cfg.Enabled {
		hasAnyConfig := cfg.Backend != "" || cfg.Path != "" ||
			cfg.BusyTimeout != 0 || cfg.QueryLimit != 0

		if !hasAnyConfig {
			cfg.Enabled = DefaultJournalEnabled
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = DefaultJournalBackend
	}
	if cfg.Path == "" {
		cfg.Path = DefaultJournalPath
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = DefaultJournalBusyTimeout
	}
	if cfg.QueryLimit == 0 {
		cfg.QueryLimit = DefaultJournalQueryLimit
	}
}

// applyTelemetryDefaults applies default values to telemetry configuration.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults; enabled unless the section says otherwise.
	if !cfg.Metrics.Enabled {
		hasAnyConfig := cfg.Metrics.Path != "" || cfg.Metrics.Namespace != "" ||
			cfg.Metrics.Subsystem != "" || len(cfg.Metrics.DurationBuckets) > 0

		if !hasAnyConfig {
			cfg.Metrics.Enabled = DefaultMetricsEnabled
		}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// Tracing defaults; disabled by default, plaintext towards a local
	// collector when the section is untouched.
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
		if !cfg.Tracing.Enabled {
			cfg.Tracing.Insecure = DefaultTracingInsecure
		}
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}

package config

import "time"

// Config is the root configuration structure for strata. It contains all
// configuration sections for the import pipeline, the parser, asset
// resolution, the import journal, watch mode, and telemetry.
type Config struct {
	// Import controls which parts of a parsed map are materialized into
	// scene objects.
	Import ImportConfig `yaml:"import"`

	// Parser contains limits applied while reading map sources.
	Parser ParserConfig `yaml:"parser"`

	// Assets configures how material references are resolved.
	Assets AssetsConfig `yaml:"assets"`

	// Journal configures recording of import sessions.
	Journal JournalConfig `yaml:"journal"`

	// Watch configures watch mode (continuous re-import on change).
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ImportConfig selects the assembly steps to run. The four booleans default
// to true when the whole section is absent from the file.
type ImportConfig struct {
	// Brushes enables solid import as a whole. When false, no solid
	// objects are created regardless of the world/detail flags.
	// Default: true
	Brushes bool `yaml:"brushes"`

	// WorldBrushes imports solids sitting under the world block.
	// Default: true
	WorldBrushes bool `yaml:"world_brushes"`

	// DetailBrushes imports solids carried by entities.
	// Default: true
	DetailBrushes bool `yaml:"detail_brushes"`

	// Lights imports entities whose classname starts with "light".
	// Default: true
	Lights bool `yaml:"lights"`

	// MaterialPath is the material assigned to every imported solid,
	// resolved through the asset repository once per import.
	// Default: "dev/placeholder"
	MaterialPath string `yaml:"material_path"`
}

// ParserConfig contains limits applied while reading map sources.
type ParserConfig struct {
	// MaxFileSize is the largest map file the parser accepts, in bytes.
	// Default: 67108864 (64MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the deepest brace nesting the parser accepts.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`
}

// AssetsConfig configures material resolution.
type AssetsConfig struct {
	// Backend selects the material repository implementation.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// ManifestPath is an optional YAML manifest of materials loaded into
	// the memory backend at startup. Empty means start empty.
	// Default: ""
	ManifestPath string `yaml:"manifest_path"`

	// CatalogPath is the SQLite database file used by the sqlite backend.
	// Default: "data/materials.db"
	CatalogPath string `yaml:"catalog_path"`

	// BusyTimeout is the SQLite busy timeout for the sqlite backend.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// JournalConfig configures recording of import sessions.
type JournalConfig struct {
	// Enabled controls whether import sessions are recorded at all.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the journal storage implementation.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file used by the sqlite backend.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// BusyTimeout is the SQLite busy timeout for the sqlite backend.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// QueryLimit is the default number of entries returned by history
	// queries when the caller does not specify one.
	// Default: 100
	QueryLimit int `yaml:"query_limit"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long the watcher waits after the last filesystem
	// event before re-importing, coalescing editor save bursts.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// RescanSchedule is an optional cron expression for periodic full
	// re-imports independent of filesystem events. Empty disables it.
	// Default: ""
	RescanSchedule string `yaml:"rescan_schedule"`

	// ExportPath, when set, writes the assembled scene as JSON after every
	// import in watch mode.
	// Default: ""
	ExportPath string `yaml:"export_path"`

	// MetricsAddress, when set, serves the Prometheus metrics endpoint on
	// this address for the lifetime of the watch (e.g. "127.0.0.1:9464").
	// Default: ""
	MetricsAddress string `yaml:"metrics_address"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "strata"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "import"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for parse and import
	// durations, in seconds.
	// Default: [0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP/gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of imports to trace (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service name attached to spans.
	// Default: "strata"
	ServiceName string `yaml:"service_name"`
}

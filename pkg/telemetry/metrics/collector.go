package metrics

import (
	"time"

	"mapforge/strata/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector registers and records every metric strata emits. Construct one
// per process and share it; all record methods are safe for concurrent use.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// runs_total{status} with status success or error.
	runsTotal *prometheus.CounterVec

	// run_duration_seconds covers the whole parse-and-assemble run.
	runDuration prometheus.Histogram

	// parse_duration_seconds covers classification and tree building only.
	parseDuration prometheus.Histogram

	// nodes_parsed_total{variant} with the block variant (world, entity,
	// solid, group, editor, generic).
	nodesParsed *prometheus.CounterVec

	// objects_created_total{kind} with kind solid, group, or light.
	objectsCreated *prometheus.CounterVec

	// groups_pruned_total counts placeholders destroyed for being empty.
	groupsPruned prometheus.Counter

	// entities_skipped_total{reason} with reason solid or light.
	entitiesSkipped *prometheus.CounterVec
}

// NewCollector creates a collector registered against the given registry.
// A nil registry gets a private one, which keeps parallel tests and
// embedded uses from fighting over the global default.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of import runs by final status",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of full import runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of the parse stage in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		nodesParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "nodes_parsed_total",
				Help:      "Total number of document nodes parsed by variant",
			},
			[]string{"variant"},
		),

		objectsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "objects_created_total",
				Help:      "Total number of scene objects created by kind",
			},
			[]string{"kind"},
		),

		groupsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "groups_pruned_total",
				Help:      "Total number of group placeholders pruned for holding fewer than two members",
			},
		),

		entitiesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entities_skipped_total",
				Help:      "Total number of entities skipped by per-entity failures",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.parseDuration,
		c.nodesParsed,
		c.objectsCreated,
		c.groupsPruned,
		c.entitiesSkipped,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordImport records one finished run. Status is "success" or "error".
func (c *Collector) RecordImport(status string, duration time.Duration) {
	c.runsTotal.WithLabelValues(status).Inc()
	c.runDuration.Observe(duration.Seconds())
}

// RecordParse records the parse stage duration.
func (c *Collector) RecordParse(duration time.Duration) {
	c.parseDuration.Observe(duration.Seconds())
}

// RecordNodes adds count parsed nodes of the given variant.
func (c *Collector) RecordNodes(variant string, count int) {
	if count > 0 {
		c.nodesParsed.WithLabelValues(variant).Add(float64(count))
	}
}

// RecordObjects adds count created objects of the given kind.
func (c *Collector) RecordObjects(kind string, count int) {
	if count > 0 {
		c.objectsCreated.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordPruned adds count pruned group placeholders.
func (c *Collector) RecordPruned(count int) {
	if count > 0 {
		c.groupsPruned.Add(float64(count))
	}
}

// RecordSkipped adds count skipped entities for the given reason.
func (c *Collector) RecordSkipped(reason string, count int) {
	if count > 0 {
		c.entitiesSkipped.WithLabelValues(reason).Add(float64(count))
	}
}

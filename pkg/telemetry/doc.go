// Package telemetry groups the observability building blocks for the map
// importer: structured logging, Prometheus metrics, OpenTelemetry tracing,
// and health probes for watch mode.
//
// The subpackages stand alone; commands wire only what their configuration
// enables:
//
//   - logging: slog-based structured logging (text or JSON)
//   - metrics: Prometheus collectors for import runs, nodes, and scene objects
//   - tracing: OpenTelemetry spans over the parse and assembly stages
//   - health: liveness and readiness probes served by the watch listener
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordImport("success", elapsed)
//	collector.RecordObjects("solid", result.Solids)
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(ctx)
//	ctx, span := tracer.Start(ctx, "import.parse")
//	defer span.End()
package telemetry

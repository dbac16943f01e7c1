// Package server provides the HTTP listener used by watch mode.
//
// While the watcher re-imports maps, the server exposes the Prometheus
// metrics endpoint and health probes so dashboards and orchestrators can
// observe a long-running import daemon.
//
// # Basic Usage
//
//	checker := health.New(0)
//	checker.RegisterCheck("journal", func(ctx context.Context) error {
//	    _, err := jnl.Count(ctx, journal.Query{Limit: 1})
//	    return err
//	})
//
//	srv := server.New(server.Config{
//	    Address:     "127.0.0.1:9464",
//	    MetricsPath: "/metrics",
//	}, collector.Handler(), checker)
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        slog.Error("telemetry listener failed", "error", err)
//	    }
//	}()
//
// Start blocks until the context is cancelled or Shutdown is called, then
// drains in-flight requests before returning.
//
// # Routes
//
//   - GET <MetricsPath> - Prometheus metrics (default /metrics)
//   - GET /health       - Liveness probe (always 200 while running)
//   - GET /ready        - Readiness probe (runs registered checks)
//   - GET /version      - Build information
package server

// Package health serves liveness and readiness probes for the
// watch-mode telemetry listener.
//
// # Endpoints
//
// Three routes are registered by HTTPMiddleware:
//
//   - /health: liveness, answers 200 whenever the process is up
//   - /ready: readiness, runs every registered backend check
//   - /version: build information
//
// Liveness never touches backends and is safe to poll aggressively.
// Readiness probes the stores the import pipeline depends on, so a
// watch whose journal database has gone away reports degraded instead
// of silently dropping history.
//
// # Usage
//
//	checker := health.New(0)
//
//	checker.RegisterCheck("journal", func(ctx context.Context) error {
//	    _, err := store.Count(ctx, journal.Query{Limit: 1})
//	    return err
//	})
//	checker.RegisterCheck("materials", func(ctx context.Context) error {
//	    _, err := repo.Resolve(ctx, assets.PlaceholderPath)
//	    if errors.Is(err, assets.ErrNotFound) {
//	        return nil
//	    }
//	    return err
//	})
//
//	mux := http.NewServeMux()
//	health.HTTPMiddleware(mux, checker, version, commit, buildTime)
//
// # Responses
//
// A ready report:
//
//	{
//	    "status": "ready",
//	    "checks": {
//	        "journal": {"status": "ok", "duration_ms": 0.4},
//	        "materials": {"status": "ok", "duration_ms": 1.8}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
//
// A degraded report carries the failing check's message and is served
// with a 503:
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "journal": {"status": "unhealthy", "message": "database is locked"},
//	        "materials": {"status": "ok", "duration_ms": 1.8}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
//
// Checks run concurrently, each bounded by the checker's timeout, so a
// single stuck backend cannot pin the probe past that bound.
package health

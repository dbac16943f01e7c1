package health

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// VersionInfo is the payload served by the version endpoint.
type VersionInfo struct {
	// Version is the release version, e.g. "1.2.0".
	Version string `json:"version"`

	// Commit is the git commit the binary was built from.
	Commit string `json:"commit"`

	// BuildTime is when the binary was built.
	BuildTime string `json:"build_time"`

	// GoVersion is the Go toolchain that built the binary.
	GoVersion string `json:"go_version"`
}

// LivenessHandler serves the liveness probe. A 200 means the process is
// up; no backends are consulted.
//
// Example response:
//
//	{
//	    "status": "ok",
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		writeProbeJSON(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler serves the readiness probe. It runs every registered
// backend check and answers 200 when all pass, 503 when any fail.
//
// Example response:
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
// When the journal store stops answering:
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "journal": {"status": "unhealthy", "message": "database is locked"},
//	        "materials": {"status": "ok", "duration_ms": 1.8}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		report := c.CheckReadiness(r.Context())

		code := http.StatusOK
		if report.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}

		writeProbeJSON(w, r, code, report)
	}
}

// VersionHandler serves build information.
//
// Example response:
//
//	{
//	    "version": "1.2.0",
//	    "commit": "9f2c41d",
//	    "build_time": "2026-08-25T00:00:00Z",
//	    "go_version": "go1.25.0"
//	}
func VersionHandler(version, commit, buildTime string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		writeProbeJSON(w, r, http.StatusOK, info)
	}
}

// HTTPMiddleware registers the probe routes on mux:
//
//   - /health: liveness
//   - /ready: readiness
//   - /version: build information
//
// The watch-mode telemetry listener mounts these next to the metrics
// endpoint so one address answers scrapes and probes alike.
func HTTPMiddleware(mux *http.ServeMux, checker *Checker, version, commit, buildTime string) {
	mux.HandleFunc("/health", checker.LivenessHandler())
	mux.HandleFunc("/ready", checker.ReadinessHandler())
	mux.HandleFunc("/version", VersionHandler(version, commit, buildTime))
}

// allowProbeMethod rejects anything but GET and HEAD. Probe endpoints
// are read-only.
func allowProbeMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeProbeJSON writes the response headers and, for GET, the body.
// HEAD gets status and headers only.
func writeProbeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(body)
	}
}

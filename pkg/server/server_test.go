package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mapforge/strata/pkg/telemetry/health"
)

func TestHandlerRoutes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "strata_import_runs_total 0")
	})

	srv := New(Config{
		Address:   "127.0.0.1:0",
		Version:   "0.0.0-test",
		Commit:    "abc123",
		BuildDate: "2026-01-01",
	}, metrics, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "metrics",
			path:       "/metrics",
			wantStatus: http.StatusOK,
			wantBody:   "strata_import_runs_total",
		},
		{
			name:       "liveness",
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ok"`,
		},
		{
			name:       "readiness with no checks",
			path:       "/ready",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name:       "version",
			path:       "/version",
			wantStatus: http.StatusOK,
			wantBody:   `"version":"0.0.0-test"`,
		},
	}

	handler := srv.Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("GET %s body = %q, want it to contain %q", tt.path, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandlerWithoutMetrics(t *testing.T) {
	srv := New(Config{Address: "127.0.0.1:0"}, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics with nil handler status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestReadinessReportsFailingCheck(t *testing.T) {
	checker := health.New(time.Second)
	checker.RegisterCheck("journal", func(ctx context.Context) error {
		return fmt.Errorf("database is locked")
	})

	srv := New(Config{Address: "127.0.0.1:0"}, nil, checker)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /ready status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rec.Body.String(), "database is locked") {
		t.Errorf("GET /ready body = %q, want the check failure message", rec.Body.String())
	}
}

func TestStartRequiresAddress(t *testing.T) {
	srv := New(Config{}, nil, nil)

	err := srv.Start(context.Background())
	if err == nil {
		t.Fatal("Start() with empty address should return error")
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv := New(Config{Address: "127.0.0.1:0"}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Give the listener time to come up, then cancel.
	time.Sleep(50 * time.Millisecond)
	if !srv.IsRunning() {
		t.Error("IsRunning() = false while Start is active")
	}
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() returned error on cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after context cancel")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"mapforge/strata/pkg/telemetry/health"
)

// Timeouts for the telemetry listener. The endpoints serve small local
// payloads, so these stay short and are not configurable.
const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Config controls the watch-mode telemetry listener.
type Config struct {
	// Address is the listen address, e.g. "127.0.0.1:9464". Required.
	Address string

	// MetricsPath is the metrics endpoint path. Empty means "/metrics".
	MetricsPath string

	// Version, Commit, and BuildDate feed the /version endpoint.
	Version   string
	Commit    string
	BuildDate string
}

// Server serves metrics and health endpoints for the lifetime of a watch.
type Server struct {
	config  Config
	metrics http.Handler
	checker *health.Checker

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a telemetry listener. metricsHandler may be nil when metrics
// are disabled; the metrics route is then omitted. A nil checker gets a
// fresh one with no registered checks, so /ready reports ready.
func New(cfg Config, metricsHandler http.Handler, checker *health.Checker) *Server {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if checker == nil {
		checker = health.New(0)
	}
	return &Server{
		config:       cfg,
		metrics:      metricsHandler,
		checker:      checker,
		shutdownChan: make(chan struct{}),
	}
}

// Start serves until ctx is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	if s.config.Address == "" {
		s.mu.Unlock()
		return fmt.Errorf("server address is empty")
	}
	s.isRunning = true

	s.httpServer = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting telemetry listener",
			"address", s.config.Address,
			"metrics_path", s.config.MetricsPath,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("telemetry listener error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case <-s.shutdownChan:
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				shutdownErr = fmt.Errorf("telemetry listener shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("telemetry listener stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the listener is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the route table. Exposed so tests can drive the routes
// without a real listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.metrics != nil {
		mux.Handle(s.config.MetricsPath, s.metrics)
	}
	health.HTTPMiddleware(mux, s.checker, s.config.Version, s.config.Commit, s.config.BuildDate)

	return mux
}

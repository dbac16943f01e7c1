package health

import (
	"context"
	"sync"
	"time"
)

// Overall and per-check status values as they appear in probe responses.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// defaultCheckTimeout bounds a single check when New is given zero.
const defaultCheckTimeout = 5 * time.Second

// CheckFunc probes one backend the import pipeline depends on, such as
// the journal store or the material catalog. It returns nil when the
// backend answers, or an error describing what is wrong.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single backend probe.
type CheckResult struct {
	// Status is StatusOK or StatusUnhealthy.
	Status string `json:"status"`

	// Message carries the check error when the backend is unhealthy.
	Message string `json:"message,omitempty"`

	// DurationMS is how long the check took, in milliseconds.
	DurationMS float64 `json:"duration_ms,omitempty"`
}

// Report is the aggregate answer served by the probe endpoints.
type Report struct {
	// Status is StatusOK for liveness, StatusReady or StatusDegraded
	// for readiness.
	Status string `json:"status"`

	// Checks holds per-backend results. Liveness reports carry none.
	Checks map[string]CheckResult `json:"checks,omitempty"`

	// Timestamp is when the probe ran.
	Timestamp time.Time `json:"timestamp"`
}

// Checker runs registered backend probes for the watch-mode listener.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc

	checkTimeout time.Duration
}

// New creates a checker. A zero timeout means each check gets
// defaultCheckTimeout before it is reported unhealthy.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout == 0 {
		checkTimeout = defaultCheckTimeout
	}

	return &Checker{
		checks:       make(map[string]CheckFunc),
		checkTimeout: checkTimeout,
	}
}

// RegisterCheck adds a named backend probe. Registering a name that
// already exists replaces the earlier check.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = check
}

// CheckLiveness answers whether the process is up. It never touches
// backends, so it is safe to poll aggressively.
func (c *Checker) CheckLiveness(ctx context.Context) Report {
	return Report{
		Status:    StatusOK,
		Timestamp: time.Now(),
	}
}

// CheckReadiness runs every registered probe concurrently and folds the
// results into one report. Any unhealthy backend degrades the whole
// report; a checker with no registered probes is always ready.
func (c *Checker) CheckReadiness(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	if len(checks) == 0 {
		return Report{
			Status:    StatusReady,
			Timestamp: time.Now(),
		}
	}

	results := make(map[string]CheckResult, len(checks))
	var resultMu sync.Mutex
	var wg sync.WaitGroup

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()

			result := c.runCheck(ctx, check)

			resultMu.Lock()
			results[name] = result
			resultMu.Unlock()
		}(name, check)
	}

	wg.Wait()

	status := StatusReady
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			status = StatusDegraded
		}
	}

	return Report{
		Status:    status,
		Checks:    results,
		Timestamp: time.Now(),
	}
}

// runCheck executes one probe under the checker's timeout. The probe
// runs in its own goroutine so a check that ignores its context cannot
// stall the whole readiness report; the buffered channel lets such a
// check finish and exit after the timeout fires.
func (c *Checker) runCheck(ctx context.Context, check CheckFunc) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()

	errChan := make(chan error, 1)
	go func() {
		errChan <- check(checkCtx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return CheckResult{
				Status:     StatusUnhealthy,
				Message:    err.Error(),
				DurationMS: millisecondsSince(start),
			}
		}
		return CheckResult{
			Status:     StatusOK,
			DurationMS: millisecondsSince(start),
		}

	case <-checkCtx.Done():
		return CheckResult{
			Status:     StatusUnhealthy,
			Message:    checkCtx.Err().Error(),
			DurationMS: millisecondsSince(start),
		}
	}
}

func millisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

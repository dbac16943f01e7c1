package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mapforge/strata/pkg/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(&config.MetricsConfig{Enabled: true}, nil)
}

func TestNewCollectorDefaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != "strata" {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, "strata")
	}
	if cfg.Subsystem != "import" {
		t.Errorf("Subsystem = %q, want %q", cfg.Subsystem, "import")
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("DurationBuckets not defaulted")
	}
}

func TestRecordImport(t *testing.T) {
	c := newTestCollector(t)

	c.RecordImport("success", 120*time.Millisecond)
	c.RecordImport("success", 80*time.Millisecond)
	c.RecordImport("error", 5*time.Millisecond)

	if got := testutil.ToFloat64(c.runsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("runs_total{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.runsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("runs_total{error} = %v, want 1", got)
	}
}

func TestRecordCounts(t *testing.T) {
	c := newTestCollector(t)

	c.RecordNodes("solid", 5)
	c.RecordNodes("generic", 0)
	c.RecordObjects("light", 2)
	c.RecordPruned(1)
	c.RecordSkipped("light", 3)

	if got := testutil.ToFloat64(c.nodesParsed.WithLabelValues("solid")); got != 5 {
		t.Errorf("nodes_parsed_total{solid} = %v, want 5", got)
	}
	if got := testutil.ToFloat64(c.nodesParsed.WithLabelValues("generic")); got != 0 {
		t.Errorf("nodes_parsed_total{generic} = %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.objectsCreated.WithLabelValues("light")); got != 2 {
		t.Errorf("objects_created_total{light} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.groupsPruned); got != 1 {
		t.Errorf("groups_pruned_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.entitiesSkipped.WithLabelValues("light")); got != 3 {
		t.Errorf("entities_skipped_total{light} = %v, want 3", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	c := newTestCollector(t)
	c.RecordImport("success", 100*time.Millisecond)
	c.RecordParse(20 * time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, series := range []string{
		`strata_import_runs_total{status="success"} 1`,
		"strata_import_run_duration_seconds_count 1",
		"strata_import_parse_duration_seconds_count 1",
	} {
		if !strings.Contains(body, series) {
			t.Errorf("scrape body missing %q\n%s", series, body)
		}
	}
}

package tracing

import (
	"context"
	"testing"

	"mapforge/strata/pkg/config"
)

func TestNewDisabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tracer.Enabled() {
		t.Error("Enabled() = true for disabled config")
	}

	ctx, span := tracer.Start(context.Background(), "import.parse")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("noop tracer produced a valid span context")
	}
	if got := TraceID(ctx); got != "" {
		t.Errorf("TraceID = %q, want \"\"", got)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) error = nil, want error")
	}
}

func TestNewSamplerBounds(t *testing.T) {
	tests := []struct {
		name    string
		ratio   float64
		wantErr bool
	}{
		{name: "zero", ratio: 0},
		{name: "half", ratio: 0.5},
		{name: "one", ratio: 1},
		{name: "negative", ratio: -0.1, wantErr: true},
		{name: "above one", ratio: 1.1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := newSampler(tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("newSampler(%v) error = nil, want error", tt.ratio)
				}
				return
			}
			if err != nil {
				t.Fatalf("newSampler(%v) error = %v", tt.ratio, err)
			}
			if sampler == nil {
				t.Fatal("newSampler returned nil sampler")
			}
		})
	}
}

func TestIDsOutsideTrace(t *testing.T) {
	ctx := context.Background()
	if got := TraceID(ctx); got != "" {
		t.Errorf("TraceID = %q, want \"\"", got)
	}
	if got := SpanID(ctx); got != "" {
		t.Errorf("SpanID = %q, want \"\"", got)
	}
}

package logging

import (
	"context"
	"log/slog"
)

// contextKey is unexported so only this package can place values.
type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	sourceKey    contextKey = "source"
)

// WithSessionID attaches an import session id to the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// GetSessionID returns the session id, or "" when none is set.
func GetSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// WithSource attaches the map source path being imported to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSource returns the source path, or "" when none is set.
func GetSource(ctx context.Context) string {
	if v, ok := ctx.Value(sourceKey).(string); ok {
		return v
	}
	return ""
}

// ContextLogger returns a logger carrying whatever session fields the
// context holds. Records logged through it identify their import run
// without each call site repeating the attributes.
func ContextLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if fields := extractContextFields(ctx); len(fields) > 0 {
		return logger.With(fields...)
	}
	return logger
}

func extractContextFields(ctx context.Context) []any {
	var fields []any
	if id := GetSessionID(ctx); id != "" {
		fields = append(fields, "session_id", id)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	return fields
}

package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys in the strata.* namespace. Anything not covered by the
// OpenTelemetry semantic conventions goes here so dashboards can rely on
// stable names.
const (
	AttrSource    = "strata.source"
	AttrSessionID = "strata.session_id"

	AttrNodes   = "strata.nodes"
	AttrSolids  = "strata.objects.solids"
	AttrGroups  = "strata.objects.groups"
	AttrLights  = "strata.objects.lights"
	AttrPruned  = "strata.groups.pruned"
	AttrSkipped = "strata.entities.skipped"
)

// SetSourceAttributes tags a span with the import source identity.
func SetSourceAttributes(span trace.Span, sessionID, source string) {
	span.SetAttributes(
		attribute.String(AttrSessionID, sessionID),
		attribute.String(AttrSource, source),
	)
}

// SetResultAttributes tags a span with the assembly outcome counts.
func SetResultAttributes(span trace.Span, solids, groups, lights, pruned, skipped int) {
	span.SetAttributes(
		attribute.Int(AttrSolids, solids),
		attribute.Int(AttrGroups, groups),
		attribute.Int(AttrLights, lights),
		attribute.Int(AttrPruned, pruned),
		attribute.Int(AttrSkipped, skipped),
	)
}

// RecordError marks the span failed and records err on it. Nil errors are
// ignored so call sites can defer unconditionally.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

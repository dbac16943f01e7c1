// Package tracing wires OpenTelemetry spans around import runs.
//
// New builds a Tracer from config: disabled configs get a noop tracer so
// call sites never branch, enabled configs export over OTLP/gRPC with
// parent-based ratio sampling. The importer opens one span per run with
// child spans for the parse and assemble stages.
package tracing

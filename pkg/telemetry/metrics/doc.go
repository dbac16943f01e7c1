// Package metrics exposes Prometheus instrumentation for import runs.
//
// A Collector owns its registry and every series strata records: import
// counts and durations, parse durations, node counts by variant, created
// objects by kind, pruned groups, and skipped entities by reason. Watch
// mode mounts Handler() so a scrape target exists while the process stays
// resident.
package metrics

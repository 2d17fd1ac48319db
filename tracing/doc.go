// Package tracing integrates OpenTelemetry with the identifier provider so that
// allocations show up in distributed traces. Until Init or InitWithExporter is
// called spans are no-ops.
package tracing

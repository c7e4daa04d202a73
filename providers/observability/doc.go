// Package observability defines the tracing, metrics and structured logging
// interfaces used by the characard extractor.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// injectable dependency; the extractor treats a nil Provider as "disabled".
// An active Provider and Span travel through a [context.Context] with
// [ContextWithObserver] and [ContextWithSpan].
//
// semconv.go holds the attribute keys, span names and metric names recorded
// during an extraction so every backend labels them the same way.
package observability

// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the weekplanner server.
//
// # Metrics
//
// Search metrics:
//   - slot_searches_total: slot searches by strategy, status and duration bucket
//   - slot_search_duration_seconds: wall time spent per search
//   - slot_search_invitees: invitees per search request
//   - busy_intervals_per_search: busy intervals merged into one work-hours tree
//
// Planner metrics:
//   - planner_operations_total: repository writes by operation and status
//   - planner_users: registered users
//
// MCP tool metrics:
//   - mcp_tool_invocations_total: tool calls by tool name and status
//   - mcp_tool_duration_seconds: tool execution time
//
// Requested event lengths are reported through DurationBucket so the
// label set stays small. The event host is only attached when
// Config.DetailedLabels is set.
//
// # Tracing
//
// Tool handlers open a server span with StartToolSpan; each strategy run
// opens an internal child span with StartSearchSpan.
//
// # Configuration
//
// DefaultConfig reads the usual OpenTelemetry environment variables:
//
//	INSTRUMENTATION_ENABLED=true
//	METRICS_EXPORTER=prometheus       # prometheus, otlp, stdout
//	TRACING_EXPORTER=none             # otlp, stdout, none
//	OTEL_EXPORTER_OTLP_ENDPOINT=otel-collector:4318
//	OTEL_TRACES_SAMPLER_ARG=0.1
//	METRICS_DETAILED_LABELS=false
//	AUDIT_LOGGING_INCLUDE_USER_IDS=false
//
// # Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordSlotSearch(ctx, "workhours", instrumentation.StatusSuccess, 30, 2, elapsed)
package instrumentation

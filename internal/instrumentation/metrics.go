package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrStatus    = "status"
	attrStrategy  = "strategy"
	attrOperation = "operation"
	attrTool      = "tool"
	attrDuration  = "duration_bucket"
	attrHost      = "host"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Search metrics
	slotSearchesTotal   metric.Int64Counter
	slotSearchDuration  metric.Float64Histogram
	searchCandidates    metric.Int64Histogram
	busyIntervalsMerged metric.Int64Histogram

	// Planner metrics
	plannerOperationsTotal metric.Int64Counter
	usersRegistered        metric.Int64UpDownCounter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.slotSearchesTotal, err = meter.Int64Counter(
		"slot_searches_total",
		metric.WithDescription("Total number of slot searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot_searches_total counter: %w", err)
	}

	m.slotSearchDuration, err = meter.Float64Histogram(
		"slot_search_duration_seconds",
		metric.WithDescription("Slot search duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot_search_duration_seconds histogram: %w", err)
	}

	m.searchCandidates, err = meter.Int64Histogram(
		"slot_search_invitees",
		metric.WithDescription("Number of invitees per slot search"),
		metric.WithUnit("{invitee}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 10, 20, 50),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot_search_invitees histogram: %w", err)
	}

	m.busyIntervalsMerged, err = meter.Int64Histogram(
		"busy_intervals_per_search",
		metric.WithDescription("Number of busy intervals inserted into the interval tree per work hours search"),
		metric.WithUnit("{interval}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create busy_intervals_per_search histogram: %w", err)
	}

	m.plannerOperationsTotal, err = meter.Int64Counter(
		"planner_operations_total",
		metric.WithDescription("Total number of planner repository operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner_operations_total counter: %w", err)
	}

	m.usersRegistered, err = meter.Int64UpDownCounter(
		"planner_users",
		metric.WithDescription("Number of users registered in the planner"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner_users gauge: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordSlotSearch records one strategy run.
//
// Parameters:
//   - strategy: "anytime" or "workhours"
//   - status: "success", "no_slot" or "error"
//   - minutes: requested event length, reported as a bucket label
//   - invitees: number of invitees on the request
//   - duration: time taken by the search
func (m *Metrics) RecordSlotSearch(ctx context.Context, strategy, status string, minutes int64, invitees int, duration time.Duration) {
	if m == nil || m.slotSearchesTotal == nil || m.slotSearchDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStrategy, strategy),
		attribute.String(attrStatus, status),
		attribute.String(attrDuration, DurationBucket(minutes)),
	}

	m.slotSearchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.slotSearchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if m.searchCandidates != nil {
		m.searchCandidates.Record(ctx, int64(invitees), metric.WithAttributes(attribute.String(attrStrategy, strategy)))
	}
}

// RecordSlotSearchWithHost is RecordSlotSearch with the host added as a label
// when detailed labels are enabled.
func (m *Metrics) RecordSlotSearchWithHost(ctx context.Context, strategy, status, host string, minutes int64, invitees int, duration time.Duration) {
	if m == nil || m.slotSearchesTotal == nil || m.slotSearchDuration == nil {
		return // Instrumentation not initialized
	}
	if !m.detailedLabels || host == "" {
		m.RecordSlotSearch(ctx, strategy, status, minutes, invitees, duration)
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStrategy, strategy),
		attribute.String(attrStatus, status),
		attribute.String(attrDuration, DurationBucket(minutes)),
		attribute.String(attrHost, host),
	}

	m.slotSearchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.slotSearchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if m.searchCandidates != nil {
		m.searchCandidates.Record(ctx, int64(invitees), metric.WithAttributes(attribute.String(attrStrategy, strategy)))
	}
}

// RecordBusyIntervals records how many busy intervals went into a tree.
func (m *Metrics) RecordBusyIntervals(ctx context.Context, n int) {
	if m == nil || m.busyIntervalsMerged == nil {
		return // Instrumentation not initialized
	}

	m.busyIntervalsMerged.Record(ctx, int64(n))
}

// RecordPlannerOperation records a repository write such as add_event.
func (m *Metrics) RecordPlannerOperation(ctx context.Context, operation, status string) {
	if m == nil || m.plannerOperationsTotal == nil {
		return // Instrumentation not initialized
	}

	m.plannerOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	))
}

// IncrementUsers increments the registered users gauge.
func (m *Metrics) IncrementUsers(ctx context.Context) {
	if m == nil || m.usersRegistered == nil {
		return // Instrumentation not initialized
	}

	m.usersRegistered.Add(ctx, 1)
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

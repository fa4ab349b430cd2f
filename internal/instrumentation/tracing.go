package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer of every weekplanner span.
const TracerName = "github.com/teemow/weekplanner"

// Span attribute keys.
const (
	SpanAttrTool      = "mcp.tool"
	SpanAttrStatus    = "mcp.status"
	SpanAttrStrategy  = "planner.strategy"
	SpanAttrOperation = "planner.operation"
	SpanAttrEvent     = "planner.event"
	SpanAttrHost      = "planner.host"
	SpanAttrInvitees  = "planner.invitees"
	SpanAttrMinutes   = "planner.minutes"
	SpanAttrSlotStart = "planner.slot.start"
	SpanAttrSlotEnd   = "planner.slot.end"
)

// SpanAttributeBuilder collects search span attributes, skipping empty
// strings.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder returns an empty builder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithStrategy adds the search strategy attribute.
func (b *SpanAttributeBuilder) WithStrategy(strategy string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrStrategy, strategy))
	return b
}

// WithEvent adds the event name.
func (b *SpanAttributeBuilder) WithEvent(name string) *SpanAttributeBuilder {
	if name != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrEvent, name))
	}
	return b
}

// WithHost adds the host user id.
func (b *SpanAttributeBuilder) WithHost(host string) *SpanAttributeBuilder {
	if host != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrHost, host))
	}
	return b
}

// WithRequest adds the requested length and invitee count.
func (b *SpanAttributeBuilder) WithRequest(minutes int64, invitees int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs,
		attribute.Int64(SpanAttrMinutes, minutes),
		attribute.Int(SpanAttrInvitees, invitees),
	)
	return b
}

// Build returns the collected attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

func startSpan(ctx context.Context, name string, kind trace.SpanKind, first attribute.KeyValue, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{first}, attrs...)
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithAttributes(all...),
		trace.WithSpanKind(kind),
	)
}

// StartToolSpan starts a server span named "tool.<name>" for an MCP tool call.
// The caller ends it.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, "tool."+toolName, trace.SpanKindServer, attribute.String(SpanAttrTool, toolName), attrs)
}

// StartSearchSpan starts an internal span named "search.<strategy>" for one
// strategy run.
func StartSearchSpan(ctx context.Context, strategy string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, "search."+strategy, trace.SpanKindInternal, attribute.String(SpanAttrStrategy, strategy), attrs)
}

// SetSpanError records err and marks the span failed. A nil err is ignored.
func SetSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess marks the span OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// TraceIDs returns the trace and span id of the span in ctx, or empty
// strings when there is none.
func TraceIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}

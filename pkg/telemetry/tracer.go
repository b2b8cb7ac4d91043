package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/reconcile"
)

// Default tracer name.
const defaultTracerName = "widgethook"

// Span attribute keys.
const (
	AttrElementID = attribute.Key("widget.element_id")
	AttrComponent = attribute.Key("widget.component")
	AttrVerdict   = attribute.Key("widget.verdict")
	AttrReason    = attribute.Key("widget.reason")
	AttrCommand   = attribute.Key("widget.command")
	AttrResult    = attribute.Key("widget.result")
)

// TracerOption configures a Tracer.
type TracerOption func(*Tracer)

// WithTracerName sets the name the tracer is obtained with from the global
// provider.
func WithTracerName(name string) TracerOption {
	return func(t *Tracer) {
		t.name = name
	}
}

// WithTracer uses tracer instead of one from the global provider.
func WithTracer(tracer trace.Tracer) TracerOption {
	return func(t *Tracer) {
		t.tracer = tracer
	}
}

// Tracer starts spans for host events.
type Tracer struct {
	name   string
	tracer trace.Tracer
}

// NewTracer creates a Tracer. Without WithTracer it resolves one from the
// global OpenTelemetry provider.
func NewTracer(opts ...TracerOption) *Tracer {
	t := &Tracer{name: defaultTracerName}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer(t.name)
	}
	return t
}

// StartEvent starts a span named "widgethook.<event>" for an event on elementID.
// A nil Tracer returns ctx and a non-recording span.
func (t *Tracer) StartEvent(ctx context.Context, event, elementID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	attrs = append(attrs, AttrElementID.String(elementID))
	return t.tracer.Start(ctx, "widgethook."+event,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordDecision adds a reconciliation decision to span.
func RecordDecision(span trace.Span, componentType string, d reconcile.Decision) {
	span.SetAttributes(
		AttrComponent.String(componentType),
		AttrVerdict.String(d.Verdict.String()),
		AttrReason.String(d.Reason.String()),
	)
}

// RecordCommand adds a dispatched command and its result to span.
func RecordCommand(span trace.Span, command string, result hook.DispatchResult) {
	span.SetAttributes(
		AttrCommand.String(command),
		AttrResult.String(result.String()),
	)
}

// EndSpan sets the span status from err and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

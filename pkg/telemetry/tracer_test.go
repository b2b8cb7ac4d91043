package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/reconcile"
)

type fakeSpan struct {
	trace.Span
	name   string
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (s *fakeSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *fakeSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *fakeSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *fakeSpan) End(...trace.SpanEndOption) { s.ended = true }

type fakeTracer struct {
	trace.Tracer
	spans []*fakeSpan
}

func (f *fakeTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &fakeSpan{
		Span:  trace.SpanFromContext(context.Background()),
		name:  name,
		attrs: map[attribute.Key]attribute.Value{},
	}
	s.SetAttributes(cfg.Attributes()...)
	f.spans = append(f.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func TestTracerStartEvent(t *testing.T) {
	ft := &fakeTracer{}
	tr := NewTracer(WithTracer(ft))

	ctx, span := tr.StartEvent(context.Background(), "render", "country")
	if trace.SpanFromContext(ctx) != span {
		t.Error("span not stored in returned context")
	}
	RecordDecision(span, "select", reconcile.Decision{Verdict: reconcile.Rebuild, Reason: reconcile.ReasonStructureChanged})
	EndSpan(span, nil)

	if len(ft.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(ft.spans))
	}
	s := ft.spans[0]
	if s.name != "widgethook.render" {
		t.Errorf("span name = %q, want widgethook.render", s.name)
	}
	want := map[attribute.Key]string{
		AttrElementID: "country",
		AttrComponent: "select",
		AttrVerdict:   "rebuild",
		AttrReason:    "structure_changed",
	}
	for k, v := range want {
		if got := s.attrs[k].AsString(); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if s.status != codes.Ok {
		t.Errorf("status = %v, want Ok", s.status)
	}
	if !s.ended {
		t.Error("span not ended")
	}
}

func TestTracerRecordsErrors(t *testing.T) {
	ft := &fakeTracer{}
	tr := NewTracer(WithTracer(ft))

	_, span := tr.StartEvent(context.Background(), "command", "country")
	RecordCommand(span, "open", hook.Dropped)
	EndSpan(span, errors.New("no instance"))

	s := ft.spans[0]
	if s.status != codes.Error {
		t.Errorf("status = %v, want Error", s.status)
	}
	if len(s.errs) != 1 {
		t.Errorf("recorded errors = %d, want 1", len(s.errs))
	}
	if got := s.attrs[AttrCommand].AsString(); got != "open" {
		t.Errorf("command = %q, want open", got)
	}
	if got := s.attrs[AttrResult].AsString(); got != "dropped" {
		t.Errorf("result = %q, want dropped", got)
	}
}

func TestNilTracer(t *testing.T) {
	var tr *Tracer
	ctx := context.Background()
	got, span := tr.StartEvent(ctx, "mount", "w")
	if got != ctx {
		t.Error("nil tracer changed the context")
	}
	if span.IsRecording() {
		t.Error("nil tracer returned a recording span")
	}
	EndSpan(span, nil)
}

func TestNewTracerUsesGlobalProvider(t *testing.T) {
	tr := NewTracer(WithTracerName("test"))
	_, span := tr.StartEvent(context.Background(), "mount", "w")
	EndSpan(span, nil)
}

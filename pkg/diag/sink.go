package diag

import (
	"context"
	"log/slog"
	"sync"
)

// Sink receives diagnostics. Implementations must not panic.
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d *Diagnostic)

// Report implements Sink.
func (f SinkFunc) Report(d *Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(*Diagnostic) {})

// LogSink writes diagnostics as structured log records at Error level.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a LogSink; a nil logger means slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(d *Diagnostic) {
	if d == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("code", d.Code),
		slog.String("category", string(d.Category)),
	}
	if d.ElementID != "" {
		attrs = append(attrs, slog.String("element_id", d.ElementID))
	}
	if d.Component != "" {
		attrs = append(attrs, slog.String("component", d.Component))
	}
	if d.Detail != "" {
		attrs = append(attrs, slog.String("detail", d.Detail))
	}
	if d.Wrapped != nil {
		attrs = append(attrs, slog.String("error", d.Wrapped.Error()))
	}
	s.Logger.LogAttrs(context.Background(), slog.LevelError, d.Message, attrs...)
}

// Recorder keeps every reported diagnostic in memory. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []*Diagnostic
}

// Report implements Sink.
func (r *Recorder) Report(d *Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, d)
}

// All returns a copy of the recorded diagnostics.
func (r *Recorder) All() []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

// Codes returns the codes of the recorded diagnostics in report order.
func (r *Recorder) Codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	codes := make([]string, len(r.items))
	for i, d := range r.items {
		codes[i] = d.Code
	}
	return codes
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Multi fans a diagnostic out to several sinks. Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return SinkFunc(func(d *Diagnostic) {
		for _, s := range filtered {
			s.Report(d)
		}
	})
}

package diag

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"missing component", CodeMissingComponent, "Component element is missing its component type", CategoryAttach},
		{"malformed options", CodeMalformedOptions, "Error updating component options", CategoryOptions},
		{"unknown component", CodeUnknownComponent, "Unknown component type", CategoryRegistry},
		{"hook panic", CodeHookPanic, "Widget hook panicked", CategoryHook},
		{"unknown code", "E999", "Unknown diagnostic", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.code)
			if d.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", d.Message, tt.wantMsg)
			}
			if d.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", d.Category, tt.wantCat)
			}
			if d.Code != tt.code {
				t.Errorf("Code = %q, want %q", d.Code, tt.code)
			}
		})
	}
}

func TestDiagnosticErrorAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	d := New(CodeMalformedOptions).WithElement("country").Wrap(cause)

	if !errors.Is(d, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	want := "E102: Error updating component options: unexpected end of JSON input"
	if d.Error() != want {
		t.Errorf("Error() = %q, want %q", d.Error(), want)
	}

	var target *Diagnostic
	if !errors.As(error(d), &target) || target.ElementID != "country" {
		t.Errorf("errors.As failed or lost element id: %+v", target)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeHookPanic) != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New(CodeUnknownComponent)
	if FromError(orig, CodeHookPanic) != orig {
		t.Error("FromError should return an existing Diagnostic unchanged")
	}
	d := FromError(errors.New("boom"), CodeConstructFailed)
	if d.Code != CodeConstructFailed || d.Wrapped == nil {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	d := New(CodeMissingComponent).WithElement("menu").WithDetail("root <div> has no data-component")
	out := d.Format()
	for _, want := range []string{"ERROR E101:", "#menu", "root <div> has no data-component", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	compact := d.FormatCompact()
	if compact != "[attach] #menu E101: Component element is missing its component type" {
		t.Errorf("FormatCompact() = %q", compact)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewLogSink(logger)

	sink.Report(New(CodeUnknownComponent).WithElement("x").WithComponent("carousel"))
	sink.Report(nil)

	out := buf.String()
	for _, want := range []string{"level=ERROR", "code=E103", "category=registry", "element_id=x", "component=carousel"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	sink := Multi(a, nil, b)

	sink.Report(New(CodeMissingComponent))
	sink.Report(New(CodeMalformedOptions))

	for _, r := range []*Recorder{a, b} {
		codes := r.Codes()
		if len(codes) != 2 || codes[0] != "E101" || codes[1] != "E102" {
			t.Errorf("codes = %v", codes)
		}
	}

	a.Reset()
	if len(a.All()) != 0 {
		t.Error("Reset should clear recorded diagnostics")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapped text lost words: %v", lines)
	}
}

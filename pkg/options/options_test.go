package options

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/widgethook/pkg/hooktest"
	"github.com/vango-dev/widgethook/pkg/widget"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		want       widget.Options
		wantReason string
	}{
		{name: "empty payload", payload: "", want: widget.Options{}},
		{name: "object", payload: `{"value":"pt","multiple":false,"max":3}`,
			want: widget.Options{"value": "pt", "multiple": false, "max": float64(3)}},
		{name: "nested", payload: `{"position":{"side":"bottom"}}`,
			want: widget.Options{"position": map[string]any{"side": "bottom"}}},
		{name: "truncated", payload: `{"value":`, wantReason: "invalid JSON"},
		{name: "whitespace only", payload: "   ", wantReason: "invalid JSON"},
		{name: "array", payload: `[1,2]`, wantReason: "payload is an array, want an object"},
		{name: "null", payload: `null`, wantReason: "payload is null, want an object"},
		{name: "string", payload: `"x"`, wantReason: "payload is a string, want an object"},
		{name: "number", payload: `12`, wantReason: "payload is a number, want an object"},
		{name: "bool", payload: `true`, wantReason: "payload is a boolean, want an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.payload)
			if tt.wantReason != "" {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Parse() error = %v, want *ParseError", err)
				}
				if pe.Reason != tt.wantReason {
					t.Errorf("Reason = %q, want %q", pe.Reason, tt.wantReason)
				}
				if pe.Payload != tt.payload {
					t.Errorf("Payload = %q, want %q", pe.Payload, tt.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseErrorPreview(t *testing.T) {
	long := "{" + strings.Repeat("x", 500)
	_, err := Parse(long)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if len(pe.Preview()) != maxPayloadPreview+3 || !strings.HasSuffix(pe.Preview(), "...") {
		t.Errorf("Preview() length = %d", len(pe.Preview()))
	}
	if pe.Error() != "options: invalid JSON" {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestShallowMerge(t *testing.T) {
	base := widget.Options{"a": 1, "nested": map[string]any{"x": 1, "y": 2}}
	overlay := widget.Options{"b": 2, "nested": map[string]any{"x": 9}}

	merged := ShallowMerge(base, overlay)

	want := widget.Options{"a": 1, "b": 2, "nested": map[string]any{"x": 9}}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("ShallowMerge() = %v, want %v", merged, want)
	}
	if _, ok := base["b"]; ok {
		t.Error("ShallowMerge must not modify base")
	}
}

func TestMergeRunsHooksInOrder(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")
	inst.SetOptions(widget.Options{"placeholder": "Pick one", "value": "es"})
	inst.ResetCalls()

	if err := Merge(inst, `{"value":"pt","disabled":true}`); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	want := []string{"SetOptions", "UpdateValueDisplay", "SyncHiddenInputs", "UpdateUI", "UpdatePartsVisibility"}
	if got := inst.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	wantOpts := widget.Options{"placeholder": "Pick one", "value": "pt", "disabled": true}
	if got := inst.Options(); !reflect.DeepEqual(got, wantOpts) {
		t.Errorf("options = %v, want %v", got, wantOpts)
	}
	if got := inst.Values(); !reflect.DeepEqual(got, []any{"pt"}) {
		t.Errorf("collection values = %v", got)
	}
}

func TestMergeWithoutValueSkipsCollection(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")

	if err := Merge(inst, `{"placeholder":"x"}`); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if inst.CallCount("UpdateValueDisplay") != 0 || inst.CallCount("SyncHiddenInputs") != 0 {
		t.Error("value sync hooks should not run without a value")
	}
	if len(inst.Values()) != 0 {
		t.Error("collection should not be touched")
	}
	if inst.CallCount("UpdateUI") != 1 || inst.CallCount("UpdatePartsVisibility") != 1 {
		t.Error("refresh hooks should always run")
	}
}

func TestMergeNullValueIsPropagated(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")
	if err := Merge(inst, `{"value":null}`); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got := inst.Values(); len(got) != 1 || got[0] != nil {
		t.Errorf("values = %v, want [nil]", got)
	}
}

func TestMergeNilCollectionSkipsValueHooks(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")
	inst.DropCollection()

	if err := Merge(inst, `{"value":"pt"}`); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if inst.CallCount("UpdateValueDisplay") != 0 {
		t.Error("display sync should not run without a collection")
	}
}

func TestMergeParseErrorTouchesNothing(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")
	inst.SetOptions(widget.Options{"value": "es"})
	inst.ResetCalls()

	err := Merge(inst, `{"value":`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Merge() error = %v, want *ParseError", err)
	}
	if calls := inst.Calls(); len(calls) != 0 {
		t.Errorf("no hooks should run on parse failure, got %v", calls)
	}
	if inst.Options()["value"] != "es" {
		t.Error("options must be unchanged")
	}
}

func TestMergeMinimalInstance(t *testing.T) {
	inst := &hooktest.MinimalInstance{}
	if err := Merge(inst, `{"value":"pt"}`); err != nil {
		t.Errorf("Merge() on a destroy-only instance error = %v", err)
	}
}

func TestMergeHookPanic(t *testing.T) {
	inst := hooktest.NewFakeInstance("select")
	inst.PanicOn["UpdateUI"] = true

	err := Merge(inst, `{}`)
	var he *widget.HookError
	if !errors.As(err, &he) {
		t.Fatalf("Merge() error = %v, want *widget.HookError", err)
	}
	if he.Hook != "UpdateUI" {
		t.Errorf("Hook = %q, want UpdateUI", he.Hook)
	}
	if inst.CallCount("UpdatePartsVisibility") != 0 {
		t.Error("hooks after a panicking one should not run")
	}
}

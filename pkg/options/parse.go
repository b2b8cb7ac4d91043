package options

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/vango-dev/widgethook/pkg/widget"
)

// ValueKey is the payload key whose presence pushes a new value into the
// instance's value collection.
const ValueKey = "value"

// maxPayloadPreview bounds how much of a bad payload is kept for diagnostics.
const maxPayloadPreview = 120

// ParseError reports a payload that is not a JSON object.
type ParseError struct {
	Payload string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("options: %s", e.Reason)
}

// Preview returns the start of the offending payload.
func (e *ParseError) Preview() string {
	if len(e.Payload) <= maxPayloadPreview {
		return e.Payload
	}
	return e.Payload[:maxPayloadPreview] + "..."
}

// Parse decodes payload into an options mapping. The empty string is an empty
// mapping; anything else must be a JSON object.
func Parse(payload string) (widget.Options, error) {
	if payload == "" {
		return widget.Options{}, nil
	}
	if !gjson.Valid(payload) {
		return nil, &ParseError{Payload: payload, Reason: "invalid JSON"}
	}
	result := gjson.Parse(payload)
	if !result.IsObject() {
		return nil, &ParseError{
			Payload: payload,
			Reason:  fmt.Sprintf("payload is %s, want an object", describe(result)),
		}
	}
	m, ok := result.Value().(map[string]any)
	if !ok {
		return nil, &ParseError{Payload: payload, Reason: "payload is not an object"}
	}
	return widget.Options(m), nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "an array"
	case r.Type == gjson.Null:
		return "null"
	case r.Type == gjson.String:
		return "a string"
	case r.Type == gjson.Number:
		return "a number"
	case r.IsBool():
		return "a boolean"
	default:
		return "not an object"
	}
}

// ShallowMerge returns a new mapping holding base overlaid with overlay.
// Neither input is modified.
func ShallowMerge(base, overlay widget.Options) widget.Options {
	merged := base.Clone()
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

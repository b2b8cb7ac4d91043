package protocol

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// CommandEvent is the name of the page event carrying a Command.
const CommandEvent = "widgethook:command"

// Command asks a widget to do something.
type Command struct {
	// Name is the command identifier, e.g. "open".
	Name string
	// Params are the command arguments. Never nil after decoding.
	Params map[string]any
	// Target is the element id the command is meant for. Empty means any widget.
	Target string
}

// Targets reports whether the command is meant for the element with the given
// id. An untargeted command is meant for every element.
func (c Command) Targets(id string) bool {
	return c.Target == "" || c.Target == id
}

// DecodeError reports an envelope that could not be decoded.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "protocol: " + e.Reason
}

// DecodeCommand decodes a command envelope.
//
// The envelope must be a JSON object with a non-empty string "command".
// "params" must be an object when present and "target" a string.
func DecodeCommand(data []byte) (Command, error) {
	if !gjson.ValidBytes(data) {
		return Command{}, &DecodeError{Reason: "envelope is not valid JSON"}
	}
	env := gjson.ParseBytes(data)
	if !env.IsObject() {
		return Command{}, &DecodeError{Reason: "envelope is not an object"}
	}

	name := env.Get("command")
	if name.Type != gjson.String {
		return Command{}, &DecodeError{Reason: "command must be a string"}
	}
	if name.Str == "" {
		return Command{}, &DecodeError{Reason: "command is empty"}
	}

	cmd := Command{Name: name.Str, Params: map[string]any{}}

	if params := env.Get("params"); params.Exists() && params.Type != gjson.Null {
		if !params.IsObject() {
			return Command{}, &DecodeError{Reason: "params must be an object"}
		}
		m, ok := params.Value().(map[string]any)
		if !ok {
			return Command{}, &DecodeError{Reason: "params must be an object"}
		}
		cmd.Params = m
	}

	if target := env.Get("target"); target.Exists() && target.Type != gjson.Null {
		if target.Type != gjson.String {
			return Command{}, &DecodeError{Reason: fmt.Sprintf("target must be a string, got %s", target.Type)}
		}
		cmd.Target = target.Str
	}

	return cmd, nil
}

package protocol

import "github.com/tidwall/sjson"

// EncodeError encodes an error frame. code is a diagnostic code such as "E110".
func EncodeError(code, message string) []byte {
	out := []byte(`{"type":"error"}`)
	out, _ = sjson.SetBytes(out, "code", code)
	out, _ = sjson.SetBytes(out, "message", message)
	return out
}

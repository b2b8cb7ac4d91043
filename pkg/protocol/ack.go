package protocol

import "github.com/tidwall/sjson"

// Ack tells the page what happened to a command across the mounted widgets.
type Ack struct {
	Command   string
	Delivered int
	Ignored   int
	Dropped   int
}

// Total returns the number of widgets that saw the command.
func (a Ack) Total() int {
	return a.Delivered + a.Ignored + a.Dropped
}

// EncodeAck encodes an Ack frame.
func EncodeAck(ack Ack) []byte {
	out := []byte(`{"type":"ack"}`)
	out, _ = sjson.SetBytes(out, "command", ack.Command)
	out, _ = sjson.SetBytes(out, "delivered", ack.Delivered)
	out, _ = sjson.SetBytes(out, "ignored", ack.Ignored)
	out, _ = sjson.SetBytes(out, "dropped", ack.Dropped)
	return out
}

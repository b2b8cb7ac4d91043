// Package protocol defines the JSON envelopes exchanged with widget hosts.
//
// The page sends commands for widgets and receives one acknowledgement per
// command:
//
//	→ {"command": "open", "params": {"focus": true}, "target": "country"}
//	← {"type": "ack", "command": "open", "delivered": 1, "ignored": 2, "dropped": 0}
//
// An envelope that cannot be decoded is answered with an error frame:
//
//	← {"type": "error", "code": "E110", "message": "..."}
//
// Decoding uses gjson, so envelopes are validated without reflection and
// unknown fields are ignored. Encoding uses sjson.
package protocol

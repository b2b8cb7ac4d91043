// Package server hosts many widget controllers behind one event loop and
// exposes them over HTTP and WebSocket.
//
// # Host
//
// A Host owns one hook.Controller per mounted widget root, keyed by element id.
// Every operation is queued to a single loop goroutine started by Run, so events
// for all controllers run to completion one at a time in delivery order.
// Controllers never share state.
//
//	host := server.NewHost(&server.HostConfig{Registry: standard.Registry()})
//	go host.Run(ctx)
//
//	host.Mount(ctx, root)
//	decision, err := host.Render(ctx, root)
//	ack, err := host.Command(ctx, protocol.Command{Name: "open"})
//
// A command without a target is offered to every mounted controller. Each one
// ignores commands addressed to another element.
//
// # Transport
//
// NewRouter builds a chi router with these routes:
//
//	POST /commands   one JSON command envelope, answered with an ack
//	GET  /ws         WebSocket, one envelope per text message, one ack each
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus exposition, when a gatherer is configured
//
// Malformed envelopes are answered with an error frame carrying code E110.
package server

// Package telemetry exports controller activity as Prometheus metrics and
// OpenTelemetry spans.
//
// Metrics implements hook.Observer, so it can be handed straight to a
// controller or to the host:
//
//	m := telemetry.NewMetrics(telemetry.WithNamespace("shop"))
//	c := hook.New(root, registry, hook.WithObserver(m))
//
// Collected metrics (namespace "widgethook" by default):
//   - decisions_total{component,verdict,reason}
//   - attach_failures_total{code}
//   - instances_live
//   - instances_destroyed_total{component}
//   - commands_total{result}
//   - event_duration_seconds{event}
//
// Tracer starts one span per host event. It uses the global tracer provider
// unless another tracer is supplied.
package telemetry

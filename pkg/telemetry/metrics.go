package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/reconcile"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "widgethook").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "widgethook",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records controller activity. It implements hook.Observer and is
// safe for concurrent use.
type Metrics struct {
	decisions      *prometheus.CounterVec
	attachFailures *prometheus.CounterVec
	instancesLive  prometheus.Gauge
	destroyed      *prometheus.CounterVec
	commands       *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
}

var _ hook.Observer = (*Metrics)(nil)

// NewMetrics registers the metrics. Registering twice on the same registry
// panics, so create one Metrics per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decisions_total",
			Help:        "Render updates by verdict and reason",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "verdict", "reason"}),

		attachFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attach_failures_total",
			Help:        "Failed widget attaches by diagnostic code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		instancesLive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_live",
			Help:        "Number of live widget instances",
			ConstLabels: config.ConstLabels,
		}),

		destroyed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_destroyed_total",
			Help:        "Destroyed widget instances by component type",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commands_total",
			Help:        "Dispatched commands by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Host event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),
	}
}

// InstanceAttached implements hook.Observer.
func (m *Metrics) InstanceAttached(elementID, componentType string) {
	m.instancesLive.Inc()
}

// AttachFailed implements hook.Observer.
func (m *Metrics) AttachFailed(elementID, componentType, code string) {
	m.attachFailures.WithLabelValues(code).Inc()
}

// InstanceDestroyed implements hook.Observer.
func (m *Metrics) InstanceDestroyed(elementID, componentType string) {
	m.instancesLive.Dec()
	m.destroyed.WithLabelValues(componentType).Inc()
}

// Decided implements hook.Observer.
func (m *Metrics) Decided(elementID, componentType string, d reconcile.Decision) {
	m.decisions.WithLabelValues(componentType, d.Verdict.String(), d.Reason.String()).Inc()
}

// CommandDispatched implements hook.Observer.
func (m *Metrics) CommandDispatched(elementID, command string, result hook.DispatchResult) {
	m.commands.WithLabelValues(result.String()).Inc()
}

// ObserveEvent records how long a host event took.
func (m *Metrics) ObserveEvent(event string, d time.Duration) {
	m.eventDuration.WithLabelValues(event).Observe(d.Seconds())
}

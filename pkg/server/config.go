package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/telemetry"
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// HostConfig configures a Host.
type HostConfig struct {
	// QueueSize is the capacity of the request queue. Requests beyond it fail
	// with ErrEventQueueFull.
	// Default: 256.
	QueueSize int

	// Registry builds widget instances. Default: an empty widget.MapRegistry.
	Registry widget.Registry

	// Attributes are the attribute names controllers read from widget roots.
	Attributes vdom.WidgetAttributes

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// Diagnostics receives controller diagnostics. Default: a diag.LogSink on Logger.
	Diagnostics diag.Sink

	// Observers receive controller lifecycle events.
	Observers []hook.Observer

	// Metrics, when set, observes controllers and event durations.
	Metrics *telemetry.Metrics

	// Tracer, when set, starts a span per host event.
	Tracer *telemetry.Tracer
}

// DefaultHostConfig returns a HostConfig with sensible defaults.
func DefaultHostConfig() *HostConfig {
	return &HostConfig{
		QueueSize:  256,
		Attributes: vdom.DefaultWidgetAttributes(),
		Logger:     slog.Default(),
	}
}

func (c *HostConfig) withDefaults() *HostConfig {
	out := DefaultHostConfig()
	if c == nil {
		out.Registry = widget.NewMapRegistry()
		return out
	}
	*out = *c
	if out.QueueSize <= 0 {
		out.QueueSize = 256
	}
	if out.Registry == nil {
		out.Registry = widget.NewMapRegistry()
	}
	out.Attributes = out.Attributes.WithDefaults()
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Diagnostics == nil {
		out.Diagnostics = diag.NewLogSink(out.Logger)
	}
	return out
}

// ServerConfig configures the HTTP and WebSocket transport.
type ServerConfig struct {
	// Address is the TCP address to listen on.
	// Default: ":8080".
	Address string

	// ReadBufferSize is the WebSocket read buffer size in bytes.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size in bytes.
	// Default: 4096.
	WriteBufferSize int

	// MaxMessageSize limits one inbound command envelope, on both transports.
	// Default: 64KB.
	MaxMessageSize int64

	// CheckOrigin validates the WebSocket Origin header.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// MetricsPath is where the Prometheus handler is mounted.
	// Default: "/metrics".
	MetricsPath string

	// Gatherer serves the metrics endpoint. Nil disables it.
	Gatherer prometheus.Gatherer

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    64 * 1024,
		CheckOrigin:       SameOriginCheck,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MetricsPath:       "/metrics",
		Logger:            slog.Default(),
	}
}

func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadBufferSize <= 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize <= 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadHeaderTimeout <= 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	return &out
}

// SameOriginCheck accepts WebSocket requests without an Origin header or whose
// Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

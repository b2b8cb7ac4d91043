package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/vdom"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "widgethook.json"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"

	// DefaultBufferSize is the default websocket read and write buffer size.
	DefaultBufferSize = 4096

	// DefaultMaxMessageSize is the default limit for one inbound command.
	DefaultMaxMessageSize = 64 * 1024

	// DefaultEventQueue is the default capacity of the host event queue.
	DefaultEventQueue = 256

	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	DefaultShutdownTimeout = "10s"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "widgethook"

	// DefaultMetricsPath is the default metrics endpoint.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete widgethook.json configuration.
type Config struct {
	// Server contains transport and event loop settings.
	Server ServerConfig `json:"server,omitempty"`

	// Attributes overrides the attribute names widget roots are read from.
	Attributes AttributesConfig `json:"attributes,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains transport and event loop settings.
type ServerConfig struct {
	// Address is the listen address.
	Address string `json:"address,omitempty"`

	// ReadBufferSize is the websocket read buffer size in bytes.
	ReadBufferSize int `json:"readBufferSize,omitempty"`

	// WriteBufferSize is the websocket write buffer size in bytes.
	WriteBufferSize int `json:"writeBufferSize,omitempty"`

	// MaxMessageSize is the largest accepted command envelope in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty"`

	// EventQueue is the capacity of the host event queue.
	EventQueue int `json:"eventQueue,omitempty"`

	// ShutdownTimeout is how long a graceful shutdown may take (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// AttributesConfig overrides widget attribute names. Empty names keep the
// defaults.
type AttributesConfig struct {
	Component     string `json:"component,omitempty"`
	PreserveState string `json:"preserveState,omitempty"`
	Options       string `json:"options,omitempty"`
	Part          string `json:"part,omitempty"`
	Value         string `json:"value,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	Enabled bool `json:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`

	// Path is the metrics endpoint path.
	Path string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled starts a span for every host event.
	Enabled bool `json:"enabled"`

	// TracerName is the name of the tracer.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			ReadBufferSize:  DefaultBufferSize,
			WriteBufferSize: DefaultBufferSize,
			MaxMessageSize:  DefaultMaxMessageSize,
			EventQueue:      DefaultEventQueue,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for widgethook.json in the directory; a missing file yields the
// defaults, remembered as coming from that path.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	cfg, err := LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = New()
			cfg.configPath = path
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. A missing file is
// returned as the underlying fs error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, diag.New(diag.CodeInvalidConfig).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, diag.New(diag.CodeInvalidConfig).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return diag.Newf(diag.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return diag.New(diag.CodeInvalidConfig).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return diag.New(diag.CodeInvalidConfig).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	// Server
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = d.Server.ReadBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = d.Server.WriteBufferSize
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = d.Server.MaxMessageSize
	}
	if c.Server.EventQueue == 0 {
		c.Server.EventQueue = d.Server.EventQueue
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}

	// Tracing
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return diag.New(diag.CodeInvalidConfig).WithDetail(detail)
	}
	switch {
	case c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0:
		return invalid("Buffer sizes must not be negative")
	case c.Server.MaxMessageSize < 0:
		return invalid("maxMessageSize must not be negative")
	case c.Server.EventQueue < 0:
		return invalid("eventQueue must not be negative")
	case c.Metrics.Path != "" && !strings.HasPrefix(c.Metrics.Path, "/"):
		return invalid(fmt.Sprintf("metrics path %q must start with /", c.Metrics.Path))
	}
	if _, err := c.ShutdownTimeoutDuration(); err != nil {
		return invalid(fmt.Sprintf("shutdownTimeout %q is not a duration", c.Server.ShutdownTimeout))
	}
	if _, err := c.LogLevel(); err != nil {
		return invalid(err.Error())
	}
	return nil
}

// ShutdownTimeoutDuration parses Server.ShutdownTimeout. Empty means the
// default.
func (c *Config) ShutdownTimeoutDuration() (time.Duration, error) {
	s := c.Server.ShutdownTimeout
	if s == "" {
		s = DefaultShutdownTimeout
	}
	return time.ParseDuration(s)
}

// LogLevel parses Log.Level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return level, nil
}

// WidgetAttributes returns the attribute names with defaults filled in.
func (c *Config) WidgetAttributes() vdom.WidgetAttributes {
	return vdom.WidgetAttributes{
		Component:     c.Attributes.Component,
		PreserveState: c.Attributes.PreserveState,
		Options:       c.Attributes.Options,
		Part:          c.Attributes.Part,
		Value:         c.Attributes.Value,
	}.WithDefaults()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

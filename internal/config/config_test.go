package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/widgethook/pkg/diag"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, DefaultAddress)
	}
	if cfg.Server.EventQueue != DefaultEventQueue {
		t.Errorf("Server.EventQueue = %d, want %d", cfg.Server.EventQueue, DefaultEventQueue)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want default", cfg.Server.Address)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if Exists(tmpDir) {
		t.Error("Exists() = true before Save")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configJSON := `{
  "server": {
    "address": "127.0.0.1:9000",
    "eventQueue": 16,
    "shutdownTimeout": "3s"
  },
  "attributes": {
    "component": "data-widget"
  },
  "metrics": {
    "enabled": false
  },
  "tracing": {
    "enabled": true
  },
  "log": {
    "level": "debug"
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:9000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Server.EventQueue != 16 {
		t.Errorf("Server.EventQueue = %d, want 16", cfg.Server.EventQueue)
	}
	if cfg.Server.ReadBufferSize != DefaultBufferSize {
		t.Errorf("Server.ReadBufferSize = %d, want default", cfg.Server.ReadBufferSize)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Metrics.Namespace)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != DefaultNamespace {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}

	d, err := cfg.ShutdownTimeoutDuration()
	if err != nil || d != 3*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, %v; want 3s", d, err)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v; want debug", level, err)
	}

	attrs := cfg.WidgetAttributes()
	if attrs.Component != "data-widget" {
		t.Errorf("Component = %q, want data-widget", attrs.Component)
	}
	if attrs.Options != "data-options" {
		t.Errorf("Options = %q, want default", attrs.Options)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"server":`},
		{"negative queue", `{"server":{"eventQueue":-1}}`},
		{"bad timeout", `{"server":{"shutdownTimeout":"soon"}}`},
		{"bad level", `{"log":{"level":"loud"}}`},
		{"relative metrics path", `{"metrics":{"path":"metrics"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(tmpDir)
			var d *diag.Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("Load() error = %v, want *diag.Diagnostic", err)
			}
			if d.Code != diag.CodeInvalidConfig {
				t.Errorf("code = %s, want %s", d.Code, diag.CodeInvalidConfig)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.Server.Address = ":7000"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !Exists(tmpDir) {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Server.Address != ":7000" {
		t.Errorf("Server.Address = %q, want :7000", loaded.Server.Address)
	}
	if loaded.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", loaded.Dir(), tmpDir)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without path should fail")
	}
}

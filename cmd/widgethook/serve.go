package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgethook/internal/config"
	"github.com/vango-dev/widgethook/pkg/scenario"
	"github.com/vango-dev/widgethook/pkg/server"
	"github.com/vango-dev/widgethook/pkg/telemetry"
	"github.com/vango-dev/widgethook/pkg/widget/standard"
)

// page lists the widget roots mounted when the server starts.
type page struct {
	Widgets []scenario.Node `yaml:"widgets"`
}

func serveCmd() *cobra.Command {
	var (
		dir      string
		address  string
		pagePath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve widget controllers over HTTP and WebSocket",
		Long: `Serve the stock widgets behind one host event loop.

Settings come from widgethook.json in --dir. Widget roots listed in
--page are mounted at startup; commands are accepted on POST /commands
and on the /ws WebSocket.

Examples:
  widgethook serve
  widgethook serve --addr=127.0.0.1:9000 --page=page.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flag("log-level").Changed {
				level, _ := cfg.LogLevel()
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			}

			var roots []scenario.Node
			if pagePath != "" {
				if roots, err = loadPage(pagePath); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, roots)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding widgethook.json")
	cmd.Flags().StringVarP(&address, "addr", "a", "", "Listen address (default from widgethook.json)")
	cmd.Flags().StringVarP(&pagePath, "page", "p", "", "YAML file of widget roots to mount at startup")

	return cmd
}

func loadPage(path string) ([]scenario.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.Widgets, nil
}

func runServe(ctx context.Context, cfg *config.Config, roots []scenario.Node) error {
	logger := slog.Default()
	shutdownTimeout, _ := cfg.ShutdownTimeoutDuration()

	hostCfg := &server.HostConfig{
		QueueSize:  cfg.Server.EventQueue,
		Registry:   standard.Registry(),
		Attributes: cfg.WidgetAttributes(),
		Logger:     logger,
	}
	serverCfg := &server.ServerConfig{
		Address:         cfg.Server.Address,
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		MaxMessageSize:  cfg.Server.MaxMessageSize,
		ShutdownTimeout: shutdownTimeout,
		MetricsPath:     cfg.Metrics.Path,
		Logger:          logger,
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hostCfg.Metrics = telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(registry),
		)
		serverCfg.Gatherer = registry
	}
	if cfg.Tracing.Enabled {
		hostCfg.Tracer = telemetry.NewTracer(telemetry.WithTracerName(cfg.Tracing.TracerName))
	}

	host := server.NewHost(hostCfg)
	srv := server.New(host, serverCfg)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx) }()

	go func() {
		mounted := 0
		for _, n := range roots {
			root := n.Build()
			if err := host.Mount(ctx, root); err != nil {
				errorMsg("mount #%s: %v", root.ID(), err)
				continue
			}
			mounted++
		}
		success("Serving on %s", cfg.Server.Address)
		info("%d widgets mounted, metrics %s, tracing %s", mounted, onOff(cfg.Metrics.Enabled), onOff(cfg.Tracing.Enabled))
	}()

	return <-errCh
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

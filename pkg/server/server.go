package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
)

// Server runs a Host behind the HTTP routes built by NewRouter.
type Server struct {
	host   *Host
	config *ServerConfig
	logger *slog.Logger
	router http.Handler
}

// New creates a Server for host.
func New(host *Host, config *ServerConfig) *Server {
	cfg := config.withDefaults()
	return &Server{
		host:   host,
		config: cfg,
		logger: cfg.Logger,
		router: NewRouter(host, cfg),
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Host returns the served host.
func (s *Server) Host() *Host {
	return s.host
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled. See Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the host loop and serves HTTP on ln until ctx is cancelled, then
// shuts the HTTP server down within ShutdownTimeout and stops the host.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	hostCtx, stopHost := context.WithCancel(context.Background())
	defer stopHost()
	hostErr := make(chan error, 1)
	go func() { hostErr <- s.host.Run(hostCtx) }()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case err := <-hostErr:
		// The host stopped on its own; the transport has nothing left to serve.
		_ = httpServer.Close()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			serveErr = err
		}
	}

	stopHost()
	if err := <-hostErr; err != nil && serveErr == nil {
		serveErr = err
	}
	s.logger.Info("server shutdown complete")
	return serveErr
}

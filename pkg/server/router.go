package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/protocol"
)

// routes carries the handlers' shared state.
type routes struct {
	host     *Host
	config   *ServerConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewRouter builds the HTTP routes for host.
func NewRouter(host *Host, config *ServerConfig) chi.Router {
	cfg := config.withDefaults()
	rt := &routes{
		host:   host,
		config: cfg,
		logger: cfg.Logger.With("component", "transport"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/commands", rt.handleCommand)
	r.Get("/ws", rt.handleWebSocket)
	r.Get("/healthz", rt.handleHealth)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, cfg.MetricsPath, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (rt *routes) handleHealth(w http.ResponseWriter, r *http.Request) {
	select {
	case <-rt.host.Done():
		http.Error(w, "host closed", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func (rt *routes) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.config.MaxMessageSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFrame(w, http.StatusRequestEntityTooLarge, protocol.EncodeError(diag.CodeMalformedCommand, "envelope too large"))
			return
		}
		writeFrame(w, http.StatusBadRequest, protocol.EncodeError(diag.CodeMalformedCommand, err.Error()))
		return
	}

	frame, status := rt.process(r, body)
	writeFrame(w, status, frame)
}

// process runs one envelope through the host and returns the reply frame and
// the HTTP status that goes with it.
func (rt *routes) process(r *http.Request, data []byte) ([]byte, int) {
	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		rt.logger.Debug("malformed command envelope", "error", err, "request_id", middleware.GetReqID(r.Context()))
		return protocol.EncodeError(diag.CodeMalformedCommand, err.Error()), http.StatusBadRequest
	}

	ack, err := rt.host.Command(r.Context(), cmd)
	if err != nil {
		rt.logger.Warn("command not processed", "command", cmd.Name, "error", err)
		status := http.StatusServiceUnavailable
		if !errors.Is(err, ErrHostClosed) && !errors.Is(err, ErrEventQueueFull) {
			status = http.StatusInternalServerError
		}
		return protocol.EncodeError(diag.CodeHostUnavailable, err.Error()), status
	}
	return protocol.EncodeAck(ack), http.StatusOK
}

func writeFrame(w http.ResponseWriter, status int, frame []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(frame)
}

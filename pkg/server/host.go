package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/protocol"
	"github.com/vango-dev/widgethook/pkg/reconcile"
	"github.com/vango-dev/widgethook/pkg/telemetry"
	"github.com/vango-dev/widgethook/pkg/vdom"
)

// Host event names, used for spans and the event duration histogram.
const (
	EventMount   = "mount"
	EventRender  = "render"
	EventUnmount = "unmount"
	EventCommand = "command"
	EventList    = "list"
)

// ControllerInfo describes one mounted controller.
type ControllerInfo struct {
	ID            string
	ComponentType string
	State         hook.State
	Generation    string
}

// request is one queued host event.
type request struct {
	ctx       context.Context
	event     string
	elementID string
	fn        func(span trace.Span) error
	result    chan error
}

// Host serializes events for many widget controllers on one goroutine.
type Host struct {
	config   *HostConfig
	logger   *slog.Logger
	observer hook.Observer

	// Owned by the loop goroutine.
	controllers map[string]*hook.Controller
	order       []string

	requests  chan *request
	stop      chan struct{}
	done      chan struct{}
	running   atomic.Bool
	closeOnce sync.Once
	doneOnce  sync.Once
}

// NewHost creates a Host. Call Run to start processing events.
func NewHost(config *HostConfig) *Host {
	cfg := config.withDefaults()

	observers := cfg.Observers
	if cfg.Metrics != nil {
		observers = append(append([]hook.Observer(nil), observers...), cfg.Metrics)
	}
	var observer hook.Observer = hook.NopObserver{}
	if len(observers) > 0 {
		observer = telemetry.Multi(observers...)
	}

	return &Host{
		config:      cfg,
		logger:      cfg.Logger.With("component", "host"),
		observer:    observer,
		controllers: make(map[string]*hook.Controller),
		requests:    make(chan *request, cfg.QueueSize),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Run processes queued events until ctx is cancelled or Close is called. On
// return every mounted controller is detached.
func (h *Host) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return ErrHostRunning
	}
	defer h.shutdown()

	h.logger.Debug("host loop started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.stop:
			return nil
		case req := <-h.requests:
			h.handle(req)
		}
	}
}

// Close stops the loop. Safe to call more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() { close(h.stop) })
}

// Done is closed once the loop has stopped and every controller is detached.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

func (h *Host) shutdown() {
	for _, id := range h.order {
		h.controllers[id].Detach()
	}
	h.logger.Debug("host loop stopped", "detached", len(h.order))
	h.controllers = make(map[string]*hook.Controller)
	h.order = nil
	h.doneOnce.Do(func() { close(h.done) })
}

func (h *Host) handle(req *request) {
	start := time.Now()
	_, span := h.config.Tracer.StartEvent(req.ctx, req.event, req.elementID)
	err := req.fn(span)
	telemetry.EndSpan(span, err)
	if h.config.Metrics != nil {
		h.config.Metrics.ObserveEvent(req.event, time.Since(start))
	}
	req.result <- err
}

// submit queues fn and waits for the loop to run it.
func (h *Host) submit(ctx context.Context, event, elementID string, fn func(span trace.Span) error) error {
	select {
	case <-h.done:
		return ErrHostClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	req := &request{
		ctx:       ctx,
		event:     event,
		elementID: elementID,
		fn:        fn,
		result:    make(chan error, 1),
	}

	select {
	case h.requests <- req:
	default:
		h.logger.Warn("event queue full, dropping event", "event", event, "element_id", elementID)
		return ErrEventQueueFull
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHostClosed
	}
}

// Mount creates a controller for root and attaches its widget. The root's id
// identifies the controller until Unmount.
//
// An attach failure is returned, but the controller stays mounted and detached.
// Later renders of it are NoChange/ReasonInactive.
func (h *Host) Mount(ctx context.Context, root *vdom.VNode) error {
	if root == nil || root.ID() == "" {
		return ErrMissingID
	}
	id := root.ID()
	return h.submit(ctx, EventMount, id, func(span trace.Span) error {
		if _, ok := h.controllers[id]; ok {
			return ErrDuplicate
		}
		c := hook.New(root, h.config.Registry,
			hook.WithLogger(h.config.Logger),
			hook.WithDiagnostics(h.config.Diagnostics),
			hook.WithObserver(h.observer),
			hook.WithAttributes(h.config.Attributes),
		)
		h.controllers[id] = c
		h.order = append(h.order, id)

		err := c.Attach()
		span.SetAttributes(telemetry.AttrComponent.String(c.ComponentType()))
		return err
	})
}

// Render delivers a re-render of a mounted root and returns the controller's
// decision.
func (h *Host) Render(ctx context.Context, root *vdom.VNode) (reconcile.Decision, error) {
	if root == nil || root.ID() == "" {
		return reconcile.Decision{}, ErrMissingID
	}
	id := root.ID()
	var d reconcile.Decision
	err := h.submit(ctx, EventRender, id, func(span trace.Span) error {
		c, ok := h.controllers[id]
		if !ok {
			return ErrNotMounted
		}
		d = c.Update(root)
		telemetry.RecordDecision(span, c.ComponentType(), d)
		return nil
	})
	return d, err
}

// Unmount detaches and forgets the controller for id.
func (h *Host) Unmount(ctx context.Context, id string) error {
	return h.submit(ctx, EventUnmount, id, func(trace.Span) error {
		c, ok := h.controllers[id]
		if !ok {
			return ErrNotMounted
		}
		c.Detach()
		delete(h.controllers, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Command offers cmd to every mounted controller in mount order and counts the
// results. With nothing mounted the ack is all zeros.
func (h *Host) Command(ctx context.Context, cmd protocol.Command) (protocol.Ack, error) {
	ack := protocol.Ack{Command: cmd.Name}
	err := h.submit(ctx, EventCommand, cmd.Target, func(span trace.Span) error {
		for _, id := range h.order {
			switch h.controllers[id].Dispatch(cmd) {
			case hook.Delivered:
				ack.Delivered++
			case hook.Ignored:
				ack.Ignored++
			case hook.Dropped:
				ack.Dropped++
			}
		}
		span.SetAttributes(
			telemetry.AttrCommand.String(cmd.Name),
			attribute.Int("widget.delivered", ack.Delivered),
			attribute.Int("widget.ignored", ack.Ignored),
			attribute.Int("widget.dropped", ack.Dropped),
		)
		return nil
	})
	if err != nil {
		return protocol.Ack{Command: cmd.Name}, err
	}
	return ack, nil
}

// Controllers lists mounted controllers in mount order.
func (h *Host) Controllers(ctx context.Context) ([]ControllerInfo, error) {
	var out []ControllerInfo
	err := h.submit(ctx, EventList, "", func(trace.Span) error {
		out = make([]ControllerInfo, 0, len(h.order))
		for _, id := range h.order {
			c := h.controllers[id]
			out = append(out, ControllerInfo{
				ID:            id,
				ComponentType: c.ComponentType(),
				State:         c.State(),
				Generation:    c.Generation(),
			})
		}
		return nil
	})
	return out, err
}

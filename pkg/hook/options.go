package hook

import (
	"log/slog"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/vdom"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The controller adds an element_id attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDiagnostics sets where failures are reported. The default writes them to
// the controller's logger.
func WithDiagnostics(sink diag.Sink) Option {
	return func(c *Controller) {
		c.diag = sink
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithAttributes overrides the attribute names the controller reads. Empty
// names keep their defaults.
func WithAttributes(attrs vdom.WidgetAttributes) Option {
	return func(c *Controller) {
		c.attrs = attrs.WithDefaults()
	}
}

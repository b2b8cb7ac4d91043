package hook

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/fingerprint"
	"github.com/vango-dev/widgethook/pkg/options"
	"github.com/vango-dev/widgethook/pkg/protocol"
	"github.com/vango-dev/widgethook/pkg/reconcile"
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// ErrClosed is returned by Attach after Detach.
var ErrClosed = errors.New("hook: controller is closed")

// Controller binds one widget instance to one root element.
type Controller struct {
	id       string
	root     *vdom.VNode
	registry widget.Registry
	attrs    vdom.WidgetAttributes

	logger   *slog.Logger
	diag     diag.Sink
	observer Observer

	classifier    reconcile.Classifier
	slot          slot
	state         State
	componentType string
	generation    string
}

// New creates a detached controller for root. The element id is read from root
// once and identifies the controller for its whole life.
func New(root *vdom.VNode, registry widget.Registry, opts ...Option) *Controller {
	c := &Controller{
		id:       root.ID(),
		root:     root,
		registry: registry,
		attrs:    vdom.DefaultWidgetAttributes(),
		logger:   slog.Default(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("element_id", c.id)
	if c.diag == nil {
		c.diag = diag.NewLogSink(c.logger)
	}
	c.slot.destroy = c.destroyInstance
	return c
}

// ID returns the root's element id. Implements widget.Host.
func (c *Controller) ID() string { return c.id }

// Logger returns the controller's logger. Implements widget.Host.
func (c *Controller) Logger() *slog.Logger { return c.logger }

// Attributes returns the attribute names the controller reads. Implements
// widget.Host.
func (c *Controller) Attributes() vdom.WidgetAttributes { return c.attrs }

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Root returns the most recent root the controller was given.
func (c *Controller) Root() *vdom.VNode { return c.root }

// Instance returns the live instance, or nil.
func (c *Controller) Instance() widget.Instance { return c.slot.current() }

// ComponentType returns the component type of the live instance, or "".
func (c *Controller) ComponentType() string { return c.componentType }

// Generation identifies the live instance. It changes on every successful
// attach and is empty while detached.
func (c *Controller) Generation() string { return c.generation }

// Attach creates the widget instance for the current root.
//
// Failures are reported to the diagnostics sink, leave the controller detached
// and are returned as *diag.Diagnostic. Attaching an attached controller does
// nothing.
func (c *Controller) Attach() error {
	switch {
	case c.state == StateClosed:
		return ErrClosed
	case c.slot.occupied():
		return nil
	}
	return c.attach()
}

func (c *Controller) attach() error {
	tag, ok := c.root.GetAttr(c.attrs.Component)
	if !ok || tag == "" {
		return c.attachFailed(diag.New(diag.CodeMissingComponent).
			WithDetail(fmt.Sprintf("element #%s has no %s attribute", c.id, c.attrs.Component)), "")
	}

	var inst widget.Instance
	var err error
	if perr := widget.Call("Create", func() {
		inst, err = c.registry.Create(tag, c.root, c)
	}); perr != nil {
		err = perr
	}
	if err == nil && inst == nil {
		err = fmt.Errorf("registry returned no instance for %q", tag)
	}
	if err != nil {
		code := diag.CodeConstructFailed
		if errors.Is(err, widget.ErrUnknownComponent) {
			code = diag.CodeUnknownComponent
		}
		return c.attachFailed(diag.New(code).Wrap(err), tag)
	}

	c.slot.attach(inst)
	c.componentType = tag
	c.generation = uuid.NewString()
	c.classifier.Baseline(tag)
	c.state = StateAttached

	c.logger.Debug("widget attached", "component", tag, "generation", c.generation)
	c.observer.InstanceAttached(c.id, tag)
	return nil
}

func (c *Controller) attachFailed(d *diag.Diagnostic, tag string) error {
	d.WithElement(c.id).WithComponent(tag)
	c.componentType = ""
	c.generation = ""
	c.classifier.Reset()
	c.state = StateDetached
	c.diag.Report(d)
	c.observer.AttachFailed(c.id, tag, d.Code)
	return d
}

// Update handles a re-render of the widget root and returns what was done with
// the live instance. A nil root re-evaluates the previous one.
//
// Without a live instance the render is ignored and the decision is
// NoChange/ReasonInactive.
func (c *Controller) Update(root *vdom.VNode) reconcile.Decision {
	if c.state == StateClosed {
		return reconcile.Decision{Verdict: reconcile.NoChange, Reason: reconcile.ReasonInactive}
	}
	if root != nil {
		c.root = root
	}
	if !c.slot.occupied() {
		return reconcile.Decision{Verdict: reconcile.NoChange, Reason: reconcile.ReasonInactive}
	}

	tag, _ := c.root.GetAttr(c.attrs.Component)
	sig := fingerprint.ExtractWith(c.root, c.attrs)
	d := c.classifier.Classify(tag, sig)
	if c.preserveState() {
		d = reconcile.Preserve(d)
	}

	c.logger.Debug("render classified",
		"component", tag,
		"verdict", d.Verdict.String(),
		"reason", d.Reason.String(),
		"signature", sig.String(),
	)

	// The component type recorded before a rebuild is the one metrics see.
	observedType := c.componentType

	if d.Verdict.KeepsInstance() {
		if err := c.reconfigure(); err != nil {
			c.reportReconfigure(err)
			d = reconcile.Decision{Verdict: reconcile.Rebuild, Reason: reconcile.ReasonRecovery}
			c.rebuild()
		}
	} else {
		c.rebuild()
	}

	c.observer.Decided(c.id, observedType, d)
	return d
}

func (c *Controller) preserveState() bool {
	v, ok := c.root.GetAttr(c.attrs.PreserveState)
	return ok && v == "true"
}

// reconfigure merges the root's options into the live instance and refreshes
// the overlay position.
func (c *Controller) reconfigure() error {
	c.state = StateReconfiguring
	defer func() {
		if c.state == StateReconfiguring {
			c.state = StateAttached
		}
	}()

	inst := c.slot.current()
	if b, ok := inst.(widget.ElementBinder); ok {
		if err := widget.Call("BindElement", func() { b.BindElement(c.root) }); err != nil {
			return err
		}
	}

	payload, _ := c.root.GetAttr(c.attrs.Options)
	if err := options.Merge(inst, payload); err != nil {
		return err
	}
	return refreshPosition(inst)
}

// refreshPosition asks an open positioned overlay to recompute its placement.
func refreshPosition(inst widget.Instance) error {
	pa, ok := inst.(widget.PositionAware)
	if !ok {
		return nil
	}
	if o, ok := inst.(widget.Opener); ok {
		var open bool
		if err := widget.Call("IsOpen", func() { open = o.IsOpen() }); err != nil {
			return err
		}
		if !open {
			return nil
		}
	}
	var p widget.Positioner
	if err := widget.Call("PositionedElement", func() { p = pa.PositionedElement() }); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	return widget.Call("Positioner.Update", p.Update)
}

func (c *Controller) reportReconfigure(err error) {
	var d *diag.Diagnostic
	var perr *options.ParseError
	var herr *widget.HookError
	switch {
	case errors.As(err, &perr):
		d = diag.New(diag.CodeMalformedOptions).WithDetail(perr.Preview())
	case errors.As(err, &herr):
		d = diag.New(diag.CodeHookPanic).WithDetail(herr.Hook)
	default:
		d = diag.New(diag.CodeHookPanic)
	}
	c.diag.Report(d.WithElement(c.id).WithComponent(c.componentType).Wrap(err))
}

// rebuild destroys the live instance and attaches a new one for the current
// root. A failed attach leaves the controller detached.
func (c *Controller) rebuild() {
	c.state = StateRebuilding
	c.slot.clear()
	c.componentType = ""
	c.generation = ""
	_ = c.attach()
}

// destroyInstance is the slot's destroy function.
func (c *Controller) destroyInstance(inst widget.Instance) {
	if err := widget.Call("Destroy", inst.Destroy); err != nil {
		c.diag.Report(diag.FromError(err, diag.CodeHookPanic).
			WithDetail("Destroy").
			WithElement(c.id).
			WithComponent(c.componentType))
	}
	c.logger.Debug("widget destroyed", "component", c.componentType)
	c.observer.InstanceDestroyed(c.id, c.componentType)
}

// Dispatch forwards a command to the live instance.
//
// A command targeting another element is Ignored. Without a live instance that
// handles commands it is Dropped. A command handler that panics is reported and
// its instance rebuilt; the command still counts as Delivered.
func (c *Controller) Dispatch(cmd protocol.Command) DispatchResult {
	result := c.dispatch(cmd)
	c.observer.CommandDispatched(c.id, cmd.Name, result)
	return result
}

func (c *Controller) dispatch(cmd protocol.Command) DispatchResult {
	if c.state == StateClosed {
		return Dropped
	}
	if !cmd.Targets(c.id) {
		return Ignored
	}
	inst := c.slot.current()
	if inst == nil {
		c.logger.Debug("command dropped, no instance", "command", cmd.Name)
		return Dropped
	}
	h, ok := inst.(widget.CommandHandler)
	if !ok {
		c.logger.Debug("command dropped, not handled", "command", cmd.Name, "component", c.componentType)
		return Dropped
	}

	params := cmd.Params
	if params == nil {
		params = map[string]any{}
	}
	if err := widget.Call("HandleCommand", func() { h.HandleCommand(cmd.Name, params) }); err != nil {
		c.diag.Report(diag.FromError(err, diag.CodeHookPanic).
			WithDetail("HandleCommand " + cmd.Name).
			WithElement(c.id).
			WithComponent(c.componentType))
		c.rebuild()
	}
	return Delivered
}

// Detach destroys the live instance and closes the controller. Every later
// event is ignored. Detaching twice is a no-op.
func (c *Controller) Detach() {
	if c.state == StateClosed {
		return
	}
	c.slot.clear()
	c.classifier.Reset()
	c.componentType = ""
	c.generation = ""
	c.state = StateClosed
	c.logger.Debug("controller detached")
}

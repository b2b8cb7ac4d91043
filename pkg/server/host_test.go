package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/hooktest"
	"github.com/vango-dev/widgethook/pkg/protocol"
	"github.com/vango-dev/widgethook/pkg/reconcile"
	"github.com/vango-dev/widgethook/pkg/telemetry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startHost runs a host on a fake registry until the test ends.
func startHost(t *testing.T, cfg *HostConfig) (*Host, *hooktest.Registry) {
	t.Helper()
	reg := hooktest.NewRegistry()
	if cfg == nil {
		cfg = &HostConfig{}
	}
	cfg.Registry = reg
	cfg.Logger = discardLogger()
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = &diag.Recorder{}
	}

	host := NewHost(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	go host.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-host.Done()
	})
	return host, reg
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestHostMountRenderUnmount(t *testing.T) {
	host, reg := startHost(t, nil)
	ctx := testContext(t)

	root := hooktest.Widget("country", "select", hooktest.P("item", "fr"))
	if err := host.Mount(ctx, root); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if reg.Count() != 1 {
		t.Fatalf("created = %d, want 1", reg.Count())
	}

	d, err := host.Render(ctx, root)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if d.Verdict != reconcile.NoChange || d.Reason != reconcile.ReasonBaseline {
		t.Errorf("first render = %v, want no_change(baseline)", d)
	}

	changed := hooktest.Widget("country", "select", hooktest.P("item", "fr"), hooktest.P("item", "de"))
	d, err = host.Render(ctx, changed)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if d.Verdict != reconcile.Rebuild || d.Reason != reconcile.ReasonStructureChanged {
		t.Errorf("changed render = %v, want rebuild(structure_changed)", d)
	}
	if reg.Count() != 2 {
		t.Errorf("created = %d, want 2", reg.Count())
	}

	if err := host.Unmount(ctx, "country"); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if got := reg.Last().Destroyed(); got != 1 {
		t.Errorf("Destroyed() = %d, want 1", got)
	}
	infos, err := host.Controllers(ctx)
	if err != nil {
		t.Fatalf("Controllers() error = %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Controllers() = %v, want none", infos)
	}
}

func TestHostControllersAreIsolated(t *testing.T) {
	host, reg := startHost(t, nil)
	ctx := testContext(t)

	a := hooktest.Widget("a", "select", hooktest.P("item", "1"))
	b := hooktest.Widget("b", "tooltip", hooktest.Bare("trigger"))
	if err := host.Mount(ctx, a); err != nil {
		t.Fatalf("Mount(a) error = %v", err)
	}
	if err := host.Mount(ctx, b); err != nil {
		t.Fatalf("Mount(b) error = %v", err)
	}
	first := reg.Created()

	host.Render(ctx, a)
	host.Render(ctx, b)
	if _, err := host.Render(ctx, hooktest.Widget("a", "select", hooktest.P("item", "2"))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if first[0].Destroyed() != 1 {
		t.Errorf("a destroyed %d times, want 1", first[0].Destroyed())
	}
	if first[1].Destroyed() != 0 {
		t.Errorf("b destroyed %d times, want 0", first[1].Destroyed())
	}

	infos, err := host.Controllers(ctx)
	if err != nil {
		t.Fatalf("Controllers() error = %v", err)
	}
	if len(infos) != 2 || infos[0].ID != "a" || infos[1].ID != "b" {
		t.Fatalf("Controllers() = %+v, want a then b", infos)
	}
	if infos[1].ComponentType != "tooltip" || infos[1].State != hook.StateAttached {
		t.Errorf("b = %+v, want attached tooltip", infos[1])
	}
	if infos[0].Generation == infos[1].Generation {
		t.Error("controllers share a generation")
	}
}

func TestHostCommand(t *testing.T) {
	host, reg := startHost(t, nil)
	ctx := testContext(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := host.Mount(ctx, hooktest.Widget(id, "select")); err != nil {
			t.Fatalf("Mount(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		name string
		cmd  protocol.Command
		want protocol.Ack
	}{
		{
			name: "broadcast",
			cmd:  protocol.Command{Name: "open"},
			want: protocol.Ack{Command: "open", Delivered: 3},
		},
		{
			name: "targeted",
			cmd:  protocol.Command{Name: "close", Target: "b"},
			want: protocol.Ack{Command: "close", Delivered: 1, Ignored: 2},
		},
		{
			name: "unknown target",
			cmd:  protocol.Command{Name: "close", Target: "zzz"},
			want: protocol.Ack{Command: "close", Ignored: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack, err := host.Command(ctx, tt.cmd)
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}
			if ack != tt.want {
				t.Errorf("Command() = %+v, want %+v", ack, tt.want)
			}
		})
	}

	b := reg.Created()[1]
	cmds := b.Commands()
	if len(cmds) != 2 || cmds[0].Name != "open" || cmds[1].Name != "close" {
		t.Errorf("b commands = %+v, want open then close", cmds)
	}
}

func TestHostCommandWithoutControllers(t *testing.T) {
	host, _ := startHost(t, nil)
	ack, err := host.Command(testContext(t), protocol.Command{Name: "open"})
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if ack.Total() != 0 {
		t.Errorf("Total() = %d, want 0", ack.Total())
	}
}

func TestHostErrors(t *testing.T) {
	host, _ := startHost(t, nil)
	ctx := testContext(t)

	root := hooktest.Widget("menu", "dropdown-menu")
	if err := host.Mount(ctx, root); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if err := host.Mount(ctx, root); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second Mount() error = %v, want ErrDuplicate", err)
	}
	if err := host.Mount(ctx, hooktest.Widget("", "select")); !errors.Is(err, ErrMissingID) {
		t.Errorf("Mount(no id) error = %v, want ErrMissingID", err)
	}
	if err := host.Mount(ctx, nil); !errors.Is(err, ErrMissingID) {
		t.Errorf("Mount(nil) error = %v, want ErrMissingID", err)
	}
	if _, err := host.Render(ctx, hooktest.Widget("other", "select")); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Render(unmounted) error = %v, want ErrNotMounted", err)
	}
	if err := host.Unmount(ctx, "other"); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Unmount(unmounted) error = %v, want ErrNotMounted", err)
	}
}

func TestHostMountAttachFailure(t *testing.T) {
	rec := &diag.Recorder{}
	host, reg := startHost(t, &HostConfig{Diagnostics: rec})
	ctx := testContext(t)

	root := hooktest.Widget("bare", "")
	err := host.Mount(ctx, root)
	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != diag.CodeMissingComponent {
		t.Fatalf("Mount() error = %v, want E101 diagnostic", err)
	}
	if reg.Count() != 0 {
		t.Errorf("created = %d, want 0", reg.Count())
	}

	infos, _ := host.Controllers(ctx)
	if len(infos) != 1 || infos[0].State != hook.StateDetached {
		t.Fatalf("Controllers() = %+v, want one detached controller", infos)
	}

	dec, err := host.Render(ctx, root)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if dec.Reason != reconcile.ReasonInactive {
		t.Errorf("Render() = %v, want no_change(inactive)", dec)
	}
	if codes := rec.Codes(); len(codes) != 1 || codes[0] != diag.CodeMissingComponent {
		t.Errorf("diagnostics = %v, want [E101]", codes)
	}
}

func TestHostQueueFull(t *testing.T) {
	host := NewHost(&HostConfig{QueueSize: 1, Logger: discardLogger()})
	host.requests <- &request{result: make(chan error, 1)}

	err := host.Mount(testContext(t), hooktest.Widget("x", "select"))
	if !errors.Is(err, ErrEventQueueFull) {
		t.Errorf("Mount() error = %v, want ErrEventQueueFull", err)
	}
}

func TestHostClose(t *testing.T) {
	reg := hooktest.NewRegistry()
	host := NewHost(&HostConfig{Registry: reg, Logger: discardLogger()})
	ctx := testContext(t)

	runErr := make(chan error, 1)
	go func() { runErr <- host.Run(context.Background()) }()

	if err := host.Mount(ctx, hooktest.Widget("x", "select")); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := host.Run(ctx); !errors.Is(err, ErrHostRunning) {
		t.Errorf("second Run() error = %v, want ErrHostRunning", err)
	}

	host.Close()
	host.Close()
	if err := <-runErr; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	<-host.Done()

	if got := reg.Last().Destroyed(); got != 1 {
		t.Errorf("Destroyed() = %d, want 1", got)
	}
	if err := host.Mount(ctx, hooktest.Widget("y", "select")); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Mount() after Close error = %v, want ErrHostClosed", err)
	}
}

func TestHostCancelledContext(t *testing.T) {
	host, _ := startHost(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := host.Mount(ctx, hooktest.Widget("x", "select")); !errors.Is(err, context.Canceled) {
		t.Errorf("Mount() error = %v, want context.Canceled", err)
	}
}

func TestHostMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(registry))
	host, _ := startHost(t, &HostConfig{Metrics: metrics})
	ctx := testContext(t)

	root := hooktest.Widget("x", "select")
	if err := host.Mount(ctx, root); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	host.Render(ctx, root)
	host.Command(ctx, protocol.Command{Name: "open"})

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	counts := map[string]uint64{}
	var live float64
	for _, mf := range families {
		switch mf.GetName() {
		case "widgethook_event_duration_seconds":
			for _, m := range mf.GetMetric() {
				for _, l := range m.GetLabel() {
					if l.GetName() == "event" {
						counts[l.GetValue()] = m.GetHistogram().GetSampleCount()
					}
				}
			}
		case "widgethook_instances_live":
			live = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}

	for _, event := range []string{EventMount, EventRender, EventCommand} {
		if counts[event] != 1 {
			t.Errorf("event %q observed %d times, want 1", event, counts[event])
		}
	}
	if live != 1 {
		t.Errorf("instances_live = %v, want 1", live)
	}
}

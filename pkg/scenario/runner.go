package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/widgethook/pkg/diag"
	"github.com/vango-dev/widgethook/pkg/hook"
	"github.com/vango-dev/widgethook/pkg/protocol"
	"github.com/vango-dev/widgethook/pkg/vdom"
	"github.com/vango-dev/widgethook/pkg/widget"
)

// Step outcomes besides decisions and dispatch results.
const (
	OutcomeAttached = "attached"
	OutcomeDetached = "detached"
	OutcomeClosed   = "closed"
)

// StepResult is what one step did.
type StepResult struct {
	Index   int
	Op      string
	Outcome string
	Expect  string
	// Component is the live component type after the step.
	Component string
	// Diagnostics are the codes reported during the step.
	Diagnostics []string
}

// Matched reports whether the outcome satisfies the expectation. An empty
// expectation always matches; a bare verdict matches any reason.
func (r StepResult) Matched() bool {
	if r.Expect == "" || r.Expect == r.Outcome {
		return true
	}
	return strings.HasPrefix(r.Outcome, r.Expect+"(")
}

// Report is the result of running one scenario.
type Report struct {
	Scenario string
	Steps    []StepResult
}

// Mismatches returns the steps whose outcome did not match.
func (r *Report) Mismatches() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.Matched() {
			out = append(out, s)
		}
	}
	return out
}

// OK reports whether every step matched.
func (r *Report) OK() bool {
	return len(r.Mismatches()) == 0
}

// Runner plays scenarios, each against a fresh controller.
type Runner struct {
	// Registry builds widget instances. Required.
	Registry widget.Registry

	// Attributes are the attribute names read from roots. Zero fields use the
	// defaults.
	Attributes vdom.WidgetAttributes

	// Logger receives controller logs. Default: slog.Default().
	Logger *slog.Logger

	// Observer, when set, sees every controller event.
	Observer hook.Observer
}

// Run plays s step by step. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	if r.Registry == nil {
		return nil, errors.New("scenario: runner has no registry")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("scenario", s.Name)
	rec := &diag.Recorder{}
	opts := []hook.Option{
		hook.WithLogger(logger),
		hook.WithDiagnostics(diag.Multi(rec, diag.NewLogSink(logger))),
		hook.WithAttributes(r.Attributes),
	}
	if r.Observer != nil {
		opts = append(opts, hook.WithObserver(r.Observer))
	}

	report := &Report{Scenario: s.Name}
	var c *hook.Controller
	defer func() {
		if c != nil {
			c.Detach()
		}
	}()

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i == 0 {
			c = hook.New(st.Tree.Build(), r.Registry, opts...)
		}

		seen := len(rec.Codes())
		res := StepResult{Index: i + 1, Op: st.Op, Expect: st.Expect}
		res.Outcome = r.play(c, st)
		res.Component = c.ComponentType()
		if codes := rec.Codes(); len(codes) > seen {
			res.Diagnostics = codes[seen:]
		}
		report.Steps = append(report.Steps, res)
	}
	return report, nil
}

func (r *Runner) play(c *hook.Controller, st Step) string {
	switch st.Op {
	case OpAttach:
		if err := c.Attach(); errors.Is(err, hook.ErrClosed) {
			return OutcomeClosed
		}
		if c.Instance() != nil {
			return OutcomeAttached
		}
		return OutcomeDetached
	case OpRender:
		var root *vdom.VNode
		if st.Tree != nil {
			root = st.Tree.Build()
		}
		return c.Update(root).String()
	case OpCommand:
		return c.Dispatch(protocol.Command{
			Name:   st.Command,
			Params: st.Params,
			Target: st.Target,
		}).String()
	case OpDetach:
		c.Detach()
		return OutcomeClosed
	}
	panic(fmt.Sprintf("scenario: unknown op %q", st.Op))
}

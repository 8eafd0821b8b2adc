// Package process manages the lifecycle of a side-effecting asynchronous
// action with an identity but no return value, bound to an observable
// state cell. It is the action counterpart of package loadable.
package process

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tinora/processed/cell"
	"github.com/tinora/processed/event"
	"github.com/tinora/processed/internal/engine"
	"github.com/tinora/processed/procerr"
	"github.com/tinora/processed/task"
	"github.com/tinora/processed/util"
)

// A Body is the unit of work run by Run.
//
// Returning procerr.ErrCancelled (or a context error) abandons the run and
// leaves the state as it was; returning procerr.ErrReset clears the state
// to Idle. Any other error sets the state to Failed for the run's process
// identity.
type Body func(ctx context.Context) error

// Config specifies optional configuration for a Process
type Config struct {
	// Scheduler is the scheduling context all state writes are applied on.
	// Controllers that should observe a consistent ordering must share one
	// scheduler.
	Scheduler event.Scheduler
}

// Validate checks the configuration options and returns an error if any
// have invalid values.
func (cfg *Config) Validate() error {
	if cfg.Scheduler == nil {
		return &procerr.ConfigurationError{
			Component: "ProcessConfig",
			Err:       fmt.Errorf("scheduler must not be nil"),
		}
	}
	return nil
}

// DefaultConfig returns the default configuration options for a Process.
// Options may be overridden before passing to New.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: event.NewSimpleScheduler(clock.New()), // use standard time
	}
}

// A Process controls the running lifecycle of the state cell it is bound
// to, enforcing at most one in-flight action per cell. Distinct actions
// sharing the cell are told apart by their ID value.
//
// Apart from Cancel, all methods must be called on the scheduler's worker.
type Process[ID comparable] struct {
	// cfg is a copy of the optional configuration supplied to the process
	cfg Config

	cell *cell.Cell[State[ID]]
	eng  *engine.Engine[State[ID]]
}

// New creates a Process controlling c.
func New[ID comparable](c *cell.Cell[State[ID]], cfg *Config) (*Process[ID], error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &procerr.ConfigurationError{
			Component: "Process",
			Err:       fmt.Errorf("state cell must not be nil"),
		}
	}

	return &Process[ID]{
		cfg:  *cfg,
		cell: c,
		eng: engine.New(cfg.Scheduler, c, engine.Transitions[State[ID]]{
			Empty:   Idle[ID],
			IsEmpty: State[ID].IsIdle,
		}),
	}, nil
}

// Get returns the current state of the bound cell.
func (p *Process[ID]) Get() State[ID] {
	return p.cell.Get()
}

// Set overrides the state directly, cancelling any in-flight action so it
// cannot later overwrite the assigned value.
func (p *Process[ID]) Set(s State[ID]) {
	p.eng.Assign(s)
}

// Observe registers f to be called on every state change and returns a
// function that removes the observer.
func (p *Process[ID]) Observe(f func(State[ID])) func() {
	return p.cell.Observe(f)
}

// Run starts body as a new detached action identified by id, superseding
// any action already in flight, and returns a handle to the underlying
// unit of work. Unless the run is silent, the state is set to Running(id)
// before body starts; a body that completes without error settles the
// state at Finished(id).
func (p *Process[ID]) Run(ctx context.Context, id ID, body Body, opts ...RunOption) *task.Handle {
	ctx, span := util.StartSpan(ctx, "Process.Run")
	defer span.End()

	h := p.eng.Launch(ctx, runConfig(opts), Running(id), failWith(id), wrap(id, body))
	span.SetAttributes(attribute.String("TaskID", h.ID().String()))
	return h
}

// RunSync runs body as part of the caller's own unit of work, applying
// the same transitions as Run but without installing a task handle: a
// Cancel issued elsewhere while RunSync runs finds no task to cancel.
// Cancelling ctx abandons the run with the state left as it was. The
// resulting state is returned.
func (p *Process[ID]) RunSync(ctx context.Context, id ID, body Body, opts ...RunOption) State[ID] {
	ctx, span := util.StartSpan(ctx, "Process.RunSync")
	defer span.End()

	return p.eng.RunInline(ctx, runConfig(opts), Running(id), failWith(id), wrap(id, body))
}

// Cancel cancels the in-flight action, if any, leaving the state cell
// untouched. It is idempotent and safe to call from any goroutine.
func (p *Process[ID]) Cancel() {
	p.eng.Cancel()
}

// Reset cancels the in-flight action and clears the state to Idle. If the
// state already is Idle it is not rewritten, so observers see no spurious
// notification.
func (p *Process[ID]) Reset() {
	p.eng.Reset()
}

// InFlight reports whether a detached action is currently live.
func (p *Process[ID]) InFlight() bool {
	return p.eng.InFlight()
}

func failWith[ID comparable](id ID) func(error) State[ID] {
	return func(err error) State[ID] {
		return Failed(id, err)
	}
}

func wrap[ID comparable](id ID, body Body) engine.Body[State[ID]] {
	return func(ctx context.Context, _ func(State[ID])) (State[ID], bool, error) {
		if err := body(ctx); err != nil {
			return State[ID]{}, false, err
		}
		return Finished(id), true, nil
	}
}

type runOptions = engine.RunConfig

// A RunOption adjusts a single Run call.
type RunOption func(*runOptions)

// Silently skips the Running transition: the state jumps directly from its
// prior value to the action's outcome.
func Silently() RunOption {
	return func(rc *runOptions) { rc.Silent = true }
}

// WithPriority orders the run's state writes ahead of lower-priority work
// on a priority-aware scheduler. Plain schedulers ignore the hint.
func WithPriority(p event.Priority) RunOption {
	return func(rc *runOptions) { rc.Priority = p }
}

// WithTimeout cancels the run after d. Expiry follows plain-cancellation
// semantics: the state cell is left untouched.
func WithTimeout(d time.Duration) RunOption {
	return func(rc *runOptions) { rc.Timeout = d }
}

func runConfig(opts []RunOption) engine.RunConfig {
	var rc engine.RunConfig
	for _, o := range opts {
		o(&rc)
	}
	return rc
}

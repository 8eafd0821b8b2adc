// Package loadable manages the lifecycle of an asynchronous operation that
// produces a value, bound to an observable state cell. It removes the
// cancel-previous, set-pending, await, set-result boilerplate around such
// operations.
package loadable

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

// A Body is the unit of work run by Load. It may call yield any number of
// times to publish intermediate values; each yield sets the state to
// Succeeded with that value, in call order. If yield was called at least
// once, the body's returned value is discarded: yields dominate a return
// from the same run.
//
// Returning procerr.ErrCancelled (or a context error) abandons the run and
// leaves the state as it was; returning procerr.ErrReset clears the state
// to Absent. Any other error sets the state to Failed.
type Body[V any] func(ctx context.Context, yield func(V)) (V, error)

// Value adapts a plain value-producing function to a Body.
func Value[V any](f func(ctx context.Context) (V, error)) Body[V] {
	return func(ctx context.Context, _ func(V)) (V, error) {
		return f(ctx)
	}
}

// Config specifies optional configuration for a Loadable
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
			Component: "LoadableConfig",
			Err:       fmt.Errorf("scheduler must not be nil"),
		}
	}
	return nil
}

// DefaultConfig returns the default configuration options for a Loadable.
// Options may be overridden before passing to New.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: event.NewSimpleScheduler(clock.New()), // use standard time
	}
}

// A Loadable controls the loading lifecycle of the state cell it is bound
// to, enforcing at most one in-flight operation per cell.
//
// Apart from Cancel, all methods must be called on the scheduler's worker.
type Loadable[V any] struct {
	// cfg is a copy of the optional configuration supplied to the loadable
	cfg Config

	cell *cell.Cell[State[V]]
	eng  *engine.Engine[State[V]]
}

// New creates a Loadable controlling c.
func New[V any](c *cell.Cell[State[V]], cfg *Config) (*Loadable[V], error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &procerr.ConfigurationError{
			Component: "Loadable",
			Err:       fmt.Errorf("state cell must not be nil"),
		}
	}

	return &Loadable[V]{
		cfg:  *cfg,
		cell: c,
		eng: engine.New(cfg.Scheduler, c, engine.Transitions[State[V]]{
			Empty:   Absent[V],
			IsEmpty: State[V].IsAbsent,
		}),
	}, nil
}

// Get returns the current state of the bound cell.
func (l *Loadable[V]) Get() State[V] {
	return l.cell.Get()
}

// Set overrides the state directly, cancelling any in-flight operation so
// it cannot later overwrite the assigned value.
func (l *Loadable[V]) Set(s State[V]) {
	l.eng.Assign(s)
}

// Observe registers f to be called on every state change and returns a
// function that removes the observer.
func (l *Loadable[V]) Observe(f func(State[V])) func() {
	return l.cell.Observe(f)
}

// Load starts body as a new detached loading operation, superseding any
// operation already in flight, and returns a handle to the underlying unit
// of work. Unless the run is silent, the state is set to Pending before
// body starts.
func (l *Loadable[V]) Load(ctx context.Context, body Body[V], opts ...RunOption) *task.Handle {
	ctx, span := util.StartSpan(ctx, "Loadable.Load")
	defer span.End()

	h := l.eng.Launch(ctx, runConfig(opts), Pending[V](), Failed[V], wrap(body))
	span.SetAttributes(attribute.String("TaskID", h.ID().String()))
	return h
}

// LoadSync runs body as part of the caller's own unit of work, applying
// the same transitions as Load but without installing a task handle: a
// Cancel issued elsewhere while LoadSync runs finds no task to cancel.
// Cancelling ctx abandons the run with the state left as it was. The
// resulting state is returned.
func (l *Loadable[V]) LoadSync(ctx context.Context, body Body[V], opts ...RunOption) State[V] {
	ctx, span := util.StartSpan(ctx, "Loadable.LoadSync")
	defer span.End()

	return l.eng.RunInline(ctx, runConfig(opts), Pending[V](), Failed[V], wrap(body))
}

// Cancel cancels the in-flight operation, if any, leaving the state cell
// untouched. It is idempotent and safe to call from any goroutine.
func (l *Loadable[V]) Cancel() {
	l.eng.Cancel()
}

// Reset cancels the in-flight operation and clears the state to Absent.
// If the state already is Absent it is not rewritten, so observers see no
// spurious notification.
func (l *Loadable[V]) Reset() {
	l.eng.Reset()
}

// InFlight reports whether a detached operation is currently live.
func (l *Loadable[V]) InFlight() bool {
	return l.eng.InFlight()
}

func wrap[V any](body Body[V]) engine.Body[State[V]] {
	return func(ctx context.Context, post func(State[V])) (State[V], bool, error) {
		yields := 0
		v, err := body(ctx, func(p V) {
			yields++
			post(Succeeded(p))
		})
		if err != nil {
			return State[V]{}, false, err
		}
		if yields > 0 {
			return State[V]{}, false, nil
		}
		return Succeeded(v), true, nil
	}
}

type runOptions = engine.RunConfig

// A RunOption adjusts a single Load call.
type RunOption func(*runOptions)

// Silently skips the Pending transition: the state jumps directly from its
// prior value to the operation's outcome.
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

// Package engine implements the run/cancel/reset protocol shared by the
// loadable and process controllers. It binds one state cell and one task
// slot to a scheduler and guarantees that at most one unit of work is live
// per cell at any time.
package engine

import (
	"context"
	"time"

	"github.com/tinora/processed/cell"
	"github.com/tinora/processed/event"
	"github.com/tinora/processed/procerr"
	"github.com/tinora/processed/task"
)

// Transitions supplies the state constructors the engine cannot know for a
// generic state type.
type Transitions[S any] struct {
	// Empty returns the state an abandoned run clears the cell to.
	Empty func() S
	// IsEmpty reports whether s is already the empty state.
	IsEmpty func(S) bool
}

// RunConfig carries the per-run options of a controller run.
type RunConfig struct {
	// Silent skips the pending-state write at the start of the run.
	Silent bool
	// Priority orders the run's state writes on a priority-aware scheduler.
	Priority event.Priority
	// Timeout cancels the run after the given duration. Expiry follows
	// plain-cancellation semantics: the cell is left untouched.
	Timeout time.Duration
}

// Body is the unit of work the engine launches. It runs on its own
// goroutine and may call post to publish intermediate states. ok reports
// whether final should be written to the cell on a nil error.
type Body[S any] func(ctx context.Context, post func(S)) (final S, ok bool, err error)

// Engine coordinates one state cell and one task slot.
//
// Apart from Cancel, which never touches the cell, all methods must be
// called on the scheduler's worker.
type Engine[S any] struct {
	sched event.Scheduler
	cell  *cell.Cell[S]
	slot  task.Slot
	tr    Transitions[S]
}

// New creates an Engine binding c to sched.
func New[S any](sched event.Scheduler, c *cell.Cell[S], tr Transitions[S]) *Engine[S] {
	return &Engine[S]{
		sched: sched,
		cell:  c,
		tr:    tr,
	}
}

// Launch starts body as a detached run.
//
// Any previous run is cancelled first. Unless the run is silent, pending is
// written to the cell before the body starts. The new handle is stored
// before Launch returns, so a concurrent Cancel can observe it. The body's
// posted states and final outcome are applied as scheduler actions guarded
// by handle identity: a superseded or cancelled run never writes.
//
// fail maps a body error to the failed state for this run.
func (e *Engine[S]) Launch(ctx context.Context, rc RunConfig, pending S, fail func(error) S, body Body[S]) *task.Handle {
	e.slot.Cancel()
	if !rc.Silent {
		e.cell.Set(pending)
	}

	var h *task.Handle
	var planned event.PlannedAction
	h = task.New(ctx, func(runCtx context.Context) error {
		final, ok, err := body(runCtx, func(s S) {
			e.enqueue(ctx, rc.Priority, func(context.Context) {
				if e.slot.Holds(h) {
					e.cell.Set(s)
				}
			})
		})
		e.enqueue(ctx, rc.Priority, func(actx context.Context) {
			if planned != nil {
				e.sched.RemovePlannedAction(actx, planned)
			}
			e.settle(h, final, ok, fail, err)
		})
		return err
	})

	e.slot.Replace(h)
	if rc.Timeout > 0 {
		planned = event.ScheduleActionIn(ctx, e.sched, rc.Timeout, event.BasicAction(func(context.Context) {
			if e.slot.Release(h) {
				h.Cancel()
			}
		}))
	}
	h.Start()
	return h
}

// RunInline executes body as part of the caller's own unit of work. The
// transitions match Launch, but no handle is installed: there is nothing
// separate to cancel beyond what the caller already controls, so a Cancel
// issued elsewhere during an inline run finds no task and is a no-op.
// Posted states are applied synchronously. The resulting state is
// returned.
func (e *Engine[S]) RunInline(ctx context.Context, rc RunConfig, pending S, fail func(error) S, body Body[S]) S {
	e.slot.Cancel()
	if !rc.Silent {
		e.cell.Set(pending)
	}

	if rc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
	}

	final, ok, err := body(ctx, func(s S) {
		e.cell.Set(s)
	})
	e.apply(final, ok, fail, err)
	return e.cell.Get()
}

// Cancel cancels and discards the current run, if any. The cell is left
// untouched. Safe to call from any goroutine.
func (e *Engine[S]) Cancel() {
	e.slot.Cancel()
}

// Reset cancels the current run and clears the cell to the empty state
// unless it is already there.
func (e *Engine[S]) Reset() {
	e.slot.Cancel()
	if !e.tr.IsEmpty(e.cell.Get()) {
		e.cell.Set(e.tr.Empty())
	}
}

// Assign writes s to the cell as an external override, cancelling any
// in-flight run so it cannot later overwrite the assigned value.
func (e *Engine[S]) Assign(s S) {
	e.slot.Cancel()
	e.cell.Set(s)
}

// InFlight reports whether a detached run is currently live.
func (e *Engine[S]) InFlight() bool {
	return !e.slot.Empty()
}

func (e *Engine[S]) enqueue(ctx context.Context, p event.Priority, f func(context.Context)) {
	event.EnqueueActionWithPriority(ctx, e.sched, event.BasicAction(f), p)
}

// settle applies a detached run's outcome, dropping it when the run is no
// longer current.
func (e *Engine[S]) settle(h *task.Handle, final S, ok bool, fail func(error) S, err error) {
	if !e.slot.Release(h) {
		return
	}
	e.apply(final, ok, fail, err)
}

func (e *Engine[S]) apply(final S, ok bool, fail func(error) S, err error) {
	switch {
	case err == nil:
		if ok {
			e.cell.Set(final)
		}
	case procerr.IsReset(err):
		e.cell.Set(e.tr.Empty())
	case procerr.IsCancellation(err):
		// plain cancellation leaves the cell as it was
	default:
		e.cell.Set(fail(err))
	}
}

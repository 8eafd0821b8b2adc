package event

import (
	"context"
	"time"
)

// Scheduler is an interface for scheduling actions to run as soon as
// possible or at a specific time
type Scheduler interface {
	// Now returns the time of the scheduler's clock
	Now() time.Time

	// EnqueueAction enqueues an action to run as soon as possible
	EnqueueAction(context.Context, Action)
	// ScheduleAction schedules an action to run at a specific time
	ScheduleAction(context.Context, time.Time, Action) PlannedAction
	// RemovePlannedAction removes an action from the scheduler planned
	// actions (not from the queue), does nothing if the action is not in
	// the planner
	RemovePlannedAction(context.Context, PlannedAction) bool

	// RunOne runs one action from the scheduler's queue, returning true if
	// an action was run, false if the queue was empty
	RunOne(context.Context) bool
}

// ScheduleActionIn schedules an action to run after a delay
func ScheduleActionIn(ctx context.Context, s Scheduler, d time.Duration, a Action) PlannedAction {
	if d <= 0 {
		s.EnqueueAction(ctx, a)
		return nil
	}
	return s.ScheduleAction(ctx, s.Now().Add(d), a)
}

// SchedulerWithPriority is a scheduler whose queue understands priority
// hints.
type SchedulerWithPriority interface {
	Scheduler

	// EnqueueActionWithPriority enqueues an action to run as soon as
	// possible, ahead of any queued actions with a lower priority
	EnqueueActionWithPriority(context.Context, Action, Priority)
}

// EnqueueActionWithPriority enqueues an action with a priority hint if the
// scheduler supports it, and falls back to a plain enqueue otherwise.
func EnqueueActionWithPriority(ctx context.Context, s Scheduler, a Action, p Priority) {
	switch s := s.(type) {
	case SchedulerWithPriority:
		s.EnqueueActionWithPriority(ctx, a, p)
	default:
		s.EnqueueAction(ctx, a)
	}
}

// RunAllScheduler is a scheduler that can run all actions in its queue
type RunAllScheduler interface {
	Scheduler

	// RunAll runs all actions in the scheduler's queue
	RunAll(context.Context)
}

// RunAll runs all actions in the scheduler's queue and overdue actions from
// the planner
func RunAll(ctx context.Context, s Scheduler) {
	switch s := s.(type) {
	case RunAllScheduler:
		s.RunAll(ctx)
	default:
		for s.RunOne(ctx) {
		}
	}
}

// AwareScheduler is a scheduler that can return the time of the next
// scheduled action.
type AwareScheduler interface {
	Scheduler

	// NextActionTime returns the time of the next action in the scheduler's
	// queue or MaxTime if the queue is empty
	NextActionTime(context.Context) time.Time
}

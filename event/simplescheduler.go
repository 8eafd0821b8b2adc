package event

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

const DefaultChanqueueCapacity = 1024

// SimpleScheduler is a simple implementation of the Scheduler interface. It
// uses a simple planner and a channel-based queue by default; a scheduler
// built by NewPriorityScheduler honours priority hints instead.
type SimpleScheduler struct {
	clk clock.Clock

	queue   EventQueue
	planner AwareActionPlanner
}

var (
	_ AwareScheduler        = (*SimpleScheduler)(nil)
	_ SchedulerWithPriority = (*SimpleScheduler)(nil)
)

// NewSimpleScheduler creates a new SimpleScheduler.
func NewSimpleScheduler(clk clock.Clock) *SimpleScheduler {
	return &SimpleScheduler{
		clk: clk,

		queue:   NewChanQueue(DefaultChanqueueCapacity),
		planner: NewSimplePlanner(clk),
	}
}

// NewPriorityScheduler creates a scheduler whose queue honours priority
// hints.
func NewPriorityScheduler(clk clock.Clock) *SimpleScheduler {
	return &SimpleScheduler{
		clk: clk,

		queue:   NewPriorityQueue(),
		planner: NewSimplePlanner(clk),
	}
}

// Clock returns the scheduler's clock.
func (s *SimpleScheduler) Clock() clock.Clock {
	return s.clk
}

// Now returns the scheduler's current time.
func (s *SimpleScheduler) Now() time.Time {
	return s.clk.Now()
}

// EnqueueAction enqueues an action to be run as soon as possible.
func (s *SimpleScheduler) EnqueueAction(ctx context.Context, a Action) {
	s.queue.Enqueue(ctx, a)
}

// EnqueueActionWithPriority enqueues an action with a priority hint. The
// hint is ignored unless the scheduler was built by NewPriorityScheduler.
func (s *SimpleScheduler) EnqueueActionWithPriority(ctx context.Context, a Action, p Priority) {
	EnqueueWithPriority(ctx, s.queue, a, p)
}

// ScheduleAction schedules an action to run at a specific time.
func (s *SimpleScheduler) ScheduleAction(ctx context.Context, t time.Time,
	a Action,
) PlannedAction {
	if s.clk.Now().After(t) {
		s.EnqueueAction(ctx, a)
		return nil
	}
	return s.planner.ScheduleAction(ctx, t, a)
}

// RemovePlannedAction removes an action from the scheduler planned actions
// (not from the queue), does nothing if the action is not in the planner
func (s *SimpleScheduler) RemovePlannedAction(ctx context.Context, a PlannedAction) bool {
	return s.planner.RemoveAction(ctx, a)
}

// moveOverdueActions moves all overdue actions from the planner to the queue.
func (s *SimpleScheduler) moveOverdueActions(ctx context.Context) {
	overdue := s.planner.PopOverdueActions(ctx)

	EnqueueMany(ctx, s.queue, overdue)
}

// RunOne runs one action from the scheduler's queue, returning true if an
// action was run, false if the queue was empty.
func (s *SimpleScheduler) RunOne(ctx context.Context) bool {
	s.moveOverdueActions(ctx)

	if a := s.queue.Dequeue(ctx); a != nil {
		a.Run(ctx)
		return true
	}
	return false
}

// NextActionTime returns the time of the next action to run, or the current
// time if there are actions to be run in the queue, or MaxTime if there are
// none scheduled to run.
func (s *SimpleScheduler) NextActionTime(ctx context.Context) time.Time {
	s.moveOverdueActions(ctx)
	nextScheduled := s.planner.NextActionTime(ctx)

	if !Empty(s.queue) {
		return s.clk.Now()
	}
	return nextScheduled
}

// Loop runs the scheduler as a background worker until ctx is done. It runs
// every queued and overdue action, then sleeps until the next action is
// enqueued or comes due. The goroutine running Loop is the scheduling
// context that controllers bound to this scheduler mutate their state
// cells on.
func (s *SimpleScheduler) Loop(ctx context.Context) {
	wq, _ := s.queue.(EventQueueWithWait)

	for {
		if ctx.Err() != nil {
			return
		}
		if s.RunOne(ctx) {
			continue
		}

		var timer *clock.Timer
		var timerC <-chan time.Time
		if next := s.NextActionTime(ctx); next != MaxTime {
			d := next.Sub(s.clk.Now())
			if d <= 0 {
				continue
			}
			timer = s.clk.Timer(d)
			timerC = timer.C
		}

		var wait <-chan struct{}
		if wq != nil {
			wait = wq.Wait()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-wait:
		case <-timerC:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

package event

import (
	"context"
	"time"
)

// MaxTime is the maximum time.Time value
var MaxTime = time.Unix(1<<63-62135596801, 999999999)

// PlannedAction is an interface for actions that are scheduled to run at a
// specific time.
type PlannedAction interface {
	// Time returns the time at which the action is scheduled to run
	Time() time.Time
	// Action returns the action that is scheduled to run
	Action() Action
}

// ActionPlanner is an interface for scheduling actions at a specific time.
type ActionPlanner interface {
	// ScheduleAction schedules an action to run at a specific time
	ScheduleAction(context.Context, time.Time, Action) PlannedAction
	// RemoveAction removes an action from the planner, returning true if
	// the action was planned
	RemoveAction(context.Context, PlannedAction) bool

	// PopOverdueActions returns all actions that are overdue and removes
	// them from the planner
	PopOverdueActions(context.Context) []Action
}

// AwareActionPlanner is an interface for scheduling actions at a specific
// time and knowing when the next action will be scheduled.
type AwareActionPlanner interface {
	ActionPlanner

	// NextActionTime returns the time of the next action that will be
	// scheduled. If there are no actions scheduled, it returns MaxTime.
	NextActionTime(context.Context) time.Time
}

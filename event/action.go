package event

import "context"

// Action is an interface for an action that can be run. It is used as the
// unit of work by the scheduler (event queue + planner).
type Action interface {
	Run(context.Context)
}

// A BasicAction is the default Action used for event scheduling.
type BasicAction func(context.Context)

var _ Action = (BasicAction)(nil)

// Run executes the action
func (a BasicAction) Run(ctx context.Context) {
	a(ctx)
}

// Priority is an ordering hint for actions enqueued on a priority-aware
// queue. Actions with a higher priority are dequeued first; actions with
// the same priority are dequeued in arrival order (FIFO).
type Priority int

const (
	PriorityLow    Priority = -1
	PriorityNormal Priority = 0
	PriorityHigh   Priority = 1
)

// A FuncAction records whether it was run. It is intended for tests.
type FuncAction struct {
	Ran bool
	Int int
}

var _ Action = (*FuncAction)(nil)

// NewFuncAction creates a new FuncAction carrying i.
func NewFuncAction(i int) *FuncAction {
	return &FuncAction{Int: i}
}

// Run sets the Ran flag.
func (a *FuncAction) Run(context.Context) {
	a.Ran = true
}

package process

import "fmt"

// Phase identifies the lifecycle phase of a process.
type Phase int

const (
	// PhaseIdle means no process has run, or the state was reset.
	PhaseIdle Phase = iota
	// PhaseRunning means a process is in flight.
	PhaseRunning
	// PhaseFailed means the last process ended in an error.
	PhaseFailed
	// PhaseFinished means the last process completed.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseFailed:
		return "Failed"
	case PhaseFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Single is the trivial identity type for controllers that manage a single,
// unnamed process.
type Single struct{}

func (Single) String() string {
	return "process"
}

// State is the lifecycle state of a side-effecting process identified by a
// value of type ID. Exactly one phase is active at any instant; which named
// process the state refers to is identified by ID value.
//
// The zero value is Idle. Two states compare equal with == when, for failed
// states, their errors compare equal as interface values.
type State[ID comparable] struct {
	phase Phase
	id    ID
	err   error
}

// Idle returns the state with no process.
func Idle[ID comparable]() State[ID] {
	return State[ID]{}
}

// Running returns the state of an in-flight process.
func Running[ID comparable](id ID) State[ID] {
	return State[ID]{phase: PhaseRunning, id: id}
}

// Failed returns the state of a process that ended in err.
func Failed[ID comparable](id ID, err error) State[ID] {
	return State[ID]{phase: PhaseFailed, id: id, err: err}
}

// Finished returns the state of a completed process.
func Finished[ID comparable](id ID) State[ID] {
	return State[ID]{phase: PhaseFinished, id: id}
}

// Phase returns the active phase.
func (s State[ID]) Phase() Phase {
	return s.phase
}

// ID returns the identity of the process the state refers to, and false
// when the state is Idle.
func (s State[ID]) ID() (ID, bool) {
	return s.id, s.phase != PhaseIdle
}

// Err returns the failure error, or nil when the state is not Failed.
func (s State[ID]) Err() error {
	if s.phase != PhaseFailed {
		return nil
	}
	return s.err
}

// IsIdle reports whether no process is associated with the state.
func (s State[ID]) IsIdle() bool {
	return s.phase == PhaseIdle
}

// IsRunning reports whether any process is in flight.
func (s State[ID]) IsRunning() bool {
	return s.phase == PhaseRunning
}

// IsRunningID reports whether the process identified by id is in flight.
func (s State[ID]) IsRunningID(id ID) bool {
	return s.phase == PhaseRunning && s.id == id
}

// IsFailed reports whether the last process failed.
func (s State[ID]) IsFailed() bool {
	return s.phase == PhaseFailed
}

// IsFinished reports whether the last process completed.
func (s State[ID]) IsFinished() bool {
	return s.phase == PhaseFinished
}

func (s State[ID]) String() string {
	switch s.phase {
	case PhaseIdle:
		return "Idle"
	case PhaseFailed:
		return fmt.Sprintf("Failed(%v, %v)", s.id, s.err)
	default:
		return fmt.Sprintf("%s(%v)", s.phase, s.id)
	}
}

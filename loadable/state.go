package loadable

import "fmt"

// Phase identifies the lifecycle phase of a loading operation.
type Phase int

const (
	// PhaseAbsent means no data is present and no operation has run, or
	// the state was reset.
	PhaseAbsent Phase = iota
	// PhasePending means an operation is in flight; no stale value is
	// retained.
	PhasePending
	// PhaseFailed means the last operation ended in an error.
	PhaseFailed
	// PhaseSucceeded means the last operation produced a value.
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseAbsent:
		return "Absent"
	case PhasePending:
		return "Pending"
	case PhaseFailed:
		return "Failed"
	case PhaseSucceeded:
		return "Succeeded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// State is the lifecycle state of an operation that produces a value.
// Exactly one phase is active at any instant; the value payload is only
// meaningful in PhaseSucceeded and the error payload only in PhaseFailed.
//
// The zero value is Absent. Two states compare equal with == when V is
// comparable and, for failed states, when their errors compare equal as
// interface values.
type State[V any] struct {
	phase Phase
	value V
	err   error
}

// Absent returns the state with no data and no operation.
func Absent[V any]() State[V] {
	return State[V]{}
}

// Pending returns the state of an in-flight operation.
func Pending[V any]() State[V] {
	return State[V]{phase: PhasePending}
}

// Failed returns the state of an operation that ended in err.
func Failed[V any](err error) State[V] {
	return State[V]{phase: PhaseFailed, err: err}
}

// Succeeded returns the state of an operation that produced v.
func Succeeded[V any](v V) State[V] {
	return State[V]{phase: PhaseSucceeded, value: v}
}

// Phase returns the active phase.
func (s State[V]) Phase() Phase {
	return s.phase
}

// IsAbsent reports whether the state is Absent.
func (s State[V]) IsAbsent() bool {
	return s.phase == PhaseAbsent
}

// IsPending reports whether an operation is in flight.
func (s State[V]) IsPending() bool {
	return s.phase == PhasePending
}

// IsFailed reports whether the last operation failed.
func (s State[V]) IsFailed() bool {
	return s.phase == PhaseFailed
}

// IsSucceeded reports whether the last operation produced a value.
func (s State[V]) IsSucceeded() bool {
	return s.phase == PhaseSucceeded
}

// Value returns the produced value and whether one is present.
func (s State[V]) Value() (V, bool) {
	return s.value, s.phase == PhaseSucceeded
}

// Err returns the failure error, or nil when the state is not Failed.
func (s State[V]) Err() error {
	if s.phase != PhaseFailed {
		return nil
	}
	return s.err
}

func (s State[V]) String() string {
	switch s.phase {
	case PhaseFailed:
		return fmt.Sprintf("Failed(%v)", s.err)
	case PhaseSucceeded:
		return fmt.Sprintf("Succeeded(%v)", s.value)
	default:
		return s.phase.String()
	}
}

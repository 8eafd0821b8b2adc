package bind

import (
	"context"

	"github.com/tinora/processed/cell"
	"github.com/tinora/processed/process"
	"github.com/tinora/processed/task"
)

// A Process is an owned, self-contained process state: an observable cell
// plus the controller bound to it. Construct one per owning scope and
// discard it with the scope.
type Process[ID comparable] struct {
	cell *cell.Cell[process.State[ID]]
	ctrl *process.Process[ID]
}

// NewProcess creates a Process with its state cell initialised to Idle.
func NewProcess[ID comparable](cfg *process.Config) (*Process[ID], error) {
	c := cell.New(process.Idle[ID]())
	ctrl, err := process.New(c, cfg)
	if err != nil {
		return nil, err
	}
	return &Process[ID]{cell: c, ctrl: ctrl}, nil
}

// Get returns the current state.
func (p *Process[ID]) Get() process.State[ID] {
	return p.ctrl.Get()
}

// Set overrides the state directly, cancelling any in-flight action.
func (p *Process[ID]) Set(s process.State[ID]) {
	p.ctrl.Set(s)
}

// Observe registers f to be called on every state change and returns a
// function that removes the observer.
func (p *Process[ID]) Observe(f func(process.State[ID])) func() {
	return p.ctrl.Observe(f)
}

// Run starts a detached action identified by id. See process.Process.Run.
func (p *Process[ID]) Run(ctx context.Context, id ID, body process.Body, opts ...process.RunOption) *task.Handle {
	return p.ctrl.Run(ctx, id, body, opts...)
}

// RunSync runs body as part of the caller's own unit of work. See
// process.Process.RunSync.
func (p *Process[ID]) RunSync(ctx context.Context, id ID, body process.Body, opts ...process.RunOption) process.State[ID] {
	return p.ctrl.RunSync(ctx, id, body, opts...)
}

// Cancel cancels the in-flight action, leaving the state untouched.
func (p *Process[ID]) Cancel() {
	p.ctrl.Cancel()
}

// Reset cancels the in-flight action and clears the state to Idle.
func (p *Process[ID]) Reset() {
	p.ctrl.Reset()
}

// Controller returns the underlying controller.
func (p *Process[ID]) Controller() *process.Process[ID] {
	return p.ctrl
}

// A KeyedProcess routes process operations to independent state fields
// identified by key. Fields are created lazily on first use and are keyed
// stably for the lifetime of the host object.
type KeyedProcess[K comparable, ID comparable] struct {
	cfg    *process.Config
	fields map[K]*Process[ID]
}

// NewKeyedProcess creates an empty KeyedProcess. All fields share cfg's
// scheduler.
func NewKeyedProcess[K comparable, ID comparable](cfg *process.Config) (*KeyedProcess[K, ID], error) {
	if cfg == nil {
		cfg = process.DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &KeyedProcess[K, ID]{
		cfg:    cfg,
		fields: make(map[K]*Process[ID]),
	}, nil
}

// Field returns the state field identified by k, creating it on first use.
func (g *KeyedProcess[K, ID]) Field(k K) *Process[ID] {
	if f, ok := g.fields[k]; ok {
		return f
	}
	f, _ := NewProcess[ID](g.cfg)
	g.fields[k] = f
	return f
}

// Get returns the current state of field k.
func (g *KeyedProcess[K, ID]) Get(k K) process.State[ID] {
	return g.Field(k).Get()
}

// Run starts a detached action on field k. Operations on other fields are
// unaffected.
func (g *KeyedProcess[K, ID]) Run(ctx context.Context, k K, id ID, body process.Body, opts ...process.RunOption) *task.Handle {
	return g.Field(k).Run(ctx, id, body, opts...)
}

// RunSync runs body inline on field k.
func (g *KeyedProcess[K, ID]) RunSync(ctx context.Context, k K, id ID, body process.Body, opts ...process.RunOption) process.State[ID] {
	return g.Field(k).RunSync(ctx, id, body, opts...)
}

// Cancel cancels the in-flight action on field k.
func (g *KeyedProcess[K, ID]) Cancel(k K) {
	g.Field(k).Cancel()
}

// Reset cancels and clears field k.
func (g *KeyedProcess[K, ID]) Reset(k K) {
	g.Field(k).Reset()
}

// Package bind provides the embedding adapters that make loadable and
// process controllers convenient to hold as fields of a stateful object.
//
// Loadable and Process bundle a state cell with its controller into one
// value constructed once per owning scope. KeyedLoadable and KeyedProcess
// address any number of independent state fields on one host through a
// stable key, creating a private cell and controller per key on first use;
// operations on different keys never interact.
package bind

import (
	"context"

	"github.com/tinora/processed/cell"
	"github.com/tinora/processed/loadable"
	"github.com/tinora/processed/task"
)

// A Loadable is an owned, self-contained loadable state: an observable
// cell plus the controller bound to it. Construct one per owning scope and
// discard it with the scope.
type Loadable[V any] struct {
	cell *cell.Cell[loadable.State[V]]
	ctrl *loadable.Loadable[V]
}

// NewLoadable creates a Loadable with its state cell initialised to
// Absent.
func NewLoadable[V any](cfg *loadable.Config) (*Loadable[V], error) {
	c := cell.New(loadable.Absent[V]())
	ctrl, err := loadable.New(c, cfg)
	if err != nil {
		return nil, err
	}
	return &Loadable[V]{cell: c, ctrl: ctrl}, nil
}

// Get returns the current state.
func (l *Loadable[V]) Get() loadable.State[V] {
	return l.ctrl.Get()
}

// Set overrides the state directly, cancelling any in-flight operation.
func (l *Loadable[V]) Set(s loadable.State[V]) {
	l.ctrl.Set(s)
}

// Observe registers f to be called on every state change and returns a
// function that removes the observer.
func (l *Loadable[V]) Observe(f func(loadable.State[V])) func() {
	return l.ctrl.Observe(f)
}

// Load starts a detached loading operation. See loadable.Loadable.Load.
func (l *Loadable[V]) Load(ctx context.Context, body loadable.Body[V], opts ...loadable.RunOption) *task.Handle {
	return l.ctrl.Load(ctx, body, opts...)
}

// LoadSync runs body as part of the caller's own unit of work. See
// loadable.Loadable.LoadSync.
func (l *Loadable[V]) LoadSync(ctx context.Context, body loadable.Body[V], opts ...loadable.RunOption) loadable.State[V] {
	return l.ctrl.LoadSync(ctx, body, opts...)
}

// Cancel cancels the in-flight operation, leaving the state untouched.
func (l *Loadable[V]) Cancel() {
	l.ctrl.Cancel()
}

// Reset cancels the in-flight operation and clears the state to Absent.
func (l *Loadable[V]) Reset() {
	l.ctrl.Reset()
}

// Controller returns the underlying controller.
func (l *Loadable[V]) Controller() *loadable.Loadable[V] {
	return l.ctrl
}

// A KeyedLoadable routes loadable operations to independent state fields
// identified by key. Fields are created lazily on first use and are keyed
// stably for the lifetime of the host object.
//
// Like the controllers it wraps, a KeyedLoadable must be used on the
// scheduler's worker.
type KeyedLoadable[K comparable, V any] struct {
	cfg    *loadable.Config
	fields map[K]*Loadable[V]
}

// NewKeyedLoadable creates an empty KeyedLoadable. All fields share cfg's
// scheduler.
func NewKeyedLoadable[K comparable, V any](cfg *loadable.Config) (*KeyedLoadable[K, V], error) {
	if cfg == nil {
		cfg = loadable.DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &KeyedLoadable[K, V]{
		cfg:    cfg,
		fields: make(map[K]*Loadable[V]),
	}, nil
}

// Field returns the state field identified by k, creating it on first use.
// The same field is returned for the same key for the lifetime of the
// adapter.
func (g *KeyedLoadable[K, V]) Field(k K) *Loadable[V] {
	if f, ok := g.fields[k]; ok {
		return f
	}
	// cfg was validated in NewKeyedLoadable; NewLoadable cannot fail.
	f, _ := NewLoadable[V](g.cfg)
	g.fields[k] = f
	return f
}

// Get returns the current state of field k.
func (g *KeyedLoadable[K, V]) Get(k K) loadable.State[V] {
	return g.Field(k).Get()
}

// Set overrides the state of field k directly.
func (g *KeyedLoadable[K, V]) Set(k K, s loadable.State[V]) {
	g.Field(k).Set(s)
}

// Observe registers f on field k.
func (g *KeyedLoadable[K, V]) Observe(k K, f func(loadable.State[V])) func() {
	return g.Field(k).Observe(f)
}

// Load starts a detached loading operation on field k. Operations on other
// fields are unaffected.
func (g *KeyedLoadable[K, V]) Load(ctx context.Context, k K, body loadable.Body[V], opts ...loadable.RunOption) *task.Handle {
	return g.Field(k).Load(ctx, body, opts...)
}

// LoadSync runs body inline on field k.
func (g *KeyedLoadable[K, V]) LoadSync(ctx context.Context, k K, body loadable.Body[V], opts ...loadable.RunOption) loadable.State[V] {
	return g.Field(k).LoadSync(ctx, body, opts...)
}

// Cancel cancels the in-flight operation on field k.
func (g *KeyedLoadable[K, V]) Cancel(k K) {
	g.Field(k).Cancel()
}

// Reset cancels and clears field k.
func (g *KeyedLoadable[K, V]) Reset(k K) {
	g.Field(k).Reset()
}

// ResetAll resets every field created so far.
func (g *KeyedLoadable[K, V]) ResetAll() {
	for _, f := range g.fields {
		f.Reset()
	}
}

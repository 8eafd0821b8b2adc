// Package task provides cancellable, awaitable units of work and the
// single-slot holder that ties at most one of them to a state cell.
package task

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// A Handle is an owned reference to a single cancellable unit of work that
// performs its work asynchronously.
//
// Cancellation is cooperative: the work function must observe the context
// it is given. Cancelling a handle never interrupts a computation that does
// not check its context.
type Handle struct {
	id        uuid.UUID
	ctx       context.Context
	cancel    context.CancelFunc
	fn        func(context.Context) error
	done      chan struct{}
	err       error
	started   atomic.Bool
	cancelled atomic.Bool
}

// New creates a Handle for fn without starting it. The work begins when
// Start is called; cancelling beforehand makes fn observe an already
// cancelled context.
func New(ctx context.Context, fn func(context.Context) error) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	return &Handle{
		id:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		fn:     fn,
		done:   make(chan struct{}),
	}
}

// Go creates a Handle for fn and starts it immediately.
func Go(ctx context.Context, fn func(context.Context) error) *Handle {
	h := New(ctx, fn)
	h.Start()
	return h
}

// Start launches the work on a new goroutine. Subsequent calls are no-ops.
func (h *Handle) Start() {
	if !h.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		h.err = h.fn(h.ctx)
		close(h.done)
	}()
}

// ID returns the unique identity of the handle.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Cancel signals the work to stop. It is safe to call from any goroutine
// and is idempotent.
func (h *Handle) Cancel() {
	h.cancelled.Store(true)
	h.cancel()
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Done returns a channel that is closed when the work has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the work has returned and reports its error, if any.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

package event

import (
	"context"
)

type EventQueue interface {
	Enqueue(context.Context, Action)
	Dequeue(context.Context) Action

	Size() uint
	Close()
}

type EventQueueEnqueueMany interface {
	EventQueue
	EnqueueMany(context.Context, []Action)
}

func EnqueueMany(ctx context.Context, q EventQueue, actions []Action) {
	switch queue := q.(type) {
	case EventQueueEnqueueMany:
		queue.EnqueueMany(ctx, actions)
	default:
		for _, a := range actions {
			q.Enqueue(ctx, a)
		}
	}
}

// EventQueueWithPriority is a queue that understands priority hints.
type EventQueueWithPriority interface {
	EventQueue
	EnqueueWithPriority(context.Context, Action, Priority)
}

// EnqueueWithPriority enqueues an action with a priority hint if the queue
// supports it, and falls back to a plain enqueue otherwise.
func EnqueueWithPriority(ctx context.Context, q EventQueue, a Action, p Priority) {
	switch queue := q.(type) {
	case EventQueueWithPriority:
		queue.EnqueueWithPriority(ctx, a, p)
	default:
		q.Enqueue(ctx, a)
	}
}

// EventQueueWithWait is a queue that can signal the arrival of new actions
// to a blocked worker.
type EventQueueWithWait interface {
	EventQueue

	// Wait returns a channel that receives a value when an action may be
	// available for dequeueing. The channel is shared across calls.
	Wait() <-chan struct{}
}

type EventQueueWithEmpty interface {
	EventQueue
	Empty() bool
}

func Empty(q EventQueue) bool {
	switch queue := q.(type) {
	case EventQueueWithEmpty:
		return queue.Empty()
	default:
		return q.Size() == 0
	}
}

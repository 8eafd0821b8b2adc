package event

import (
	"context"
	"sort"
	"sync"

	"github.com/tinora/processed/util"
)

// PriorityQueue is a queue that honours priority hints. Actions are sorted
// by descending priority; actions with the same priority are dequeued in
// arrival order (FIFO). A plain Enqueue uses PriorityNormal.
type PriorityQueue struct {
	mu      sync.Mutex
	entries []pqentry
	signal  chan struct{}
}

type pqentry struct {
	action   Action
	priority Priority
}

var (
	_ EventQueueWithPriority = (*PriorityQueue)(nil)
	_ EventQueueWithEmpty    = (*PriorityQueue)(nil)
	_ EventQueueWithWait     = (*PriorityQueue)(nil)
)

// NewPriorityQueue creates a new PriorityQueue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an element to the queue with normal priority.
func (q *PriorityQueue) Enqueue(ctx context.Context, e Action) {
	q.EnqueueWithPriority(ctx, e, PriorityNormal)
}

// EnqueueWithPriority adds an element to the queue with the given priority.
func (q *PriorityQueue) EnqueueWithPriority(ctx context.Context, e Action, p Priority) {
	_, span := util.StartSpan(ctx, "PriorityQueue.Enqueue")
	defer span.End()

	q.mu.Lock()
	// First entry with a strictly lower priority; inserting before it keeps
	// arrival order within a priority band.
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].priority < p
	})
	q.entries = append(q.entries, pqentry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = pqentry{action: e, priority: p}
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Dequeue removes and returns the highest-priority element, or nil if the
// queue is empty.
func (q *PriorityQueue) Dequeue(ctx context.Context) Action {
	_, span := util.StartSpan(ctx, "PriorityQueue.Dequeue")
	defer span.End()

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		span.AddEvent("empty queue")
		return nil
	}

	e := q.entries[0]
	q.entries[0] = pqentry{}
	q.entries = q.entries[1:]
	return e.action
}

// Wait returns the channel signalled when new actions arrive.
func (q *PriorityQueue) Wait() <-chan struct{} {
	return q.signal
}

// Empty returns true if the queue is empty
func (q *PriorityQueue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries) == 0
}

func (q *PriorityQueue) Size() uint {
	q.mu.Lock()
	defer q.mu.Unlock()
	return uint(len(q.entries))
}

func (q *PriorityQueue) Close() {}

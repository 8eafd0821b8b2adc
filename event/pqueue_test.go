package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrdersBands(t *testing.T) {
	ctx := context.Background()

	q := NewPriorityQueue()
	require.True(t, q.Empty())

	low := NewFuncAction(0)
	normal := NewFuncAction(1)
	high := NewFuncAction(2)

	q.EnqueueWithPriority(ctx, low, PriorityLow)
	q.EnqueueWithPriority(ctx, normal, PriorityNormal)
	q.EnqueueWithPriority(ctx, high, PriorityHigh)
	require.Equal(t, uint(3), q.Size())

	require.Equal(t, high, q.Dequeue(ctx))
	require.Equal(t, normal, q.Dequeue(ctx))
	require.Equal(t, low, q.Dequeue(ctx))
	require.Nil(t, q.Dequeue(ctx))
}

func TestPriorityQueueFIFOWithinBand(t *testing.T) {
	ctx := context.Background()

	q := NewPriorityQueue()

	nEvents := 10
	events := make([]Action, nEvents)
	for i := 0; i < nEvents; i++ {
		events[i] = NewFuncAction(i)
		q.Enqueue(ctx, events[i])
	}

	for i := 0; i < nEvents; i++ {
		require.Equal(t, events[i], q.Dequeue(ctx))
	}
}

func TestPriorityQueuePlainEnqueueIsNormal(t *testing.T) {
	ctx := context.Background()

	q := NewPriorityQueue()

	first := NewFuncAction(0)
	second := NewFuncAction(1)
	urgent := NewFuncAction(2)

	q.Enqueue(ctx, first)
	q.Enqueue(ctx, second)
	q.EnqueueWithPriority(ctx, urgent, PriorityHigh)

	require.Equal(t, urgent, q.Dequeue(ctx))
	require.Equal(t, first, q.Dequeue(ctx))
	require.Equal(t, second, q.Dequeue(ctx))
}

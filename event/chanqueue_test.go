package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChanQueue(t *testing.T) {
	ctx := context.Background()
	nEvents := 10
	events := make([]Action, nEvents)
	for i := 0; i < nEvents; i++ {
		events[i] = NewFuncAction(i)
	}

	q := NewChanQueue(nEvents)
	require.Zero(t, q.Size())
	require.True(t, q.Empty())

	q.Enqueue(ctx, events[0])
	require.Equal(t, uint(1), q.Size())
	require.False(t, q.Empty())

	q.Enqueue(ctx, events[1])
	require.Equal(t, uint(2), q.Size())
	require.False(t, q.Empty())

	e := q.Dequeue(ctx)
	require.Equal(t, events[0], e)
	require.Equal(t, uint(1), q.Size())
	require.False(t, q.Empty())

	e = q.Dequeue(ctx)
	require.Equal(t, events[1], e)
	require.Zero(t, q.Size())
	require.True(t, q.Empty())

	require.Nil(t, q.Dequeue(ctx))

	q.Close()
}

func TestChanQueueWaitSignal(t *testing.T) {
	ctx := context.Background()

	q := NewChanQueue(4)
	select {
	case <-q.Wait():
		t.Fatal("wait channel signalled on empty queue")
	default:
	}

	q.Enqueue(ctx, NewFuncAction(0))
	select {
	case <-q.Wait():
	default:
		t.Fatal("wait channel not signalled after enqueue")
	}
}

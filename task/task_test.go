package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGoRunsWork(t *testing.T) {
	ctx := context.Background()

	h := Go(ctx, func(context.Context) error {
		return nil
	})
	require.NoError(t, h.Wait())
	require.False(t, h.Cancelled())
}

func TestWaitReturnsWorkError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	h := Go(ctx, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, h.Wait(), boom)
}

func TestCancelIsCooperative(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{})
	h := Go(ctx, func(ctx context.Context) error {
		close(entered)
		<-ctx.Done()
		return ctx.Err()
	})

	<-entered
	h.Cancel()
	require.ErrorIs(t, h.Wait(), context.Canceled)
	require.True(t, h.Cancelled())

	// idempotent
	h.Cancel()
	require.True(t, h.Cancelled())
}

func TestCancelBeforeStart(t *testing.T) {
	ctx := context.Background()

	h := New(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})
	h.Cancel()
	h.Start()
	require.ErrorIs(t, h.Wait(), context.Canceled)
}

func TestStartTwiceRunsOnce(t *testing.T) {
	ctx := context.Background()

	runs := make(chan struct{}, 2)
	h := New(ctx, func(context.Context) error {
		runs <- struct{}{}
		return nil
	})
	h.Start()
	h.Start()
	require.NoError(t, h.Wait())

	select {
	case <-runs:
	default:
		t.Fatal("work did not run")
	}
	select {
	case <-runs:
		t.Fatal("work ran twice")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestSlotReplaceCancelsPrevious(t *testing.T) {
	ctx := context.Background()

	var s Slot
	require.True(t, s.Empty())

	h1 := Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	s.Replace(h1)
	require.True(t, s.Holds(h1))

	h2 := Go(ctx, func(context.Context) error { return nil })
	s.Replace(h2)
	require.True(t, h1.Cancelled())
	require.False(t, s.Holds(h1))
	require.True(t, s.Holds(h2))
}

func TestSlotRelease(t *testing.T) {
	ctx := context.Background()

	var s Slot
	h := Go(ctx, func(context.Context) error { return nil })
	s.Replace(h)

	require.True(t, s.Release(h))
	require.True(t, s.Empty())
	// second release is a no-op
	require.False(t, s.Release(h))
}

func TestSlotCancelIdempotent(t *testing.T) {
	ctx := context.Background()

	var s Slot
	h := Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	s.Replace(h)

	s.Cancel()
	require.True(t, h.Cancelled())
	require.True(t, s.Empty())
	s.Cancel()
	require.True(t, s.Empty())
}

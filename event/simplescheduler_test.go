package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestSimpleScheduler(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()

	sched := NewSimpleScheduler(clk)

	require.Equal(t, clk.Now(), sched.Clock().Now())

	nActions := 10
	actions := make([]*FuncAction, nActions)

	for i := 0; i < nActions; i++ {
		actions[i] = NewFuncAction(i)
	}

	sched.EnqueueAction(ctx, actions[0])
	require.False(t, actions[0].Ran)
	sched.RunOne(ctx)
	require.True(t, actions[0].Ran)

	ScheduleActionIn(ctx, sched, time.Second, actions[1])
	require.False(t, actions[1].Ran)
	sched.EnqueueAction(ctx, actions[2])
	clk.Add(2 * time.Second)

	sched.RunOne(ctx)
	require.True(t, actions[2].Ran)
	require.False(t, actions[1].Ran)
	sched.RunOne(ctx)
	require.True(t, actions[1].Ran)
	sched.RunOne(ctx)

	ScheduleActionIn(ctx, sched, -1*time.Second, actions[3])
	require.False(t, actions[3].Ran)
	sched.RunOne(ctx)
	require.True(t, actions[3].Ran)

	sched.ScheduleAction(ctx, clk.Now().Add(-1*time.Nanosecond), actions[4])
	require.False(t, actions[4].Ran)
	sched.RunOne(ctx)
	require.True(t, actions[4].Ran)

	sched.ScheduleAction(ctx, clk.Now().Add(time.Second), actions[5])
	sched.RunOne(ctx)
	require.False(t, actions[5].Ran)
	clk.Add(time.Second)
	require.Equal(t, clk.Now(), sched.NextActionTime(ctx))
	sched.RunOne(ctx)
	require.True(t, actions[5].Ran)

	t6 := clk.Now().Add(time.Second)
	a6 := sched.ScheduleAction(ctx, t6, actions[6])
	require.Equal(t, t6, sched.NextActionTime(ctx))
	sched.RemovePlannedAction(ctx, a6)
	clk.Add(time.Second)
	sched.RunOne(ctx)
	require.False(t, actions[6].Ran)
	// empty queue
	require.Equal(t, MaxTime, sched.NextActionTime(ctx))
}

func TestPrioritySchedulerOrdering(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()

	sched := NewPriorityScheduler(clk)

	var order []int
	record := func(i int) Action {
		return BasicAction(func(context.Context) {
			order = append(order, i)
		})
	}

	sched.EnqueueAction(ctx, record(0))
	EnqueueActionWithPriority(ctx, sched, record(1), PriorityLow)
	EnqueueActionWithPriority(ctx, sched, record(2), PriorityHigh)
	sched.EnqueueAction(ctx, record(3))

	RunAll(ctx, sched)
	require.Equal(t, []int{2, 0, 3, 1}, order)
}

func TestPriorityHintIgnoredByPlainScheduler(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()

	sched := NewSimpleScheduler(clk)

	a := NewFuncAction(0)
	EnqueueActionWithPriority(ctx, sched, a, PriorityHigh)
	require.True(t, sched.RunOne(ctx))
	require.True(t, a.Ran)
}

func TestSchedulerLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := NewSimpleScheduler(clock.New())

	done := make(chan struct{})
	go func() {
		sched.Loop(ctx)
		close(done)
	}()

	var mu sync.Mutex
	ran := make(map[int]bool)
	mark := func(i int) Action {
		return BasicAction(func(context.Context) {
			mu.Lock()
			ran[i] = true
			mu.Unlock()
		})
	}

	sched.EnqueueAction(ctx, mark(0))
	ScheduleActionIn(ctx, sched, 10*time.Millisecond, mark(1))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ran[0] && ran[1]
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

package event

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestSimplePlannerOrdering(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()

	p := NewSimplePlanner(clk)
	require.Equal(t, MaxTime, p.NextActionTime(ctx))

	a0 := NewFuncAction(0)
	a1 := NewFuncAction(1)
	a2 := NewFuncAction(2)

	t1 := clk.Now().Add(time.Minute)
	t0 := clk.Now().Add(time.Second)
	t2 := clk.Now().Add(time.Hour)

	p.ScheduleAction(ctx, t1, a1)
	p.ScheduleAction(ctx, t0, a0)
	p.ScheduleAction(ctx, t2, a2)
	require.Equal(t, t0, p.NextActionTime(ctx))

	require.Empty(t, p.PopOverdueActions(ctx))

	clk.Add(time.Minute)
	overdue := p.PopOverdueActions(ctx)
	require.Equal(t, []Action{a0, a1}, overdue)
	require.Equal(t, t2, p.NextActionTime(ctx))

	clk.Add(time.Hour)
	require.Equal(t, []Action{a2}, p.PopOverdueActions(ctx))
	require.Equal(t, MaxTime, p.NextActionTime(ctx))
}

func TestSimplePlannerRemove(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()

	p := NewSimplePlanner(clk)

	a0 := NewFuncAction(0)
	a1 := NewFuncAction(1)

	pa0 := p.ScheduleAction(ctx, clk.Now().Add(time.Second), a0)
	pa1 := p.ScheduleAction(ctx, clk.Now().Add(time.Minute), a1)

	require.True(t, p.RemoveAction(ctx, pa0))
	require.False(t, p.RemoveAction(ctx, pa0))

	clk.Add(time.Hour)
	require.Equal(t, []Action{a1}, p.PopOverdueActions(ctx))

	require.False(t, p.RemoveAction(ctx, pa1))
}

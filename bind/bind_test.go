package bind

import (
	"context"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/tinora/processed/event"
	"github.com/tinora/processed/internal/proctest"
	"github.com/tinora/processed/loadable"
)

func newScheduler() *event.SimpleScheduler {
	return event.NewSimpleScheduler(clock.NewMock())
}

func TestLoadableStartsAbsent(t *testing.T) {
	l, err := NewLoadable[int](nil)
	require.NoError(t, err)
	require.True(t, l.Get().IsAbsent())
	require.NotNil(t, l.Controller())
}

func TestLoadableRoundTrip(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler()

	l, err := NewLoadable[int](&loadable.Config{Scheduler: sched})
	require.NoError(t, err)

	h := l.Load(ctx, loadable.Value(func(ctx context.Context) (int, error) {
		return 5, nil
	}))
	proctest.Settle(t, sched, h.Done())

	require.Equal(t, loadable.Succeeded(5), l.Get())

	l.Reset()
	require.True(t, l.Get().IsAbsent())
}

func TestKeyedLoadableValidatesConfig(t *testing.T) {
	_, err := NewKeyedLoadable[string, int](&loadable.Config{})
	require.Error(t, err)
}

func TestKeyedLoadableFieldIdentity(t *testing.T) {
	g, err := NewKeyedLoadable[string, int](nil)
	require.NoError(t, err)

	f := g.Field("a")
	require.Same(t, f, g.Field("a"))
	require.NotSame(t, f, g.Field("b"))
}

func TestKeyedLoadableFieldsAreIndependent(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler()

	g, err := NewKeyedLoadable[string, int](&loadable.Config{Scheduler: sched})
	require.NoError(t, err)

	h := g.Load(ctx, "a", func(ctx context.Context, _ func(int)) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	g.Set("b", loadable.Succeeded(2))

	// operations on b never touch a
	require.True(t, g.Get("a").IsPending())
	require.False(t, h.Cancelled())

	g.Cancel("a")
	require.True(t, h.Cancelled())
	proctest.Settle(t, sched, h.Done())

	require.True(t, g.Get("a").IsPending())
	require.Equal(t, loadable.Succeeded(2), g.Get("b"))
}

func TestKeyedLoadableResetAll(t *testing.T) {
	g, err := NewKeyedLoadable[string, int](&loadable.Config{Scheduler: newScheduler()})
	require.NoError(t, err)

	g.Set("a", loadable.Succeeded(1))
	g.Set("b", loadable.Succeeded(2))

	g.ResetAll()
	require.True(t, g.Get("a").IsAbsent())
	require.True(t, g.Get("b").IsAbsent())
}

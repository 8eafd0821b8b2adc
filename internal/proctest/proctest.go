// Package proctest provides helpers for tests that drive a scheduler
// manually on the test goroutine.
package proctest

import (
	"context"
	"testing"
	"time"

	"github.com/tinora/processed/event"
)

// PumpUntil runs scheduler actions on the calling goroutine until cond
// returns true. The calling goroutine acts as the scheduler's worker, so
// conditions may read state cells directly. Fails the test if cond does
// not hold within 5 seconds.
func PumpUntil(t testing.TB, sched event.Scheduler, cond func() bool) {
	t.Helper()

	ctx := context.Background()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if sched.RunOne(ctx) {
			continue
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

// Settle pumps the scheduler until a detached run has been fully applied:
// done reports the run's completion and the queue has gone quiet.
func Settle(t testing.TB, sched event.Scheduler, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run to finish")
	}
	event.RunAll(context.Background(), sched)
}

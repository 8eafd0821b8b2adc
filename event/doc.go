// Package event provides the single-worker scheduling context that the
// loadable and process controllers mutate their state cells on. Operation
// bodies run on their own goroutines, but every state-cell write is applied
// as an action on one scheduler, which brings deterministic testing, easier
// debugging and sequential tracing, and removes the need for locks around
// the cells.
package event

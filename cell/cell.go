// Package cell provides an observable mutable cell, the state container
// that loadable and process controllers bind to.
package cell

// A Cell holds a single value and notifies observers whenever the value is
// replaced.
//
// A Cell must only be read and mutated on the scheduling context of the
// controller that owns it; confinement to one worker goroutine is what
// makes the unlocked reads and writes safe.
type Cell[T any] struct {
	value     T
	observers map[int]func(T)
	nextID    int
}

// New creates a new Cell with its initial value set to v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get retrieves the value of c.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set updates the value of c and notifies every observer.
func (c *Cell[T]) Set(v T) {
	c.value = v
	for _, f := range c.observers {
		f(v)
	}
}

// Update sets the value of c to f(c.Get()) and notifies every observer.
func (c *Cell[T]) Update(f func(v T) T) {
	c.Set(f(c.value))
}

// Observe registers f to be called with the new value on every Set. It
// returns a function that removes the observer. Observers are called in
// unspecified order.
func (c *Cell[T]) Observe(f func(T)) func() {
	if c.observers == nil {
		c.observers = make(map[int]func(T))
	}
	id := c.nextID
	c.nextID++
	c.observers[id] = f
	return func() {
		delete(c.observers, id)
	}
}

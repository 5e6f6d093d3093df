// Package core provides the internal implementation of fndouble's
// goroutine-scoped test-double registry.
package core

import (
	"sync"

	"github.com/petermattis/goid"
)

// Cell is lazily-initialized, goroutine-isolated storage for one double's
// state. Each goroutine sees a logically distinct *S, created zero-valued on
// first access. This is what lets parallel tests configure the same double
// independently: the outer map is guarded, the state itself is not, and a
// state must only be touched from the goroutine that created it. Sharing one
// state across goroutines is undefined behavior, documented rather than
// defended against.
type Cell[S any] struct {
	mu     sync.Mutex
	states map[int64]*S
}

// Read invokes f with the current goroutine's state, creating a default state
// if none exists yet. Callers must not mutate the state through Read; the
// read-only discipline is a convention between the facades, not enforced.
func (c *Cell[S]) Read(f func(*S)) {
	f(c.acquire())
}

// Release discards the current goroutine's state, if any. The next access
// lazily creates a fresh default state. Intended for test cleanup; a state
// that is never released lives until process exit, one per test goroutine.
func (c *Cell[S]) Release() {
	gid := goid.Get()

	c.mu.Lock()
	delete(c.states, gid)
	c.mu.Unlock()
}

// Write invokes f with mutable access to the current goroutine's state,
// creating a default state if none exists yet.
func (c *Cell[S]) Write(f func(*S)) {
	f(c.acquire())
}

// acquire returns the current goroutine's state, creating it if absent.
func (c *Cell[S]) acquire() *S {
	gid := goid.Get()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.states == nil {
		c.states = make(map[int64]*S)
	}

	state, ok := c.states[gid]
	if !ok {
		state = new(S)
		c.states[gid] = state
	}

	return state
}

// CellGet invokes f with the current goroutine's state and returns f's result.
// It exists as a package-level function because Go methods cannot introduce
// additional type parameters.
func CellGet[S, T any](c *Cell[S], f func(*S) T) T {
	return f(c.acquire())
}

package genarena

import "sync/atomic"

// accessGuard detects concurrent or reentrant misuse of a rawArena's
// mutating operations, without providing real thread safety. It only
// detects exclusive access being violated: two overlapping mutating calls
// panic immediately instead of silently corrupting the dense buffer. This
// costs one CompareAndSwap per mutating call, far cheaper than a mutex held
// across every operation including reads.
type accessGuard struct {
	held atomic.Bool
}

// enter marks the guard held, panicking if it was already held — i.e. a
// mutating call is already in flight on this arena, from this goroutine
// (reentrancy) or another (a race). Returns a function that must be
// deferred to release the guard.
func (g *accessGuard) enter(op string) func() {
	if !g.held.CompareAndSwap(false, true) {
		panic("genarena: concurrent or reentrant mutation detected in " + op + ", the arena requires exclusive access for mutating operations")
	}
	return func() { g.held.Store(false) }
}

package reentrancy

import (
	"context"
	"sync"
	"sync/atomic"

	"tokenbank/core"
)

type guardKey struct {
	g *Guard
}

// Guard single mutex of the ledger. A call that already holds the guard is
// recognized through its context and rejected. Calls from other contexts
// wait for the holder to finish, unless the holder is inside Call: a
// collaborator may call back with a context of its own, so every entry is
// rejected while one is running.
type Guard struct {
	mu      sync.Mutex
	calling int32
}

// Enter takes the guard for a top level call
func (g *Guard) Enter(ctx context.Context) (context.Context, func(), error) {
	if g.Entered(ctx) {
		return ctx, nil, core.NewError(core.ErrReentrancy, "reentrancy/nested-call")
	}

	if !g.mu.TryLock() {
		if g.Calling() {
			return ctx, nil, core.NewError(core.ErrReentrancy, "reentrancy/in-flight")
		}

		g.mu.Lock()
	}

	return context.WithValue(ctx, guardKey{g}, true), g.mu.Unlock, nil
}

// Entered ctx belongs to a call holding the guard
func (g *Guard) Entered(ctx context.Context) bool {
	v, _ := ctx.Value(guardKey{g}).(bool)
	return v
}

// Call runs fn, a call out of the holder into an untrusted collaborator
func (g *Guard) Call(fn func() error) error {
	atomic.AddInt32(&g.calling, 1)
	defer atomic.AddInt32(&g.calling, -1)
	return fn()
}

// Calling the holder is waiting on a collaborator
func (g *Guard) Calling() bool {
	return atomic.LoadInt32(&g.calling) > 0
}

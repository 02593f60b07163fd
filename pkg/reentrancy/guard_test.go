package reentrancy

import (
	"context"
	"sync"
	"testing"
	"time"

	"tokenbank/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRejectsNestedCall(t *testing.T) {
	var g Guard

	ctx, release, err := g.Enter(context.Background())
	require.NoError(t, err)
	assert.True(t, g.Entered(ctx))

	_, _, err = g.Enter(ctx)
	assert.ErrorIs(t, err, core.ErrReentrancy)

	release()

	_, release, err = g.Enter(context.Background())
	require.NoError(t, err)
	release()
}

func TestGuardRejectsCallbackWithFreshContext(t *testing.T) {
	var g Guard

	_, release, err := g.Enter(context.Background())
	require.NoError(t, err)

	err = g.Call(func() error {
		assert.True(t, g.Calling())
		_, _, err := g.Enter(context.Background())
		return err
	})
	assert.ErrorIs(t, err, core.ErrReentrancy)
	assert.False(t, g.Calling())

	release()

	_, release, err = g.Enter(context.Background())
	require.NoError(t, err)
	release()
}

func TestGuardSerializesGoroutines(t *testing.T) {
	var (
		g       Guard
		mu      sync.Mutex
		running int
		peak    int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, release, err := g.Enter(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, peak)
}

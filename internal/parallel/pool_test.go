package parallel

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPoolDefaults(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()
	assert.Equal(t, runtime.NumCPU(), pool.Workers())
}

func TestMapKeepsInputOrder(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i
	}
	got, err := Map(context.Background(), pool, inputs, func(_ context.Context, n int) int {
		if n%7 == 0 {
			time.Sleep(time.Millisecond)
		}
		return n * n
	})
	require.NoError(t, err)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestMapRunsConcurrently(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Shutdown()

	var running, peak atomic.Int32
	_, err := Map(context.Background(), pool, make([]struct{}, 12), func(context.Context, struct{}) bool {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return true
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Greater(t, peak.Load(), int32(1))
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Shutdown()
	pool.Shutdown()

	err := pool.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrPoolShutdown)

	_, err = Map(context.Background(), pool, []int{1, 2}, func(_ context.Context, n int) int { return n })
	assert.ErrorIs(t, err, ErrPoolShutdown)
}

func TestShutdownRunsAcceptedTasks(t *testing.T) {
	pool := NewWorkerPool(1)
	var done atomic.Int32
	for i := 0; i < 2; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {
			time.Sleep(time.Millisecond)
			done.Add(1)
		}))
	}
	pool.Shutdown()
	assert.Equal(t, int32(2), done.Load())
}

func TestSubmitHonoursContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Shutdown()

	block := make(chan struct{})
	defer close(block)
	// One task occupies the worker, two more fill the buffer.
	for i := 0; i < 3; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() { <-block }))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

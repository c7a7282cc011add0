// Package parallel runs independent reduction-graph explorations
// concurrently. Each task owns its own iterator; nothing is shared between
// tasks except the pool.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = errors.New("worker pool has been shutdown")

// WorkerPool manages a fixed set of goroutines. Submit blocks while the
// task buffer is full, which gives callers backpressure.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a pool with maxWorkers goroutines. If maxWorkers is
// 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}
	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the number of goroutines in the pool.
func (wp *WorkerPool) Workers() int { return wp.maxWorkers }

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case task := <-wp.taskChan:
			task()
		case <-wp.shutdownChan:
			// Run whatever was accepted before the shutdown.
			for {
				select {
				case task := <-wp.taskChan:
					task()
				default:
					return
				}
			}
		}
	}
}

// Submit queues task. It blocks until there is room, ctx is done or the pool
// shuts down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting tasks and waits until every accepted task has
// finished. It is safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		wp.workerWg.Wait()
	})
}

// Map runs fn on every input and returns the results in input order. If a
// submission fails, Map waits for the tasks already accepted and returns
// the error; results of inputs that never ran are zero values.
func Map[In, Out any](ctx context.Context, pool *WorkerPool, inputs []In, fn func(context.Context, In) Out) ([]Out, error) {
	out := make([]Out, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			out[i] = fn(ctx, in)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return out, err
		}
	}
	wg.Wait()
	return out, nil
}

// Package workers bounds the blocking work (parsing, storage I/O) a request may start.
package workers

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultSize is the pool size used when none is configured.
const DefaultSize = 4

// Pool limits how many jobs run at once.
type Pool struct {
	sem    *semaphore.Weighted
	size   int
	active atomic.Int64
}

// NewPool returns a pool running at most size jobs. size < 1 uses DefaultSize.
func NewPool(size int) *Pool {
	if size < 1 {
		size = DefaultSize
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size is the configured concurrency.
func (p *Pool) Size() int { return p.size }

// Active is the number of jobs currently running.
func (p *Pool) Active() int { return int(p.active.Load()) }

type result[T any] struct {
	value T
	err   error
}

// Run executes fn on the pool and waits for its result. If ctx ends first, Run
// returns ctx.Err(); a job that already started keeps running and its result is
// discarded. A panic in fn is returned as an error.
func Run[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	p.active.Add(1)
	go func() {
		defer p.sem.Release(1)
		defer p.active.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: fmt.Errorf("worker panic: %v", r)}
			}
		}()
		v, err := fn()
		done <- result[T]{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

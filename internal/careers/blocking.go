package careers

import (
	"context"

	"github.com/jonathan/careerview/internal/workers"
)

// lookup carries a repository read and its found flag through the pool.
type lookup[T any] struct {
	value T
	ok    bool
}

// onPool runs a blocking repository call on the service's worker pool. It
// fails only when ctx ends before the call returns.
func onPool[T any](ctx context.Context, s *Service, fn func() T) (T, error) {
	return workers.Run(ctx, s.pool, func() (T, error) { return fn(), nil })
}

// loadOnPool is onPool for lookups that report whether anything was found.
func loadOnPool[T any](ctx context.Context, s *Service, fn func() (T, bool)) (T, bool, error) {
	r, err := workers.Run(ctx, s.pool, func() (lookup[T], error) {
		v, ok := fn()
		return lookup[T]{value: v, ok: ok}, nil
	})
	return r.value, r.ok, err
}

// Package auth provides the mock login/signup flow and the asynchronous
// operation seam used for every simulated network call.
package auth

import (
	"context"
	"sync"
	"time"
)

// Operation submits a request and resolves later. Implementations may simulate
// latency or call a real backend; callers only see the Future.
type Operation[Req, Res any] interface {
	Submit(ctx context.Context, req Req) *Future[Res]
}

// OperationFunc is the synchronous body of an operation.
type OperationFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Future is the pending result of an Operation.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// NewFuture returns an unresolved future and its resolve func. Only the first
// resolve call has an effect.
func NewFuture[T any]() (*Future[T], func(T, error)) {
	f := &Future[T]{done: make(chan struct{})}
	return f, f.resolve
}

// Resolved returns a future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f, resolve := NewFuture[T]()
	resolve(value, err)
	return f
}

func (f *Future[T]) resolve(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Simulated runs fn after a fixed delay, standing in for a network round trip.
type Simulated[Req, Res any] struct {
	latency time.Duration
	fn      OperationFunc[Req, Res]
}

// NewSimulated wraps fn with latency. A zero latency resolves without waiting.
func NewSimulated[Req, Res any](latency time.Duration, fn OperationFunc[Req, Res]) *Simulated[Req, Res] {
	return &Simulated[Req, Res]{latency: latency, fn: fn}
}

// Submit starts the delayed call. Cancelling ctx before the delay elapses
// resolves the future with ctx.Err() and fn never runs.
func (s *Simulated[Req, Res]) Submit(ctx context.Context, req Req) *Future[Res] {
	future, resolve := NewFuture[Res]()
	go func() {
		if s.latency > 0 {
			timer := time.NewTimer(s.latency)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				var zero Res
				resolve(zero, ctx.Err())
				return
			}
		}
		resolve(s.fn(ctx, req))
	}()
	return future
}

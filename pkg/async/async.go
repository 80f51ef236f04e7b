package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned by AwaitWithTimeout when the deadline passes first
var ErrTimeout = errors.New("async: timeout waiting for result")

// Future represents the result of an asynchronous computation
type Future[T any] struct {
	value T
	err   error
	once  sync.Once
	done  chan struct{}
}

// Await blocks until the computation completes
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits at most timeout for the result
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports completion without blocking
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A context cancelled before fn starts completes the Future with ctx.Err().
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		select {
		case <-ctx.Done():
			var zero T
			f.complete(zero, ctx.Err())
			return
		default:
		}

		value, err := fn(ctx)
		f.complete(value, err)
	}()

	return f
}

// Resolved returns an already completed Future
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.complete(value, err)
	return f
}

// ExecFuture represents an asynchronous computation that only returns an error
type ExecFuture struct {
	inner *Future[struct{}]
}

// Await waits for the function to complete and returns its error
func (f *ExecFuture) Await() error {
	_, err := f.inner.Await()
	return err
}

// AwaitWithTimeout waits at most timeout for completion
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	_, err := f.inner.AwaitWithTimeout(timeout)
	return err
}

// Done is closed once the function has returned
func (f *ExecFuture) Done() <-chan struct{} {
	return f.inner.Done()
}

// IsComplete reports completion without blocking
func (f *ExecFuture) IsComplete() bool {
	return f.inner.IsComplete()
}

// Exec runs fn asynchronously
func Exec(ctx context.Context, fn func(context.Context) error) *ExecFuture {
	return &ExecFuture{inner: Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})}
}

// Done returns an already completed ExecFuture, for operations that fail
// or finish before any background work starts
func Done(err error) *ExecFuture {
	return &ExecFuture{inner: Resolved(struct{}{}, err)}
}

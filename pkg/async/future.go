package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation. A Future
// resolves exactly once; every Await variant observes the same result.
type Future[T any] struct {
	value T
	err   error
	once  sync.Once
	done  chan struct{}
}

// Async executes fn on a new goroutine and returns a Future for its result.
// The function accepts a context.Context and a parameter of any type P.
// If ctx is already cancelled, fn is not invoked and the future resolves
// with the context error. A panic inside fn resolves the future with
// ErrPanicked instead of crashing the process.
func Async[P, T any](ctx context.Context, param P, fn func(context.Context, P) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.resolve(zero, fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()

		// Early exit prevents doing work when context is pre-canceled
		select {
		case <-ctx.Done():
			var zero T
			f.resolve(zero, ctx.Err())
			return
		default:
		}

		v, err := fn(ctx, param)
		f.resolve(v, err)
	}()

	return f
}

// Resolved returns a future that already holds value.
func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.resolve(value, nil)
	return f
}

// Failed returns a future that already holds err.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	var zero T
	f.resolve(zero, err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future resolves and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for the result up to timeout. If the future is
// still pending when the timeout expires it returns ErrTimeout; the future
// itself stays pending and can be awaited again.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// AwaitContext waits for the result or for ctx cancellation, whichever comes
// first. On cancellation it returns the context error and the future stays
// pending.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the future has resolved, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the future resolves.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// WaitAll waits for every future and collects their values in order. The
// first error encountered is returned alongside the collected values.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	values := make([]T, len(futures))
	var firstErr error
	for i, future := range futures {
		v, err := future.Await()
		values[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return values, firstErr
}

// WaitAny waits for the first future to resolve and returns its index and
// result. Spawns one goroutine per future; all of them complete naturally
// when their futures finish.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	var zero T
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type completion struct {
		index int
		value T
		err   error
	}

	first := make(chan completion, 1)
	for i, future := range futures {
		go func(index int, f *Future[T]) {
			v, err := f.Await()
			select {
			case first <- completion{index: index, value: v, err: err}:
			default:
			}
		}(i, future)
	}

	res := <-first
	return res.index, res.value, res.err
}

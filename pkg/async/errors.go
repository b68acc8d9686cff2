package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the future is still
	// pending after the timeout.
	ErrTimeout = errors.New("async: await timed out")

	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures provided")

	// ErrPanicked wraps a panic recovered from an asynchronous function.
	ErrPanicked = errors.New("async: function panicked")
)

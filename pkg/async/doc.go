// Package async provides utilities for asynchronous programming with Go generics.
//
// This package implements a Future pattern for non-blocking operations with
// timeout and cancellation support, plus coordination utilities for managing
// multiple asynchronous computations.
//
// # Core Types
//
// Future[T] represents the result of an asynchronous computation. It provides
// methods to wait for completion (Await), check status without blocking
// (IsComplete), bound the wait (AwaitWithTimeout), or tie the wait to a
// context (AwaitContext). A future resolves exactly once.
//
// # Usage
//
// Basic asynchronous operation:
//
//	func fetchUser(ctx context.Context, userID int) (User, error) {
//		// Simulate database call
//		time.Sleep(100 * time.Millisecond)
//		return User{ID: userID, Name: "John"}, nil
//	}
//
//	// Execute asynchronously
//	future := async.Async(ctx, 123, fetchUser)
//
//	// Do other work...
//
//	// Wait for result
//	user, err := future.Await()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Using timeout:
//
//	user, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("Operation timed out")
//	}
//
// Tying the wait to a caller's context:
//
//	user, err := future.AwaitContext(ctx)
//	if errors.Is(err, context.Canceled) {
//		// the caller gave up; the future itself keeps running
//	}
//
// # Pre-Resolved Futures
//
// Resolved and Failed build futures that are already complete. They let hot
// paths hand out a shared "nothing to wait for" result without spawning a
// goroutine:
//
//	var noChange = async.Resolved(Decision{})
//
// # Coordination Utilities
//
// WaitAll waits for all futures to complete and returns their results:
//
//	futures := []*async.Future[User]{
//		async.Async(ctx, 1, fetchUser),
//		async.Async(ctx, 2, fetchUser),
//		async.Async(ctx, 3, fetchUser),
//	}
//
//	users, err := async.WaitAll(futures...)
//	if err != nil {
//		log.Printf("One or more operations failed: %v", err)
//	}
//
// WaitAny returns as soon as any future completes:
//
//	index, user, err := async.WaitAny(futures...)
//	log.Printf("Future %d completed first with result: %+v", index, user)
//
// # Error Handling
//
// The package defines three errors:
//   - ErrTimeout: returned when AwaitWithTimeout exceeds its duration
//   - ErrNoFutures: returned when WaitAny is called with no futures
//   - ErrPanicked: wraps a panic recovered from the asynchronous function
//
// # Concurrency Safety
//
// All operations are safe for concurrent use. The Future type resolves
// through sync.Once, so racing completions and repeated awaits all observe
// one consistent result.
//
// # Context Support
//
// Async checks the context before invoking the function: if it is already
// cancelled, the function never runs and the future resolves with the
// context's error. Cancellation during execution is the function's own
// responsibility via the ctx argument it receives.
package async

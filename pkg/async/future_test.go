package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/netkit/pkg/async"
)

func TestAsync_Success(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	v, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, future.IsComplete())
}

func TestAsync_Error(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	future := async.Async(context.Background(), "x", func(ctx context.Context, s string) (string, error) {
		return "", wantErr
	})

	v, err := future.Await()
	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, v)
}

func TestAsync_PreCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	invoked := false
	future := async.Async(ctx, 0, func(ctx context.Context, _ int) (int, error) {
		invoked = true
		return 1, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, invoked, "function must not run when context is pre-cancelled")
}

func TestAsync_PanicRecovered(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		panic("kaboom")
	})

	_, err := future.Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, async.ErrPanicked)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("times out while pending", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			<-release
			return 7, nil
		})

		_, err := future.AwaitWithTimeout(20 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.False(t, future.IsComplete(), "timeout must not resolve the future")

		// The future remains awaitable after a timed-out wait
		close(release)
		v, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("returns result before timeout", func(t *testing.T) {
		t.Parallel()

		future := async.Resolved("done")
		v, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "done", v)
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := future.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, future.IsComplete())
}

func TestResolvedAndFailed(t *testing.T) {
	t.Parallel()

	r := async.Resolved(99)
	assert.True(t, r.IsComplete())
	v, err := r.Await()
	require.NoError(t, err)
	assert.Equal(t, 99, v)

	wantErr := errors.New("nope")
	f := async.Failed[int](wantErr)
	assert.True(t, f.IsComplete())
	_, err = f.Await()
	assert.ErrorIs(t, err, wantErr)

	select {
	case <-r.Done():
	default:
		t.Fatal("Done channel of a resolved future must be closed")
	}
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects in order", func(t *testing.T) {
		t.Parallel()

		double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }
		values, err := async.WaitAll(
			async.Async(context.Background(), 1, double),
			async.Async(context.Background(), 2, double),
			async.Async(context.Background(), 3, double),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, values)
	})

	t.Run("reports first error but waits for all", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("second failed")
		values, err := async.WaitAll(
			async.Resolved(1),
			async.Failed[int](wantErr),
			async.Resolved(3),
		)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, []int{1, 0, 3}, values)
	})
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	t.Run("returns first completion", func(t *testing.T) {
		t.Parallel()

		slow := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			time.Sleep(time.Second)
			return 1, nil
		})
		fast := async.Resolved(2)

		index, v, err := async.WaitAny(slow, fast)
		require.NoError(t, err)
		assert.Equal(t, 1, index)
		assert.Equal(t, 2, v)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		index, _, err := async.WaitAny[int]()
		assert.ErrorIs(t, err, async.ErrNoFutures)
		assert.Equal(t, -1, index)
	})
}

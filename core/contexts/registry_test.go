package contexts_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/netkit/core/contexts"
	"github.com/dmitrymomot/netkit/core/webrequest"
)

func TestRegistry_FromOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("constructs on first access", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		require.Equal(t, 0, reg.Len())
		rt := reg.FromOrCreate("ctx-1")
		require.NotNil(t, rt)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("idempotent per key", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		first := reg.FromOrCreate("ctx-1")
		second := reg.FromOrCreate("ctx-1")
		assert.Same(t, first, second)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("distinct keys own distinct routers", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		a := reg.FromOrCreate("a")
		b := reg.FromOrCreate("b")
		assert.NotSame(t, a, b)
		assert.NotEqual(t, a.ID(), b.ID())
	})

	t.Run("applies router options", func(t *testing.T) {
		t.Parallel()

		handled := make(chan error, 1)
		reg := contexts.NewRegistry[string](
			contexts.WithRouterOptions[string](
				webrequest.WithErrorHandler(func(_ context.Context, _ string, _ *webrequest.Details, err error) {
					handled <- err
				}),
			),
		)
		defer reg.Close()

		rt := reg.FromOrCreate("ctx-1")
		require.NoError(t, rt.OnCompleted(webrequest.Filter{}, func(d *webrequest.Details) error {
			return assert.AnError
		}))

		u, err := url.Parse("https://example.com/")
		require.NoError(t, err)
		rt.Notify(webrequest.Completed, &webrequest.Details{ID: 1, URL: u})

		select {
		case got := <-handled:
			assert.ErrorIs(t, got, assert.AnError)
		case <-time.After(time.Second):
			t.Fatal("error handler was not invoked")
		}
	})
}

func TestRegistry_From(t *testing.T) {
	t.Parallel()

	reg := contexts.NewRegistry[int]()
	defer reg.Close()

	_, ok := reg.From(7)
	assert.False(t, ok)

	created := reg.FromOrCreate(7)
	got, ok := reg.From(7)
	require.True(t, ok)
	assert.Same(t, created, got)
}

func TestRegistry_Create_ReplacesAndClosesPredecessor(t *testing.T) {
	t.Parallel()

	reg := contexts.NewRegistry[string]()
	defer reg.Close()

	old := reg.FromOrCreate("ctx-1")
	replacement := reg.Create("ctx-1")
	require.NotNil(t, replacement)
	assert.NotSame(t, old, replacement)

	assert.ErrorIs(t, old.Healthcheck(context.Background()), webrequest.ErrRouterClosed)
	assert.NoError(t, replacement.Healthcheck(context.Background()))

	got, ok := reg.From("ctx-1")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Destroy(t *testing.T) {
	t.Parallel()

	t.Run("closes and removes", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		rt := reg.FromOrCreate("ctx-1")
		require.NoError(t, reg.Destroy("ctx-1"))

		assert.ErrorIs(t, rt.Healthcheck(context.Background()), webrequest.ErrRouterClosed)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		assert.ErrorIs(t, reg.Destroy("nope"), contexts.ErrContextNotFound)
	})

	t.Run("resolves outstanding intercepts fail open", func(t *testing.T) {
		t.Parallel()

		reg := contexts.NewRegistry[string]()
		defer reg.Close()

		rt := reg.FromOrCreate("ctx-1")
		require.NoError(t, rt.OnBeforeRequest(webrequest.Filter{}, func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
			<-ctx.Done()
			return webrequest.Block(), nil
		}))

		u, err := url.Parse("https://example.com/")
		require.NoError(t, err)
		fut := rt.InterceptAsync(webrequest.BeforeRequest, &webrequest.Details{ID: 42, URL: u})
		require.False(t, fut.IsComplete())

		require.NoError(t, reg.Destroy("ctx-1"))

		disp, err := fut.Await()
		require.NoError(t, err)
		assert.True(t, disp.Neutral(), "teardown must resolve pending intercepts as proceed-unmodified")
	})
}

func TestRegistry_Close(t *testing.T) {
	t.Parallel()

	reg := contexts.NewRegistry[string]()
	a := reg.FromOrCreate("a")
	b := reg.FromOrCreate("b")

	require.NoError(t, reg.Close())
	require.NoError(t, reg.Close(), "close is idempotent")

	assert.ErrorIs(t, a.Healthcheck(context.Background()), webrequest.ErrRouterClosed)
	assert.ErrorIs(t, b.Healthcheck(context.Background()), webrequest.ErrRouterClosed)

	assert.Nil(t, reg.FromOrCreate("c"))
	assert.Nil(t, reg.Create("c"))
	assert.ErrorIs(t, reg.Destroy("a"), contexts.ErrRegistryClosed)
	assert.Equal(t, 0, reg.Len())
}

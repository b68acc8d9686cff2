package webrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/netkit/core/logger"
	"github.com/dmitrymomot/netkit/pkg/async"
)

// neutralFuture is shared by every dispatch that resolves immediately as
// "proceed unmodified", so the no-listener hot path allocates nothing.
var neutralFuture = async.Resolved(Disposition{})

// Notify delivers a one-way lifecycle notification. Without a registered
// listener, or when the filter does not match, it returns immediately.
// Listener failures are counted, reported, and never propagated; the
// listener runs synchronously so per-request event order is preserved.
func (r *Router) Notify(event SimpleEvent, d *Details) {
	if r.closed.Load() || !event.Valid() || d == nil || d.URL == nil {
		return
	}

	r.mu.RLock()
	entry := r.simple[event]
	r.mu.RUnlock()

	if entry == nil || !entry.filter.Matches(d.URL) {
		return
	}

	r.notified.Add(1)
	r.invokeSimple(event, entry.listener, d)
}

func (r *Router) invokeSimple(event SimpleEvent, listener SimpleListener, d *Details) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reportListenerError(event.String(), d, fmt.Errorf("%w: %v", ErrListenerPanic, rec))
		}
	}()

	if err := listener(d); err != nil {
		r.reportListenerError(event.String(), d, err)
	}
}

// Intercept dispatches a response-gated event and waits for the listener's
// disposition. It fails open: listener errors, timeouts, router teardown,
// and cancellation of ctx all yield the neutral "proceed unmodified"
// disposition, never an error and never a permanent wait.
func (r *Router) Intercept(ctx context.Context, event ResponseEvent, d *Details) Disposition {
	disp, err := r.InterceptAsync(event, d).AwaitContext(ctx)
	if err != nil {
		return Disposition{}
	}
	return disp
}

// InterceptAsync starts a response-gated dispatch and returns a future for
// the listener's disposition. Without a registered listener, when the filter
// does not match, for an inert event, or on a closed router, the returned
// future is already resolved as "proceed unmodified" and nothing is
// allocated.
//
// Pending intercepts are keyed by (Details.ID, event): a second call for a
// key that is still pending returns the same future. The network stack must
// not dispatch a key again after observing its resolution.
func (r *Router) InterceptAsync(event ResponseEvent, d *Details) *async.Future[Disposition] {
	if r.closed.Load() || !event.Valid() || event.inert() || d == nil || d.URL == nil {
		return neutralFuture
	}

	r.mu.RLock()
	entry := r.gated[event]
	r.mu.RUnlock()

	if entry == nil || !entry.filter.Matches(d.URL) {
		return neutralFuture
	}

	key := pendingKey{id: d.ID, event: event}

	r.pmu.Lock()

	// Re-check after taking the lock: Close drains the pending map under
	// pmu, so an entry added here would be missed by a teardown that has
	// already passed the closed flag.
	if r.closed.Load() {
		r.pmu.Unlock()
		return neutralFuture
	}

	if existing, ok := r.pending[key]; ok {
		r.pmu.Unlock()
		r.log.Warn("intercept already pending, returning the outstanding future",
			logger.Event(event.String()),
			logger.RequestID(d.ID))
		return existing
	}

	if r.maxPending > 0 && len(r.pending) >= r.maxPending {
		r.pmu.Unlock()
		r.reportListenerError(event.String(), d, ErrTooManyPending)
		return neutralFuture
	}

	r.intercepted.Add(1)
	fut := r.startIntercept(key, entry.listener, d)
	r.pending[key] = fut
	r.pmu.Unlock()
	return fut
}

// startIntercept runs the listener on its own goroutine and returns the
// future the network stack awaits. The listener observes cancellation
// through a context derived from the router lifetime plus the configured
// timeout; the dispatch itself always resolves, fail-open.
func (r *Router) startIntercept(key pendingKey, listener ResponseListener, d *Details) *async.Future[Disposition] {
	lctx := r.ctx
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		lctx, cancel = context.WithTimeout(r.ctx, r.timeout)
	}

	// The future's function receives context.Background so it runs even when
	// the router is tearing down; it must always run, because it owns the
	// removal of the pending entry. Cancellation is observed through lctx.
	return async.Async(context.Background(), d, func(_ context.Context, d *Details) (Disposition, error) {
		defer cancel()
		defer r.removePending(key)

		type outcome struct {
			disp Disposition
			err  error
		}
		decided := make(chan outcome, 1)

		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					decided <- outcome{err: fmt.Errorf("%w: %v", ErrListenerPanic, rec)}
				}
			}()
			disp, err := listener(lctx, d)
			decided <- outcome{disp: disp, err: err}
		}()

		select {
		case out := <-decided:
			if out.err != nil {
				r.reportListenerError(key.event.String(), d, out.err)
				return Disposition{}, nil
			}
			if out.disp.Cancel {
				r.cancelled.Add(1)
			}
			return out.disp, nil

		case <-lctx.Done():
			if errors.Is(lctx.Err(), context.DeadlineExceeded) {
				r.reportListenerError(key.event.String(), d, ErrListenerTimeout)
			} else {
				// Router teardown: abandoning the wait is the contract, not
				// a listener failure.
				r.log.Debug("intercept abandoned at teardown",
					logger.Event(key.event.String()),
					logger.RequestID(d.ID))
			}
			return Disposition{}, nil
		}
	})
}

func (r *Router) removePending(key pendingKey) {
	r.pmu.Lock()
	delete(r.pending, key)
	r.pmu.Unlock()
}

func (r *Router) reportListenerError(event string, d *Details, err error) {
	r.listenerErrors.Add(1)

	attrs := []any{
		logger.Event(event),
		logger.Error(err),
	}
	if d != nil {
		attrs = append(attrs,
			logger.RequestID(d.ID),
			logger.URL(d.URL))
	}
	r.log.Error("listener failed", attrs...)

	if r.errHandler != nil {
		r.errHandler(r.ctx, event, d, err)
	}
}

package webrequest

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/netkit/core/logger"
	"github.com/dmitrymomot/netkit/core/urlpattern"
	"github.com/dmitrymomot/netkit/pkg/async"
)

// SimpleListener observes a one-way lifecycle notification. The returned
// error is reported to the router's error handler and otherwise ignored; it
// never affects request processing.
type SimpleListener func(d *Details) error

// ResponseListener decides the disposition for a response-gated event. It
// runs on its own goroutine; ctx is cancelled when the router closes or the
// listener timeout expires. An error or panic counts as a failed listener
// and the request proceeds unmodified.
type ResponseListener func(ctx context.Context, d *Details) (Disposition, error)

// Router dispatches network request lifecycle events to registered
// listeners. Each event kind holds at most one listener with an optional URL
// filter; re-registering replaces the entry atomically and a nil listener
// removes it.
//
// A Router is bound to a single browsing/session context for its whole
// lifetime; use contexts.Registry to manage that binding. Registration and
// dispatch are safe to call from any goroutine.
type Router struct {
	id  string
	log *slog.Logger

	errHandler func(ctx context.Context, event string, d *Details, err error)
	timeout    time.Duration
	maxPending int

	mu     sync.RWMutex
	simple [simpleEventCount]*simpleEntry
	gated  [responseEventCount]*gatedEntry

	pmu     sync.Mutex
	pending map[pendingKey]*async.Future[Disposition]

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	notified       atomic.Int64
	intercepted    atomic.Int64
	listenerErrors atomic.Int64
	cancelled      atomic.Int64
}

type simpleEntry struct {
	filter   *urlpattern.Set
	listener SimpleListener
}

type gatedEntry struct {
	filter   *urlpattern.Set
	listener ResponseListener
}

// pendingKey identifies one outstanding intercept: request identity plus
// event kind.
type pendingKey struct {
	id    int64
	event ResponseEvent
}

// Stats provides observability counters for monitoring and tests.
type Stats struct {
	// Notified counts simple dispatches that reached a listener.
	Notified int64
	// Intercepted counts response-gated dispatches that reached a listener.
	Intercepted int64
	// ListenerErrors counts listener failures of any kind.
	ListenerErrors int64
	// Cancelled counts dispositions that cancelled a request.
	Cancelled int64
	// Pending is the number of currently outstanding intercepts.
	Pending int
}

// New creates a router with the given options.
//
// Example:
//
//	rt := webrequest.New(
//	    webrequest.WithLogger(log),
//	    webrequest.WithListenerTimeout(5*time.Second),
//	)
//	defer rt.Close()
func New(opts ...Option) *Router {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		id:      uuid.NewString(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		pending: make(map[pendingKey]*async.Future[Disposition]),
		ctx:     ctx,
		cancel:  cancel,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.log = r.log.With(slog.String("router_id", r.id))
	return r
}

// ID returns the router's instance identifier, also present in every log
// record it emits.
func (r *Router) ID() string { return r.id }

// OnBeforeRequest registers the listener consulted before each matching
// request is sent. The listener may cancel the request or redirect it. A nil
// listener removes the current registration.
func (r *Router) OnBeforeRequest(f Filter, l ResponseListener) error {
	return r.setGated(BeforeRequest, f, l)
}

// OnBeforeSendHeaders registers a listener for the header-rewrite stage.
//
// This stage is inert: dispatch always proceeds unmodified and the listener
// is never invoked. The registration is still stored, so behavior is
// unchanged for callers that registered against the reference system, and a
// warning is logged to make the dead registration visible.
func (r *Router) OnBeforeSendHeaders(f Filter, l ResponseListener) error {
	return r.setGated(BeforeSendHeaders, f, l)
}

// OnHeadersReceived registers the listener consulted when response headers
// for a matching request arrive. The listener may cancel the request or
// replace the response headers and status line. A nil listener removes the
// current registration.
func (r *Router) OnHeadersReceived(f Filter, l ResponseListener) error {
	return r.setGated(HeadersReceived, f, l)
}

// OnSendHeaders registers the notification listener for the moment a
// matching request's headers are on the wire. A nil listener removes the
// current registration.
func (r *Router) OnSendHeaders(f Filter, l SimpleListener) error {
	return r.setSimple(SendHeaders, f, l)
}

// OnBeforeRedirect registers the notification listener for redirects of
// matching requests. A nil listener removes the current registration.
func (r *Router) OnBeforeRedirect(f Filter, l SimpleListener) error {
	return r.setSimple(BeforeRedirect, f, l)
}

// OnResponseStarted registers the notification listener for the first
// response byte of matching requests. A nil listener removes the current
// registration.
func (r *Router) OnResponseStarted(f Filter, l SimpleListener) error {
	return r.setSimple(ResponseStarted, f, l)
}

// OnCompleted registers the notification listener for successful completion
// of matching requests. A nil listener removes the current registration.
func (r *Router) OnCompleted(f Filter, l SimpleListener) error {
	return r.setSimple(Completed, f, l)
}

// OnErrorOccurred registers the notification listener for failed matching
// requests. A nil listener removes the current registration.
func (r *Router) OnErrorOccurred(f Filter, l SimpleListener) error {
	return r.setSimple(ErrorOccurred, f, l)
}

func (r *Router) setSimple(event SimpleEvent, f Filter, l SimpleListener) error {
	if r.closed.Load() {
		return ErrRouterClosed
	}

	set, err := f.compile()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l == nil {
		r.simple[event] = nil
		r.log.Debug("listener removed", logger.Event(event.String()))
		return nil
	}

	r.simple[event] = &simpleEntry{filter: set, listener: l}
	r.log.Debug("listener registered",
		logger.Event(event.String()),
		logger.Count("patterns", set.Len()))
	return nil
}

func (r *Router) setGated(event ResponseEvent, f Filter, l ResponseListener) error {
	if r.closed.Load() {
		return ErrRouterClosed
	}

	set, err := f.compile()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l == nil {
		r.gated[event] = nil
		r.log.Debug("listener removed", logger.Event(event.String()))
		return nil
	}

	r.gated[event] = &gatedEntry{filter: set, listener: l}
	if event.inert() {
		r.log.Warn("listener registered for inert event and will not be invoked",
			logger.Event(event.String()))
	} else {
		r.log.Debug("listener registered",
			logger.Event(event.String()),
			logger.Count("patterns", set.Len()))
	}
	return nil
}

// HasListener reports whether a listener is registered for event.
func (r *Router) HasListener(event SimpleEvent) bool {
	if !event.Valid() {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.simple[event] != nil
}

// HasResponseListener reports whether a listener is registered for event.
func (r *Router) HasResponseListener(event ResponseEvent) bool {
	if !event.Valid() {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gated[event] != nil
}

// Close tears the router down: every pending intercept resolves as "proceed
// unmodified", all registrations are dropped, and further dispatch becomes a
// no-op. Close blocks until no pending intercept remains, so when it returns
// no suspended request survives the router. It is safe to call more than
// once.
func (r *Router) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.cancel()

	r.pmu.Lock()
	waiting := make([]*async.Future[Disposition], 0, len(r.pending))
	for _, fut := range r.pending {
		waiting = append(waiting, fut)
	}
	r.pmu.Unlock()

	// Cancelling the lifetime context resolves each pending intercept
	// fail-open; wait for that so teardown is synchronous.
	for _, fut := range waiting {
		_, _ = fut.Await()
	}

	r.mu.Lock()
	for i := range r.simple {
		r.simple[i] = nil
	}
	for i := range r.gated {
		r.gated[i] = nil
	}
	r.mu.Unlock()

	r.log.Info("router closed", logger.Count("abandoned_intercepts", len(waiting)))
	return nil
}

// Stats returns current dispatch counters.
func (r *Router) Stats() Stats {
	r.pmu.Lock()
	pending := len(r.pending)
	r.pmu.Unlock()

	return Stats{
		Notified:       r.notified.Load(),
		Intercepted:    r.intercepted.Load(),
		ListenerErrors: r.listenerErrors.Load(),
		Cancelled:      r.cancelled.Load(),
		Pending:        pending,
	}
}

// Healthcheck validates that the router can still dispatch.
// Returns nil while open and ErrRouterClosed after Close.
func (r *Router) Healthcheck(ctx context.Context) error {
	if r.closed.Load() {
		return ErrRouterClosed
	}
	return nil
}

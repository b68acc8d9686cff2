// Package webrequest routes network request lifecycle events to registered
// listeners, with URL filtering and response-gated interception.
//
// A Router sits between a network stack and user callbacks. The stack
// reports lifecycle points; the router looks up the listener registered for
// that event kind, applies its URL filter, and either notifies the listener
// (one-way events) or suspends that one request until the listener decides
// its fate (response-gated events).
//
// # Event Families
//
// Simple events are one-way notifications — the listener observes but cannot
// alter the request:
//
//	onSendHeaders, onBeforeRedirect, onResponseStarted, onCompleted,
//	onErrorOccurred
//
// Response-gated events gate the request on the listener's Disposition —
// proceed unmodified, proceed with modifications, or cancel:
//
//	onBeforeRequest, onBeforeSendHeaders, onHeadersReceived
//
// Each event kind holds at most one listener. Re-registering replaces it;
// registering a nil listener removes it.
//
// # Registration
//
//	rt := webrequest.New(webrequest.WithLogger(log))
//	defer rt.Close()
//
//	err := rt.OnBeforeRequest(webrequest.Filter{URLs: []string{"*://ads.example.com/*"}},
//		func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
//			return webrequest.Block(), nil
//		})
//
// The zero Filter matches every request. Malformed patterns fail the
// registration with an error wrapping ErrInvalidFilter that names the
// offending pattern, and the previous registration stays in place.
//
// # Dispatch
//
// The network stack is the only expected caller of the dispatch surface:
//
//	rt.Notify(webrequest.SendHeaders, details)
//
//	disp := rt.Intercept(ctx, webrequest.BeforeRequest, details)
//	if disp.Cancel {
//		// abort the request
//	}
//
// Notify runs the listener synchronously, preserving per-request event
// order. Intercept suspends only the calling goroutine — one in-flight
// request — while the listener decides on its own goroutine; other requests
// dispatch freely. InterceptAsync exposes the underlying future for stacks
// that multiplex many requests on one control loop.
//
// When no listener is registered or the filter does not match, Notify is a
// no-op and Intercept returns the neutral disposition from a shared
// pre-resolved future; nothing is allocated on that path.
//
// # Fail-Open Policy
//
// Nothing a listener does can wedge a request. A listener error or panic is
// caught, counted, reported to the WithErrorHandler callback, and the
// request proceeds unmodified. A listener that outlives the configured
// timeout is abandoned the same way. Closing the router resolves every
// outstanding intercept as "proceed unmodified" before Close returns.
// Degraded interception is always preferred over blocked traffic.
//
// # Inert Stage
//
// onBeforeSendHeaders is dispatched through the pipeline but never consults
// its listener: dispatch yields the neutral disposition unconditionally,
// matching the reference system. OnBeforeSendHeaders still stores the
// registration and logs a warning so the dead listener is visible.
//
// # Concurrency
//
// All methods are safe for concurrent use. Dispatch takes only read locks on
// the registry, so listener registration never tears a dispatch in half: a
// dispatch sees either the old entry or the new one, never a mix. Routers
// for different contexts share no state.
package webrequest

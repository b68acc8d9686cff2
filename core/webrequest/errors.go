package webrequest

import "errors"

var (
	// ErrRouterClosed is returned by registration calls on a closed router
	// and by Healthcheck after Close.
	ErrRouterClosed = errors.New("webrequest: router closed")

	// ErrInvalidFilter wraps pattern parse failures at registration time.
	// The registry is left unchanged when it is returned.
	ErrInvalidFilter = errors.New("webrequest: invalid url filter")

	// ErrListenerPanic reports a listener that panicked during dispatch.
	ErrListenerPanic = errors.New("webrequest: listener panicked")

	// ErrListenerTimeout reports a response-gated listener that did not
	// decide within the configured listener timeout.
	ErrListenerTimeout = errors.New("webrequest: listener timed out")

	// ErrTooManyPending reports an intercept resolved neutral because the
	// router is at its pending intercept cap.
	ErrTooManyPending = errors.New("webrequest: too many pending intercepts")

	// ErrBlockedByClient is the error a network adapter reports with
	// ErrorOccurred after a listener cancels a request.
	ErrBlockedByClient = errors.New("webrequest: request blocked by client")
)

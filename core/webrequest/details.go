package webrequest

import (
	"net/http"
	"net/url"
	"time"
)

// Details describes an in-flight request at one lifecycle point. The network
// stack owns the request: the router and its listeners borrow Details for the
// duration of a single dispatch and must not retain it afterwards.
//
// Which fields are populated depends on the event. The stack fills the
// fields relevant to the stage being dispatched and leaves the rest zero.
type Details struct {
	// ID is the network stack's identifier for the request. Pending
	// intercepts are keyed by ID plus event kind, so it must be stable for
	// the lifetime of one request.
	ID int64

	// URL is the request's current URL. Required for every dispatch.
	URL *url.URL

	Method       string
	ResourceType string
	Referrer     *url.URL

	// RequestHeaders carries the proposed outgoing headers for
	// BeforeSendHeaders and the final headers for SendHeaders.
	RequestHeaders http.Header

	// ResponseHeaders carries the received headers for HeadersReceived and
	// the response-side notifications.
	ResponseHeaders http.Header

	StatusCode int
	StatusLine string

	// RedirectURL is the target the stack is about to follow, for
	// BeforeRedirect.
	RedirectURL *url.URL

	// FromCache reports whether the response was served from cache.
	FromCache bool

	// Error is the failure reported with ErrorOccurred.
	Error error

	// Timestamp is when the stack observed the lifecycle point.
	Timestamp time.Time
}

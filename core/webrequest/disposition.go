package webrequest

import (
	"net/http"
	"net/url"
)

// Disposition is a response-gated listener's decision for one request. The
// zero value means "proceed unmodified"; it is the neutral disposition the
// dispatcher falls back to whenever no listener decides otherwise.
//
// Only the fields meaningful for the dispatched event are honored by the
// network stack: RedirectURL on BeforeRequest, RequestHeaders on
// BeforeSendHeaders, ResponseHeaders and StatusLine on HeadersReceived.
// Cancel applies to every response-gated event.
type Disposition struct {
	// Cancel aborts the request.
	Cancel bool

	// RedirectURL redirects the request before it is sent.
	RedirectURL *url.URL

	// RequestHeaders replaces the outgoing request headers.
	RequestHeaders http.Header

	// ResponseHeaders replaces the received response headers; StatusLine
	// optionally replaces the status line, e.g. "HTTP/1.1 404 Not Found".
	ResponseHeaders http.Header
	StatusLine      string
}

// Neutral reports whether d is the zero "proceed unmodified" decision.
func (d Disposition) Neutral() bool {
	return !d.Cancel && d.RedirectURL == nil && d.RequestHeaders == nil &&
		d.ResponseHeaders == nil && d.StatusLine == ""
}

// Block returns the disposition that cancels the request.
func Block() Disposition { return Disposition{Cancel: true} }

// RedirectTo returns the disposition that redirects the request to u.
func RedirectTo(u *url.URL) Disposition { return Disposition{RedirectURL: u} }

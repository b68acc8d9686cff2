package webrequest

// SimpleEvent identifies a one-way notification point in the request
// lifecycle. Simple listeners observe the request but cannot alter it.
type SimpleEvent uint8

const (
	// SendHeaders fires once a request's headers are on the wire.
	SendHeaders SimpleEvent = iota
	// BeforeRedirect fires when the stack is about to follow a redirect.
	BeforeRedirect
	// ResponseStarted fires when the first byte of the response body arrives.
	ResponseStarted
	// Completed fires when a request finishes successfully.
	Completed
	// ErrorOccurred fires when a request fails, including cancellation by a
	// response-gated listener.
	ErrorOccurred

	simpleEventCount
)

var simpleEventNames = [...]string{
	SendHeaders:     "onSendHeaders",
	BeforeRedirect:  "onBeforeRedirect",
	ResponseStarted: "onResponseStarted",
	Completed:       "onCompleted",
	ErrorOccurred:   "onErrorOccurred",
}

// String returns the canonical event name.
func (e SimpleEvent) String() string {
	if e < simpleEventCount {
		return simpleEventNames[e]
	}
	return "unknown"
}

// Valid reports whether e is a defined simple event.
func (e SimpleEvent) Valid() bool { return e < simpleEventCount }

// ResponseEvent identifies a response-gated point in the request lifecycle:
// the listener's disposition gates further processing of that one request.
type ResponseEvent uint8

const (
	// BeforeRequest fires before a request is sent; the listener may cancel
	// or redirect it.
	BeforeRequest ResponseEvent = iota
	// BeforeSendHeaders fires before the final request headers go out. This
	// stage is inert: see Router.OnBeforeSendHeaders.
	BeforeSendHeaders
	// HeadersReceived fires when response headers arrive; the listener may
	// cancel the request or replace the headers.
	HeadersReceived

	responseEventCount
)

var responseEventNames = [...]string{
	BeforeRequest:     "onBeforeRequest",
	BeforeSendHeaders: "onBeforeSendHeaders",
	HeadersReceived:   "onHeadersReceived",
}

// String returns the canonical event name.
func (e ResponseEvent) String() string {
	if e < responseEventCount {
		return responseEventNames[e]
	}
	return "unknown"
}

// Valid reports whether e is a defined response-gated event.
func (e ResponseEvent) Valid() bool { return e < responseEventCount }

// inert reports whether dispatch for e always yields the neutral disposition
// without consulting a listener.
func (e ResponseEvent) inert() bool { return e == BeforeSendHeaders }

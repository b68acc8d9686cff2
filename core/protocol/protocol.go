package protocol

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one request for a custom or intercepted scheme.
type Request struct {
	URL     *url.URL
	Method  string
	Headers http.Header
}

// Response is the synthesized reply a Handler produces. Zero MimeType and
// Charset default to "text/html" and "utf-8" when served.
type Response struct {
	StatusCode int
	MimeType   string
	Charset    string
	Headers    http.Header
	Body       io.Reader
}

// NewStringResponse returns a 200 response with the given body.
func NewStringResponse(body string) *Response {
	return &Response{StatusCode: http.StatusOK, Body: strings.NewReader(body)}
}

// NewBytesResponse returns a 200 response with the given body and MIME type.
func NewBytesResponse(mimeType string, body []byte) *Response {
	return &Response{StatusCode: http.StatusOK, MimeType: mimeType, Body: bytes.NewReader(body)}
}

// ContentType returns the Content-Type header value for the response,
// applying the text/html and utf-8 defaults.
func (r *Response) ContentType() string {
	mime := r.MimeType
	if mime == "" {
		mime = "text/html"
	}
	charset := r.Charset
	if charset == "" {
		charset = "utf-8"
	}
	return mime + "; charset=" + charset
}

// Handler synthesizes the response for a request on a handled scheme.
type Handler func(ctx context.Context, req *Request) (*Response, error)

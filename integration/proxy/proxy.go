package proxy

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/elazarl/goproxy"

	"github.com/dmitrymomot/netkit/core/logger"
	"github.com/dmitrymomot/netkit/core/webrequest"
)

// Attach installs request and response hooks on p that drive rt through the
// request lifecycle: BeforeRequest, BeforeSendHeaders and SendHeaders on the
// way out; HeadersReceived, ResponseStarted and Completed (or ErrorOccurred)
// on the way back. A cancel disposition replaces the upstream round trip
// with a synthesized block response; a redirect disposition rewrites the
// outgoing URL in place.
//
// The proxy is caller-owned: Attach adds hooks and serves nothing itself.
// For HTTPS interception enable MITM on p before attaching. The hooks claim
// goproxy's per-request ProxyCtx.UserData slot.
func Attach(p *goproxy.ProxyHttpServer, rt *webrequest.Router, opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p.OnRequest().DoFunc(func(req *http.Request, pctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
		d := requestDetails(pctx.Session, req)

		disp := rt.Intercept(req.Context(), webrequest.BeforeRequest, d)
		if disp.Cancel {
			o.log.Debug("request blocked", logger.RequestID(d.ID), logger.URL(req.URL))
			d.Error = webrequest.ErrBlockedByClient
			rt.Notify(webrequest.ErrorOccurred, d)
			pctx.UserData = &requestState{blocked: true}
			return req, blockResponse(req, o.blockStatus)
		}
		if disp.RedirectURL != nil {
			d.RedirectURL = disp.RedirectURL
			rt.Notify(webrequest.BeforeRedirect, d)

			*req.URL = *disp.RedirectURL
			req.Host = disp.RedirectURL.Host
			d = requestDetails(pctx.Session, req)
		}

		// Inert stage, dispatched anyway so every stage of the pipeline is
		// observed in order.
		before := rt.Intercept(req.Context(), webrequest.BeforeSendHeaders, d)
		if before.RequestHeaders != nil {
			req.Header = before.RequestHeaders
			d.RequestHeaders = req.Header
		}

		rt.Notify(webrequest.SendHeaders, d)
		return req, nil
	})

	p.OnResponse().DoFunc(func(resp *http.Response, pctx *goproxy.ProxyCtx) *http.Response {
		// A block response synthesized by the request hook already reported
		// its outcome; its lifecycle is over.
		if st, ok := pctx.UserData.(*requestState); ok && st.blocked {
			return resp
		}

		req := pctx.Req
		d := requestDetails(pctx.Session, req)

		if resp == nil {
			d.Error = pctx.Error
			rt.Notify(webrequest.ErrorOccurred, d)
			return resp
		}

		d.ResponseHeaders = resp.Header
		d.StatusCode = resp.StatusCode
		d.StatusLine = resp.Proto + " " + resp.Status

		disp := rt.Intercept(req.Context(), webrequest.HeadersReceived, d)
		if disp.Cancel {
			o.log.Debug("response blocked", logger.RequestID(d.ID), logger.URL(req.URL))
			if resp.Body != nil {
				resp.Body.Close()
			}
			d.Error = webrequest.ErrBlockedByClient
			rt.Notify(webrequest.ErrorOccurred, d)
			return blockResponse(req, o.blockStatus)
		}
		if disp.ResponseHeaders != nil {
			resp.Header = disp.ResponseHeaders
			d.ResponseHeaders = resp.Header
		}
		if disp.StatusLine != "" {
			applyStatusLine(resp, disp.StatusLine)
			d.StatusCode = resp.StatusCode
			d.StatusLine = disp.StatusLine
		}

		rt.Notify(webrequest.ResponseStarted, d)

		// Completion follows the body, not the headers: the request is done
		// when the client has consumed (or abandoned) the response.
		resp.Body = &completionBody{
			body: resp.Body,
			done: func(readErr error) {
				dd := *d
				dd.Timestamp = time.Now()
				if readErr != nil {
					dd.Error = readErr
					rt.Notify(webrequest.ErrorOccurred, &dd)
					return
				}
				rt.Notify(webrequest.Completed, &dd)
			},
		}
		return resp
	})
}

// requestState rides in ProxyCtx.UserData between the two hooks.
type requestState struct {
	blocked bool
}

func requestDetails(session int64, req *http.Request) *webrequest.Details {
	d := &webrequest.Details{
		ID:             session,
		URL:            req.URL,
		Method:         req.Method,
		RequestHeaders: req.Header,
		Timestamp:      time.Now(),
	}
	if ref := req.Referer(); ref != "" {
		if u, err := req.URL.Parse(ref); err == nil {
			d.Referrer = u
		}
	}
	return d
}

func blockResponse(req *http.Request, status int) *http.Response {
	return goproxy.NewResponse(req, goproxy.ContentTypeText, status, "blocked by client\n")
}

// applyStatusLine rewrites the response status from a line such as
// "HTTP/1.1 404 Not Found". A malformed line is ignored.
func applyStatusLine(resp *http.Response, line string) {
	_, rest, found := strings.Cut(line, " ")
	if !found {
		return
	}
	codeText, _, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeText)
	if err != nil || code < 100 || code > 599 {
		return
	}
	resp.StatusCode = code
	resp.Status = rest
}

// completionBody invokes done exactly once: with nil on EOF or Close, with
// the read error on failure.
type completionBody struct {
	body io.ReadCloser
	done func(error)
	once sync.Once
}

func (b *completionBody) Read(p []byte) (int, error) {
	if b.body == nil {
		b.finish(nil)
		return 0, io.EOF
	}
	n, err := b.body.Read(p)
	switch {
	case err == io.EOF:
		b.finish(nil)
	case err != nil:
		b.finish(err)
	}
	return n, err
}

func (b *completionBody) Close() error {
	var err error
	if b.body != nil {
		err = b.body.Close()
	}
	b.finish(nil)
	return err
}

func (b *completionBody) finish(err error) {
	b.once.Do(func() { b.done(err) })
}

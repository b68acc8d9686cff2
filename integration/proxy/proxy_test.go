package proxy_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/elazarl/goproxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/netkit/core/webrequest"
	"github.com/dmitrymomot/netkit/integration/proxy"
)

// recorder collects simple-event names in dispatch order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) listener(name string) webrequest.SimpleListener {
	return func(d *webrequest.Details) error {
		r.mu.Lock()
		r.events = append(r.events, name)
		r.mu.Unlock()
		return nil
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func registerAll(t *testing.T, rt *webrequest.Router, rec *recorder) {
	t.Helper()
	require.NoError(t, rt.OnSendHeaders(webrequest.Filter{}, rec.listener("onSendHeaders")))
	require.NoError(t, rt.OnBeforeRedirect(webrequest.Filter{}, rec.listener("onBeforeRedirect")))
	require.NoError(t, rt.OnResponseStarted(webrequest.Filter{}, rec.listener("onResponseStarted")))
	require.NoError(t, rt.OnCompleted(webrequest.Filter{}, rec.listener("onCompleted")))
	require.NoError(t, rt.OnErrorOccurred(webrequest.Filter{}, rec.listener("onErrorOccurred")))
}

// newProxyClient serves p on a local listener and returns a client routed
// through it.
func newProxyClient(t *testing.T, p *goproxy.ProxyHttpServer) *http.Client {
	t.Helper()

	ps := httptest.NewServer(p)
	t.Cleanup(ps.Close)

	proxyURL, err := url.Parse(ps.URL)
	require.NoError(t, err)

	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		Timeout:   10 * time.Second,
	}
}

func TestAttach_PipelineOrder(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	}))
	t.Cleanup(backend.Close)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	rec := &recorder{}
	registerAll(t, rt, rec)

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt)
	client := newProxyClient(t, p)

	resp, err := client.Get(backend.URL + "/page")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "hello", string(body))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"onSendHeaders", "onResponseStarted", "onCompleted"}, rec.snapshot())
}

func TestAttach_CancelSynthesizesBlock(t *testing.T) {
	t.Parallel()

	backendHit := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))
	t.Cleanup(backend.Close)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	rec := &recorder{}
	registerAll(t, rt, rec)
	require.NoError(t, rt.OnBeforeRequest(webrequest.Filter{}, func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
		return webrequest.Block(), nil
	}))

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt, proxy.WithBlockStatus(http.StatusTeapot))
	client := newProxyClient(t, p)

	resp, err := client.Get(backend.URL + "/blocked")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.False(t, backendHit, "blocked request must not reach the backend")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"onErrorOccurred"}, rec.snapshot())
}

func TestAttach_FilterMissProceeds(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(backend.Close)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	invoked := false
	require.NoError(t, rt.OnBeforeRequest(
		webrequest.Filter{URLs: []string{"*://blocked.example/*"}},
		func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
			invoked = true
			return webrequest.Block(), nil
		},
	))

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt)
	client := newProxyClient(t, p)

	resp, err := client.Get(backend.URL + "/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, invoked, "filter miss must not invoke the listener")
}

func TestAttach_RedirectRewritesUpstream(t *testing.T) {
	t.Parallel()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "redirect target")
	}))
	t.Cleanup(target.Close)

	decoy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "decoy")
	}))
	t.Cleanup(decoy.Close)

	targetURL, err := url.Parse(target.URL + "/landed")
	require.NoError(t, err)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	rec := &recorder{}
	registerAll(t, rt, rec)
	require.NoError(t, rt.OnBeforeRequest(webrequest.Filter{}, func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
		return webrequest.RedirectTo(targetURL), nil
	}))

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt)
	client := newProxyClient(t, p)

	resp, err := client.Get(decoy.URL + "/origin")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "redirect target", string(body))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 4
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t,
		[]string{"onBeforeRedirect", "onSendHeaders", "onResponseStarted", "onCompleted"},
		rec.snapshot())
}

func TestAttach_HeadersReceivedRewrite(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", "1")
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(backend.Close)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	require.NoError(t, rt.OnHeadersReceived(webrequest.Filter{}, func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
		headers := d.ResponseHeaders.Clone()
		headers.Set("X-Injected", "yes")
		return webrequest.Disposition{
			ResponseHeaders: headers,
			StatusLine:      "HTTP/1.1 202 Accepted",
		}, nil
	}))

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt)
	client := newProxyClient(t, p)

	resp, err := client.Get(backend.URL + "/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "yes", resp.Header.Get("X-Injected"))
	assert.Equal(t, "1", resp.Header.Get("X-Upstream"))
}

func TestAttach_HeadersReceivedCancel(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "secret")
	}))
	t.Cleanup(backend.Close)

	rt := webrequest.New()
	t.Cleanup(func() { _ = rt.Close() })

	require.NoError(t, rt.OnHeadersReceived(webrequest.Filter{}, func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
		return webrequest.Block(), nil
	}))

	p := goproxy.NewProxyHttpServer()
	proxy.Attach(p, rt)
	client := newProxyClient(t, p)

	resp, err := client.Get(backend.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NotContains(t, string(body), "secret")
}

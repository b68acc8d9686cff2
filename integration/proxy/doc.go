// Package proxy attaches a webrequest router to an elazarl/goproxy proxy,
// turning the proxy into the network stack that feeds the router its
// lifecycle notifications.
//
// Attach installs one request hook and one response hook. Together they
// dispatch the full pipeline for every proxied request, in order:
// BeforeRequest, BeforeSendHeaders, SendHeaders, HeadersReceived,
// ResponseStarted, then Completed or ErrorOccurred. Listener dispositions
// flow back into the proxy: cancel synthesizes a block response, redirect
// rewrites the upstream target, replacement headers are applied to the live
// exchange.
//
// # Usage
//
//	rt := webrequest.New(webrequest.WithLogger(log))
//	defer rt.Close()
//
//	rt.OnBeforeRequest(
//		webrequest.Filter{URLs: []string{"*://*.doubleclick.net/*"}},
//		func(ctx context.Context, d *webrequest.Details) (webrequest.Disposition, error) {
//			return webrequest.Block(), nil
//		},
//	)
//
//	p := goproxy.NewProxyHttpServer()
//	proxy.Attach(p, rt, proxy.WithLogger(log))
//
//	// The proxy remains caller-owned; serve it however the host serves.
//	http.ListenAndServe(":8080", p)
//
// The package provides no transport of its own: the caller constructs,
// configures (including MITM for HTTPS) and serves the proxy.
package proxy

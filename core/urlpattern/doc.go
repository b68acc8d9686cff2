// Package urlpattern implements browser-style URL match patterns for
// filtering network requests by scheme, host, port, and path.
//
// A pattern has the form <scheme>://<host>[:<port>]<path>, with the special
// token <all_urls> matching everything:
//
//	*://*/*                     any http-like URL
//	https://example.com/*       any path on one host
//	*://*.example.com/*         a domain and all of its subdomains
//	http://localhost:8080/api*  literal host and port, wildcarded path
//	<all_urls>                  everything
//
// # Grammar
//
// The scheme is "*" (any scheme) or a literal scheme token. The host is "*",
// "*.domain" (matching the domain itself and any subdomain), or a literal
// host; an empty host is legal only for file URLs. The optional port is "*"
// or a literal in 1..65535; when a URL carries no explicit port, well-known
// scheme defaults (http 80, https 443, ws 80, wss 443, ftp 21) are used for
// comparison. The path must begin with "/"; within it "*" matches any run of
// characters including "/", so "/a*z" matches "/a/very/deep/z". The path is
// compared against the URL's escaped path, with "?query" appended when the
// URL has a query.
//
// Scheme and host compare case-insensitively; the path is case-sensitive.
//
// # Sets
//
// A Set evaluates patterns as a logical OR. The empty set matches every URL,
// so an absent filter means "all requests":
//
//	set, err := urlpattern.ParseSet([]string{
//		"*://example.com/*",
//		"*://*.example.org/*",
//	})
//	if err != nil {
//		// err wraps a sentinel (ErrInvalidHost, ...) and names the
//		// offending pattern
//	}
//	if set.Matches(req.URL) {
//		// at least one pattern accepted the URL
//	}
//
// ParseSet is atomic: one malformed pattern fails the whole set.
//
// # Concurrency
//
// Pattern and Set are immutable after construction and safe for concurrent
// use without locking.
package urlpattern

package urlpattern

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// AllURLs is the special pattern text that matches every URL.
const AllURLs = "<all_urls>"

// defaultPorts maps schemes to the port implied when a URL omits one.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// Pattern is a compiled URL match pattern of the form
// <scheme>://<host>[:<port>]<path>, or the special token <all_urls>.
//
// The scheme is "*" or a literal scheme. The host is "*" (any host),
// "*.domain" (the domain or any of its subdomains), or a literal host; it may
// be empty only for file URLs. The optional port is "*" or a literal port.
// In the path, "*" matches any run of characters including "/"; the path is
// compared against the URL's escaped path plus "?query" when a query is
// present.
//
// A parsed Pattern is immutable and safe for concurrent use.
type Pattern struct {
	raw string

	matchAll        bool
	scheme          string
	host            string
	wildcardHost    bool
	matchSubdomains bool
	port            string
	path            string
}

// Parse compiles a pattern string. The returned error wraps one of the
// package sentinels and names the offending pattern text.
func Parse(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, ErrEmptyPattern
	}
	if raw == AllURLs {
		return Pattern{raw: raw, matchAll: true}, nil
	}

	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return Pattern{}, fmt.Errorf("%w: %q", ErrMissingSeparator, raw)
	}

	scheme = strings.ToLower(scheme)
	if scheme != "*" && !validSchemeToken(scheme) {
		return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidScheme, raw)
	}

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}
	hostport, path := rest[:slash], rest[slash:]

	host, port, err := splitHostPort(hostport)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %q", err, raw)
	}

	p := Pattern{
		raw:    raw,
		scheme: scheme,
		port:   port,
		path:   path,
	}

	host = strings.ToLower(host)
	switch {
	case host == "*":
		p.wildcardHost = true
	case strings.HasPrefix(host, "*."):
		p.matchSubdomains = true
		p.host = host[2:]
		if p.host == "" || strings.Contains(p.host, "*") {
			return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidHost, raw)
		}
	default:
		if strings.Contains(host, "*") {
			return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidHost, raw)
		}
		if host == "" && scheme != "file" {
			return Pattern{}, fmt.Errorf("%w: %q", ErrInvalidHost, raw)
		}
		p.host = host
	}

	return p, nil
}

// MustParse compiles a pattern string and panics on error. Intended for
// pattern literals and tests.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern text.
func (p Pattern) String() string { return p.raw }

// MatchesURL reports whether u is accepted by the pattern. It is
// side-effect-free and safe to call concurrently.
func (p Pattern) MatchesURL(u *url.URL) bool {
	if u == nil {
		return false
	}
	if p.matchAll {
		return true
	}
	if !p.matchesScheme(u.Scheme) {
		return false
	}
	if !p.matchesHost(u.Hostname()) {
		return false
	}
	if !p.matchesPort(u) {
		return false
	}
	return wildcardMatch(p.path, pathForMatch(u))
}

func (p Pattern) matchesScheme(scheme string) bool {
	return p.scheme == "*" || p.scheme == strings.ToLower(scheme)
}

func (p Pattern) matchesHost(host string) bool {
	host = strings.ToLower(host)
	switch {
	case p.wildcardHost:
		return true
	case p.matchSubdomains:
		return host == p.host || strings.HasSuffix(host, "."+p.host)
	default:
		return host == p.host
	}
}

func (p Pattern) matchesPort(u *url.URL) bool {
	if p.port == "" || p.port == "*" {
		return true
	}
	port := u.Port()
	if port == "" {
		port = defaultPorts[strings.ToLower(u.Scheme)]
	}
	return port == p.port
}

// pathForMatch is the string the path pattern is matched against: the
// escaped path ("/" when empty) plus the query when present.
func pathForMatch(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

// validSchemeToken accepts RFC 3986 scheme syntax.
func validSchemeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// splitHostPort separates an optional ":port" suffix. Bracketed IPv6 hosts
// are not supported in patterns.
func splitHostPort(hostport string) (host, port string, err error) {
	if strings.ContainsAny(hostport, "[]") {
		return "", "", ErrInvalidHost
	}

	colon := strings.LastIndexByte(hostport, ':')
	if colon < 0 {
		return hostport, "", nil
	}

	host, port = hostport[:colon], hostport[colon+1:]
	if port == "*" {
		return host, port, nil
	}
	n, convErr := strconv.Atoi(port)
	if convErr != nil || n < 1 || n > 65535 {
		return "", "", ErrInvalidPort
	}
	return host, port, nil
}

// wildcardMatch reports whether s matches pattern, where '*' matches any run
// of characters including '/'. Iterative with backtracking over the last
// star, so pathological patterns cannot recurse.
func wildcardMatch(pattern, s string) bool {
	pi, si := 0, 0
	star, mark := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

package protocol

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrymomot/netkit/core/logger"
)

// builtinSchemes are handled natively by the stack; IsHandled reports them
// as handled even without a registration.
var builtinSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"file":  {},
	"about": {},
	"blob":  {},
	"data":  {},
	"ws":    {},
	"wss":   {},
}

// Registry maps URL schemes to handlers. Two bindings exist per scheme: a
// registration, which serves a custom scheme the stack would otherwise
// reject, and an interception, which overrides the stack's own handling of
// a built-in scheme. At most one of each per scheme; an interceptor takes
// precedence when both are present.
//
// Scheme names are stored case-insensitively. Safe for concurrent use.
type Registry struct {
	log *slog.Logger

	mu          sync.RWMutex
	registered  map[string]Handler
	intercepted map[string]Handler
}

// NewRegistry creates an empty scheme registry. A nil logger discards.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		log:         log,
		registered:  make(map[string]Handler),
		intercepted: make(map[string]Handler),
	}
}

// Register binds h as the handler for a custom scheme. Returns
// ErrSchemeRegistered when the scheme already has one.
func (r *Registry) Register(scheme string, h Handler) error {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return err
	}
	if h == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registered[scheme]; ok {
		return fmt.Errorf("%w: %q", ErrSchemeRegistered, scheme)
	}
	r.registered[scheme] = h
	r.log.Debug("scheme registered", logger.Scheme(scheme))
	return nil
}

// Unregister removes the handler for a custom scheme. Returns
// ErrSchemeNotRegistered when there is none.
func (r *Registry) Unregister(scheme string) error {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registered[scheme]; !ok {
		return fmt.Errorf("%w: %q", ErrSchemeNotRegistered, scheme)
	}
	delete(r.registered, scheme)
	r.log.Debug("scheme unregistered", logger.Scheme(scheme))
	return nil
}

// IsRegistered reports whether the scheme has a registered handler.
func (r *Registry) IsRegistered(scheme string) bool {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.registered[scheme]
	return ok
}

// Intercept binds h as the interceptor for a scheme, overriding the stack's
// own handling. Returns ErrSchemeIntercepted when an interceptor is already
// in place.
func (r *Registry) Intercept(scheme string, h Handler) error {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return err
	}
	if h == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.intercepted[scheme]; ok {
		return fmt.Errorf("%w: %q", ErrSchemeIntercepted, scheme)
	}
	r.intercepted[scheme] = h
	r.log.Debug("scheme intercepted", logger.Scheme(scheme))
	return nil
}

// Unintercept removes the interceptor for a scheme. Returns
// ErrSchemeNotIntercepted when there is none.
func (r *Registry) Unintercept(scheme string) error {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.intercepted[scheme]; !ok {
		return fmt.Errorf("%w: %q", ErrSchemeNotIntercepted, scheme)
	}
	delete(r.intercepted, scheme)
	r.log.Debug("scheme interception removed", logger.Scheme(scheme))
	return nil
}

// IsIntercepted reports whether the scheme has an interceptor.
func (r *Registry) IsIntercepted(scheme string) bool {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.intercepted[scheme]
	return ok
}

// IsHandled reports whether requests on the scheme will be served at all:
// by a registration, an interceptor, or the stack's built-in handling.
func (r *Registry) IsHandled(scheme string) bool {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return false
	}
	if _, ok := builtinSchemes[scheme]; ok {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.registered[scheme]; ok {
		return true
	}
	_, ok := r.intercepted[scheme]
	return ok
}

// Resolve returns the handler that should serve the scheme. An interceptor
// wins over a registration. The second return is false when neither exists.
func (r *Registry) Resolve(scheme string) (Handler, bool) {
	scheme, err := normalizeScheme(scheme)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.intercepted[scheme]; ok {
		return h, true
	}
	h, ok := r.registered[scheme]
	return h, ok
}

// Schemes returns every registered or intercepted scheme, sorted and
// deduplicated.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	seen := make(map[string]struct{}, len(r.registered)+len(r.intercepted))
	for s := range r.registered {
		seen[s] = struct{}{}
	}
	for s := range r.intercepted {
		seen[s] = struct{}{}
	}
	r.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// normalizeScheme lowercases and validates a scheme token.
func normalizeScheme(scheme string) (string, error) {
	scheme = strings.ToLower(scheme)
	if !validSchemeToken(scheme) {
		return "", fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
	}
	return scheme, nil
}

// validSchemeToken accepts RFC 3986 scheme syntax, same rule the urlpattern
// package applies to pattern schemes.
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

package contexts

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/netkit/core/logger"
	"github.com/dmitrymomot/netkit/core/webrequest"
)

// Registry owns the binding between context identities and their routers:
// at most one router per key, constructed on first access and closed when
// the key is destroyed. The router itself holds no global state; all
// ownership lives here.
//
// K is the embedder's context-identity type (a browsing-context ID, a
// session token, a tenant UUID). Distinct keys own disjoint routers, so
// concurrent use across keys needs no coordination beyond the registry's
// own locking.
type Registry[K comparable] struct {
	log        *slog.Logger
	routerOpts []webrequest.Option

	mu      sync.RWMutex
	routers map[K]*webrequest.Router
	closed  bool
}

// NewRegistry creates a registry. Router options given via WithRouterOptions
// are applied to every router the registry constructs.
func NewRegistry[K comparable](opts ...Option[K]) *Registry[K] {
	r := &Registry[K]{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		routers: make(map[K]*webrequest.Router),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FromOrCreate returns the router bound to key, constructing it on first
// access. Subsequent calls with the same key return the same instance until
// Destroy or Create replaces it. Returns nil after the registry is closed.
func (r *Registry[K]) FromOrCreate(key K) *webrequest.Router {
	r.mu.RLock()
	rt, ok := r.routers[key]
	closed := r.closed
	r.mu.RUnlock()
	if ok || closed {
		return rt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	if rt, ok := r.routers[key]; ok {
		return rt
	}
	return r.create(key)
}

// From returns the router bound to key without constructing one.
func (r *Registry[K]) From(key K) (*webrequest.Router, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.routers[key]
	return rt, ok
}

// Create constructs a fresh router for key unconditionally. A previously
// bound router is closed first, so its pending intercepts resolve fail-open
// before the replacement becomes visible. Returns nil after the registry is
// closed.
func (r *Registry[K]) Create(key K) *webrequest.Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}

	if prev, ok := r.routers[key]; ok {
		if err := prev.Close(); err != nil {
			r.log.Error("failed to close replaced router",
				logger.ID("router_id", prev.ID()),
				logger.Error(err))
		}
	}
	return r.create(key)
}

// create assumes r.mu is held for writing.
func (r *Registry[K]) create(key K) *webrequest.Router {
	rt := webrequest.New(r.routerOpts...)
	r.routers[key] = rt
	r.log.Debug("router created",
		logger.ID("router_id", rt.ID()),
		logger.Key("context", key))
	return rt
}

// Destroy closes and removes the router bound to key. It is synchronous:
// when it returns, the router is closed and every pending intercept has
// resolved as "proceed unmodified". Returns ErrContextNotFound when the key
// has no router.
func (r *Registry[K]) Destroy(key K) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	rt, ok := r.routers[key]
	if ok {
		delete(r.routers, key)
	}
	r.mu.Unlock()

	if !ok {
		return ErrContextNotFound
	}

	// Close outside the lock: it blocks until pending intercepts drain, and
	// other keys' routers must stay reachable meanwhile.
	if err := rt.Close(); err != nil {
		return err
	}

	r.log.Debug("router destroyed",
		logger.ID("router_id", rt.ID()),
		logger.Key("context", key))
	return nil
}

// Len returns the number of currently bound routers.
func (r *Registry[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routers)
}

// Close destroys every bound router and renders the registry unusable.
// Safe to call more than once.
func (r *Registry[K]) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	routers := make([]*webrequest.Router, 0, len(r.routers))
	for _, rt := range r.routers {
		routers = append(routers, rt)
	}
	r.routers = nil
	r.mu.Unlock()

	var errs []error
	for _, rt := range routers {
		if err := rt.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	r.log.Debug("registry closed", logger.Count("routers", len(routers)))
	return errors.Join(errs...)
}

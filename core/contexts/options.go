package contexts

import (
	"log/slog"

	"github.com/dmitrymomot/netkit/core/webrequest"
)

// Option configures a Registry.
type Option[K comparable] func(*Registry[K])

// WithLogger sets the logger for registry lifecycle events.
// Defaults to a discard logger.
func WithLogger[K comparable](log *slog.Logger) Option[K] {
	return func(r *Registry[K]) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRouterOptions sets the options applied to every router the registry
// constructs.
func WithRouterOptions[K comparable](opts ...webrequest.Option) Option[K] {
	return func(r *Registry[K]) {
		r.routerOpts = opts
	}
}

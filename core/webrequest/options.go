package webrequest

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger. The default logger discards all
// records.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithConfig applies dispatcher limits loaded from configuration.
func WithConfig(cfg Config) Option {
	return func(r *Router) {
		r.timeout = cfg.ListenerTimeout
		r.maxPending = cfg.MaxPending
	}
}

// WithListenerTimeout bounds how long a response-gated listener may take to
// decide. Zero disables the timeout.
func WithListenerTimeout(d time.Duration) Option {
	return func(r *Router) { r.timeout = d }
}

// WithErrorHandler installs the diagnostics callback invoked with every
// listener failure: a returned error, a panic, a timeout, or an intercept
// dropped at the pending cap. The handler runs on the dispatching goroutine
// and must not block. Failures are logged regardless of the handler.
func WithErrorHandler(h func(ctx context.Context, event string, d *Details, err error)) Option {
	return func(r *Router) {
		if h != nil {
			r.errHandler = h
		}
	}
}

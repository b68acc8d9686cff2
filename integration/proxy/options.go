package proxy

import (
	"io"
	"log/slog"
	"net/http"
)

type options struct {
	log         *slog.Logger
	blockStatus int
}

func defaultOptions() options {
	return options{
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		blockStatus: http.StatusForbidden,
	}
}

// Option configures the attached hooks.
type Option func(*options)

// WithLogger sets the logger for hook-level events. Defaults to a discard
// logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithBlockStatus sets the HTTP status of synthesized block responses.
// Defaults to 403 Forbidden.
func WithBlockStatus(status int) Option {
	return func(o *options) {
		if status >= 100 && status <= 599 {
			o.blockStatus = status
		}
	}
}

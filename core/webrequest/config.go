package webrequest

import "time"

// Config holds the dispatcher limits. The zero value disables both, which
// matches the reference behavior of waiting indefinitely for listeners.
type Config struct {
	// ListenerTimeout bounds how long a response-gated listener may take to
	// decide; past it the request proceeds unmodified and the failure is
	// reported. Zero disables the timeout.
	ListenerTimeout time.Duration `env:"WEBREQUEST_LISTENER_TIMEOUT" envDefault:"0"`

	// MaxPending caps simultaneous pending intercepts per router. At the
	// cap, new intercepts resolve neutral immediately instead of queueing.
	// Zero disables the cap.
	MaxPending int `env:"WEBREQUEST_MAX_PENDING" envDefault:"0"`
}

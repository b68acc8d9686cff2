package protocol

import "errors"

var (
	// ErrSchemeRegistered is returned when registering a scheme that already
	// has a handler.
	ErrSchemeRegistered = errors.New("protocol: scheme already registered")
	// ErrSchemeNotRegistered is returned when unregistering a scheme that has
	// no handler.
	ErrSchemeNotRegistered = errors.New("protocol: scheme not registered")
	// ErrSchemeIntercepted is returned when intercepting a scheme that is
	// already intercepted.
	ErrSchemeIntercepted = errors.New("protocol: scheme already intercepted")
	// ErrSchemeNotIntercepted is returned when removing an interceptor from a
	// scheme that has none.
	ErrSchemeNotIntercepted = errors.New("protocol: scheme not intercepted")
	// ErrInvalidScheme is returned for scheme names that are not valid
	// scheme tokens.
	ErrInvalidScheme = errors.New("protocol: invalid scheme")
	// ErrNilHandler is returned when registering or intercepting with a nil
	// handler.
	ErrNilHandler = errors.New("protocol: nil handler")
)

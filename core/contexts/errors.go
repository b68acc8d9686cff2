package contexts

import "errors"

var (
	// ErrContextNotFound is returned when no router is bound to the given context key.
	ErrContextNotFound = errors.New("context not found")
	// ErrRegistryClosed is returned when operating on a closed registry.
	ErrRegistryClosed = errors.New("context registry is closed")
)

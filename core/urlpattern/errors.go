package urlpattern

import "errors"

var (
	// ErrEmptyPattern is returned when parsing an empty pattern string.
	ErrEmptyPattern = errors.New("empty url pattern")

	// ErrMissingSeparator is returned when a pattern has no "://" separator.
	ErrMissingSeparator = errors.New("url pattern missing scheme separator")

	// ErrInvalidScheme is returned for a scheme that is neither "*" nor a
	// valid scheme token.
	ErrInvalidScheme = errors.New("invalid scheme in url pattern")

	// ErrInvalidHost is returned for a host with a misplaced wildcard or an
	// empty host on a scheme that requires one.
	ErrInvalidHost = errors.New("invalid host in url pattern")

	// ErrInvalidPort is returned for a port that is neither "*" nor a number
	// in 1..65535.
	ErrInvalidPort = errors.New("invalid port in url pattern")

	// ErrInvalidPath is returned when a pattern has no path component.
	ErrInvalidPath = errors.New("invalid path in url pattern")
)

// Package netkit provides a request-interception toolkit for embedding a
// network request lifecycle router into Go applications. It routes lifecycle
// notifications (request about to be sent, headers received, redirect,
// completion, failure) to user-registered listeners filtered by URL match
// patterns, and feeds response-gated listener decisions (proceed, modify,
// cancel) back into the hosting network stack.
//
// # Package Organization
//
// The library is organized into three main categories:
//
//   - Core: the router, its supporting registries, and shared ambient concerns
//   - Utilities: standalone packages with no dependency on the core
//   - Integrations: adapters binding the router to concrete network stacks
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/dmitrymomot/netkit/core/webrequest
//	go doc -all github.com/dmitrymomot/netkit/core/urlpattern
//
// # Core Packages
//
//	github.com/dmitrymomot/netkit/core/webrequest - lifecycle event router: listener registry, filtered dispatch, fail-open intercepts
//	github.com/dmitrymomot/netkit/core/urlpattern - URL match patterns over scheme, host, port and path
//	github.com/dmitrymomot/netkit/core/contexts   - context-identity to router binding with construction-on-first-use
//	github.com/dmitrymomot/netkit/core/protocol   - custom URL scheme handler registry
//	github.com/dmitrymomot/netkit/core/config     - type-safe environment variable loading
//	github.com/dmitrymomot/netkit/core/logger     - slog attribute helpers shared across the module
//
// # Utility Packages
//
//	github.com/dmitrymomot/netkit/pkg/async - generic futures with panic recovery, used for pending intercepts
//
// # Integration Packages
//
//	github.com/dmitrymomot/netkit/integration/proxy - attach a router to an elazarl/goproxy proxy
//
// For complete examples and detailed usage instructions, refer to the
// individual package documentation using the go doc command.
package netkit

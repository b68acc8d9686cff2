// Package contexts binds request-interception routers to their owning
// browsing or session contexts.
//
// A router lives exactly as long as the context it serves. This package makes
// that ownership explicit: a Registry maps context identities to router
// instances, constructs a router on first access, and closes it when the
// context is destroyed. Closing resolves every outstanding response-gated
// intercept as "proceed unmodified", so no in-flight request is ever left
// waiting on a context that no longer exists.
//
// # Usage
//
//	reg := contexts.NewRegistry[uuid.UUID](
//		contexts.WithRouterOptions[uuid.UUID](
//			webrequest.WithListenerTimeout(5 * time.Second),
//		),
//	)
//	defer reg.Close()
//
//	// First access constructs the router; later accesses return it.
//	rt := reg.FromOrCreate(contextID)
//	rt.OnCompleted(webrequest.Filter{}, logCompletion)
//
//	// Context teardown: synchronous, pending intercepts resolve fail-open.
//	if err := reg.Destroy(contextID); err != nil {
//		log.Error("teardown failed", logger.Error(err))
//	}
//
// The key type is generic: use whatever identifies a context in the host
// application (UUID, integer handle, composite key).
package contexts
